package domain

import (
	"time"
)

const (
	ActionApprovedSeller  = "Approved Seller"
	ActionRejectedSeller  = "Rejected Seller"
	ActionSuspendedUser   = "Suspended User"
	ActionReactivatedUser = "Reactivated User"
)

// AdminLog is append-only. Rows are written as a side effect of privileged
// admin mutations and never updated or deleted.
type AdminLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AdminID      uint      `gorm:"column:admin_id;not null" json:"admin_id"`
	Action       string    `gorm:"column:action;not null" json:"action"`
	TargetUserID *uint     `gorm:"column:target_user_id" json:"target_user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (AdminLog) TableName() string {
	return "admin_logs"
}

// AdminLogRow is the joined shape returned to the dashboard and CSV export.
type AdminLogRow struct {
	ID              uint      `json:"id"`
	Action          string    `json:"action"`
	CreatedAt       time.Time `json:"created_at"`
	AdminEmail      string    `json:"admin_email"`
	TargetUserEmail string    `json:"target_user_email"`
}
