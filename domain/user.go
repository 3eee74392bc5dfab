package domain

import (
	"time"
)

const (
	RoleAdmin    = "ADMIN"
	RoleSeller   = "SELLER"
	RoleCustomer = "CUSTOMER"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusSuspended = "SUSPENDED"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Email     string    `gorm:"column:email;unique;not null" json:"email"`
	Password  string    `gorm:"column:password;not null" json:"-"`
	Role      string    `gorm:"column:role;not null" json:"role"`
	Status    string    `gorm:"column:status;not null;default:PENDING" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// RegistrationStatus returns the status a freshly registered account starts in.
// Sellers wait for admin approval, everyone else can log in immediately.
func RegistrationStatus(role string) string {
	if role == RoleSeller {
		return StatusPending
	}
	return StatusApproved
}
