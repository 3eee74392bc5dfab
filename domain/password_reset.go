package domain

import (
	"time"
)

// PasswordReset stores only the SHA-256 hash of the reset token. The raw
// token exists exactly once, in the email sent to the user.
type PasswordReset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	TokenHash string    `gorm:"column:token_hash;index;not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}
