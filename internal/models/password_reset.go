package models

import (
	"time"
)

// PasswordResetToken represents the password_reset_tokens table. Only the
// sha256 of the token is stored.
type PasswordResetToken struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Email     string    `json:"email" gorm:"column:email;not null;index"`
	TokenHash string    `json:"-" gorm:"column:token_hash;size:64;not null;uniqueIndex"`
	ExpiresAt time.Time `json:"expires_at" gorm:"column:expires_at;not null"`
	Used      bool      `json:"used" gorm:"column:used;not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the insert table name for PasswordResetToken
func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// Usable reports whether the token can still reset a password at now
func (t *PasswordResetToken) Usable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
