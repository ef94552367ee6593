package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the users table
type User struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	DocumentID string    `json:"document_id" gorm:"column:document_id;size:36;uniqueIndex"`
	Name       string    `json:"name" gorm:"column:name;not null"`
	Email      string    `json:"email" gorm:"column:email;not null;uniqueIndex"`
	Password   string    `json:"-" gorm:"column:password;not null"`
	Role       Role      `json:"role" gorm:"column:role;type:varchar(20);not null;index"`
	Phone      string    `json:"phone,omitempty" gorm:"column:phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the insert table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a document id and normalizes the email
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.DocumentID == "" {
		u.DocumentID = uuid.New().String()
	}
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserSummary is the public view of a user embedded in other responses
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Summary returns the public view of u
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}
