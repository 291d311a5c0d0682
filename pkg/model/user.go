package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User statuses
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User represents a platform account.
type User struct {
	ID             string    `gorm:"column:id;primaryKey" json:"id"`
	Email          string    `gorm:"column:email;not null" json:"email"`
	FullName       string    `gorm:"column:full_name;not null" json:"full_name"`
	PasswordDigest string    `gorm:"column:password_digest;not null" json:"-"`
	PlatformAdmin  bool      `gorm:"column:platform_admin;not null;default:false" json:"platform_admin"`
	Status         string    `gorm:"column:status;not null;default:active" json:"status"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// SetPassword hashes and stores the given plaintext password.
func (u *User) SetPassword(plaintext string) error {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordDigest = string(digest)
	return nil
}

// CheckPassword reports whether the plaintext matches the stored digest.
func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordDigest), []byte(plaintext)) == nil
}

// IsActive reports whether the user may authenticate.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
