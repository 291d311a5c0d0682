package model

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registration request statuses
const (
	RegistrationStatusPending  = "pending"
	RegistrationStatusApproved = "approved"
	RegistrationStatusRejected = "rejected"
	RegistrationStatusExpired  = "expired"
)

// RegistrationRequest represents a sign-up awaiting admin approval. The
// approval token is emailed to platform admins; only its SHA-256 is stored.
type RegistrationRequest struct {
	ID          string     `gorm:"column:id;primaryKey" json:"id"`
	Email       string     `gorm:"column:email;not null" json:"email"`
	FullName    string     `gorm:"column:full_name;not null" json:"full_name"`
	Company     string     `gorm:"column:company" json:"company,omitempty"`
	Message     string     `gorm:"column:message" json:"message,omitempty"`
	TokenSHA256 string     `gorm:"column:token_sha256" json:"-"`
	Status      string     `gorm:"column:status;not null;default:pending" json:"status"`
	Expiration  time.Time  `gorm:"column:expiration" json:"expiration"`
	ReviewedBy  *string    `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Transient field for the plaintext token (not stored, never serialized)
	PlainToken string `gorm:"-" json:"-"`
}

func (RegistrationRequest) TableName() string {
	return "registration_requests"
}

func (r *RegistrationRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// GenerateToken creates a new random approval token
func GenerateToken() string {
	// 32 random bytes encoded as hex (64 chars)
	randomBytes := make([]byte, 32)
	rand.Read(randomBytes)
	return hex.EncodeToString(randomBytes)
}

// HashToken returns the SHA256 hash of a token
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// IsExpired checks if the approval token has expired
func (r *RegistrationRequest) IsExpired() bool {
	return time.Now().After(r.Expiration)
}

// IsPending reports whether the request still awaits review.
func (r *RegistrationRequest) IsPending() bool {
	return r.Status == RegistrationStatusPending
}
