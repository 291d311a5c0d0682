package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization statuses
const (
	OrgStatusActive   = "active"
	OrgStatusArchived = "archived"
)

// Organization is a tenant. All vaults, assets and meetings are scoped to one.
type Organization struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Slug        string    `gorm:"column:slug;not null" json:"slug"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	Status      string    `gorm:"column:status;not null;default:active" json:"status"`
	CreatedBy   string    `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Organization) TableName() string {
	return "organizations"
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Slug == "" {
		o.Slug = Slugify(o.Name)
	}
	return nil
}

// IsArchived reports whether the organization is soft-archived.
func (o *Organization) IsArchived() bool {
	return o.Status == OrgStatusArchived
}

var slugStripRgx = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from an organization name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStripRgx.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
