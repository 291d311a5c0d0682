package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification statuses
const (
	NotificationStatusUnread   = "unread"
	NotificationStatusRead     = "read"
	NotificationStatusArchived = "archived"
)

// ValidNotificationStatus reports whether s is a known status.
func ValidNotificationStatus(s string) bool {
	switch s {
	case NotificationStatusUnread, NotificationStatusRead, NotificationStatusArchived:
		return true
	}
	return false
}

// Notification kinds
const (
	NotificationKindRegistration    = "registration"
	NotificationKindMembership      = "membership"
	NotificationKindMeetingInvite   = "meeting_invite"
	NotificationKindMeetingReminder = "meeting_reminder"
	NotificationKindMeetingChange   = "meeting_change"
	NotificationKindVault           = "vault"
	NotificationKindBulkAction      = "bulk_action"
)

// Notification is a per-user in-app notification.
type Notification struct {
	ID             string     `gorm:"column:id;primaryKey" json:"id"`
	UserID         string     `gorm:"column:user_id;not null" json:"user_id"`
	OrganizationID *string    `gorm:"column:organization_id" json:"organization_id,omitempty"`
	Kind           string     `gorm:"column:kind;not null" json:"kind"`
	Title          string     `gorm:"column:title;not null" json:"title"`
	Message        string     `gorm:"column:message" json:"message,omitempty"`
	Status         string     `gorm:"column:status;not null;default:unread" json:"status"`
	ReadAt         *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
