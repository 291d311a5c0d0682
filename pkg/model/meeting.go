package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MeetingStatus is the lifecycle state of a meeting.
type MeetingStatus int

//go:generate go run github.com/dmarkham/enumer -type MeetingStatus -trimprefix MeetingStatus -transform snake -json -sql -output meetingstatus_enumer.go

const (
	MeetingStatusScheduled MeetingStatus = iota
	MeetingStatusInProgress
	MeetingStatusCompleted
	MeetingStatusCancelled
)

// CanTransition reports whether a meeting may move to the target status.
// Completed and cancelled are terminal.
func (s MeetingStatus) CanTransition(to MeetingStatus) bool {
	switch s {
	case MeetingStatusScheduled:
		return to == MeetingStatusInProgress || to == MeetingStatusCancelled
	case MeetingStatusInProgress:
		return to == MeetingStatusCompleted || to == MeetingStatusCancelled
	}
	return false
}

// RSVP responses
const (
	RSVPPending   = "pending"
	RSVPAccepted  = "accepted"
	RSVPDeclined  = "declined"
	RSVPTentative = "tentative"
)

// ValidRSVP reports whether response is a known RSVP value (pending is
// assigned, never submitted).
func ValidRSVP(response string) bool {
	switch response {
	case RSVPAccepted, RSVPDeclined, RSVPTentative:
		return true
	}
	return false
}

// Meeting is a board meeting scoped to an organization, optionally linked to
// the vault holding its board pack.
type Meeting struct {
	ID              string        `gorm:"column:id;primaryKey" json:"id"`
	OrganizationID  string        `gorm:"column:organization_id;not null" json:"organization_id"`
	VaultID         *string       `gorm:"column:vault_id" json:"vault_id,omitempty"`
	Title           string        `gorm:"column:title;not null" json:"title"`
	Agenda          string        `gorm:"column:agenda" json:"agenda,omitempty"`
	ScheduledAt     time.Time     `gorm:"column:scheduled_at;not null" json:"scheduled_at"`
	DurationMinutes int           `gorm:"column:duration_minutes;not null;default:60" json:"duration_minutes"`
	Status          MeetingStatus `gorm:"column:status;not null;default:scheduled" json:"status"`
	ReminderSentAt  *time.Time    `gorm:"column:reminder_sent_at" json:"reminder_sent_at,omitempty"`
	CreatedBy       string        `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt       time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Meeting) TableName() string {
	return "meetings"
}

func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MeetingInvitee tracks an invited user's RSVP.
type MeetingInvitee struct {
	MeetingID   string     `gorm:"column:meeting_id;primaryKey" json:"meeting_id"`
	UserID      string     `gorm:"column:user_id;primaryKey" json:"user_id"`
	Response    string     `gorm:"column:response;not null;default:pending" json:"response"`
	RespondedAt *time.Time `gorm:"column:responded_at" json:"responded_at,omitempty"`
}

func (MeetingInvitee) TableName() string {
	return "meeting_invitees"
}
