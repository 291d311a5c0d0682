package store

import (
	"errors"
	"time"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/scheduler"
)

// ErrMeetingNotFound is returned when no meeting matches the lookup
var ErrMeetingNotFound = errors.New("meeting not found")

// ErrNotInvited is returned when a user RSVPs to a meeting they are not
// invited to
var ErrNotInvited = errors.New("user is not invited to this meeting")

// MeetingsStore abstracts meeting and invitee storage
type MeetingsStore interface {
	// CreateMeeting inserts the meeting and pending invitee rows in one
	// transaction.
	CreateMeeting(meeting *model.Meeting, inviteeIDs []string) error

	// FindMeeting retrieves a meeting by ID.
	// Returns ErrMeetingNotFound if no such meeting exists.
	FindMeeting(id string) (*model.Meeting, error)

	// ListMeetings returns a page of an organization's meetings plus
	// the total count, optionally filtered by status.
	ListMeetings(orgID string, status *model.MeetingStatus, limit, offset int) ([]model.Meeting, int64, error)

	// SaveMeeting persists changes to an existing meeting.
	SaveMeeting(meeting *model.Meeting) error

	// SetMeetingStatus updates the lifecycle status.
	SetMeetingStatus(id string, status model.MeetingStatus) error

	// Invite adds a pending invitee.
	Invite(meetingID, userID string) error

	// RemoveInvitee removes an invitee.
	RemoveInvitee(meetingID, userID string) error

	// ListInvitees returns all invitees with their RSVP state.
	ListInvitees(meetingID string) ([]model.MeetingInvitee, error)

	// SetRSVP records an invitee's response.
	// Returns ErrNotInvited if the user has no invitee row.
	SetRSVP(meetingID, userID, response string) error

	// DueReminders returns scheduled meetings starting within lead of
	// asOf whose reminder has not been sent.
	DueReminders(asOf time.Time, lead time.Duration) ([]model.Meeting, error)

	// MarkReminderSent records that the reminder went out.
	MarkReminderSent(meetingID string, at time.Time) error

	// InviteeContacts returns reminder recipients: invitees who have
	// not declined.
	InviteeContacts(meetingID string) ([]scheduler.Contact, error)
}
