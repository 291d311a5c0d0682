package gorm

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/scheduler"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// Ensure MeetingsStore implements store.MeetingsStore
var _ store.MeetingsStore = (*MeetingsStore)(nil)

// MeetingsStore implements store.MeetingsStore using GORM
type MeetingsStore struct {
	db *gorm.DB
}

// NewMeetingsStore creates a new MeetingsStore
func NewMeetingsStore(db *gorm.DB) *MeetingsStore {
	return &MeetingsStore{db: db}
}

// CreateMeeting inserts the meeting and pending invitee rows.
func (s *MeetingsStore) CreateMeeting(meeting *model.Meeting, inviteeIDs []string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meeting).Error; err != nil {
			return err
		}
		for _, userID := range inviteeIDs {
			invitee := model.MeetingInvitee{
				MeetingID: meeting.ID,
				UserID:    userID,
				Response:  model.RSVPPending,
			}
			if err := tx.Create(&invitee).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindMeeting retrieves a meeting by ID.
func (s *MeetingsStore) FindMeeting(id string) (*model.Meeting, error) {
	var meeting model.Meeting
	if err := s.db.Where("id = ?", id).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrMeetingNotFound
		}
		return nil, err
	}
	return &meeting, nil
}

// ListMeetings returns a page of an organization's meetings.
func (s *MeetingsStore) ListMeetings(orgID string, status *model.MeetingStatus, limit, offset int) ([]model.Meeting, int64, error) {
	base := s.db.Model(&model.Meeting{}).Where("organization_id = ?", orgID)
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var meetings []model.Meeting
	err := base.Order("scheduled_at").Limit(limit).Offset(offset).Find(&meetings).Error
	return meetings, count, err
}

// SaveMeeting persists changes to an existing meeting.
func (s *MeetingsStore) SaveMeeting(meeting *model.Meeting) error {
	return s.db.Save(meeting).Error
}

// SetMeetingStatus updates the lifecycle status.
func (s *MeetingsStore) SetMeetingStatus(id string, status model.MeetingStatus) error {
	tx := s.db.Model(&model.Meeting{}).Where("id = ?", id).Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrMeetingNotFound
	}
	return nil
}

// Invite adds a pending invitee. Re-inviting is a no-op.
func (s *MeetingsStore) Invite(meetingID, userID string) error {
	err := s.db.Create(&model.MeetingInvitee{
		MeetingID: meetingID,
		UserID:    userID,
		Response:  model.RSVPPending,
	}).Error
	if isUniqueViolation(err) {
		return nil
	}
	return err
}

// RemoveInvitee removes an invitee.
func (s *MeetingsStore) RemoveInvitee(meetingID, userID string) error {
	return s.db.Where("meeting_id = ? AND user_id = ?", meetingID, userID).
		Delete(&model.MeetingInvitee{}).Error
}

// ListInvitees returns all invitees with their RSVP state.
func (s *MeetingsStore) ListInvitees(meetingID string) ([]model.MeetingInvitee, error) {
	var invitees []model.MeetingInvitee
	err := s.db.Where("meeting_id = ?", meetingID).Find(&invitees).Error
	return invitees, err
}

// SetRSVP records an invitee's response.
func (s *MeetingsStore) SetRSVP(meetingID, userID, response string) error {
	now := time.Now().UTC()
	tx := s.db.Model(&model.MeetingInvitee{}).
		Where("meeting_id = ? AND user_id = ?", meetingID, userID).
		Updates(map[string]interface{}{
			"response":     response,
			"responded_at": now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotInvited
	}
	return nil
}

// DueReminders returns scheduled meetings starting within lead of asOf
// whose reminder has not been sent.
func (s *MeetingsStore) DueReminders(asOf time.Time, lead time.Duration) ([]model.Meeting, error) {
	var meetings []model.Meeting
	err := s.db.
		Where("status = ?", model.MeetingStatusScheduled).
		Where("reminder_sent_at IS NULL").
		Where("scheduled_at > ? AND scheduled_at <= ?", asOf, asOf.Add(lead)).
		Find(&meetings).Error
	return meetings, err
}

// MarkReminderSent records that the reminder went out.
func (s *MeetingsStore) MarkReminderSent(meetingID string, at time.Time) error {
	tx := s.db.Model(&model.Meeting{}).
		Where("id = ? AND reminder_sent_at IS NULL", meetingID).
		Update("reminder_sent_at", at)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrMeetingNotFound
	}
	return nil
}

// InviteeContacts returns reminder recipients: invitees who have not
// declined.
func (s *MeetingsStore) InviteeContacts(meetingID string) ([]scheduler.Contact, error) {
	var contacts []scheduler.Contact
	err := s.db.Table("meeting_invitees").
		Select("meeting_invitees.user_id, users.email").
		Joins("JOIN users ON users.id = meeting_invitees.user_id").
		Where("meeting_invitees.meeting_id = ? AND meeting_invitees.response <> ?", meetingID, model.RSVPDeclined).
		Scan(&contacts).Error
	return contacts, err
}
