package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/notify"
)

type fakeMeetingStore struct {
	due          []model.Meeting
	dueErr       error
	marked       []string
	markErr      error
	contacts     map[string][]Contact
	contactsErr  error
	observedLead time.Duration
}

func (f *fakeMeetingStore) DueReminders(asOf time.Time, lead time.Duration) ([]model.Meeting, error) {
	f.observedLead = lead
	return f.due, f.dueErr
}

func (f *fakeMeetingStore) MarkReminderSent(meetingID string, at time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, meetingID)
	return nil
}

func (f *fakeMeetingStore) InviteeContacts(meetingID string) ([]Contact, error) {
	return f.contacts[meetingID], f.contactsErr
}

type fakeRegistrationStore struct {
	expired int64
	err     error
	calls   int
}

func (f *fakeRegistrationStore) ExpirePending(asOf time.Time) (int64, error) {
	f.calls++
	return f.expired, f.err
}

type fakeNotificationStore struct {
	created []*model.Notification
}

func (f *fakeNotificationStore) CreateNotification(n *model.Notification) error {
	f.created = append(f.created, n)
	return nil
}

func TestSendMeetingRemindersNotifiesInvitees(t *testing.T) {
	meetings := &fakeMeetingStore{
		due: []model.Meeting{
			{
				ID:             "m-1",
				OrganizationID: "o-1",
				Title:          "Q2 Board Review",
				ScheduledAt:    time.Now().UTC().Add(20 * time.Minute),
			},
		},
		contacts: map[string][]Contact{
			"m-1": {
				{UserID: "u-1", Email: "alice@example.com"},
				{UserID: "u-2", Email: "bob@example.com"},
			},
		},
	}
	notifications := &fakeNotificationStore{}
	notifier := notify.NewNotifier(notifications, nil, nil)

	s := New(meetings, &fakeRegistrationStore{}, notifier, nil, 30*time.Minute)
	s.SendMeetingReminders()

	assert.Equal(t, 30*time.Minute, meetings.observedLead)
	assert.Equal(t, []string{"m-1"}, meetings.marked)

	require.Len(t, notifications.created, 2)
	for _, n := range notifications.created {
		assert.Equal(t, model.NotificationKindMeetingReminder, n.Kind)
		assert.Contains(t, n.Title, "Q2 Board Review")
	}
}

func TestSendMeetingRemindersMarksBeforeDelivery(t *testing.T) {
	// a meeting whose invitee listing fails must still be marked, so a
	// transient error cannot cause a duplicate reminder later
	meetings := &fakeMeetingStore{
		due:         []model.Meeting{{ID: "m-1", OrganizationID: "o-1", Title: "X", ScheduledAt: time.Now()}},
		contactsErr: errors.New("db down"),
	}
	s := New(meetings, &fakeRegistrationStore{}, nil, nil, 30*time.Minute)
	s.SendMeetingReminders()
	assert.Equal(t, []string{"m-1"}, meetings.marked)
}

func TestSendMeetingRemindersSkipsOnMarkFailure(t *testing.T) {
	meetings := &fakeMeetingStore{
		due:     []model.Meeting{{ID: "m-1", OrganizationID: "o-1", Title: "X", ScheduledAt: time.Now()}},
		markErr: errors.New("locked"),
	}
	notifications := &fakeNotificationStore{}
	notifier := notify.NewNotifier(notifications, nil, nil)

	s := New(meetings, &fakeRegistrationStore{}, notifier, nil, 30*time.Minute)
	s.SendMeetingReminders()
	assert.Empty(t, notifications.created)
}

func TestExpireRegistrations(t *testing.T) {
	registrations := &fakeRegistrationStore{expired: 2}
	s := New(&fakeMeetingStore{}, registrations, nil, nil, 30*time.Minute)
	s.ExpireRegistrations()
	assert.Equal(t, 1, registrations.calls)
}
