package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/appboardguru/boardguru/pkg/mailer"
	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/notify"
)

// Contact identifies a reminder recipient.
type Contact struct {
	UserID string
	Email  string
}

// MeetingStore provides the queries the reminder job needs. Satisfied
// by the gorm meetings store.
type MeetingStore interface {
	// DueReminders returns scheduled meetings starting within lead of
	// asOf whose reminder has not been sent yet.
	DueReminders(asOf time.Time, lead time.Duration) ([]model.Meeting, error)
	MarkReminderSent(meetingID string, at time.Time) error
	// InviteeContacts returns the accepted and pending invitees of a
	// meeting; declined invitees get no reminder.
	InviteeContacts(meetingID string) ([]Contact, error)
}

// RegistrationStore provides the expiry sweep. Satisfied by the gorm
// registrations store.
type RegistrationStore interface {
	// ExpirePending marks pending requests past their deadline as
	// expired and returns how many rows changed.
	ExpirePending(asOf time.Time) (int64, error)
}

// Scheduler runs the periodic jobs: meeting reminders every minute and
// the registration expiry sweep every hour.
type Scheduler struct {
	cron          *cron.Cron
	meetings      MeetingStore
	registrations RegistrationStore
	notifier      *notify.Notifier
	mail          *mailer.Mailer
	reminderLead  time.Duration
}

func New(meetings MeetingStore, registrations RegistrationStore, notifier *notify.Notifier, mail *mailer.Mailer, reminderLead time.Duration) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		meetings:      meetings,
		registrations: registrations,
		notifier:      notifier,
		mail:          mail,
		reminderLead:  reminderLead,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", s.SendMeetingReminders); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@hourly", s.ExpireRegistrations); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("scheduler: started (reminder lead %s)", s.reminderLead)
	return nil
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// SendMeetingReminders notifies invitees of meetings starting within
// the configured lead window. Each meeting is reminded exactly once:
// the sent marker is written before delivery so a crash cannot cause
// a duplicate blast on restart.
func (s *Scheduler) SendMeetingReminders() {
	now := time.Now().UTC()
	meetings, err := s.meetings.DueReminders(now, s.reminderLead)
	if err != nil {
		log.Printf("scheduler: query due reminders: %v", err)
		return
	}

	for _, meeting := range meetings {
		if err := s.meetings.MarkReminderSent(meeting.ID, now); err != nil {
			log.Printf("scheduler: mark reminder sent for %s: %v", meeting.ID, err)
			continue
		}

		contacts, err := s.meetings.InviteeContacts(meeting.ID)
		if err != nil {
			log.Printf("scheduler: list invitees for %s: %v", meeting.ID, err)
			continue
		}

		userIDs := make([]string, 0, len(contacts))
		for _, contact := range contacts {
			userIDs = append(userIDs, contact.UserID)
			if s.mail.Enabled() {
				go func(c Contact) {
					if err := s.mail.SendMeetingReminder(c.Email, meeting.Title, meeting.ScheduledAt); err != nil {
						log.Printf("scheduler: remind %s: %v", c.Email, err)
					}
				}(contact)
			}
		}

		if s.notifier != nil {
			s.notifier.NotifyAll(context.Background(), userIDs, model.Notification{
				OrganizationID: &meeting.OrganizationID,
				Kind:           model.NotificationKindMeetingReminder,
				Title:          "Upcoming meeting: " + meeting.Title,
				Message:        "Starts at " + meeting.ScheduledAt.UTC().Format(time.RFC1123),
			})
		}

		log.Printf("scheduler: reminded %d invitees of meeting %s", len(contacts), meeting.ID)
	}
}

// ExpireRegistrations marks overdue pending registration requests as
// expired.
func (s *Scheduler) ExpireRegistrations() {
	count, err := s.registrations.ExpirePending(time.Now().UTC())
	if err != nil {
		log.Printf("scheduler: expire registrations: %v", err)
		return
	}
	if count > 0 {
		log.Printf("scheduler: expired %d registration requests", count)
	}
}
