package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"
)

// Mailer sends transactional mail over SMTP. A Mailer with an empty
// address is a no-op, so callers never need to check whether mail is
// configured before sending.
type Mailer struct {
	address string
	from    string

	// sendMail is swapped out in tests
	sendMail func(addr, from string, to []string, msg []byte) error
}

func New(address, from string) *Mailer {
	m := &Mailer{
		address: address,
		from:    from,
	}
	m.sendMail = func(addr, from string, to []string, msg []byte) error {
		return smtp.SendMail(addr, nil, from, to, msg)
	}
	return m
}

// Enabled reports whether an SMTP relay is configured.
func (m *Mailer) Enabled() bool {
	return m != nil && m.address != ""
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.Enabled() {
		return nil
	}
	msg := BuildMessage(m.from, to, subject, body)
	if err := m.sendMail(m.address, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}

// SendAsync delivers in the background and logs failures. Mail is
// best-effort; a down relay must never fail the request that
// triggered it.
func (m *Mailer) SendAsync(to, subject, body string) {
	if !m.Enabled() {
		return
	}
	go func() {
		if err := m.send(to, subject, body); err != nil {
			log.Printf("%v", err)
		}
	}()
}

// SendApprovalRequest notifies a reviewer that a registration request
// is waiting, with the one-time approval link.
func (m *Mailer) SendApprovalRequest(to, applicantEmail, applicantName, approveURL string) error {
	subject := fmt.Sprintf("Registration request from %s", applicantEmail)
	body := fmt.Sprintf(
		"%s (%s) has requested access.\n\n"+
			"To approve, open:\n\n    %s\n\n"+
			"The link is valid for a limited time and can be used once.\n",
		applicantName, applicantEmail, approveURL)
	return m.send(to, subject, body)
}

// SendWelcome delivers the temporary password to a newly approved user.
func (m *Mailer) SendWelcome(to, tempPassword string) error {
	subject := "Your BoardGuru account is ready"
	body := fmt.Sprintf(
		"Your registration was approved.\n\n"+
			"Temporary password:\n\n    %s\n\n"+
			"Sign in and change it right away.\n",
		tempPassword)
	return m.send(to, subject, body)
}

// SendRejection tells an applicant their request was declined.
func (m *Mailer) SendRejection(to, reason string) error {
	subject := "Your BoardGuru registration"
	body := "Your registration request was not approved.\n"
	if reason != "" {
		body += "\nReason: " + reason + "\n"
	}
	return m.send(to, subject, body)
}

// SendMeetingReminder reminds an invitee of an upcoming meeting.
func (m *Mailer) SendMeetingReminder(to, title string, startsAt time.Time) error {
	subject := fmt.Sprintf("Reminder: %s", title)
	body := fmt.Sprintf(
		"The meeting %q starts at %s.\n",
		title, startsAt.UTC().Format(time.RFC1123))
	return m.send(to, subject, body)
}

// BuildMessage assembles an RFC822 message with CRLF line endings.
func BuildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
