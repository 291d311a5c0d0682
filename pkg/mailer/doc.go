// Package mailer sends transactional email (approval links, welcome
// mail with temporary passwords, meeting reminders) through a plain
// SMTP relay. When no relay is configured every send is a no-op.
package mailer
