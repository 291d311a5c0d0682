// Package scheduler runs the background jobs: meeting reminders and
// the registration request expiry sweep, driven by cron schedules.
package scheduler
