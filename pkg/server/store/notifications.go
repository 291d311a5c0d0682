package store

import (
	"errors"

	"github.com/appboardguru/boardguru/pkg/model"
)

// ErrNotificationNotFound is returned when no notification matches the
// lookup for the given user
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationsStore abstracts notification storage
type NotificationsStore interface {
	// CreateNotification inserts a notification row.
	CreateNotification(n *model.Notification) error

	// ListNotifications returns a page of a user's notifications,
	// newest first, optionally filtered by status, plus the total
	// count.
	ListNotifications(userID, status string, limit, offset int) ([]model.Notification, int64, error)

	// MarkRead marks one of the user's notifications read.
	// Returns ErrNotificationNotFound if the row is not theirs.
	MarkRead(userID, id string) error

	// MarkAllRead marks all of the user's unread notifications read and
	// returns how many rows changed.
	MarkAllRead(userID string) (int64, error)

	// ArchiveNotification moves one of the user's notifications to the
	// archived status.
	ArchiveNotification(userID, id string) error

	// UnreadCount returns the user's unread notification count.
	UnreadCount(userID string) (int64, error)
}
