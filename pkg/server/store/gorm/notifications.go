package gorm

import (
	"time"

	"gorm.io/gorm"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// Ensure NotificationsStore implements store.NotificationsStore
var _ store.NotificationsStore = (*NotificationsStore)(nil)

// NotificationsStore implements store.NotificationsStore using GORM
type NotificationsStore struct {
	db *gorm.DB
}

// NewNotificationsStore creates a new NotificationsStore
func NewNotificationsStore(db *gorm.DB) *NotificationsStore {
	return &NotificationsStore{db: db}
}

// CreateNotification inserts a notification row.
func (s *NotificationsStore) CreateNotification(n *model.Notification) error {
	return s.db.Create(n).Error
}

// ListNotifications returns a page of a user's notifications, newest
// first.
func (s *NotificationsStore) ListNotifications(userID, status string, limit, offset int) ([]model.Notification, int64, error) {
	base := s.db.Model(&model.Notification{}).Where("user_id = ?", userID)
	if status != "" {
		base = base.Where("status = ?", status)
	}

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var notifications []model.Notification
	err := base.Order("created_at desc").Limit(limit).Offset(offset).Find(&notifications).Error
	return notifications, count, err
}

// MarkRead marks one of the user's notifications read.
func (s *NotificationsStore) MarkRead(userID, id string) error {
	now := time.Now().UTC()
	tx := s.db.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"status":  model.NotificationStatusRead,
			"read_at": now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks all of the user's unread notifications read.
func (s *NotificationsStore) MarkAllRead(userID string) (int64, error) {
	now := time.Now().UTC()
	tx := s.db.Model(&model.Notification{}).
		Where("user_id = ? AND status = ?", userID, model.NotificationStatusUnread).
		Updates(map[string]interface{}{
			"status":  model.NotificationStatusRead,
			"read_at": now,
		})
	return tx.RowsAffected, tx.Error
}

// ArchiveNotification moves one of the user's notifications to the
// archived status.
func (s *NotificationsStore) ArchiveNotification(userID, id string) error {
	tx := s.db.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", model.NotificationStatusArchived)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotificationNotFound
	}
	return nil
}

// UnreadCount returns the user's unread notification count.
func (s *NotificationsStore) UnreadCount(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&model.Notification{}).
		Where("user_id = ? AND status = ?", userID, model.NotificationStatusUnread).
		Count(&count).Error
	return count, err
}
