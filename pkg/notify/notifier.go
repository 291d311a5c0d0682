package notify

import (
	"context"
	"log"

	"github.com/appboardguru/boardguru/pkg/cache"
	"github.com/appboardguru/boardguru/pkg/model"
)

// Store persists notifications. Satisfied by the gorm notifications
// store.
type Store interface {
	CreateNotification(n *model.Notification) error
}

// Notifier is the single write path for in-app notifications: it
// persists the row, invalidates the user's cached unread count and
// pushes the payload to any open WebSockets.
type Notifier struct {
	store Store
	hub   *Hub
	cache *cache.Cache
}

func NewNotifier(store Store, hub *Hub, c *cache.Cache) *Notifier {
	return &Notifier{
		store: store,
		hub:   hub,
		cache: c,
	}
}

// Hub exposes the underlying hub for the streaming endpoint.
func (n *Notifier) Hub() *Hub {
	return n.hub
}

// Notify delivers one notification. Persistence failures are returned;
// push delivery is best effort.
func (n *Notifier) Notify(ctx context.Context, notification *model.Notification) error {
	if notification.Status == "" {
		notification.Status = model.NotificationStatusUnread
	}
	if err := n.store.CreateNotification(notification); err != nil {
		return err
	}

	n.cache.InvalidateUnreadCount(ctx, notification.UserID)

	if n.hub != nil {
		n.hub.Publish(notification.UserID, notification)
	}
	return nil
}

// NotifyAll fans one notification out to several users, cloning the
// template per recipient. Per-user failures are logged and skipped so
// one bad row cannot block the rest.
func (n *Notifier) NotifyAll(ctx context.Context, userIDs []string, template model.Notification) {
	for _, userID := range userIDs {
		notification := template
		notification.ID = ""
		notification.UserID = userID
		if err := n.Notify(ctx, &notification); err != nil {
			log.Printf("notify: deliver to %s: %v", userID, err)
		}
	}
}
