package endpoints

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/appboardguru/boardguru/pkg/cache"
	"github.com/appboardguru/boardguru/pkg/config"
	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/notify"
	"github.com/appboardguru/boardguru/pkg/server"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// UnreadCountResponse reports a user's unread notification count
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

// MarkAllReadResponse reports how many notifications were marked read
type MarkAllReadResponse struct {
	Marked int64 `json:"marked"`
}

// RegisterNotificationEndpoints registers the notification inbox and
// the WebSocket stream.
func RegisterNotificationEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/notifications").Subrouter()
	r.Use(s.Auth.Middleware)

	r.HandleFunc("", handleListNotifications(s.NotificationsStore, s.Config)).Methods("GET")
	r.HandleFunc("/count", handleUnreadCount(s.NotificationsStore, s.Cache)).Methods("GET")
	r.HandleFunc("/stream", handleNotificationStream(s.Notifier)).Methods("GET")
	r.HandleFunc("/read-all", handleMarkAllRead(s.NotificationsStore, s.Cache)).Methods("POST")
	r.HandleFunc("/{notification_id}/read", handleMarkRead(s.NotificationsStore, s.Cache)).Methods("POST")
	r.HandleFunc("/{notification_id}/archive", handleArchiveNotification(s.NotificationsStore, s.Cache)).Methods("POST")
}

func handleListNotifications(notifications store.NotificationsStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		status := r.URL.Query().Get("status")
		if status != "" && !model.ValidNotificationStatus(status) {
			respondWithError(w, http.StatusUnprocessableEntity, "Unknown notification status")
			return
		}

		limit, offset := listPage(r, cfg)
		items, count, err := notifications.ListNotifications(id.UserID, status, limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list notifications")
			return
		}
		respondWithJSON(w, http.StatusOK, listResponse{Count: count, Items: items})
	}
}

// handleUnreadCount serves the count from Redis when cached, falling
// back to the database and repopulating the cache on a miss.
func handleUnreadCount(notifications store.NotificationsStore, c *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		if count, hit := c.UnreadCount(r.Context(), id.UserID); hit {
			respondWithJSON(w, http.StatusOK, UnreadCountResponse{Unread: count})
			return
		}

		count, err := notifications.UnreadCount(id.UserID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to count notifications")
			return
		}
		c.SetUnreadCount(r.Context(), id.UserID, count)
		respondWithJSON(w, http.StatusOK, UnreadCountResponse{Unread: count})
	}
}

func handleNotificationStream(notifier *notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		notifier.Hub().Serve(w, r, id.UserID)
	}
}

func handleMarkRead(notifications store.NotificationsStore, c *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		if err := notifications.MarkRead(id.UserID, mux.Vars(r)["notification_id"]); err != nil {
			if errors.Is(err, store.ErrNotificationNotFound) {
				respondWithError(w, http.StatusNotFound, "Notification not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to mark notification read")
			return
		}
		c.InvalidateUnreadCount(r.Context(), id.UserID)
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleMarkAllRead(notifications store.NotificationsStore, c *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		marked, err := notifications.MarkAllRead(id.UserID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to mark notifications read")
			return
		}
		c.InvalidateUnreadCount(r.Context(), id.UserID)
		respondWithJSON(w, http.StatusOK, MarkAllReadResponse{Marked: marked})
	}
}

func handleArchiveNotification(notifications store.NotificationsStore, c *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		if err := notifications.ArchiveNotification(id.UserID, mux.Vars(r)["notification_id"]); err != nil {
			if errors.Is(err, store.ErrNotificationNotFound) {
				respondWithError(w, http.StatusNotFound, "Notification not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to archive notification")
			return
		}
		c.InvalidateUnreadCount(r.Context(), id.UserID)
		w.WriteHeader(http.StatusNoContent)
	}
}
