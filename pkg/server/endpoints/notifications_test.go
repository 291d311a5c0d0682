package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

func TestListNotifications(t *testing.T) {
	s, stores := newTestServer(t)
	token := bearerToken(t, s, "alice", "alice@example.com", false)

	stores.Notifications.On("ListNotifications", "alice", "unread", 100, 0).
		Return([]model.Notification{
			{ID: "n1", UserID: "alice", Kind: model.NotificationKindMeetingInvite, Status: model.NotificationStatusUnread},
		}, int64(1), nil)

	t.Run("status filter applies", func(t *testing.T) {
		w := doRequest(s, "GET", "/notifications?status=unread", token, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Count int64                `json:"count"`
			Items []model.Notification `json:"items"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.Count)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		w := doRequest(s, "GET", "/notifications?status=starred", token, "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestUnreadCount(t *testing.T) {
	// no Redis in the fixture, so the handler must fall back to the
	// database on every read
	s, stores := newTestServer(t)
	token := bearerToken(t, s, "alice", "alice@example.com", false)

	stores.Notifications.On("UnreadCount", "alice").Return(int64(4), nil)

	w := doRequest(s, "GET", "/notifications/count", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp UnreadCountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(4), resp.Unread)
}

func TestMarkNotifications(t *testing.T) {
	t.Run("mark one read", func(t *testing.T) {
		s, stores := newTestServer(t)
		token := bearerToken(t, s, "alice", "alice@example.com", false)
		stores.Notifications.On("MarkRead", "alice", "n1").Return(nil)

		w := doRequest(s, "POST", "/notifications/n1/read", token, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("cannot touch another user's notification", func(t *testing.T) {
		s, stores := newTestServer(t)
		token := bearerToken(t, s, "alice", "alice@example.com", false)
		stores.Notifications.On("MarkRead", "alice", "n-bob").Return(store.ErrNotificationNotFound)

		w := doRequest(s, "POST", "/notifications/n-bob/read", token, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("mark all read reports the count", func(t *testing.T) {
		s, stores := newTestServer(t)
		token := bearerToken(t, s, "alice", "alice@example.com", false)
		stores.Notifications.On("MarkAllRead", "alice").Return(int64(3), nil)

		w := doRequest(s, "POST", "/notifications/read-all", token, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp MarkAllReadResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(3), resp.Marked)
	})

	t.Run("archive", func(t *testing.T) {
		s, stores := newTestServer(t)
		token := bearerToken(t, s, "alice", "alice@example.com", false)
		stores.Notifications.On("ArchiveNotification", "alice", "n1").Return(nil)

		w := doRequest(s, "POST", "/notifications/n1/archive", token, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
