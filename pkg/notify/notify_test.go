package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appboardguru/boardguru/pkg/model"
)

type fakeStore struct {
	created []*model.Notification
	err     error
}

func (f *fakeStore) CreateNotification(n *model.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, n)
	return nil
}

func TestNotifyPersistsAndDefaultsStatus(t *testing.T) {
	store := &fakeStore{}
	notifier := NewNotifier(store, NewHub(), nil)

	err := notifier.Notify(context.Background(), &model.Notification{
		UserID: "u-1",
		Kind:   model.NotificationKindMeetingInvite,
		Title:  "Invited to Q2 Board Review",
	})
	require.NoError(t, err)
	require.Len(t, store.created, 1)
	assert.Equal(t, model.NotificationStatusUnread, store.created[0].Status)
}

func TestNotifyReturnsStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("insert failed")}
	notifier := NewNotifier(store, nil, nil)

	err := notifier.Notify(context.Background(), &model.Notification{
		UserID: "u-1",
		Kind:   model.NotificationKindVault,
		Title:  "Vault archived",
	})
	assert.Error(t, err)
}

func TestNotifyAllClonesPerRecipient(t *testing.T) {
	store := &fakeStore{}
	notifier := NewNotifier(store, nil, nil)

	notifier.NotifyAll(context.Background(), []string{"u-1", "u-2", "u-3"}, model.Notification{
		Kind:  model.NotificationKindMeetingReminder,
		Title: "Meeting starts soon",
	})

	require.Len(t, store.created, 3)
	seen := map[string]bool{}
	for _, n := range store.created {
		seen[n.UserID] = true
	}
	assert.Len(t, seen, 3)
}

func TestHubPublishReachesConnectedClient(t *testing.T) {
	hub := NewHub()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, "u-1")
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// wait for registration
	require.Eventually(t, func() bool {
		return hub.Connections("u-1") == 1
	}, time.Second, 10*time.Millisecond)

	hub.Publish("u-1", map[string]string{"title": "hello"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title":"hello"`)
}

func TestHubPublishToDisconnectedUserIsNoOp(t *testing.T) {
	hub := NewHub()
	hub.Publish("nobody", map[string]string{"title": "hello"})
	assert.Equal(t, 0, hub.Connections("nobody"))
}
