package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

func TestSubmitRegistration(t *testing.T) {
	t.Run("new request is created and admins notified", func(t *testing.T) {
		s, stores := newTestServer(t)

		admin := model.User{ID: "root", Email: "root@example.com", PlatformAdmin: true, Status: model.UserStatusActive}
		inactiveAdmin := model.User{ID: "gone", Email: "gone@example.com", PlatformAdmin: true, Status: model.UserStatusSuspended}

		stores.Users.On("FindUserByEmail", "newcomer@example.com").Return(nil, store.ErrUserNotFound)
		stores.Registrations.On("FindPendingByEmail", "newcomer@example.com").Return(nil, store.ErrRegistrationNotFound)
		stores.Registrations.On("CreateRequest", mock.AnythingOfType("*model.RegistrationRequest")).
			Run(func(args mock.Arguments) {
				args.Get(0).(*model.RegistrationRequest).ID = "req-1"
			}).Return(nil)
		stores.Users.On("ListUsers", 1000, 0).Return([]model.User{admin, inactiveAdmin}, int64(2), nil)
		stores.Notifications.On("CreateNotification", mock.AnythingOfType("*model.Notification")).Return(nil)

		w := doRequest(s, "POST", "/registrations", "", `{"email":"newcomer@example.com","full_name":"New Comer","company":"Acme"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created model.RegistrationRequest
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, model.RegistrationStatusPending, created.Status)
		assert.True(t, created.Expiration.After(time.Now()))

		// only the active platform admin is notified in-app
		stores.Notifications.AssertNumberOfCalls(t, "CreateNotification", 1)
	})

	t.Run("existing account conflicts", func(t *testing.T) {
		s, stores := newTestServer(t)
		stores.Users.On("FindUserByEmail", "taken@example.com").
			Return(&model.User{ID: "u1", Email: "taken@example.com"}, nil)

		w := doRequest(s, "POST", "/registrations", "", `{"email":"taken@example.com","full_name":"Taken"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		stores.Registrations.AssertNotCalled(t, "CreateRequest", mock.Anything)
	})

	t.Run("pending duplicate conflicts", func(t *testing.T) {
		s, stores := newTestServer(t)
		stores.Users.On("FindUserByEmail", "waiting@example.com").Return(nil, store.ErrUserNotFound)
		stores.Registrations.On("FindPendingByEmail", "waiting@example.com").
			Return(&model.RegistrationRequest{ID: "req-7", Status: model.RegistrationStatusPending}, nil)

		w := doRequest(s, "POST", "/registrations", "", `{"email":"waiting@example.com","full_name":"Waiting"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		s, _ := newTestServer(t)
		w := doRequest(s, "POST", "/registrations", "", `{"email":"only@example.com"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestApproveRegistration(t *testing.T) {
	pendingRequest := func() *model.RegistrationRequest {
		return &model.RegistrationRequest{
			ID:          "req-1",
			Email:       "newcomer@example.com",
			FullName:    "New Comer",
			Status:      model.RegistrationStatusPending,
			Expiration:  time.Now().Add(time.Hour),
			TokenSHA256: model.HashToken("the-plain-token"),
		}
	}

	t.Run("pending token creates the user", func(t *testing.T) {
		s, stores := newTestServer(t)

		stores.Registrations.On("FindRequestByToken", "the-plain-token").Return(pendingRequest(), nil)
		stores.Users.On("CreateUser", mock.AnythingOfType("*model.User")).
			Run(func(args mock.Arguments) {
				user := args.Get(0).(*model.User)
				user.ID = "user-9"
				// the handler must have set a usable temporary password
				assert.NotEmpty(t, user.PasswordDigest)
			}).Return(nil)
		stores.Registrations.On("MarkReviewed", "req-1", model.RegistrationStatusApproved, "user-9").Return(nil)

		w := doRequest(s, "GET", "/registrations/approve?token=the-plain-token", "", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, model.RegistrationStatusApproved, resp["status"])
		assert.Equal(t, "user-9", resp["user_id"])
	})

	t.Run("second click on the link is a replay", func(t *testing.T) {
		s, stores := newTestServer(t)

		used := pendingRequest()
		used.Status = model.RegistrationStatusApproved
		stores.Registrations.On("FindRequestByToken", "the-plain-token").Return(used, nil)

		w := doRequest(s, "GET", "/registrations/approve?token=the-plain-token", "", "")
		assert.Equal(t, http.StatusConflict, w.Code)
		stores.Users.AssertNotCalled(t, "CreateUser", mock.Anything)
	})

	t.Run("expired token is marked and gone", func(t *testing.T) {
		s, stores := newTestServer(t)

		stale := pendingRequest()
		stale.Expiration = time.Now().Add(-time.Hour)
		stores.Registrations.On("FindRequestByToken", "the-plain-token").Return(stale, nil)
		stores.Registrations.On("MarkReviewed", "req-1", model.RegistrationStatusExpired, "").Return(nil)

		w := doRequest(s, "GET", "/registrations/approve?token=the-plain-token", "", "")
		assert.Equal(t, http.StatusGone, w.Code)
		stores.Registrations.AssertCalled(t, "MarkReviewed", "req-1", model.RegistrationStatusExpired, "")
		stores.Users.AssertNotCalled(t, "CreateUser", mock.Anything)
	})

	t.Run("unknown token is a 404", func(t *testing.T) {
		s, stores := newTestServer(t)
		stores.Registrations.On("FindRequestByToken", "bogus").Return(nil, store.ErrRegistrationNotFound)

		w := doRequest(s, "GET", "/registrations/approve?token=bogus", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing token is a 400", func(t *testing.T) {
		s, _ := newTestServer(t)
		w := doRequest(s, "GET", "/registrations/approve", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminApproveRegistration(t *testing.T) {
	pendingRequest := func() *model.RegistrationRequest {
		return &model.RegistrationRequest{
			ID:         "req-1",
			Email:      "newcomer@example.com",
			FullName:   "New Comer",
			Status:     model.RegistrationStatusPending,
			Expiration: time.Now().Add(time.Hour),
		}
	}

	t.Run("platform admin approves by ID", func(t *testing.T) {
		s, stores := newTestServer(t)
		token := bearerToken(t, s, "root", "root@example.com", true)

		stores.Registrations.On("FindRequestByID", "req-1").Return(pendingRequest(), nil)
		stores.Users.On("CreateUser", mock.AnythingOfType("*model.User")).
			Run(func(args mock.Arguments) {
				args.Get(0).(*model.User).ID = "user-9"
			}).Return(nil)
		stores.Registrations.On("MarkReviewed", "req-1", model.RegistrationStatusApproved, "root").Return(nil)

		w := doRequest(s, "POST", "/registrations/req-1/approve", token, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "user-9", resp["user_id"])
		// the admin, not the created user, is recorded as reviewer
		stores.Registrations.AssertCalled(t, "MarkReviewed", "req-1", model.RegistrationStatusApproved, "root")
	})

	t.Run("reviewed request conflicts", func(t *testing.T) {
		s, stores := newTestServer(t)
		token := bearerToken(t, s, "root", "root@example.com", true)

		reviewed := pendingRequest()
		reviewed.Status = model.RegistrationStatusRejected
		stores.Registrations.On("FindRequestByID", "req-1").Return(reviewed, nil)

		w := doRequest(s, "POST", "/registrations/req-1/approve", token, "")
		assert.Equal(t, http.StatusConflict, w.Code)
		stores.Users.AssertNotCalled(t, "CreateUser", mock.Anything)
	})

	t.Run("expired request is marked and gone", func(t *testing.T) {
		s, stores := newTestServer(t)
		token := bearerToken(t, s, "root", "root@example.com", true)

		stale := pendingRequest()
		stale.Expiration = time.Now().Add(-time.Hour)
		stores.Registrations.On("FindRequestByID", "req-1").Return(stale, nil)
		stores.Registrations.On("MarkReviewed", "req-1", model.RegistrationStatusExpired, "").Return(nil)

		w := doRequest(s, "POST", "/registrations/req-1/approve", token, "")
		assert.Equal(t, http.StatusGone, w.Code)
	})

	t.Run("regular user cannot approve", func(t *testing.T) {
		s, stores := newTestServer(t)
		token := bearerToken(t, s, "alice", "alice@example.com", false)

		w := doRequest(s, "POST", "/registrations/req-1/approve", token, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		stores.Registrations.AssertNotCalled(t, "FindRequestByID", mock.Anything)
	})
}

func TestListRegistrations(t *testing.T) {
	s, stores := newTestServer(t)

	stores.Registrations.On("ListRequests", "pending", mock.Anything, mock.Anything).
		Return([]model.RegistrationRequest{{ID: "req-1", Status: model.RegistrationStatusPending}}, int64(1), nil)

	t.Run("platform admin can list", func(t *testing.T) {
		token := bearerToken(t, s, "root", "root@example.com", true)
		w := doRequest(s, "GET", "/registrations?status=pending", token, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("regular user cannot list", func(t *testing.T) {
		token := bearerToken(t, s, "alice", "alice@example.com", false)
		w := doRequest(s, "GET", "/registrations?status=pending", token, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRejectRegistration(t *testing.T) {
	s, stores := newTestServer(t)
	token := bearerToken(t, s, "root", "root@example.com", true)

	stores.Registrations.On("FindRequestByID", "req-1").Return(&model.RegistrationRequest{
		ID:     "req-1",
		Email:  "newcomer@example.com",
		Status: model.RegistrationStatusPending,
	}, nil)
	stores.Registrations.On("FindRequestByID", "req-2").Return(&model.RegistrationRequest{
		ID:     "req-2",
		Email:  "late@example.com",
		Status: model.RegistrationStatusApproved,
	}, nil)
	stores.Registrations.On("MarkReviewed", "req-1", model.RegistrationStatusRejected, "root").Return(nil)

	t.Run("pending request can be rejected", func(t *testing.T) {
		w := doRequest(s, "POST", "/registrations/req-1/reject", token, `{"reason":"not a board member"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		stores.Registrations.AssertCalled(t, "MarkReviewed", "req-1", model.RegistrationStatusRejected, "root")
	})

	t.Run("reviewed request conflicts", func(t *testing.T) {
		w := doRequest(s, "POST", "/registrations/req-2/reject", token, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
