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

func TestLogin(t *testing.T) {
	s, stores := newTestServer(t)

	alice := &model.User{ID: "alice", Email: "alice@example.com", FullName: "Alice", Status: model.UserStatusActive}
	require.NoError(t, alice.SetPassword("correct horse"))

	suspended := &model.User{ID: "carol", Email: "carol@example.com", FullName: "Carol", Status: model.UserStatusSuspended}
	require.NoError(t, suspended.SetPassword("carol pass"))

	stores.Users.On("FindUserByEmail", "alice@example.com").Return(alice, nil)
	stores.Users.On("FindUserByEmail", "carol@example.com").Return(suspended, nil)
	stores.Users.On("FindUserByEmail", "nobody@example.com").Return(nil, store.ErrUserNotFound)

	t.Run("valid credentials issue a verifiable token", func(t *testing.T) {
		w := doRequest(s, "POST", "/authn/login", "", `{"email":"alice@example.com","password":"correct horse"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)

		// the issued token works against an authenticated endpoint
		whoami := doRequest(s, "GET", "/whoami", resp.Token, "")
		require.Equal(t, http.StatusOK, whoami.Code)

		var who WhoamiResponse
		require.NoError(t, json.Unmarshal(whoami.Body.Bytes(), &who))
		assert.Equal(t, "alice", who.UserID)
		assert.Equal(t, "alice@example.com", who.Email)
		assert.False(t, who.PlatformAdmin)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		w := doRequest(s, "POST", "/authn/login", "", `{"email":"alice@example.com","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user gets the same response as a wrong password", func(t *testing.T) {
		unknown := doRequest(s, "POST", "/authn/login", "", `{"email":"nobody@example.com","password":"x"}`)
		wrong := doRequest(s, "POST", "/authn/login", "", `{"email":"alice@example.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, unknown.Body.String(), wrong.Body.String())
	})

	t.Run("suspended account cannot log in", func(t *testing.T) {
		w := doRequest(s, "POST", "/authn/login", "", `{"email":"carol@example.com","password":"carol pass"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		w := doRequest(s, "POST", "/authn/login", "", `{"email":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWhoamiRequiresToken(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(s, "GET", "/whoami", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(s, "GET", "/whoami", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
