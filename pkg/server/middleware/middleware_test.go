package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appboardguru/boardguru/pkg/identity"
	"github.com/appboardguru/boardguru/pkg/session"
)

func testSession(t *testing.T) (*session.Issuer, *Authenticator) {
	t.Helper()

	private, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	ks := session.NewStaticKeyStore(private)
	return session.NewIssuer(ks, time.Hour), NewAuthenticator(session.NewVerifier(ks))
}

func echoIdentity(t *testing.T, captured **identity.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		require.True(t, ok)
		*captured = id
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticatorAcceptsValidToken(t *testing.T) {
	issuer, auth := testSession(t)
	token, _, err := issuer.Issue("u-1", "alice@example.com", true)
	require.NoError(t, err)

	var captured *identity.Identity
	handler := auth.Middleware(echoIdentity(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.RemoteAddr = "203.0.113.7:54321"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "u-1", captured.UserID)
	assert.Equal(t, "alice@example.com", captured.Email)
	assert.True(t, captured.PlatformAdmin)
	assert.Equal(t, "203.0.113.7", captured.RemoteIP.String())
}

func TestAuthenticatorRejectsMissingHeader(t *testing.T) {
	_, auth := testSession(t)
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticatorRejectsNonBearerScheme(t *testing.T) {
	_, auth := testSession(t)
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticatorRejectsBadToken(t *testing.T) {
	_, auth := testSession(t)
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/authn/login", nil)
		req.RemoteAddr = "198.51.100.1:1000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/authn/login", nil)
	req.RemoteAddr = "198.51.100.1:1000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))

	// a different client is unaffected
	req = httptest.NewRequest(http.MethodPost, "/authn/login", nil)
	req.RemoteAddr = "198.51.100.2:1000"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
