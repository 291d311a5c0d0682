package endpoints

import (
	"crypto/rand"
	"crypto/rsa"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/appboardguru/boardguru/pkg/config"
	"github.com/appboardguru/boardguru/pkg/identity"
	"github.com/appboardguru/boardguru/pkg/notify"
	"github.com/appboardguru/boardguru/pkg/server"
	"github.com/appboardguru/boardguru/pkg/server/middleware"
	"github.com/appboardguru/boardguru/pkg/session"
)

var (
	testKeyOnce sync.Once
	testKey     *rsa.PrivateKey
)

// testSigningKey returns a process-wide RSA key so each test does not
// pay for key generation.
func testSigningKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatalf("generate signing key: %v", err)
		}
		testKey = key
	})
	return testKey
}

// testStores bundles the mock stores wired into a test server.
type testStores struct {
	Users         *MockUsersStore
	Registrations *MockRegistrationsStore
	Organizations *MockOrganizationsStore
	Vaults        *MockVaultsStore
	Assets        *MockAssetsStore
	Meetings      *MockMeetingsStore
	Notifications *MockNotificationsStore
	Annotations   *MockAnnotationsStore
	Authz         *MockAuthzStore
	Health        *MockHealthStore
}

// newTestServer builds a server over mock stores with a static signing
// key and no database, Redis or SMTP. Endpoints still go through the
// real router and auth middleware.
func newTestServer(t *testing.T) (*server.Server, *testStores) {
	t.Helper()

	cfg := config.Get()
	keystore := session.NewStaticKeyStore(testSigningKey(t))
	verifier := session.NewVerifier(keystore)

	stores := &testStores{
		Users:         NewMockUsersStore(),
		Registrations: NewMockRegistrationsStore(),
		Organizations: NewMockOrganizationsStore(),
		Vaults:        NewMockVaultsStore(),
		Assets:        NewMockAssetsStore(),
		Meetings:      NewMockMeetingsStore(),
		Notifications: NewMockNotificationsStore(),
		Annotations:   NewMockAnnotationsStore(),
		Authz:         NewMockAuthzStore(),
		Health:        NewMockHealthStore(),
	}

	s := &server.Server{
		Router:   mux.NewRouter().UseEncodedPath(),
		Config:   cfg,
		Keystore: keystore,
		Issuer:   session.NewIssuer(keystore, time.Hour),
		Verifier: verifier,

		Auth:         middleware.NewAuthenticator(verifier),
		LoginLimiter: middleware.NewRateLimiter(1000),

		Notifier: notify.NewNotifier(stores.Notifications, notify.NewHub(), nil),

		UsersStore:         stores.Users,
		RegistrationsStore: stores.Registrations,
		OrganizationsStore: stores.Organizations,
		VaultsStore:        stores.Vaults,
		AssetsStore:        stores.Assets,
		MeetingsStore:      stores.Meetings,
		NotificationsStore: stores.Notifications,
		AnnotationsStore:   stores.Annotations,
		AuthzStore:         stores.Authz,
		HealthStore:        stores.Health,
	}
	RegisterAll(s)
	return s, stores
}

// bearerToken issues a session token for the test user.
func bearerToken(t *testing.T, s *server.Server, userID, email string, platformAdmin bool) string {
	t.Helper()
	token, _, err := s.Issuer.Issue(userID, email, platformAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// doRequest runs a request through the full router with a bearer token.
func doRequest(s *server.Server, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// requestWithIdentity builds a request carrying an authenticated
// identity, for calling handlers directly without the middleware.
func requestWithIdentity(method, target, body string, id *identity.Identity) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(identity.Set(req.Context(), id))
	return req
}

// withMuxVars attaches route variables the way the router would.
func withMuxVars(req *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(req, vars)
}

func testIdentity(userID string, platformAdmin bool) *identity.Identity {
	id := &identity.Identity{
		UserID:        userID,
		Email:         userID + "@example.com",
		PlatformAdmin: platformAdmin,
		IssuedAt:      time.Now(),
		ExpiresAt:     time.Now().Add(time.Hour),
	}
	id.WithRemoteIP(net.ParseIP("192.0.2.10"))
	return id
}
