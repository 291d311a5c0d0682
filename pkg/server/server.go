package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/appboardguru/boardguru/pkg/cache"
	"github.com/appboardguru/boardguru/pkg/config"
	"github.com/appboardguru/boardguru/pkg/mailer"
	"github.com/appboardguru/boardguru/pkg/notify"
	"github.com/appboardguru/boardguru/pkg/server/middleware"
	"github.com/appboardguru/boardguru/pkg/server/store"
	storegorm "github.com/appboardguru/boardguru/pkg/server/store/gorm"
	"github.com/appboardguru/boardguru/pkg/session"
)

// Server carries the router, stores and shared services the endpoint
// handlers close over.
type Server struct {
	Router   *mux.Router
	DB       *gorm.DB
	Config   *config.Config
	Keystore *session.KeyStore
	Issuer   *session.Issuer
	Verifier *session.Verifier

	Auth         *middleware.Authenticator
	LoginLimiter *middleware.RateLimiter

	Notifier *notify.Notifier
	Cache    *cache.Cache
	Mailer   *mailer.Mailer

	UsersStore         store.UsersStore
	RegistrationsStore store.RegistrationsStore
	OrganizationsStore store.OrganizationsStore
	VaultsStore        store.VaultsStore
	AssetsStore        store.AssetsStore
	MeetingsStore      store.MeetingsStore
	NotificationsStore store.NotificationsStore
	AnnotationsStore   store.AnnotationsStore
	AuthzStore         store.AuthzStore
	HealthStore        store.HealthStore

	srv *http.Server
}

// NewServer wires the stores and middleware over the given connection
// and returns a server listening on host:port when started.
func NewServer(
	cfg *config.Config,
	db *gorm.DB,
	keystore *session.KeyStore,
	c *cache.Cache,
	mail *mailer.Mailer,
	host string,
	port string,
) *Server {
	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	verifier := session.NewVerifier(keystore)
	notificationsStore := storegorm.NewNotificationsStore(db)

	return &Server{
		Router:   router,
		DB:       db,
		Config:   cfg,
		Keystore: keystore,
		Issuer:   session.NewIssuer(keystore, cfg.SessionTTL()),
		Verifier: verifier,

		Auth:         middleware.NewAuthenticator(verifier),
		LoginLimiter: middleware.NewRateLimiter(cfg.AuthRatePerMinute),

		Notifier: notify.NewNotifier(notificationsStore, notify.NewHub(), c),
		Cache:    c,
		Mailer:   mail,

		UsersStore:         storegorm.NewUsersStore(db),
		RegistrationsStore: storegorm.NewRegistrationsStore(db),
		OrganizationsStore: storegorm.NewOrganizationsStore(db),
		VaultsStore:        storegorm.NewVaultsStore(db),
		AssetsStore:        storegorm.NewAssetsStore(db),
		MeetingsStore:      storegorm.NewMeetingsStore(db),
		NotificationsStore: notificationsStore,
		AnnotationsStore:   storegorm.NewAnnotationsStore(db),
		AuthzStore:         storegorm.NewAuthzStore(db),
		HealthStore:        storegorm.NewHealthStore(db),

		srv: srv,
	}
}

// Start blocks serving HTTP until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
