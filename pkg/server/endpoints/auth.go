package endpoints

import (
	"net/http"
	"time"

	"github.com/appboardguru/boardguru/pkg/audit"
	"github.com/appboardguru/boardguru/pkg/server"
	"github.com/appboardguru/boardguru/pkg/server/middleware"
	"github.com/appboardguru/boardguru/pkg/server/store"
	"github.com/appboardguru/boardguru/pkg/session"
)

// LoginRequest is the body of POST /authn/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterAuthEndpoints registers the login endpoint, rate limited per
// client.
func RegisterAuthEndpoints(s *server.Server) {
	authRouter := s.Router.PathPrefix("/authn").Subrouter()
	authRouter.Use(s.LoginLimiter.Middleware)

	authRouter.HandleFunc("/login", handleLogin(s.UsersStore, s.Issuer)).Methods("POST")
}

func handleLogin(users store.UsersStore, issuer *session.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		ip := ""
		if peer := middleware.ClientIP(r); peer != nil {
			ip = peer.String()
		}

		fail := func(reason string) {
			audit.Log(audit.AuthenticateEvent{
				Email:        req.Email,
				ClientIP:     ip,
				Success:      false,
				ErrorMessage: reason,
			})
			// uniform response; no account enumeration
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		}

		user, err := users.FindUserByEmail(req.Email)
		if err != nil {
			fail("unknown user")
			return
		}
		if !user.IsActive() {
			fail("account suspended")
			return
		}
		if !user.CheckPassword(req.Password) {
			fail("bad password")
			return
		}

		token, expiresAt, err := issuer.Issue(user.ID, user.Email, user.PlatformAdmin)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to issue session token")
			return
		}

		audit.Log(audit.AuthenticateEvent{
			UserID:   user.ID,
			Email:    user.Email,
			ClientIP: ip,
			Success:  true,
		})

		respondWithJSON(w, http.StatusOK, LoginResponse{
			Token:     token,
			ExpiresAt: expiresAt,
		})
	}
}
