package endpoints

import (
	"net/http"
	"time"

	"github.com/appboardguru/boardguru/pkg/server"
)

// WhoamiResponse represents the response from the /whoami endpoint
type WhoamiResponse struct {
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	PlatformAdmin bool      `json:"platform_admin"`
	ClientIP      string    `json:"client_ip,omitempty"`
	TokenIssued   time.Time `json:"token_issued_at"`
	TokenExpires  time.Time `json:"token_expires_at"`
}

// RegisterWhoamiEndpoint registers the /whoami endpoint
func RegisterWhoamiEndpoint(s *server.Server) {
	whoamiRouter := s.Router.PathPrefix("/whoami").Subrouter()
	whoamiRouter.Use(s.Auth.Middleware)

	whoamiRouter.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		respondWithJSON(w, http.StatusOK, WhoamiResponse{
			UserID:        id.UserID,
			Email:         id.Email,
			PlatformAdmin: id.PlatformAdmin,
			ClientIP:      clientIP(id),
			TokenIssued:   id.IssuedAt,
			TokenExpires:  id.ExpiresAt,
		})
	}
}
