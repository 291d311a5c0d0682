package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/appboardguru/boardguru/pkg/config"
	"github.com/appboardguru/boardguru/pkg/identity"
	"github.com/appboardguru/boardguru/pkg/session"
)

// Authenticator is middleware that validates session bearer tokens
type Authenticator struct {
	Verifier *session.Verifier
}

// NewAuthenticator creates a new session authenticator middleware
func NewAuthenticator(verifier *session.Verifier) *Authenticator {
	return &Authenticator{Verifier: verifier}
}

// Middleware returns an HTTP middleware that validates bearer tokens
// and places the authenticated identity on the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenStr == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		claims, err := a.Verifier.Verify(tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid session token"))
			return
		}

		id := &identity.Identity{
			UserID:        claims.Subject,
			Email:         claims.Email,
			PlatformAdmin: claims.PlatformAdmin,
			IssuedAt:      claims.IssuedAt.Time,
			ExpiresAt:     claims.ExpiresAt.Time,
		}
		id.WithRemoteIP(ClientIP(r))

		r = r.WithContext(identity.Set(r.Context(), id))
		next.ServeHTTP(w, r)
	})
}

// ClientIP resolves the caller's address, honoring X-Forwarded-For only
// when the direct peer is a trusted proxy.
func ClientIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer := net.ParseIP(host)

	cfg := config.Get()
	if cfg != nil && peer != nil && cfg.IsTrustedProxy(host) {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			// leftmost entry is the originating client
			first := strings.TrimSpace(strings.Split(fwd, ",")[0])
			if ip := net.ParseIP(first); ip != nil {
				return ip
			}
		}
	}
	return peer
}
