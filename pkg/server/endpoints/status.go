package endpoints

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/appboardguru/boardguru/pkg/cache"
	"github.com/appboardguru/boardguru/pkg/server"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// StatusResponse represents the response from GET /
type StatusResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// HealthResponse represents the response from GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// RegisterStatusEndpoints registers the status and health endpoints.
// Neither requires authentication.
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/", handleStatus()).Methods("GET")
	s.Router.HandleFunc("/health", handleHealth(s.HealthStore, s.Cache)).Methods("GET")
}

func handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("BOARDGURU_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		// JSON on request via Accept header or format query param
		accept := r.Header.Get("Accept")
		format := r.URL.Query().Get("format")
		if format == "json" || strings.Contains(accept, "application/json") {
			respondWithJSON(w, http.StatusOK, StatusResponse{
				Service: "boardguru",
				Version: version,
				Status:  "running",
			})
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width">
    <title>BoardGuru Status</title>
  </head>
  <body>
    <h1>BoardGuru is running!</h1>
    <p>Version %s</p>
  </body>
</html>
`, version)
	}
}

func handleHealth(health store.HealthStore, c *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok", Database: "ok", Cache: "ok"}
		code := http.StatusOK

		if err := health.Ping(); err != nil {
			resp.Status = "error"
			resp.Database = err.Error()
			code = http.StatusServiceUnavailable
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := c.Ping(ctx); err != nil {
			// the cache is optional; report but stay healthy
			resp.Cache = err.Error()
		}

		respondWithJSON(w, code, resp)
	}
}
