package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHealth(t *testing.T) {
	client := &http.Client{Timeout: time.Second}

	t.Run("healthy server", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok","database":"ok","cache":"ok"}`))
		}))
		defer srv.Close()

		health, err := checkHealth(client, srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "ok", health.Status)
	})

	t.Run("database down", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"error","database":"connection refused"}`))
		}))
		defer srv.Close()

		health, err := checkHealth(client, srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "error", health.Status)
		assert.Equal(t, "connection refused", health.Database)
	})

	t.Run("server unreachable", func(t *testing.T) {
		srv := httptest.NewServer(nil)
		srv.Close()

		_, err := checkHealth(client, srv.URL)
		assert.Error(t, err)
	})
}
