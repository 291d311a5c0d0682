package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusEndpoint(t *testing.T) {
	t.Run("html by default", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doRequest(s, "GET", "/", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "BoardGuru is running!")
	})

	t.Run("json on request", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doRequest(s, "GET", "/?format=json", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp StatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "boardguru", resp.Service)
		assert.Equal(t, "running", resp.Status)
		assert.NotEmpty(t, resp.Version)
	})
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("healthy database", func(t *testing.T) {
		s, stores := newTestServer(t)
		stores.Health.On("Ping").Return(nil)

		w := doRequest(s, "GET", "/health", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "ok", resp.Database)
	})

	t.Run("database down is a 503", func(t *testing.T) {
		s, stores := newTestServer(t)
		stores.Health.On("Ping").Return(errors.New("connection refused"))

		w := doRequest(s, "GET", "/health", "", "")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
	})
}
