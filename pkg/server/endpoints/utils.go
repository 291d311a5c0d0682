package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/appboardguru/boardguru/pkg/config"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// listPage reads limit/offset query params, clamping limit to the
// configured maximum.
func listPage(r *http.Request, cfg *config.Config) (limit, offset int) {
	limit = cfg.APIListLimitMax
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n < limit {
			limit = n
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}

// listResponse is the standard shape for paginated collections.
type listResponse struct {
	Count int64       `json:"count"`
	Items interface{} `json:"items"`
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return false
	}
	return true
}
