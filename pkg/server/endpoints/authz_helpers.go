package endpoints

import (
	"net/http"

	"github.com/appboardguru/boardguru/pkg/identity"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// requireIdentity extracts the authenticated identity or writes a 401.
func requireIdentity(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	id, ok := identity.Get(r.Context())
	if !ok || id == nil {
		respondWithError(w, http.StatusUnauthorized, "Unable to determine identity")
		return nil, false
	}
	return id, true
}

// requirePrivilege checks the caller's membership privilege in an
// organization and writes the error response on failure. Platform
// admins pass every check.
func requirePrivilege(w http.ResponseWriter, r *http.Request, authz store.AuthzStore, orgID, privilege string) (*identity.Identity, bool) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return nil, false
	}
	if id.PlatformAdmin {
		return id, true
	}

	allowed, err := authz.IsAllowed(id.UserID, orgID, privilege)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Authorization check failed")
		return nil, false
	}
	if !allowed {
		// non-members get 404 so organization IDs cannot be probed
		role, roleErr := authz.RoleFor(id.UserID, orgID)
		if roleErr != nil || role == "" {
			respondWithError(w, http.StatusNotFound, "Organization not found")
		} else {
			respondWithError(w, http.StatusForbidden, "Insufficient privilege")
		}
		return nil, false
	}
	return id, true
}

// requirePlatformAdmin writes a 403 unless the caller is a platform
// admin.
func requirePlatformAdmin(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return nil, false
	}
	if !id.PlatformAdmin {
		respondWithError(w, http.StatusForbidden, "Platform admin required")
		return nil, false
	}
	return id, true
}

// clientIP renders the caller's IP for audit events.
func clientIP(id *identity.Identity) string {
	if id == nil || id.RemoteIP == nil {
		return ""
	}
	return id.RemoteIP.String()
}
