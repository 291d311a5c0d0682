package endpoints

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/appboardguru/boardguru/pkg/model"
)

// TestOrganizationAuthorization verifies the membership privilege model
// via mock stores
func TestOrganizationAuthorization(t *testing.T) {
	orgID := "org-1"
	vault := &model.Vault{ID: "vault-1", OrganizationID: orgID, Name: "Board Pack", Status: model.VaultStatusActive}

	t.Run("member can read a vault", func(t *testing.T) {
		vaultsStore := NewMockVaultsStore()
		authzStore := NewMockAuthzStore()

		allowMember(authzStore, "alice", orgID, model.RoleViewer)
		vaultsStore.On("FindVault", vault.ID).Return(vault, nil)

		handler := handleGetVault(vaultsStore, authzStore)
		req := requestWithIdentity("GET", "/organizations/org-1/vaults/vault-1", "", testIdentity("alice", false))
		req = withMuxVars(req, map[string]string{"org_id": orgID, "vault_id": vault.ID})

		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-member gets 404, not 403", func(t *testing.T) {
		vaultsStore := NewMockVaultsStore()
		authzStore := NewMockAuthzStore()

		denyMember(authzStore, "mallory", orgID)

		handler := handleGetVault(vaultsStore, authzStore)
		req := requestWithIdentity("GET", "/organizations/org-1/vaults/vault-1", "", testIdentity("mallory", false))
		req = withMuxVars(req, map[string]string{"org_id": orgID, "vault_id": vault.ID})

		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		vaultsStore.AssertNotCalled(t, "FindVault", mock.Anything)
	})

	t.Run("viewer cannot contribute", func(t *testing.T) {
		vaultsStore := NewMockVaultsStore()
		authzStore := NewMockAuthzStore()

		allowMember(authzStore, "viewer", orgID, model.RoleViewer)

		handler := handleCreateVault(vaultsStore, authzStore)
		req := requestWithIdentity("POST", "/organizations/org-1/vaults", `{"name":"Q3 Pack"}`, testIdentity("viewer", false))
		req = withMuxVars(req, map[string]string{"org_id": orgID})

		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		vaultsStore.AssertNotCalled(t, "CreateVault", mock.Anything)
	})

	t.Run("member cannot manage", func(t *testing.T) {
		vaultsStore := NewMockVaultsStore()
		authzStore := NewMockAuthzStore()

		allowMember(authzStore, "bob", orgID, model.RoleMember)

		handler := handleDeleteVault(vaultsStore, authzStore)
		req := requestWithIdentity("DELETE", "/organizations/org-1/vaults/vault-1", "", testIdentity("bob", false))
		req = withMuxVars(req, map[string]string{"org_id": orgID, "vault_id": vault.ID})

		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		vaultsStore.AssertNotCalled(t, "DeleteVault", mock.Anything)
	})

	t.Run("platform admin bypasses membership checks", func(t *testing.T) {
		vaultsStore := NewMockVaultsStore()
		authzStore := NewMockAuthzStore()

		vaultsStore.On("FindVault", vault.ID).Return(vault, nil)

		handler := handleGetVault(vaultsStore, authzStore)
		req := requestWithIdentity("GET", "/organizations/org-1/vaults/vault-1", "", testIdentity("root", true))
		req = withMuxVars(req, map[string]string{"org_id": orgID, "vault_id": vault.ID})

		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		authzStore.AssertNotCalled(t, "IsAllowed", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("vault from another organization reads as missing", func(t *testing.T) {
		vaultsStore := NewMockVaultsStore()
		authzStore := NewMockAuthzStore()

		other := &model.Vault{ID: "vault-2", OrganizationID: "org-2", Name: "Foreign"}
		allowMember(authzStore, "alice", orgID, model.RoleOwner)
		vaultsStore.On("FindVault", other.ID).Return(other, nil)

		handler := handleGetVault(vaultsStore, authzStore)
		req := requestWithIdentity("GET", "/organizations/org-1/vaults/vault-2", "", testIdentity("alice", false))
		req = withMuxVars(req, map[string]string{"org_id": orgID, "vault_id": other.ID})

		w := httptest.NewRecorder()
		handler(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
