package endpoints

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/appboardguru/boardguru/pkg/audit"
	"github.com/appboardguru/boardguru/pkg/config"
	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/server"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// VaultRequest is the body for creating or updating a vault
type VaultRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// VaultStatusRequest is the body for the status transition endpoint
type VaultStatusRequest struct {
	Status string `json:"status"`
}

// RegisterVaultEndpoints registers vault CRUD, the status machine and
// asset attachment.
func RegisterVaultEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/organizations/{org_id}/vaults").Subrouter()
	r.Use(s.Auth.Middleware)

	r.HandleFunc("", handleCreateVault(s.VaultsStore, s.AuthzStore)).Methods("POST")
	r.HandleFunc("", handleListVaults(s.VaultsStore, s.AuthzStore, s.Config)).Methods("GET")
	r.HandleFunc("/{vault_id}", handleGetVault(s.VaultsStore, s.AuthzStore)).Methods("GET")
	r.HandleFunc("/{vault_id}", handleUpdateVault(s.VaultsStore, s.AuthzStore)).Methods("PATCH")
	r.HandleFunc("/{vault_id}", handleDeleteVault(s.VaultsStore, s.AuthzStore)).Methods("DELETE")
	r.HandleFunc("/{vault_id}/status", handleVaultStatus(s.VaultsStore, s.AuthzStore)).Methods("POST")

	r.HandleFunc("/{vault_id}/assets", handleListVaultAssets(s.VaultsStore, s.AuthzStore)).Methods("GET")
	r.HandleFunc("/{vault_id}/assets/{asset_id}", handleAttachAsset(s.VaultsStore, s.AssetsStore, s.AuthzStore)).Methods("PUT")
	r.HandleFunc("/{vault_id}/assets/{asset_id}", handleDetachAsset(s.VaultsStore, s.AuthzStore)).Methods("DELETE")
}

// findOrgVault loads a vault and verifies it belongs to the org in the
// path, so a vault from one organization cannot be addressed through
// another.
func findOrgVault(vaults store.VaultsStore, orgID, vaultID string) (*model.Vault, error) {
	vault, err := vaults.FindVault(vaultID)
	if err != nil {
		return nil, err
	}
	if vault.OrganizationID != orgID {
		return nil, store.ErrVaultNotFound
	}
	return vault, nil
}

func handleCreateVault(vaults store.VaultsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := mux.Vars(r)["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeContribute)
		if !ok {
			return
		}

		var req VaultRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if req.Name == "" {
			respondWithError(w, http.StatusUnprocessableEntity, "name is required")
			return
		}

		vault := &model.Vault{
			OrganizationID: orgID,
			Name:           req.Name,
			Description:    req.Description,
			Status:         model.VaultStatusDraft,
			CreatedBy:      id.UserID,
		}
		if err := vaults.CreateVault(vault); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create vault")
			return
		}

		audit.Log(audit.VaultEvent{
			ActorID:  id.UserID,
			ClientIP: clientIP(id),
			VaultID:  vault.ID,
			Action:   "create",
			Success:  true,
		})

		respondWithJSON(w, http.StatusCreated, vault)
	}
}

func handleListVaults(vaults store.VaultsStore, authz store.AuthzStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := mux.Vars(r)["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeRead); !ok {
			return
		}

		limit, offset := listPage(r, cfg)
		items, count, err := vaults.ListVaults(orgID, r.URL.Query().Get("search"), limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list vaults")
			return
		}
		respondWithJSON(w, http.StatusOK, listResponse{Count: count, Items: items})
	}
}

func handleGetVault(vaults store.VaultsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeRead); !ok {
			return
		}

		vault, err := findOrgVault(vaults, orgID, vars["vault_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Vault not found")
			return
		}
		respondWithJSON(w, http.StatusOK, vault)
	}
}

func handleUpdateVault(vaults store.VaultsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeContribute); !ok {
			return
		}

		vault, err := findOrgVault(vaults, orgID, vars["vault_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Vault not found")
			return
		}
		if vault.Status == model.VaultStatusArchived {
			respondWithError(w, http.StatusConflict, "Archived vaults are read-only")
			return
		}

		var req VaultRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if req.Name != "" {
			vault.Name = req.Name
		}
		if req.Description != "" {
			vault.Description = req.Description
		}

		if err := vaults.SaveVault(vault); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update vault")
			return
		}
		respondWithJSON(w, http.StatusOK, vault)
	}
}

func handleDeleteVault(vaults store.VaultsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeManage)
		if !ok {
			return
		}

		vault, err := findOrgVault(vaults, orgID, vars["vault_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Vault not found")
			return
		}

		if err := vaults.DeleteVault(vault.ID); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to delete vault")
			return
		}

		audit.Log(audit.VaultEvent{
			ActorID:  id.UserID,
			ClientIP: clientIP(id),
			VaultID:  vault.ID,
			Action:   "delete",
			Success:  true,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleVaultStatus(vaults store.VaultsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeContribute)
		if !ok {
			return
		}

		vault, err := findOrgVault(vaults, orgID, vars["vault_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Vault not found")
			return
		}

		var req VaultStatusRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		target, err := model.VaultStatusString(req.Status)
		if err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, "Unknown vault status")
			return
		}
		if !vault.Status.CanTransition(target) {
			respondWithError(w, http.StatusConflict,
				"Cannot transition vault from "+vault.Status.String()+" to "+target.String())
			return
		}

		if err := vaults.SetVaultStatus(vault.ID, target); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update vault status")
			return
		}
		vault.Status = target

		action := "activate"
		if target == model.VaultStatusArchived {
			action = "archive"
		}
		audit.Log(audit.VaultEvent{
			ActorID:  id.UserID,
			ClientIP: clientIP(id),
			VaultID:  vault.ID,
			Action:   action,
			Success:  true,
		})

		respondWithJSON(w, http.StatusOK, vault)
	}
}

func handleListVaultAssets(vaults store.VaultsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeRead); !ok {
			return
		}

		vault, err := findOrgVault(vaults, orgID, vars["vault_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Vault not found")
			return
		}

		assets, err := vaults.ListVaultAssets(vault.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list vault assets")
			return
		}
		respondWithJSON(w, http.StatusOK, listResponse{Count: int64(len(assets)), Items: assets})
	}
}

func handleAttachAsset(vaults store.VaultsStore, assets store.AssetsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeContribute)
		if !ok {
			return
		}

		vault, err := findOrgVault(vaults, orgID, vars["vault_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Vault not found")
			return
		}
		if vault.Status == model.VaultStatusArchived {
			respondWithError(w, http.StatusConflict, "Archived vaults are read-only")
			return
		}

		asset, err := assets.FindAsset(vars["asset_id"])
		if err != nil || asset.OrganizationID != orgID {
			respondWithError(w, http.StatusNotFound, "Asset not found")
			return
		}

		if err := vaults.AttachAsset(vault.ID, asset.ID, id.UserID); err != nil {
			if errors.Is(err, store.ErrAssetAttached) {
				respondWithError(w, http.StatusConflict, "Asset already attached to vault")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to attach asset")
			return
		}

		audit.Log(audit.VaultEvent{
			ActorID:  id.UserID,
			ClientIP: clientIP(id),
			VaultID:  vault.ID,
			AssetID:  asset.ID,
			Action:   "attach",
			Success:  true,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleDetachAsset(vaults store.VaultsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeContribute)
		if !ok {
			return
		}

		vault, err := findOrgVault(vaults, orgID, vars["vault_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Vault not found")
			return
		}
		if vault.Status == model.VaultStatusArchived {
			respondWithError(w, http.StatusConflict, "Archived vaults are read-only")
			return
		}

		if err := vaults.DetachAsset(vault.ID, vars["asset_id"]); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to detach asset")
			return
		}

		audit.Log(audit.VaultEvent{
			ActorID:  id.UserID,
			ClientIP: clientIP(id),
			VaultID:  vault.ID,
			AssetID:  vars["asset_id"],
			Action:   "detach",
			Success:  true,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}
