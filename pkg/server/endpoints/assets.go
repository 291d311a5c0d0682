package endpoints

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/appboardguru/boardguru/pkg/audit"
	"github.com/appboardguru/boardguru/pkg/config"
	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/server"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// AssetMetadataRequest is the body for metadata updates
type AssetMetadataRequest struct {
	Title    string `json:"title,omitempty"`
	FileName string `json:"file_name,omitempty"`
}

// RegisterAssetEndpoints registers asset metadata, upload and download
// endpoints. Content moves as raw request/response bodies, not JSON.
func RegisterAssetEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/organizations/{org_id}/assets").Subrouter()
	r.Use(s.Auth.Middleware)

	r.HandleFunc("", handleUploadAsset(s.AssetsStore, s.AuthzStore, s.Config)).Methods("POST")
	r.HandleFunc("", handleListAssets(s.AssetsStore, s.AuthzStore, s.Config)).Methods("GET")
	r.HandleFunc("/{asset_id}", handleGetAsset(s.AssetsStore, s.AuthzStore)).Methods("GET")
	r.HandleFunc("/{asset_id}", handleUpdateAssetMetadata(s.AssetsStore, s.AuthzStore)).Methods("PATCH")
	r.HandleFunc("/{asset_id}", handleDeleteAsset(s.AssetsStore, s.AuthzStore)).Methods("DELETE")
	r.HandleFunc("/{asset_id}/content", handleDownloadAsset(s.AssetsStore, s.AuthzStore)).Methods("GET")
	r.HandleFunc("/{asset_id}/content", handleUploadAssetVersion(s.AssetsStore, s.AuthzStore, s.Config)).Methods("POST")
	r.HandleFunc("/{asset_id}/versions", handleListAssetVersions(s.AssetsStore, s.AuthzStore)).Methods("GET")
}

// findOrgAsset loads an asset and verifies organization ownership.
func findOrgAsset(assets store.AssetsStore, orgID, assetID string) (*model.Asset, error) {
	asset, err := assets.FindAsset(assetID)
	if err != nil {
		return nil, err
	}
	if asset.OrganizationID != orgID {
		return nil, store.ErrAssetNotFound
	}
	return asset, nil
}

// readUploadBody reads a raw upload, enforcing the configured size cap
// with 413 on overflow.
func readUploadBody(w http.ResponseWriter, r *http.Request, cfg *config.Config) ([]byte, bool) {
	if r.ContentLength > cfg.MaxUploadBytes {
		respondWithError(w, http.StatusRequestEntityTooLarge, "Upload exceeds size limit")
		return nil, false
	}

	content, err := io.ReadAll(http.MaxBytesReader(w, r.Body, cfg.MaxUploadBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Upload exceeds size limit")
		} else {
			respondWithError(w, http.StatusBadRequest, "Failed to read upload")
		}
		return nil, false
	}
	if len(content) == 0 {
		respondWithError(w, http.StatusUnprocessableEntity, "Upload body must not be empty")
		return nil, false
	}
	return content, true
}

func handleUploadAsset(assets store.AssetsStore, authz store.AuthzStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := mux.Vars(r)["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeContribute)
		if !ok {
			return
		}

		title := r.URL.Query().Get("title")
		fileName := r.URL.Query().Get("file_name")
		if title == "" || fileName == "" {
			respondWithError(w, http.StatusUnprocessableEntity, "title and file_name query parameters are required")
			return
		}

		content, ok := readUploadBody(w, r, cfg)
		if !ok {
			return
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		asset := &model.Asset{
			OrganizationID: orgID,
			Title:          title,
			FileName:       fileName,
			ContentType:    contentType,
			UploadedBy:     id.UserID,
		}
		if err := assets.CreateAsset(asset, content); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to store asset")
			return
		}

		audit.Log(audit.UpdateEvent{
			UserID:   id.UserID,
			ClientIP: clientIP(id),
			AssetID:  asset.ID,
			Success:  true,
		})

		respondWithJSON(w, http.StatusCreated, asset)
	}
}

func handleListAssets(assets store.AssetsStore, authz store.AuthzStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := mux.Vars(r)["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeRead); !ok {
			return
		}

		limit, offset := listPage(r, cfg)
		items, count, err := assets.ListAssets(orgID, r.URL.Query().Get("search"), limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list assets")
			return
		}
		respondWithJSON(w, http.StatusOK, listResponse{Count: count, Items: items})
	}
}

func handleGetAsset(assets store.AssetsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeRead); !ok {
			return
		}

		asset, err := findOrgAsset(assets, orgID, vars["asset_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Asset not found")
			return
		}
		respondWithJSON(w, http.StatusOK, asset)
	}
}

func handleUpdateAssetMetadata(assets store.AssetsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeContribute)
		if !ok {
			return
		}

		asset, err := findOrgAsset(assets, orgID, vars["asset_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Asset not found")
			return
		}

		var req AssetMetadataRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if req.Title != "" {
			asset.Title = req.Title
		}
		if req.FileName != "" {
			asset.FileName = req.FileName
		}

		if err := assets.SaveAsset(asset); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update asset")
			return
		}

		audit.Log(audit.UpdateEvent{
			UserID:   id.UserID,
			ClientIP: clientIP(id),
			AssetID:  asset.ID,
			Success:  true,
		})

		respondWithJSON(w, http.StatusOK, asset)
	}
}

func handleDeleteAsset(assets store.AssetsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeManage)
		if !ok {
			return
		}

		asset, err := findOrgAsset(assets, orgID, vars["asset_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Asset not found")
			return
		}

		if err := assets.DeleteAsset(asset.ID); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to delete asset")
			return
		}

		audit.Log(audit.UpdateEvent{
			UserID:   id.UserID,
			ClientIP: clientIP(id),
			AssetID:  asset.ID,
			Success:  true,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleDownloadAsset(assets store.AssetsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeRead)
		if !ok {
			return
		}

		asset, err := findOrgAsset(assets, orgID, vars["asset_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Asset not found")
			return
		}

		version := r.URL.Query().Get("version")
		blob, err := assets.FetchContent(asset.ID, version)
		if err != nil {
			audit.Log(audit.FetchEvent{
				UserID:       id.UserID,
				ClientIP:     clientIP(id),
				AssetID:      asset.ID,
				Version:      version,
				Success:      false,
				ErrorMessage: "version not found",
			})
			respondWithError(w, http.StatusNotFound, "Asset version not found")
			return
		}

		audit.Log(audit.FetchEvent{
			UserID:   id.UserID,
			ClientIP: clientIP(id),
			AssetID:  asset.ID,
			Version:  strconv.Itoa(blob.Version),
			Success:  true,
		})

		w.Header().Set("Content-Type", asset.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+asset.FileName+`"`)
		w.Header().Set("X-Asset-Version", strconv.Itoa(blob.Version))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(blob.Value)
	}
}

func handleUploadAssetVersion(assets store.AssetsStore, authz store.AuthzStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeContribute)
		if !ok {
			return
		}

		asset, err := findOrgAsset(assets, orgID, vars["asset_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Asset not found")
			return
		}

		content, ok := readUploadBody(w, r, cfg)
		if !ok {
			return
		}

		version, err := assets.AddVersion(asset.ID, content)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to store asset version")
			return
		}

		audit.Log(audit.UpdateEvent{
			UserID:   id.UserID,
			ClientIP: clientIP(id),
			AssetID:  asset.ID,
			Success:  true,
		})

		respondWithJSON(w, http.StatusCreated, map[string]interface{}{
			"asset_id": asset.ID,
			"version":  version,
		})
	}
}

func handleListAssetVersions(assets store.AssetsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeRead); !ok {
			return
		}

		asset, err := findOrgAsset(assets, orgID, vars["asset_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Asset not found")
			return
		}

		versions, err := assets.ListVersions(asset.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list versions")
			return
		}
		respondWithJSON(w, http.StatusOK, listResponse{Count: int64(len(versions)), Items: versions})
	}
}
