package endpoints

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/server"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// RegisterAnnotationEndpoints registers asset annotation endpoints.
// Annotation values are plain text bodies.
func RegisterAnnotationEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/organizations/{org_id}/assets/{asset_id}/annotations").Subrouter()
	r.Use(s.Auth.Middleware)

	r.HandleFunc("", handleListAnnotations(s.AnnotationsStore, s.AssetsStore, s.AuthzStore)).Methods("GET")
	r.HandleFunc("/{name}", handleSetAnnotation(s.AnnotationsStore, s.AssetsStore, s.AuthzStore)).Methods("PUT")
	r.HandleFunc("/{name}", handleDeleteAnnotation(s.AnnotationsStore, s.AssetsStore, s.AuthzStore)).Methods("DELETE")
}

func handleListAnnotations(annotations store.AnnotationsStore, assets store.AssetsStore, authz store.AuthzStore) http.HandlerFunc {
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

		items, err := annotations.ListAnnotations(asset.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list annotations")
			return
		}
		respondWithJSON(w, http.StatusOK, listResponse{Count: int64(len(items)), Items: items})
	}
}

func handleSetAnnotation(annotations store.AnnotationsStore, assets store.AssetsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeContribute); !ok {
			return
		}

		asset, err := findOrgAsset(assets, orgID, vars["asset_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Asset not found")
			return
		}

		value, err := io.ReadAll(io.LimitReader(r.Body, 64*1024))
		if err != nil || len(value) == 0 {
			respondWithError(w, http.StatusUnprocessableEntity, "Annotation value must not be empty")
			return
		}

		if err := annotations.SetAnnotation(asset.ID, vars["name"], string(value)); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to set annotation")
			return
		}
		respondWithJSON(w, http.StatusOK, model.Annotation{
			AssetID: asset.ID,
			Name:    vars["name"],
			Value:   string(value),
		})
	}
}

func handleDeleteAnnotation(annotations store.AnnotationsStore, assets store.AssetsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeContribute); !ok {
			return
		}

		asset, err := findOrgAsset(assets, orgID, vars["asset_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Asset not found")
			return
		}

		if err := annotations.DeleteAnnotation(asset.ID, vars["name"]); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to delete annotation")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
