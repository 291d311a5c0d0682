package endpoints

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/appboardguru/boardguru/pkg/audit"
	"github.com/appboardguru/boardguru/pkg/config"
	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/notify"
	"github.com/appboardguru/boardguru/pkg/server"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// OrganizationRequest is the body for creating or updating an
// organization
type OrganizationRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

// MemberRequest is the body for adding or updating a member
type MemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// BulkRequest is the body of the bulk organization actions
type BulkRequest struct {
	IDs []string `json:"ids"`
}

// BulkResult is one entry of a bulk action response
type BulkResult struct {
	ID     string      `json:"id"`
	Status int         `json:"status"`
	Error  string      `json:"error,omitempty"`
	Export interface{} `json:"export,omitempty"`
}

// RegisterOrganizationEndpoints registers organization CRUD, membership
// management and the bulk actions.
func RegisterOrganizationEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/organizations").Subrouter()
	r.Use(s.Auth.Middleware)

	r.HandleFunc("", handleCreateOrganization(s.OrganizationsStore)).Methods("POST")
	r.HandleFunc("", handleListOrganizations(s.OrganizationsStore, s.Config)).Methods("GET")

	// bulk routes are registered before {org_id} so "bulk" is not
	// taken for an organization ID
	r.HandleFunc("/bulk/{action:archive|restore|export}", handleBulkOrganizations(s.OrganizationsStore, s.AuthzStore)).Methods("POST")

	r.HandleFunc("/{org_id}", handleGetOrganization(s.OrganizationsStore, s.AuthzStore)).Methods("GET")
	r.HandleFunc("/{org_id}", handleUpdateOrganization(s.OrganizationsStore, s.AuthzStore)).Methods("PATCH")
	r.HandleFunc("/{org_id}", handleDeleteOrganization(s.OrganizationsStore, s.AuthzStore)).Methods("DELETE")

	r.HandleFunc("/{org_id}/members", handleListMembers(s.OrganizationsStore, s.AuthzStore)).Methods("GET")
	r.HandleFunc("/{org_id}/members", handleAddMember(s.OrganizationsStore, s.UsersStore, s.AuthzStore, s.Notifier)).Methods("POST")
	r.HandleFunc("/{org_id}/members/{user_id}", handleUpdateMemberRole(s.OrganizationsStore, s.AuthzStore)).Methods("PATCH")
	r.HandleFunc("/{org_id}/members/{user_id}", handleRemoveMember(s.OrganizationsStore, s.AuthzStore)).Methods("DELETE")
}

func handleCreateOrganization(orgs store.OrganizationsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var req OrganizationRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if req.Name == "" {
			respondWithError(w, http.StatusUnprocessableEntity, "name is required")
			return
		}

		org := &model.Organization{
			Name:        req.Name,
			Slug:        req.Slug,
			Description: req.Description,
			Status:      model.OrgStatusActive,
			CreatedBy:   id.UserID,
		}
		if err := orgs.CreateOrganization(org, id.UserID); err != nil {
			if errors.Is(err, store.ErrDuplicateSlug) {
				respondWithError(w, http.StatusConflict, "Organization slug already in use")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to create organization")
			return
		}

		respondWithJSON(w, http.StatusCreated, org)
	}
}

func handleListOrganizations(orgs store.OrganizationsStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		limit, offset := listPage(r, cfg)
		items, count, err := orgs.ListOrganizationsForUser(id.UserID, limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list organizations")
			return
		}

		respondWithJSON(w, http.StatusOK, listResponse{Count: count, Items: items})
	}
}

func handleGetOrganization(orgs store.OrganizationsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := mux.Vars(r)["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeRead); !ok {
			return
		}

		org, err := orgs.FindOrganization(orgID)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Organization not found")
			return
		}
		respondWithJSON(w, http.StatusOK, org)
	}
}

func handleUpdateOrganization(orgs store.OrganizationsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := mux.Vars(r)["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeManage); !ok {
			return
		}

		org, err := orgs.FindOrganization(orgID)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Organization not found")
			return
		}

		var req OrganizationRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if req.Name != "" {
			org.Name = req.Name
		}
		if req.Slug != "" {
			org.Slug = req.Slug
		}
		if req.Description != "" {
			org.Description = req.Description
		}

		if err := orgs.SaveOrganization(org); err != nil {
			if errors.Is(err, store.ErrDuplicateSlug) {
				respondWithError(w, http.StatusConflict, "Organization slug already in use")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to update organization")
			return
		}
		respondWithJSON(w, http.StatusOK, org)
	}
}

func handleDeleteOrganization(orgs store.OrganizationsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := mux.Vars(r)["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeManage)
		if !ok {
			return
		}
		// deletion is owner-only, manage is not enough
		if !id.PlatformAdmin {
			role, err := authz.RoleFor(id.UserID, orgID)
			if err != nil || role != model.RoleOwner {
				respondWithError(w, http.StatusForbidden, "Only an owner can delete an organization")
				return
			}
		}

		if err := orgs.DeleteOrganization(orgID); err != nil {
			if errors.Is(err, store.ErrOrganizationNotFound) {
				respondWithError(w, http.StatusNotFound, "Organization not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to delete organization")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListMembers(orgs store.OrganizationsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := mux.Vars(r)["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeRead); !ok {
			return
		}

		members, err := orgs.ListMembers(orgID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list members")
			return
		}
		respondWithJSON(w, http.StatusOK, listResponse{Count: int64(len(members)), Items: members})
	}
}

func handleAddMember(orgs store.OrganizationsStore, users store.UsersStore, authz store.AuthzStore, notifier *notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := mux.Vars(r)["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeManage)
		if !ok {
			return
		}

		var req MemberRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if !model.ValidRole(req.Role) {
			respondWithError(w, http.StatusUnprocessableEntity, "Unknown role")
			return
		}
		if _, err := users.FindUserByID(req.UserID); err != nil {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		if _, err := authz.RoleFor(req.UserID, orgID); err == nil {
			respondWithError(w, http.StatusConflict, "User is already a member")
			return
		}

		if err := orgs.AddMember(orgID, req.UserID, req.Role); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to add member")
			return
		}

		if notifier != nil {
			_ = notifier.Notify(r.Context(), &model.Notification{
				UserID:         req.UserID,
				OrganizationID: &orgID,
				Kind:           model.NotificationKindMembership,
				Title:          "You were added to an organization",
				Message:        "Role: " + req.Role,
			})
		}

		audit.Log(audit.MemberEvent{
			ActorID:        id.UserID,
			ClientIP:       clientIP(id),
			OrganizationID: orgID,
			MemberID:       req.UserID,
			Role:           req.Role,
			Action:         "add",
			Success:        true,
		})

		respondWithJSON(w, http.StatusCreated, map[string]string{
			"organization_id": orgID,
			"user_id":         req.UserID,
			"role":            req.Role,
		})
	}
}

func handleUpdateMemberRole(orgs store.OrganizationsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID, userID := vars["org_id"], vars["user_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeManage)
		if !ok {
			return
		}

		var req MemberRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if !model.ValidRole(req.Role) {
			respondWithError(w, http.StatusUnprocessableEntity, "Unknown role")
			return
		}

		if err := orgs.UpdateMemberRole(orgID, userID, req.Role); err != nil {
			switch {
			case errors.Is(err, store.ErrMembershipNotFound):
				respondWithError(w, http.StatusNotFound, "Membership not found")
			case errors.Is(err, store.ErrLastOwner):
				respondWithError(w, http.StatusConflict, "Organization must keep at least one owner")
			default:
				respondWithError(w, http.StatusInternalServerError, "Failed to update member")
			}
			return
		}

		audit.Log(audit.MemberEvent{
			ActorID:        id.UserID,
			ClientIP:       clientIP(id),
			OrganizationID: orgID,
			MemberID:       userID,
			Role:           req.Role,
			Action:         "update",
			Success:        true,
		})

		respondWithJSON(w, http.StatusOK, map[string]string{
			"organization_id": orgID,
			"user_id":         userID,
			"role":            req.Role,
		})
	}
}

func handleRemoveMember(orgs store.OrganizationsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID, userID := vars["org_id"], vars["user_id"]

		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		// members may remove themselves; removing others needs manage
		if userID != id.UserID {
			if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeManage); !ok {
				return
			}
		}

		if err := orgs.RemoveMember(orgID, userID); err != nil {
			switch {
			case errors.Is(err, store.ErrMembershipNotFound):
				respondWithError(w, http.StatusNotFound, "Membership not found")
			case errors.Is(err, store.ErrLastOwner):
				respondWithError(w, http.StatusConflict, "Organization must keep at least one owner")
			default:
				respondWithError(w, http.StatusInternalServerError, "Failed to remove member")
			}
			return
		}

		audit.Log(audit.MemberEvent{
			ActorID:        id.UserID,
			ClientIP:       clientIP(id),
			OrganizationID: orgID,
			MemberID:       userID,
			Action:         "remove",
			Success:        true,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}

// handleBulkOrganizations runs archive, restore or export across many
// organizations. The response is always 207 Multi-Status with one
// result per requested ID, in request order.
func handleBulkOrganizations(orgs store.OrganizationsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action := mux.Vars(r)["action"]
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var req BulkRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if len(req.IDs) == 0 {
			respondWithError(w, http.StatusUnprocessableEntity, "ids must not be empty")
			return
		}

		results := make([]BulkResult, 0, len(req.IDs))
		succeeded := 0
		for _, orgID := range req.IDs {
			result := bulkOne(orgs, authz, id.UserID, id.PlatformAdmin, orgID, action)
			if result.Status < 400 {
				succeeded++
			}
			results = append(results, result)
		}

		audit.Log(audit.BulkActionEvent{
			ActorID:   id.UserID,
			ClientIP:  clientIP(id),
			Action:    action,
			Requested: len(req.IDs),
			Succeeded: succeeded,
			Failed:    len(req.IDs) - succeeded,
		})

		respondWithJSON(w, http.StatusMultiStatus, map[string]interface{}{"results": results})
	}
}

func bulkOne(orgs store.OrganizationsStore, authz store.AuthzStore, userID string, platformAdmin bool, orgID, action string) BulkResult {
	if !platformAdmin {
		allowed, err := authz.IsAllowed(userID, orgID, model.PrivilegeManage)
		if err != nil {
			return BulkResult{ID: orgID, Status: http.StatusInternalServerError, Error: "authorization check failed"}
		}
		if !allowed {
			return BulkResult{ID: orgID, Status: http.StatusNotFound, Error: "organization not found"}
		}
	}

	switch action {
	case "archive":
		if err := orgs.SetOrganizationStatus(orgID, model.OrgStatusArchived); err != nil {
			return bulkError(orgID, err)
		}
	case "restore":
		if err := orgs.SetOrganizationStatus(orgID, model.OrgStatusActive); err != nil {
			return bulkError(orgID, err)
		}
	case "export":
		export, err := orgs.ExportOrganization(orgID)
		if err != nil {
			return bulkError(orgID, err)
		}
		return BulkResult{ID: orgID, Status: http.StatusOK, Export: export}
	}
	return BulkResult{ID: orgID, Status: http.StatusOK}
}

func bulkError(orgID string, err error) BulkResult {
	if errors.Is(err, store.ErrOrganizationNotFound) {
		return BulkResult{ID: orgID, Status: http.StatusNotFound, Error: "organization not found"}
	}
	return BulkResult{ID: orgID, Status: http.StatusInternalServerError, Error: err.Error()}
}
