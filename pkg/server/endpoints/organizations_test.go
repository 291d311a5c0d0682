package endpoints

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

func TestCreateOrganization(t *testing.T) {
	t.Run("creator becomes owner", func(t *testing.T) {
		s, stores := newTestServer(t)
		token := bearerToken(t, s, "alice", "alice@example.com", false)

		stores.Organizations.On("CreateOrganization", mock.AnythingOfType("*model.Organization"), "alice").
			Run(func(args mock.Arguments) {
				args.Get(0).(*model.Organization).ID = "org-1"
			}).Return(nil)

		w := doRequest(s, "POST", "/organizations", token, `{"name":"Acme Board","slug":"acme"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var org model.Organization
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &org))
		assert.Equal(t, "org-1", org.ID)
		assert.Equal(t, model.OrgStatusActive, org.Status)
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		s, stores := newTestServer(t)
		token := bearerToken(t, s, "alice", "alice@example.com", false)

		stores.Organizations.On("CreateOrganization", mock.Anything, "alice").Return(store.ErrDuplicateSlug)

		w := doRequest(s, "POST", "/organizations", token, `{"name":"Acme Board","slug":"acme"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("name is required", func(t *testing.T) {
		s, _ := newTestServer(t)
		token := bearerToken(t, s, "alice", "alice@example.com", false)

		w := doRequest(s, "POST", "/organizations", token, `{"slug":"acme"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestDeleteOrganizationIsOwnerOnly(t *testing.T) {
	s, stores := newTestServer(t)

	allowMember(stores.Authz, "admin-user", "org-1", model.RoleAdmin)
	allowMember(stores.Authz, "owner-user", "org-1", model.RoleOwner)
	stores.Organizations.On("DeleteOrganization", "org-1").Return(nil)

	t.Run("admin with manage still cannot delete", func(t *testing.T) {
		token := bearerToken(t, s, "admin-user", "admin@example.com", false)
		w := doRequest(s, "DELETE", "/organizations/org-1", token, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner can delete", func(t *testing.T) {
		token := bearerToken(t, s, "owner-user", "owner@example.com", false)
		w := doRequest(s, "DELETE", "/organizations/org-1", token, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestMembershipManagement(t *testing.T) {
	t.Run("demoting the only owner conflicts", func(t *testing.T) {
		s, stores := newTestServer(t)
		allowMember(stores.Authz, "owner-user", "org-1", model.RoleOwner)
		stores.Organizations.On("UpdateMemberRole", "org-1", "owner-user", model.RoleMember).Return(store.ErrLastOwner)

		token := bearerToken(t, s, "owner-user", "owner@example.com", false)
		w := doRequest(s, "PATCH", "/organizations/org-1/members/owner-user", token, `{"role":"member"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("member can remove themselves without manage", func(t *testing.T) {
		s, stores := newTestServer(t)
		stores.Organizations.On("RemoveMember", "org-1", "bob").Return(nil)

		token := bearerToken(t, s, "bob", "bob@example.com", false)
		w := doRequest(s, "DELETE", "/organizations/org-1/members/bob", token, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("member cannot remove someone else", func(t *testing.T) {
		s, stores := newTestServer(t)
		allowMember(stores.Authz, "bob", "org-1", model.RoleMember)

		token := bearerToken(t, s, "bob", "bob@example.com", false)
		w := doRequest(s, "DELETE", "/organizations/org-1/members/alice", token, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		stores.Organizations.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything)
	})

	t.Run("adding an existing member conflicts", func(t *testing.T) {
		s, stores := newTestServer(t)
		allowMember(stores.Authz, "owner-user", "org-1", model.RoleOwner)
		allowMember(stores.Authz, "bob", "org-1", model.RoleMember)
		stores.Users.On("FindUserByID", "bob").Return(&model.User{ID: "bob"}, nil)

		token := bearerToken(t, s, "owner-user", "owner@example.com", false)
		w := doRequest(s, "POST", "/organizations/org-1/members", token, `{"user_id":"bob","role":"member"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("adding a member notifies them", func(t *testing.T) {
		s, stores := newTestServer(t)
		allowMember(stores.Authz, "owner-user", "org-1", model.RoleOwner)
		stores.Authz.On("RoleFor", "dave", "org-1").Return("", store.ErrMembershipNotFound)
		stores.Users.On("FindUserByID", "dave").Return(&model.User{ID: "dave"}, nil)
		stores.Organizations.On("AddMember", "org-1", "dave", model.RoleViewer).Return(nil)
		stores.Notifications.On("CreateNotification", mock.MatchedBy(func(n *model.Notification) bool {
			return n.UserID == "dave" && n.Kind == model.NotificationKindMembership
		})).Return(nil)

		token := bearerToken(t, s, "owner-user", "owner@example.com", false)
		w := doRequest(s, "POST", "/organizations/org-1/members", token, `{"user_id":"dave","role":"viewer"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		stores.Notifications.AssertExpectations(t)
	})
}

func TestBulkOrganizations(t *testing.T) {
	t.Run("archive reports per-organization results", func(t *testing.T) {
		s, stores := newTestServer(t)

		// manage on org-1, not a member of org-2, org-3 vanished underneath
		allowMember(stores.Authz, "alice", "org-1", model.RoleOwner)
		denyMember(stores.Authz, "alice", "org-2")
		allowMember(stores.Authz, "alice", "org-3", model.RoleOwner)
		stores.Organizations.On("SetOrganizationStatus", "org-1", model.OrgStatusArchived).Return(nil)
		stores.Organizations.On("SetOrganizationStatus", "org-3", model.OrgStatusArchived).Return(store.ErrOrganizationNotFound)

		token := bearerToken(t, s, "alice", "alice@example.com", false)
		w := doRequest(s, "POST", "/organizations/bulk/archive", token, `{"ids":["org-1","org-2","org-3"]}`)
		require.Equal(t, http.StatusMultiStatus, w.Code, w.Body.String())

		var resp struct {
			Results []BulkResult `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Results, 3)
		assert.Equal(t, http.StatusOK, resp.Results[0].Status)
		assert.Equal(t, http.StatusNotFound, resp.Results[1].Status)
		assert.Equal(t, http.StatusNotFound, resp.Results[2].Status)
	})

	t.Run("export embeds the payload", func(t *testing.T) {
		s, stores := newTestServer(t)

		allowMember(stores.Authz, "alice", "org-1", model.RoleOwner)
		stores.Organizations.On("ExportOrganization", "org-1").Return(&store.OrganizationExport{
			Organization: model.Organization{ID: "org-1", Name: "Acme Board"},
			Members:      []store.Member{{UserID: "alice", Role: model.RoleOwner}},
		}, nil)

		token := bearerToken(t, s, "alice", "alice@example.com", false)
		w := doRequest(s, "POST", "/organizations/bulk/export", token, `{"ids":["org-1"]}`)
		require.Equal(t, http.StatusMultiStatus, w.Code, w.Body.String())

		var resp struct {
			Results []BulkResult `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Results, 1)
		assert.Equal(t, http.StatusOK, resp.Results[0].Status)
		assert.NotNil(t, resp.Results[0].Export)
	})

	t.Run("empty id list is rejected", func(t *testing.T) {
		s, _ := newTestServer(t)
		token := bearerToken(t, s, "alice", "alice@example.com", false)
		w := doRequest(s, "POST", "/organizations/bulk/archive", token, `{"ids":[]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("unknown action does not route", func(t *testing.T) {
		s, _ := newTestServer(t)
		token := bearerToken(t, s, "alice", "alice@example.com", false)
		w := doRequest(s, "POST", "/organizations/bulk/detonate", token, `{"ids":["org-1"]}`)
		assert.NotEqual(t, http.StatusMultiStatus, w.Code)
	})
}
