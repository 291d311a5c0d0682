package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/appboardguru/boardguru/pkg/audit"
	"github.com/appboardguru/boardguru/pkg/config"
	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/notify"
	"github.com/appboardguru/boardguru/pkg/server"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// MeetingRequest is the body for creating or updating a meeting
type MeetingRequest struct {
	Title           string     `json:"title"`
	Agenda          string     `json:"agenda,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	VaultID         *string    `json:"vault_id,omitempty"`
	InviteeIDs      []string   `json:"invitee_ids,omitempty"`
}

// MeetingStatusRequest is the body for the status transition endpoint
type MeetingStatusRequest struct {
	Status string `json:"status"`
}

// RSVPRequest is the body of the RSVP endpoint
type RSVPRequest struct {
	Response string `json:"response"`
}

// RegisterMeetingEndpoints registers meeting CRUD, the status machine,
// invitees and RSVP.
func RegisterMeetingEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/organizations/{org_id}/meetings").Subrouter()
	r.Use(s.Auth.Middleware)

	r.HandleFunc("", handleCreateMeeting(s.MeetingsStore, s.VaultsStore, s.AuthzStore, s.Notifier)).Methods("POST")
	r.HandleFunc("", handleListMeetings(s.MeetingsStore, s.AuthzStore, s.Config)).Methods("GET")
	r.HandleFunc("/{meeting_id}", handleGetMeeting(s.MeetingsStore, s.AuthzStore)).Methods("GET")
	r.HandleFunc("/{meeting_id}", handleUpdateMeeting(s.MeetingsStore, s.AuthzStore, s.Notifier)).Methods("PATCH")
	r.HandleFunc("/{meeting_id}/status", handleMeetingStatus(s.MeetingsStore, s.AuthzStore, s.Notifier)).Methods("POST")
	r.HandleFunc("/{meeting_id}/invitees", handleListInvitees(s.MeetingsStore, s.AuthzStore)).Methods("GET")
	r.HandleFunc("/{meeting_id}/invitees", handleInvite(s.MeetingsStore, s.AuthzStore, s.Notifier)).Methods("POST")
	r.HandleFunc("/{meeting_id}/invitees/{user_id}", handleRemoveInvitee(s.MeetingsStore, s.AuthzStore)).Methods("DELETE")
	r.HandleFunc("/{meeting_id}/rsvp", handleRSVP(s.MeetingsStore, s.AuthzStore)).Methods("POST")
}

// findOrgMeeting loads a meeting and verifies organization ownership.
func findOrgMeeting(meetings store.MeetingsStore, orgID, meetingID string) (*model.Meeting, error) {
	meeting, err := meetings.FindMeeting(meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.OrganizationID != orgID {
		return nil, store.ErrMeetingNotFound
	}
	return meeting, nil
}

func handleCreateMeeting(meetings store.MeetingsStore, vaults store.VaultsStore, authz store.AuthzStore, notifier *notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := mux.Vars(r)["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeContribute)
		if !ok {
			return
		}

		var req MeetingRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if req.Title == "" || req.ScheduledAt == nil {
			respondWithError(w, http.StatusUnprocessableEntity, "title and scheduled_at are required")
			return
		}
		if req.ScheduledAt.Before(time.Now()) {
			respondWithError(w, http.StatusUnprocessableEntity, "scheduled_at must be in the future")
			return
		}
		if req.VaultID != nil {
			vault, err := findOrgVault(vaults, orgID, *req.VaultID)
			if err != nil {
				respondWithError(w, http.StatusNotFound, "Vault not found")
				return
			}
			if vault.Status == model.VaultStatusArchived {
				respondWithError(w, http.StatusConflict, "Cannot link an archived vault")
				return
			}
		}

		duration := req.DurationMinutes
		if duration <= 0 {
			duration = 60
		}

		meeting := &model.Meeting{
			OrganizationID:  orgID,
			VaultID:         req.VaultID,
			Title:           req.Title,
			Agenda:          req.Agenda,
			ScheduledAt:     req.ScheduledAt.UTC(),
			DurationMinutes: duration,
			Status:          model.MeetingStatusScheduled,
			CreatedBy:       id.UserID,
		}
		if err := meetings.CreateMeeting(meeting, req.InviteeIDs); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create meeting")
			return
		}

		if notifier != nil && len(req.InviteeIDs) > 0 {
			notifier.NotifyAll(r.Context(), req.InviteeIDs, model.Notification{
				OrganizationID: &orgID,
				Kind:           model.NotificationKindMeetingInvite,
				Title:          "Invited to " + meeting.Title,
				Message:        "Scheduled for " + meeting.ScheduledAt.Format(time.RFC1123),
			})
		}

		audit.Log(audit.MeetingEvent{
			ActorID:   id.UserID,
			ClientIP:  clientIP(id),
			MeetingID: meeting.ID,
			Action:    "create",
			Success:   true,
		})

		respondWithJSON(w, http.StatusCreated, meeting)
	}
}

func handleListMeetings(meetings store.MeetingsStore, authz store.AuthzStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := mux.Vars(r)["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeRead); !ok {
			return
		}

		var status *model.MeetingStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed, err := model.MeetingStatusString(raw)
			if err != nil {
				respondWithError(w, http.StatusUnprocessableEntity, "Unknown meeting status")
				return
			}
			status = &parsed
		}

		limit, offset := listPage(r, cfg)
		items, count, err := meetings.ListMeetings(orgID, status, limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list meetings")
			return
		}
		respondWithJSON(w, http.StatusOK, listResponse{Count: count, Items: items})
	}
}

func handleGetMeeting(meetings store.MeetingsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeRead); !ok {
			return
		}

		meeting, err := findOrgMeeting(meetings, orgID, vars["meeting_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Meeting not found")
			return
		}
		respondWithJSON(w, http.StatusOK, meeting)
	}
}

func handleUpdateMeeting(meetings store.MeetingsStore, authz store.AuthzStore, notifier *notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeContribute)
		if !ok {
			return
		}

		meeting, err := findOrgMeeting(meetings, orgID, vars["meeting_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Meeting not found")
			return
		}
		if meeting.Status != model.MeetingStatusScheduled {
			respondWithError(w, http.StatusConflict, "Only scheduled meetings can be edited")
			return
		}

		var req MeetingRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}

		rescheduled := false
		if req.Title != "" {
			meeting.Title = req.Title
		}
		if req.Agenda != "" {
			meeting.Agenda = req.Agenda
		}
		if req.DurationMinutes > 0 {
			meeting.DurationMinutes = req.DurationMinutes
		}
		if req.ScheduledAt != nil && !req.ScheduledAt.UTC().Equal(meeting.ScheduledAt) {
			if req.ScheduledAt.Before(time.Now()) {
				respondWithError(w, http.StatusUnprocessableEntity, "scheduled_at must be in the future")
				return
			}
			meeting.ScheduledAt = req.ScheduledAt.UTC()
			// a moved meeting gets a fresh reminder
			meeting.ReminderSentAt = nil
			rescheduled = true
		}

		if err := meetings.SaveMeeting(meeting); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update meeting")
			return
		}

		if rescheduled && notifier != nil {
			invitees, err := meetings.ListInvitees(meeting.ID)
			if err == nil {
				userIDs := make([]string, 0, len(invitees))
				for _, invitee := range invitees {
					userIDs = append(userIDs, invitee.UserID)
				}
				notifier.NotifyAll(r.Context(), userIDs, model.Notification{
					OrganizationID: &orgID,
					Kind:           model.NotificationKindMeetingChange,
					Title:          meeting.Title + " was rescheduled",
					Message:        "New time: " + meeting.ScheduledAt.Format(time.RFC1123),
				})
			}
		}

		audit.Log(audit.MeetingEvent{
			ActorID:   id.UserID,
			ClientIP:  clientIP(id),
			MeetingID: meeting.ID,
			Action:    "update",
			Success:   true,
		})

		respondWithJSON(w, http.StatusOK, meeting)
	}
}

func handleMeetingStatus(meetings store.MeetingsStore, authz store.AuthzStore, notifier *notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeContribute)
		if !ok {
			return
		}

		meeting, err := findOrgMeeting(meetings, orgID, vars["meeting_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Meeting not found")
			return
		}

		var req MeetingStatusRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		target, err := model.MeetingStatusString(req.Status)
		if err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, "Unknown meeting status")
			return
		}
		if !meeting.Status.CanTransition(target) {
			respondWithError(w, http.StatusConflict,
				"Cannot transition meeting from "+meeting.Status.String()+" to "+target.String())
			return
		}

		if err := meetings.SetMeetingStatus(meeting.ID, target); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update meeting status")
			return
		}
		meeting.Status = target

		if target == model.MeetingStatusCancelled && notifier != nil {
			invitees, err := meetings.ListInvitees(meeting.ID)
			if err == nil {
				userIDs := make([]string, 0, len(invitees))
				for _, invitee := range invitees {
					userIDs = append(userIDs, invitee.UserID)
				}
				notifier.NotifyAll(r.Context(), userIDs, model.Notification{
					OrganizationID: &orgID,
					Kind:           model.NotificationKindMeetingChange,
					Title:          meeting.Title + " was cancelled",
				})
			}
		}

		audit.Log(audit.MeetingEvent{
			ActorID:   id.UserID,
			ClientIP:  clientIP(id),
			MeetingID: meeting.ID,
			Action:    target.String(),
			Success:   true,
		})

		respondWithJSON(w, http.StatusOK, meeting)
	}
}

func handleListInvitees(meetings store.MeetingsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeRead); !ok {
			return
		}

		meeting, err := findOrgMeeting(meetings, orgID, vars["meeting_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Meeting not found")
			return
		}

		invitees, err := meetings.ListInvitees(meeting.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list invitees")
			return
		}
		respondWithJSON(w, http.StatusOK, listResponse{Count: int64(len(invitees)), Items: invitees})
	}
}

func handleInvite(meetings store.MeetingsStore, authz store.AuthzStore, notifier *notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeContribute)
		if !ok {
			return
		}

		meeting, err := findOrgMeeting(meetings, orgID, vars["meeting_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Meeting not found")
			return
		}
		if meeting.Status != model.MeetingStatusScheduled {
			respondWithError(w, http.StatusConflict, "Only scheduled meetings accept invitees")
			return
		}

		var req MemberRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		// invitees must belong to the meeting's organization
		if _, err := authz.RoleFor(req.UserID, orgID); err != nil {
			respondWithError(w, http.StatusNotFound, "User is not a member of this organization")
			return
		}

		if err := meetings.Invite(meeting.ID, req.UserID); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to invite user")
			return
		}

		if notifier != nil {
			_ = notifier.Notify(r.Context(), &model.Notification{
				UserID:         req.UserID,
				OrganizationID: &orgID,
				Kind:           model.NotificationKindMeetingInvite,
				Title:          "Invited to " + meeting.Title,
				Message:        "Scheduled for " + meeting.ScheduledAt.Format(time.RFC1123),
			})
		}

		audit.Log(audit.MeetingEvent{
			ActorID:   id.UserID,
			ClientIP:  clientIP(id),
			MeetingID: meeting.ID,
			Action:    "invite",
			Detail:    req.UserID,
			Success:   true,
		})

		w.WriteHeader(http.StatusCreated)
	}
}

func handleRemoveInvitee(meetings store.MeetingsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		if _, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeContribute); !ok {
			return
		}

		meeting, err := findOrgMeeting(meetings, orgID, vars["meeting_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Meeting not found")
			return
		}

		if err := meetings.RemoveInvitee(meeting.ID, vars["user_id"]); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to remove invitee")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleRSVP(meetings store.MeetingsStore, authz store.AuthzStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		orgID := vars["org_id"]
		id, ok := requirePrivilege(w, r, authz, orgID, model.PrivilegeRead)
		if !ok {
			return
		}

		meeting, err := findOrgMeeting(meetings, orgID, vars["meeting_id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Meeting not found")
			return
		}
		if meeting.Status != model.MeetingStatusScheduled && meeting.Status != model.MeetingStatusInProgress {
			respondWithError(w, http.StatusConflict, "Meeting no longer accepts responses")
			return
		}

		var req RSVPRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if !model.ValidRSVP(req.Response) {
			respondWithError(w, http.StatusUnprocessableEntity, "Unknown RSVP response")
			return
		}

		if err := meetings.SetRSVP(meeting.ID, id.UserID, req.Response); err != nil {
			if errors.Is(err, store.ErrNotInvited) {
				respondWithError(w, http.StatusNotFound, "You are not invited to this meeting")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to record response")
			return
		}

		audit.Log(audit.MeetingEvent{
			ActorID:   id.UserID,
			ClientIP:  clientIP(id),
			MeetingID: meeting.ID,
			Action:    "rsvp",
			Detail:    req.Response,
			Success:   true,
		})

		respondWithJSON(w, http.StatusOK, map[string]string{
			"meeting_id": meeting.ID,
			"user_id":    id.UserID,
			"response":   req.Response,
		})
	}
}
