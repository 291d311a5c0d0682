package endpoints

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/appboardguru/boardguru/pkg/audit"
	"github.com/appboardguru/boardguru/pkg/config"
	"github.com/appboardguru/boardguru/pkg/mailer"
	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/notify"
	"github.com/appboardguru/boardguru/pkg/server"
	"github.com/appboardguru/boardguru/pkg/server/middleware"
	"github.com/appboardguru/boardguru/pkg/server/store"

	"github.com/gorilla/mux"
)

// SubmitRegistrationRequest is the body of POST /registrations
type SubmitRegistrationRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Company  string `json:"company,omitempty"`
	Message  string `json:"message,omitempty"`
}

// RejectRegistrationRequest is the body of the reject endpoint
type RejectRegistrationRequest struct {
	Reason string `json:"reason,omitempty"`
}

// RegisterRegistrationEndpoints registers the admin-approval signup
// flow. Submission and the emailed approval link are public; listing
// and rejection require a platform admin session.
func RegisterRegistrationEndpoints(s *server.Server) {
	public := s.Router.PathPrefix("/registrations").Subrouter()
	public.Use(s.LoginLimiter.Middleware)
	public.HandleFunc("", handleSubmitRegistration(s.RegistrationsStore, s.UsersStore, s.Config, s.Mailer, s.Notifier)).Methods("POST")
	public.HandleFunc("/approve", handleApproveRegistration(s.RegistrationsStore, s.UsersStore, s.Mailer)).Methods("GET")

	admin := s.Router.PathPrefix("/registrations").Subrouter()
	admin.Use(s.Auth.Middleware)
	admin.HandleFunc("", handleListRegistrations(s.RegistrationsStore, s.Config)).Methods("GET")
	admin.HandleFunc("/{id}/approve", handleAdminApproveRegistration(s.RegistrationsStore, s.UsersStore, s.Mailer)).Methods("POST")
	admin.HandleFunc("/{id}/reject", handleRejectRegistration(s.RegistrationsStore, s.Mailer)).Methods("POST")
}

func handleSubmitRegistration(
	registrations store.RegistrationsStore,
	users store.UsersStore,
	cfg *config.Config,
	mail *mailer.Mailer,
	notifier *notify.Notifier,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !cfg.RegistrationsEnabled {
			respondWithError(w, http.StatusForbidden, "Registrations are disabled")
			return
		}

		var req SubmitRegistrationRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if req.Email == "" || req.FullName == "" {
			respondWithError(w, http.StatusUnprocessableEntity, "email and full_name are required")
			return
		}
		ip := ""
		if peer := middleware.ClientIP(r); peer != nil {
			ip = peer.String()
		}

		if _, err := users.FindUserByEmail(req.Email); err == nil {
			respondWithError(w, http.StatusConflict, "Email already registered")
			return
		}
		if _, err := registrations.FindPendingByEmail(req.Email); err == nil {
			respondWithError(w, http.StatusConflict, "A registration request for this email is already pending")
			return
		}

		plainToken := model.GenerateToken()
		request := &model.RegistrationRequest{
			Email:       req.Email,
			FullName:    req.FullName,
			Company:     req.Company,
			Message:     req.Message,
			TokenSHA256: model.HashToken(plainToken),
			Status:      model.RegistrationStatusPending,
			Expiration:  time.Now().UTC().Add(cfg.RegistrationTTL()),
		}
		if err := registrations.CreateRequest(request); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create registration request")
			return
		}

		// the approval link is always built from the configured base
		// URL, never from the request host
		approveURL := cfg.ApprovalURL(plainToken)
		notifyPlatformAdmins(users, mail, notifier, request, approveURL)

		audit.Log(audit.RegistrationEvent{
			RequestID: request.ID,
			Email:     request.Email,
			Action:    "submitted",
			ClientIP:  ip,
			Success:   true,
		})

		respondWithJSON(w, http.StatusCreated, request)
	}
}

// notifyPlatformAdmins fans the approval link out to every platform
// admin by mail and in-app notification.
func notifyPlatformAdmins(
	users store.UsersStore,
	mail *mailer.Mailer,
	notifier *notify.Notifier,
	request *model.RegistrationRequest,
	approveURL string,
) {
	admins, _, err := users.ListUsers(1000, 0)
	if err != nil {
		log.Printf("registrations: list admins: %v", err)
		return
	}

	var adminIDs []string
	for _, admin := range admins {
		if !admin.PlatformAdmin || !admin.IsActive() {
			continue
		}
		adminIDs = append(adminIDs, admin.ID)
		if mail.Enabled() {
			if err := mail.SendApprovalRequest(admin.Email, request.Email, request.FullName, approveURL); err != nil {
				log.Printf("registrations: mail admin %s: %v", admin.Email, err)
			}
		}
	}

	if notifier != nil {
		notifier.NotifyAll(context.Background(), adminIDs, model.Notification{
			Kind:    model.NotificationKindRegistration,
			Title:   "Registration request from " + request.Email,
			Message: request.FullName + " has requested access",
		})
	}
}

func handleApproveRegistration(
	registrations store.RegistrationsStore,
	users store.UsersStore,
	mail *mailer.Mailer,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plainToken := r.URL.Query().Get("token")
		if plainToken == "" {
			respondWithError(w, http.StatusBadRequest, "Missing approval token")
			return
		}
		ip := ""
		if peer := middleware.ClientIP(r); peer != nil {
			ip = peer.String()
		}

		request, err := registrations.FindRequestByToken(plainToken)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Unknown approval token")
			return
		}

		fail := func(code int, action, reason string) {
			audit.Log(audit.RegistrationEvent{
				RequestID:    request.ID,
				Email:        request.Email,
				Action:       action,
				ClientIP:     ip,
				Success:      false,
				ErrorMessage: reason,
			})
			respondWithError(w, code, reason)
		}

		if !request.IsPending() {
			// the token is single use; a second click is a replay
			fail(http.StatusConflict, "approve", "Approval token already used")
			return
		}
		if request.IsExpired() {
			_ = registrations.MarkReviewed(request.ID, model.RegistrationStatusExpired, "")
			fail(http.StatusGone, "approve", "Approval token has expired")
			return
		}

		approveRequest(w, registrations, users, mail, request, "", ip)
	}
}

// approveRequest finishes an approval: creates the user with a temporary
// password, marks the request reviewed, and sends the welcome mail. When
// reviewerID is empty (the emailed link), the created user is recorded
// as the reviewer.
func approveRequest(
	w http.ResponseWriter,
	registrations store.RegistrationsStore,
	users store.UsersStore,
	mail *mailer.Mailer,
	request *model.RegistrationRequest,
	reviewerID string,
	ip string,
) {
	tempPassword := model.GenerateToken()[:20]
	user := &model.User{
		Email:    request.Email,
		FullName: request.FullName,
		Status:   model.UserStatusActive,
	}
	if err := user.SetPassword(tempPassword); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	if err := users.CreateUser(user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respondWithError(w, http.StatusConflict, "Email already registered")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if reviewerID == "" {
		reviewerID = user.ID
	}
	if err := registrations.MarkReviewed(request.ID, model.RegistrationStatusApproved, reviewerID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to record approval")
		return
	}

	if mail.Enabled() {
		if err := mail.SendWelcome(user.Email, tempPassword); err != nil {
			log.Printf("registrations: welcome mail to %s: %v", user.Email, err)
		}
	}

	audit.Log(audit.RegistrationEvent{
		RequestID:  request.ID,
		Email:      request.Email,
		Action:     "approved",
		ReviewerID: reviewerID,
		ClientIP:   ip,
		Success:    true,
	})

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  model.RegistrationStatusApproved,
		"user_id": user.ID,
	})
}

func handleAdminApproveRegistration(
	registrations store.RegistrationsStore,
	users store.UsersStore,
	mail *mailer.Mailer,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requirePlatformAdmin(w, r)
		if !ok {
			return
		}

		request, err := registrations.FindRequestByID(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Registration request not found")
			return
		}
		if !request.IsPending() {
			respondWithError(w, http.StatusConflict, "Registration request already reviewed")
			return
		}
		if request.IsExpired() {
			_ = registrations.MarkReviewed(request.ID, model.RegistrationStatusExpired, "")
			respondWithError(w, http.StatusGone, "Registration request has expired")
			return
		}

		approveRequest(w, registrations, users, mail, request, id.UserID, clientIP(id))
	}
}

func handleListRegistrations(registrations store.RegistrationsStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requirePlatformAdmin(w, r); !ok {
			return
		}

		limit, offset := listPage(r, cfg)
		requests, count, err := registrations.ListRequests(r.URL.Query().Get("status"), limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list registration requests")
			return
		}

		respondWithJSON(w, http.StatusOK, listResponse{Count: count, Items: requests})
	}
}

func handleRejectRegistration(registrations store.RegistrationsStore, mail *mailer.Mailer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requirePlatformAdmin(w, r)
		if !ok {
			return
		}

		requestID := mux.Vars(r)["id"]
		request, err := registrations.FindRequestByID(requestID)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Registration request not found")
			return
		}
		if !request.IsPending() {
			respondWithError(w, http.StatusConflict, "Registration request already reviewed")
			return
		}

		var req RejectRegistrationRequest
		if r.ContentLength > 0 && !decodeJSONBody(w, r, &req) {
			return
		}

		if err := registrations.MarkReviewed(request.ID, model.RegistrationStatusRejected, id.UserID); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to record rejection")
			return
		}

		if mail.Enabled() {
			if err := mail.SendRejection(request.Email, req.Reason); err != nil {
				log.Printf("registrations: rejection mail to %s: %v", request.Email, err)
			}
		}

		audit.Log(audit.RegistrationEvent{
			RequestID:  request.ID,
			Email:      request.Email,
			Action:     "rejected",
			ReviewerID: id.UserID,
			ClientIP:   clientIP(id),
			Success:    true,
		})

		respondWithJSON(w, http.StatusOK, map[string]string{"status": model.RegistrationStatusRejected})
	}
}
