package audit

import "fmt"

// RegistrationEvent represents a registration workflow step
// (submitted, approved, rejected, expired).
type RegistrationEvent struct {
	RequestID    string
	Email        string
	Action       string
	ReviewerID   string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e RegistrationEvent) MessageID() string {
	return "registration"
}

func (e RegistrationEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("registration for %s %s", e.Email, e.Action)
	}
	msg := fmt.Sprintf("registration %s failed for %s", e.Action, e.Email)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RegistrationEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e RegistrationEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RegistrationEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDSubject: {
			"request": e.RequestID,
			"email":   e.Email,
		},
		SDIDAction: {
			"operation": e.Action,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.ReviewerID != "" {
		sd[SDIDAction]["reviewer"] = e.ReviewerID
	}
	return sd
}
