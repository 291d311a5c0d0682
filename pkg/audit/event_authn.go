package audit

import "fmt"

// AuthenticateEvent represents a login attempt
type AuthenticateEvent struct {
	UserID       string
	Email        string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated", e.Email)
	}
	msg := fmt.Sprintf("%s failed to authenticate", e.Email)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user":  e.Email,
			"login": "password",
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.UserID != "" {
		sd[SDIDAuth]["user_id"] = e.UserID
	}
	return sd
}
