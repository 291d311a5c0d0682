package audit

import "fmt"

// MemberEvent represents an organization membership change
type MemberEvent struct {
	ActorID        string
	ClientIP       string
	OrganizationID string
	MemberID       string
	Role           string
	Action         string // add, update, remove
	Success        bool
	ErrorMessage   string
}

func (e MemberEvent) MessageID() string {
	return "member"
}

func (e MemberEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s performed %s on member %s in organization %s", e.ActorID, e.Action, e.MemberID, e.OrganizationID)
	}
	msg := fmt.Sprintf("%s failed to %s member %s in organization %s", e.ActorID, e.Action, e.MemberID, e.OrganizationID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e MemberEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e MemberEvent) Facility() int {
	return FacilityAuth
}

func (e MemberEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.ActorID,
		},
		SDIDSubject: {
			"organization": e.OrganizationID,
			"member":       e.MemberID,
		},
		SDIDAction: {
			"operation": e.Action,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.Role != "" {
		sd[SDIDSubject]["role"] = e.Role
	}
	return sd
}
