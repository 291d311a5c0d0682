package audit

import "fmt"

// MeetingEvent represents a meeting lifecycle change or RSVP
type MeetingEvent struct {
	ActorID      string
	ClientIP     string
	MeetingID    string
	Action       string // create, update, start, complete, cancel, rsvp
	Detail       string // e.g. the RSVP response
	Success      bool
	ErrorMessage string
}

func (e MeetingEvent) MessageID() string {
	return "meeting"
}

func (e MeetingEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s performed %s on meeting %s", e.ActorID, e.Action, e.MeetingID)
	}
	msg := fmt.Sprintf("%s failed %s on meeting %s", e.ActorID, e.Action, e.MeetingID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e MeetingEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e MeetingEvent) Facility() int {
	return FacilityAuth
}

func (e MeetingEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.ActorID,
		},
		SDIDSubject: {
			"meeting": e.MeetingID,
		},
		SDIDAction: {
			"operation": e.Action,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.Detail != "" {
		sd[SDIDAction]["detail"] = e.Detail
	}
	return sd
}
