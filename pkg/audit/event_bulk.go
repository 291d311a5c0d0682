package audit

import (
	"fmt"
	"strconv"
)

// BulkActionEvent represents a bulk organization action
// (archive, restore, export) and its per-item outcome counts.
type BulkActionEvent struct {
	ActorID      string
	ClientIP     string
	Action       string
	Requested    int
	Succeeded    int
	Failed       int
	ErrorMessage string
}

func (e BulkActionEvent) MessageID() string {
	return "bulk"
}

func (e BulkActionEvent) Message() string {
	msg := fmt.Sprintf("%s ran bulk %s on %d organizations (%d ok, %d failed)",
		e.ActorID, e.Action, e.Requested, e.Succeeded, e.Failed)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e BulkActionEvent) Severity() Severity {
	if e.Failed == 0 {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e BulkActionEvent) Facility() int {
	return FacilityAuth
}

func (e BulkActionEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.ActorID,
		},
		SDIDAction: {
			"operation": e.Action,
			"requested": strconv.Itoa(e.Requested),
			"succeeded": strconv.Itoa(e.Succeeded),
			"failed":    strconv.Itoa(e.Failed),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
}
