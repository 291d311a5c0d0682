package audit

import "fmt"

// VaultEvent represents a vault lifecycle or content change
type VaultEvent struct {
	ActorID      string
	ClientIP     string
	VaultID      string
	Action       string // create, activate, archive, attach, detach, delete
	AssetID      string
	Success      bool
	ErrorMessage string
}

func (e VaultEvent) MessageID() string {
	return "vault"
}

func (e VaultEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s performed %s on vault %s", e.ActorID, e.Action, e.VaultID)
	}
	msg := fmt.Sprintf("%s failed %s on vault %s", e.ActorID, e.Action, e.VaultID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e VaultEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e VaultEvent) Facility() int {
	return FacilityAuth
}

func (e VaultEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.ActorID,
		},
		SDIDSubject: {
			"vault": e.VaultID,
		},
		SDIDAction: {
			"operation": e.Action,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.AssetID != "" {
		sd[SDIDSubject]["asset"] = e.AssetID
	}
	return sd
}
