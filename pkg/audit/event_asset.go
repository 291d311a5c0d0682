package audit

import "fmt"

// FetchEvent represents an asset content download
type FetchEvent struct {
	UserID       string
	ClientIP     string
	AssetID      string
	Version      string
	Success      bool
	ErrorMessage string
}

func (e FetchEvent) MessageID() string {
	return "fetch"
}

func (e FetchEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s fetched asset %s", e.UserID, e.AssetID)
	}
	msg := fmt.Sprintf("%s tried to fetch asset %s", e.UserID, e.AssetID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e FetchEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e FetchEvent) Facility() int {
	return FacilityAuth
}

func (e FetchEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"asset": e.AssetID,
		},
		SDIDAction: {
			"operation": "fetch",
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.Version != "" {
		sd[SDIDSubject]["version"] = e.Version
	}
	return sd
}

// UpdateEvent represents an asset content upload
type UpdateEvent struct {
	UserID       string
	ClientIP     string
	AssetID      string
	Success      bool
	ErrorMessage string
}

func (e UpdateEvent) MessageID() string {
	return "update"
}

func (e UpdateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s updated asset %s", e.UserID, e.AssetID)
	}
	msg := fmt.Sprintf("%s tried to update asset %s", e.UserID, e.AssetID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e UpdateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e UpdateEvent) Facility() int {
	return FacilityAuth
}

func (e UpdateEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"asset": e.AssetID,
		},
		SDIDAction: {
			"operation": "update",
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
}
