// Package session issues and verifies the RS256 session tokens used by the
// API. Signing keys are stored in the signing_keys table, sealed with the
// server data key, and cached in memory by fingerprint.
package session
