// Package cipher provides the symmetric encryption used for data at rest:
// asset content and the token-signing keys are sealed with the server data
// key (BOARDGURU_DATA_KEY) before they reach PostgreSQL.
package cipher
