// Package middleware provides the HTTP middleware: session token
// authentication and per-client rate limiting.
package middleware
