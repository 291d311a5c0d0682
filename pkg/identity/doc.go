// Package identity carries the authenticated user through request contexts.
package identity
