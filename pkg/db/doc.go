// Package db establishes the GORM PostgreSQL connection used by the server
// and the boardctl CLI.
package db
