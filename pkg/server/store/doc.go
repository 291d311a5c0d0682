// Package store defines the storage interfaces the HTTP endpoints and
// background jobs depend on. The gorm subpackage provides the Postgres
// implementations; tests substitute mocks.
package store
