package store

// HealthStore reports backend health for the status endpoints
type HealthStore interface {
	// Ping verifies database connectivity.
	Ping() error
}
