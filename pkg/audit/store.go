package audit

import (
	"database/sql"
	"encoding/json"
	"os"
)

// Store handles audit event persistence to the audit_events table
type Store struct {
	db *sql.DB
}

// NewStore creates a new audit store from AUDIT_DATABASE_URL.
// Returns nil if AUDIT_DATABASE_URL is not set (audit DB disabled).
func NewStore() (*Store, error) {
	dbURL := os.Getenv("AUDIT_DATABASE_URL")
	if dbURL == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// NewStoreWithDB creates a store with an existing database connection
// Useful for testing with sqlmock
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save persists an audit event to the database
func (s *Store) Save(event Event) error {
	if s.db == nil {
		return nil
	}

	dataJSON, err := json.Marshal(event.StructuredData())
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO audit_events (message_id, severity, facility, message, data)
		VALUES ($1, $2, $3, $4, $5)
	`,
		event.MessageID(),
		int(event.Severity()),
		event.Facility(),
		event.Message(),
		dataJSON,
	)

	return err
}

// DB returns the underlying database connection (for testing)
func (s *Store) DB() *sql.DB {
	return s.db
}
