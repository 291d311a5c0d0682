package store

import (
	"errors"
	"time"

	"github.com/appboardguru/boardguru/pkg/model"
)

// ErrRegistrationNotFound is returned when no request matches the lookup
var ErrRegistrationNotFound = errors.New("registration request not found")

// RegistrationsStore abstracts registration request storage
type RegistrationsStore interface {
	// CreateRequest inserts a new pending request with its token hash.
	CreateRequest(req *model.RegistrationRequest) error

	// FindRequestByID retrieves a request by ID.
	// Returns ErrRegistrationNotFound if no such request exists.
	FindRequestByID(id string) (*model.RegistrationRequest, error)

	// FindRequestByToken retrieves a request by plaintext approval
	// token. Only the token's SHA-256 is compared against storage.
	// Returns ErrRegistrationNotFound if no request carries the token.
	FindRequestByToken(plainToken string) (*model.RegistrationRequest, error)

	// FindPendingByEmail retrieves the pending request for an email, if
	// any. Returns ErrRegistrationNotFound otherwise.
	FindPendingByEmail(email string) (*model.RegistrationRequest, error)

	// ListRequests returns a page of requests, optionally filtered by
	// status, plus the total count.
	ListRequests(status string, limit, offset int) ([]model.RegistrationRequest, int64, error)

	// MarkReviewed records the review outcome (approved or rejected)
	// for a pending request. The token becomes unusable.
	MarkReviewed(id, status, reviewerID string) error

	// ExpirePending marks pending requests past their deadline as
	// expired and returns how many rows changed.
	ExpirePending(asOf time.Time) (int64, error)
}
