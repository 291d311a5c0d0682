package store

import (
	"errors"

	"github.com/appboardguru/boardguru/pkg/model"
)

// ErrUserNotFound is returned when no user matches the lookup
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when an email is already registered
var ErrDuplicateEmail = errors.New("email already registered")

// UsersStore abstracts user account storage
type UsersStore interface {
	// CreateUser inserts a new user. Returns ErrDuplicateEmail if the
	// email is taken.
	CreateUser(user *model.User) error

	// FindUserByID retrieves a user by ID.
	// Returns ErrUserNotFound if no such user exists.
	FindUserByID(id string) (*model.User, error)

	// FindUserByEmail retrieves a user by email (case-insensitive).
	// Returns ErrUserNotFound if no such user exists.
	FindUserByEmail(email string) (*model.User, error)

	// SaveUser persists changes to an existing user.
	SaveUser(user *model.User) error

	// ListUsers returns a page of users and the total count.
	ListUsers(limit, offset int) ([]model.User, int64, error)
}
