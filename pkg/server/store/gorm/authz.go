package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// Ensure AuthzStore implements store.AuthzStore
var _ store.AuthzStore = (*AuthzStore)(nil)

// AuthzStore implements store.AuthzStore using GORM
type AuthzStore struct {
	db *gorm.DB
}

// NewAuthzStore creates a new AuthzStore
func NewAuthzStore(db *gorm.DB) *AuthzStore {
	return &AuthzStore{db: db}
}

// RoleFor returns the user's membership role in an organization.
func (s *AuthzStore) RoleFor(userID, orgID string) (string, error) {
	var membership model.Membership
	err := s.db.Where("organization_id = ? AND user_id = ?", orgID, userID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", store.ErrMembershipNotFound
		}
		return "", err
	}
	return membership.Role, nil
}

// IsAllowed reports whether the user's role grants the privilege.
func (s *AuthzStore) IsAllowed(userID, orgID, privilege string) (bool, error) {
	role, err := s.RoleFor(userID, orgID)
	if err != nil {
		if errors.Is(err, store.ErrMembershipNotFound) {
			return false, nil
		}
		return false, err
	}
	return model.RoleAllows(role, privilege), nil
}
