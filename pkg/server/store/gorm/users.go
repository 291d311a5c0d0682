package gorm

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// CreateUser inserts a new user.
func (s *UsersStore) CreateUser(user *model.User) error {
	user.Email = strings.ToLower(user.Email)
	err := s.db.Create(user).Error
	if isUniqueViolation(err) {
		return store.ErrDuplicateEmail
	}
	return err
}

// FindUserByID retrieves a user by ID.
func (s *UsersStore) FindUserByID(id string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail retrieves a user by email (case-insensitive).
func (s *UsersStore) FindUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SaveUser persists changes to an existing user.
func (s *UsersStore) SaveUser(user *model.User) error {
	return s.db.Save(user).Error
}

// ListUsers returns a page of users and the total count.
func (s *UsersStore) ListUsers(limit, offset int) ([]model.User, int64, error) {
	var users []model.User
	var count int64

	if err := s.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := s.db.Order("created_at").Limit(limit).Offset(offset).Find(&users).Error
	return users, count, err
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
