package gorm

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// Ensure RegistrationsStore implements store.RegistrationsStore
var _ store.RegistrationsStore = (*RegistrationsStore)(nil)

// RegistrationsStore implements store.RegistrationsStore using GORM
type RegistrationsStore struct {
	db *gorm.DB
}

// NewRegistrationsStore creates a new RegistrationsStore
func NewRegistrationsStore(db *gorm.DB) *RegistrationsStore {
	return &RegistrationsStore{db: db}
}

// CreateRequest inserts a new pending request with its token hash.
func (s *RegistrationsStore) CreateRequest(req *model.RegistrationRequest) error {
	req.Email = strings.ToLower(req.Email)
	return s.db.Create(req).Error
}

// FindRequestByID retrieves a request by ID.
func (s *RegistrationsStore) FindRequestByID(id string) (*model.RegistrationRequest, error) {
	var req model.RegistrationRequest
	if err := s.db.Where("id = ?", id).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrRegistrationNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindRequestByToken retrieves a request by plaintext approval token.
func (s *RegistrationsStore) FindRequestByToken(plainToken string) (*model.RegistrationRequest, error) {
	tokenHash := model.HashToken(plainToken)
	var req model.RegistrationRequest
	if err := s.db.Where("token_sha256 = ?", tokenHash).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrRegistrationNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindPendingByEmail retrieves the pending request for an email, if any.
func (s *RegistrationsStore) FindPendingByEmail(email string) (*model.RegistrationRequest, error) {
	var req model.RegistrationRequest
	err := s.db.
		Where("email = ? AND status = ?", strings.ToLower(email), model.RegistrationStatusPending).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrRegistrationNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ListRequests returns a page of requests, optionally filtered by status.
func (s *RegistrationsStore) ListRequests(status string, limit, offset int) ([]model.RegistrationRequest, int64, error) {
	query := s.db.Model(&model.RegistrationRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var reqs []model.RegistrationRequest
	err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&reqs).Error
	return reqs, count, err
}

// MarkReviewed records the review outcome for a pending request.
func (s *RegistrationsStore) MarkReviewed(id, status, reviewerID string) error {
	now := time.Now().UTC()
	tx := s.db.Model(&model.RegistrationRequest{}).
		Where("id = ? AND status = ?", id, model.RegistrationStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrRegistrationNotFound
	}
	return nil
}

// ExpirePending marks pending requests past their deadline as expired.
func (s *RegistrationsStore) ExpirePending(asOf time.Time) (int64, error) {
	tx := s.db.Model(&model.RegistrationRequest{}).
		Where("status = ? AND expiration < ?", model.RegistrationStatusPending, asOf).
		Update("status", model.RegistrationStatusExpired)
	return tx.RowsAffected, tx.Error
}
