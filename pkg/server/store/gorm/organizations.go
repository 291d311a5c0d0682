package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// Ensure OrganizationsStore implements store.OrganizationsStore
var _ store.OrganizationsStore = (*OrganizationsStore)(nil)

// OrganizationsStore implements store.OrganizationsStore using GORM
type OrganizationsStore struct {
	db *gorm.DB
}

// NewOrganizationsStore creates a new OrganizationsStore
func NewOrganizationsStore(db *gorm.DB) *OrganizationsStore {
	return &OrganizationsStore{db: db}
}

// CreateOrganization inserts the organization and an owner membership
// for creatorID in one transaction.
func (s *OrganizationsStore) CreateOrganization(org *model.Organization, creatorID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		return tx.Create(&model.Membership{
			OrganizationID: org.ID,
			UserID:         creatorID,
			Role:           model.RoleOwner,
		}).Error
	})
	if isUniqueViolation(err) {
		return store.ErrDuplicateSlug
	}
	return err
}

// FindOrganization retrieves an organization by ID.
func (s *OrganizationsStore) FindOrganization(id string) (*model.Organization, error) {
	var org model.Organization
	if err := s.db.Where("id = ?", id).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

// FindOrganizationBySlug retrieves an organization by slug.
func (s *OrganizationsStore) FindOrganizationBySlug(slug string) (*model.Organization, error) {
	var org model.Organization
	if err := s.db.Where("slug = ?", slug).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

// ListOrganizationsForUser returns a page of the organizations the user
// belongs to.
func (s *OrganizationsStore) ListOrganizationsForUser(userID string, limit, offset int) ([]model.Organization, int64, error) {
	base := s.db.Model(&model.Organization{}).
		Joins("JOIN memberships ON memberships.organization_id = organizations.id").
		Where("memberships.user_id = ?", userID)

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var orgs []model.Organization
	err := base.Order("organizations.created_at").Limit(limit).Offset(offset).Find(&orgs).Error
	return orgs, count, err
}

// ListOrganizations returns a page of all organizations.
func (s *OrganizationsStore) ListOrganizations(limit, offset int) ([]model.Organization, int64, error) {
	var count int64
	if err := s.db.Model(&model.Organization{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var orgs []model.Organization
	err := s.db.Order("created_at").Limit(limit).Offset(offset).Find(&orgs).Error
	return orgs, count, err
}

// SaveOrganization persists changes to an existing organization.
func (s *OrganizationsStore) SaveOrganization(org *model.Organization) error {
	err := s.db.Save(org).Error
	if isUniqueViolation(err) {
		return store.ErrDuplicateSlug
	}
	return err
}

// SetOrganizationStatus updates the lifecycle status.
func (s *OrganizationsStore) SetOrganizationStatus(id, status string) error {
	tx := s.db.Model(&model.Organization{}).Where("id = ?", id).Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrOrganizationNotFound
	}
	return nil
}

// DeleteOrganization removes an organization and its memberships.
func (s *OrganizationsStore) DeleteOrganization(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("organization_id = ?", id).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Organization{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return store.ErrOrganizationNotFound
		}
		return nil
	})
}

// ListMembers returns all members with their user identity fields.
func (s *OrganizationsStore) ListMembers(orgID string) ([]store.Member, error) {
	var members []store.Member
	err := s.db.Table("memberships").
		Select("memberships.user_id, users.email, users.full_name, memberships.role, memberships.created_at as joined_at").
		Joins("JOIN users ON users.id = memberships.user_id").
		Where("memberships.organization_id = ?", orgID).
		Order("memberships.created_at").
		Scan(&members).Error
	return members, err
}

// AddMember adds a user to an organization with the given role.
func (s *OrganizationsStore) AddMember(orgID, userID, role string) error {
	return s.db.Create(&model.Membership{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
	}).Error
}

// UpdateMemberRole changes a member's role.
func (s *OrganizationsStore) UpdateMemberRole(orgID, userID, role string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if role != model.RoleOwner {
			sole, err := s.isSoleOwner(tx, orgID, userID)
			if err != nil {
				return err
			}
			if sole {
				return store.ErrLastOwner
			}
		}

		result := tx.Model(&model.Membership{}).
			Where("organization_id = ? AND user_id = ?", orgID, userID).
			Update("role", role)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return store.ErrMembershipNotFound
		}
		return nil
	})
}

// RemoveMember removes a user from an organization.
func (s *OrganizationsStore) RemoveMember(orgID, userID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		sole, err := s.isSoleOwner(tx, orgID, userID)
		if err != nil {
			return err
		}
		if sole {
			return store.ErrLastOwner
		}

		result := tx.Where("organization_id = ? AND user_id = ?", orgID, userID).
			Delete(&model.Membership{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return store.ErrMembershipNotFound
		}
		return nil
	})
}

// isSoleOwner reports whether userID is the only owner of the organization.
func (s *OrganizationsStore) isSoleOwner(tx *gorm.DB, orgID, userID string) (bool, error) {
	var membership model.Membership
	err := tx.Where("organization_id = ? AND user_id = ?", orgID, userID).First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, store.ErrMembershipNotFound
		}
		return false, err
	}
	if membership.Role != model.RoleOwner {
		return false, nil
	}

	var owners int64
	err = tx.Model(&model.Membership{}).
		Where("organization_id = ? AND role = ?", orgID, model.RoleOwner).
		Count(&owners).Error
	return owners <= 1, err
}

// MemberUserIDs returns the user IDs of all members.
func (s *OrganizationsStore) MemberUserIDs(orgID string) ([]string, error) {
	var userIDs []string
	err := s.db.Model(&model.Membership{}).
		Where("organization_id = ?", orgID).
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

// ExportOrganization assembles the full export payload.
func (s *OrganizationsStore) ExportOrganization(id string) (*store.OrganizationExport, error) {
	org, err := s.FindOrganization(id)
	if err != nil {
		return nil, err
	}

	export := &store.OrganizationExport{Organization: *org}

	if export.Members, err = s.ListMembers(id); err != nil {
		return nil, err
	}
	if err = s.db.Where("organization_id = ?", id).Order("created_at").Find(&export.Vaults).Error; err != nil {
		return nil, err
	}
	if err = s.db.Where("organization_id = ?", id).Order("created_at").Find(&export.Assets).Error; err != nil {
		return nil, err
	}
	if err = s.db.Where("organization_id = ?", id).Order("scheduled_at").Find(&export.Meetings).Error; err != nil {
		return nil, err
	}
	return export, nil
}
