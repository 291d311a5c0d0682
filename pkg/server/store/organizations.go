package store

import (
	"errors"
	"time"

	"github.com/appboardguru/boardguru/pkg/model"
)

// ErrOrganizationNotFound is returned when no organization matches the lookup
var ErrOrganizationNotFound = errors.New("organization not found")

// ErrMembershipNotFound is returned when a user is not a member
var ErrMembershipNotFound = errors.New("membership not found")

// ErrLastOwner is returned when an operation would leave an organization
// with no owner
var ErrLastOwner = errors.New("organization must keep at least one owner")

// ErrDuplicateSlug is returned when an organization slug is taken
var ErrDuplicateSlug = errors.New("organization slug already in use")

// Member is a membership row joined with the user's identity fields
type Member struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// OrganizationExport is the bulk-export payload for one organization
type OrganizationExport struct {
	Organization model.Organization `json:"organization"`
	Members      []Member           `json:"members"`
	Vaults       []model.Vault      `json:"vaults"`
	Assets       []model.Asset      `json:"assets"`
	Meetings     []model.Meeting    `json:"meetings"`
}

// OrganizationsStore abstracts organization and membership storage
type OrganizationsStore interface {
	// CreateOrganization inserts the organization and an owner
	// membership for creatorID in one transaction.
	// Returns ErrDuplicateSlug if the slug is taken.
	CreateOrganization(org *model.Organization, creatorID string) error

	// FindOrganization retrieves an organization by ID.
	// Returns ErrOrganizationNotFound if no such organization exists.
	FindOrganization(id string) (*model.Organization, error)

	// FindOrganizationBySlug retrieves an organization by slug.
	FindOrganizationBySlug(slug string) (*model.Organization, error)

	// ListOrganizationsForUser returns a page of the organizations the
	// user belongs to, plus the total count.
	ListOrganizationsForUser(userID string, limit, offset int) ([]model.Organization, int64, error)

	// ListOrganizations returns a page of all organizations, for the
	// operator CLI.
	ListOrganizations(limit, offset int) ([]model.Organization, int64, error)

	// SaveOrganization persists changes to an existing organization.
	SaveOrganization(org *model.Organization) error

	// SetOrganizationStatus updates the lifecycle status (active or
	// archived).
	SetOrganizationStatus(id, status string) error

	// DeleteOrganization removes an organization and its memberships.
	DeleteOrganization(id string) error

	// ListMembers returns all members of an organization with their
	// user identity fields.
	ListMembers(orgID string) ([]Member, error)

	// AddMember adds a user to an organization with the given role.
	AddMember(orgID, userID, role string) error

	// UpdateMemberRole changes a member's role. Returns ErrLastOwner if
	// demoting the only owner.
	UpdateMemberRole(orgID, userID, role string) error

	// RemoveMember removes a user from an organization. Returns
	// ErrLastOwner if removing the only owner.
	RemoveMember(orgID, userID string) error

	// MemberUserIDs returns the user IDs of all members, for
	// notification fan-out.
	MemberUserIDs(orgID string) ([]string, error)

	// ExportOrganization assembles the full export payload.
	ExportOrganization(id string) (*OrganizationExport, error)
}
