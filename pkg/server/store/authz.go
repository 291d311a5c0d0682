package store

// AuthzStore answers membership-based permission checks. Every
// organization-scoped endpoint consults it before touching data.
type AuthzStore interface {
	// RoleFor returns the user's membership role in an organization.
	// Returns ErrMembershipNotFound if the user is not a member.
	RoleFor(userID, orgID string) (string, error)

	// IsAllowed reports whether the user's role grants the privilege
	// (read, contribute or manage). Non-members are never allowed.
	IsAllowed(userID, orgID, privilege string) (bool, error)
}
