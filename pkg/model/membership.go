package model

import "time"

// Membership roles, strongest first.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleViewer = "viewer"
)

// Privileges checked by the authz store.
const (
	PrivilegeRead       = "read"
	PrivilegeContribute = "contribute"
	PrivilegeManage     = "manage"
)

// Membership represents a user's role within an organization.
type Membership struct {
	OrganizationID string    `gorm:"column:organization_id;primaryKey" json:"organization_id"`
	UserID         string    `gorm:"column:user_id;primaryKey" json:"user_id"`
	Role           string    `gorm:"column:role;not null;default:member" json:"role"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Membership) TableName() string {
	return "memberships"
}

// ValidRole reports whether role is one of the known membership roles.
func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// RoleAllows reports whether a membership role grants a privilege.
func RoleAllows(role, privilege string) bool {
	switch privilege {
	case PrivilegeRead:
		return ValidRole(role)
	case PrivilegeContribute:
		return role == RoleOwner || role == RoleAdmin || role == RoleMember
	case PrivilegeManage:
		return role == RoleOwner || role == RoleAdmin
	}
	return false
}
