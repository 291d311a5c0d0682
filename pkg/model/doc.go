// Package model defines the database models for BoardGuru.
//
// This package contains GORM models that map to the BoardGuru PostgreSQL
// schema created by the embedded migrations.
//
// # Core Models
//
//   - User: Platform accounts (directors, admins)
//   - RegistrationRequest: Pending sign-ups awaiting admin approval
//   - Organization: Tenants; every other record hangs off one
//   - Membership: Per-organization user roles (owner/admin/member/viewer)
//   - Vault: Named collections of assets (board packs)
//   - Asset / AssetBlob: Document metadata and encrypted, versioned content
//   - Meeting / MeetingInvitee: Board meetings and RSVPs
//   - Notification: Per-user in-app notifications
//   - Annotation: Metadata key-value pairs on assets
package model
