package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VaultStatus is the lifecycle state of a vault.
type VaultStatus int

//go:generate go run github.com/dmarkham/enumer -type VaultStatus -trimprefix VaultStatus -transform lower -json -sql -output vaultstatus_enumer.go

const (
	VaultStatusDraft VaultStatus = iota
	VaultStatusActive
	VaultStatusArchived
)

// CanTransition reports whether a vault may move to the target status.
// Draft packs are published to active; active packs are archived after the
// meeting. Archived is terminal.
func (s VaultStatus) CanTransition(to VaultStatus) bool {
	switch s {
	case VaultStatusDraft:
		return to == VaultStatusActive || to == VaultStatusArchived
	case VaultStatusActive:
		return to == VaultStatusArchived
	}
	return false
}

// Vault is a named collection of assets scoped to an organization.
type Vault struct {
	ID             string      `gorm:"column:id;primaryKey" json:"id"`
	OrganizationID string      `gorm:"column:organization_id;not null" json:"organization_id"`
	Name           string      `gorm:"column:name;not null" json:"name"`
	Description    string      `gorm:"column:description" json:"description,omitempty"`
	Status         VaultStatus `gorm:"column:status;not null;default:draft" json:"status"`
	CreatedBy      string      `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt      time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Vault) TableName() string {
	return "vaults"
}

func (v *Vault) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// VaultAsset links an asset into a vault.
type VaultAsset struct {
	VaultID   string    `gorm:"column:vault_id;primaryKey" json:"vault_id"`
	AssetID   string    `gorm:"column:asset_id;primaryKey" json:"asset_id"`
	AddedBy   string    `gorm:"column:added_by;not null" json:"added_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (VaultAsset) TableName() string {
	return "vault_assets"
}
