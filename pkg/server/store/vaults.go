package store

import (
	"errors"

	"github.com/appboardguru/boardguru/pkg/model"
)

// ErrVaultNotFound is returned when no vault matches the lookup
var ErrVaultNotFound = errors.New("vault not found")

// ErrAssetAttached is returned when attaching an asset already in the vault
var ErrAssetAttached = errors.New("asset already attached to vault")

// VaultsStore abstracts vault storage
type VaultsStore interface {
	// CreateVault inserts a new draft vault.
	CreateVault(vault *model.Vault) error

	// FindVault retrieves a vault by ID.
	// Returns ErrVaultNotFound if no such vault exists.
	FindVault(id string) (*model.Vault, error)

	// ListVaults returns a page of an organization's vaults plus the
	// total count, optionally filtered by a name search.
	ListVaults(orgID, search string, limit, offset int) ([]model.Vault, int64, error)

	// SaveVault persists changes to an existing vault.
	SaveVault(vault *model.Vault) error

	// SetVaultStatus updates the lifecycle status.
	SetVaultStatus(id string, status model.VaultStatus) error

	// DeleteVault removes a vault and its asset links.
	DeleteVault(id string) error

	// AttachAsset links an asset into a vault.
	// Returns ErrAssetAttached if the link already exists.
	AttachAsset(vaultID, assetID, addedBy string) error

	// DetachAsset removes an asset link from a vault.
	DetachAsset(vaultID, assetID string) error

	// ListVaultAssets returns the assets linked into a vault.
	ListVaultAssets(vaultID string) ([]model.Asset, error)
}
