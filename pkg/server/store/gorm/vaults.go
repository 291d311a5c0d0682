package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// Ensure VaultsStore implements store.VaultsStore
var _ store.VaultsStore = (*VaultsStore)(nil)

// VaultsStore implements store.VaultsStore using GORM
type VaultsStore struct {
	db *gorm.DB
}

// NewVaultsStore creates a new VaultsStore
func NewVaultsStore(db *gorm.DB) *VaultsStore {
	return &VaultsStore{db: db}
}

// CreateVault inserts a new draft vault.
func (s *VaultsStore) CreateVault(vault *model.Vault) error {
	return s.db.Create(vault).Error
}

// FindVault retrieves a vault by ID.
func (s *VaultsStore) FindVault(id string) (*model.Vault, error) {
	var vault model.Vault
	if err := s.db.Where("id = ?", id).First(&vault).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrVaultNotFound
		}
		return nil, err
	}
	return &vault, nil
}

// ListVaults returns a page of an organization's vaults.
func (s *VaultsStore) ListVaults(orgID, search string, limit, offset int) ([]model.Vault, int64, error) {
	base := s.db.Model(&model.Vault{}).Where("organization_id = ?", orgID)
	if search != "" {
		base = base.Where("name ILIKE ?", "%"+search+"%")
	}

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var vaults []model.Vault
	err := base.Order("created_at desc").Limit(limit).Offset(offset).Find(&vaults).Error
	return vaults, count, err
}

// SaveVault persists changes to an existing vault.
func (s *VaultsStore) SaveVault(vault *model.Vault) error {
	return s.db.Save(vault).Error
}

// SetVaultStatus updates the lifecycle status.
func (s *VaultsStore) SetVaultStatus(id string, status model.VaultStatus) error {
	tx := s.db.Model(&model.Vault{}).Where("id = ?", id).Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrVaultNotFound
	}
	return nil
}

// DeleteVault removes a vault and its asset links.
func (s *VaultsStore) DeleteVault(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vault_id = ?", id).Delete(&model.VaultAsset{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Vault{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return store.ErrVaultNotFound
		}
		return nil
	})
}

// AttachAsset links an asset into a vault.
func (s *VaultsStore) AttachAsset(vaultID, assetID, addedBy string) error {
	err := s.db.Create(&model.VaultAsset{
		VaultID: vaultID,
		AssetID: assetID,
		AddedBy: addedBy,
	}).Error
	if isUniqueViolation(err) {
		return store.ErrAssetAttached
	}
	return err
}

// DetachAsset removes an asset link from a vault.
func (s *VaultsStore) DetachAsset(vaultID, assetID string) error {
	return s.db.Where("vault_id = ? AND asset_id = ?", vaultID, assetID).
		Delete(&model.VaultAsset{}).Error
}

// ListVaultAssets returns the assets linked into a vault.
func (s *VaultsStore) ListVaultAssets(vaultID string) ([]model.Asset, error) {
	var assets []model.Asset
	err := s.db.
		Joins("JOIN vault_assets ON vault_assets.asset_id = assets.id").
		Where("vault_assets.vault_id = ?", vaultID).
		Order("vault_assets.created_at").
		Find(&assets).Error
	return assets, err
}
