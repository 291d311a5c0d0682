package gorm

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// Ensure AssetsStore implements store.AssetsStore
var _ store.AssetsStore = (*AssetsStore)(nil)

// AssetsStore implements store.AssetsStore using GORM. Content blobs
// are sealed and opened by hooks on model.AssetBlob; the cipher rides
// in on the connection context.
type AssetsStore struct {
	db *gorm.DB
}

// NewAssetsStore creates a new AssetsStore
func NewAssetsStore(db *gorm.DB) *AssetsStore {
	return &AssetsStore{db: db}
}

// CreateAsset inserts the asset row and its version-1 content blob.
func (s *AssetsStore) CreateAsset(asset *model.Asset, content []byte) error {
	asset.LatestVersion = 1
	asset.SizeBytes = int64(len(content))
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(asset).Error; err != nil {
			return err
		}
		return tx.Create(&model.AssetBlob{
			AssetID: asset.ID,
			Version: 1,
			Value:   content,
		}).Error
	})
}

// FindAsset retrieves an asset by ID, excluding soft-deleted rows.
func (s *AssetsStore) FindAsset(id string) (*model.Asset, error) {
	var asset model.Asset
	if err := s.db.Where("id = ?", id).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// ListAssets returns a page of an organization's assets.
func (s *AssetsStore) ListAssets(orgID, search string, limit, offset int) ([]model.Asset, int64, error) {
	base := s.db.Model(&model.Asset{}).Where("organization_id = ?", orgID)
	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where("title ILIKE ? OR file_name ILIKE ?", pattern, pattern)
	}

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var assets []model.Asset
	err := base.Order("created_at desc").Limit(limit).Offset(offset).Find(&assets).Error
	return assets, count, err
}

// SaveAsset persists metadata changes to an existing asset.
func (s *AssetsStore) SaveAsset(asset *model.Asset) error {
	return s.db.Save(asset).Error
}

// DeleteAsset soft-deletes an asset and detaches it from vaults.
func (s *AssetsStore) DeleteAsset(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", id).Delete(&model.VaultAsset{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Asset{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return store.ErrAssetNotFound
		}
		return nil
	})
}

// AddVersion stores new content as the next version.
func (s *AssetsStore) AddVersion(assetID string, content []byte) (int, error) {
	var version int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var asset model.Asset
		// lock the asset row so concurrent uploads get distinct versions
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", assetID).First(&asset).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrAssetNotFound
			}
			return err
		}

		version = asset.LatestVersion + 1
		if err := tx.Create(&model.AssetBlob{
			AssetID: assetID,
			Version: version,
			Value:   content,
		}).Error; err != nil {
			return err
		}

		return tx.Model(&model.Asset{}).Where("id = ?", assetID).
			Updates(map[string]interface{}{
				"latest_version": version,
				"size_bytes":     int64(len(content)),
			}).Error
	})
	return version, err
}

// FetchContent retrieves content by version; empty version means latest.
func (s *AssetsStore) FetchContent(assetID, version string) (*model.AssetBlob, error) {
	var blob model.AssetBlob
	query := s.db.Where("asset_id = ?", assetID)
	if version != "" {
		query = query.Where("version = ?", version)
	}

	if err := query.Order("version desc").First(&blob).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrVersionNotFound
		}
		return nil, err
	}
	return &blob, nil
}

// ListVersions returns the stored versions, newest first, without content.
func (s *AssetsStore) ListVersions(assetID string) ([]store.AssetVersion, error) {
	var versions []store.AssetVersion
	err := s.db.Table("asset_blobs").
		Select("version, size_bytes, created_at").
		Where("asset_id = ?", assetID).
		Order("version desc").
		Scan(&versions).Error
	return versions, err
}
