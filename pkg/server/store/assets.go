package store

import (
	"errors"
	"time"

	"github.com/appboardguru/boardguru/pkg/model"
)

// ErrAssetNotFound is returned when no asset matches the lookup
var ErrAssetNotFound = errors.New("asset not found")

// ErrVersionNotFound is returned when an asset lacks the requested version
var ErrVersionNotFound = errors.New("asset version not found")

// AssetVersion describes one stored version without its content
type AssetVersion struct {
	Version   int       `json:"version"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// AssetsStore abstracts asset metadata and content storage
type AssetsStore interface {
	// CreateAsset inserts the asset row and its version-1 content blob
	// in one transaction.
	CreateAsset(asset *model.Asset, content []byte) error

	// FindAsset retrieves an asset by ID, excluding soft-deleted rows.
	// Returns ErrAssetNotFound if no such asset exists.
	FindAsset(id string) (*model.Asset, error)

	// ListAssets returns a page of an organization's assets plus the
	// total count. A non-empty search filters on title and file name.
	ListAssets(orgID, search string, limit, offset int) ([]model.Asset, int64, error)

	// SaveAsset persists metadata changes to an existing asset.
	SaveAsset(asset *model.Asset) error

	// DeleteAsset soft-deletes an asset. Content blobs are retained
	// for audit until purged.
	DeleteAsset(id string) error

	// AddVersion stores new content as the next version and returns
	// the assigned version number.
	AddVersion(assetID string, content []byte) (int, error)

	// FetchContent retrieves content by version; an empty version means
	// the latest. Returns ErrVersionNotFound if absent.
	FetchContent(assetID, version string) (*model.AssetBlob, error)

	// ListVersions returns the stored versions, newest first, without
	// content.
	ListVersions(assetID string) ([]AssetVersion, error)
}
