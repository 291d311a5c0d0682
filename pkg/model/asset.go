package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/appboardguru/boardguru/pkg/cipher"
)

// Asset represents a board document. Content lives in asset_blobs, one row
// per version; the asset row carries metadata and the latest version number.
type Asset struct {
	ID             string         `gorm:"column:id;primaryKey" json:"id"`
	OrganizationID string         `gorm:"column:organization_id;not null" json:"organization_id"`
	Title          string         `gorm:"column:title;not null" json:"title"`
	FileName       string         `gorm:"column:file_name;not null" json:"file_name"`
	ContentType    string         `gorm:"column:content_type;not null" json:"content_type"`
	SizeBytes      int64          `gorm:"column:size_bytes;not null" json:"size_bytes"`
	LatestVersion  int            `gorm:"column:latest_version;not null" json:"latest_version"`
	UploadedBy     string         `gorm:"column:uploaded_by;not null" json:"uploaded_by"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at" json:"-"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// AssetBlob is one encrypted version of an asset's content. The value is
// sealed with the server data key; the asset ID is the AAD, so a blob moved
// to another asset row fails to open.
type AssetBlob struct {
	AssetID   string    `gorm:"column:asset_id;primaryKey" json:"asset_id"`
	Version   int       `gorm:"column:version;primaryKey" json:"version"`
	Value     []byte    `gorm:"column:value;type:bytea" json:"-"`
	SizeBytes int64     `gorm:"column:size_bytes;not null" json:"size_bytes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AssetBlob) TableName() string {
	return "asset_blobs"
}

func (b *AssetBlob) BeforeCreate(tx *gorm.DB) error {
	c, err := cipherForDB(tx)
	if err != nil {
		return err
	}

	b.SizeBytes = int64(len(b.Value))
	b.Value, err = c.Seal([]byte(b.AssetID), b.Value)
	if err != nil {
		return fmt.Errorf("asset encryption failed for asset_id=%q", b.AssetID)
	}
	return nil
}

func (b *AssetBlob) AfterFind(tx *gorm.DB) (err error) {
	c, err := cipherForDB(tx)
	if err != nil {
		return err
	}

	b.Value, err = c.Open([]byte(b.AssetID), b.Value)
	if err != nil {
		err = fmt.Errorf("asset decryption failed for asset_id=%q", b.AssetID)
	}
	return
}

// cipherForDB extracts the data-key cipher from the gorm context. The
// connection is built with db.Connect, which attaches it.
func cipherForDB(tx *gorm.DB) (cipher.Symmetric, error) {
	c, ok := tx.Statement.Context.Value("cipher").(cipher.Symmetric)
	if !ok || c == nil {
		return nil, fmt.Errorf("no cipher in database context")
	}
	return c, nil
}
