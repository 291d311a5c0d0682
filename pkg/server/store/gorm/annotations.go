package gorm

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/appboardguru/boardguru/pkg/model"
	"github.com/appboardguru/boardguru/pkg/server/store"
)

// Ensure AnnotationsStore implements store.AnnotationsStore
var _ store.AnnotationsStore = (*AnnotationsStore)(nil)

// AnnotationsStore implements store.AnnotationsStore using GORM
type AnnotationsStore struct {
	db *gorm.DB
}

// NewAnnotationsStore creates a new AnnotationsStore
func NewAnnotationsStore(db *gorm.DB) *AnnotationsStore {
	return &AnnotationsStore{db: db}
}

// SetAnnotation creates or replaces an annotation on an asset.
func (s *AnnotationsStore) SetAnnotation(assetID, name, value string) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&model.Annotation{
		AssetID: assetID,
		Name:    name,
		Value:   value,
	}).Error
}

// ListAnnotations returns all annotations on an asset.
func (s *AnnotationsStore) ListAnnotations(assetID string) ([]model.Annotation, error) {
	var annotations []model.Annotation
	err := s.db.Where("asset_id = ?", assetID).Order("name").Find(&annotations).Error
	return annotations, err
}

// DeleteAnnotation removes an annotation from an asset.
func (s *AnnotationsStore) DeleteAnnotation(assetID, name string) error {
	return s.db.Where("asset_id = ? AND name = ?", assetID, name).
		Delete(&model.Annotation{}).Error
}
