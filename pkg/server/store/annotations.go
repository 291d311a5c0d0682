package store

import "github.com/appboardguru/boardguru/pkg/model"

// AnnotationsStore abstracts asset annotation storage
type AnnotationsStore interface {
	// SetAnnotation creates or replaces an annotation on an asset.
	SetAnnotation(assetID, name, value string) error

	// ListAnnotations returns all annotations on an asset.
	ListAnnotations(assetID string) ([]model.Annotation, error)

	// DeleteAnnotation removes an annotation from an asset.
	DeleteAnnotation(assetID, name string) error
}
