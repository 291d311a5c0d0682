package model

// Annotation represents metadata on an asset
type Annotation struct {
	AssetID string `gorm:"column:asset_id;primaryKey" json:"asset_id"`
	Name    string `gorm:"column:name;primaryKey" json:"name"`
	Value   string `gorm:"column:value;not null" json:"value"`
}

func (Annotation) TableName() string {
	return "annotations"
}
