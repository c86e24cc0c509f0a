package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UploadedImage struct {
	BaseModel
	AccountID   uuid.UUID `gorm:"type:uuid;index;not null"`
	StorageKey  string    `gorm:"not null"`
	URL         string    `gorm:"not null"`
	ContentType string
	SizeBytes   int64

	Analyses []AnalysisResult `gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE"`
}

type AnalysisResult struct {
	BaseModel
	ImageID            uuid.UUID `gorm:"type:uuid;index;not null"`
	AccountID          uuid.UUID `gorm:"type:uuid;index;not null"`
	Condition          string    `gorm:"not null"`
	Confidence         float64
	RecommendationType string
	Message            string         `gorm:"type:text"`
	Payload            datatypes.JSON // the submitted result as received
}
