package entity

import (
	"time"

	"github.com/google/uuid"
)

// ImageType tags a stored image as a baseline reference shot or a
// maintenance shot taken during an inspection.
type ImageType string

const (
	ImageTypeBaseline    ImageType = "Baseline"
	ImageTypeMaintenance ImageType = "Maintenance"
)

// Image is owned by exactly one of TransformerRecordID or InspectionID.
// WeatherCondition is set only on Baseline images.
type Image struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	StorageKey       string    `json:"storage_key" gorm:"type:varchar(512);not null;uniqueIndex"`
	FilePath         string    `json:"file_path" gorm:"type:varchar(1024);not null"`
	Type             ImageType `json:"type" gorm:"type:varchar(32);not null"`
	WeatherCondition *string   `json:"weather_condition,omitempty" gorm:"type:varchar(64)"`
	Position         int       `json:"position" gorm:"not null"`
	UploadTime       time.Time `json:"upload_time" gorm:"not null;autoCreateTime;<-:create"`

	TransformerRecordID *uuid.UUID `json:"transformer_record_id,omitempty" gorm:"type:uuid;index"`
	InspectionID        *uuid.UUID `json:"inspection_id,omitempty" gorm:"type:uuid;index"`
}
