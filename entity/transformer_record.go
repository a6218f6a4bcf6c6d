package entity

import (
	"time"

	"github.com/google/uuid"
)

type TransformerRecord struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	LocationName string    `json:"location_name" gorm:"type:varchar(255);not null"`
	LocationLat  float64   `json:"location_lat" gorm:"not null"`
	LocationLng  float64   `json:"location_lng" gorm:"not null"`
	Capacity     string    `json:"capacity" gorm:"type:varchar(64);not null"`
	UploadedByID uuid.UUID `json:"uploaded_by_id" gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Images []Image `json:"images" gorm:"foreignKey:TransformerRecordID;constraint:OnDelete:CASCADE"`
}
