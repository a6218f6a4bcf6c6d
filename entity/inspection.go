package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Inspection struct {
	ID                  uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	TransformerRecordID uuid.UUID      `json:"transformer_record_id" gorm:"type:uuid;not null;index"`
	ConductedByID       uuid.UUID      `json:"conducted_by_id" gorm:"type:uuid;not null;index"`
	InspectionDate      datatypes.Date `json:"inspection_date" gorm:"not null"`
	Notes               string         `json:"notes" gorm:"type:text"`
	CreatedAt           time.Time      `json:"created_at" gorm:"not null;autoCreateTime;<-:create"`

	Images            []Image            `json:"images,omitempty" gorm:"foreignKey:InspectionID;constraint:OnDelete:CASCADE"`
	TransformerRecord *TransformerRecord `json:"transformer_record,omitempty" gorm:"foreignKey:TransformerRecordID;constraint:OnDelete:CASCADE"`
}
