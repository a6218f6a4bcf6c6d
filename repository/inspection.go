package repository

import (
	"github.com/google/uuid"
	"github.com/gridscope/transformer-asset-service/entity"
	"gorm.io/gorm"
)

type InspectionRepository struct {
	db *gorm.DB
}

func NewInspectionRepository(db *gorm.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

func (r *InspectionRepository) Create(inspection *entity.Inspection) error {
	return r.db.Create(inspection).Error
}

func (r *InspectionRepository) FindByID(id uuid.UUID, withImages bool) (*entity.Inspection, error) {
	query := r.db
	if withImages {
		query = query.Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
	}

	var inspection entity.Inspection
	err := query.Where("id = ?", id).First(&inspection).Error
	if err != nil {
		return nil, err
	}
	return &inspection, nil
}

func (r *InspectionRepository) FindByTransformerRecordID(recordID uuid.UUID) ([]entity.Inspection, error) {
	var inspections []entity.Inspection
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("transformer_record_id = ?", recordID).Order("created_at ASC").Find(&inspections).Error
	if err != nil {
		return nil, err
	}
	return inspections, nil
}

func (r *InspectionRepository) DeleteByID(id uuid.UUID) error {
	return r.db.Delete(&entity.Inspection{}, "id = ?", id).Error
}
