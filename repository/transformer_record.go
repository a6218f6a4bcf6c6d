package repository

import (
	"github.com/google/uuid"
	"github.com/gridscope/transformer-asset-service/entity"
	"gorm.io/gorm"
)

type TransformerRecordRepository struct {
	db *gorm.DB
}

func NewTransformerRecordRepository(db *gorm.DB) *TransformerRecordRepository {
	return &TransformerRecordRepository{db: db}
}

func (r *TransformerRecordRepository) Create(record *entity.TransformerRecord) error {
	return r.db.Create(record).Error
}

// FindByID loads a record with its images in upload order.
func (r *TransformerRecordRepository) FindByID(id uuid.UUID) (*entity.TransformerRecord, error) {
	var record entity.TransformerRecord
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *TransformerRecordRepository) FindAll() ([]entity.TransformerRecord, error) {
	var records []entity.TransformerRecord
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("created_at ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Save performs an insert-or-full-replace of the record row. Associated
// images are managed explicitly by the caller, never through Save.
func (r *TransformerRecordRepository) Save(record *entity.TransformerRecord) error {
	return r.db.Omit("Images").Save(record).Error
}

func (r *TransformerRecordRepository) DeleteByID(id uuid.UUID) error {
	return r.db.Delete(&entity.TransformerRecord{}, "id = ?", id).Error
}
