package repository

import (
	"github.com/google/uuid"
	"github.com/gridscope/transformer-asset-service/entity"
	"gorm.io/gorm"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(image *entity.Image) error {
	return r.db.Create(image).Error
}

func (r *ImageRepository) CreateBatch(images []entity.Image) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.Create(&images).Error
}

func (r *ImageRepository) FindByID(id uuid.UUID) (*entity.Image, error) {
	var image entity.Image
	err := r.db.Where("id = ?", id).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepository) FindByTransformerRecordID(recordID uuid.UUID) ([]entity.Image, error) {
	var images []entity.Image
	err := r.db.Where("transformer_record_id = ?", recordID).Order("position ASC").Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) FindByInspectionID(inspectionID uuid.UUID) ([]entity.Image, error) {
	var images []entity.Image
	err := r.db.Where("inspection_id = ?", inspectionID).Order("position ASC").Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) DeleteByID(id uuid.UUID) error {
	return r.db.Delete(&entity.Image{}, "id = ?", id).Error
}

func (r *ImageRepository) DeleteByTransformerRecordID(recordID uuid.UUID) error {
	return r.db.Delete(&entity.Image{}, "transformer_record_id = ?", recordID).Error
}

func (r *ImageRepository) DeleteByInspectionID(inspectionID uuid.UUID) error {
	return r.db.Delete(&entity.Image{}, "inspection_id = ?", inspectionID).Error
}
