package repository

import (
	"github.com/gridscope/transformer-asset-service/infra"
	"gorm.io/gorm"
)

type Repository struct {
	TransformerRecordRepo *TransformerRecordRepository
	ImageRepo             *ImageRepository
	InspectionRepo        *InspectionRepository

	db *gorm.DB
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = NewRepository(infra.Postgres.DB)
	return repository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		TransformerRecordRepo: NewTransformerRecordRepository(db),
		ImageRepo:             NewImageRepository(db),
		InspectionRepo:        NewInspectionRepository(db),
		db:                    db,
	}
}

func GetRepository() *Repository {
	if repository == nil {
		panic("repository not initialized")
	}
	return repository
}

// Transaction runs fn against a repository bound to a database
// transaction; fn returning an error rolls everything back.
func (r *Repository) Transaction(fn func(txRepo *Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
