package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gridscope/transformer-asset-service/entity"
	"github.com/gridscope/transformer-asset-service/infra"
	"github.com/gridscope/transformer-asset-service/infra/produce"
	"github.com/gridscope/transformer-asset-service/repository"
	"gorm.io/gorm"
)

const recordCacheTTL = 5 * time.Minute

// TransformerRecordInput carries the required fields for record creation.
type TransformerRecordInput struct {
	Name         string
	LocationName string
	LocationLat  float64
	LocationLng  float64
	Capacity     string
}

// TransformerRecordPatch carries optional field updates; nil means unchanged.
type TransformerRecordPatch struct {
	Name         *string
	LocationName *string
	LocationLat  *float64
	LocationLng  *float64
	Capacity     *string
}

// TransformerRecordService coordinates the relational store and the blob
// store across the record lifecycle. Blob writes happen before metadata
// persists; deletes run blobs-first so a crash leaves at most orphan rows.
type TransformerRecordService struct {
	repo    *repository.Repository
	storage *infra.LocalStorageClient
	logger  *infra.LoggerClient
	cache   *infra.RedisClient
	events  *produce.AssetEventService
}

func NewTransformerRecordService(
	repo *repository.Repository,
	storage *infra.LocalStorageClient,
	logger *infra.LoggerClient,
	cache *infra.RedisClient,
	events *produce.AssetEventService,
) *TransformerRecordService {
	return &TransformerRecordService{
		repo:    repo,
		storage: storage,
		logger:  logger,
		cache:   cache,
		events:  events,
	}
}

func recordCacheKey(id uuid.UUID) string {
	return "transformer_record:" + id.String()
}

func (s *TransformerRecordService) Create(ctx context.Context, input TransformerRecordInput, images []ImageInput, uploadedBy uuid.UUID) (*entity.TransformerRecord, error) {
	if input.Name == "" || input.LocationName == "" || input.Capacity == "" {
		return nil, fmt.Errorf("%w: name, location name and capacity are required", ErrValidation)
	}
	if uploadedBy == uuid.Nil {
		return nil, fmt.Errorf("%w: uploading principal is required", ErrValidation)
	}

	record := &entity.TransformerRecord{
		ID:           uuid.New(),
		Name:         input.Name,
		LocationName: input.LocationName,
		LocationLat:  input.LocationLat,
		LocationLng:  input.LocationLng,
		Capacity:     input.Capacity,
		UploadedByID: uploadedBy,
	}

	stored, err := storeImageBatch(ctx, s.storage, s.logger, images)
	if err != nil {
		return nil, err
	}
	for i := range stored {
		stored[i].TransformerRecordID = &record.ID
	}
	record.Images = stored

	if err := s.repo.TransformerRecordRepo.Create(record); err != nil {
		deleteBlobsBestEffort(ctx, s.storage, s.logger, imageKeys(stored))
		return nil, fmt.Errorf("%w: failed to persist transformer record: %v", ErrStorage, err)
	}

	s.logger.InfoWithContextf(ctx, "[TransformerRecord] Created record %s with %d images", record.ID, len(record.Images))
	s.publishEvent(ctx, produce.ActionRecordCreated, record.ID, uploadedBy, len(record.Images))

	return record, nil
}

func (s *TransformerRecordService) GetByID(ctx context.Context, id uuid.UUID) (*entity.TransformerRecord, error) {
	if s.cache != nil {
		var cached entity.TransformerRecord
		if err := s.cache.Get(ctx, recordCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	record, err := s.repo.TransformerRecordRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transformer record %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to load transformer record: %v", ErrStorage, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, recordCacheKey(id), record, recordCacheTTL); err != nil {
			s.logger.WarningWithContextf(ctx, "[TransformerRecord] Failed to cache record %s: %v", id, err)
		}
	}

	return record, nil
}

func (s *TransformerRecordService) List(ctx context.Context) ([]entity.TransformerRecord, error) {
	records, err := s.repo.TransformerRecordRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list transformer records: %v", ErrStorage, err)
	}
	return records, nil
}

// Update applies a field-level patch and, when newImages is non-empty,
// replaces the entire image list: old blobs are removed best-effort, old
// rows deleted, and the new batch attached in their place.
func (s *TransformerRecordService) Update(ctx context.Context, id uuid.UUID, patch TransformerRecordPatch, newImages []ImageInput, updatedBy uuid.UUID) (*entity.TransformerRecord, error) {
	record, err := s.repo.TransformerRecordRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transformer record %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to load transformer record: %v", ErrStorage, err)
	}

	if patch.Name != nil {
		record.Name = *patch.Name
	}
	if patch.LocationName != nil {
		record.LocationName = *patch.LocationName
	}
	if patch.LocationLat != nil {
		record.LocationLat = *patch.LocationLat
	}
	if patch.LocationLng != nil {
		record.LocationLng = *patch.LocationLng
	}
	if patch.Capacity != nil {
		record.Capacity = *patch.Capacity
	}

	if len(newImages) > 0 {
		deleteBlobsBestEffort(ctx, s.storage, s.logger, imageKeys(record.Images))
		if err := s.repo.ImageRepo.DeleteByTransformerRecordID(id); err != nil {
			return nil, fmt.Errorf("%w: failed to delete existing images: %v", ErrStorage, err)
		}

		stored, err := storeImageBatch(ctx, s.storage, s.logger, newImages)
		if err != nil {
			return nil, err
		}
		for i := range stored {
			stored[i].TransformerRecordID = &record.ID
		}

		if err := s.repo.ImageRepo.CreateBatch(stored); err != nil {
			deleteBlobsBestEffort(ctx, s.storage, s.logger, imageKeys(stored))
			return nil, fmt.Errorf("%w: failed to persist replacement images: %v", ErrStorage, err)
		}
		record.Images = stored
	}

	if err := s.repo.TransformerRecordRepo.Save(record); err != nil {
		return nil, fmt.Errorf("%w: failed to persist transformer record: %v", ErrStorage, err)
	}

	s.invalidateCache(ctx, id)
	s.publishEvent(ctx, produce.ActionRecordUpdated, record.ID, updatedBy, len(record.Images))

	return record, nil
}

// Delete cascades over the record's own images, every inspection conducted
// against it, and finally the record row. Blobs go before rows.
func (s *TransformerRecordService) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := s.repo.TransformerRecordRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: transformer record %s", ErrNotFound, id)
		}
		return fmt.Errorf("%w: failed to load transformer record: %v", ErrStorage, err)
	}

	inspections, err := s.repo.InspectionRepo.FindByTransformerRecordID(id)
	if err != nil {
		return fmt.Errorf("%w: failed to load inspections: %v", ErrStorage, err)
	}

	deleteBlobsBestEffort(ctx, s.storage, s.logger, imageKeys(record.Images))
	for _, inspection := range inspections {
		deleteBlobsBestEffort(ctx, s.storage, s.logger, imageKeys(inspection.Images))
	}

	// Rows go in one transaction so a crash midway cannot leave an
	// inspection pointing at a deleted record.
	err = s.repo.Transaction(func(txRepo *repository.Repository) error {
		if err := txRepo.ImageRepo.DeleteByTransformerRecordID(id); err != nil {
			return err
		}
		for _, inspection := range inspections {
			if err := txRepo.ImageRepo.DeleteByInspectionID(inspection.ID); err != nil {
				return err
			}
			if err := txRepo.InspectionRepo.DeleteByID(inspection.ID); err != nil {
				return err
			}
		}
		return txRepo.TransformerRecordRepo.DeleteByID(id)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to delete transformer record: %v", ErrStorage, err)
	}

	s.invalidateCache(ctx, id)
	s.logger.InfoWithContextf(ctx, "[TransformerRecord] Deleted record %s (%d images, %d inspections)", id, len(record.Images), len(inspections))
	s.publishEvent(ctx, produce.ActionRecordDeleted, id, uuid.Nil, len(record.Images))

	return nil
}

// DeleteImage removes a single image row and its blob regardless of owner.
// Calling it again for the same id reports NotFound.
func (s *TransformerRecordService) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	image, err := s.repo.ImageRepo.FindByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: image %s", ErrNotFound, imageID)
		}
		return fmt.Errorf("%w: failed to load image: %v", ErrStorage, err)
	}

	if err := s.storage.Delete(image.StorageKey); err != nil {
		s.logger.WarningWithContextf(ctx, "[TransformerRecord] Failed to delete blob %s: %v", image.StorageKey, err)
	}

	if err := s.repo.ImageRepo.DeleteByID(imageID); err != nil {
		return fmt.Errorf("%w: failed to delete image row: %v", ErrStorage, err)
	}

	if image.TransformerRecordID != nil {
		s.invalidateCache(ctx, *image.TransformerRecordID)
	}

	return nil
}

func (s *TransformerRecordService) invalidateCache(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, recordCacheKey(id)); err != nil {
		s.logger.WarningWithContextf(ctx, "[TransformerRecord] Failed to invalidate cache for %s: %v", id, err)
	}
}

func (s *TransformerRecordService) publishEvent(ctx context.Context, action string, entityID, actorID uuid.UUID, imageCount int) {
	if s.events == nil {
		return
	}

	msg := produce.AssetEventMessage{
		Action:     action,
		EntityID:   entityID.String(),
		ImageCount: imageCount,
	}
	if actorID != uuid.Nil {
		msg.ActorID = actorID.String()
	}

	if err := s.events.PublishAssetEvent(ctx, msg); err != nil {
		s.logger.WarningWithContextf(ctx, "[TransformerRecord] Failed to publish %s event for %s: %v", action, entityID, err)
	}
}
