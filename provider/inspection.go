package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gridscope/transformer-asset-service/entity"
	"github.com/gridscope/transformer-asset-service/infra"
	"github.com/gridscope/transformer-asset-service/infra/produce"
	"github.com/gridscope/transformer-asset-service/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InspectionService coordinates the inspection sub-lifecycle: timestamped
// maintenance events attached to a transformer record, each with its own
// image list. Every inspection image is a Maintenance shot.
type InspectionService struct {
	repo    *repository.Repository
	storage *infra.LocalStorageClient
	logger  *infra.LoggerClient
	events  *produce.AssetEventService
}

func NewInspectionService(
	repo *repository.Repository,
	storage *infra.LocalStorageClient,
	logger *infra.LoggerClient,
	events *produce.AssetEventService,
) *InspectionService {
	return &InspectionService{
		repo:    repo,
		storage: storage,
		logger:  logger,
		events:  events,
	}
}

func (s *InspectionService) Create(ctx context.Context, recordID uuid.UUID, date datatypes.Date, notes string, images []ImageInput, conductedBy uuid.UUID) (*entity.Inspection, error) {
	if conductedBy == uuid.Nil {
		return nil, fmt.Errorf("%w: conducting principal is required", ErrValidation)
	}

	if _, err := s.repo.TransformerRecordRepo.FindByID(recordID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transformer record %s", ErrNotFound, recordID)
		}
		return nil, fmt.Errorf("%w: failed to load transformer record: %v", ErrStorage, err)
	}

	inspection := &entity.Inspection{
		ID:                  uuid.New(),
		TransformerRecordID: recordID,
		ConductedByID:       conductedBy,
		InspectionDate:      date,
		Notes:               notes,
	}

	// Inspection uploads are always maintenance shots.
	maintenance := make([]ImageInput, len(images))
	for i, img := range images {
		img.Type = entity.ImageTypeMaintenance
		img.WeatherCondition = nil
		maintenance[i] = img
	}

	stored, err := storeImageBatch(ctx, s.storage, s.logger, maintenance)
	if err != nil {
		return nil, err
	}
	for i := range stored {
		stored[i].InspectionID = &inspection.ID
	}
	inspection.Images = stored

	if err := s.repo.InspectionRepo.Create(inspection); err != nil {
		deleteBlobsBestEffort(ctx, s.storage, s.logger, imageKeys(stored))
		return nil, fmt.Errorf("%w: failed to persist inspection: %v", ErrStorage, err)
	}

	s.logger.InfoWithContextf(ctx, "[Inspection] Created inspection %s for record %s with %d images", inspection.ID, recordID, len(inspection.Images))
	s.publishEvent(ctx, produce.ActionInspectionCreated, inspection.ID, conductedBy, len(inspection.Images))

	return inspection, nil
}

func (s *InspectionService) GetByID(ctx context.Context, id uuid.UUID, withImages bool) (*entity.Inspection, error) {
	inspection, err := s.repo.InspectionRepo.FindByID(id, withImages)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: inspection %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to load inspection: %v", ErrStorage, err)
	}
	return inspection, nil
}

func (s *InspectionService) GetByTransformerRecord(ctx context.Context, recordID uuid.UUID) ([]entity.Inspection, error) {
	inspections, err := s.repo.InspectionRepo.FindByTransformerRecordID(recordID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list inspections: %v", ErrStorage, err)
	}
	return inspections, nil
}

// AppendImage attaches one maintenance image to an existing inspection.
// Only the conducting principal may append; on refusal nothing is written.
func (s *InspectionService) AppendImage(ctx context.Context, inspectionID uuid.UUID, image ImageInput, actingPrincipal uuid.UUID) (*entity.Image, error) {
	inspection, err := s.repo.InspectionRepo.FindByID(inspectionID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: inspection %s", ErrNotFound, inspectionID)
		}
		return nil, fmt.Errorf("%w: failed to load inspection: %v", ErrStorage, err)
	}

	if inspection.ConductedByID != actingPrincipal {
		return nil, fmt.Errorf("%w: only the conducting principal may add images to inspection %s", ErrForbidden, inspectionID)
	}

	existing, err := s.repo.ImageRepo.FindByInspectionID(inspectionID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load inspection images: %v", ErrStorage, err)
	}

	// Positions may have gaps after single-image deletes, so the next
	// slot comes from the highest surviving position, not the row count.
	position := 0
	for _, img := range existing {
		if img.Position >= position {
			position = img.Position + 1
		}
	}

	key, err := s.storage.Store(image.Data, image.FileName)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to store image %q: %v", ErrStorage, image.FileName, err)
	}

	row := &entity.Image{
		ID:           uuid.New(),
		StorageKey:   key,
		FilePath:     s.storage.Resolve(key),
		Type:         entity.ImageTypeMaintenance,
		Position:     position,
		InspectionID: &inspection.ID,
	}

	if err := s.repo.ImageRepo.Create(row); err != nil {
		deleteBlobsBestEffort(ctx, s.storage, s.logger, []string{key})
		return nil, fmt.Errorf("%w: failed to persist image row: %v", ErrStorage, err)
	}

	return row, nil
}

// Delete cascades over the inspection's images (blobs first) and then the
// inspection row, mirroring the record delete pattern.
func (s *InspectionService) Delete(ctx context.Context, id uuid.UUID) error {
	inspection, err := s.repo.InspectionRepo.FindByID(id, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: inspection %s", ErrNotFound, id)
		}
		return fmt.Errorf("%w: failed to load inspection: %v", ErrStorage, err)
	}

	deleteBlobsBestEffort(ctx, s.storage, s.logger, imageKeys(inspection.Images))

	err = s.repo.Transaction(func(txRepo *repository.Repository) error {
		if err := txRepo.ImageRepo.DeleteByInspectionID(id); err != nil {
			return err
		}
		return txRepo.InspectionRepo.DeleteByID(id)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to delete inspection: %v", ErrStorage, err)
	}

	s.logger.InfoWithContextf(ctx, "[Inspection] Deleted inspection %s (%d images)", id, len(inspection.Images))
	s.publishEvent(ctx, produce.ActionInspectionDeleted, id, uuid.Nil, len(inspection.Images))

	return nil
}

func (s *InspectionService) publishEvent(ctx context.Context, action string, entityID, actorID uuid.UUID, imageCount int) {
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
		s.logger.WarningWithContextf(ctx, "[Inspection] Failed to publish %s event for %s: %v", action, entityID, err)
	}
}
