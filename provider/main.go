package provider

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gridscope/transformer-asset-service/entity"
	"github.com/gridscope/transformer-asset-service/infra"
	"github.com/gridscope/transformer-asset-service/infra/produce"
	"github.com/gridscope/transformer-asset-service/repository"
)

// ImageInput is one normalized upload: raw bytes plus the already-applied
// type/condition rule from the batch mapper at the HTTP boundary.
type ImageInput struct {
	Data             []byte
	FileName         string
	Type             entity.ImageType
	WeatherCondition *string
}

type Provider struct {
	TransformerRecord *TransformerRecordService
	Inspection        *InspectionService
}

var providerInstance *Provider

func InitProvider(inf *infra.Infra, repo *repository.Repository) *Provider {
	var events *produce.AssetEventService
	if inf.Produce != nil {
		events = inf.Produce.AssetEvents
	}

	providerInstance = &Provider{
		TransformerRecord: NewTransformerRecordService(repo, inf.Storage, inf.Logger, inf.Redis, events),
		Inspection:        NewInspectionService(repo, inf.Storage, inf.Logger, events),
	}

	return providerInstance
}

func GetProvider() *Provider {
	if providerInstance == nil {
		panic("Provider not initialized")
	}
	return providerInstance
}

// storeImageBatch writes each input blob in order and builds the image rows.
// On any write failure the blobs already written by this call are removed
// best-effort and the whole batch fails; no partial batch is ever returned.
func storeImageBatch(ctx context.Context, storage *infra.LocalStorageClient, logger *infra.LoggerClient, inputs []ImageInput) ([]entity.Image, error) {
	images := make([]entity.Image, 0, len(inputs))
	keys := make([]string, 0, len(inputs))

	for i, input := range inputs {
		key, err := storage.Store(input.Data, input.FileName)
		if err != nil {
			deleteBlobsBestEffort(ctx, storage, logger, keys)
			return nil, fmt.Errorf("%w: failed to store image %q: %v", ErrStorage, input.FileName, err)
		}
		keys = append(keys, key)

		condition := input.WeatherCondition
		if input.Type != entity.ImageTypeBaseline {
			condition = nil
		}

		images = append(images, entity.Image{
			ID:               uuid.New(),
			StorageKey:       key,
			FilePath:         storage.Resolve(key),
			Type:             input.Type,
			WeatherCondition: condition,
			Position:         i,
		})
	}

	return images, nil
}

// deleteBlobsBestEffort removes blobs without failing the caller's
// operation; unreachable files must never block metadata cleanup.
func deleteBlobsBestEffort(ctx context.Context, storage *infra.LocalStorageClient, logger *infra.LoggerClient, keys []string) {
	for _, key := range keys {
		if err := storage.Delete(key); err != nil {
			logger.WarningWithContextf(ctx, "[Storage] Failed to delete blob %s: %v", key, err)
		}
	}
}

func imageKeys(images []entity.Image) []string {
	keys := make([]string, 0, len(images))
	for _, img := range images {
		keys = append(keys, img.StorageKey)
	}
	return keys
}
