package provider

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gridscope/transformer-asset-service/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransformerRecord_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := uuid.New()

	created, err := env.records.Create(ctx, validRecordInput(), []ImageInput{
		baselineInput("front.jpg", "Sunny"),
		maintenanceInput("thermal.jpg"),
	}, admin)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	loaded, err := env.records.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "TX-104", loaded.Name)
	assert.Equal(t, admin, loaded.UploadedByID)
	require.Len(t, loaded.Images, 2)

	first, second := loaded.Images[0], loaded.Images[1]
	assert.Equal(t, entity.ImageTypeBaseline, first.Type)
	require.NotNil(t, first.WeatherCondition)
	assert.Equal(t, "Sunny", *first.WeatherCondition)

	assert.Equal(t, entity.ImageTypeMaintenance, second.Type)
	assert.Nil(t, second.WeatherCondition)

	for _, img := range loaded.Images {
		assert.NotEmpty(t, img.StorageKey)
		assert.True(t, strings.HasPrefix(img.FilePath, "/uploads/"))
		assert.True(t, env.storage.Exists(img.StorageKey), "blob must exist for %s", img.StorageKey)
	}
}

func TestCreateTransformerRecord_ConditionOnlyOnBaseline(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// A condition slipping through on a maintenance entry must be dropped.
	condition := "Rainy"
	created, err := env.records.Create(ctx, validRecordInput(), []ImageInput{
		{
			Data:             []byte("x"),
			FileName:         "m.jpg",
			Type:             entity.ImageTypeMaintenance,
			WeatherCondition: &condition,
		},
	}, uuid.New())
	require.NoError(t, err)

	require.Len(t, created.Images, 1)
	assert.Nil(t, created.Images[0].WeatherCondition)
}

func TestCreateTransformerRecord_PersistFailureRollsBackBlobs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Dropping the images table makes the metadata insert fail after the
	// blobs have been written, exercising the rollback branch.
	require.NoError(t, env.db.Migrator().DropTable(&entity.Image{}))

	_, err := env.records.Create(ctx, validRecordInput(), []ImageInput{
		baselineInput("a.jpg", "Sunny"),
		maintenanceInput("b.jpg"),
	}, uuid.New())
	require.ErrorIs(t, err, ErrStorage)

	entries, err := os.ReadDir(env.storage.Directory)
	require.NoError(t, err)
	assert.Empty(t, entries, "rolled-back blobs must not remain on disk")
}

func TestCreateTransformerRecord_ValidationError(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := validRecordInput()
	input.Name = ""

	_, err := env.records.Create(ctx, input, nil, uuid.New())
	require.ErrorIs(t, err, ErrValidation)

	_, err = env.records.Create(ctx, validRecordInput(), nil, uuid.Nil)
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateTransformerRecord_PatchLeavesImagesUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := uuid.New()

	created, err := env.records.Create(ctx, validRecordInput(), []ImageInput{
		baselineInput("a.jpg", "Cloudy"),
		maintenanceInput("b.jpg"),
	}, admin)
	require.NoError(t, err)

	originalKeys := imageKeys(created.Images)

	newName := "TX-104-renamed"
	updated, err := env.records.Update(ctx, created.ID, TransformerRecordPatch{Name: &newName}, nil, admin)
	require.NoError(t, err)

	assert.Equal(t, "TX-104-renamed", updated.Name)
	assert.Equal(t, created.LocationName, updated.LocationName)
	assert.Equal(t, created.Capacity, updated.Capacity)

	loaded, err := env.records.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, originalKeys, imageKeys(loaded.Images))
}

func TestUpdateTransformerRecord_ReplacesImageList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := uuid.New()

	created, err := env.records.Create(ctx, validRecordInput(), []ImageInput{
		baselineInput("old1.jpg", "Sunny"),
		maintenanceInput("old2.jpg"),
	}, admin)
	require.NoError(t, err)

	oldKeys := imageKeys(created.Images)

	updated, err := env.records.Update(ctx, created.ID, TransformerRecordPatch{}, []ImageInput{
		maintenanceInput("replacement.jpg"),
	}, admin)
	require.NoError(t, err)

	require.Len(t, updated.Images, 1)
	assert.Equal(t, entity.ImageTypeMaintenance, updated.Images[0].Type)

	for _, key := range oldKeys {
		assert.False(t, env.storage.Exists(key), "replaced blob %s must be gone", key)
	}
	assert.True(t, env.storage.Exists(updated.Images[0].StorageKey))

	loaded, err := env.records.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Images, 1)
	assert.Equal(t, updated.Images[0].StorageKey, loaded.Images[0].StorageKey)
}

func TestUpdateTransformerRecord_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.records.Update(context.Background(), uuid.New(), TransformerRecordPatch{}, nil, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTransformerRecord_Cascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := uuid.New()

	created, err := env.records.Create(ctx, validRecordInput(), []ImageInput{
		baselineInput("a.jpg", "Sunny"),
	}, admin)
	require.NoError(t, err)

	inspection, err := env.inspections.Create(ctx, created.ID, testDate(2026, 8, 12), "routine check", []ImageInput{
		maintenanceInput("insp.jpg"),
	}, admin)
	require.NoError(t, err)

	imageID := created.Images[0].ID
	recordKeys := imageKeys(created.Images)
	inspectionKeys := imageKeys(inspection.Images)

	require.NoError(t, env.records.Delete(ctx, created.ID))

	_, err = env.records.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = env.inspections.GetByID(ctx, inspection.ID, false)
	require.ErrorIs(t, err, ErrNotFound)

	err = env.records.DeleteImage(ctx, imageID)
	require.ErrorIs(t, err, ErrNotFound)

	for _, key := range append(recordKeys, inspectionKeys...) {
		assert.False(t, env.storage.Exists(key), "cascade must remove blob %s", key)
	}

	// A second delete of the same record is NotFound, not a crash.
	require.ErrorIs(t, env.records.Delete(ctx, created.ID), ErrNotFound)
}

func TestDeleteImage_SecondCallNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.records.Create(ctx, validRecordInput(), []ImageInput{
		baselineInput("a.jpg", "Sunny"),
		maintenanceInput("b.jpg"),
	}, uuid.New())
	require.NoError(t, err)

	imageID := created.Images[0].ID
	key := created.Images[0].StorageKey

	require.NoError(t, env.records.DeleteImage(ctx, imageID))
	assert.False(t, env.storage.Exists(key))

	require.ErrorIs(t, env.records.DeleteImage(ctx, imageID), ErrNotFound)

	loaded, err := env.records.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Images, 1)
	assert.Equal(t, created.Images[1].StorageKey, loaded.Images[0].StorageKey)
}
