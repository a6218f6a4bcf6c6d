package provider

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gridscope/transformer-asset-service/entity"
	"github.com/gridscope/transformer-asset-service/infra"
	"github.com/gridscope/transformer-asset-service/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func testDate(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

type testEnv struct {
	records     *TransformerRecordService
	inspections *InspectionService
	storage     *infra.LocalStorageClient
	repo        *repository.Repository
	db          *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.TransformerRecord{},
		&entity.Inspection{},
		&entity.Image{},
	))

	storage := &infra.LocalStorageClient{
		Directory:    t.TempDir(),
		PublicPrefix: "/uploads",
	}
	logger := &infra.LoggerClient{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	repo := repository.NewRepository(db)

	return &testEnv{
		records:     NewTransformerRecordService(repo, storage, logger, nil, nil),
		inspections: NewInspectionService(repo, storage, logger, nil),
		storage:     storage,
		repo:        repo,
		db:          db,
	}
}

func baselineInput(name, condition string) ImageInput {
	return ImageInput{
		Data:             []byte("content of " + name),
		FileName:         name,
		Type:             entity.ImageTypeBaseline,
		WeatherCondition: &condition,
	}
}

func maintenanceInput(name string) ImageInput {
	return ImageInput{
		Data:     []byte("content of " + name),
		FileName: name,
		Type:     entity.ImageTypeMaintenance,
	}
}

func validRecordInput() TransformerRecordInput {
	return TransformerRecordInput{
		Name:         "TX-104",
		LocationName: "North Substation",
		LocationLat:  6.9271,
		LocationLng:  79.8612,
		Capacity:     "102.5 kVA",
	}
}
