package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrescamacho/fuelrouter-go/internal/adapters/persistence"
	"github.com/andrescamacho/fuelrouter-go/internal/domain/station"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&persistence.FuelStationModel{}))
	return db
}

func floatPtr(v float64) *float64 { return &v }

func testStation(key string, price float64) *station.Station {
	return &station.Station{
		OPISTruckstopID: 1,
		Name:            "Test Stop",
		Address:         "100 Main St",
		City:            "Tulsa",
		State:           "OK",
		RetailPrice:     price,
		CanonicalKey:    key,
	}
}

func TestStationRepository_UpsertCreatesAndUpdates(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := persistence.NewGormStationRepository(db)
	ctx := context.Background()

	// Act - initial import
	created, updated, err := repo.UpsertBatch(ctx, []*station.Station{
		testStation("100 MAIN ST|TULSA|OK", 3.500),
		testStation("200 RIVER RD|DENVER|CO", 3.900),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 0, updated)

	// Act - re-import with a cheaper Tulsa price
	created, updated, err = repo.UpsertBatch(ctx, []*station.Station{
		testStation("100 MAIN ST|TULSA|OK", 3.200),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, 1, updated)

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	var model persistence.FuelStationModel
	require.NoError(t, db.Where("canonical_key = ?", "100 MAIN ST|TULSA|OK").First(&model).Error)
	assert.InDelta(t, 3.200, model.RetailPrice, 1e-9)
}

func TestStationRepository_UpsertPreservesGeocodingFields(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := persistence.NewGormStationRepository(db)
	ctx := context.Background()

	s := testStation("100 MAIN ST|TULSA|OK", 3.500)
	_, _, err := repo.UpsertBatch(ctx, []*station.Station{s})
	require.NoError(t, err)

	stations, err := repo.FindAllForGeocode(ctx, 10)
	require.NoError(t, err)
	require.Len(t, stations, 1)

	stored := stations[0]
	stored.Latitude = floatPtr(36.15)
	stored.Longitude = floatPtr(-95.99)
	stored.GeocodeAttempts = 1
	require.NoError(t, repo.SaveGeocodeResult(ctx, stored))

	// Act - price refresh
	_, _, err = repo.UpsertBatch(ctx, []*station.Station{testStation("100 MAIN ST|TULSA|OK", 3.100)})
	require.NoError(t, err)

	// Assert - coordinates survive the re-import
	geocoded, err := repo.CountGeocoded(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), geocoded)
}

func TestStationRepository_FindGeocodedInBounds(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := persistence.NewGormStationRepository(db)
	ctx := context.Background()

	inside := testStation("IN|TULSA|OK", 3.4)
	outside := testStation("OUT|MIAMI|FL", 3.2)
	pending := testStation("PENDING|TULSA|OK", 3.3)
	_, _, err := repo.UpsertBatch(ctx, []*station.Station{inside, outside, pending})
	require.NoError(t, err)

	all, err := repo.FindAllForGeocode(ctx, 10)
	require.NoError(t, err)
	for _, s := range all {
		switch s.CanonicalKey {
		case "IN|TULSA|OK":
			s.Latitude, s.Longitude = floatPtr(36.0), floatPtr(-96.0)
		case "OUT|MIAMI|FL":
			s.Latitude, s.Longitude = floatPtr(25.7), floatPtr(-80.2)
		default:
			continue
		}
		require.NoError(t, repo.SaveGeocodeResult(ctx, s))
	}

	bounds := station.Bounds{MinLatitude: 34, MaxLatitude: 38, MinLongitude: -98, MaxLongitude: -94}

	// Act
	var seen []string
	err = repo.FindGeocodedInBounds(ctx, bounds, 100, func(batch []*station.Station) error {
		for _, s := range batch {
			seen = append(seen, s.CanonicalKey)
		}
		return nil
	})

	// Assert - only the geocoded station inside the box is streamed
	require.NoError(t, err)
	assert.Equal(t, []string{"IN|TULSA|OK"}, seen)
}

func TestStationRepository_FindPendingGeocodeSkipsFailed(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := persistence.NewGormStationRepository(db)
	ctx := context.Background()

	ok := testStation("A|TULSA|OK", 3.4)
	failed := testStation("B|TULSA|OK", 3.4)
	_, _, err := repo.UpsertBatch(ctx, []*station.Station{ok, failed})
	require.NoError(t, err)

	all, err := repo.FindAllForGeocode(ctx, 10)
	require.NoError(t, err)
	for _, s := range all {
		if s.CanonicalKey == "B|TULSA|OK" {
			s.IsGeocodeFailed = true
			s.GeocodeAttempts = 1
			require.NoError(t, repo.SaveGeocodeResult(ctx, s))
		}
	}

	// Act
	pending, err := repo.FindPendingGeocode(ctx, 10)

	// Assert
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "A|TULSA|OK", pending[0].CanonicalKey)
}

func TestStationRepository_DeleteAll(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := persistence.NewGormStationRepository(db)
	ctx := context.Background()

	_, _, err := repo.UpsertBatch(ctx, []*station.Station{testStation("A|TULSA|OK", 3.4)})
	require.NoError(t, err)

	// Act
	require.NoError(t, repo.DeleteAll(ctx))

	// Assert
	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
