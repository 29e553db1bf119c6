package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/fuelrouter-go/internal/domain/station"
)

const upsertBatchSize = 1000

// GormStationRepository implements station.Repository using GORM
type GormStationRepository struct {
	db *gorm.DB
}

// NewGormStationRepository creates a new GORM station repository
func NewGormStationRepository(db *gorm.DB) *GormStationRepository {
	return &GormStationRepository{db: db}
}

// UpsertBatch inserts or updates stations keyed on canonical_key
func (r *GormStationRepository) UpsertBatch(ctx context.Context, stations []*station.Station) (int, int, error) {
	if len(stations) == 0 {
		return 0, 0, nil
	}

	keys := make([]string, 0, len(stations))
	for _, s := range stations {
		keys = append(keys, s.CanonicalKey)
	}

	var existing []FuelStationModel
	if err := r.db.WithContext(ctx).Where("canonical_key IN ?", keys).Find(&existing).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to load existing stations: %w", err)
	}
	existingByKey := make(map[string]*FuelStationModel, len(existing))
	for i := range existing {
		existingByKey[existing[i].CanonicalKey] = &existing[i]
	}

	var toCreate []FuelStationModel
	updated := 0

	for _, s := range stations {
		model, ok := existingByKey[s.CanonicalKey]
		if !ok {
			toCreate = append(toCreate, FuelStationModel{
				OPISTruckstopID: s.OPISTruckstopID,
				TruckstopName:   s.Name,
				Address:         s.Address,
				City:            s.City,
				State:           s.State,
				RackID:          s.RackID,
				RetailPrice:     s.RetailPrice,
				CanonicalKey:    s.CanonicalKey,
			})
			continue
		}

		// Geocoding fields are preserved; the import only refreshes the
		// price sheet columns.
		result := r.db.WithContext(ctx).Model(model).Updates(map[string]interface{}{
			"opis_truckstop_id": s.OPISTruckstopID,
			"truckstop_name":    s.Name,
			"address":           s.Address,
			"city":              s.City,
			"state":             s.State,
			"rack_id":           s.RackID,
			"retail_price":      s.RetailPrice,
		})
		if result.Error != nil {
			return 0, 0, fmt.Errorf("failed to update station %s: %w", s.CanonicalKey, result.Error)
		}
		updated++
	}

	if len(toCreate) > 0 {
		if err := r.db.WithContext(ctx).CreateInBatches(toCreate, upsertBatchSize).Error; err != nil {
			return 0, 0, fmt.Errorf("failed to create stations: %w", err)
		}
	}

	return len(toCreate), updated, nil
}

// DeleteAll removes every station row
func (r *GormStationRepository) DeleteAll(ctx context.Context) error {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&FuelStationModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete stations: %w", result.Error)
	}
	return nil
}

// FindGeocodedInBounds streams geocoded stations inside the bounding box in batches
func (r *GormStationRepository) FindGeocodedInBounds(
	ctx context.Context,
	bounds station.Bounds,
	batchSize int,
	fn func(batch []*station.Station) error,
) error {
	var models []FuelStationModel
	result := r.db.WithContext(ctx).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude >= ? AND latitude <= ?", bounds.MinLatitude, bounds.MaxLatitude).
		Where("longitude >= ? AND longitude <= ?", bounds.MinLongitude, bounds.MaxLongitude).
		FindInBatches(&models, batchSize, func(_ *gorm.DB, _ int) error {
			batch := make([]*station.Station, 0, len(models))
			for i := range models {
				batch = append(batch, modelToStation(&models[i]))
			}
			return fn(batch)
		})
	if result.Error != nil {
		return fmt.Errorf("failed to scan stations in bounds: %w", result.Error)
	}
	return nil
}

// FindPendingGeocode returns stations without coordinates that have not failed geocoding
func (r *GormStationRepository) FindPendingGeocode(ctx context.Context, limit int) ([]*station.Station, error) {
	var models []FuelStationModel
	result := r.db.WithContext(ctx).
		Where("latitude IS NULL AND longitude IS NULL AND is_geocode_failed = ?", false).
		Order("id").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list stations pending geocode: %w", result.Error)
	}
	return modelsToStations(models), nil
}

// FindAllForGeocode returns stations ordered by id regardless of geocode state
func (r *GormStationRepository) FindAllForGeocode(ctx context.Context, limit int) ([]*station.Station, error) {
	var models []FuelStationModel
	result := r.db.WithContext(ctx).Order("id").Limit(limit).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list stations for geocode: %w", result.Error)
	}
	return modelsToStations(models), nil
}

// SaveGeocodeResult persists the geocoding fields of a station
func (r *GormStationRepository) SaveGeocodeResult(ctx context.Context, s *station.Station) error {
	result := r.db.WithContext(ctx).
		Model(&FuelStationModel{ID: s.ID}).
		Updates(map[string]interface{}{
			"latitude":          s.Latitude,
			"longitude":         s.Longitude,
			"is_geocode_failed": s.IsGeocodeFailed,
			"geocode_attempts":  s.GeocodeAttempts,
			"last_geocoded_at":  s.LastGeocodedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save geocode result for station %d: %w", s.ID, result.Error)
	}
	return nil
}

// CountAll returns the total number of catalog rows
func (r *GormStationRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&FuelStationModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count stations: %w", err)
	}
	return count, nil
}

// CountGeocoded returns the number of rows carrying coordinates
func (r *GormStationRepository) CountGeocoded(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&FuelStationModel{}).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count geocoded stations: %w", err)
	}
	return count, nil
}

func modelsToStations(models []FuelStationModel) []*station.Station {
	stations := make([]*station.Station, 0, len(models))
	for i := range models {
		stations = append(stations, modelToStation(&models[i]))
	}
	return stations
}

func modelToStation(m *FuelStationModel) *station.Station {
	return &station.Station{
		ID:              m.ID,
		OPISTruckstopID: m.OPISTruckstopID,
		Name:            m.TruckstopName,
		Address:         m.Address,
		City:            m.City,
		State:           m.State,
		RackID:          m.RackID,
		RetailPrice:     m.RetailPrice,
		CanonicalKey:    m.CanonicalKey,
		Latitude:        m.Latitude,
		Longitude:       m.Longitude,
		GeocodeAttempts: m.GeocodeAttempts,
		IsGeocodeFailed: m.IsGeocodeFailed,
		LastGeocodedAt:  m.LastGeocodedAt,
	}
}
