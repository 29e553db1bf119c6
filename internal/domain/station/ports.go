package station

import "context"

// Bounds is an inclusive latitude/longitude bounding box.
type Bounds struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}

// Repository is the port to the station catalog store.
type Repository interface {
	// UpsertBatch inserts or updates stations keyed on canonical_key.
	// Returns how many rows were created and how many updated.
	UpsertBatch(ctx context.Context, stations []*Station) (created, updated int, err error)

	// DeleteAll removes every station (used by replace-all imports).
	DeleteAll(ctx context.Context) error

	// FindGeocodedInBounds streams geocoded stations inside the bounding box
	// to fn in batches of batchSize rows. Returning an error from fn aborts
	// the scan.
	FindGeocodedInBounds(ctx context.Context, bounds Bounds, batchSize int, fn func(batch []*Station) error) error

	// FindPendingGeocode returns up to limit stations that have no
	// coordinates and are not flagged as failed, ordered by id.
	FindPendingGeocode(ctx context.Context, limit int) ([]*Station, error)

	// FindAllForGeocode returns up to limit stations ordered by id,
	// regardless of geocoding state (used by forced re-geocode runs).
	FindAllForGeocode(ctx context.Context, limit int) ([]*Station, error)

	// SaveGeocodeResult persists the geocoding fields of a station.
	SaveGeocodeResult(ctx context.Context, s *Station) error

	// CountAll returns the number of catalog rows.
	CountAll(ctx context.Context) (int64, error)

	// CountGeocoded returns the number of rows with coordinates.
	CountGeocoded(ctx context.Context) (int64, error)
}
