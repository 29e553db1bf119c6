package station

import (
	"fmt"
	"strings"
	"time"
)

// Station is a truck-stop fuel price catalog row. Rows are created by the
// price import, mutated only by geocoding runs, and never deleted except by
// an explicit replace.
type Station struct {
	ID              int64
	OPISTruckstopID int64
	Name            string
	Address         string
	City            string
	State           string
	RackID          *int64
	RetailPrice     float64
	CanonicalKey    string
	Latitude        *float64
	Longitude       *float64
	GeocodeAttempts int
	IsGeocodeFailed bool
	LastGeocodedAt  *time.Time
}

// MakeCanonicalKey builds the deduplication identity for a physical fueling
// location: UPPER(address)|UPPER(city)|state.
func MakeCanonicalKey(address, city, state string) string {
	return strings.ToUpper(address) + "|" + strings.ToUpper(city) + "|" + state
}

// FullAddress is the query string handed to the geocoder.
func (s *Station) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s, USA", s.Address, s.City, s.State)
}

// IsGeocoded reports whether the station carries usable coordinates.
func (s *Station) IsGeocoded() bool {
	return s.Latitude != nil && s.Longitude != nil
}
