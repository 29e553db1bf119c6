package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/fuelrouter-go/internal/domain/geo"
)

func TestHaversineMiles_KnownDistance(t *testing.T) {
	// Chicago to St. Louis is roughly 262 miles great-circle
	distance := geo.HaversineMiles(41.8781, -87.6298, 38.6270, -90.1994)

	assert.InDelta(t, 262.0, distance, 5.0)
}

func TestHaversineMiles_ZeroForSamePoint(t *testing.T) {
	distance := geo.HaversineMiles(35.0, -101.0, 35.0, -101.0)

	assert.InDelta(t, 0.0, distance, 1e-9)
}

func TestHaversineMiles_Symmetric(t *testing.T) {
	forward := geo.HaversineMiles(40.0, -75.0, 34.0, -118.0)
	backward := geo.HaversineMiles(34.0, -118.0, 40.0, -75.0)

	assert.InDelta(t, forward, backward, 1e-9)
}

func TestLonLatToMilesXY_LatitudeScale(t *testing.T) {
	// One degree of latitude is 69 miles regardless of reference latitude
	_, y1 := geo.LonLatToMilesXY(0.0, 1.0, 45.0)
	_, y2 := geo.LonLatToMilesXY(0.0, 2.0, 45.0)

	assert.InDelta(t, 69.0, y2-y1, 1e-9)
}

func TestLonLatToMilesXY_LongitudeShrinksWithLatitude(t *testing.T) {
	xEquator, _ := geo.LonLatToMilesXY(1.0, 0.0, 0.0)
	xNorth, _ := geo.LonLatToMilesXY(1.0, 0.0, 60.0)

	assert.InDelta(t, 69.0, xEquator, 1e-6)
	assert.InDelta(t, 34.5, xNorth, 1e-6)
}
