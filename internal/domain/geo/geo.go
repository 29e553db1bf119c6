package geo

import "math"

const (
	// EarthRadiusMiles is the mean Earth radius used for great-circle distances.
	EarthRadiusMiles = 3958.7613

	// MilesPerDegreeLat is the approximate north-south extent of one degree of latitude.
	MilesPerDegreeLat = 69.0
)

// Point is an immutable geographic coordinate in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// HaversineMiles returns the great-circle distance in miles between two coordinates.
func HaversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180.0
	lon1Rad := lon1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	lon2Rad := lon2 * math.Pi / 180.0

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2.0)*math.Sin(dLat/2.0) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2.0)*math.Sin(dLon/2.0)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMiles * c
}

// LonLatToMilesXY projects a coordinate into a local planar frame measured in
// miles, using an equirectangular approximation around refLat. The
// approximation is only valid for segment-local geometry spanning a few miles.
func LonLatToMilesXY(lon, lat, refLat float64) (x, y float64) {
	milesPerDegreeLon := MilesPerDegreeLat * math.Cos(refLat*math.Pi/180.0)
	return lon * milesPerDegreeLon, lat * MilesPerDegreeLat
}
