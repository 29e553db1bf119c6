package planning

import (
	"context"

	"github.com/andrescamacho/fuelrouter-go/internal/domain/geo"
)

// GeocodedLocation is a resolved address with the country the geocoder
// reported for it.
type GeocodedLocation struct {
	Point       geo.Point
	CountryCode string
}

// Geocoder resolves free-form location queries to coordinates.
type Geocoder interface {
	// Geocode resolves query, requiring the result to lie in countryCode
	// when one is given.
	Geocode(ctx context.Context, query, countryCode string) (*GeocodedLocation, error)
}

// Router computes driving routes between waypoints.
type Router interface {
	// RouteThrough fetches the driving route visiting waypoints in order.
	RouteThrough(ctx context.Context, waypoints []geo.Point) (*RouteData, error)
}

// CandidateSelector returns the catalog stations lying within corridorMiles
// of the route, ordered by (milepost, price) ascending.
type CandidateSelector interface {
	Select(ctx context.Context, route *RouteData, corridorMiles float64) ([]CandidateStation, error)
}
