package planning

import "math"

// Optimizer tags accepted on a plan request.
const (
	OptimizerBaseline = "baseline"
	OptimizerORTools  = "ortools"
)

// Epsilon absorbs floating-point noise in fuel and mileage arithmetic.
const Epsilon = 1e-6

// RouteData is the driving route returned by the routing engine. Coordinates
// are ordered (lon, lat) to match the external GeoJSON convention; downstream
// code must be careful with axis order. DistanceMiles is the road-network
// distance and is authoritative over the polyline's summed haversine length.
type RouteData struct {
	Coordinates     [][2]float64
	DistanceMiles   float64
	DurationSeconds float64
}

// CandidateStation is a catalog station projected onto a specific route.
type CandidateStation struct {
	StationID              int64
	StationName            string
	Address                string
	City                   string
	State                  string
	Latitude               float64
	Longitude              float64
	PricePerGallon         float64
	Milepost               float64
	DistanceFromRouteMiles float64
}

// FuelStopPlan is a single purchase decision.
type FuelStopPlan struct {
	Station           CandidateStation
	GallonsPurchased  float64
	Cost              float64
	FuelBeforeGallons float64
	FuelAfterGallons  float64
}

// OptimizationResult is the ordered list of purchases and their totals.
type OptimizationResult struct {
	OptimizerUsed         string
	Stops                 []FuelStopPlan
	TotalGallonsPurchased float64
	TotalFuelCost         float64
}

// Constraints are the vehicle and route parameters a plan must satisfy.
type Constraints struct {
	RouteDistanceMiles  float64
	StartFuelGallons    float64
	MPG                 float64
	TankCapacityGallons float64
	MaxRangeMiles       float64
}

// EffectiveRangeMiles is the longest distance drivable on one tank:
// min(configured max range, tank capacity x mpg).
func (c Constraints) EffectiveRangeMiles() float64 {
	return math.Min(c.MaxRangeMiles, c.TankCapacityGallons*c.MPG)
}
