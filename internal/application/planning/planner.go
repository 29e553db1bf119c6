package planning

import (
	"context"
	"math"

	geojson "github.com/paulmach/go.geojson"
	"github.com/sirupsen/logrus"

	"github.com/andrescamacho/fuelrouter-go/internal/domain/geo"
	"github.com/andrescamacho/fuelrouter-go/internal/domain/planning"
	"github.com/andrescamacho/fuelrouter-go/internal/infrastructure/config"
)

// Service orchestrates a plan request: geocode both endpoints, fetch the
// route, select corridor candidates, optimize purchases and assemble the
// response. Stateless and safe for concurrent use.
type Service struct {
	geocoder planning.Geocoder
	router   planning.Router
	selector planning.CandidateSelector
	defaults config.PlannerConfig
	logger   *logrus.Logger
}

// NewService creates a plan orchestrator.
func NewService(
	geocoder planning.Geocoder,
	router planning.Router,
	selector planning.CandidateSelector,
	defaults config.PlannerConfig,
	logger *logrus.Logger,
) *Service {
	return &Service{
		geocoder: geocoder,
		router:   router,
		selector: selector,
		defaults: defaults,
		logger:   logger,
	}
}

// Plan computes a fuel plan for the request. The request must already be
// validated; domain errors from downstream components propagate unwrapped so
// the transport layer can map them.
func (s *Service) Plan(ctx context.Context, req *PlanRequest) (*PlanResponse, error) {
	mpg := valueOr(req.VehicleMPG, s.defaults.VehicleMPG)
	tankCapacity := valueOr(req.TankCapacityGallons, s.defaults.FuelTankGallons)
	maxRange := valueOr(req.MaxRangeMiles, s.defaults.MaxRangeMiles)
	corridorMiles := valueOr(req.CorridorMiles, s.defaults.DefaultCorridorMiles)
	startFuelPercent := valueOr(req.StartFuelPercent, 100)
	optimizer := req.Optimizer
	if optimizer == "" {
		optimizer = planning.OptimizerBaseline
	}

	start, err := s.geocoder.Geocode(ctx, req.StartLocation, "us")
	if err != nil {
		return nil, err
	}
	finish, err := s.geocoder.Geocode(ctx, req.FinishLocation, "us")
	if err != nil {
		return nil, err
	}

	route, err := s.router.RouteThrough(ctx, []geo.Point{start.Point, finish.Point})
	if err != nil {
		return nil, err
	}

	candidates, err := s.selector.Select(ctx, route, corridorMiles)
	if err != nil {
		return nil, err
	}

	constraints := planning.Constraints{
		RouteDistanceMiles:  route.DistanceMiles,
		StartFuelGallons:    tankCapacity * startFuelPercent / 100,
		MPG:                 mpg,
		TankCapacityGallons: tankCapacity,
		MaxRangeMiles:       maxRange,
	}

	result, err := planning.Optimize(candidates, constraints, optimizer)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"distance_miles": route.DistanceMiles,
		"candidates":     len(candidates),
		"stops":          len(result.Stops),
		"optimizer_used": result.OptimizerUsed,
	}).Info("fuel plan computed")

	return buildResponse(start.Point, finish.Point, route, result, constraints, corridorMiles), nil
}

func buildResponse(
	start, finish geo.Point,
	route *planning.RouteData,
	result *planning.OptimizationResult,
	constraints planning.Constraints,
	corridorMiles float64,
) *PlanResponse {
	coordinates := make([][]float64, len(route.Coordinates))
	for i, coord := range route.Coordinates {
		coordinates[i] = []float64{roundTo(coord[0], 6), roundTo(coord[1], 6)}
	}

	stops := make([]FuelStopResponse, 0, len(result.Stops))
	for _, stop := range result.Stops {
		stops = append(stops, FuelStopResponse{
			StationID:              stop.Station.StationID,
			StationName:            stop.Station.StationName,
			Address:                stop.Station.Address,
			City:                   stop.Station.City,
			State:                  stop.Station.State,
			Latitude:               roundTo(stop.Station.Latitude, 6),
			Longitude:              roundTo(stop.Station.Longitude, 6),
			Milepost:               roundTo(stop.Station.Milepost, 3),
			DistanceFromRouteMiles: roundTo(stop.Station.DistanceFromRouteMiles, 3),
			PricePerGallon:         roundTo(stop.Station.PricePerGallon, 3),
			GallonsPurchased:       roundTo(stop.GallonsPurchased, 3),
			Cost:                   roundTo(stop.Cost, 2),
			FuelBeforeGallons:      roundTo(stop.FuelBeforeGallons, 3),
			FuelAfterGallons:       roundTo(stop.FuelAfterGallons, 3),
		})
	}

	return &PlanResponse{
		Start:         Coordinate{Latitude: roundTo(start.Latitude, 6), Longitude: roundTo(start.Longitude, 6)},
		Finish:        Coordinate{Latitude: roundTo(finish.Latitude, 6), Longitude: roundTo(finish.Longitude, 6)},
		OptimizerUsed: result.OptimizerUsed,
		RouteGeoJSON:  geojson.NewLineStringGeometry(coordinates),
		Stops:         stops,
		Summary: SummaryResponse{
			DistanceMiles:              roundTo(route.DistanceMiles, 3),
			DurationMinutes:            roundTo(route.DurationSeconds/60, 2),
			TotalGallonsPurchased:      roundTo(result.TotalGallonsPurchased, 3),
			TotalFuelCost:              roundTo(result.TotalFuelCost, 2),
			EstimatedFuelNeededGallons: roundTo(route.DistanceMiles/constraints.MPG, 3),
		},
		Assumptions: AssumptionsResponse{
			VehicleMPG:          constraints.MPG,
			MaxRangeMiles:       constraints.MaxRangeMiles,
			TankCapacityGallons: constraints.TankCapacityGallons,
			CorridorMiles:       corridorMiles,
		},
	}
}

func valueOr(override *float64, fallback float64) float64 {
	if override != nil {
		return *override
	}
	return fallback
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
