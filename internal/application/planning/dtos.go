package planning

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	geojson "github.com/paulmach/go.geojson"
)

// PlanRequest is the client-facing fuel plan request. Optional numbers are
// pointers so an absent field can fall back to the configured default.
type PlanRequest struct {
	StartLocation       string   `json:"start_location" validate:"required,min=3,max=300"`
	FinishLocation      string   `json:"finish_location" validate:"required,min=3,max=300"`
	StartFuelPercent    *float64 `json:"start_fuel_percent" validate:"omitempty,gte=0,lte=100"`
	CorridorMiles       *float64 `json:"corridor_miles" validate:"omitempty,gte=1,lte=50"`
	VehicleMPG          *float64 `json:"vehicle_mpg" validate:"omitempty,gt=0,lte=100"`
	TankCapacityGallons *float64 `json:"tank_capacity_gallons" validate:"omitempty,gt=0,lte=300"`
	MaxRangeMiles       *float64 `json:"max_range_miles" validate:"omitempty,gt=0,lte=2000"`
	Optimizer           string   `json:"optimizer" validate:"omitempty,oneof=baseline ortools"`
}

// RequestValidationError carries per-field constraint violations for the
// HTTP boundary to serialize as validation details.
type RequestValidationError struct {
	Details map[string]string
}

func (e *RequestValidationError) Error() string {
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "invalid request: " + strings.Join(fields, ", ")
}

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New()
	// Report violations under the JSON field name clients actually sent.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the request's field constraints.
func (r *PlanRequest) Validate() error {
	err := requestValidator.Struct(r)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	details := make(map[string]string, len(violations))
	for _, violation := range violations {
		details[violation.Field()] = describeViolation(violation)
	}
	return &RequestValidationError{Details: details}
}

func describeViolation(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", v.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", v.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", v.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", v.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", v.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", v.Param())
	default:
		return fmt.Sprintf("failed constraint %q", v.Tag())
	}
}

// Coordinate is a latitude/longitude pair in the response.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FuelStopResponse is one purchase in the plan.
type FuelStopResponse struct {
	StationID              int64   `json:"station_id"`
	StationName            string  `json:"station_name"`
	Address                string  `json:"address"`
	City                   string  `json:"city"`
	State                  string  `json:"state"`
	Latitude               float64 `json:"latitude"`
	Longitude              float64 `json:"longitude"`
	Milepost               float64 `json:"milepost"`
	DistanceFromRouteMiles float64 `json:"distance_from_route_miles"`
	PricePerGallon         float64 `json:"price_per_gallon"`
	GallonsPurchased       float64 `json:"gallons_purchased"`
	Cost                   float64 `json:"cost"`
	FuelBeforeGallons      float64 `json:"fuel_before_gallons"`
	FuelAfterGallons       float64 `json:"fuel_after_gallons"`
}

// SummaryResponse aggregates the plan totals.
type SummaryResponse struct {
	DistanceMiles              float64 `json:"distance_miles"`
	DurationMinutes            float64 `json:"duration_minutes"`
	TotalGallonsPurchased      float64 `json:"total_gallons_purchased"`
	TotalFuelCost              float64 `json:"total_fuel_cost"`
	EstimatedFuelNeededGallons float64 `json:"estimated_fuel_needed_gallons"`
}

// AssumptionsResponse echoes the effective inputs the plan was computed with.
type AssumptionsResponse struct {
	VehicleMPG          float64 `json:"vehicle_mpg"`
	MaxRangeMiles       float64 `json:"max_range_miles"`
	TankCapacityGallons float64 `json:"tank_capacity_gallons"`
	CorridorMiles       float64 `json:"corridor_miles"`
}

// PlanResponse is the full fuel plan returned to the client.
type PlanResponse struct {
	Start         Coordinate          `json:"start"`
	Finish        Coordinate          `json:"finish"`
	OptimizerUsed string              `json:"optimizer_used"`
	RouteGeoJSON  *geojson.Geometry   `json:"route_geojson"`
	Stops         []FuelStopResponse  `json:"stops"`
	Summary       SummaryResponse     `json:"summary"`
	Assumptions   AssumptionsResponse `json:"assumptions"`
}
