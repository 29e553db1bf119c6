package config

// PlannerConfig holds the default vehicle profile and selection limits
type PlannerConfig struct {
	// Fuel economy assumed when the request does not override it
	VehicleMPG float64 `mapstructure:"vehicle_mpg" validate:"gt=0"`

	// Tank capacity assumed when the request does not override it
	FuelTankGallons float64 `mapstructure:"fuel_tank_gallons" validate:"gt=0"`

	// Maximum distance on one tank when the request does not override it
	MaxRangeMiles float64 `mapstructure:"max_range_miles" validate:"gt=0"`

	// Corridor half-width applied when the request omits corridor_miles
	DefaultCorridorMiles float64 `mapstructure:"default_corridor_miles" validate:"gt=0"`

	// Cap on candidate stations handed to the optimizer
	MaxCandidateStations int `mapstructure:"max_candidate_stations" validate:"min=1"`
}
