package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "fuelrouter"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "fuelrouter"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "fuelrouter.db"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8000"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}

	// Geocoding defaults
	if cfg.Geocoding.BaseURL == "" {
		cfg.Geocoding.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geocoding.UserAgent == "" {
		cfg.Geocoding.UserAgent = "fuelrouter/1.0"
	}
	if cfg.Geocoding.Timeout == 0 {
		cfg.Geocoding.Timeout = 12 * time.Second
	}
	if cfg.Geocoding.RetryCount == 0 {
		cfg.Geocoding.RetryCount = 2
	}
	if cfg.Geocoding.CacheTTL == 0 {
		cfg.Geocoding.CacheTTL = 86400 * time.Second
	}
	if cfg.Geocoding.RateLimit.Requests == 0 {
		cfg.Geocoding.RateLimit.Requests = 1
	}
	if cfg.Geocoding.RateLimit.Burst == 0 {
		cfg.Geocoding.RateLimit.Burst = 1
	}

	// OSRM defaults
	if cfg.OSRM.BaseURL == "" {
		cfg.OSRM.BaseURL = "https://router.project-osrm.org"
	}
	if cfg.OSRM.Timeout == 0 {
		cfg.OSRM.Timeout = 12 * time.Second
	}
	if cfg.OSRM.RetryCount == 0 {
		cfg.OSRM.RetryCount = 2
	}
	if cfg.OSRM.CacheTTL == 0 {
		cfg.OSRM.CacheTTL = 600 * time.Second
	}

	// Planner defaults
	if cfg.Planner.VehicleMPG == 0 {
		cfg.Planner.VehicleMPG = 10
	}
	if cfg.Planner.FuelTankGallons == 0 {
		cfg.Planner.FuelTankGallons = 50
	}
	if cfg.Planner.MaxRangeMiles == 0 {
		cfg.Planner.MaxRangeMiles = 500
	}
	if cfg.Planner.DefaultCorridorMiles == 0 {
		cfg.Planner.DefaultCorridorMiles = 8
	}
	if cfg.Planner.MaxCandidateStations == 0 {
		cfg.Planner.MaxCandidateStations = 600
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
