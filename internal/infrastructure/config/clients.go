package config

import "time"

// GeocodingConfig holds Nominatim geocoder client configuration
type GeocodingConfig struct {
	// Base URL of the Nominatim-compatible endpoint
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Identifying User-Agent sent on every request (Nominatim usage policy)
	UserAgent string `mapstructure:"user_agent" validate:"required"`

	// Per-request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Additional attempts after a transient failure
	RetryCount int `mapstructure:"retry_count" validate:"min=0"`

	// TTL for cached geocode results
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// Politeness rate limit in requests per second
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// OSRMConfig holds routing engine client configuration
type OSRMConfig struct {
	// Base URL of the OSRM-compatible endpoint
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Per-request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Additional attempts after a transient failure
	RetryCount int `mapstructure:"retry_count" validate:"min=0"`

	// TTL for cached routes
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}
