package config

import "time"

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Listen address (host:port)
	Address string `mapstructure:"address" validate:"required"`

	// Read/write timeouts for client connections
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// Grace period for in-flight requests on shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// CORS origins allowed to call the API
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
