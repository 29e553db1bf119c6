package config

import "time"

// DatabaseConfig holds station catalog database configuration
type DatabaseConfig struct {
	// Database type: postgres or sqlite
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// Full connection URL (overrides individual fields when set)
	URL string `mapstructure:"url"`

	// Individual connection fields (postgres)
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`

	// File path for SQLite (":memory:" for in-memory)
	Path string `mapstructure:"path"`

	// Connection pool settings
	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig holds connection pool configuration
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=0"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=0"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}
