package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Server    ServerConfig    `mapstructure:"server"`
	Geocoding GeocodingConfig `mapstructure:"geocoding"`
	OSRM      OSRMConfig      `mapstructure:"osrm"`
	Planner   PlannerConfig   `mapstructure:"planner"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (config.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/fuelrouter")
	}

	v.SetEnvPrefix("FUELROUTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional - don't error if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// DATABASE_URL works without the FUELROUTER_ prefix so hosting platforms
	// can inject the connection string directly
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
	}

	applyLegacyEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadConfigOrDefault loads configuration or returns a default config on error
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		defaultCfg := &Config{}
		SetDefaults(defaultCfg)
		return defaultCfg
	}
	return cfg
}

// MustLoadConfig loads configuration and panics on error (for use in main.go)
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// applyLegacyEnv maps the un-prefixed environment names the deployment
// already uses onto their config keys.
func applyLegacyEnv(v *viper.Viper) {
	setString := func(env, key string) {
		if value := os.Getenv(env); value != "" {
			v.Set(key, value)
		}
	}
	setSeconds := func(env, key string) {
		if value := os.Getenv(env); value != "" {
			if seconds, err := strconv.ParseFloat(value, 64); err == nil {
				v.Set(key, time.Duration(seconds*float64(time.Second)))
			}
		}
	}
	setFloat := func(env, key string) {
		if value := os.Getenv(env); value != "" {
			if parsed, err := strconv.ParseFloat(value, 64); err == nil {
				v.Set(key, parsed)
			}
		}
	}
	setInt := func(env, key string) {
		if value := os.Getenv(env); value != "" {
			if parsed, err := strconv.Atoi(value); err == nil {
				v.Set(key, parsed)
			}
		}
	}

	setString("OSRM_BASE_URL", "osrm.base_url")
	setSeconds("OSRM_TIMEOUT_SECONDS", "osrm.timeout")
	setInt("OSRM_RETRY_COUNT", "osrm.retry_count")
	setSeconds("ROUTE_CACHE_TTL_SECONDS", "osrm.cache_ttl")

	setString("GEOCODING_BASE_URL", "geocoding.base_url")
	setString("GEOCODING_USER_AGENT", "geocoding.user_agent")
	setSeconds("GEOCODING_TIMEOUT_SECONDS", "geocoding.timeout")
	setInt("GEOCODING_RETRY_COUNT", "geocoding.retry_count")
	setSeconds("GEOCODE_CACHE_TTL_SECONDS", "geocoding.cache_ttl")

	setFloat("MAX_RANGE_MILES", "planner.max_range_miles")
	setFloat("VEHICLE_MPG", "planner.vehicle_mpg")
	setFloat("FUEL_TANK_GALLONS", "planner.fuel_tank_gallons")
	setFloat("DEFAULT_CORRIDOR_MILES", "planner.default_corridor_miles")
	setInt("MAX_CANDIDATE_STATIONS", "planner.max_candidate_stations")
}
