package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the naturalist service.
// Environment variables are parsed from the NATURALIST_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Record store: file | sqlite | postgres
	StoreDriver string `envconfig:"STORE_DRIVER" default:"file"`
	// DataDir overrides the default local state directory (~/.naturalist)
	// for the file and sqlite drivers.
	DataDir     string `envconfig:"DATA_DIR" default:""`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Reverse geocoding
	GeocoderURL      string        `envconfig:"GEOCODER_URL" default:"https://nominatim.openstreetmap.org"`
	GeocoderLanguage string        `envconfig:"GEOCODER_LANGUAGE" default:"ja"`
	GeocoderTimeout  time.Duration `envconfig:"GEOCODER_TIMEOUT" default:"10s"`

	// Connectivity probe; ProbeURL falls back to GeocoderURL when empty.
	ProbeURL     string        `envconfig:"PROBE_URL" default:""`
	ProbeTimeout time.Duration `envconfig:"PROBE_TIMEOUT" default:"3s"`

	// Location sensor. When SensorURL is set, positions are read from a
	// local positioning bridge; otherwise the fixed coordinates are used.
	SensorURL     string        `envconfig:"SENSOR_URL" default:""`
	SensorTimeout time.Duration `envconfig:"SENSOR_TIMEOUT" default:"5s"`
	SensorLat     float64       `envconfig:"SENSOR_LAT" default:"0"`
	SensorLng     float64       `envconfig:"SENSOR_LNG" default:"0"`
}

// ResolveDefaults validates the store driver and derives dependent values.
func (c *Config) ResolveDefaults() error {
	allowedDriver := map[string]bool{"file": true, "sqlite": true, "postgres": true}
	if !allowedDriver[c.StoreDriver] {
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}
	if c.StoreDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("STORE_DRIVER=postgres requires POSTGRES_DSN")
	}
	if c.ProbeURL == "" {
		c.ProbeURL = c.GeocoderURL
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Variables are prefixed with NATURALIST_, e.g. NATURALIST_HTTP_PORT,
// NATURALIST_STORE_DRIVER.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("NATURALIST", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("store_driver", cfg.StoreDriver).
		Int("port", cfg.HTTPPort).
		Str("geocoder_url", cfg.GeocoderURL).
		Str("geocoder_language", cfg.GeocoderLanguage).
		Str("probe_url", cfg.ProbeURL).
		Bool("sensor_bridge", cfg.SensorURL != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	cfg := &Config{
		Environment:      EnvTesting,
		HTTPPort:         8080,
		StoreDriver:      "file",
		GeocoderURL:      "http://localhost:18080",
		GeocoderLanguage: "ja",
		GeocoderTimeout:  2 * time.Second,
		ProbeTimeout:     time.Second,
		SensorTimeout:    time.Second,
	}
	_ = cfg.ResolveDefaults()
	return cfg
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
