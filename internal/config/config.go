package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
// Input paths may also arrive via command-line flags, so they are validated
// by Validate after the caller has merged both sources, not by Load.
type Config struct {
	// ClaimsPath points at the weekly claims CSV extract.
	ClaimsPath string `envconfig:"CLAIMS_PATH"`

	// LaborForcePath points at the LAUS labor-force workbook (.xlsx or .csv).
	LaborForcePath string `envconfig:"LABOR_FORCE_PATH"`

	// Period selects the labor-force reporting period, e.g. "2020-03".
	Period string `envconfig:"LABOR_FORCE_PERIOD"`

	// GeoJSONPath points at the county polygon GeoJSON for the choropleth
	// join. Empty disables the choropleth artifact.
	GeoJSONPath string `envconfig:"COUNTY_GEOJSON_PATH"`

	// OutputDir receives all generated artifacts.
	OutputDir string `envconfig:"OUTPUT_DIR" default:"out"`

	HTTPAddr  string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// RunInterval re-runs the pipeline on a timer when positive; zero
	// means one shot and exit.
	RunInterval time.Duration `envconfig:"RUN_INTERVAL" default:"0"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.RunInterval < 0 {
		return nil, errors.New("RUN_INTERVAL must not be negative")
	}
	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}

	return &cfg, nil
}

// Validate checks the settings that have no usable defaults. Called after
// command-line flags have been merged in.
func (c *Config) Validate() error {
	if c.ClaimsPath == "" {
		return errors.New("claims path is required (flag -claims or CLAIMS_PATH)")
	}
	if c.LaborForcePath == "" {
		return errors.New("labor-force path is required (flag -laborforce or LABOR_FORCE_PATH)")
	}
	if c.Period == "" {
		return errors.New("reporting period is required (flag -period or LABOR_FORCE_PERIOD)")
	}
	if c.OutputDir == "" {
		return errors.New("output directory is required")
	}
	return nil
}
