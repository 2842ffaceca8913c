// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

// Package config loads and validates the EstateIQ service configuration from
// defaults, an optional YAML file, and environment variables, in that order
// of precedence (env highest).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the EstateIQ service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// ArtifactsConfig locates the precomputed artifacts loaded at startup.
// All five artifacts live under Dir; individual filenames are overridable
// for testing and staged rollouts of re-exported models.
type ArtifactsConfig struct {
	Dir            string `koanf:"dir"`
	PropertiesFile string `koanf:"properties_file"`
	PipelineFile   string `koanf:"pipeline_file"`
	DistanceFile   string `koanf:"distance_file"`
	SimLocation    string `koanf:"sim_location_file"`
	SimPriceSize   string `koanf:"sim_price_size_file"`
	SimAmenity     string `koanf:"sim_amenity_file"`
	FeatureText    string `koanf:"feature_text_file"`
	VizDataFile    string `koanf:"viz_data_file"`
}

// AnalyticsConfig holds the DuckDB-backed analytics store settings.
type AnalyticsConfig struct {
	Enabled   bool          `koanf:"enabled"`
	Path      string        `koanf:"path"` // empty = in-memory
	MaxMemory string        `koanf:"max_memory"`
	Threads   int           `koanf:"threads"` // 0 = use runtime.NumCPU()
	CacheTTL  time.Duration `koanf:"cache_ttl"`
}

// APIConfig holds API surface settings.
type APIConfig struct {
	DefaultTopN     int           `koanf:"default_top_n"`
	MaxTopN         int           `koanf:"max_top_n"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Validate checks the configuration for values that would prevent startup.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Artifacts.Dir == "" {
		return fmt.Errorf("artifacts.dir must not be empty")
	}
	if c.API.DefaultTopN < 1 {
		return fmt.Errorf("api.default_top_n must be >= 1, got %d", c.API.DefaultTopN)
	}
	if c.API.MaxTopN < c.API.DefaultTopN {
		return fmt.Errorf("api.max_top_n (%d) must be >= api.default_top_n (%d)",
			c.API.MaxTopN, c.API.DefaultTopN)
	}
	if c.Analytics.Threads < 0 {
		return fmt.Errorf("analytics.threads must be >= 0, got %d", c.Analytics.Threads)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
