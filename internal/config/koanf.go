// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/estateiq/config.yaml",
	"/etc/estateiq/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied. These are loaded
// first, then overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    8090,
			Host:    "0.0.0.0",
			Timeout: 30 * time.Second,
		},
		Artifacts: ArtifactsConfig{
			Dir:            "/data/artifacts",
			PropertiesFile: "properties.csv",
			PipelineFile:   "pipeline.json",
			DistanceFile:   "location_distance.csv",
			SimLocation:    "cosine_sim1.csv",
			SimPriceSize:   "cosine_sim2.csv",
			SimAmenity:     "cosine_sim3.csv",
			FeatureText:    "feature_text.txt",
			VizDataFile:    "data_viz.csv",
		},
		Analytics: AnalyticsConfig{
			Enabled:   true,
			Path:      "", // in-memory by default; artifacts are reloaded at startup anyway
			MaxMemory: "1GB",
			Threads:   0,
			CacheTTL:  5 * time.Minute,
		},
		API: APIConfig{
			DefaultTopN:     5,
			MaxTopN:         50,
			RateLimitReqs:   100,
			RateLimitWindow: 1 * time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using koanf with layered sources:
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// ESTATEIQ_SERVER_PORT -> server.port, ESTATEIQ_ARTIFACTS_DIR -> artifacts.dir
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file, env var first, then defaults.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices when
// they arrive from environment variables.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars arrive as strings but the config wants slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice from the YAML file
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Only variables listed here are honored; everything else is skipped so
// unrelated environment variables never pollute the config.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		"estateiq_server_port":    "server.port",
		"estateiq_server_host":    "server.host",
		"estateiq_server_timeout": "server.timeout",

		"estateiq_artifacts_dir":          "artifacts.dir",
		"estateiq_properties_file":        "artifacts.properties_file",
		"estateiq_pipeline_file":          "artifacts.pipeline_file",
		"estateiq_distance_file":          "artifacts.distance_file",
		"estateiq_sim_location_file":      "artifacts.sim_location_file",
		"estateiq_sim_price_size_file":    "artifacts.sim_price_size_file",
		"estateiq_sim_amenity_file":       "artifacts.sim_amenity_file",
		"estateiq_feature_text_file":      "artifacts.feature_text_file",
		"estateiq_viz_data_file":          "artifacts.viz_data_file",

		"estateiq_analytics_enabled":    "analytics.enabled",
		"estateiq_analytics_path":       "analytics.path",
		"estateiq_analytics_max_memory": "analytics.max_memory",
		"estateiq_analytics_threads":    "analytics.threads",
		"estateiq_analytics_cache_ttl":  "analytics.cache_ttl",

		"estateiq_api_default_top_n":   "api.default_top_n",
		"estateiq_api_max_top_n":       "api.max_top_n",
		"estateiq_rate_limit_requests": "api.rate_limit_reqs",
		"estateiq_rate_limit_window":   "api.rate_limit_window",
		"estateiq_cors_origins":        "api.cors_origins",

		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	return ""
}
