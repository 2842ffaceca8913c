// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{
			name:      "defaults are valid",
			modify:    func(*Config) {},
			wantError: false,
		},
		{
			name:      "port zero",
			modify:    func(c *Config) { c.Server.Port = 0 },
			wantError: true,
		},
		{
			name:      "port too large",
			modify:    func(c *Config) { c.Server.Port = 70000 },
			wantError: true,
		},
		{
			name:      "zero timeout",
			modify:    func(c *Config) { c.Server.Timeout = 0 },
			wantError: true,
		},
		{
			name:      "empty artifacts dir",
			modify:    func(c *Config) { c.Artifacts.Dir = "" },
			wantError: true,
		},
		{
			name:      "default top_n below one",
			modify:    func(c *Config) { c.API.DefaultTopN = 0 },
			wantError: true,
		},
		{
			name:      "max top_n below default",
			modify:    func(c *Config) { c.API.MaxTopN = 2; c.API.DefaultTopN = 5 },
			wantError: true,
		},
		{
			name:      "negative analytics threads",
			modify:    func(c *Config) { c.Analytics.Threads = -1 },
			wantError: true,
		},
		{
			name:      "bad log format",
			modify:    func(c *Config) { c.Logging.Format = "xml" },
			wantError: true,
		},
		{
			name:      "console log format",
			modify:    func(c *Config) { c.Logging.Format = "console" },
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantError && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ESTATEIQ_SERVER_PORT", "server.port"},
		{"ESTATEIQ_ARTIFACTS_DIR", "artifacts.dir"},
		{"ESTATEIQ_ANALYTICS_ENABLED", "analytics.enabled"},
		{"ESTATEIQ_CORS_ORIGINS", "api.cors_origins"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"
	yamlData := []byte("server:\n  port: 9999\nartifacts:\n  dir: /tmp/artifacts\n")
	if err := os.WriteFile(path, yamlData, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999 from config file", cfg.Server.Port)
	}
	if cfg.Artifacts.Dir != "/tmp/artifacts" {
		t.Errorf("Artifacts.Dir = %q, want /tmp/artifacts", cfg.Artifacts.Dir)
	}
	// Untouched fields keep their defaults
	if cfg.API.DefaultTopN != 5 {
		t.Errorf("API.DefaultTopN = %d, want default 5", cfg.API.DefaultTopN)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"
	yamlData := []byte("server:\n  port: 9999\n")
	if err := os.WriteFile(path, yamlData, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("ESTATEIQ_SERVER_PORT", "7777")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777 from env override", cfg.Server.Port)
	}
}
