// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads daemon configuration from a YAML file with
// environment overrides. Precedence: environment > file > defaults.
package config

import "time"

// Config is the fully-resolved daemon configuration.
type Config struct {
	// Listen is the HTTP listen address, e.g. ":8080".
	Listen string `yaml:"listen"`

	// DataDir is the directory holding the key index database.
	DataDir string `yaml:"dataDir"`

	// Profile selects the base option profile: "default" or "ia".
	Profile string `yaml:"profile"`

	// Options overrides individual transform toggles on top of the profile.
	Options map[string]bool `yaml:"options"`

	// LogLevel is the zerolog level name ("debug", "info", ...).
	LogLevel string `yaml:"logLevel"`

	// RateLimit is the per-client request budget per minute; 0 disables
	// rate limiting.
	RateLimit int `yaml:"rateLimit"`

	// MaxBatch caps the number of URLs accepted by one batch request.
	MaxBatch int `yaml:"maxBatch"`

	// IndexDisabled turns the key index off. The daemon then only serves
	// transforms; the index endpoints respond 503.
	IndexDisabled bool `yaml:"indexDisabled"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Listen:          ":8080",
		DataDir:         "./data",
		Profile:         "default",
		LogLevel:        "info",
		RateLimit:       600,
		MaxBatch:        1000,
		ShutdownTimeout: 10 * time.Second,
	}
}
