// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/surtd/internal/surt"
)

// Load resolves the configuration: defaults, then the YAML file at path
// (skipped only when path is empty; a named file that does not exist is
// an error), then SURTD_* environment overrides. The result is validated.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		// The operator named this file; running on defaults instead
		// would hide the mistake.
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Listen = ParseString("SURTD_LISTEN", cfg.Listen)
	cfg.DataDir = ParseString("SURTD_DATA_DIR", cfg.DataDir)
	cfg.Profile = ParseString("SURTD_PROFILE", cfg.Profile)
	cfg.LogLevel = ParseString("SURTD_LOG_LEVEL", cfg.LogLevel)
	cfg.RateLimit = ParseInt("SURTD_RATE_LIMIT", cfg.RateLimit)
	cfg.MaxBatch = ParseInt("SURTD_MAX_BATCH", cfg.MaxBatch)
	cfg.IndexDisabled = ParseBool("SURTD_INDEX_DISABLED", cfg.IndexDisabled)
	cfg.ShutdownTimeout = ParseDuration("SURTD_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
}

// Validate rejects configurations the daemon cannot run with.
func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("config: listen address must not be empty")
	}
	if c.DataDir == "" {
		return errors.New("config: dataDir must not be empty")
	}
	switch c.Profile {
	case "default", "ia":
	default:
		return fmt.Errorf("config: unknown profile %q (want \"default\" or \"ia\")", c.Profile)
	}
	for name := range c.Options {
		if !surt.Known(name) {
			return fmt.Errorf("config: unknown transform option %q", name)
		}
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config: rateLimit must not be negative, got %d", c.RateLimit)
	}
	if c.MaxBatch < 1 {
		return fmt.Errorf("config: maxBatch must be at least 1, got %d", c.MaxBatch)
	}
	if c.ShutdownTimeout < 0 {
		return errors.New("config: shutdownTimeout must not be negative")
	}
	return nil
}

// TransformOptions builds the effective option set: the named profile as
// base, with per-option overrides applied on top.
func (c Config) TransformOptions() *surt.Options {
	var opts *surt.Options
	if c.Profile == "ia" {
		opts = surt.IAOptions()
	} else {
		opts = surt.NewOptions()
	}
	for name, value := range c.Options {
		opts.Set(name, value)
	}
	return opts
}
