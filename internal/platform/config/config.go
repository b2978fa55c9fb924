// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a
strongly-typed Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to the repository and its collaborators via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds the runtime configuration needed to construct the media
// repository and its Postgres-backed collaborators. There is no server
// or transport configuration here: this package owns only the
// infrastructure the repository itself depends on.
type Config struct {
	// Environment names the deployment environment ("development", "production").
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	// Debug, when true, lowers the slog level to Debug.
	Debug bool `env:"DEBUG" envDefault:"false"`

	// DatabaseURL is a libpq-compatible DSN or postgres:// URL.
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`

	// PoolMaxConns caps the number of pooled Postgres connections.
	PoolMaxConns int32 `env:"DB_POOL_MAX_CONNS" envDefault:"25"`
	// PoolMinConns keeps a warm set of connections to avoid cold-start latency.
	PoolMinConns int32 `env:"DB_POOL_MIN_CONNS" envDefault:"5"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the process is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the process is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
