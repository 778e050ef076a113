// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Pipeline PipelineConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// PipelineConfig holds pipeline execution settings.
type PipelineConfig struct {
	// Workers bounds how many series files are parsed in parallel
	// (default: 0, meaning the host CPU count)
	Workers int `env:"PIPELINE_WORKERS" default:"0"`

	// Timeout is the maximum duration for one pipeline run (default: 10m)
	Timeout time.Duration `env:"PIPELINE_TIMEOUT" default:"10m"`
}

// DatabaseConfig holds Postgres settings for the postgres output sink.
// URL is only needed when a manifest names a postgres output; that check
// happens at run time, not here.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log output format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.Pipeline.Workers < 0 {
		errs = append(errs, "PIPELINE_WORKERS must be non-negative")
	}
	if c.Pipeline.Timeout <= 0 {
		errs = append(errs, "PIPELINE_TIMEOUT must be positive")
	}

	if c.Database.MaxConns <= 0 {
		errs = append(errs, "DB_MAX_CONNS must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// The database URL is masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Pipeline: {Workers: %d, Timeout: %s}, ", c.Pipeline.Workers, c.Pipeline.Timeout))
	b.WriteString(fmt.Sprintf("Database: {URL: [MASKED], MaxConns: %d}, ", c.Database.MaxConns))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}", c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
