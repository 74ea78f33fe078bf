package config

import (
	"time"

	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Catalog defaults
	if cfg.Catalog.BaseURL == "" {
		cfg.Catalog.BaseURL = "https://rest.fnar.net"
	}
	if cfg.Catalog.Timeout == 0 {
		cfg.Catalog.Timeout = 60 * time.Second
	}
	if cfg.Catalog.RateLimit.Requests == 0 {
		cfg.Catalog.RateLimit.Requests = 2
	}
	if cfg.Catalog.RateLimit.Burst == 0 {
		cfg.Catalog.RateLimit.Burst = 2
	}
	if cfg.Catalog.Retry.MaxAttempts == 0 {
		cfg.Catalog.Retry.MaxAttempts = 3
	}
	if cfg.Catalog.Retry.BackoffBase == 0 {
		cfg.Catalog.Retry.BackoffBase = 1 * time.Second
	}
	if cfg.Catalog.CachePath == "" {
		cfg.Catalog.CachePath = "cache/catalog.snapshot.zst"
	}
	if cfg.Catalog.SelectionPath == "" {
		cfg.Catalog.SelectionPath = "material_selections.json"
	}

	// Solver defaults
	if cfg.Solver.MaxSweeps == 0 {
		cfg.Solver.MaxSweeps = pricing.DefaultMaxSweeps
	}
	if cfg.Solver.Tolerance == 0 {
		cfg.Solver.Tolerance = pricing.DefaultTolerance
	}
	if cfg.Solver.WageMaxIterations == 0 {
		cfg.Solver.WageMaxIterations = pricing.DefaultWageMaxIterations
	}
	if cfg.Solver.WageTolerance == 0 {
		cfg.Solver.WageTolerance = pricing.DefaultWageTolerance
	}
	if cfg.Solver.WageSeed == 0 {
		cfg.Solver.WageSeed = pricing.DefaultWageSeed
	}

	// Output defaults
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "pricer.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "pricer"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "pricer"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.TextfilePath == "" {
		cfg.Metrics.TextfilePath = "pricer.prom"
	}
}
