package config

import "time"

// CatalogConfig holds settings for fetching and caching the game catalog
type CatalogConfig struct {
	// Base URL of the FNAR REST API
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Retry     RetryConfig     `mapstructure:"retry"`

	// Compressed catalog snapshot written after every fetch
	CachePath string `mapstructure:"cache_path" validate:"required"`

	// Material selection file (JSON or YAML)
	SelectionPath string `mapstructure:"selection_path" validate:"required"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	// Maximum number of retry attempts
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0"`

	// Base duration for exponential backoff
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}
