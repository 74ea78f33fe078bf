package config

// MetricsConfig holds metrics collection configuration. The pricer is a
// one-shot tool, so metrics are written in the node exporter textfile format
// instead of being served.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Destination .prom file
	TextfilePath string `mapstructure:"textfile_path" validate:"required_if=Enabled true"`
}
