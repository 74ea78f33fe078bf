package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

const (
	// Namespace for all metrics
	namespace = "prun"
	// Subsystem for pricer metrics
	subsystem = "pricer"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalSolverCollector is set by SetGlobalSolverCollector when metrics are enabled
	globalSolverCollector SolverMetricsRecorder

	// globalAPICollector is set by SetGlobalAPICollector when metrics are enabled
	globalAPICollector APIMetricsRecorder
)

// SolverMetricsRecorder records the outcome of a price calculation
type SolverMetricsRecorder interface {
	RecordEquilibrium(result pricing.EquilibriumResult)
	RecordWages(wages pricing.Wages)
	RecordProjection(projection pricing.Projection)
}

// APIMetricsRecorder records catalog API traffic
type APIMetricsRecorder interface {
	RecordAPIRequest(method, endpoint string, statusCode int, duration float64)
	RecordAPIRetry(method, endpoint, reason string)
	RecordRateLimitWait(method, endpoint string, duration float64)
	RecordCircuitState(state string)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Reset drops the registry and every global collector
func Reset() {
	Registry = nil
	globalSolverCollector = nil
	globalAPICollector = nil
}

// WriteTextfile writes the registry in the node_exporter textfile format.
// The write is atomic so a scraping exporter never sees a partial file.
func WriteTextfile(path string) error {
	if Registry == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// SetGlobalSolverCollector sets the global solver metrics collector
func SetGlobalSolverCollector(collector SolverMetricsRecorder) {
	globalSolverCollector = collector
}

// RecordEquilibrium records the cost equilibrium outcome globally
func RecordEquilibrium(result pricing.EquilibriumResult) {
	if globalSolverCollector != nil {
		globalSolverCollector.RecordEquilibrium(result)
	}
}

// RecordWages records the wage solve outcome globally
func RecordWages(wages pricing.Wages) {
	if globalSolverCollector != nil {
		globalSolverCollector.RecordWages(wages)
	}
}

// RecordProjection records priced and skipped row counts globally
func RecordProjection(projection pricing.Projection) {
	if globalSolverCollector != nil {
		globalSolverCollector.RecordProjection(projection)
	}
}

// SetGlobalAPICollector sets the global API metrics collector
func SetGlobalAPICollector(collector APIMetricsRecorder) {
	globalAPICollector = collector
}

// RecordAPIRequest records a catalog API request globally
func RecordAPIRequest(method, endpoint string, statusCode int, duration float64) {
	if globalAPICollector != nil {
		globalAPICollector.RecordAPIRequest(method, endpoint, statusCode, duration)
	}
}

// RecordAPIRetry records a catalog API retry globally
func RecordAPIRetry(method, endpoint, reason string) {
	if globalAPICollector != nil {
		globalAPICollector.RecordAPIRetry(method, endpoint, reason)
	}
}

// RecordRateLimitWait records time spent in the rate limiter globally
func RecordRateLimitWait(method, endpoint string, duration float64) {
	if globalAPICollector != nil {
		globalAPICollector.RecordRateLimitWait(method, endpoint, duration)
	}
}

// RecordCircuitState records the circuit breaker state globally
func RecordCircuitState(state string) {
	if globalAPICollector != nil {
		globalAPICollector.RecordCircuitState(state)
	}
}
