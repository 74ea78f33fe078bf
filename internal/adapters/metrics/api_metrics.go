package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetricsCollector handles catalog API request metrics
type APIMetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retries         *prometheus.CounterVec
	rateLimitWait   *prometheus.HistogramVec
	circuitState    *prometheus.GaugeVec
}

// NewAPIMetricsCollector creates a new API metrics collector
func NewAPIMetricsCollector() *APIMetricsCollector {
	return &APIMetricsCollector{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_requests_total",
				Help:      "Catalog API requests by method, endpoint and status code",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_request_duration_seconds",
				Help:      "Catalog API request duration distribution",
				Buckets:   []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
			},
			[]string{"method", "endpoint"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_retries_total",
				Help:      "Catalog API retry attempts by reason",
			},
			[]string{"method", "endpoint", "reason"},
		),
		rateLimitWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_rate_limit_wait_seconds",
				Help:      "Time spent waiting for the catalog rate limiter",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"method", "endpoint"},
		),
		circuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_circuit_state",
				Help:      "1 for the current circuit breaker state, 0 for the others",
			},
			[]string{"state"},
		),
	}
}

// Register registers all API metrics with the Prometheus registry
func (c *APIMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	metrics := []prometheus.Collector{
		c.requestsTotal,
		c.requestDuration,
		c.retries,
		c.rateLimitWait,
		c.circuitState,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

func (c *APIMetricsCollector) RecordAPIRequest(method, endpoint string, statusCode int, duration float64) {
	c.requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

func (c *APIMetricsCollector) RecordAPIRetry(method, endpoint, reason string) {
	c.retries.WithLabelValues(method, endpoint, reason).Inc()
}

func (c *APIMetricsCollector) RecordRateLimitWait(method, endpoint string, duration float64) {
	c.rateLimitWait.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordCircuitState marks state as current
func (c *APIMetricsCollector) RecordCircuitState(state string) {
	for _, s := range []string{"CLOSED", "OPEN", "HALF_OPEN"} {
		v := 0.0
		if s == state {
			v = 1
		}
		c.circuitState.WithLabelValues(s).Set(v)
	}
}
