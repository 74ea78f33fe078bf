package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

// SolverMetricsCollector exposes the last price calculation as gauges
type SolverMetricsCollector struct {
	equilibriumSweeps    prometheus.Gauge
	equilibriumDelta     prometheus.Gauge
	equilibriumConverged prometheus.Gauge
	sweepDelta           prometheus.Histogram

	wageIterations  prometheus.Gauge
	wageConverged   prometheus.Gauge
	wageContractive prometheus.Gauge
	wageRate        *prometheus.GaugeVec
	wageResidual    *prometheus.GaugeVec

	pricedRows  *prometheus.GaugeVec
	skippedRows *prometheus.GaugeVec
}

// NewSolverMetricsCollector creates a new solver metrics collector
func NewSolverMetricsCollector() *SolverMetricsCollector {
	return &SolverMetricsCollector{
		equilibriumSweeps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "equilibrium_sweeps",
			Help:      "Gauss-Seidel sweeps used by the last cost equilibrium",
		}),
		equilibriumDelta: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "equilibrium_final_delta",
			Help:      "Largest total change of any material in the final sweep",
		}),
		equilibriumConverged: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "equilibrium_converged",
			Help:      "1 when the last cost equilibrium reached its tolerance",
		}),
		sweepDelta: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "equilibrium_sweep_delta",
			Help:      "Distribution of per-sweep deltas in the last cost equilibrium",
			Buckets:   prometheus.ExponentialBuckets(1e-4, 10, 10),
		}),

		wageIterations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "wage_iterations",
			Help:      "Relaxation passes used by the last wage solve",
		}),
		wageConverged: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "wage_converged",
			Help:      "1 when the last wage solve reached its tolerance",
		}),
		wageContractive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "wage_contractive",
			Help:      "1 when the last wage equations passed the row-sum contraction test",
		}),
		wageRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "wage_rate",
			Help:      "Exchange rate of one labor unit per population role",
		}, []string{"role"}),
		wageResidual: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "wage_residual",
			Help:      "Residual of each relaxed wage equation",
		}, []string{"role"}),

		pricedRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "priced_rows",
			Help:      "Rows priced by the last calculation per report",
		}, []string{"kind"}),
		skippedRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "skipped_rows",
			Help:      "Rows that could not be priced per report",
		}, []string{"kind"}),
	}
}

// Register registers all solver metrics with the Prometheus registry
func (c *SolverMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	metrics := []prometheus.Collector{
		c.equilibriumSweeps,
		c.equilibriumDelta,
		c.equilibriumConverged,
		c.sweepDelta,
		c.wageIterations,
		c.wageConverged,
		c.wageContractive,
		c.wageRate,
		c.wageResidual,
		c.pricedRows,
		c.skippedRows,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

func (c *SolverMetricsCollector) RecordEquilibrium(result pricing.EquilibriumResult) {
	c.equilibriumSweeps.Set(float64(result.Sweeps))
	c.equilibriumDelta.Set(result.Delta)
	c.equilibriumConverged.Set(boolGauge(result.Converged))
	for _, d := range result.Trace {
		c.sweepDelta.Observe(d)
	}
}

func (c *SolverMetricsCollector) RecordWages(wages pricing.Wages) {
	c.wageIterations.Set(float64(wages.Iterations))
	c.wageConverged.Set(boolGauge(wages.Converged))
	c.wageContractive.Set(boolGauge(wages.Contractive))
	for _, role := range labor.Roles {
		c.wageRate.WithLabelValues(role.String()).Set(wages.Rates[role])
		c.wageResidual.WithLabelValues(role.String()).Set(wages.Residuals[role])
	}
}

func (c *SolverMetricsCollector) RecordProjection(projection pricing.Projection) {
	c.pricedRows.WithLabelValues("material").Set(float64(len(projection.Materials)))
	c.pricedRows.WithLabelValues("recipe").Set(float64(len(projection.Recipes)))
	c.pricedRows.WithLabelValues("resource").Set(float64(len(projection.Resources)))

	skipped := map[string]int{"recipe": 0, "resource": 0}
	for _, s := range projection.Skipped {
		skipped[s.Kind]++
	}
	for kind, n := range skipped {
		c.skippedRows.WithLabelValues(kind).Set(float64(n))
	}
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
