package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-pricer/internal/application/common"
	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

type fakeCommand struct{}

func TestSolverMetrics_RecordAndWriteTextfile(t *testing.T) {
	// Arrange
	InitRegistry()
	t.Cleanup(Reset)
	collector := NewSolverMetricsCollector()
	require.NoError(t, collector.Register())
	SetGlobalSolverCollector(collector)

	// Act
	RecordEquilibrium(pricing.EquilibriumResult{Sweeps: 7, Delta: 0.0002, Converged: true, Trace: []float64{1, 0.1, 0.0002}})
	RecordWages(pricing.Wages{Iterations: 4, Converged: true, Contractive: false, Rates: labor.NewVector(2e-7, 3e-7, 4e-7, 5e-7, 6e-7)})
	RecordProjection(pricing.Projection{
		Materials: make([]pricing.MaterialPrice, 3),
		Skipped:   []pricing.SkippedRow{{Kind: "recipe"}, {Kind: "recipe"}},
	})
	path := filepath.Join(t.TempDir(), "out", "pricer.prom")
	require.NoError(t, WriteTextfile(path))

	// Assert
	content := readTextfile(t, path)
	assert.Contains(t, content, "prun_pricer_equilibrium_sweeps 7\n")
	assert.Contains(t, content, "prun_pricer_wage_converged 1\n")
	assert.Contains(t, content, "prun_pricer_wage_contractive 0\n")
	assert.Contains(t, content, `prun_pricer_wage_rate{role="SET"} 3e-07`)
	assert.Contains(t, content, `prun_pricer_priced_rows{kind="material"} 3`)
	assert.Contains(t, content, `prun_pricer_skipped_rows{kind="recipe"} 2`)
	assert.Contains(t, content, `prun_pricer_skipped_rows{kind="resource"} 0`)
	assert.Contains(t, content, "prun_pricer_equilibrium_sweep_delta_count 3")
}

func TestRecordFunctionsAreNoOpsWhenDisabled(t *testing.T) {
	Reset()

	assert.False(t, IsEnabled())
	assert.NotPanics(t, func() {
		RecordEquilibrium(pricing.EquilibriumResult{})
		RecordAPIRetry("GET", "/x", "timeout")
		RecordCircuitState("OPEN")
	})
	assert.NoError(t, WriteTextfile(filepath.Join(t.TempDir(), "none.prom")))
}

func TestAPIMetrics_CircuitStateIsExclusive(t *testing.T) {
	InitRegistry()
	t.Cleanup(Reset)
	collector := NewAPIMetricsCollector()
	require.NoError(t, collector.Register())
	SetGlobalAPICollector(collector)

	RecordCircuitState("OPEN")
	RecordAPIRequest("GET", "/material/allmaterials", 200, 0.3)
	path := filepath.Join(t.TempDir(), "api.prom")
	require.NoError(t, WriteTextfile(path))

	content := readTextfile(t, path)
	assert.Contains(t, content, `prun_pricer_catalog_circuit_state{state="OPEN"} 1`)
	assert.Contains(t, content, `prun_pricer_catalog_circuit_state{state="CLOSED"} 0`)
	assert.Contains(t, content, `prun_pricer_catalog_requests_total{endpoint="/material/allmaterials",method="GET",status_code="200"} 1`)
}

func TestPrometheusMiddleware_RecordsOutcome(t *testing.T) {
	// Arrange
	InitRegistry()
	t.Cleanup(Reset)
	collector := NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	mw := PrometheusMiddleware(collector)
	failing := func(ctx context.Context, request common.Request) (common.Response, error) {
		return nil, errors.New("boom")
	}

	// Act
	_, err := mw(context.Background(), &fakeCommand{}, failing)

	// Assert
	require.Error(t, err)
	path := filepath.Join(t.TempDir(), "cmd.prom")
	require.NoError(t, WriteTextfile(path))
	assert.Contains(t, readTextfile(t, path), `prun_pricer_commands_total{command="fakeCommand",status="error"} 1`)
	assert.Equal(t, "UnknownCommand", commandName(nil))
}

func readTextfile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}
