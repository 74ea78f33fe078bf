package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-pricer/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, "{}\n")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://rest.fnar.net", cfg.Catalog.BaseURL)
	assert.Equal(t, "cache/catalog.snapshot.zst", cfg.Catalog.CachePath)
	assert.Equal(t, "material_selections.json", cfg.Catalog.SelectionPath)
	assert.Equal(t, 100, cfg.Solver.MaxSweeps)
	assert.Equal(t, 0.001, cfg.Solver.Tolerance)
	assert.Equal(t, 2e-7, cfg.Solver.WageSeed)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "pricer.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
catalog:
  timeout: 5s
  selection_path: selections.yaml
solver:
  max_sweeps: 250
logging:
  level: debug
`)
	t.Setenv("PRICER_SOLVER_TOLERANCE", "0.0001")
	t.Setenv("PRICER_OUTPUT_DIR", "/tmp/reports")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "selections.yaml", cfg.Catalog.SelectionPath)
	assert.Equal(t, 250, cfg.Solver.MaxSweeps)
	assert.Equal(t, 0.0001, cfg.Solver.Tolerance)
	assert.Equal(t, "/tmp/reports", cfg.Output.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"tolerance out of range", "solver:\n  tolerance: 2\n"},
		{"unknown database type", "database:\n  type: mysql\n"},
		{"file logging without path", "logging:\n  output: file\n"},
		{"bad base url", "catalog:\n  base_url: not a url\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.body))

			assert.Error(t, err)
		})
	}
}
