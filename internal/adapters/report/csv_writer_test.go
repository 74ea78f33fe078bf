package report_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-pricer/internal/adapters/report"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVWriter_WritesThreeReports(t *testing.T) {
	// Arrange
	dir := filepath.Join(t.TempDir(), "out")
	proj := pricing.Projection{
		Materials: []pricing.MaterialPrice{
			{Ticker: "FE", Source: "SME:1xC-4xFEO=>3xFE", Price: pricing.Price{Total: 10, Repair: 1, Input: 5, Profit: 2, Base: 2}},
		},
		Recipes: []pricing.RecipePrice{
			{Recipe: "SME:1xC-3xFEO=>2xFE", Price: pricing.Price{Total: 12.5, Repair: 1.5, Input: 6, Profit: 2, Base: 3}},
		},
		Resources: []pricing.ResourcePrice{
			{PlanetID: "OT-580b", Material: "FEO", OutputPerRun: 10.5, Price: pricing.Price{Total: 0.25, Base: 0.25}},
		},
	}

	// Act
	files, err := report.NewCSVWriter().Write(context.Background(), dir, proj)

	// Assert
	require.NoError(t, err)
	require.Len(t, files, 3)

	materials := readCSV(t, filepath.Join(dir, report.MaterialCostsFile))
	assert.Equal(t, [][]string{
		{"material", "total cost", "repair cost", "input cost", "desired profit", "base unit cost"},
		{"FE", "10", "1", "5", "2", "2"},
	}, materials)

	recipes := readCSV(t, filepath.Join(dir, report.RecipeCostsFile))
	assert.Equal(t, []string{"SME:1xC-3xFEO=>2xFE", "12.5", "1.5", "6", "2", "3"}, recipes[1])

	resources := readCSV(t, filepath.Join(dir, report.ResourceCostsFile))
	assert.Equal(t, []string{"planet", "material", "total cost", "repair cost", "input cost", "desired profit", "base recipe cost"}, resources[0])
	assert.Equal(t, []string{"OT-580b", "FEO", "0.25", "0", "0", "0", "0.25"}, resources[1])
}

func TestCSVWriter_EmptyProjectionWritesHeaders(t *testing.T) {
	dir := t.TempDir()

	_, err := report.NewCSVWriter().Write(context.Background(), dir, pricing.Projection{})

	require.NoError(t, err)
	assert.Len(t, readCSV(t, filepath.Join(dir, report.RecipeCostsFile)), 1)
}
