package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/andrescamacho/prun-pricer/internal/application/common"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

// Report file names
const (
	MaterialCostsFile = "material_costs.csv"
	RecipeCostsFile   = "recipe_costs.csv"
	ResourceCostsFile = "natural_resource_costs.csv"
)

var (
	materialHeader = []string{"material", "total cost", "repair cost", "input cost", "desired profit", "base unit cost"}
	recipeHeader   = []string{"recipe", "total cost", "repair cost", "input cost", "desired profit", "base recipe cost"}
	resourceHeader = []string{"planet", "material", "total cost", "repair cost", "input cost", "desired profit", "base recipe cost"}
)

// CSVWriter writes the three price reports
type CSVWriter struct{}

func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

var _ common.ReportWriter = (*CSVWriter)(nil)

// Write creates dir if needed and writes one file per report
func (w *CSVWriter) Write(ctx context.Context, dir string, projection pricing.Projection) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	materials := make([][]string, 0, len(projection.Materials))
	for _, m := range projection.Materials {
		materials = append(materials, append([]string{m.Ticker}, priceColumns(m.Price)...))
	}

	recipes := make([][]string, 0, len(projection.Recipes))
	for _, r := range projection.Recipes {
		recipes = append(recipes, append([]string{r.Recipe}, priceColumns(r.Price)...))
	}

	resources := make([][]string, 0, len(projection.Resources))
	for _, r := range projection.Resources {
		resources = append(resources, append([]string{r.PlanetID, r.Material}, priceColumns(r.Price)...))
	}

	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{MaterialCostsFile, materialHeader, materials},
		{RecipeCostsFile, recipeHeader, recipes},
		{ResourceCostsFile, resourceHeader, resources},
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeCSV(path, f.header, f.rows); err != nil {
			return written, err
		}
		written = append(written, path)
		common.LoggerFromContext(ctx).Log("INFO", "report written", map[string]interface{}{
			"path": path,
			"rows": len(f.rows),
		})
	}
	return written, nil
}

// priceColumns orders a price as total, repair, input, profit, base
func priceColumns(p pricing.Price) []string {
	return []string{
		formatFloat(p.Total),
		formatFloat(p.Repair),
		formatFloat(p.Input),
		formatFloat(p.Profit),
		formatFloat(p.Base),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
