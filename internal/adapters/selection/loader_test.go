package selection_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-pricer/internal/adapters/selection"
	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(catalog.Records{
		Buildings: []catalog.Building{{Ticker: "SME"}, {Ticker: "EXT"}},
		Recipes: []catalog.Recipe{
			{Name: "SME:1xC-4xFEO=>3xFE", BuildingTicker: "SME",
				Outputs: []catalog.MaterialAmount{{Ticker: "FE", Amount: 3}}},
			{Name: "SME:1xC-3xFEO=>2xFE", BuildingTicker: "SME",
				Outputs: []catalog.MaterialAmount{{Ticker: "FE", Amount: 2}}},
		},
		Materials: []catalog.Material{{Ticker: "FE", ID: "m-fe"}, {Ticker: "FEO", ID: "m-feo"}, {Ticker: "C", ID: "m-c"}},
		Planets: []catalog.Planet{
			{NaturalID: "OT-580b", Resources: []catalog.PlanetResource{{MaterialID: "m-feo", Type: catalog.ResourceMineral, Factor: 0.3}}},
			{NaturalID: "OT-580c"},
		},
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newLoader(t *testing.T) *selection.Loader {
	t.Helper()
	loader, err := selection.NewLoader()
	require.NoError(t, err)
	return loader
}

func TestLoader_JSONAndYAML(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "sel.json", `{"FE": "SME:1xC-4xFEO=>3xFE", "FEO": "OT-580b", "C": ""}`},
		{"yaml", "sel.yaml", "FE: SME:1xC-4xFEO=>3xFE\nFEO: OT-580b\nC: ~\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			path := writeFile(t, tt.file, tt.content)

			// Act
			sel, err := newLoader(t).Load(context.Background(), path, testCatalog())

			// Assert
			require.NoError(t, err)
			assert.Equal(t, pricing.Selection{"FE": "SME:1xC-4xFEO=>3xFE", "FEO": "OT-580b", "C": ""}, sel)
		})
	}
}

func TestLoader_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not an object", `["FE"]`},
		{"number value", `{"FE": 3}`},
		{"bad ticker", `{"F E": ""}`},
		{"malformed json", `{"FE": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "sel.json", tt.content)

			_, err := newLoader(t).Load(context.Background(), path, testCatalog())

			assert.Error(t, err)
		})
	}
}

func TestLoader_CatalogMismatchSuggestsOptions(t *testing.T) {
	// Arrange
	path := writeFile(t, "sel.json", `{
		"FE": "SME:1xC-4xFEO=>4xFE",
		"FEO": "OT-580c",
		"C": "OT-999x",
		"ZZZ": "whatever"
	}`)

	// Act
	_, err := newLoader(t).Load(context.Background(), path, testCatalog())

	// Assert
	var invalid *selection.ValidationError
	require.True(t, errors.As(err, &invalid))
	require.Len(t, invalid.Problems, 3)

	assert.Equal(t, "C", invalid.Problems[0].Material)
	assert.Equal(t, "is not a known planet", invalid.Problems[0].Detail)

	fe := invalid.Problems[1]
	assert.Equal(t, "is not a known recipe", fe.Detail)
	assert.Equal(t, []string{"SME:1xC-4xFEO=>3xFE", "SME:1xC-3xFEO=>2xFE"}, fe.Suggestions)

	feo := invalid.Problems[2]
	assert.Equal(t, "does not yield FEO", feo.Detail)
	assert.Equal(t, []string{"OT-580b"}, feo.Suggestions)
	assert.Contains(t, err.Error(), "did you mean OT-580b?")
}

func TestSuggest(t *testing.T) {
	candidates := []string{"HB1", "HB2", "HBB", "FRM"}

	assert.Equal(t, []string{"HB1", "HB2", "HBB"}, selection.Suggest("HB3", candidates))
	assert.Empty(t, selection.Suggest("XYZ", candidates))
}
