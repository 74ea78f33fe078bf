package pricing_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/housing"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

func TestResolveSources_RecipeAndExtraction(t *testing.T) {
	// Arrange
	c, setups := world()

	// Act
	state, issues, err := pricing.ResolveSources(c, setups, worldSelection())

	// Assert
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, []string{"MCG", "X", "Y"}, state.Tickers())

	x, ok := state.Get("X")
	require.True(t, ok)
	assert.Equal(t, pricing.SourceExtraction, x.Source.Kind)
	assert.Equal(t, "P1", x.Source.Name())
	assert.InDelta(t, 35.0, x.Source.OutputPerRun, 1e-12)
	assert.Empty(t, x.Source.PlanetMaterials)
	assert.Equal(t, 8, x.Source.Setup.BuildingCount)
	assert.InDelta(t, 100.0*halfDayMs/35, x.Cost.Base[0], 1e-6)
	assert.Equal(t, x.Cost.Base, x.Cost.Total)

	y, _ := state.Get("Y")
	assert.Equal(t, pricing.SourceRecipe, y.Source.Kind)
	assert.Equal(t, []string{"MCG"}, y.Source.PlanetMaterials)
	assert.InDelta(t, 50.0*halfDayMs/2, y.Cost.Base[0], 1e-6)
}

func TestResolveSources_ReportsIssues(t *testing.T) {
	c, setups := world()
	selection := worldSelection()
	delete(selection, "MCG")
	selection["ZZZ"] = ""

	state, issues, err := pricing.ResolveSources(c, setups, selection)

	require.NoError(t, err)
	assert.Equal(t, 2, state.Len())
	require.Len(t, issues, 2)
	assert.Equal(t, "MCG", issues[0].Material)
	assert.Equal(t, "ZZZ", issues[1].Material)
}

func TestResolveSources_EmptySelectionSkipsMaterial(t *testing.T) {
	c, setups := world()
	selection := worldSelection()
	selection["Y"] = ""

	state, issues, err := pricing.ResolveSources(c, setups, selection)

	require.NoError(t, err)
	assert.Empty(t, issues)
	_, ok := state.Get("Y")
	assert.False(t, ok)
}

func TestResolveSources_Errors(t *testing.T) {
	tests := []struct {
		name   string
		ticker string
		choice string
		check  func(t *testing.T, err error)
	}{
		{
			name: "unknown recipe", ticker: "Y", choice: "FAB:9xX=>1xY",
			check: func(t *testing.T, err error) {
				var target *pricing.UnknownSourceError
				assert.True(t, errors.As(err, &target))
			},
		},
		{
			name: "unknown planet", ticker: "X", choice: "P9",
			check: func(t *testing.T, err error) {
				var target *pricing.UnknownSourceError
				assert.True(t, errors.As(err, &target))
			},
		},
		{
			name: "recipe does not produce material", ticker: "MCG", choice: "FAB:2xX=>1xY",
			check: func(t *testing.T, err error) {
				var target *pricing.NotProducedError
				assert.True(t, errors.As(err, &target))
			},
		},
		{
			name: "planet does not yield material", ticker: "Y", choice: "P1",
			check: func(t *testing.T, err error) {
				var target *pricing.NotProducedError
				assert.True(t, errors.As(err, &target))
			},
		},
		{
			name: "unknown resource type", ticker: "X", choice: "P2",
			check: func(t *testing.T, err error) {
				var target *catalog.UnknownResourceTypeError
				assert.True(t, errors.As(err, &target))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, setups := world()
			selection := worldSelection()
			selection[tt.ticker] = tt.choice

			_, _, err := pricing.ResolveSources(c, setups, selection)

			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestResolveSources_BuildingWithoutWorkforce(t *testing.T) {
	records := worldRecords()
	records.Buildings[2].Workforce = catalog.Workforce{}
	c := catalog.New(records)
	setups, skipped, err := housing.ResolveAll(c)
	require.NoError(t, err)
	require.Equal(t, []string{"FAB"}, skipped)

	_, _, err = pricing.ResolveSources(c, setups, worldSelection())

	assert.ErrorIs(t, err, housing.ErrNoWorkforce)
}

func TestResolveSources_ZeroYieldPlanet(t *testing.T) {
	c, setups := barrenWorld()
	selection := worldSelection()
	selection["X"] = "P3"

	_, _, err := pricing.ResolveSources(c, setups, selection)

	var zero *pricing.ZeroYieldError
	require.ErrorAs(t, err, &zero)
	assert.Equal(t, "X", zero.Material)
	assert.Equal(t, "P3", zero.Planet)
}
