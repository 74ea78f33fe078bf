package housing_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/housing"
)

func setupCatalog() *catalog.Catalog {
	hab := []catalog.MaterialAmount{{Ticker: "BSE", Amount: 4}}
	return catalog.New(catalog.Records{
		Buildings: []catalog.Building{
			{Ticker: "HB1", AreaCost: 10, BuildCosts: hab},
			{Ticker: "HBB", AreaCost: 14, BuildCosts: hab},
			{Ticker: "FRM", AreaCost: 30, Workforce: catalog.Workforce{50}},
			{Ticker: "BIG", AreaCost: 495, Workforce: catalog.Workforce{150}},
			{Ticker: "ZRO", AreaCost: 0, Workforce: catalog.Workforce{100}},
			{Ticker: "NWF", AreaCost: 10},
		},
	})
}

func TestResolveBaseSetup_LargestFittingCount(t *testing.T) {
	// Arrange
	c := setupCatalog()

	// Act
	setup, err := housing.ResolveBaseSetup("FRM", c)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 14, setup.BuildingCount)
	assert.Equal(t, 490, setup.Area)
	assert.False(t, setup.Oversized)
	require.Len(t, setup.Units, 2)
	assert.Equal(t, "HB1", setup.Units[0].Ticker)
	assert.Equal(t, 7, setup.Units[0].Count)
	assert.Equal(t, []catalog.MaterialAmount{{Ticker: "BSE", Amount: 4}}, setup.Units[0].BuildCosts)
	assert.Equal(t, "FRM", setup.Units[1].Ticker)
	assert.Equal(t, 14, setup.Units[1].Count)
}

func TestResolveBaseSetup_NextCountExceedsCap(t *testing.T) {
	c := setupCatalog()

	setup, err := housing.ResolveBaseSetup("FRM", c)
	require.NoError(t, err)

	// 15 farms need 8 habitations: 450 + 80 > 500
	b, _ := c.Building("FRM")
	next := b.AreaCost*(setup.BuildingCount+1) + 10*8
	assert.Greater(t, next, housing.AreaCap)
}

func TestResolveBaseSetup_OversizedFloorsAtOne(t *testing.T) {
	setup, err := housing.ResolveBaseSetup("BIG", setupCatalog())

	require.NoError(t, err)
	assert.Equal(t, 1, setup.BuildingCount)
	assert.True(t, setup.Oversized)
	assert.Equal(t, 515, setup.Area)
}

func TestResolveBaseSetup_ZeroAreaBuilding(t *testing.T) {
	setup, err := housing.ResolveBaseSetup("ZRO", setupCatalog())

	require.NoError(t, err)
	assert.Equal(t, 50, setup.BuildingCount)
	assert.Equal(t, 500, setup.Area)
}

func TestResolveBaseSetup_NonProductiveIsEmpty(t *testing.T) {
	setup, err := housing.ResolveBaseSetup("HB1", setupCatalog())

	require.NoError(t, err)
	assert.True(t, setup.IsEmpty())
	assert.Empty(t, setup.Units)
}

func TestResolveBaseSetup_Errors(t *testing.T) {
	c := setupCatalog()

	_, err := housing.ResolveBaseSetup("NOPE", c)
	var unknown *housing.UnknownBuildingError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "NOPE", unknown.Ticker)

	_, err = housing.ResolveBaseSetup("NWF", c)
	assert.ErrorIs(t, err, housing.ErrNoWorkforce)
}

func TestResolveAll(t *testing.T) {
	setups, skipped, err := housing.ResolveAll(setupCatalog())

	require.NoError(t, err)
	assert.Equal(t, []string{"NWF"}, skipped)
	assert.Len(t, setups, 5)
	assert.Equal(t, 14, setups["FRM"].BuildingCount)
	assert.True(t, setups["HBB"].IsEmpty())
}
