package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
)

func sampleRecords() catalog.Records {
	return catalog.Records{
		Buildings: []catalog.Building{
			{Ticker: "SME", AreaCost: 30},
			{Ticker: "EXT", AreaCost: 25},
		},
		Recipes: []catalog.Recipe{
			{Name: "SME:4xFEO=>3xFE", BuildingTicker: "SME", Outputs: []catalog.MaterialAmount{{Ticker: "FE", Amount: 3}}},
			{Name: "SME:1xXX=>1xGHOST", BuildingTicker: "SME", Outputs: []catalog.MaterialAmount{{Ticker: "GHOST", Amount: 1}}},
		},
		Materials: []catalog.Material{
			{Ticker: "FE", ID: "m-fe"},
			{Ticker: "FEO", ID: "m-feo"},
		},
		Planets: []catalog.Planet{
			{
				NaturalID: "AB-123a",
				Resources: []catalog.PlanetResource{
					{MaterialID: "m-feo", Type: catalog.ResourceMineral, Factor: 0.3},
					{MaterialID: "m-missing", Type: catalog.ResourceGaseous, Factor: 0.1},
				},
				BuildRequirements: []string{"LSE", "MCG", "SEA", "TRU"},
			},
		},
	}
}

func TestNew_LinksBackReferences(t *testing.T) {
	// Act
	c := catalog.New(sampleRecords())

	// Assert
	fe, ok := c.Material("FE")
	require.True(t, ok)
	assert.Equal(t, []string{"SME:4xFEO=>3xFE"}, fe.Recipes)

	feo, ok := c.Material("FEO")
	require.True(t, ok)
	assert.Equal(t, []string{"AB-123a"}, feo.Planets)

	ticker, ok := c.MaterialTickerByID("m-fe")
	require.True(t, ok)
	assert.Equal(t, "FE", ticker)
}

func TestNew_ReportsDanglingReferences(t *testing.T) {
	c := catalog.New(sampleRecords())

	issues := c.Issues()
	require.Len(t, issues, 2)
	for _, issue := range issues {
		assert.Equal(t, catalog.IssueDanglingReference, issue.Kind)
	}
}

func TestNew_DuplicateKeyLastWins(t *testing.T) {
	// Arrange
	records := sampleRecords()
	records.Buildings = append(records.Buildings, catalog.Building{Ticker: "SME", AreaCost: 99})

	// Act
	c := catalog.New(records)

	// Assert
	b, ok := c.Building("SME")
	require.True(t, ok)
	assert.Equal(t, 99, b.AreaCost)

	found := false
	for _, issue := range c.Issues() {
		if issue.Kind == catalog.IssueDuplicateKey && issue.Key == "SME" {
			found = true
		}
	}
	assert.True(t, found, "duplicate building should be reported")
}

func TestCatalog_SortedEnumeration(t *testing.T) {
	c := catalog.New(sampleRecords())

	assert.Equal(t, []string{"EXT", "SME"}, c.BuildingTickers())
	assert.Equal(t, []string{"FE", "FEO"}, c.MaterialTickers())

	records := c.Records()
	assert.Equal(t, "EXT", records.Buildings[0].Ticker)

	// Re-indexing cached records yields the same back-references
	again := catalog.New(records)
	fe, _ := again.Material("FE")
	assert.Equal(t, []string{"SME:4xFEO=>3xFE"}, fe.Recipes)
}

func TestPlanet_SpecificMaterials(t *testing.T) {
	c := catalog.New(sampleRecords())
	planet, ok := c.Planet("AB-123a")
	require.True(t, ok)

	assert.Equal(t, []string{"MCG", "SEA"}, planet.SpecificMaterials())
}

func TestResourceType_Extraction(t *testing.T) {
	ext, err := catalog.ResourceMineral.Extraction(1)
	require.NoError(t, err)
	assert.Equal(t, "EXT:=>", ext.RecipeName)
	assert.InDelta(t, 35.0, ext.OutputPerRun, 1e-12)

	col, err := catalog.ResourceGaseous.Extraction(0.5)
	require.NoError(t, err)
	assert.Equal(t, "COL:=>", col.RecipeName)
	assert.InDelta(t, 7.5, col.OutputPerRun, 1e-12)

	rig, err := catalog.ResourceLiquid.Extraction(1)
	require.NoError(t, err)
	assert.InDelta(t, 14.0, rig.OutputPerRun, 1e-12)

	_, err = catalog.ResourceType("PLASMA").Extraction(1)
	var unknown *catalog.UnknownResourceTypeError
	assert.True(t, errors.As(err, &unknown))
}

func TestMaterialOptions(t *testing.T) {
	records := sampleRecords()
	records.Recipes = append(records.Recipes, catalog.Recipe{
		Name: "REF:2xFEO=>1xFE", BuildingTicker: "REF",
		Outputs: []catalog.MaterialAmount{{Ticker: "FE", Amount: 1}},
	})
	c := catalog.New(records)

	choices := c.MaterialOptions(false)
	require.Len(t, choices, 1)
	assert.Equal(t, "FE", choices[0].Ticker)
	assert.Len(t, choices[0].Recipes, 2)

	assert.Len(t, c.MaterialOptions(true), 2)
}

func TestIsRecipeName(t *testing.T) {
	assert.True(t, catalog.IsRecipeName("EXT:=>"))
	assert.False(t, catalog.IsRecipeName("AB-123a"))
}
