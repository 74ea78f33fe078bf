package pricing_test

import (
	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/housing"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

const halfDayMs = 12 * 60 * 60 * 1000

// worldRecords is a small economy: X is extracted on P1, Y and MCG are made
// from X in a fabricator, and both production buildings are built from X
func worldRecords() catalog.Records {
	return catalog.Records{
		Buildings: []catalog.Building{
			{Ticker: "HB1", AreaCost: 10},
			{Ticker: "EXT", AreaCost: 50, Workforce: catalog.Workforce{100},
				BuildCosts: []catalog.MaterialAmount{{Ticker: "X", Amount: 10}}},
			{Ticker: "FAB", AreaCost: 40, Workforce: catalog.Workforce{50},
				BuildCosts: []catalog.MaterialAmount{{Ticker: "X", Amount: 5}}},
		},
		Recipes: []catalog.Recipe{
			{Name: "EXT:=>", BuildingTicker: "EXT", TimeMs: halfDayMs},
			{Name: "FAB:2xX=>1xY", BuildingTicker: "FAB", TimeMs: halfDayMs / 2,
				Inputs:  []catalog.MaterialAmount{{Ticker: "X", Amount: 2}},
				Outputs: []catalog.MaterialAmount{{Ticker: "Y", Amount: 1}}},
			{Name: "FAB:3xX=>1xY", BuildingTicker: "FAB", TimeMs: halfDayMs / 2,
				Inputs:  []catalog.MaterialAmount{{Ticker: "X", Amount: 3}},
				Outputs: []catalog.MaterialAmount{{Ticker: "Y", Amount: 1}}},
			{Name: "FAB:1xX=>1xMCG", BuildingTicker: "FAB", TimeMs: halfDayMs / 4,
				Inputs:  []catalog.MaterialAmount{{Ticker: "X", Amount: 1}},
				Outputs: []catalog.MaterialAmount{{Ticker: "MCG", Amount: 1}}},
			{Name: "FAB:1xGHOST=>1xY", BuildingTicker: "FAB", TimeMs: halfDayMs,
				Inputs:  []catalog.MaterialAmount{{Ticker: "GHOST", Amount: 1}},
				Outputs: []catalog.MaterialAmount{{Ticker: "Y", Amount: 1}}},
		},
		Materials: []catalog.Material{
			{Ticker: "X", ID: "m-x"},
			{Ticker: "Y", ID: "m-y"},
			{Ticker: "MCG", ID: "m-mcg"},
		},
		Planets: []catalog.Planet{
			{NaturalID: "P1", Resources: []catalog.PlanetResource{
				{MaterialID: "m-x", Type: catalog.ResourceMineral, Factor: 1},
			}, BuildRequirements: []string{"LSE"}},
			{NaturalID: "P2", Resources: []catalog.PlanetResource{
				{MaterialID: "m-x", Type: "PLASMA", Factor: 1},
			}},
		},
	}
}

func worldSelection() pricing.Selection {
	return pricing.Selection{
		"X":   "P1",
		"Y":   "FAB:2xX=>1xY",
		"MCG": "FAB:1xX=>1xMCG",
	}
}

func world() (*catalog.Catalog, map[string]housing.BaseSetup) {
	c := catalog.New(worldRecords())
	setups, _, err := housing.ResolveAll(c)
	if err != nil {
		panic(err)
	}
	return c, setups
}

// barrenWorld adds planet P3, whose X deposit has a zero factor
func barrenWorld() (*catalog.Catalog, map[string]housing.BaseSetup) {
	records := worldRecords()
	records.Planets = append(records.Planets, catalog.Planet{NaturalID: "P3", Resources: []catalog.PlanetResource{
		{MaterialID: "m-x", Type: catalog.ResourceMineral, Factor: 0},
	}})
	c := catalog.New(records)
	setups, _, err := housing.ResolveAll(c)
	if err != nil {
		panic(err)
	}
	return c, setups
}
