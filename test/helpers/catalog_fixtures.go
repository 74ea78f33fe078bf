package helpers

import (
	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

// HalfDayMs is twelve hours in milliseconds
const HalfDayMs = 12 * 60 * 60 * 1000

// WorldRecords is a small economy: X is extracted on P1, Y and MCG are made
// from X in a fabricator, and both production buildings are built from X.
// Y has two recipes, so it is the only material with a real choice.
func WorldRecords() catalog.Records {
	return catalog.Records{
		Buildings: []catalog.Building{
			{Ticker: "HB1", Name: "habitation", AreaCost: 10},
			{Ticker: "EXT", Name: "extractor", AreaCost: 50, Workforce: catalog.Workforce{100},
				BuildCosts: []catalog.MaterialAmount{{Ticker: "X", Amount: 10}}},
			{Ticker: "FAB", Name: "fabricator", AreaCost: 40, Workforce: catalog.Workforce{50},
				BuildCosts: []catalog.MaterialAmount{{Ticker: "X", Amount: 5}}},
		},
		Recipes: []catalog.Recipe{
			{Name: "EXT:=>", BuildingTicker: "EXT", TimeMs: HalfDayMs},
			{Name: "FAB:2xX=>1xY", BuildingTicker: "FAB", TimeMs: HalfDayMs / 2,
				Inputs:  []catalog.MaterialAmount{{Ticker: "X", Amount: 2}},
				Outputs: []catalog.MaterialAmount{{Ticker: "Y", Amount: 1}}},
			{Name: "FAB:3xX=>1xY", BuildingTicker: "FAB", TimeMs: HalfDayMs / 2,
				Inputs:  []catalog.MaterialAmount{{Ticker: "X", Amount: 3}},
				Outputs: []catalog.MaterialAmount{{Ticker: "Y", Amount: 1}}},
			{Name: "FAB:1xX=>1xMCG", BuildingTicker: "FAB", TimeMs: HalfDayMs / 4,
				Inputs:  []catalog.MaterialAmount{{Ticker: "X", Amount: 1}},
				Outputs: []catalog.MaterialAmount{{Ticker: "MCG", Amount: 1}}},
		},
		Materials: []catalog.Material{
			{Ticker: "X", ID: "m-x", Name: "ex"},
			{Ticker: "Y", ID: "m-y", Name: "why"},
			{Ticker: "MCG", ID: "m-mcg", Name: "mineral construction granulate"},
		},
		Planets: []catalog.Planet{
			{NaturalID: "P1", Name: "Prime", Resources: []catalog.PlanetResource{
				{MaterialID: "m-x", Type: catalog.ResourceMineral, Factor: 1},
			}},
		},
	}
}

// WorldSelection picks a source for every material of WorldRecords
func WorldSelection() pricing.Selection {
	return pricing.Selection{
		"X":   "P1",
		"Y":   "FAB:2xX=>1xY",
		"MCG": "FAB:1xX=>1xMCG",
	}
}

// WorldCatalog indexes WorldRecords
func WorldCatalog() *catalog.Catalog {
	return catalog.New(WorldRecords())
}
