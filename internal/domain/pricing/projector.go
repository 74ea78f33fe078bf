package pricing

import (
	"math"

	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/housing"
	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
)

// Price is a cost state converted to scalar currency
type Price struct {
	Total  float64
	Repair float64
	Input  float64
	Profit float64
	Base   float64
}

// PriceOf converts every component of a cost state with the given wage rates
func PriceOf(c CostState, rates labor.Vector) Price {
	return Price{
		Total:  c.Total.Dot(rates),
		Repair: c.Repair.Dot(rates),
		Input:  c.Input.Dot(rates),
		Profit: c.Profit.Dot(rates),
		Base:   c.Base.Dot(rates),
	}
}

// MaterialPrice is the price of one unit of a priced material
type MaterialPrice struct {
	Ticker string
	Source string
	Price
}

// RecipePrice is the price of one unit of output of a recipe
type RecipePrice struct {
	Recipe string
	Price
}

// ResourcePrice is the price of one unit of a natural resource extracted on a planet
type ResourcePrice struct {
	PlanetID     string
	Material     string
	OutputPerRun float64
	Price
}

// SkippedRow is a recipe or resource that could not be priced
type SkippedRow struct {
	Kind   string
	Key    string
	Reason string
}

// Projection holds every scalar price of a run
type Projection struct {
	Rates     labor.Vector
	Materials []MaterialPrice
	Recipes   []RecipePrice
	Resources []ResourcePrice
	Skipped   []SkippedRow
}

// Projector converts a converged state into prices
type Projector struct {
	Catalog *catalog.Catalog
	Setups  map[string]housing.BaseSetup
	State   *State
	Rates   labor.Vector
}

// Project prices every material, every unselected recipe and every planet
// resource. Recipes and resources that depend on unpriced materials or unknown
// data are skipped and listed in the projection.
func (p *Projector) Project() Projection {
	proj := Projection{Rates: p.Rates}
	proj.Materials = p.Materials()
	proj.Recipes, proj.Skipped = p.Recipes()
	resources, skipped := p.Resources()
	proj.Resources = resources
	proj.Skipped = append(proj.Skipped, skipped...)
	return proj
}

// Materials prices the converged cost state
func (p *Projector) Materials() []MaterialPrice {
	prices := make([]MaterialPrice, 0, p.State.Len())
	for _, mc := range p.State.Costs() {
		prices = append(prices, MaterialPrice{
			Ticker: mc.Ticker,
			Source: mc.Source.Name(),
			Price:  PriceOf(mc.Cost, p.Rates),
		})
	}
	return prices
}

// Recipes prices one unit of output of each recipe that produces something
// and is not the selected source of a material
func (p *Projector) Recipes() ([]RecipePrice, []SkippedRow) {
	selected := make(map[string]bool)
	for _, mc := range p.State.Costs() {
		if mc.Source.Kind == SourceRecipe {
			selected[mc.Source.Recipe.Name] = true
		}
	}

	var prices []RecipePrice
	var skipped []SkippedRow
	for _, name := range p.Catalog.RecipeNames() {
		recipe, _ := p.Catalog.Recipe(name)
		if len(recipe.Outputs) == 0 || selected[name] {
			continue
		}

		cost, err := p.cost(recipe, 1, recipePlanetMaterials)
		if err == nil && !cost.Total.IsFinite() {
			err = &NonFiniteCostError{Key: name}
		}
		if err != nil {
			skipped = append(skipped, SkippedRow{Kind: "recipe", Key: name, Reason: err.Error()})
			continue
		}
		prices = append(prices, RecipePrice{Recipe: name, Price: PriceOf(cost, p.Rates)})
	}
	return prices, skipped
}

// Resources prices every natural resource of every planet as if it were
// extracted there
func (p *Projector) Resources() ([]ResourcePrice, []SkippedRow) {
	var prices []ResourcePrice
	var skipped []SkippedRow
	for _, id := range p.Catalog.PlanetIDs() {
		planet, _ := p.Catalog.Planet(id)
		planetMaterials := planet.SpecificMaterials()

		for _, res := range planet.Resources {
			ticker, ok := p.Catalog.MaterialTickerByID(res.MaterialID)
			if !ok {
				continue
			}
			key := id + "/" + ticker

			extraction, err := res.Type.Extraction(res.Factor)
			if err != nil {
				skipped = append(skipped, SkippedRow{Kind: "resource", Key: key, Reason: err.Error()})
				continue
			}
			if !(extraction.OutputPerRun > 0) || math.IsInf(extraction.OutputPerRun, 0) {
				err := &ZeroYieldError{Material: ticker, Planet: id, Output: extraction.OutputPerRun}
				skipped = append(skipped, SkippedRow{Kind: "resource", Key: key, Reason: err.Error()})
				continue
			}
			recipe, ok := p.Catalog.Recipe(extraction.RecipeName)
			if !ok {
				err := &UnknownSourceError{Material: ticker, Source: extraction.RecipeName}
				skipped = append(skipped, SkippedRow{Kind: "resource", Key: key, Reason: err.Error()})
				continue
			}

			cost, err := p.cost(recipe, extraction.OutputPerRun, planetMaterials)
			if err == nil && !cost.Total.IsFinite() {
				err = &NonFiniteCostError{Key: key}
			}
			if err != nil {
				skipped = append(skipped, SkippedRow{Kind: "resource", Key: key, Reason: err.Error()})
				continue
			}
			prices = append(prices, ResourcePrice{
				PlanetID:     id,
				Material:     ticker,
				OutputPerRun: extraction.OutputPerRun,
				Price:        PriceOf(cost, p.Rates),
			})
		}
	}
	return prices, skipped
}

// cost accumulates a synthetic row against the stored state
func (p *Projector) cost(recipe *catalog.Recipe, output float64, planetMaterials []string) (CostState, error) {
	building, ok := p.Catalog.Building(recipe.BuildingTicker)
	if !ok {
		return CostState{}, &housing.UnknownBuildingError{Ticker: recipe.BuildingTicker}
	}
	setup, err := setupFor(p.Setups, building.Ticker)
	if err != nil {
		return CostState{}, err
	}

	return AccumulateUsing(p.State, Request{
		OutputPerRun:    output,
		TimeMs:          recipe.TimeMs,
		Inputs:          recipe.Inputs,
		Building:        building,
		PlanetMaterials: planetMaterials,
		Setup:           setup,
		Base:            baseCost(building, recipe.TimeMs, output),
	})
}
