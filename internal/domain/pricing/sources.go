package pricing

import (
	"fmt"
	"math"
	"sort"

	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/housing"
)

// Selection maps a material ticker to the recipe name or planet natural id it
// is sourced from. An empty value leaves the material unpriced.
type Selection map[string]string

// SelectionIssue is a non-fatal problem found while resolving a selection
type SelectionIssue struct {
	Material string
	Detail   string
}

func (i SelectionIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Material, i.Detail)
}

// ResolveSources turns a selection into initial cost states. Every selected
// material gets its source resolved and its base cost computed; input, repair
// and profit start at zero. Materials missing from the selection are left
// unpriced and reported as issues.
func ResolveSources(c *catalog.Catalog, setups map[string]housing.BaseSetup, selection Selection) (*State, []SelectionIssue, error) {
	var issues []SelectionIssue
	costs := make([]MaterialCost, 0, len(selection))

	for _, ticker := range c.MaterialTickers() {
		choice, ok := selection[ticker]
		if !ok {
			issues = append(issues, SelectionIssue{Material: ticker, Detail: "not present in selection"})
			continue
		}
		if choice == "" {
			continue
		}

		source, err := resolveSource(c, setups, ticker, choice)
		if err != nil {
			return nil, issues, err
		}

		costs = append(costs, MaterialCost{
			Ticker: ticker,
			Source: source,
			Cost: CostState{
				Base: baseCost(source.Building, source.Recipe.TimeMs, source.OutputPerRun),
			},
		})
	}

	extra := make([]string, 0)
	for ticker := range selection {
		if _, ok := c.Material(ticker); !ok {
			extra = append(extra, ticker)
		}
	}
	sort.Strings(extra)
	for _, ticker := range extra {
		issues = append(issues, SelectionIssue{Material: ticker, Detail: "not a catalog material"})
	}

	for i := range costs {
		costs[i].Cost.Total = costs[i].Cost.sum()
	}
	return NewState(costs), issues, nil
}

func resolveSource(c *catalog.Catalog, setups map[string]housing.BaseSetup, ticker, choice string) (ResolvedSource, error) {
	var source ResolvedSource

	if catalog.IsRecipeName(choice) {
		recipe, ok := c.Recipe(choice)
		if !ok {
			return source, &UnknownSourceError{Material: ticker, Source: choice}
		}
		output := recipe.OutputAmount(ticker)
		if output <= 0 {
			return source, &NotProducedError{Material: ticker, Source: choice}
		}
		source = ResolvedSource{
			Kind:            SourceRecipe,
			Recipe:          recipe,
			OutputPerRun:    output,
			PlanetMaterials: recipePlanetMaterials,
		}
	} else {
		planet, ok := c.Planet(choice)
		if !ok {
			return source, &UnknownSourceError{Material: ticker, Source: choice}
		}
		resource, found := findResource(c, planet, ticker)
		if !found {
			return source, &NotProducedError{Material: ticker, Source: choice}
		}
		extraction, err := resource.Type.Extraction(resource.Factor)
		if err != nil {
			return source, fmt.Errorf("extraction of %s on %s: %w", ticker, choice, err)
		}
		if !(extraction.OutputPerRun > 0) || math.IsInf(extraction.OutputPerRun, 0) {
			return source, &ZeroYieldError{Material: ticker, Planet: choice, Output: extraction.OutputPerRun}
		}
		recipe, ok := c.Recipe(extraction.RecipeName)
		if !ok {
			return source, &UnknownSourceError{Material: ticker, Source: extraction.RecipeName}
		}
		source = ResolvedSource{
			Kind:            SourceExtraction,
			Recipe:          recipe,
			OutputPerRun:    extraction.OutputPerRun,
			PlanetMaterials: planet.SpecificMaterials(),
			PlanetID:        planet.NaturalID,
		}
	}

	building, ok := c.Building(source.Recipe.BuildingTicker)
	if !ok {
		return source, &housing.UnknownBuildingError{Ticker: source.Recipe.BuildingTicker}
	}
	source.Building = building

	setup, err := setupFor(setups, building.Ticker)
	if err != nil {
		return source, fmt.Errorf("source of %s: %w", ticker, err)
	}
	source.Setup = setup
	return source, nil
}

// setupFor returns the precomputed base setup of a building. Buildings that
// were skipped for having no workforce cannot produce anything.
func setupFor(setups map[string]housing.BaseSetup, ticker string) (housing.BaseSetup, error) {
	setup, ok := setups[ticker]
	if !ok {
		return setup, fmt.Errorf("base setup for %s: %w", ticker, housing.ErrNoWorkforce)
	}
	return setup, nil
}

func findResource(c *catalog.Catalog, planet *catalog.Planet, ticker string) (catalog.PlanetResource, bool) {
	for _, r := range planet.Resources {
		if t, ok := c.MaterialTickerByID(r.MaterialID); ok && t == ticker {
			return r, true
		}
	}
	return catalog.PlanetResource{}, false
}
