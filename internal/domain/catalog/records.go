package catalog

import (
	"strings"

	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
)

// RecipeSeparator separates inputs from outputs in a standard recipe name,
// e.g. "SME:1xC-1xO-4xFEO=>3xFE". Planet natural ids never contain it.
const RecipeSeparator = "=>"

// MaterialAmount is a (material, quantity) pair used by build costs, recipe
// inputs and recipe outputs
type MaterialAmount struct {
	Ticker string
	Amount float64
}

// Workforce is the head-count a building requires, per population role
type Workforce [labor.RoleCount]int

// Total returns the combined head-count across all roles
func (w Workforce) Total() int {
	n := 0
	for _, c := range w {
		n += c
	}
	return n
}

// Scaled multiplies every role's head-count by k
func (w Workforce) Scaled(k int) Workforce {
	for i := range w {
		w[i] *= k
	}
	return w
}

// Vector converts the head-count into a labor vector
func (w Workforce) Vector() labor.Vector {
	var v labor.Vector
	for i, c := range w {
		v[i] = float64(c)
	}
	return v
}

// Building is a structure that can be placed on a base
type Building struct {
	Ticker     string
	Name       string
	AreaCost   int
	Workforce  Workforce
	BuildCosts []MaterialAmount
}

// Recipe is one production run of a building
type Recipe struct {
	Name           string
	BuildingTicker string
	TimeMs         int64
	Inputs         []MaterialAmount
	Outputs        []MaterialAmount
}

// OutputAmount returns how many units of ticker one run produces (0 if none)
func (r *Recipe) OutputAmount(ticker string) float64 {
	for _, out := range r.Outputs {
		if out.Ticker == ticker {
			return out.Amount
		}
	}
	return 0
}

// IsRecipeName reports whether a selection value names a recipe rather than a planet
func IsRecipeName(s string) bool {
	return strings.Contains(s, RecipeSeparator)
}

// Material is a tradeable commodity. Recipes and Planets are back-references
// filled in while the catalog is indexed.
type Material struct {
	Ticker   string
	ID       string
	Name     string
	Category string
	Recipes  []string
	Planets  []string
}

// PlanetResource is a naturally occurring material on a planet
type PlanetResource struct {
	MaterialID string
	Type       ResourceType
	Factor     float64
}

// Planet is a site where buildings can be placed and resources extracted
type Planet struct {
	NaturalID         string
	Name              string
	Resources         []PlanetResource
	BuildRequirements []string
}

// universalBuildMaterials are always available and never priced as planet-specific materials
var universalBuildMaterials = map[string]bool{
	"LSE": true,
	"TRU": true,
	"PSL": true,
	"LDE": true,
	"LTA": true,
}

// SpecificMaterials returns the extra construction materials a building sited on
// this planet needs, excluding the universally available construction materials
func (p *Planet) SpecificMaterials() []string {
	specific := make([]string, 0, len(p.BuildRequirements))
	for _, ticker := range p.BuildRequirements {
		if universalBuildMaterials[ticker] {
			continue
		}
		specific = append(specific, ticker)
	}
	return specific
}

// Records is the raw, un-indexed content of a catalog as fetched or cached
type Records struct {
	Buildings []Building
	Recipes   []Recipe
	Materials []Material
	Planets   []Planet
}
