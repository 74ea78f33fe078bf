package catalog

import (
	"fmt"
	"sort"
)

// IssueKind classifies a non-fatal problem found while indexing a catalog
type IssueKind string

const (
	// IssueDuplicateKey means two records share a key; the later record wins
	IssueDuplicateKey IssueKind = "DUPLICATE_KEY"

	// IssueDanglingReference means a cross-reference points at a missing record
	// and was omitted
	IssueDanglingReference IssueKind = "DANGLING_REFERENCE"
)

// Issue is a reportable, non-fatal catalog problem
type Issue struct {
	Kind   IssueKind
	Table  string
	Key    string
	Detail string
}

func (i Issue) String() string {
	if i.Detail == "" {
		return fmt.Sprintf("%s %s[%s]", i.Kind, i.Table, i.Key)
	}
	return fmt.Sprintf("%s %s[%s]: %s", i.Kind, i.Table, i.Key, i.Detail)
}

// Catalog is an immutable, indexed snapshot of buildings, recipes, materials
// and planets. All enumeration methods return keys in ascending order so that
// every pass over the catalog is reproducible.
type Catalog struct {
	buildings     map[string]*Building
	recipes       map[string]*Recipe
	materials     map[string]*Material
	materialsByID map[string]string
	planets       map[string]*Planet
	issues        []Issue
}

// New indexes raw records by their keys and fills the material back-references
// (producing recipes, yielding planets). Problems are collected as issues, never
// returned as errors.
func New(records Records) *Catalog {
	c := &Catalog{
		buildings:     make(map[string]*Building, len(records.Buildings)),
		recipes:       make(map[string]*Recipe, len(records.Recipes)),
		materials:     make(map[string]*Material, len(records.Materials)),
		materialsByID: make(map[string]string, len(records.Materials)),
		planets:       make(map[string]*Planet, len(records.Planets)),
	}

	for i := range records.Buildings {
		b := records.Buildings[i]
		if _, exists := c.buildings[b.Ticker]; exists {
			c.addIssue(IssueDuplicateKey, "buildings", b.Ticker, "")
		}
		c.buildings[b.Ticker] = &b
	}

	for i := range records.Recipes {
		r := records.Recipes[i]
		if _, exists := c.recipes[r.Name]; exists {
			c.addIssue(IssueDuplicateKey, "recipes", r.Name, "")
		}
		c.recipes[r.Name] = &r
	}

	for i := range records.Materials {
		m := records.Materials[i]
		m.Recipes = nil
		m.Planets = nil
		if _, exists := c.materials[m.Ticker]; exists {
			c.addIssue(IssueDuplicateKey, "materials", m.Ticker, "")
		}
		if _, exists := c.materialsByID[m.ID]; exists {
			c.addIssue(IssueDuplicateKey, "materials", m.ID, "duplicate material id")
		}
		c.materials[m.Ticker] = &m
		c.materialsByID[m.ID] = m.Ticker
	}

	for i := range records.Planets {
		p := records.Planets[i]
		if _, exists := c.planets[p.NaturalID]; exists {
			c.addIssue(IssueDuplicateKey, "planets", p.NaturalID, "")
		}
		c.planets[p.NaturalID] = &p
	}

	c.linkRecipes()
	c.linkPlanets()

	return c
}

func (c *Catalog) addIssue(kind IssueKind, table, key, detail string) {
	c.issues = append(c.issues, Issue{Kind: kind, Table: table, Key: key, Detail: detail})
}

func (c *Catalog) linkRecipes() {
	for _, name := range c.RecipeNames() {
		recipe := c.recipes[name]
		for _, out := range recipe.Outputs {
			material, ok := c.materials[out.Ticker]
			if !ok {
				c.addIssue(IssueDanglingReference, "recipes", name,
					fmt.Sprintf("output %s not found in materials", out.Ticker))
				continue
			}
			material.Recipes = append(material.Recipes, name)
		}
	}
}

func (c *Catalog) linkPlanets() {
	for _, id := range c.PlanetIDs() {
		planet := c.planets[id]
		for _, res := range planet.Resources {
			ticker, ok := c.materialsByID[res.MaterialID]
			if !ok {
				c.addIssue(IssueDanglingReference, "planets", id,
					fmt.Sprintf("resource material id %s not found in materials", res.MaterialID))
				continue
			}
			material := c.materials[ticker]
			material.Planets = append(material.Planets, id)
		}
	}
}

// Lookups

func (c *Catalog) Building(ticker string) (*Building, bool) {
	b, ok := c.buildings[ticker]
	return b, ok
}

func (c *Catalog) Recipe(name string) (*Recipe, bool) {
	r, ok := c.recipes[name]
	return r, ok
}

func (c *Catalog) Material(ticker string) (*Material, bool) {
	m, ok := c.materials[ticker]
	return m, ok
}

// MaterialTickerByID resolves a material id (as used by planet resources) to its ticker
func (c *Catalog) MaterialTickerByID(id string) (string, bool) {
	t, ok := c.materialsByID[id]
	return t, ok
}

func (c *Catalog) Planet(naturalID string) (*Planet, bool) {
	p, ok := c.planets[naturalID]
	return p, ok
}

// Issues returns every non-fatal problem found while indexing
func (c *Catalog) Issues() []Issue {
	return c.issues
}

// Sorted enumeration

func (c *Catalog) BuildingTickers() []string { return sortedKeys(c.buildings) }
func (c *Catalog) RecipeNames() []string     { return sortedKeys(c.recipes) }
func (c *Catalog) MaterialTickers() []string { return sortedKeys(c.materials) }
func (c *Catalog) PlanetIDs() []string       { return sortedKeys(c.planets) }

// Counts returns the number of buildings, recipes, materials and planets
func (c *Catalog) Counts() (buildings, recipes, materials, planets int) {
	return len(c.buildings), len(c.recipes), len(c.materials), len(c.planets)
}

// Records returns the indexed records in key order, suitable for caching and
// re-indexing with New
func (c *Catalog) Records() Records {
	var r Records
	for _, k := range c.BuildingTickers() {
		r.Buildings = append(r.Buildings, *c.buildings[k])
	}
	for _, k := range c.RecipeNames() {
		r.Recipes = append(r.Recipes, *c.recipes[k])
	}
	for _, k := range c.MaterialTickers() {
		r.Materials = append(r.Materials, *c.materials[k])
	}
	for _, k := range c.PlanetIDs() {
		r.Planets = append(r.Planets, *c.planets[k])
	}
	return r
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
