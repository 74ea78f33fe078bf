package pricing

import (
	"sort"

	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/housing"
	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
)

// CostState is the labor cost of one unit of a material split by where it comes from
type CostState struct {
	Base   labor.Vector
	Input  labor.Vector
	Repair labor.Vector
	Profit labor.Vector
	Total  labor.Vector
}

// sum adds the four components; it is what Total must always equal
func (c CostState) sum() labor.Vector {
	return c.Base.Add(c.Input).Add(c.Repair).Add(c.Profit)
}

// SourceKind distinguishes recipe production from natural extraction
type SourceKind string

const (
	SourceRecipe     SourceKind = "recipe"
	SourceExtraction SourceKind = "extraction"
)

// ResolvedSource is everything the accumulator needs to know about how a
// material is produced
type ResolvedSource struct {
	Kind            SourceKind
	Recipe          *catalog.Recipe
	Building        *catalog.Building
	OutputPerRun    float64
	PlanetMaterials []string

	// PlanetID is set for extraction sources
	PlanetID string

	Setup housing.BaseSetup
}

// Name returns the selection value this source was resolved from
func (s ResolvedSource) Name() string {
	if s.Kind == SourceExtraction {
		return s.PlanetID
	}
	return s.Recipe.Name
}

// MaterialCost pairs a material with its source and current cost
type MaterialCost struct {
	Ticker string
	Source ResolvedSource
	Cost   CostState
}

// request builds the accumulator request for this material
func (m *MaterialCost) request() Request {
	return Request{
		Ticker:          m.Ticker,
		OutputPerRun:    m.Source.OutputPerRun,
		TimeMs:          m.Source.Recipe.TimeMs,
		Inputs:          m.Source.Recipe.Inputs,
		Building:        m.Source.Building,
		PlanetMaterials: m.Source.PlanetMaterials,
		Setup:           m.Source.Setup,
		Base:            m.Cost.Base,
	}
}

// State holds the cost of every priced material. Materials are visited in
// ascending ticker order so sweeps are reproducible.
type State struct {
	order []string
	costs map[string]*MaterialCost
}

// NewState indexes material costs by ticker. A later entry replaces an earlier
// one with the same ticker.
func NewState(costs []MaterialCost) *State {
	s := &State{costs: make(map[string]*MaterialCost, len(costs))}
	for i := range costs {
		mc := costs[i]
		if _, exists := s.costs[mc.Ticker]; !exists {
			s.order = append(s.order, mc.Ticker)
		}
		s.costs[mc.Ticker] = &mc
	}
	sort.Strings(s.order)
	return s
}

// Len returns the number of priced materials
func (s *State) Len() int {
	return len(s.order)
}

// Tickers returns priced material tickers in sweep order
func (s *State) Tickers() []string {
	return append([]string(nil), s.order...)
}

// Get returns the cost record of a material
func (s *State) Get(ticker string) (*MaterialCost, bool) {
	mc, ok := s.costs[ticker]
	return mc, ok
}

// Total returns the current total cost of one unit of a material
func (s *State) Total(ticker string) (labor.Vector, error) {
	mc, ok := s.costs[ticker]
	if !ok {
		return labor.Vector{}, &UnpricedMaterialError{Ticker: ticker}
	}
	return mc.Cost.Total, nil
}

// Costs returns a copy of every record in sweep order
func (s *State) Costs() []MaterialCost {
	out := make([]MaterialCost, 0, len(s.order))
	for _, t := range s.order {
		out = append(out, *s.costs[t])
	}
	return out
}

// baseCost is the workforce time spent per unit of output
func baseCost(building *catalog.Building, timeMs int64, output float64) labor.Vector {
	return building.Workforce.Vector().Scale(float64(timeMs) / output)
}
