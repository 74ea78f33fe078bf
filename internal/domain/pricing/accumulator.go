package pricing

import (
	"fmt"
	"math"

	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/housing"
	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
)

// Request describes one production run to be costed per unit of output
type Request struct {
	// Ticker is the material being priced. Empty for synthetic rows that have
	// no cost state of their own.
	Ticker string

	OutputPerRun    float64
	TimeMs          int64
	Inputs          []catalog.MaterialAmount
	Building        *catalog.Building
	PlanetMaterials []string
	Setup           housing.BaseSetup
	Base            labor.Vector
}

type stage int

const (
	stageInput stage = iota
	stageRepair
	stageProfit
)

// costSource resolves the total cost of a material while a request is being
// accumulated. set publishes the running value of the stage in progress.
type costSource interface {
	totalOf(ticker string) (labor.Vector, error)
	set(s stage, partial labor.Vector)
}

// priorState reads every material, including the one being priced, from the
// stored state
type priorState struct {
	state *State
}

func (p priorState) totalOf(ticker string) (labor.Vector, error) {
	return p.state.Total(ticker)
}

func (priorState) set(stage, labor.Vector) {}

// inProgress reads other materials from the stored state, and the material
// being priced from the accumulation itself: completed stages of this call,
// the running sum of the current stage, and stored values for stages not yet run
type inProgress struct {
	state   *State
	self    string
	current CostState
}

func (p *inProgress) totalOf(ticker string) (labor.Vector, error) {
	if ticker == p.self {
		return p.current.sum(), nil
	}
	return p.state.Total(ticker)
}

func (p *inProgress) set(s stage, partial labor.Vector) {
	switch s {
	case stageInput:
		p.current.Input = partial
	case stageRepair:
		p.current.Repair = partial
	case stageProfit:
		p.current.Profit = partial
	}
}

// AccumulateUsing costs a request against the stored state only. Used for rows
// that are not themselves part of the state.
func AccumulateUsing(state *State, req Request) (CostState, error) {
	return accumulate(req, priorState{state: state})
}

// AccumulateUsingInProgress costs a material against the stored state, resolving
// the material's own cost from the accumulation in progress. prior is the
// material's cost before this call.
func AccumulateUsingInProgress(state *State, req Request, prior CostState) (CostState, error) {
	prior.Base = req.Base
	return accumulate(req, &inProgress{state: state, self: req.Ticker, current: prior})
}

func accumulate(req Request, src costSource) (CostState, error) {
	cs := CostState{Base: req.Base}
	var err error

	if cs.Input, err = inputCost(req, src); err != nil {
		return CostState{}, fmt.Errorf("input cost: %w", err)
	}
	if cs.Repair, err = repairCost(req, src); err != nil {
		return CostState{}, fmt.Errorf("repair cost: %w", err)
	}
	if cs.Profit, err = desiredProfit(req, src); err != nil {
		return CostState{}, fmt.Errorf("desired profit: %w", err)
	}

	cs.Total = cs.sum()
	return cs, nil
}

// term accumulates weighted material costs for one stage and publishes the
// running sum after every addition
type term struct {
	src   costSource
	stage stage
	acc   labor.Vector
}

func newTerm(src costSource, s stage) *term {
	src.set(s, labor.Vector{})
	return &term{src: src, stage: s}
}

func (t *term) add(ticker string, weight float64) error {
	total, err := t.src.totalOf(ticker)
	if err != nil {
		return err
	}
	t.acc = t.acc.Add(total.Scale(weight))
	t.src.set(t.stage, t.acc)
	return nil
}

func inputCost(req Request, src costSource) (labor.Vector, error) {
	t := newTerm(src, stageInput)
	for _, in := range req.Inputs {
		if err := t.add(in.Ticker, in.Amount/req.OutputPerRun); err != nil {
			return labor.Vector{}, err
		}
	}
	return t.acc, nil
}

// repairCost spreads one repair of the producing building over the runs of a repair period
func repairCost(req Request, src costSource) (labor.Vector, error) {
	perRun := float64(req.TimeMs) / RepairPeriodMs / req.OutputPerRun

	t := newTerm(src, stageRepair)
	for _, mat := range req.Building.BuildCosts {
		qty := math.Ceil(repairMaterialFraction * mat.Amount)
		if err := t.add(mat.Ticker, perRun*qty); err != nil {
			return labor.Vector{}, err
		}
	}
	for _, ticker := range req.PlanetMaterials {
		_, qty, err := PlanetMaterialQuantity(ticker, req.Building.AreaCost)
		if err != nil {
			return labor.Vector{}, err
		}
		if err := t.add(ticker, perRun*qty); err != nil {
			return labor.Vector{}, err
		}
	}
	return t.acc, nil
}

// desiredProfit spreads the build cost of a whole base setup over the output
// the setup produces during the return-on-investment period
func desiredProfit(req Request, src costSource) (labor.Vector, error) {
	t := newTerm(src, stageProfit)
	if req.Setup.IsEmpty() {
		return t.acc, nil
	}

	perRun := float64(req.TimeMs) / ROIPeriodMs / (req.OutputPerRun * float64(req.Setup.BuildingCount))

	for _, unit := range req.Setup.Units {
		count := float64(unit.Count)
		for _, mat := range unit.BuildCosts {
			if err := t.add(mat.Ticker, perRun*mat.Amount*count); err != nil {
				return labor.Vector{}, err
			}
		}
		for _, ticker := range req.PlanetMaterials {
			qty, _, err := PlanetMaterialQuantity(ticker, unit.AreaCost)
			if err != nil {
				return labor.Vector{}, err
			}
			if err := t.add(ticker, perRun*qty*count); err != nil {
				return labor.Vector{}, err
			}
		}
	}
	return t.acc, nil
}
