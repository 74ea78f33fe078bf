package pricing

import (
	"fmt"
	"math"
)

// SweepResult is the largest change one sweep made to any material's total cost
type SweepResult struct {
	Delta    float64
	Material string
}

// EquilibriumResult summarises a relaxation run
type EquilibriumResult struct {
	Sweeps    int
	Delta     float64
	Material  string
	Converged bool
	Trace     []float64

	// Warning is set when MaxSweeps was reached before Tolerance
	Warning *ConvergenceWarning
}

// Equilibrium relaxes the cost state to a fixed point with Gauss-Seidel sweeps
type Equilibrium struct {
	MaxSweeps int
	Tolerance float64

	// OnSweep, when set, is called after every sweep with its 1-based number
	OnSweep func(n int, r SweepResult)
}

// NewEquilibrium returns an iterator with the default sweep cap and tolerance
func NewEquilibrium() *Equilibrium {
	return &Equilibrium{MaxSweeps: DefaultMaxSweeps, Tolerance: DefaultTolerance}
}

// Run sweeps until the largest change in a sweep drops below Tolerance or
// MaxSweeps is reached. Hitting the cap is not an error; the result carries a
// ConvergenceWarning instead.
func (e *Equilibrium) Run(state *State) (EquilibriumResult, error) {
	var result EquilibriumResult

	for n := 1; n <= e.MaxSweeps; n++ {
		sweep, err := e.sweep(state, n)
		if err != nil {
			return result, err
		}
		if e.OnSweep != nil {
			e.OnSweep(n, sweep)
		}

		result.Sweeps = n
		result.Delta = sweep.Delta
		result.Material = sweep.Material
		result.Trace = append(result.Trace, sweep.Delta)

		if sweep.Delta < e.Tolerance {
			result.Converged = true
			return result, nil
		}
	}

	result.Warning = &ConvergenceWarning{
		Solver:     "equilibrium",
		Iterations: result.Sweeps,
		Achieved:   result.Delta,
		Tolerance:  e.Tolerance,
	}
	return result, nil
}

// Sweep recomputes every material once. Each new cost is stored before the
// next material is visited.
func (e *Equilibrium) Sweep(state *State) (SweepResult, error) {
	return e.sweep(state, 0)
}

func (e *Equilibrium) sweep(state *State, n int) (SweepResult, error) {
	result := SweepResult{}
	for _, ticker := range state.order {
		mc := state.costs[ticker]

		next, err := AccumulateUsingInProgress(state, mc.request(), mc.Cost)
		if err != nil {
			return result, fmt.Errorf("pricing %s: %w", ticker, err)
		}
		if !next.Total.IsFinite() {
			return result, &DivergenceError{Ticker: ticker, Sweep: n}
		}

		delta := math.Abs(next.Total.Sub(mc.Cost.Total).Sum())
		if result.Material == "" || delta > result.Delta {
			result.Delta = delta
			result.Material = ticker
		}
		mc.Cost = next
	}
	return result, nil
}
