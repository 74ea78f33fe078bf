package steps

import (
	"context"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

type equilibriumContext struct {
	costs  []pricing.MaterialCost
	state  *pricing.State
	result pricing.EquilibriumResult
	err    error
}

func (ec *equilibriumContext) reset() {
	ec.costs = nil
	ec.state = nil
	ec.result = pricing.EquilibriumResult{}
	ec.err = nil
}

// Given steps

func (ec *equilibriumContext) materialMadeByConsuming(ticker string, base int, amount int, input string, output int) error {
	building := &catalog.Building{Ticker: "CYC", Workforce: catalog.Workforce{1}}
	recipe := &catalog.Recipe{
		Name:           fmt.Sprintf("CYC:%dx%s=>%dx%s", amount, input, output, ticker),
		BuildingTicker: "CYC",
		TimeMs:         1000,
		Inputs:         []catalog.MaterialAmount{{Ticker: input, Amount: float64(amount)}},
		Outputs:        []catalog.MaterialAmount{{Ticker: ticker, Amount: float64(output)}},
	}
	baseCost := labor.NewVector(float64(base), 0, 0, 0, 0)
	ec.costs = append(ec.costs, pricing.MaterialCost{
		Ticker: ticker,
		Source: pricing.ResolvedSource{
			Kind:         pricing.SourceRecipe,
			Recipe:       recipe,
			Building:     building,
			OutputPerRun: float64(output),
		},
		Cost: pricing.CostState{Base: baseCost, Total: baseCost},
	})
	return nil
}

// When steps

func (ec *equilibriumContext) theEquilibriumRunsWith(maxSweeps int, tolerance float64) error {
	ec.state = pricing.NewState(ec.costs)
	eq := &pricing.Equilibrium{MaxSweeps: maxSweeps, Tolerance: tolerance}
	ec.result, ec.err = eq.Run(ec.state)
	return nil
}

// Then steps

func (ec *equilibriumContext) theEquilibriumConverges() error {
	if ec.err != nil {
		return fmt.Errorf("equilibrium failed: %w", ec.err)
	}
	if !ec.result.Converged {
		return fmt.Errorf("expected convergence, stopped after %d sweeps at delta %g", ec.result.Sweeps, ec.result.Delta)
	}
	return nil
}

func (ec *equilibriumContext) theEquilibriumDoesNotConverge() error {
	if ec.err != nil {
		return fmt.Errorf("equilibrium failed: %w", ec.err)
	}
	if ec.result.Converged {
		return fmt.Errorf("expected the sweep cap to be hit, converged after %d sweeps", ec.result.Sweeps)
	}
	return nil
}

func (ec *equilibriumContext) aConvergenceWarningReportsIterations(iterations int) error {
	if ec.result.Warning == nil {
		return fmt.Errorf("expected a convergence warning")
	}
	if ec.result.Warning.Iterations != iterations {
		return fmt.Errorf("expected warning after %d iterations, got %d", iterations, ec.result.Warning.Iterations)
	}
	return nil
}

func (ec *equilibriumContext) thePioneerCostOfIsWithin(ticker string, expected, tolerance float64) error {
	total, err := ec.state.Total(ticker)
	if err != nil {
		return err
	}
	if math.Abs(total[labor.Pioneer]-expected) > tolerance {
		return fmt.Errorf("expected pioneer cost of %s to be %g, got %g", ticker, expected, total[labor.Pioneer])
	}
	return nil
}

func (ec *equilibriumContext) everyCostEqualsTheSumOfItsComponents() error {
	for _, mc := range ec.state.Costs() {
		sum := mc.Cost.Base.Add(mc.Cost.Input).Add(mc.Cost.Repair).Add(mc.Cost.Profit)
		if diff := sum.MaxAbsDiff(mc.Cost.Total); diff > 1e-9*mc.Cost.Total.Sum() {
			return fmt.Errorf("components of %s differ from total by %g", mc.Ticker, diff)
		}
	}
	return nil
}

func InitializeEquilibriumScenario(ctx *godog.ScenarioContext) {
	ec := &equilibriumContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		ec.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^material "([^"]*)" with base cost (\d+) made by consuming (\d+) "([^"]*)" for (\d+) units$`, ec.materialMadeByConsuming)

	// When steps
	ctx.Step(`^the equilibrium runs with at most (\d+) sweeps and tolerance ([0-9.eE+-]+)$`, ec.theEquilibriumRunsWith)

	// Then steps
	ctx.Step(`^the equilibrium converges$`, ec.theEquilibriumConverges)
	ctx.Step(`^the equilibrium does not converge$`, ec.theEquilibriumDoesNotConverge)
	ctx.Step(`^a convergence warning reports (\d+) iterations$`, ec.aConvergenceWarningReportsIterations)
	ctx.Step(`^the pioneer cost of "([^"]*)" is ([0-9.eE+-]+) within ([0-9.eE+-]+)$`, ec.thePioneerCostOfIsWithin)
	ctx.Step(`^every cost equals the sum of its components$`, ec.everyCostEqualsTheSumOfItsComponents)
}
