package steps

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

// fixedTotals prices materials from a fixed table
type fixedTotals map[string]labor.Vector

func (f fixedTotals) Total(ticker string) (labor.Vector, error) {
	v, ok := f[ticker]
	if !ok {
		return labor.Vector{}, &pricing.UnpricedMaterialError{Ticker: ticker}
	}
	return v, nil
}

type wageContext struct {
	costs   fixedTotals
	baskets pricing.Baskets
	wages   pricing.Wages
	err     error
}

func (wc *wageContext) reset() {
	wc.costs = fixedTotals{}
	wc.baskets = pricing.Baskets{}
	wc.wages = pricing.Wages{}
	wc.err = nil
}

// Given steps

func (wc *wageContext) costsDaysOfLabor(ticker string, days int, tier string) error {
	roles := map[string]labor.Role{
		"pioneer": labor.Pioneer, "settler": labor.Settler, "technician": labor.Technician,
		"engineer": labor.Engineer, "scientist": labor.Scientist,
	}
	role, ok := roles[tier]
	if !ok {
		return fmt.Errorf("unknown tier %q", tier)
	}
	var v labor.Vector
	v[role] = float64(days) * pricing.DayMs
	wc.costs[ticker] = v
	return nil
}

func (wc *wageContext) settlersConsume(amount float64, ticker string) error {
	wc.baskets[labor.Settler] = append(wc.baskets[labor.Settler], catalog.MaterialAmount{Ticker: ticker, Amount: amount})
	return nil
}

// When steps

func (wc *wageContext) theWagesAreSolved() error {
	wc.wages, wc.err = pricing.SolveWages(wc.costs, wc.baskets, pricing.DefaultWageOptions())
	return nil
}

// Then steps

func (wc *wageContext) theWageSolverConverges() error {
	if wc.err != nil {
		return fmt.Errorf("wage solve failed: %w", wc.err)
	}
	if !wc.wages.Converged {
		return fmt.Errorf("wage solve did not converge after %d iterations", wc.wages.Iterations)
	}
	return nil
}

func (wc *wageContext) theSettlerRateIsTimesThePioneerRate(ratio float64) error {
	got := wc.wages.Rates[labor.Settler] / wc.wages.Rates[labor.Pioneer]
	if math.Abs(got-ratio) > 1e-12 {
		return fmt.Errorf("expected settler/pioneer ratio %g, got %g", ratio, got)
	}
	return nil
}

func (wc *wageContext) theTechnicianRateIsZero() error {
	if wc.wages.Rates[labor.Technician] != 0 {
		return fmt.Errorf("expected technician rate 0, got %g", wc.wages.Rates[labor.Technician])
	}
	return nil
}

func (wc *wageContext) theWageSolveFailsFor(role string) error {
	var nonContractive *pricing.NonContractiveError
	if !errors.As(wc.err, &nonContractive) {
		return fmt.Errorf("expected a non-contractive wage equation, got %v", wc.err)
	}
	if nonContractive.Role != role {
		return fmt.Errorf("expected failure for %s, got %s", role, nonContractive.Role)
	}
	return nil
}

func InitializeWageScenario(ctx *godog.ScenarioContext) {
	wc := &wageContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		wc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^"([^"]*)" costs (\d+) (pioneer|settler|technician|engineer|scientist)-days of labor$`, wc.costsDaysOfLabor)
	ctx.Step(`^settlers consume ([0-9.]+) "([^"]*)" per worker-day$`, wc.settlersConsume)

	// When steps
	ctx.Step(`^the wages are solved$`, wc.theWagesAreSolved)

	// Then steps
	ctx.Step(`^the wage solver converges$`, wc.theWageSolverConverges)
	ctx.Step(`^the settler rate is ([0-9.]+) times the pioneer rate$`, wc.theSettlerRateIsTimesThePioneerRate)
	ctx.Step(`^the technician rate is 0$`, wc.theTechnicianRateIsZero)
	ctx.Step(`^the wage solve fails for "([^"]*)"$`, wc.theWageSolveFailsFor)
}
