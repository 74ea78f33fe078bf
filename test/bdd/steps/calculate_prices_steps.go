package steps

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/prun-pricer/internal/adapters/persistence"
	"github.com/andrescamacho/prun-pricer/internal/application/catalog/services"
	"github.com/andrescamacho/prun-pricer/internal/application/pricing/commands"
	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricerun"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
	"github.com/andrescamacho/prun-pricer/test/helpers"
)

type calculatePricesContext struct {
	fetcher   *helpers.MockCatalogFetcher
	settings  commands.SolverSettings
	selection pricing.Selection
	runs      *persistence.GormPriceRunRepository
	response  *commands.CalculatePricesResponse
	err       error
}

func (cc *calculatePricesContext) reset() {
	cc.fetcher = nil
	cc.settings = commands.DefaultSolverSettings()
	cc.selection = nil
	cc.runs = persistence.NewGormPriceRunRepository(helpers.SharedTestDB)
	cc.response = nil
	cc.err = nil
}

// Given steps

func (cc *calculatePricesContext) theCatalogAPIServesTheTestWorld() error {
	cc.fetcher = helpers.NewMockCatalogFetcher(helpers.WorldRecords())
	return nil
}

func (cc *calculatePricesContext) everyTierConsumes(amount float64, ticker string) error {
	for _, role := range labor.Roles {
		cc.settings.Baskets[role] = pricing.Basket{{Ticker: ticker, Amount: amount}}
	}
	return nil
}

func (cc *calculatePricesContext) theStandardWorldSelection() error {
	cc.selection = helpers.WorldSelection()
	return nil
}

func (cc *calculatePricesContext) theStandardWorldSelectionWithout(ticker string) error {
	cc.selection = helpers.WorldSelection()
	delete(cc.selection, ticker)
	return nil
}

// When steps

func (cc *calculatePricesContext) iCalculatePricesAndArchiveTheRun() error {
	if cc.fetcher == nil {
		return fmt.Errorf("no catalog source configured")
	}
	loader := services.NewCatalogLoader(cc.fetcher, helpers.NewMockSnapshotStore(), "test", nil)
	handler := commands.NewCalculatePricesHandler(
		loader,
		helpers.NewMockSelectionLoader(cc.selection),
		helpers.NewMockReportWriter(),
		cc.runs,
		cc.settings,
		nil,
	)

	resp, err := handler.Handle(context.Background(), &commands.CalculatePricesCommand{
		SelectionPath: "material_selections.json",
		OutputDir:     "reports",
		Persist:       true,
	})
	cc.err = err
	if err == nil {
		cc.response = resp.(*commands.CalculatePricesResponse)
	}
	return nil
}

// Then steps

func (cc *calculatePricesContext) theCalculationSucceeds() error {
	if cc.err != nil {
		return fmt.Errorf("expected calculation to succeed, got: %w", cc.err)
	}
	return nil
}

func (cc *calculatePricesContext) theCalculationFails() error {
	if cc.err == nil {
		return fmt.Errorf("expected calculation to fail, but it succeeded")
	}
	return nil
}

func (cc *calculatePricesContext) theErrorMentions(text string) error {
	if cc.err == nil || !strings.Contains(cc.err.Error(), text) {
		return fmt.Errorf("expected error mentioning %q, got %v", text, cc.err)
	}
	return nil
}

func (cc *calculatePricesContext) bothSolversConverge() error {
	summary := cc.response.Summary
	if !summary.Equilibrium.Converged || !summary.Wages.Converged {
		return fmt.Errorf("expected both solvers to converge: equilibrium=%t wages=%t",
			summary.Equilibrium.Converged, summary.Wages.Converged)
	}
	return nil
}

func (cc *calculatePricesContext) materialsArePriced(count int) error {
	if got := len(cc.response.Projection.Materials); got != count {
		return fmt.Errorf("expected %d priced materials, got %d", count, got)
	}
	return nil
}

func (cc *calculatePricesContext) alternativeRecipeIsPriced(count int) error {
	if got := len(cc.response.Projection.Recipes); got != count {
		return fmt.Errorf("expected %d priced recipes, got %d", count, got)
	}
	return nil
}

func (cc *calculatePricesContext) theArchiveHoldsRuns(count int) error {
	runs, err := cc.runs.List(context.Background(), pricerun.DefaultQueryOptions())
	if err != nil {
		return err
	}
	if len(runs) != count {
		return fmt.Errorf("expected %d archived runs, got %d", count, len(runs))
	}
	return nil
}

func (cc *calculatePricesContext) theArchivedPriceOfMatchesTheCalculatedPrice(ticker string) error {
	if cc.response.RunID == nil {
		return fmt.Errorf("run was not archived")
	}
	run, err := cc.runs.FindByID(context.Background(), *cc.response.RunID)
	if err != nil {
		return err
	}
	entry, ok := run.Entry(pricerun.EntryMaterial, ticker)
	if !ok {
		return fmt.Errorf("archived run has no price for %s", ticker)
	}

	for _, m := range cc.response.Projection.Materials {
		if m.Ticker != ticker {
			continue
		}
		if math.Abs(m.Total-entry.Price.Total) > 1e-12*math.Abs(m.Total) || m.Source != entry.Source {
			return fmt.Errorf("archived %s price %v (%s) differs from calculated %v (%s)",
				ticker, entry.Price.Total, entry.Source, m.Total, m.Source)
		}
		return nil
	}
	return fmt.Errorf("calculation did not price %s", ticker)
}

func InitializeCalculatePricesScenario(ctx *godog.ScenarioContext) {
	cc := &calculatePricesContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cc.reset()
		return ctx, helpers.TruncateAllTables()
	})

	// Given steps
	ctx.Step(`^the catalog API serves the test world$`, cc.theCatalogAPIServesTheTestWorld)
	ctx.Step(`^every tier consumes ([0-9.]+) "([^"]*)" per worker-day$`, cc.everyTierConsumes)
	ctx.Step(`^the standard world selection$`, cc.theStandardWorldSelection)
	ctx.Step(`^the standard world selection without "([^"]*)"$`, cc.theStandardWorldSelectionWithout)

	// When steps
	ctx.Step(`^I calculate prices and archive the run$`, cc.iCalculatePricesAndArchiveTheRun)

	// Then steps
	ctx.Step(`^the calculation succeeds$`, cc.theCalculationSucceeds)
	ctx.Step(`^the calculation fails$`, cc.theCalculationFails)
	ctx.Step(`^the error mentions "([^"]*)"$`, cc.theErrorMentions)
	ctx.Step(`^both solvers converge$`, cc.bothSolversConverge)
	ctx.Step(`^(\d+) materials are priced$`, cc.materialsArePriced)
	ctx.Step(`^(\d+) alternative recipes? (?:is|are) priced$`, cc.alternativeRecipeIsPriced)
	ctx.Step(`^the archive holds (\d+) runs?$`, cc.theArchiveHoldsRuns)
	ctx.Step(`^the archived price of "([^"]*)" matches the calculated price$`, cc.theArchivedPriceOfMatchesTheCalculatedPrice)
}

