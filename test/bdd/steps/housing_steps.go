package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/housing"
	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
	"github.com/andrescamacho/prun-pricer/test/helpers"
)

type housingContext struct {
	workforce catalog.Workforce
	units     []housing.Unit
	catalog   *catalog.Catalog
	setup     housing.BaseSetup
	err       error
}

func (hc *housingContext) reset() {
	hc.workforce = catalog.Workforce{}
	hc.units = nil
	hc.catalog = nil
	hc.setup = housing.BaseSetup{}
	hc.err = nil
}

// Given steps

func (hc *housingContext) aBuildingEmployingPioneersAndSettlers(pioneers, settlers int) error {
	hc.workforce[labor.Pioneer] = pioneers
	hc.workforce[labor.Settler] = settlers
	return nil
}

func (hc *housingContext) aBuildingEmployingScientists(scientists int) error {
	hc.workforce[labor.Scientist] = scientists
	return nil
}

func (hc *housingContext) aBuildingWithNoWorkforce() error {
	hc.workforce = catalog.Workforce{}
	return nil
}

func (hc *housingContext) theTestWorldCatalog() error {
	hc.catalog = helpers.WorldCatalog()
	return nil
}

// When steps

func (hc *housingContext) iComputeItsHousing() error {
	hc.units, hc.err = housing.Needs(hc.workforce)
	return nil
}

func (hc *housingContext) iResolveTheBaseSetupOf(ticker string) error {
	if hc.catalog == nil {
		return fmt.Errorf("no catalog loaded")
	}
	hc.setup, hc.err = housing.ResolveBaseSetup(ticker, hc.catalog)
	return nil
}

// Then steps

func (hc *housingContext) itNeeds(count int, ticker string) error {
	if hc.err != nil {
		return fmt.Errorf("housing failed: %w", hc.err)
	}
	for _, u := range hc.units {
		if u.Ticker == ticker {
			if u.Count != count {
				return fmt.Errorf("expected %d %s, got %d", count, ticker, u.Count)
			}
			return nil
		}
	}
	return fmt.Errorf("expected %d %s, got none (units: %v)", count, ticker, hc.units)
}

func (hc *housingContext) itNeedsNo(ticker string) error {
	for _, u := range hc.units {
		if u.Ticker == ticker && u.Count > 0 {
			return fmt.Errorf("expected no %s, got %d", ticker, u.Count)
		}
	}
	return nil
}

func (hc *housingContext) housingFailsWith(message string) error {
	if hc.err == nil {
		return fmt.Errorf("expected housing to fail with %q, but it succeeded", message)
	}
	if !errors.Is(hc.err, housing.ErrNoWorkforce) || hc.err.Error() != message {
		return fmt.Errorf("expected error %q, got %q", message, hc.err.Error())
	}
	return nil
}

func (hc *housingContext) theSetupHoldsBuildingsOnArea(count, area int) error {
	if hc.err != nil {
		return fmt.Errorf("setup resolution failed: %w", hc.err)
	}
	if hc.setup.BuildingCount != count || hc.setup.Area != area {
		return fmt.Errorf("expected %d buildings on %d area, got %d on %d",
			count, area, hc.setup.BuildingCount, hc.setup.Area)
	}
	return nil
}

func (hc *housingContext) theSetupIncludes(count int, ticker string) error {
	for _, u := range hc.setup.Units {
		if u.Ticker == ticker {
			if u.Count != count {
				return fmt.Errorf("expected %d %s in setup, got %d", count, ticker, u.Count)
			}
			return nil
		}
	}
	return fmt.Errorf("setup of %s has no %s", hc.setup.Building, ticker)
}

func (hc *housingContext) setupResolutionFailsWith(message string) error {
	if hc.err == nil {
		return fmt.Errorf("expected setup resolution to fail with %q, but it succeeded", message)
	}
	if hc.err.Error() != message {
		return fmt.Errorf("expected error %q, got %q", message, hc.err.Error())
	}
	return nil
}

func InitializeHousingScenario(ctx *godog.ScenarioContext) {
	hc := &housingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		hc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a building employing (\d+) pioneers and (\d+) settlers$`, hc.aBuildingEmployingPioneersAndSettlers)
	ctx.Step(`^a building employing (\d+) scientists$`, hc.aBuildingEmployingScientists)
	ctx.Step(`^a building with no workforce$`, hc.aBuildingWithNoWorkforce)
	ctx.Step(`^the test world catalog$`, hc.theTestWorldCatalog)

	// When steps
	ctx.Step(`^I compute its housing$`, hc.iComputeItsHousing)
	ctx.Step(`^I resolve the base setup of "([^"]*)"$`, hc.iResolveTheBaseSetupOf)

	// Then steps
	ctx.Step(`^it needs (\d+) "([^"]*)"$`, hc.itNeeds)
	ctx.Step(`^it needs no "([^"]*)"$`, hc.itNeedsNo)
	ctx.Step(`^housing fails with "([^"]*)"$`, hc.housingFailsWith)
	ctx.Step(`^the setup holds (\d+) buildings on (\d+) area$`, hc.theSetupHoldsBuildingsOnArea)
	ctx.Step(`^the setup includes (\d+) "([^"]*)"$`, hc.theSetupIncludes)
	ctx.Step(`^setup resolution fails with "([^"]*)"$`, hc.setupResolutionFailsWith)
}
