package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"

	"github.com/andrescamacho/prun-pricer/internal/adapters/catalogcache"
	"github.com/andrescamacho/prun-pricer/internal/adapters/fnar"
	"github.com/andrescamacho/prun-pricer/internal/adapters/metrics"
	"github.com/andrescamacho/prun-pricer/internal/adapters/persistence"
	"github.com/andrescamacho/prun-pricer/internal/adapters/report"
	"github.com/andrescamacho/prun-pricer/internal/adapters/selection"
	catalogCmd "github.com/andrescamacho/prun-pricer/internal/application/catalog/commands"
	catalogQuery "github.com/andrescamacho/prun-pricer/internal/application/catalog/queries"
	catalogServices "github.com/andrescamacho/prun-pricer/internal/application/catalog/services"
	"github.com/andrescamacho/prun-pricer/internal/application/common"
	pricingCmd "github.com/andrescamacho/prun-pricer/internal/application/pricing/commands"
	pricingQuery "github.com/andrescamacho/prun-pricer/internal/application/pricing/queries"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricerun"
	"github.com/andrescamacho/prun-pricer/internal/domain/shared"
	"github.com/andrescamacho/prun-pricer/internal/infrastructure/config"
	"github.com/andrescamacho/prun-pricer/internal/infrastructure/database"
	"github.com/andrescamacho/prun-pricer/internal/infrastructure/logging"
	"github.com/andrescamacho/prun-pricer/internal/infrastructure/runlock"
)

// app is the wired application behind every subcommand
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	logClose io.Closer
	db       *gorm.DB
	mediator common.Mediator
	lock     *runlock.Lock
}

// newApp loads configuration and wires adapters into the mediator.
// The run archive database is only opened when withArchive is set.
func newApp(withArchive bool) (*app, context.Context, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, logClose, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	a := &app{cfg: cfg, logger: logger, logClose: logClose}
	ctx := common.WithLogger(context.Background(), logging.NewAdapter(logger))

	commandCollector, err := a.initMetrics()
	if err != nil {
		a.Close()
		return nil, nil, err
	}

	var runs pricerun.RunRepository
	if withArchive {
		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			a.Close()
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db
		if err := database.AutoMigrate(db); err != nil {
			a.Close()
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		runs = persistence.NewGormPriceRunRepository(db)
	}

	if err := a.registerHandlers(runs, commandCollector); err != nil {
		a.Close()
		return nil, nil, err
	}

	return a, ctx, nil
}

// initMetrics registers every collector when metrics are enabled
func (a *app) initMetrics() (*metrics.CommandMetricsCollector, error) {
	if !a.cfg.Metrics.Enabled {
		return nil, nil
	}

	metrics.InitRegistry()

	solverCollector := metrics.NewSolverMetricsCollector()
	if err := solverCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register solver metrics: %w", err)
	}
	metrics.SetGlobalSolverCollector(solverCollector)

	apiCollector := metrics.NewAPIMetricsCollector()
	if err := apiCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register api metrics: %w", err)
	}
	metrics.SetGlobalAPICollector(apiCollector)

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}

	return commandCollector, nil
}

func (a *app) registerHandlers(runs pricerun.RunRepository, commandCollector *metrics.CommandMetricsCollector) error {
	clock := shared.NewRealClock()

	client := fnar.NewClient(fnar.Options{
		BaseURL:           a.cfg.Catalog.BaseURL,
		Timeout:           a.cfg.Catalog.Timeout,
		RequestsPerSecond: a.cfg.Catalog.RateLimit.Requests,
		Burst:             a.cfg.Catalog.RateLimit.Burst,
		MaxRetries:        a.cfg.Catalog.Retry.MaxAttempts,
		BackoffBase:       a.cfg.Catalog.Retry.BackoffBase,
		Clock:             clock,
	})
	store := catalogcache.NewStore(a.cfg.Catalog.CachePath)
	loader := catalogServices.NewCatalogLoader(client, store, a.cfg.Catalog.BaseURL, clock)

	selections, err := selection.NewLoader()
	if err != nil {
		return fmt.Errorf("failed to build selection loader: %w", err)
	}

	settings := pricingCmd.DefaultSolverSettings()
	settings.MaxSweeps = a.cfg.Solver.MaxSweeps
	settings.Tolerance = a.cfg.Solver.Tolerance
	settings.WageMaxIterations = a.cfg.Solver.WageMaxIterations
	settings.WageTolerance = a.cfg.Solver.WageTolerance
	settings.WageSeed = a.cfg.Solver.WageSeed

	med := common.NewMediator()
	med.Use(common.LoggingMiddleware)
	if commandCollector != nil {
		med.Use(metrics.PrometheusMiddleware(commandCollector))
	}

	if err := common.RegisterHandler[*catalogCmd.RefreshCatalogCommand](med, catalogCmd.NewRefreshCatalogHandler(loader)); err != nil {
		return fmt.Errorf("failed to register RefreshCatalog handler: %w", err)
	}
	if err := common.RegisterHandler[*catalogQuery.ListMaterialOptionsQuery](med, catalogQuery.NewListMaterialOptionsHandler(loader)); err != nil {
		return fmt.Errorf("failed to register ListMaterialOptions handler: %w", err)
	}

	calculateHandler := pricingCmd.NewCalculatePricesHandler(loader, selections, report.NewCSVWriter(), runs, settings, clock)
	if err := common.RegisterHandler[*pricingCmd.CalculatePricesCommand](med, calculateHandler); err != nil {
		return fmt.Errorf("failed to register CalculatePrices handler: %w", err)
	}

	if runs != nil {
		if err := common.RegisterHandler[*pricingQuery.GetMaterialPricesQuery](med, pricingQuery.NewGetMaterialPricesHandler(runs)); err != nil {
			return fmt.Errorf("failed to register GetMaterialPrices handler: %w", err)
		}
		if err := common.RegisterHandler[*pricingQuery.ListPriceRunsQuery](med, pricingQuery.NewListPriceRunsHandler(runs)); err != nil {
			return fmt.Errorf("failed to register ListPriceRuns handler: %w", err)
		}
	}

	a.mediator = med
	return nil
}

// acquireLock stops a second pricer process from writing the catalog cache
// or report directory while this one runs. Close releases it.
func (a *app) acquireLock() error {
	lock := runlock.New(a.cfg.Catalog.CachePath + ".lock")
	if err := lock.Acquire(); err != nil {
		return err
	}
	a.lock = lock
	return nil
}

// Close flushes metrics and releases the lock, database and log file
func (a *app) Close() error {
	var errs []error
	if a.lock != nil {
		if err := a.lock.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := metrics.WriteTextfile(a.cfg.Metrics.TextfilePath); err != nil {
		errs = append(errs, err)
	}
	metrics.Reset()
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			errs = append(errs, err)
		}
	}
	if a.logClose != nil {
		if err := a.logClose.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
