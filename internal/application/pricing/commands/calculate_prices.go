package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/prun-pricer/internal/adapters/metrics"
	"github.com/andrescamacho/prun-pricer/internal/application/catalog/services"
	"github.com/andrescamacho/prun-pricer/internal/application/common"
	"github.com/andrescamacho/prun-pricer/internal/domain/housing"
	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricerun"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
	"github.com/andrescamacho/prun-pricer/internal/domain/shared"
)

// SolverSettings tune both fixed-point solves
type SolverSettings struct {
	MaxSweeps         int
	Tolerance         float64
	WageMaxIterations int
	WageTolerance     float64
	WageSeed          float64

	// Consumption baskets the wage equations are built from
	Baskets pricing.Baskets
}

// DefaultSolverSettings returns the standard solver settings
func DefaultSolverSettings() SolverSettings {
	wages := pricing.DefaultWageOptions()
	return SolverSettings{
		MaxSweeps:         pricing.DefaultMaxSweeps,
		Tolerance:         pricing.DefaultTolerance,
		WageMaxIterations: wages.MaxIterations,
		WageTolerance:     wages.Tolerance,
		WageSeed:          wages.Seed,
		Baskets:           pricing.DefaultBaskets,
	}
}

// CalculatePricesCommand runs a full price calculation for a selection file
type CalculatePricesCommand struct {
	SelectionPath string
	OutputDir     string
	Persist       bool
}

// CalculateSummary describes how the calculation went
type CalculateSummary struct {
	StartedAt        time.Time
	FinishedAt       time.Time
	FromCache        bool
	PricedMaterials  int
	SkippedBuilding  []string
	SelectionIssues  []pricing.SelectionIssue
	Equilibrium      pricing.EquilibriumResult
	Wages            pricing.Wages
	SkippedRecipes   int
	SkippedResources int
	Reports          []string

	// Warnings holds *pricing.ConvergenceWarning and *pricing.ContractionWarning values
	Warnings []error
}

// CalculatePricesResponse contains the projection and, when persisted, the run ID
type CalculatePricesResponse struct {
	RunID      *pricerun.RunID
	Summary    CalculateSummary
	Projection pricing.Projection
}

// CalculatePricesHandler handles the CalculatePrices command
type CalculatePricesHandler struct {
	catalogs   *services.CatalogLoader
	selections common.SelectionLoader
	reports    common.ReportWriter
	runs       pricerun.RunRepository
	settings   SolverSettings
	clock      shared.Clock
}

// NewCalculatePricesHandler creates a new CalculatePricesHandler.
// runs may be nil when runs are never persisted.
func NewCalculatePricesHandler(
	catalogs *services.CatalogLoader,
	selections common.SelectionLoader,
	reports common.ReportWriter,
	runs pricerun.RunRepository,
	settings SolverSettings,
	clock shared.Clock,
) *CalculatePricesHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CalculatePricesHandler{
		catalogs:   catalogs,
		selections: selections,
		reports:    reports,
		runs:       runs,
		settings:   settings,
		clock:      clock,
	}
}

// Handle executes the CalculatePrices command
func (h *CalculatePricesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CalculatePricesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CalculatePricesCommand")
	}
	if cmd.Persist && h.runs == nil {
		return nil, fmt.Errorf("cannot persist run: no run repository configured")
	}

	logger := common.LoggerFromContext(ctx)
	summary := CalculateSummary{StartedAt: h.clock.Now()}

	loaded, err := h.catalogs.Load(ctx, false)
	if err != nil {
		return nil, err
	}
	summary.FromCache = loaded.FromCache
	c := loaded.Catalog

	setups, skipped, err := housing.ResolveAll(c)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base setups: %w", err)
	}
	summary.SkippedBuilding = skipped
	if len(skipped) > 0 {
		logger.Log("DEBUG", "buildings without workforce have no base setup", map[string]interface{}{
			"buildings": skipped,
		})
	}

	selection, err := h.selections.Load(ctx, cmd.SelectionPath, c)
	if err != nil {
		return nil, fmt.Errorf("failed to load selection: %w", err)
	}

	state, issues, err := pricing.ResolveSources(c, setups, selection)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve material sources: %w", err)
	}
	summary.SelectionIssues = issues
	for _, issue := range issues {
		logger.Log("WARNING", "selection issue", map[string]interface{}{
			"material": issue.Material,
			"detail":   issue.String(),
		})
	}
	summary.PricedMaterials = state.Len()

	eq := &pricing.Equilibrium{
		MaxSweeps: h.settings.MaxSweeps,
		Tolerance: h.settings.Tolerance,
		OnSweep: func(n int, r pricing.SweepResult) {
			logger.Log("DEBUG", "equilibrium sweep", map[string]interface{}{
				"sweep":    n,
				"delta":    r.Delta,
				"material": r.Material,
			})
		},
	}
	equilibrium, err := eq.Run(state)
	if err != nil {
		return nil, fmt.Errorf("cost equilibrium failed: %w", err)
	}
	summary.Equilibrium = equilibrium
	metrics.RecordEquilibrium(equilibrium)
	if equilibrium.Warning != nil {
		summary.Warnings = append(summary.Warnings, equilibrium.Warning)
		logger.Log("WARNING", equilibrium.Warning.Error(), nil)
	} else {
		logger.Log("INFO", "cost equilibrium converged", map[string]interface{}{
			"sweeps": equilibrium.Sweeps,
			"delta":  equilibrium.Delta,
		})
	}

	wages, err := pricing.SolveWages(state, h.settings.Baskets, pricing.WageOptions{
		MaxIterations: h.settings.WageMaxIterations,
		Tolerance:     h.settings.WageTolerance,
		Seed:          h.settings.WageSeed,
		Start:         pricing.DefaultWageStart,
	})
	if err != nil {
		return nil, fmt.Errorf("wage solve failed: %w", err)
	}
	summary.Wages = wages
	metrics.RecordWages(wages)
	if wages.Contraction != nil {
		summary.Warnings = append(summary.Warnings, wages.Contraction)
		logger.Log("WARNING", wages.Contraction.Error(), map[string]interface{}{
			"role":    wages.Contraction.Role,
			"row_sum": wages.Contraction.RowSum,
		})
	}
	if wages.Warning != nil {
		summary.Warnings = append(summary.Warnings, wages.Warning)
		logger.Log("WARNING", wages.Warning.Error(), nil)
	}
	logger.Log("INFO", "wage rates solved", rateMetadata(wages.Rates))

	projector := &pricing.Projector{Catalog: c, Setups: setups, State: state, Rates: wages.Rates}
	projection := projector.Project()
	metrics.RecordProjection(projection)
	skippedByKind := map[string]int{}
	for _, row := range projection.Skipped {
		skippedByKind[row.Kind]++
		// Recipes skip routinely when an input is left unselected
		level := "DEBUG"
		if row.Kind == "resource" {
			level = "WARNING"
		}
		logger.Log(level, "row not priced", map[string]interface{}{
			"kind":   row.Kind,
			"key":    row.Key,
			"reason": row.Reason,
		})
	}
	if len(projection.Skipped) > 0 {
		logger.Log("WARNING", "some rows could not be priced", map[string]interface{}{
			"recipes":   skippedByKind["recipe"],
			"resources": skippedByKind["resource"],
		})
	}
	summary.SkippedRecipes = skippedByKind["recipe"]
	summary.SkippedResources = skippedByKind["resource"]

	if cmd.OutputDir != "" {
		files, err := h.reports.Write(ctx, cmd.OutputDir, projection)
		if err != nil {
			return nil, fmt.Errorf("failed to write reports: %w", err)
		}
		summary.Reports = files
	}

	summary.FinishedAt = h.clock.Now()
	response := &CalculatePricesResponse{Summary: summary, Projection: projection}

	if cmd.Persist {
		run, err := pricerun.NewRun(summary.StartedAt, summary.FinishedAt, cmd.SelectionPath, pricerun.Solver{
			Sweeps:          equilibrium.Sweeps,
			FinalDelta:      equilibrium.Delta,
			Converged:       equilibrium.Converged,
			WageIterations:  wages.Iterations,
			WageConverged:   wages.Converged,
			WageContractive: wages.Contractive,
			Rates:           wages.Rates,
		}, pricerun.EntriesFromProjection(projection))
		if err != nil {
			return nil, fmt.Errorf("failed to build price run: %w", err)
		}
		if err := h.runs.Create(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to archive price run: %w", err)
		}
		id := run.ID()
		response.RunID = &id
		logger.Log("INFO", "price run archived", map[string]interface{}{"run_id": id.String()})
	}

	return response, nil
}

func rateMetadata(rates labor.Vector) map[string]interface{} {
	out := make(map[string]interface{}, labor.RoleCount)
	for _, role := range labor.Roles {
		out[role.String()] = rates[role]
	}
	return out
}
