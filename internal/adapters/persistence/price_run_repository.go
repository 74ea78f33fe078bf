package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricerun"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

// GormPriceRunRepository implements pricerun.RunRepository using GORM
type GormPriceRunRepository struct {
	db *gorm.DB
}

// NewGormPriceRunRepository creates a new GORM price-run repository
func NewGormPriceRunRepository(db *gorm.DB) *GormPriceRunRepository {
	return &GormPriceRunRepository{db: db}
}

var _ pricerun.RunRepository = (*GormPriceRunRepository)(nil)

// Create persists a run and its entries in one transaction
func (r *GormPriceRunRepository) Create(ctx context.Context, run *pricerun.Run) error {
	model := runToModel(run)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entries := model.Entries
		model.Entries = nil
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.CreateInBatches(entries, 500).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create price run: %w", err)
	}
	return nil
}

// FindByID loads a run with all of its entries
func (r *GormPriceRunRepository) FindByID(ctx context.Context, id pricerun.RunID) (*pricerun.Run, error) {
	var model PriceRunModel
	result := r.db.WithContext(ctx).
		Preload("Entries").
		Where("id = ?", id.String()).
		First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &pricerun.ErrRunNotFound{ID: id.String()}
		}
		return nil, fmt.Errorf("failed to find price run: %w", result.Error)
	}

	return modelToRun(&model), nil
}

// Latest loads the most recently finished run
func (r *GormPriceRunRepository) Latest(ctx context.Context) (*pricerun.Run, error) {
	var model PriceRunModel
	result := r.db.WithContext(ctx).
		Preload("Entries").
		Order("finished_at DESC").
		First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &pricerun.ErrRunNotFound{}
		}
		return nil, fmt.Errorf("failed to find latest price run: %w", result.Error)
	}

	return modelToRun(&model), nil
}

// List returns run headers, newest first
func (r *GormPriceRunRepository) List(ctx context.Context, opts pricerun.QueryOptions) ([]*pricerun.Run, error) {
	query := r.db.WithContext(ctx).Model(&PriceRunModel{})

	if opts.Since != nil {
		query = query.Where("finished_at >= ?", *opts.Since)
	}
	if opts.ConvergedOnly {
		query = query.Where("converged = ? AND wage_converged = ?", true, true)
	}

	query = query.Order("finished_at DESC")
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []PriceRunModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list price runs: %w", err)
	}

	runs := make([]*pricerun.Run, len(models))
	for i := range models {
		runs[i] = modelToRun(&models[i])
	}
	return runs, nil
}

func runToModel(run *pricerun.Run) *PriceRunModel {
	s := run.Solver()
	model := &PriceRunModel{
		ID:              run.ID().String(),
		StartedAt:       run.StartedAt(),
		FinishedAt:      run.FinishedAt(),
		SelectionPath:   run.SelectionPath(),
		Sweeps:          s.Sweeps,
		FinalDelta:      s.FinalDelta,
		Converged:       s.Converged,
		WageIterations:  s.WageIterations,
		WageConverged:   s.WageConverged,
		WageContractive: s.WageContractive,
		RatePIO:         s.Rates[labor.Pioneer],
		RateSET:         s.Rates[labor.Settler],
		RateTEC:         s.Rates[labor.Technician],
		RateENG:         s.Rates[labor.Engineer],
		RateSCI:         s.Rates[labor.Scientist],
	}

	for _, e := range run.Entries("") {
		model.Entries = append(model.Entries, PriceEntryModel{
			RunID:    model.ID,
			Kind:     string(e.Kind),
			EntryKey: e.Key,
			Source:   e.Source,
			Total:    e.Price.Total,
			Repair:   e.Price.Repair,
			Input:    e.Price.Input,
			Profit:   e.Price.Profit,
			Base:     e.Price.Base,
		})
	}
	return model
}

func modelToRun(model *PriceRunModel) *pricerun.Run {
	solver := pricerun.Solver{
		Sweeps:          model.Sweeps,
		FinalDelta:      model.FinalDelta,
		Converged:       model.Converged,
		WageIterations:  model.WageIterations,
		WageConverged:   model.WageConverged,
		WageContractive: model.WageContractive,
		Rates:           labor.NewVector(model.RatePIO, model.RateSET, model.RateTEC, model.RateENG, model.RateSCI),
	}

	entries := make([]pricerun.Entry, 0, len(model.Entries))
	for _, e := range model.Entries {
		entries = append(entries, pricerun.Entry{
			Kind:   pricerun.EntryKind(e.Kind),
			Key:    e.EntryKey,
			Source: e.Source,
			Price: pricing.Price{
				Total:  e.Total,
				Repair: e.Repair,
				Input:  e.Input,
				Profit: e.Profit,
				Base:   e.Base,
			},
		})
	}

	return pricerun.ReconstructRun(
		pricerun.MustParseRunID(model.ID),
		model.StartedAt,
		model.FinishedAt,
		model.SelectionPath,
		solver,
		entries,
	)
}
