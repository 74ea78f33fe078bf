package pricerun_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricerun"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

func solver() pricerun.Solver {
	return pricerun.Solver{
		Sweeps:         12,
		FinalDelta:     0.0004,
		Converged:      true,
		WageIterations: 9,
		WageConverged:  true,
		Rates:          labor.NewVector(2e-7, 3e-7, 5e-7, 8e-7, 1.3e-6),
	}
}

func TestNewRun_SortsEntriesAndAssignsID(t *testing.T) {
	// Arrange
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []pricerun.Entry{
		{Kind: pricerun.EntryResource, Key: "P1/X", Source: "P1", Price: pricing.Price{Total: 3}},
		{Kind: pricerun.EntryMaterial, Key: "Y", Source: "FAB:2xX=>1xY", Price: pricing.Price{Total: 2}},
		{Kind: pricerun.EntryMaterial, Key: "X", Source: "P1", Price: pricing.Price{Total: 1}},
	}

	// Act
	run, err := pricerun.NewRun(start, start.Add(2*time.Second), "sel.json", solver(), entries)

	// Assert
	require.NoError(t, err)
	assert.False(t, run.ID().IsZero())
	assert.Len(t, run.ID().Short(), 8)
	assert.Equal(t, 2*time.Second, run.Duration())
	assert.True(t, run.Converged())

	materials := run.Entries(pricerun.EntryMaterial)
	require.Len(t, materials, 2)
	assert.Equal(t, "X", materials[0].Key)
	assert.Len(t, run.Entries(""), 3)

	e, ok := run.Entry(pricerun.EntryResource, "P1/X")
	require.True(t, ok)
	assert.Equal(t, 3.0, e.Price.Total)
}

func TestNewRun_Validation(t *testing.T) {
	start := time.Now()
	tests := []struct {
		name    string
		finish  time.Time
		solver  func(s *pricerun.Solver)
		entries []pricerun.Entry
		field   string
	}{
		{name: "finish before start", finish: start.Add(-time.Second), field: "finished_at"},
		{name: "negative sweeps", finish: start, solver: func(s *pricerun.Solver) { s.Sweeps = -1 }, field: "solver"},
		{name: "infinite rate", finish: start, solver: func(s *pricerun.Solver) { s.Rates[labor.Settler] = math.Inf(1) }, field: "rates"},
		{name: "bad kind", finish: start, entries: []pricerun.Entry{{Kind: "planet", Key: "P1"}}, field: "entries"},
		{name: "duplicate", finish: start, entries: []pricerun.Entry{
			{Kind: pricerun.EntryMaterial, Key: "X"}, {Kind: pricerun.EntryMaterial, Key: "X"},
		}, field: "entries"},
		{name: "nan price", finish: start, entries: []pricerun.Entry{
			{Kind: pricerun.EntryMaterial, Key: "X", Price: pricing.Price{Total: math.NaN()}},
		}, field: "entries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := solver()
			if tt.solver != nil {
				tt.solver(&s)
			}

			_, err := pricerun.NewRun(start, tt.finish, "", s, tt.entries)

			var invalid *pricerun.ErrInvalidRun
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestEntriesFromProjection(t *testing.T) {
	proj := pricing.Projection{
		Materials: []pricing.MaterialPrice{{Ticker: "X", Source: "P1", Price: pricing.Price{Total: 1}}},
		Recipes:   []pricing.RecipePrice{{Recipe: "FAB:3xX=>1xY", Price: pricing.Price{Total: 2}}},
		Resources: []pricing.ResourcePrice{{PlanetID: "P1", Material: "X", OutputPerRun: 35, Price: pricing.Price{Total: 3}}},
	}

	entries := pricerun.EntriesFromProjection(proj)

	require.Len(t, entries, 3)
	assert.Equal(t, pricerun.Entry{Kind: pricerun.EntryResource, Key: "P1/X", Source: "P1", Price: pricing.Price{Total: 3}}, entries[2])
}

func TestParseRunID(t *testing.T) {
	id := pricerun.NewRunID()

	parsed, err := pricerun.ParseRunID(id.String())
	require.NoError(t, err)
	assert.True(t, parsed.Equals(id))

	_, err = pricerun.ParseRunID("")
	assert.Error(t, err)
	_, err = pricerun.ParseRunID("not-a-uuid")
	assert.Error(t, err)
}
