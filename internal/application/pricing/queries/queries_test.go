package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-pricer/internal/application/pricing/queries"
	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricerun"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
	"github.com/andrescamacho/prun-pricer/test/helpers"
)

func archive(t *testing.T, repo *helpers.MockRunRepository, finished time.Time, converged bool, prices map[string]float64) *pricerun.Run {
	t.Helper()
	var entries []pricerun.Entry
	for ticker, total := range prices {
		entries = append(entries, pricerun.Entry{Kind: pricerun.EntryMaterial, Key: ticker, Price: pricing.Price{Total: total, Base: total}})
	}
	run, err := pricerun.NewRun(finished.Add(-time.Second), finished, "sel.json", pricerun.Solver{
		Sweeps:        3,
		Converged:     converged,
		WageConverged: true,
		Rates:         labor.NewVector(2e-7, 3e-7, 0, 0, 0),
	}, entries)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), run))
	return run
}

func TestGetMaterialPricesHandler_LatestRun(t *testing.T) {
	// Arrange
	repo := helpers.NewMockRunRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	archive(t, repo, base, true, map[string]float64{"RAT": 1})
	latest := archive(t, repo, base.Add(time.Hour), true, map[string]float64{"RAT": 2, "DW": 3})
	handler := queries.NewGetMaterialPricesHandler(repo)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetMaterialPricesQuery{Tickers: []string{"rat", "COF"}})

	// Assert
	require.NoError(t, err)
	result := resp.(*queries.GetMaterialPricesResponse)
	assert.True(t, result.RunID.Equals(latest.ID()))
	require.Len(t, result.Prices, 1)
	assert.Equal(t, "RAT", result.Prices[0].Key)
	assert.Equal(t, 2.0, result.Prices[0].Price.Total)
	assert.Equal(t, []string{"COF"}, result.Missing)
	assert.Equal(t, 3e-7, result.Rates[labor.Settler])
}

func TestGetMaterialPricesHandler_ByIDAndAllTickers(t *testing.T) {
	repo := helpers.NewMockRunRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	first := archive(t, repo, base, true, map[string]float64{"RAT": 1, "DW": 4})
	archive(t, repo, base.Add(time.Hour), true, map[string]float64{"RAT": 2})
	handler := queries.NewGetMaterialPricesHandler(repo)

	resp, err := handler.Handle(context.Background(), &queries.GetMaterialPricesQuery{RunID: first.ID().String()})

	require.NoError(t, err)
	result := resp.(*queries.GetMaterialPricesResponse)
	require.Len(t, result.Prices, 2)
	assert.Equal(t, "DW", result.Prices[0].Key)
	assert.Equal(t, "RAT", result.Prices[1].Key)
}

func TestGetMaterialPricesHandler_Errors(t *testing.T) {
	handler := queries.NewGetMaterialPricesHandler(helpers.NewMockRunRepository())

	_, err := handler.Handle(context.Background(), &queries.GetMaterialPricesQuery{})
	var notFound *pricerun.ErrRunNotFound
	require.True(t, errors.As(err, &notFound))
	assert.EqualError(t, err, "no price runs archived")

	_, err = handler.Handle(context.Background(), &queries.GetMaterialPricesQuery{RunID: "not-a-uuid"})
	assert.ErrorContains(t, err, "invalid run_id format")
}

func TestListPriceRunsHandler(t *testing.T) {
	repo := helpers.NewMockRunRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		archive(t, repo, base.Add(time.Duration(i)*time.Hour), i != 3, map[string]float64{"RAT": float64(i + 1)})
	}
	handler := queries.NewListPriceRunsHandler(repo)

	tests := []struct {
		name      string
		query     *queries.ListPriceRunsQuery
		wantCount int
		wantFirst time.Time
	}{
		{name: "default limit", query: &queries.ListPriceRunsQuery{}, wantCount: 4, wantFirst: base.Add(3 * time.Hour)},
		{name: "limited", query: &queries.ListPriceRunsQuery{Limit: 2}, wantCount: 2, wantFirst: base.Add(3 * time.Hour)},
		{name: "converged only", query: &queries.ListPriceRunsQuery{ConvergedOnly: true}, wantCount: 3, wantFirst: base.Add(2 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := handler.Handle(context.Background(), tt.query)

			require.NoError(t, err)
			runs := resp.(*queries.ListPriceRunsResponse).Runs
			require.Len(t, runs, tt.wantCount)
			assert.True(t, runs[0].FinishedAt().Equal(tt.wantFirst))
		})
	}
}
