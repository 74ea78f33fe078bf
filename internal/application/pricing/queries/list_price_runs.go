package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/prun-pricer/internal/application/common"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricerun"
)

// ListPriceRunsQuery lists archived runs, newest first
type ListPriceRunsQuery struct {
	Limit         int
	ConvergedOnly bool
}

// ListPriceRunsResponse contains run headers without their entries
type ListPriceRunsResponse struct {
	Runs []*pricerun.Run
}

// ListPriceRunsHandler handles the ListPriceRuns query
type ListPriceRunsHandler struct {
	runs pricerun.RunRepository
}

// NewListPriceRunsHandler creates a new ListPriceRunsHandler
func NewListPriceRunsHandler(runs pricerun.RunRepository) *ListPriceRunsHandler {
	return &ListPriceRunsHandler{runs: runs}
}

// Handle executes the ListPriceRuns query
func (h *ListPriceRunsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListPriceRunsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListPriceRunsQuery")
	}

	opts := pricerun.DefaultQueryOptions()
	if query.Limit > 0 {
		opts.Limit = query.Limit
	}
	opts.ConvergedOnly = query.ConvergedOnly

	runs, err := h.runs.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list price runs: %w", err)
	}

	return &ListPriceRunsResponse{Runs: runs}, nil
}
