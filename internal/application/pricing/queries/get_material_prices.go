package queries

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrescamacho/prun-pricer/internal/application/common"
	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricerun"
)

// GetMaterialPricesQuery reads material prices from an archived run.
// An empty RunID selects the latest run; empty Tickers selects every material.
type GetMaterialPricesQuery struct {
	RunID   string
	Tickers []string
}

// GetMaterialPricesResponse contains the requested prices in request order
type GetMaterialPricesResponse struct {
	RunID   pricerun.RunID
	Rates   labor.Vector
	Prices  []pricerun.Entry
	Missing []string
}

// GetMaterialPricesHandler handles the GetMaterialPrices query
type GetMaterialPricesHandler struct {
	runs pricerun.RunRepository
}

// NewGetMaterialPricesHandler creates a new GetMaterialPricesHandler
func NewGetMaterialPricesHandler(runs pricerun.RunRepository) *GetMaterialPricesHandler {
	return &GetMaterialPricesHandler{runs: runs}
}

// Handle executes the GetMaterialPrices query
func (h *GetMaterialPricesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetMaterialPricesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetMaterialPricesQuery")
	}

	run, err := h.findRun(ctx, query.RunID)
	if err != nil {
		return nil, err
	}

	response := &GetMaterialPricesResponse{RunID: run.ID(), Rates: run.Solver().Rates}
	if len(query.Tickers) == 0 {
		response.Prices = run.Entries(pricerun.EntryMaterial)
		return response, nil
	}

	for _, ticker := range query.Tickers {
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		entry, found := run.Entry(pricerun.EntryMaterial, ticker)
		if !found {
			response.Missing = append(response.Missing, ticker)
			continue
		}
		response.Prices = append(response.Prices, entry)
	}

	return response, nil
}

func (h *GetMaterialPricesHandler) findRun(ctx context.Context, rawID string) (*pricerun.Run, error) {
	if rawID == "" {
		return h.runs.Latest(ctx)
	}
	id, err := pricerun.ParseRunID(rawID)
	if err != nil {
		return nil, err
	}
	return h.runs.FindByID(ctx, id)
}
