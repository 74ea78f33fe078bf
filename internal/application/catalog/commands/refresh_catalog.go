package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/prun-pricer/internal/application/catalog/services"
	"github.com/andrescamacho/prun-pricer/internal/application/common"
	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
)

// RefreshCatalogCommand loads the catalog, downloading it when Force is set
// or nothing is cached yet
type RefreshCatalogCommand struct {
	Force bool
}

// RefreshCatalogResponse summarises the catalog now in the cache
type RefreshCatalogResponse struct {
	Source    string
	FetchedAt time.Time
	FromCache bool
	Buildings int
	Recipes   int
	Materials int
	Planets   int
	Issues    []catalog.Issue
}

// RefreshCatalogHandler handles the RefreshCatalog command
type RefreshCatalogHandler struct {
	loader *services.CatalogLoader
}

// NewRefreshCatalogHandler creates a new RefreshCatalogHandler
func NewRefreshCatalogHandler(loader *services.CatalogLoader) *RefreshCatalogHandler {
	return &RefreshCatalogHandler{loader: loader}
}

// Handle executes the RefreshCatalog command
func (h *RefreshCatalogHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RefreshCatalogCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RefreshCatalogCommand")
	}

	result, err := h.loader.Load(ctx, cmd.Force)
	if err != nil {
		return nil, err
	}

	b, r, m, p := result.Catalog.Counts()
	return &RefreshCatalogResponse{
		Source:    result.Snapshot.Source,
		FetchedAt: result.Snapshot.FetchedAt,
		FromCache: result.FromCache,
		Buildings: b,
		Recipes:   r,
		Materials: m,
		Planets:   p,
		Issues:    result.Catalog.Issues(),
	}, nil
}
