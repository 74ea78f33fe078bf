package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/prun-pricer/internal/application/catalog/services"
	"github.com/andrescamacho/prun-pricer/internal/application/common"
	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
)

// ListMaterialOptionsQuery lists the recipes and planets each material can come
// from. Without All only materials with more than one option are listed.
type ListMaterialOptionsQuery struct {
	All bool
}

// ListMaterialOptionsResponse holds options in ticker order
type ListMaterialOptionsResponse struct {
	Options []catalog.MaterialOption
}

// ListMaterialOptionsHandler handles the ListMaterialOptions query
type ListMaterialOptionsHandler struct {
	loader *services.CatalogLoader
}

// NewListMaterialOptionsHandler creates a new ListMaterialOptionsHandler
func NewListMaterialOptionsHandler(loader *services.CatalogLoader) *ListMaterialOptionsHandler {
	return &ListMaterialOptionsHandler{loader: loader}
}

// Handle executes the ListMaterialOptions query
func (h *ListMaterialOptionsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListMaterialOptionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListMaterialOptionsQuery")
	}

	result, err := h.loader.Load(ctx, false)
	if err != nil {
		return nil, err
	}

	return &ListMaterialOptionsResponse{Options: result.Catalog.MaterialOptions(query.All)}, nil
}
