package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-pricer/internal/application/catalog/commands"
	"github.com/andrescamacho/prun-pricer/internal/application/catalog/queries"
	"github.com/andrescamacho/prun-pricer/internal/application/catalog/services"
	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/test/helpers"
)

func TestRefreshCatalogHandler(t *testing.T) {
	// Arrange
	records := helpers.WorldRecords()
	records.Recipes = append(records.Recipes, catalog.Recipe{
		Name: "FAB:1xX=>1xZZZ", BuildingTicker: "FAB", TimeMs: 1000,
		Inputs:  []catalog.MaterialAmount{{Ticker: "X", Amount: 1}},
		Outputs: []catalog.MaterialAmount{{Ticker: "ZZZ", Amount: 1}},
	})
	loader := services.NewCatalogLoader(helpers.NewMockCatalogFetcher(records), helpers.NewMockSnapshotStore(), "test", nil)
	handler := commands.NewRefreshCatalogHandler(loader)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.RefreshCatalogCommand{Force: true})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.RefreshCatalogResponse)
	assert.False(t, result.FromCache)
	assert.Equal(t, 3, result.Buildings)
	assert.Equal(t, 5, result.Recipes)
	assert.Equal(t, 3, result.Materials)
	assert.Equal(t, 1, result.Planets)
	require.NotEmpty(t, result.Issues)
	assert.Equal(t, catalog.IssueDanglingReference, result.Issues[0].Kind)
}

func TestRefreshCatalogHandler_RejectsWrongRequest(t *testing.T) {
	handler := commands.NewRefreshCatalogHandler(nil)

	_, err := handler.Handle(context.Background(), &queries.ListMaterialOptionsQuery{})

	assert.EqualError(t, err, "invalid request type: expected *RefreshCatalogCommand")
}
