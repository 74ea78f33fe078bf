package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-pricer/internal/application/catalog/services"
	"github.com/andrescamacho/prun-pricer/internal/domain/shared"
	"github.com/andrescamacho/prun-pricer/test/helpers"
)

func TestCatalogLoader_FetchesAndCachesOnFirstLoad(t *testing.T) {
	// Arrange
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fetcher := helpers.NewMockCatalogFetcher(helpers.WorldRecords())
	store := helpers.NewMockSnapshotStore()
	loader := services.NewCatalogLoader(fetcher, store, "https://fnar.test", shared.NewMockClock(now))

	// Act
	first, err := loader.Load(context.Background(), false)
	require.NoError(t, err)
	second, err := loader.Load(context.Background(), false)
	require.NoError(t, err)

	// Assert
	assert.False(t, first.FromCache)
	assert.True(t, second.FromCache)
	assert.Equal(t, 1, fetcher.Calls())
	assert.Equal(t, 1, store.Saves())
	assert.Equal(t, now, second.Snapshot.FetchedAt)
	assert.Equal(t, "https://fnar.test", second.Snapshot.Source)

	b, r, m, p := second.Catalog.Counts()
	assert.Equal(t, []int{3, 4, 3, 1}, []int{b, r, m, p})
}

func TestCatalogLoader_ForceRefetches(t *testing.T) {
	fetcher := helpers.NewMockCatalogFetcher(helpers.WorldRecords())
	store := helpers.NewMockSnapshotStore()
	loader := services.NewCatalogLoader(fetcher, store, "test", nil)

	_, err := loader.Load(context.Background(), false)
	require.NoError(t, err)
	result, err := loader.Load(context.Background(), true)

	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, 2, fetcher.Calls())
	assert.Equal(t, 2, store.Saves())
}

func TestCatalogLoader_FetchErrorIsWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	fetcher := helpers.NewMockCatalogFetcher(helpers.WorldRecords())
	fetcher.SetError(boom)
	loader := services.NewCatalogLoader(fetcher, helpers.NewMockSnapshotStore(), "test", nil)

	_, err := loader.Load(context.Background(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to fetch catalog")
}
