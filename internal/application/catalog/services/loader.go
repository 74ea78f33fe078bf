package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/prun-pricer/internal/application/common"
	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/shared"
)

// LoadResult is an indexed catalog and the snapshot it was built from
type LoadResult struct {
	Catalog   *catalog.Catalog
	Snapshot  *common.CatalogSnapshot
	FromCache bool
}

// CatalogLoader serves the catalog from the snapshot store and only goes to
// the remote API when the store is empty or a refresh is forced
type CatalogLoader struct {
	fetcher common.CatalogFetcher
	store   common.SnapshotStore
	source  string
	clock   shared.Clock
}

// NewCatalogLoader creates a loader; source labels snapshots with their origin
func NewCatalogLoader(fetcher common.CatalogFetcher, store common.SnapshotStore, source string, clock shared.Clock) *CatalogLoader {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CatalogLoader{
		fetcher: fetcher,
		store:   store,
		source:  source,
		clock:   clock,
	}
}

// Load returns the catalog, fetching and caching it when needed
func (l *CatalogLoader) Load(ctx context.Context, forceRefresh bool) (*LoadResult, error) {
	logger := common.LoggerFromContext(ctx)

	var (
		snapshot  *common.CatalogSnapshot
		fromCache bool
	)

	if !forceRefresh {
		cached, err := l.store.Load(ctx)
		switch {
		case err == nil:
			snapshot, fromCache = cached, true
		case errors.Is(err, common.ErrSnapshotNotFound):
			logger.Log("INFO", "no cached catalog, fetching", nil)
		default:
			return nil, fmt.Errorf("failed to read catalog cache: %w", err)
		}
	}

	if snapshot == nil {
		records, err := l.fetcher.FetchRecords(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch catalog: %w", err)
		}
		snapshot = &common.CatalogSnapshot{
			Source:    l.source,
			FetchedAt: l.clock.Now(),
			Records:   records,
		}
		if err := l.store.Save(ctx, snapshot); err != nil {
			return nil, fmt.Errorf("failed to cache catalog: %w", err)
		}
	}

	c := catalog.New(snapshot.Records)
	for _, issue := range c.Issues() {
		logger.Log("WARNING", "catalog issue", map[string]interface{}{
			"kind":   string(issue.Kind),
			"table":  issue.Table,
			"key":    issue.Key,
			"detail": issue.Detail,
		})
	}

	b, r, m, p := c.Counts()
	logger.Log("INFO", "catalog loaded", map[string]interface{}{
		"from_cache": fromCache,
		"fetched_at": snapshot.FetchedAt,
		"buildings":  b,
		"recipes":    r,
		"materials":  m,
		"planets":    p,
	})

	return &LoadResult{Catalog: c, Snapshot: snapshot, FromCache: fromCache}, nil
}
