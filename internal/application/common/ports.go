package common

import (
	"context"
	"errors"
	"time"

	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

// CatalogFetcher downloads the raw catalog tables from the remote API
type CatalogFetcher interface {
	FetchRecords(ctx context.Context) (catalog.Records, error)
}

// CatalogSnapshot is a fetched catalog together with where and when it came from
type CatalogSnapshot struct {
	Source    string
	FetchedAt time.Time
	Records   catalog.Records
}

// ErrSnapshotNotFound is returned by a SnapshotStore holding no snapshot yet
var ErrSnapshotNotFound = errors.New("catalog snapshot not found")

// SnapshotStore persists the last fetched catalog between runs
type SnapshotStore interface {
	Load(ctx context.Context) (*CatalogSnapshot, error)
	Save(ctx context.Context, snapshot *CatalogSnapshot) error
}

// SelectionLoader reads a material selection file and checks every chosen
// recipe and planet against the catalog
type SelectionLoader interface {
	Load(ctx context.Context, path string, c *catalog.Catalog) (pricing.Selection, error)
}

// ReportWriter writes a projection to dir and returns the files it produced
type ReportWriter interface {
	Write(ctx context.Context, dir string, projection pricing.Projection) ([]string, error)
}
