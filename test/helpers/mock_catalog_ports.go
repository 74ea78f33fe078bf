package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/prun-pricer/internal/application/common"
	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

// MockCatalogFetcher is a test double for the CatalogFetcher port
type MockCatalogFetcher struct {
	mu      sync.Mutex
	records catalog.Records
	err     error
	calls   int
}

// NewMockCatalogFetcher creates a fetcher that serves the given records
func NewMockCatalogFetcher(records catalog.Records) *MockCatalogFetcher {
	return &MockCatalogFetcher{records: records}
}

// SetError makes every following fetch fail
func (m *MockCatalogFetcher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns the number of fetches made
func (m *MockCatalogFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// FetchRecords returns the configured records
func (m *MockCatalogFetcher) FetchRecords(ctx context.Context) (catalog.Records, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return catalog.Records{}, m.err
	}
	return m.records, nil
}

// MockSnapshotStore keeps a catalog snapshot in memory
type MockSnapshotStore struct {
	mu       sync.Mutex
	snapshot *common.CatalogSnapshot
	saves    int
}

// NewMockSnapshotStore creates an empty store
func NewMockSnapshotStore() *MockSnapshotStore {
	return &MockSnapshotStore{}
}

// Load returns the stored snapshot or ErrSnapshotNotFound
func (m *MockSnapshotStore) Load(ctx context.Context) (*common.CatalogSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		return nil, common.ErrSnapshotNotFound
	}
	return m.snapshot, nil
}

// Save replaces the stored snapshot
func (m *MockSnapshotStore) Save(ctx context.Context, snapshot *common.CatalogSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = snapshot
	m.saves++
	return nil
}

// Saves returns the number of snapshots written
func (m *MockSnapshotStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// MockSelectionLoader returns a fixed selection regardless of path
type MockSelectionLoader struct {
	Selection pricing.Selection
	Err       error
	Paths     []string
}

// NewMockSelectionLoader creates a loader returning sel
func NewMockSelectionLoader(sel pricing.Selection) *MockSelectionLoader {
	return &MockSelectionLoader{Selection: sel}
}

// Load returns the configured selection
func (m *MockSelectionLoader) Load(ctx context.Context, path string, c *catalog.Catalog) (pricing.Selection, error) {
	m.Paths = append(m.Paths, path)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Selection, nil
}

// MockReportWriter records projections instead of writing files
type MockReportWriter struct {
	Written []pricing.Projection
	Dirs    []string
}

// NewMockReportWriter creates a recording writer
func NewMockReportWriter() *MockReportWriter {
	return &MockReportWriter{}
}

// Write records the projection and reports one fake file per table
func (m *MockReportWriter) Write(ctx context.Context, dir string, projection pricing.Projection) ([]string, error) {
	m.Written = append(m.Written, projection)
	m.Dirs = append(m.Dirs, dir)
	return []string{dir + "/material_costs.csv", dir + "/recipe_costs.csv", dir + "/natural_resource_costs.csv"}, nil
}
