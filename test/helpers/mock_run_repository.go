package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/andrescamacho/prun-pricer/internal/domain/pricerun"
)

// MockRunRepository is an in-memory RunRepository
type MockRunRepository struct {
	mu   sync.RWMutex
	runs []*pricerun.Run
}

// NewMockRunRepository creates an empty repository
func NewMockRunRepository() *MockRunRepository {
	return &MockRunRepository{}
}

// Create stores a run
func (m *MockRunRepository) Create(ctx context.Context, run *pricerun.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

// FindByID retrieves a run by ID
func (m *MockRunRepository) FindByID(ctx context.Context, id pricerun.RunID) (*pricerun.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, run := range m.runs {
		if run.ID().Equals(id) {
			return run, nil
		}
	}
	return nil, &pricerun.ErrRunNotFound{ID: id.String()}
}

// Latest returns the most recently finished run
func (m *MockRunRepository) Latest(ctx context.Context) (*pricerun.Run, error) {
	runs := m.sorted()
	if len(runs) == 0 {
		return nil, &pricerun.ErrRunNotFound{}
	}
	return runs[0], nil
}

// List returns runs newest first, honoring the filters and paging
func (m *MockRunRepository) List(ctx context.Context, opts pricerun.QueryOptions) ([]*pricerun.Run, error) {
	var out []*pricerun.Run
	for _, run := range m.sorted() {
		if opts.ConvergedOnly && !run.Converged() {
			continue
		}
		if opts.Since != nil && run.FinishedAt().Before(*opts.Since) {
			continue
		}
		out = append(out, run)
	}
	if opts.Offset >= len(out) {
		return []*pricerun.Run{}, nil
	}
	out = out[opts.Offset:]
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// Count returns the number of stored runs
func (m *MockRunRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

func (m *MockRunRepository) sorted() []*pricerun.Run {
	m.mu.RLock()
	defer m.mu.RUnlock()
	runs := append([]*pricerun.Run(nil), m.runs...)
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].FinishedAt().After(runs[j].FinishedAt())
	})
	return runs
}
