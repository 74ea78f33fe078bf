package pricerun

import (
	"context"
	"time"
)

// RunRepository defines persistence operations for archived price runs
type RunRepository interface {
	// Create persists a run together with all of its price entries
	Create(ctx context.Context, run *Run) error

	// FindByID loads a run and its entries
	FindByID(ctx context.Context, id RunID) (*Run, error)

	// Latest loads the most recently finished run
	Latest(ctx context.Context) (*Run, error)

	// List returns run headers without entries, newest first
	List(ctx context.Context, opts QueryOptions) ([]*Run, error)
}

// QueryOptions defines filtering and pagination for run listings
type QueryOptions struct {
	Since         *time.Time
	ConvergedOnly bool

	Limit  int
	Offset int
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{Limit: 20}
}
