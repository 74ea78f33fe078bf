package pricerun

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

// EntryKind tells which report table an archived price belongs to
type EntryKind string

const (
	EntryMaterial EntryKind = "material"
	EntryRecipe   EntryKind = "recipe"
	EntryResource EntryKind = "resource"
)

func (k EntryKind) IsValid() bool {
	switch k {
	case EntryMaterial, EntryRecipe, EntryResource:
		return true
	}
	return false
}

// Entry is one priced row. Key is the material ticker, recipe name or
// "planet/ticker"; Source is the selected recipe or planet for materials.
type Entry struct {
	Kind   EntryKind
	Key    string
	Source string
	Price  pricing.Price
}

// Solver captures how both fixed-point solves ended
type Solver struct {
	Sweeps         int
	FinalDelta     float64
	Converged      bool
	WageIterations int
	WageConverged  bool
	Rates          labor.Vector

	// WageContractive is false when the wage equations failed the row-sum test
	WageContractive bool
}

// Run is the aggregate root of an archived price calculation
type Run struct {
	id            RunID
	startedAt     time.Time
	finishedAt    time.Time
	selectionPath string
	solver        Solver
	entries       []Entry
}

// NewRun builds a run from a finished calculation
func NewRun(startedAt, finishedAt time.Time, selectionPath string, solver Solver, entries []Entry) (*Run, error) {
	r := &Run{
		id:            NewRunID(),
		startedAt:     startedAt,
		finishedAt:    finishedAt,
		selectionPath: selectionPath,
		solver:        solver,
		entries:       entries,
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	r.sortEntries()
	return r, nil
}

// ReconstructRun rebuilds a run from persistence without validation
func ReconstructRun(id RunID, startedAt, finishedAt time.Time, selectionPath string, solver Solver, entries []Entry) *Run {
	r := &Run{
		id:            id,
		startedAt:     startedAt,
		finishedAt:    finishedAt,
		selectionPath: selectionPath,
		solver:        solver,
		entries:       entries,
	}
	r.sortEntries()
	return r
}

// EntriesFromProjection flattens a projection into archive rows
func EntriesFromProjection(p pricing.Projection) []Entry {
	entries := make([]Entry, 0, len(p.Materials)+len(p.Recipes)+len(p.Resources))
	for _, m := range p.Materials {
		entries = append(entries, Entry{Kind: EntryMaterial, Key: m.Ticker, Source: m.Source, Price: m.Price})
	}
	for _, r := range p.Recipes {
		entries = append(entries, Entry{Kind: EntryRecipe, Key: r.Recipe, Price: r.Price})
	}
	for _, r := range p.Resources {
		entries = append(entries, Entry{Kind: EntryResource, Key: r.PlanetID + "/" + r.Material, Source: r.PlanetID, Price: r.Price})
	}
	return entries
}

// Validate checks the archive invariants
func (r *Run) Validate() error {
	if r.startedAt.IsZero() {
		return &ErrInvalidRun{Field: "started_at", Reason: "start time is required"}
	}
	if r.finishedAt.Before(r.startedAt) {
		return &ErrInvalidRun{Field: "finished_at", Reason: "run cannot finish before it starts"}
	}
	if r.solver.Sweeps < 0 || r.solver.WageIterations < 0 {
		return &ErrInvalidRun{Field: "solver", Reason: "iteration counts cannot be negative"}
	}
	if !r.solver.Rates.IsFinite() {
		return &ErrInvalidRun{Field: "rates", Reason: "wage rates must be finite"}
	}

	seen := make(map[string]bool, len(r.entries))
	for _, e := range r.entries {
		if !e.Kind.IsValid() {
			return &ErrInvalidRun{Field: "entries", Reason: fmt.Sprintf("invalid entry kind: %s", e.Kind)}
		}
		if e.Key == "" {
			return &ErrInvalidRun{Field: "entries", Reason: "entry key cannot be empty"}
		}
		k := string(e.Kind) + ":" + e.Key
		if seen[k] {
			return &ErrInvalidRun{Field: "entries", Reason: fmt.Sprintf("duplicate %s entry %s", e.Kind, e.Key)}
		}
		seen[k] = true
		if math.IsNaN(e.Price.Total) || math.IsInf(e.Price.Total, 0) {
			return &ErrInvalidRun{Field: "entries", Reason: fmt.Sprintf("%s price is not finite", e.Key)}
		}
	}
	return nil
}

func (r *Run) sortEntries() {
	sort.SliceStable(r.entries, func(i, j int) bool {
		if r.entries[i].Kind != r.entries[j].Kind {
			return r.entries[i].Kind < r.entries[j].Kind
		}
		return r.entries[i].Key < r.entries[j].Key
	})
}

// Getters

func (r *Run) ID() RunID               { return r.id }
func (r *Run) StartedAt() time.Time    { return r.startedAt }
func (r *Run) FinishedAt() time.Time   { return r.finishedAt }
func (r *Run) SelectionPath() string   { return r.selectionPath }
func (r *Run) Solver() Solver          { return r.solver }
func (r *Run) Duration() time.Duration { return r.finishedAt.Sub(r.startedAt) }

// Entries returns every archived row, or only those of the given kind when kind is non-empty
func (r *Run) Entries(kind EntryKind) []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if kind == "" || e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Entry looks up a single archived row
func (r *Run) Entry(kind EntryKind, key string) (Entry, bool) {
	for _, e := range r.entries {
		if e.Kind == kind && e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Converged reports whether both solvers reached their tolerance
func (r *Run) Converged() bool {
	return r.solver.Converged && r.solver.WageConverged
}
