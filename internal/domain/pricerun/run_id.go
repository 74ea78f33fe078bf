package pricerun

import (
	"fmt"

	"github.com/google/uuid"
)

// RunID identifies one archived price calculation
type RunID struct {
	value string
}

// NewRunID creates a RunID with a generated UUID
func NewRunID() RunID {
	return RunID{value: uuid.New().String()}
}

// ParseRunID creates a RunID from an existing UUID string
func ParseRunID(id string) (RunID, error) {
	if id == "" {
		return RunID{}, fmt.Errorf("run_id cannot be empty")
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return RunID{}, fmt.Errorf("invalid run_id format: %w", err)
	}

	return RunID{value: parsed.String()}, nil
}

// MustParseRunID parses an id known to be valid, such as one read back from the database
func MustParseRunID(id string) RunID {
	rid, err := ParseRunID(id)
	if err != nil {
		panic(err)
	}
	return rid
}

func (r RunID) String() string {
	return r.value
}

// Short returns the first block of the UUID for compact tables
func (r RunID) Short() string {
	if len(r.value) < 8 {
		return r.value
	}
	return r.value[:8]
}

func (r RunID) Equals(other RunID) bool {
	return r.value == other.value
}

// IsZero reports whether the id is uninitialized
func (r RunID) IsZero() bool {
	return r.value == ""
}
