package pricerun

import "fmt"

// ErrInvalidRun reports a run that violates an archive invariant
type ErrInvalidRun struct {
	Field  string
	Reason string
}

func (e *ErrInvalidRun) Error() string {
	return fmt.Sprintf("invalid price run: %s - %s", e.Field, e.Reason)
}

// ErrRunNotFound is returned when no archived run matches a lookup
type ErrRunNotFound struct {
	ID string
}

func (e *ErrRunNotFound) Error() string {
	if e.ID == "" {
		return "no price runs archived"
	}
	return fmt.Sprintf("price run not found: id=%s", e.ID)
}
