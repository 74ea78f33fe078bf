package housing

import (
	"errors"

	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
)

const (
	// SingleCapacity is how many workers of its tier a single-tier habitation houses
	SingleCapacity = 100

	// CombinedCapacity is how many workers of each of its two tiers a dual-tier habitation houses
	CombinedCapacity = 75
)

// ErrNoWorkforce is returned when housing is requested for a building without
// any workers. Every productive building employs someone, so this is a data or
// programming error.
var ErrNoWorkforce = errors.New("no workforce to house")

// Unit is a number of identical buildings of one ticker
type Unit struct {
	Ticker string
	Count  int
}

// tierHabitation names the habitations usable for a tier paired with the tier above it
type tierHabitation struct {
	lower    string
	upper    string
	combined string
}

var habitations = [labor.RoleCount]tierHabitation{
	labor.Pioneer:    {lower: "HB1", upper: "HB2", combined: "HBB"},
	labor.Settler:    {lower: "HB2", upper: "HB3", combined: "HBC"},
	labor.Technician: {lower: "HB3", upper: "HB4", combined: "HBM"},
	labor.Engineer:   {lower: "HB4", upper: "HB5", combined: "HBL"},
	labor.Scientist:  {lower: "HB5"},
}

// PairNeeds houses pop1 workers of a tier and pop2 workers of the tier above.
// The smaller population decides how many combined habitations are built; the
// remainder of the larger one goes into single-tier habitations. When the two
// populations are equal the second population is treated as the larger one.
func PairNeeds(pop1, pop2 int, single1, single2, combined string) []Unit {
	if pop2 <= 0 {
		return []Unit{{Ticker: single1, Count: ceilDiv(pop1, SingleCapacity)}}
	}

	larger, smaller, single := pop2, pop1, single2
	if pop1 > pop2 {
		larger, smaller, single = pop1, pop2, single1
	}

	combinedCount := ceilDiv(smaller, CombinedCapacity)
	singles := ceilDiv(larger-combinedCount*CombinedCapacity, SingleCapacity)
	if singles <= 0 {
		return []Unit{{Ticker: combined, Count: combinedCount}}
	}
	return []Unit{
		{Ticker: single, Count: singles},
		{Ticker: combined, Count: combinedCount},
	}
}

// Needs returns the habitations required by a workforce. Only the lowest tier
// with workers and the tier directly above it are housed.
func Needs(w catalog.Workforce) ([]Unit, error) {
	for _, role := range labor.Roles {
		if w[role] == 0 {
			continue
		}
		h := habitations[role]
		upperPop := 0
		if next, ok := role.Next(); ok {
			upperPop = w[next]
		}
		return PairNeeds(w[role], upperPop, h.lower, h.upper, h.combined), nil
	}
	return nil, ErrNoWorkforce
}

// ceilDiv divides rounding up; non-positive numerators yield zero or less
func ceilDiv(n, d int) int {
	if n <= 0 {
		return -((-n) / d)
	}
	return (n + d - 1) / d
}
