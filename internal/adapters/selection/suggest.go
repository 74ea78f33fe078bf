package selection

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

const maxSuggestions = 3

// Suggest ranks candidates by edit distance to value and returns the closest
// few that are within a length-scaled limit
func Suggest(value string, candidates []string) []string {
	type scored struct {
		val  string
		dist int
	}

	results := make([]scored, 0, len(candidates))
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(value, cand)
		if dist > distanceLimit(len(cand)) {
			continue
		}
		results = append(results, scored{val: cand, dist: dist})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].dist == results[j].dist {
			return results[i].val < results[j].val
		}
		return results[i].dist < results[j].dist
	})

	out := make([]string, 0, maxSuggestions)
	for i := 0; i < len(results) && i < maxSuggestions; i++ {
		out = append(out, results[i].val)
	}
	return out
}

func distanceLimit(n int) int {
	switch {
	case n <= 3:
		return 1
	case n <= 8:
		return 2
	default:
		return n / 3
	}
}
