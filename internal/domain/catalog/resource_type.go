package catalog

import "fmt"

// ResourceType is the physical category of a natural resource
type ResourceType string

const (
	ResourceMineral ResourceType = "MINERAL"
	ResourceGaseous ResourceType = "GASEOUS"
	ResourceLiquid  ResourceType = "LIQUID"
)

// Extraction describes how a natural resource is harvested
type Extraction struct {
	RecipeName   string
	OutputPerRun float64
}

// Extraction returns the extraction recipe and per-run output for a resource of
// this type with the given planet factor. Yields follow the in-game extractor
// rates: EXT 70%/2, COL 60%/4, RIG 70%/5 of a 100-unit base.
func (t ResourceType) Extraction(factor float64) (Extraction, error) {
	switch t {
	case ResourceMineral:
		return Extraction{RecipeName: "EXT:=>", OutputPerRun: 100 * 0.7 / 2 * factor}, nil
	case ResourceGaseous:
		return Extraction{RecipeName: "COL:=>", OutputPerRun: 100 * 0.6 / 4 * factor}, nil
	case ResourceLiquid:
		return Extraction{RecipeName: "RIG:=>", OutputPerRun: 100 * 0.7 / 5 * factor}, nil
	default:
		return Extraction{}, &UnknownResourceTypeError{Type: string(t)}
	}
}

// ExtractionBuildings lists the buildings that host extraction recipes
var ExtractionBuildings = []string{"COL", "EXT", "RIG"}

// UnknownResourceTypeError indicates a resource category with no extraction rule
type UnknownResourceTypeError struct {
	Type string
}

func (e *UnknownResourceTypeError) Error() string {
	return fmt.Sprintf("unknown resource type: %q", e.Type)
}
