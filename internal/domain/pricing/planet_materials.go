package pricing

import "math"

// fixedPlanetMaterials are consumed once per building regardless of its area
var fixedPlanetMaterials = map[string]bool{
	"HSE": true,
	"TSH": true,
	"BL":  true,
	"MGC": true,
}

// PlanetMaterialQuantity returns how much of a planet-specific construction
// material a building of the given area needs to build, and how much one
// repair consumes
func PlanetMaterialQuantity(ticker string, area int) (build, repair float64, err error) {
	a := float64(area)
	switch {
	case ticker == "MCG":
		build = 4 * a
	case ticker == "AEF":
		build = math.Ceil(a / 3)
	case ticker == "SEA":
		build = a
	case ticker == "INS":
		build = 10 * a
	case fixedPlanetMaterials[ticker]:
		return 1, 1, nil
	default:
		return 0, 0, &UnknownPlanetMaterialError{Ticker: ticker}
	}
	return build, math.Ceil(repairMaterialFraction * build), nil
}
