package housing

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
)

// AreaCap is the base area available for one replicable module
const AreaCap = 500

// NonProductive lists support, habitation and storage buildings that never
// host a priced recipe. They get an empty base setup.
var NonProductive = map[string]bool{
	"PAR": true, "SDP": true, "COG": true, "CRC": true, "HOS": true,
	"UNI": true, "LIB": true, "PWH": true, "LM": true, "EMC": true,
	"WCE": true, "ART": true, "4DA": true, "ADM": true, "PSY": true,
	"SST": true, "INF": true, "ACA": true, "PBH": true, "VRT": true,
	"CM": true, "STO": true,
	"HB1": true, "HB2": true, "HB3": true, "HB4": true, "HB5": true,
	"HBB": true, "HBC": true, "HBM": true, "HBL": true,
}

// BuildingLookup resolves building tickers
type BuildingLookup interface {
	Building(ticker string) (*catalog.Building, bool)
}

// SetupUnit is one line of a base setup with the data needed to cost it
type SetupUnit struct {
	Ticker     string
	Count      int
	AreaCost   int
	BuildCosts []catalog.MaterialAmount
}

// BaseSetup is the largest replicable module of one building type plus the
// habitations its workers need that fits within AreaCap
type BaseSetup struct {
	Building      string
	Units         []SetupUnit
	BuildingCount int
	Area          int

	// Oversized is set when a single building with its housing already exceeds
	// AreaCap. The setup is floored at one building.
	Oversized bool
}

// IsEmpty reports whether the setup holds no buildings (non-productive types)
func (s BaseSetup) IsEmpty() bool {
	return s.BuildingCount == 0
}

// UnknownBuildingError indicates a ticker missing from the building table
type UnknownBuildingError struct {
	Ticker string
}

func (e *UnknownBuildingError) Error() string {
	return fmt.Sprintf("unknown building: %s", e.Ticker)
}

// ResolveBaseSetup finds the largest building count whose module fits AreaCap.
// Counts are scanned upward from one and the scan stops at the first count that
// no longer fits; the scan is bounded by AreaCap/areaCost+1 (AreaCap for
// zero-area buildings), where the building alone must exceed the cap.
func ResolveBaseSetup(ticker string, buildings BuildingLookup) (BaseSetup, error) {
	if NonProductive[ticker] {
		return BaseSetup{Building: ticker}, nil
	}

	building, ok := buildings.Building(ticker)
	if !ok {
		return BaseSetup{}, &UnknownBuildingError{Ticker: ticker}
	}

	upper := AreaCap
	if building.AreaCost > 0 {
		upper = AreaCap/building.AreaCost + 1
	}

	count := 0
	for n := 1; n <= upper; n++ {
		_, area, err := layout(building, n, buildings)
		if err != nil {
			return BaseSetup{}, err
		}
		if area > AreaCap {
			break
		}
		count = n
	}

	oversized := false
	if count == 0 {
		count = 1
		oversized = true
	}

	units, area, err := layout(building, count, buildings)
	if err != nil {
		return BaseSetup{}, err
	}

	return BaseSetup{
		Building:      ticker,
		Units:         units,
		BuildingCount: count,
		Area:          area,
		Oversized:     oversized,
	}, nil
}

// layout lists the habitations for count buildings followed by the buildings
// themselves, and returns the total area they occupy
func layout(building *catalog.Building, count int, buildings BuildingLookup) ([]SetupUnit, int, error) {
	habs, err := Needs(building.Workforce.Scaled(count))
	if err != nil {
		return nil, 0, fmt.Errorf("housing for %s: %w", building.Ticker, err)
	}

	units := make([]SetupUnit, 0, len(habs)+1)
	area := 0
	for _, h := range habs {
		hab, ok := buildings.Building(h.Ticker)
		if !ok {
			return nil, 0, &UnknownBuildingError{Ticker: h.Ticker}
		}
		units = append(units, SetupUnit{
			Ticker:     h.Ticker,
			Count:      h.Count,
			AreaCost:   hab.AreaCost,
			BuildCosts: hab.BuildCosts,
		})
		area += hab.AreaCost * h.Count
	}

	units = append(units, SetupUnit{
		Ticker:     building.Ticker,
		Count:      count,
		AreaCost:   building.AreaCost,
		BuildCosts: building.BuildCosts,
	})
	area += building.AreaCost * count

	return units, area, nil
}

// BuildingEnumerator is a building lookup that can list its tickers in a stable order
type BuildingEnumerator interface {
	BuildingLookup
	BuildingTickers() []string
}

// ResolveAll precomputes the base setup of every building. Buildings without
// a workforce that are not in NonProductive are skipped and returned in skipped.
func ResolveAll(buildings BuildingEnumerator) (setups map[string]BaseSetup, skipped []string, err error) {
	setups = make(map[string]BaseSetup)
	for _, ticker := range buildings.BuildingTickers() {
		setup, err := ResolveBaseSetup(ticker, buildings)
		if errors.Is(err, ErrNoWorkforce) {
			skipped = append(skipped, ticker)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		setups[ticker] = setup
	}
	return setups, skipped, nil
}
