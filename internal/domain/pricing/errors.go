package pricing

import "fmt"

// UnpricedMaterialError indicates a cost lookup for a material that has no
// resolved source and therefore no cost state
type UnpricedMaterialError struct {
	Ticker string
}

func (e *UnpricedMaterialError) Error() string {
	return fmt.Sprintf("material %s has no price (no source selected)", e.Ticker)
}

// UnknownPlanetMaterialError indicates a planet build requirement without a
// consumption rule
type UnknownPlanetMaterialError struct {
	Ticker string
}

func (e *UnknownPlanetMaterialError) Error() string {
	return fmt.Sprintf("planet material not recognized: %s", e.Ticker)
}

// UnknownSourceError indicates a selection naming a recipe or planet that is
// not in the catalog
type UnknownSourceError struct {
	Material string
	Source   string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("source %q selected for %s is not in the catalog", e.Source, e.Material)
}

// NotProducedError indicates the selected recipe or planet does not yield the material
type NotProducedError struct {
	Material string
	Source   string
}

func (e *NotProducedError) Error() string {
	return fmt.Sprintf("%s does not produce %s", e.Source, e.Material)
}

// ZeroYieldError indicates a planet resource whose extraction yields nothing per run
type ZeroYieldError struct {
	Material string
	Planet   string
	Output   float64
}

func (e *ZeroYieldError) Error() string {
	return fmt.Sprintf("extraction of %s on %s yields %g per run", e.Material, e.Planet, e.Output)
}

// NonFiniteCostError indicates a projected row whose cost came out NaN or infinite
type NonFiniteCostError struct {
	Key string
}

func (e *NonFiniteCostError) Error() string {
	return fmt.Sprintf("cost of %s is not finite", e.Key)
}

// DivergenceError indicates a cost became NaN or infinite during relaxation
type DivergenceError struct {
	Ticker string
	Sweep  int
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("cost of %s diverged in sweep %d", e.Ticker, e.Sweep)
}

// WageDivergenceError indicates a wage rate became NaN or infinite during relaxation
type WageDivergenceError struct {
	Role      string
	Iteration int
}

func (e *WageDivergenceError) Error() string {
	return fmt.Sprintf("wage rate of %s diverged in iteration %d", e.Role, e.Iteration)
}

// ContractionWarning reports wage equations that fail the row-sum test, so
// the relaxation is not guaranteed to converge. Role is the worst row.
type ContractionWarning struct {
	Role   string
	RowSum float64
}

func (e *ContractionWarning) Error() string {
	return fmt.Sprintf("wage equations are not contractive: row sum for %s is %g (must be < 1)", e.Role, e.RowSum)
}

// NonContractiveError indicates a wage equation whose own coefficient is at
// least one, so the rate cannot be isolated
type NonContractiveError struct {
	Role        string
	Coefficient float64
}

func (e *NonContractiveError) Error() string {
	return fmt.Sprintf("wage equation for %s is not solvable: self coefficient %g >= 1", e.Role, e.Coefficient)
}

// ConvergenceWarning reports a relaxation that hit its iteration cap before
// reaching tolerance. Results are usable but only approximately self-consistent.
type ConvergenceWarning struct {
	Solver     string
	Iterations int
	Achieved   float64
	Tolerance  float64
}

func (e *ConvergenceWarning) Error() string {
	return fmt.Sprintf("%s did not converge after %d iterations: delta %g (tolerance %g)",
		e.Solver, e.Iterations, e.Achieved, e.Tolerance)
}
