package pricing

import (
	"fmt"
	"math"

	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
)

// Basket is what 100 workers of one role consume per day
type Basket []catalog.MaterialAmount

// Baskets holds one consumption basket per role
type Baskets [labor.RoleCount]Basket

// DefaultBaskets are the in-game consumable needs of each population tier
var DefaultBaskets = Baskets{
	labor.Pioneer: {
		{Ticker: "COF", Amount: 0.5},
		{Ticker: "DW", Amount: 4},
		{Ticker: "RAT", Amount: 4},
		{Ticker: "OVE", Amount: 0.5},
		{Ticker: "PWO", Amount: 0.2},
	},
	labor.Settler: {
		{Ticker: "DW", Amount: 5},
		{Ticker: "RAT", Amount: 6},
		{Ticker: "KOM", Amount: 1},
		{Ticker: "EXO", Amount: 0.5},
		{Ticker: "REP", Amount: 0.2},
		{Ticker: "PT", Amount: 0.5},
	},
	labor.Technician: {
		{Ticker: "DW", Amount: 7.5},
		{Ticker: "RAT", Amount: 7},
		{Ticker: "ALE", Amount: 1},
		{Ticker: "MED", Amount: 0.5},
		{Ticker: "SC", Amount: 0.1},
		{Ticker: "HMS", Amount: 0.5},
		{Ticker: "SCN", Amount: 0.1},
	},
	labor.Engineer: {
		{Ticker: "DW", Amount: 10},
		{Ticker: "MED", Amount: 0.5},
		{Ticker: "GIN", Amount: 1},
		{Ticker: "FIM", Amount: 7},
		{Ticker: "VG", Amount: 0.2},
		{Ticker: "HSS", Amount: 0.2},
		{Ticker: "PDA", Amount: 0.1},
	},
	labor.Scientist: {
		{Ticker: "DW", Amount: 10},
		{Ticker: "MED", Amount: 0.5},
		{Ticker: "WIN", Amount: 1},
		{Ticker: "MEA", Amount: 7},
		{Ticker: "NST", Amount: 0.1},
		{Ticker: "LC", Amount: 0.2},
		{Ticker: "WS", Amount: 0.1},
	},
}

// TotalLookup resolves the converged total cost of a material
type TotalLookup interface {
	Total(ticker string) (labor.Vector, error)
}

// WageOptions tune the wage relaxation
type WageOptions struct {
	MaxIterations int
	Tolerance     float64

	// Seed is the fixed pioneer rate
	Seed float64

	// Start is the initial value of every other rate
	Start float64
}

// DefaultWageOptions returns the standard solver settings
func DefaultWageOptions() WageOptions {
	return WageOptions{
		MaxIterations: DefaultWageMaxIterations,
		Tolerance:     DefaultWageTolerance,
		Seed:          DefaultWageSeed,
		Start:         DefaultWageStart,
	}
}

// Wages is the solved exchange rate of each role
type Wages struct {
	Rates      labor.Vector
	Iterations int
	Delta      float64
	Converged  bool

	// Coefficients[r][s] is how much role-s time one unit of role-r time costs
	// to sustain
	Coefficients [labor.RoleCount]labor.Vector

	// Contractive reports whether the relaxed equations pass the row-sum test
	Contractive bool

	// Contraction is set when Contractive is false
	Contraction *ContractionWarning

	// Residuals holds rate_r*(1-c[r][r]) - sum(rate_s*c[r][s]) per relaxed role.
	// The pioneer entry is zero; its rate is fixed rather than solved.
	Residuals labor.Vector

	Warning *ConvergenceWarning
}

// WageCoefficients converts the baskets into per-capita, per-millisecond labor costs
func WageCoefficients(costs TotalLookup, baskets Baskets) ([labor.RoleCount]labor.Vector, error) {
	var coef [labor.RoleCount]labor.Vector
	for _, role := range labor.Roles {
		var basket labor.Vector
		for _, item := range baskets[role] {
			total, err := costs.Total(item.Ticker)
			if err != nil {
				return coef, fmt.Errorf("%s basket: %w", role, err)
			}
			basket = basket.Add(total.Scale(item.Amount))
		}
		coef[role] = basket.Scale(1.0 / 100 / DayMs)
	}
	return coef, nil
}

// SolveWages fixes the pioneer rate at the seed and relaxes the other four
// rates in tier order until the largest change drops below the tolerance.
// Each role's rate must pay for the labor embodied in its basket:
// rate_r = sum over s of rate_s * c[r][s].
func SolveWages(costs TotalLookup, baskets Baskets, opts WageOptions) (Wages, error) {
	coef, err := WageCoefficients(costs, baskets)
	if err != nil {
		return Wages{}, err
	}

	w := Wages{Coefficients: coef, Contractive: true}
	worst := 0.0
	for _, role := range labor.Roles[1:] {
		self := coef[role][role]
		if 1-self <= 0 {
			return w, &NonContractiveError{Role: role.String(), Coefficient: self}
		}
		offDiagonal := 0.0
		for _, s := range labor.Roles[1:] {
			if s != role {
				offDiagonal += math.Abs(coef[role][s])
			}
		}
		rowSum := offDiagonal / (1 - self)
		if rowSum >= 1 {
			w.Contractive = false
			if rowSum > worst {
				worst = rowSum
				w.Contraction = &ContractionWarning{Role: role.String(), RowSum: rowSum}
			}
		}
	}

	rates := labor.Vector{}
	for i := range rates {
		rates[i] = opts.Start
	}
	rates[labor.Pioneer] = opts.Seed

	for n := 1; n <= opts.MaxIterations; n++ {
		previous := rates
		for _, role := range labor.Roles[1:] {
			rates[role] = relax(coef[role], rates, role)
			if math.IsNaN(rates[role]) || math.IsInf(rates[role], 0) {
				w.Iterations = n
				w.Rates = rates
				return w, &WageDivergenceError{Role: role.String(), Iteration: n}
			}
		}

		w.Iterations = n
		w.Delta = rates.MaxAbsDiff(previous)
		if w.Delta < opts.Tolerance {
			w.Converged = true
			break
		}
	}

	w.Rates = rates
	for _, role := range labor.Roles[1:] {
		w.Residuals[role] = residual(coef[role], rates, role)
	}
	if !w.Converged {
		w.Warning = &ConvergenceWarning{
			Solver:     "wages",
			Iterations: w.Iterations,
			Achieved:   w.Delta,
			Tolerance:  opts.Tolerance,
		}
	}
	return w, nil
}

// relax solves one equation for its own role's rate given the others
func relax(row labor.Vector, rates labor.Vector, role labor.Role) float64 {
	sum := 0.0
	for _, s := range labor.Roles {
		if s != role {
			sum += rates[s] * row[s]
		}
	}
	return sum / (1 - row[role])
}

func residual(row labor.Vector, rates labor.Vector, role labor.Role) float64 {
	sum := 0.0
	for _, s := range labor.Roles {
		if s != role {
			sum += rates[s] * row[s]
		}
	}
	return rates[role]*(1-row[role]) - sum
}
