package pricing

// Time units. Recipe durations in the catalog are milliseconds.
const (
	DayMs = 24 * 60 * 60 * 1000

	// RepairPeriodDays is how often a building is repaired
	RepairPeriodDays = 60

	// BuildingLifetimeDays is the period over which a full rebuild would be spent
	BuildingLifetimeDays = 180

	// ROIPeriodDays is the window in which a base must pay back its build cost
	ROIPeriodDays = 30

	RepairPeriodMs = RepairPeriodDays * DayMs
	ROIPeriodMs    = ROIPeriodDays * DayMs
)

// repairMaterialFraction is the share of build materials consumed by one repair
const repairMaterialFraction = float64(RepairPeriodDays) / BuildingLifetimeDays

// Equilibrium defaults
const (
	DefaultMaxSweeps = 100
	DefaultTolerance = 0.001
)

// Wage solver defaults
const (
	DefaultWageMaxIterations = 100
	DefaultWageTolerance     = 1e-16

	// DefaultWageSeed fixes the pioneer rate; every other rate scales with it
	DefaultWageSeed = 2.0e-7

	// DefaultWageStart is the initial guess for the relaxed rates
	DefaultWageStart = 500
)

// recipePlanetMaterials are the planet materials assumed for recipe production
var recipePlanetMaterials = []string{"MCG"}
