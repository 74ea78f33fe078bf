package config

// SolverConfig tunes the two fixed-point iterations
type SolverConfig struct {
	MaxSweeps int     `mapstructure:"max_sweeps" validate:"min=1,max=10000"`
	Tolerance float64 `mapstructure:"tolerance" validate:"tolerance"`

	WageMaxIterations int     `mapstructure:"wage_max_iterations" validate:"min=1,max=10000"`
	WageTolerance     float64 `mapstructure:"wage_tolerance" validate:"tolerance"`

	// Fixed pioneer wage; all other wages are expressed relative to it
	WageSeed float64 `mapstructure:"wage_seed" validate:"gt=0"`
}

// OutputConfig controls where reports are written
type OutputConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}
