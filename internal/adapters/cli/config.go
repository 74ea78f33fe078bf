package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/prun-pricer/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Inspect pricer configuration.

Configuration is loaded from multiple sources with priority:
1. Environment variables (PRICER_* prefix, DATABASE_URL)
2. Config file (config.yaml)
3. Default values

Examples:
  pricer config show
  pricer --config configs/prod.yaml config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			fmt.Println("Pricer Configuration")
			fmt.Println("====================")

			fmt.Println("\nCatalog:")
			fmt.Printf("  Base URL:         %s\n", cfg.Catalog.BaseURL)
			fmt.Printf("  Timeout:          %s\n", cfg.Catalog.Timeout)
			fmt.Printf("  Rate Limit:       %d req/s (burst: %d)\n",
				cfg.Catalog.RateLimit.Requests, cfg.Catalog.RateLimit.Burst)
			fmt.Printf("  Max Retries:      %d (backoff %s)\n", cfg.Catalog.Retry.MaxAttempts, cfg.Catalog.Retry.BackoffBase)
			fmt.Printf("  Cache:            %s\n", cfg.Catalog.CachePath)
			fmt.Printf("  Selection:        %s\n", cfg.Catalog.SelectionPath)

			fmt.Println("\nSolver:")
			fmt.Printf("  Max Sweeps:       %d\n", cfg.Solver.MaxSweeps)
			fmt.Printf("  Tolerance:        %g\n", cfg.Solver.Tolerance)
			fmt.Printf("  Wage Iterations:  %d\n", cfg.Solver.WageMaxIterations)
			fmt.Printf("  Wage Tolerance:   %g\n", cfg.Solver.WageTolerance)
			fmt.Printf("  Pioneer Wage:     %g\n", cfg.Solver.WageSeed)

			fmt.Println("\nOutput:")
			fmt.Printf("  Directory:        %s\n", cfg.Output.Dir)

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
				fmt.Printf("  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)
			}

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Printf("  Textfile:         %s\n", cfg.Metrics.TextfilePath)
			}

			return nil
		},
	}

	return cmd
}
