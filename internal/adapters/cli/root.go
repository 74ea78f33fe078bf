package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pricer",
		Short: "Labor-backed price calculator for Prosperous Universe",
		Long: `pricer derives the price of every material in the game from the labor
needed to make it. Each material is costed in hours of pioneer, settler,
technician, engineer and scientist work; wage rates between the tiers are
solved from what each tier consumes, and the result is converted to a
single currency.

Examples:
  pricer catalog fetch --refresh
  pricer catalog options
  pricer prices calculate --selection material_selections.json --out reports
  pricer prices calculate --save
  pricer prices runs --limit 5
  pricer prices show RAT DW COF`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/prun-pricer)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewPricesCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
