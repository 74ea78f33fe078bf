package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/prun-pricer/internal/application/pricing/commands"
	"github.com/andrescamacho/prun-pricer/internal/application/pricing/queries"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

// NewPricesCommand creates the prices command with subcommands
func NewPricesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Calculate and inspect prices",
		Long: `Calculate labor-backed prices and browse archived runs.

Examples:
  pricer prices calculate
  pricer prices calculate --selection my_choices.yaml --out reports --save
  pricer prices runs
  pricer prices show --run 6f1c... RAT DW`,
	}

	cmd.AddCommand(newPricesCalculateCommand())
	cmd.AddCommand(newPricesRunsCommand())
	cmd.AddCommand(newPricesShowCommand())

	return cmd
}

func newPricesCalculateCommand() *cobra.Command {
	var (
		selectionPath string
		outputDir     string
		save          bool
		top           int
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Run the price calculation",
		Long: `Cost every selected material in labor time, solve the wage rates and
write material_costs.csv, recipe_costs.csv and natural_resource_costs.csv.

With --save the run is archived so it can be browsed with 'prices runs'
and 'prices show'.

Examples:
  pricer prices calculate
  pricer prices calculate --selection material_selections.yaml --out reports
  pricer prices calculate --save --top 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(save)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.acquireLock(); err != nil {
				return err
			}

			if selectionPath == "" {
				selectionPath = a.cfg.Catalog.SelectionPath
			}
			if outputDir == "" {
				outputDir = a.cfg.Output.Dir
			}

			resp, err := a.mediator.Send(ctx, &commands.CalculatePricesCommand{
				SelectionPath: selectionPath,
				OutputDir:     outputDir,
				Persist:       save,
			})
			if err != nil {
				return err
			}
			result := resp.(*commands.CalculatePricesResponse)
			summary := result.Summary

			fmt.Printf("Priced %d materials in %s\n",
				summary.PricedMaterials, summary.FinishedAt.Sub(summary.StartedAt).Round(1e6))
			fmt.Printf("  Equilibrium:  %d sweeps, delta %.3g, converged=%t\n",
				summary.Equilibrium.Sweeps, summary.Equilibrium.Delta, summary.Equilibrium.Converged)
			fmt.Printf("  Wages:        %d iterations, converged=%t\n",
				summary.Wages.Iterations, summary.Wages.Converged)
			fmt.Printf("  Rates:        %s\n", formatRates(result.Projection.Rates))
			fmt.Printf("  Recipes:      %s priced\n", humanize.Comma(int64(len(result.Projection.Recipes))))
			fmt.Printf("  Resources:    %s priced\n", humanize.Comma(int64(len(result.Projection.Resources))))
			if n := len(result.Projection.Skipped); n > 0 {
				fmt.Printf("  Skipped rows: %d\n", n)
			}
			if n := len(summary.SelectionIssues); n > 0 {
				fmt.Printf("  Selection:    %d issues\n", n)
				for _, issue := range summary.SelectionIssues {
					fmt.Printf("    - %s\n", issue)
				}
			}
			for _, warning := range summary.Warnings {
				fmt.Printf("  WARNING: %s\n", warning)
			}
			for _, file := range summary.Reports {
				fmt.Printf("  Wrote %s\n", file)
			}
			if result.RunID != nil {
				fmt.Printf("  Archived as run %s\n", result.RunID)
			}

			if top > 0 {
				fmt.Println()
				return printTopMaterials(result.Projection.Materials, top)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&selectionPath, "selection", "", "Material selection file (JSON or YAML); defaults to catalog.selection_path")
	cmd.Flags().StringVar(&outputDir, "out", "", "Report directory; defaults to output.dir")
	cmd.Flags().BoolVar(&save, "save", false, "Archive the run in the database")
	cmd.Flags().IntVar(&top, "top", 0, "Print the N most expensive materials")

	return cmd
}

func printTopMaterials(materials []pricing.MaterialPrice, n int) error {
	sorted := append([]pricing.MaterialPrice(nil), materials...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Total > sorted[j].Total })
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	w := newTable(os.Stdout)
	fmt.Fprintln(w, "MATERIAL\tSOURCE\tTOTAL\tBASE\tINPUT\tREPAIR\tPROFIT")
	for _, m := range sorted {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", m.Ticker, m.Source,
			formatPrice(m.Total), formatPrice(m.Base), formatPrice(m.Input), formatPrice(m.Repair), formatPrice(m.Profit))
	}
	return w.Flush()
}

func newPricesRunsCommand() *cobra.Command {
	var (
		limit         int
		convergedOnly bool
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived runs",
		Long: `List archived price runs, newest first.

Examples:
  pricer prices runs
  pricer prices runs --limit 5 --converged`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.mediator.Send(ctx, &queries.ListPriceRunsQuery{Limit: limit, ConvergedOnly: convergedOnly})
			if err != nil {
				return err
			}
			runs := resp.(*queries.ListPriceRunsResponse).Runs
			if len(runs) == 0 {
				fmt.Println("No price runs archived")
				return nil
			}

			w := newTable(os.Stdout)
			fmt.Fprintln(w, "RUN\tFINISHED\tDURATION\tSWEEPS\tDELTA\tCONVERGED\tSELECTION")
			for _, run := range runs {
				solver := run.Solver()
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.3g\t%t\t%s\n",
					run.ID().Short(),
					humanize.Time(run.FinishedAt()),
					run.Duration().Round(1e6),
					solver.Sweeps,
					solver.FinalDelta,
					run.Converged(),
					run.SelectionPath(),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	cmd.Flags().BoolVar(&convergedOnly, "converged", false, "Only list runs where both solvers converged")

	return cmd
}

func newPricesShowCommand() *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "show [TICKER...]",
		Short: "Show archived material prices",
		Long: `Show material prices from an archived run. Without --run the latest run
is used; without tickers every material is listed.

Examples:
  pricer prices show RAT DW COF
  pricer prices show --run 6f1c2a3b-... RAT`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.mediator.Send(ctx, &queries.GetMaterialPricesQuery{RunID: runID, Tickers: args})
			if err != nil {
				return err
			}
			result := resp.(*queries.GetMaterialPricesResponse)

			fmt.Printf("Run %s  rates: %s\n\n", result.RunID, formatRates(result.Rates))
			w := newTable(os.Stdout)
			fmt.Fprintln(w, "MATERIAL\tSOURCE\tTOTAL\tBASE\tINPUT\tREPAIR\tPROFIT")
			for _, e := range result.Prices {
				p := e.Price
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", e.Key, e.Source,
					formatPrice(p.Total), formatPrice(p.Base), formatPrice(p.Input), formatPrice(p.Repair), formatPrice(p.Profit))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if len(result.Missing) > 0 {
				fmt.Printf("\nNot priced in this run: %v\n", result.Missing)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Run ID (default: latest run)")

	return cmd
}
