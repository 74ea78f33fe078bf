package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/prun-pricer/internal/application/catalog/commands"
	"github.com/andrescamacho/prun-pricer/internal/application/catalog/queries"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Game catalog operations",
		Long: `Download and inspect the game catalog (buildings, recipes, materials, planets).

The catalog is fetched from the FNAR REST API once and cached as a
compressed snapshot. Later commands read the snapshot.

Examples:
  pricer catalog fetch
  pricer catalog fetch --refresh
  pricer catalog options --all`,
	}

	cmd.AddCommand(newCatalogFetchCommand())
	cmd.AddCommand(newCatalogOptionsCommand())

	return cmd
}

func newCatalogFetchCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch and cache the catalog",
		Long: `Make sure a catalog snapshot is cached and summarise it.

Without --refresh an existing snapshot is reused.

Examples:
  pricer catalog fetch
  pricer catalog fetch --refresh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(false)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.acquireLock(); err != nil {
				return err
			}

			resp, err := a.mediator.Send(ctx, &commands.RefreshCatalogCommand{Force: refresh})
			if err != nil {
				return err
			}
			result := resp.(*commands.RefreshCatalogResponse)

			origin := "downloaded"
			if result.FromCache {
				origin = "cached"
			}
			fmt.Printf("Catalog %s from %s (%s)\n", origin, result.Source, humanize.Time(result.FetchedAt))
			fmt.Printf("  Buildings:  %s\n", humanize.Comma(int64(result.Buildings)))
			fmt.Printf("  Recipes:    %s\n", humanize.Comma(int64(result.Recipes)))
			fmt.Printf("  Materials:  %s\n", humanize.Comma(int64(result.Materials)))
			fmt.Printf("  Planets:    %s\n", humanize.Comma(int64(result.Planets)))
			if len(result.Issues) > 0 {
				fmt.Printf("  Issues:     %d (run with --verbose to list them)\n", len(result.Issues))
			}
			fmt.Printf("  Cache file: %s\n", a.cfg.Catalog.CachePath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Download the catalog even if a snapshot is cached")

	return cmd
}

func newCatalogOptionsCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List sourcing options per material",
		Long: `List the recipes and planets each material can come from.

By default only materials with more than one option are listed; these are
the entries a selection file has to decide.

Examples:
  pricer catalog options
  pricer catalog options --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.mediator.Send(ctx, &queries.ListMaterialOptionsQuery{All: all})
			if err != nil {
				return err
			}
			options := resp.(*queries.ListMaterialOptionsResponse).Options

			w := newTable(os.Stdout)
			fmt.Fprintln(w, "MATERIAL\tRECIPES\tPLANETS")
			for _, o := range options {
				planets := fmt.Sprintf("%d planets", len(o.Planets))
				if len(o.Planets) <= 3 {
					planets = strings.Join(o.Planets, ", ")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", o.Ticker, strings.Join(o.Recipes, ", "), planets)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\n%d materials\n", len(options))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include materials with a single option")

	return cmd
}
