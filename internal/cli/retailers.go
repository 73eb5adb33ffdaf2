package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gramidt/vibe-card-empire/internal/engine"
	"github.com/gramidt/vibe-card-empire/internal/game"
)

// NewRetailersCommand creates the retailers command: the wholesale catalog,
// optionally narrowed by a fuzzy name query.
func NewRetailersCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "retailers [query]",
		Short: "List wholesale retailers and their base card costs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			market := engine.NewMarket()

			retailers := market.Retailers()
			if len(args) == 1 {
				retailers = market.Match(args[0])
				if len(retailers) == 0 {
					return NewExitError(ExitFailure, "no retailer matches "+args[0])
				}
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if opts.Format == "json" {
				return formatter.Success(retailers)
			}
			for _, r := range retailers {
				denoms := make([]int, 0, len(r.Catalog))
				for d := range r.Catalog {
					denoms = append(denoms, d)
				}
				sort.Ints(denoms)
				for _, denom := range denoms {
					face := game.Cents(denom) * 100
					fmt.Fprintf(cmd.OutOrStdout(), "%-12s $%d card, wholesale %s (face %s)\n",
						r.Name, denom, r.Catalog[denom], face)
				}
			}
			return nil
		},
	}
}
