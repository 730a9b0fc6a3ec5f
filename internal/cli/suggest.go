package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mfriedel/cabinetry/pkg/catalog"
)

// suggestCommand creates the suggest command: list catalog widths that
// fit a gap.
func (c *CLI) suggestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [gap-width]",
		Short: "Suggest standard cabinet widths that fit a gap",
		Long: `Suggest lists the standard catalog widths that fit the given gap in
ascending order, each with the leftover space the choice would leave.
Gap width is in inches.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gap, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid gap width %q: %w", args[0], err)
			}
			if gap <= 0 {
				return fmt.Errorf("gap width must be positive, got %g", gap)
			}

			suggestions := catalog.SuggestWidths(gap)
			if len(suggestions) == 0 {
				printWarning("No standard cabinet fits a %.2f\" gap (narrowest is %g\")",
					gap, catalog.StandardWidths[0])
				return nil
			}

			printInfo("Standard cabinets fitting a %.2f\" gap:", gap)
			for _, s := range suggestions {
				printDetail("%g\" cabinet (leaves %.2f\" gap)", s.Width, s.Leftover)
			}
			return nil
		},
	}
}
