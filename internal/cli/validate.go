package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/mfriedel/cabinetry/pkg/layout"
	"github.com/mfriedel/cabinetry/pkg/plan"
)

// validateOpts holds the command-line flags for the validate command.
type validateOpts struct {
	perimeter float64 // expected total wall length; zero skips the check
	tolerance float64 // acceptable measurement deviation, in inches
	minGap    float64 // smallest unexplained gap worth reporting, in inches
}

// validateCommand creates the validate command: check measured wall
// lengths against expectations and dry-run every cabinet run.
func (c *CLI) validateCommand() *cobra.Command {
	opts := validateOpts{
		tolerance: 0.25,
		minGap:    layout.DefaultMinReportableGap,
	}

	cmd := &cobra.Command{
		Use:   "validate [plan]",
		Short: "Validate wall measurements and lay out every run",
		Long: `Validate checks each wall's measured length against its expected length
(when the plan declares one), optionally checks the total perimeter, and
lays out every declared cabinet run, reporting any placement errors.
The exit status reflects the outcome.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], &opts)
		},
	}

	cmd.Flags().Float64Var(&opts.perimeter, "perimeter", 0, "expected total wall length, in inches (0 to skip)")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", opts.tolerance, "acceptable measurement deviation, in inches")
	cmd.Flags().Float64Var(&opts.minGap, "min-gap", opts.minGap, "smallest gap worth reporting, in inches")

	return cmd
}

func runValidate(planPath string, opts *validateOpts) error {
	p, err := plan.Load(planPath)
	if err != nil {
		return err
	}

	issues := 0

	// Measured vs expected wall lengths.
	for _, name := range p.WallNames() {
		w := p.Walls[name]
		if w.Expected == 0 {
			continue
		}
		diff := w.Length - w.Expected
		if math.Abs(diff) <= opts.tolerance {
			printSuccess("%s: %.2f\" matches expected %.2f\"", name, w.Length, w.Expected)
		} else {
			printError("%s: %.2f\" deviates from expected %.2f\" by %+.2f\"", name, w.Length, w.Expected, diff)
			issues++
		}
	}

	// Perimeter check.
	if opts.perimeter > 0 {
		got := p.Perimeter()
		if math.Abs(got-opts.perimeter) <= opts.tolerance {
			printSuccess("perimeter: %.2f\" matches expected %.2f\"", got, opts.perimeter)
		} else {
			printError("perimeter: %.2f\" deviates from expected %.2f\"", got, opts.perimeter)
			issues++
		}
	}

	// Dry-run every declared cabinet run.
	for _, name := range p.WallNames() {
		run := p.Run(name)
		if len(run) == 0 {
			continue
		}

		eng, err := layout.New(p.Walls[name].Length, layout.WithMinReportableGap(opts.minGap))
		if err != nil {
			return err
		}
		res := eng.Layout(run, 0)

		if res.Success {
			printSuccess("%s: %d cabinets placed, %.2f\" used of %.2f\"",
				name, len(res.Cabinets), res.TotalWidth, res.WallLength)
		} else {
			printError("%s: layout failed", name)
			issues += len(res.Errors)
		}
		for _, msg := range res.Errors {
			printDetail("%s", msg)
		}
		for _, msg := range res.Warnings {
			printWarning("%s: %s", name, msg)
		}
	}

	printNewline()
	if issues > 0 {
		return fmt.Errorf("validation failed: %d issue(s)", issues)
	}
	printSuccess("Plan is valid")
	return nil
}
