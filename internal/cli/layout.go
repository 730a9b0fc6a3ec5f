package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfriedel/cabinetry/pkg/pipeline"
	"github.com/mfriedel/cabinetry/pkg/plan"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	wall    string  // wall to lay out; empty triggers interactive selection
	offset  float64 // start offset from the wall's left edge, in inches
	minGap  float64 // smallest unexplained gap worth reporting, in inches
	noCache bool    // disable the layout cache
	refresh bool    // recompute even if cached
	asJSON  bool    // print the raw layout result as JSON
}

// layoutCommand creates the layout command: place a wall's cabinet run
// and print the diagnostic report.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout [plan]",
		Short: "Lay out a wall's cabinet run and report gaps and overlaps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.wall, "wall", "w", "", "wall to lay out (interactive selection if omitted)")
	cmd.Flags().Float64Var(&opts.offset, "offset", 0, "start offset from the wall's left edge, in inches")
	cmd.Flags().Float64Var(&opts.minGap, "min-gap", pipeline.DefaultMinGap, "smallest gap worth reporting, in inches")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the layout result as JSON")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, planPath string, opts *layoutOpts) error {
	p, err := plan.Load(planPath)
	if err != nil {
		return err
	}

	wall, err := resolveWall(p, opts.wall)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, cached, err := runner.ComputeLayoutWithCacheInfo(cmd.Context(), p, pipeline.Options{
		Wall:        wall,
		StartOffset: opts.offset,
		MinGap:      opts.minGap,
		Refresh:     opts.refresh,
		Logger:      c.Logger,
	})
	if err != nil {
		return err
	}

	if opts.asJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
	} else {
		fmt.Fprintln(os.Stdout, res.Report())
		printLayoutStats(len(res.Cabinets), len(res.Gaps), cached)
		printNewline()
		printNextStep("Render it", fmt.Sprintf("cabinetry render %s --wall %s", planPath, wall))
	}

	if !res.Success {
		return fmt.Errorf("layout failed with %d error(s)", len(res.Errors))
	}
	return nil
}

// resolveWall picks the wall to operate on: the explicit flag, the only
// declared wall, or an interactive selection.
func resolveWall(p *plan.Plan, flag string) (string, error) {
	if flag != "" {
		if _, ok := p.Walls[flag]; !ok {
			return "", fmt.Errorf("plan declares no wall named %q (walls: %s)",
				flag, strings.Join(p.WallNames(), ", "))
		}
		return flag, nil
	}

	names := p.WallNames()
	if len(names) == 1 {
		return names[0], nil
	}
	return pickWall(p)
}
