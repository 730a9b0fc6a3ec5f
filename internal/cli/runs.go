package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfriedel/cabinetry/pkg/archive"
)

// runsCommand creates the run archive management command.
func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage archived render runs",
	}

	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsPruneCommand())

	return cmd
}

// runsListCommand creates the "runs list" subcommand.
func (c *CLI) runsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openArchive()
			if err != nil {
				return err
			}

			runs, err := store.List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				printInfo("No archived runs")
				return nil
			}

			for _, run := range runs {
				printRun(run.ID, run.CreatedAt, run.Label, run.Path)
			}
			return nil
		},
	}
}

// runsPruneCommand creates the "runs prune" subcommand.
func (c *CLI) runsPruneCommand() *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest archived runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openArchive()
			if err != nil {
				return err
			}

			removed, err := store.Prune(keep)
			if err != nil {
				return err
			}
			if removed == 0 {
				printInfo("Nothing to prune")
				return nil
			}
			printSuccess("Removed %d run(s), kept %d", removed, keep)
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 10, "number of newest runs to keep")
	return cmd
}

func openArchive() (*archive.Store, error) {
	dir, err := archiveDir()
	if err != nil {
		return nil, fmt.Errorf("get archive dir: %w", err)
	}
	return archive.NewStore(dir)
}
