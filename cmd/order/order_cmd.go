package order

import (
	"errors"
	"fmt"

	"github.com/LegacyCodeHQ/tsdeps/cmd/graph"
	"github.com/LegacyCodeHQ/tsdeps/depgraph"
	"github.com/spf13/cobra"
)

// NewCommand returns a new order command instance.
func NewCommand() *cobra.Command {
	opts := &graph.ProjectOptions{}

	cmd := &cobra.Command{
		Use:   "order <entry>",
		Short: "Print reachable files with dependencies first",
		Long: `Print every file reachable from an entry file so that each file appears
after all the files it imports. Files that do not depend on each other are
listed alphabetically. Import cycles make an order impossible and are reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd, opts, args[0])
		},
	}

	opts.AddFlags(cmd)
	return cmd
}

func runOrder(cmd *cobra.Command, opts *graph.ProjectOptions, entry string) error {
	project, err := graph.OpenProject(cmd, opts, entry)
	if err != nil {
		return err
	}
	g, err := project.Load(cmd.Context())
	if err != nil {
		return err
	}
	defer g.Close()

	files, err := depgraph.TopologicalOrder(g.DependencyGraph())
	if errors.Is(err, depgraph.ErrCyclic) {
		cmd.SilenceUsage = true
		return fmt.Errorf("%w (run 'tsdeps cycles %s' to list them)", err, entry)
	}
	if err != nil {
		return err
	}

	for _, file := range files {
		fmt.Fprintln(cmd.OutOrStdout(), project.Rel(file))
	}
	return nil
}
