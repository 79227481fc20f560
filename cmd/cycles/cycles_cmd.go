package cycles

import (
	"fmt"

	"github.com/LegacyCodeHQ/tsdeps/cmd/graph"
	"github.com/LegacyCodeHQ/tsdeps/depgraph"
	"github.com/spf13/cobra"
)

// NewCommand returns a new cycles command instance.
func NewCommand() *cobra.Command {
	opts := &graph.ProjectOptions{}

	cmd := &cobra.Command{
		Use:   "cycles <entry>",
		Short: "List import cycles reachable from an entry file",
		Long: `List every import cycle among the files reachable from an entry file.

Each cycle is printed as the set of files that import each other directly or
indirectly. The command exits with an error when at least one cycle exists, so
it can guard CI pipelines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCycles(cmd, opts, args[0])
		},
	}

	opts.AddFlags(cmd)
	return cmd
}

func runCycles(cmd *cobra.Command, opts *graph.ProjectOptions, entry string) error {
	project, err := graph.OpenProject(cmd, opts, entry)
	if err != nil {
		return err
	}
	g, err := project.Load(cmd.Context())
	if err != nil {
		return err
	}
	defer g.Close()

	cycles, err := depgraph.Cycles(g.DependencyGraph())
	if err != nil {
		return fmt.Errorf("failed to find cycles: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(cycles) == 0 {
		fmt.Fprintln(out, "No import cycles found.")
		return nil
	}

	for i, cycle := range cycles {
		fmt.Fprintf(out, "Cycle %d (%d files):\n", i+1, len(cycle))
		for _, file := range cycle {
			fmt.Fprintf(out, "  %s\n", project.Rel(file))
		}
	}

	cmd.SilenceUsage = true
	return fmt.Errorf("found %d import cycle(s)", len(cycles))
}
