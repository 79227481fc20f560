package cmd

import (
	"context"
	"os"

	"github.com/LegacyCodeHQ/tsdeps/cmd/cycles"
	"github.com/LegacyCodeHQ/tsdeps/cmd/graph"
	"github.com/LegacyCodeHQ/tsdeps/cmd/order"
	"github.com/LegacyCodeHQ/tsdeps/cmd/resolve"
	"github.com/LegacyCodeHQ/tsdeps/cmd/watch"
	"github.com/LegacyCodeHQ/tsdeps/internal/logging"
	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// newRootCommand builds the command tree.
func newRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "tsdeps",
		Short: "Analyze and visualize TypeScript import graphs",
		Long: `tsdeps follows the imports of a TypeScript entry file the way Node.js and
TypeScript resolve them and reports the resulting file graph: rendered as
DOT, Mermaid, JSON, text or SVG, checked for cycles, or ordered for builds.

Use 'tsdeps --help' to see all available commands, or 'tsdeps <command> --help'
for detailed information about a specific command.`,
		Version:       version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logging.New(cmd.ErrOrStderr(), verbose)))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log loading and resolution details to stderr")

	rootCmd.AddCommand(graph.NewCommand())
	rootCmd.AddCommand(cycles.NewCommand())
	rootCmd.AddCommand(order.NewCommand())
	rootCmd.AddCommand(resolve.NewCommand())
	rootCmd.AddCommand(watch.NewCommand())

	// Initialize annotations for version template
	rootCmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
