package graph

import (
	"fmt"

	"github.com/LegacyCodeHQ/tsdeps/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/tsdeps/depgraph"
	"github.com/spf13/cobra"
)

type graphOptions struct {
	project        ProjectOptions
	outputFormat   string
	showUnresolved bool
	generateURL    bool
	betweenFiles   []string
}

// NewCommand returns a new graph command instance.
func NewCommand() *cobra.Command {
	opts := &graphOptions{}

	cmd := &cobra.Command{
		Use:   "graph <entry>",
		Short: "Render the import graph reachable from an entry file",
		Long: `Render the import graph reachable from a TypeScript entry file.

Imports are resolved the way Node.js and TypeScript do it: relative and
absolute paths, node_modules in every ancestor directory, @types packages and
package.json "types"/"typings" entries.

Examples:
  tsdeps graph src/main.ts                         # DOT on stdout
  tsdeps graph src/main.ts -f mermaid              # Mermaid flowchart
  tsdeps graph src/main.ts -u                      # include unresolved imports
  tsdeps graph src/main.ts --between a.ts,b.ts     # only files on paths between a.ts and b.ts
  tsdeps graph src/main.ts -f dot --url            # GraphvizOnline link`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, opts, args[0])
		},
	}

	opts.project.AddFlags(cmd)
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", formatters.OutputFormatDOT.String(),
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().BoolVarP(&opts.showUnresolved, "unresolved", "u", false, "Show specifiers that resolved to no file")
	cmd.Flags().BoolVar(&opts.generateURL, "url", false, "Print a visualization URL instead of the graph (dot, mermaid)")
	cmd.Flags().StringSliceVar(&opts.betweenFiles, "between", nil, "Keep only files on paths between these files (comma-separated)")

	return cmd
}

func runGraph(cmd *cobra.Command, opts *graphOptions, entry string) error {
	project, err := OpenProject(cmd, &opts.project, entry)
	if err != nil {
		return err
	}

	format, showUnresolved := project.DisplayOptions(cmd, opts.outputFormat, opts.showUnresolved)
	formatter, err := formatters.NewFormatter(format)
	if err != nil {
		return err
	}

	g, err := project.Load(cmd.Context())
	if err != nil {
		return err
	}
	defer g.Close()

	adjacency := g.DependencyGraph()
	if len(opts.betweenFiles) > 0 {
		adjacency, err = filterBetween(project.RootDir, adjacency, opts.betweenFiles)
		if err != nil {
			return err
		}
	}

	output, err := project.Render(formatter, format, g, adjacency, showUnresolved)
	if err != nil {
		return err
	}

	if opts.generateURL {
		if generator, ok := formatter.(formatters.URLGenerator); ok {
			if urlStr, ok := generator.GenerateURL(output); ok {
				fmt.Fprintln(cmd.OutOrStdout(), urlStr)
				return nil
			}
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: URL generation is not supported for %s format\n\n", format)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

// filterBetween keeps the files lying on import paths between the given files.
// Relative paths are taken from rootDir.
func filterBetween(rootDir string, adjacency depgraph.DependencyGraph, betweenFiles []string) (depgraph.DependencyGraph, error) {
	resolver, err := NewPathResolver(rootDir, true)
	if err != nil {
		return nil, err
	}

	resolvedPaths, missingPaths := resolveAndValidatePaths(resolver, betweenFiles, adjacency)
	if len(missingPaths) > 0 {
		return nil, fmt.Errorf("files not found in graph: %v", missingPaths)
	}
	if len(resolvedPaths) < 2 {
		return nil, fmt.Errorf("at least 2 files required for --between, found %d in graph", len(resolvedPaths))
	}

	return depgraph.FindPathNodes(adjacency, resolvedPaths)
}

// resolveAndValidatePaths resolves file paths to absolute paths and validates they exist in the graph.
// Returns the list of resolved paths that exist in the graph and the list of paths that were not found.
func resolveAndValidatePaths(resolver PathResolver, paths []string, graph depgraph.DependencyGraph) (resolved []string, missing []string) {
	for _, p := range paths {
		absPath, err := resolver.Resolve(RawPath(p))
		if err != nil {
			missing = append(missing, p)
			continue
		}

		candidate := resolveSymlinks(absPath.String())
		if _, ok := graph[candidate]; ok {
			resolved = append(resolved, candidate)
		} else {
			missing = append(missing, p)
		}
	}
	return
}
