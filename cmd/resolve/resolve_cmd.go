package resolve

import (
	"fmt"
	"path/filepath"

	"github.com/LegacyCodeHQ/tsdeps/depgraph/typescript"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	styleFound = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	styleMiss  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleKind  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
)

type resolveOptions struct {
	manifestFirst bool
	trace         bool
}

// NewCommand returns a new resolve command instance.
func NewCommand() *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve <from-file> <specifier>",
		Short: "Show which file a specifier resolves to",
		Long: `Resolve one import specifier as if it appeared in <from-file> and print the
file it loads. With --trace every candidate path is listed in the order it was
tried.

Examples:
  tsdeps resolve src/main.ts ./util
  tsdeps resolve src/main.ts react --trace`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&opts.manifestFirst, "manifest-first", false, "Try package.json types/typings before node_modules/<name>.ts guesses")
	cmd.Flags().BoolVarP(&opts.trace, "trace", "t", false, "List every candidate path tried")

	return cmd
}

func runResolve(cmd *cobra.Command, opts *resolveOptions, fromFile, specifier string) error {
	absFrom, err := filepath.Abs(fromFile)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", fromFile, err)
	}

	resolverOpts := typescript.ResolverOptions{ManifestFirst: opts.manifestFirst}
	if opts.trace {
		errOut := cmd.ErrOrStderr()
		kind := typescript.ClassifySpecifier(specifier)
		fmt.Fprintf(errOut, "%s %s\n", styleKind.Render(kind.String()), specifier)
		if typescript.IsCoreModule(specifier) {
			fmt.Fprintln(errOut, styleMiss.Render("core module; looking for declarations in node_modules"))
		}
		resolverOpts.OnProbe = func(candidate string, found bool) {
			if found {
				fmt.Fprintf(errOut, "  %s %s\n", styleFound.Render("✓"), candidate)
			} else {
				fmt.Fprintf(errOut, "  %s %s\n", styleMiss.Render("✗"), styleMiss.Render(candidate))
			}
		}
	}

	resolver := typescript.NewResolver(typescript.OSFileSystem{}, resolverOpts)
	resolved, ok := resolver.Resolve(absFrom, specifier)
	if !ok {
		cmd.SilenceUsage = true
		return fmt.Errorf("cannot resolve %q from %s", specifier, fromFile)
	}

	fmt.Fprintln(cmd.OutOrStdout(), resolved)
	return nil
}
