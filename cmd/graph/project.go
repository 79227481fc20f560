package graph

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/LegacyCodeHQ/tsdeps/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/tsdeps/depgraph"
	"github.com/LegacyCodeHQ/tsdeps/depgraph/typescript"
	"github.com/LegacyCodeHQ/tsdeps/internal/config"
	"github.com/LegacyCodeHQ/tsdeps/internal/logging"
	"github.com/spf13/cobra"
)

// ProjectOptions are the loading flags shared by every command that builds a graph.
type ProjectOptions struct {
	RootDir           string
	ConfigPath        string
	Workers           int
	ManifestFirst     bool
	AllowSyntaxErrors bool
}

// AddFlags registers the loading flags on cmd.
func (o *ProjectOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.RootDir, "root", "r", "", "Project directory the entry must live in (default: current directory)")
	cmd.Flags().StringVar(&o.ConfigPath, "config", "", "Path to a "+config.FileName+" file (default: nearest one above the entry)")
	cmd.Flags().IntVarP(&o.Workers, "workers", "w", 0, "Files parsed in parallel per breadth-first level (1 loads sequentially)")
	cmd.Flags().BoolVar(&o.ManifestFirst, "manifest-first", false, "Try package.json types/typings before node_modules/<name>.ts guesses")
	cmd.Flags().BoolVar(&o.AllowSyntaxErrors, "lenient", false, "Keep files with syntax errors instead of failing the load")
}

// Project is an entry file with its effective settings.
type Project struct {
	Entry      string
	RootDir    string
	Config     config.Config
	ConfigPath string
}

// OpenProject resolves entry against the project directory and merges the
// project file with the flags the user set explicitly.
func OpenProject(cmd *cobra.Command, opts *ProjectOptions, entry string) (*Project, error) {
	resolver, err := NewPathResolver(opts.RootDir, false)
	if err != nil {
		return nil, err
	}
	entryPath, err := resolver.Resolve(RawPath(entry))
	if err != nil {
		return nil, err
	}

	cfg, cfgPath, err := config.Resolve(opts.ConfigPath, filepath.Dir(entryPath.String()))
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		if opts.Workers < 0 {
			return nil, fmt.Errorf("--workers must not be negative, got %d", opts.Workers)
		}
		cfg.Workers = opts.Workers
	}
	if flags.Changed("manifest-first") {
		cfg.ManifestFirst = opts.ManifestFirst
	}
	if flags.Changed("lenient") {
		cfg.AllowSyntaxErrors = opts.AllowSyntaxErrors
	}

	if cfgPath != "" {
		logging.FromContext(cmd.Context()).Debug("using project file", "path", cfgPath)
	}

	return &Project{
		Entry:      entryPath.String(),
		RootDir:    resolver.BaseDir().String(),
		Config:     cfg,
		ConfigPath: cfgPath,
	}, nil
}

// Load walks the project's imports from its entry.
func (p *Project) Load(ctx context.Context) (*depgraph.Graph, error) {
	logger := logging.FromContext(ctx)
	loader := depgraph.NewTypeScriptLoader(typescript.OSFileSystem{}, depgraph.TypeScriptOptions{
		Resolver:          typescript.ResolverOptions{ManifestFirst: p.Config.ManifestFirst},
		AllowSyntaxErrors: p.Config.AllowSyntaxErrors,
	}, depgraph.LoaderOptions{
		Workers: p.Config.Workers,
		Logger:  logger,
	})

	progress := logging.NewProgress(logger)
	g, err := loader.Load(ctx, p.Entry)
	if err != nil {
		return nil, fmt.Errorf("failed to load dependency graph: %w", err)
	}
	progress.Done("loaded dependency graph", "files", len(g.Parsed))
	return g, nil
}

// DisplayOptions picks the output format and whether unresolved specifiers
// are shown, preferring flags set on cmd over the project file.
func (p *Project) DisplayOptions(cmd *cobra.Command, format string, showUnresolved bool) (string, bool) {
	if !cmd.Flags().Changed("format") {
		format = p.Config.Format
	}
	if !cmd.Flags().Changed("unresolved") {
		showUnresolved = p.Config.ShowUnresolved
	}
	return format, showUnresolved
}

// Render formats adjacency, a view of g, with formatter. Formats drawn as
// pictures get a label naming the project, the entry and the file count.
func (p *Project) Render(formatter formatters.Formatter, format string, g *depgraph.Graph, adjacency depgraph.DependencyGraph, showUnresolved bool) (string, error) {
	fileGraph, err := formatters.NewFileGraph(g.Root, adjacency, g.Unresolved())
	if err != nil {
		return "", fmt.Errorf("failed to analyze dependency graph: %w", err)
	}

	renderOpts := formatters.RenderOptions{ShowUnresolved: showUnresolved}
	switch f, _ := formatters.ParseOutputFormat(format); f {
	case formatters.OutputFormatDOT, formatters.OutputFormatMermaid, formatters.OutputFormatSVG:
		renderOpts.Label = p.label(len(adjacency))
	}
	output, err := formatter.Format(fileGraph, renderOpts)
	if err != nil {
		return "", fmt.Errorf("failed to format graph: %w", err)
	}
	return output, nil
}

// label names the project directory, the entry and the file count.
func (p *Project) label(fileCount int) string {
	label := fmt.Sprintf("%s • %s", filepath.Base(p.RootDir), p.Rel(p.Entry))
	if fileCount == 1 {
		return label + fmt.Sprintf(" • %d file", fileCount)
	}
	return label + fmt.Sprintf(" • %d files", fileCount)
}

// Rel returns path relative to the project directory when it lies inside it.
func (p *Project) Rel(path string) string {
	within, err := isWithinBase(p.RootDir, path)
	if err != nil || !within {
		return path
	}
	rel, err := filepath.Rel(p.RootDir, path)
	if err != nil {
		return path
	}
	return rel
}
