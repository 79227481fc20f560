package depgraph

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"github.com/LegacyCodeHQ/tsdeps/depgraph/typescript"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// SpecifierResolver maps a specifier seen in fromFile to a file path.
type SpecifierResolver interface {
	Resolve(fromFile, specifier string) (string, bool)
}

// SourceParser turns a file's contents into a syntax tree and its ordered
// dependency specifiers.
type SourceParser interface {
	Parse(ctx context.Context, filePath string, source []byte) (AST, []string, error)
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// Workers bounds how many files of one breadth-first level are read, parsed
	// and resolved at the same time. Values below 2 load sequentially.
	Workers int
	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Loader builds a Graph by walking imports breadth-first from an entry file.
type Loader struct {
	fs       typescript.FileSystem
	parser   SourceParser
	resolver SpecifierResolver
	workers  int
	logger   *log.Logger
}

// NewLoader creates a loader from its collaborators.
func NewLoader(fsys typescript.FileSystem, parser SourceParser, resolver SpecifierResolver, opts LoaderOptions) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{
		fs:       fsys,
		parser:   parser,
		resolver: resolver,
		workers:  opts.Workers,
		logger:   logger,
	}
}

// TypeScriptOptions configures the tree-sitter parser and Node-style resolver.
type TypeScriptOptions struct {
	Resolver          typescript.ResolverOptions
	AllowSyntaxErrors bool
}

// NewTypeScriptLoader wires the TypeScript parser and resolver over fsys.
func NewTypeScriptLoader(fsys typescript.FileSystem, tsOpts TypeScriptOptions, opts LoaderOptions) *Loader {
	parser := typeScriptParser{parser: &typescript.Parser{AllowSyntaxErrors: tsOpts.AllowSyntaxErrors}}
	resolver := typescript.NewResolver(fsys, tsOpts.Resolver)
	return NewLoader(fsys, parser, resolver, opts)
}

type typeScriptParser struct {
	parser *typescript.Parser
}

func (p typeScriptParser) Parse(ctx context.Context, filePath string, source []byte) (AST, []string, error) {
	file, err := p.parser.Parse(ctx, filePath, source)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Specifiers, nil
}

// Load parses entry and every file it transitively imports. Each file is read
// and parsed once. Any read or parse failure aborts the load and no graph is
// returned; unresolved specifiers are recorded, not reported as errors.
func (l *Loader) Load(ctx context.Context, entry string) (*Graph, error) {
	root, ok := l.fs.Canonical(entry)
	if !ok {
		// Keep going so the read reports why the entry is unusable.
		root = entry
		if abs, err := filepath.Abs(entry); err == nil {
			root = abs
		}
	}

	graph := newGraph(root)

	var err error
	if l.workers > 1 {
		err = l.loadConcurrent(ctx, graph)
	} else {
		err = l.loadSequential(ctx, graph)
	}
	if err != nil {
		graph.Close()
		return nil, err
	}

	l.logger.Debug("dependency graph loaded",
		"root", root,
		"files", len(graph.Parsed),
		"unresolved", len(graph.Unresolved()))
	return graph, nil
}

func (l *Loader) loadSequential(ctx context.Context, graph *Graph) error {
	queue := []string{graph.Root}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := queue[0]
		queue = queue[1:]
		if _, visited := graph.Parsed[path]; visited {
			continue
		}

		v, err := l.visit(ctx, path)
		if err != nil {
			return err
		}
		graph.record(v)
		queue = append(queue, v.resolvedChildren()...)
	}
	return nil
}

// loadConcurrent processes the frontier one breadth-first level at a time.
// Files of a level are visited in parallel; recording them and building the
// next level happen here, in discovery order, so the graph matches the
// sequential result. A failing file does not cancel its siblings: the level
// runs to completion and the failure of the earliest file in discovery order
// is reported, which is the one the sequential loader would hit first.
func (l *Loader) loadConcurrent(ctx context.Context, graph *Graph) error {
	frontier := []string{graph.Root}
	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		level := unvisited(graph, frontier)
		results := make([]visitResult, len(level))
		errs := make([]error, len(level))

		var g errgroup.Group
		g.SetLimit(l.workers)
		for i, path := range level {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					return nil
				}
				results[i], errs[i] = l.visit(ctx, path)
				return nil
			})
		}
		_ = g.Wait()

		if err := firstFailure(ctx, errs); err != nil {
			for _, v := range results {
				v.close()
			}
			return err
		}

		var next []string
		for _, v := range results {
			graph.record(v)
			next = append(next, v.resolvedChildren()...)
		}
		frontier = next
	}
	return nil
}

// unvisited drops already parsed paths and repeats, keeping discovery order.
func unvisited(graph *Graph, frontier []string) []string {
	seen := make(map[string]bool, len(frontier))
	level := make([]string, 0, len(frontier))
	for _, path := range frontier {
		if _, visited := graph.Parsed[path]; visited || seen[path] {
			continue
		}
		seen[path] = true
		level = append(level, path)
	}
	return level
}

// firstFailure returns the cancellation of ctx if any, otherwise the failure
// of the earliest file in discovery order.
func firstFailure(ctx context.Context, errs []error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

type visitResult struct {
	file     *ParsedFile
	children []Dependency
}

func (v visitResult) resolvedChildren() []string {
	var paths []string
	for _, child := range v.children {
		if child.Resolved() {
			paths = append(paths, child.Path)
		}
	}
	return paths
}

func (v visitResult) close() {
	if v.file != nil && v.file.AST != nil {
		v.file.AST.Close()
	}
}

func (g *Graph) record(v visitResult) {
	g.Parsed[v.file.Path] = v.file
	g.Children[v.file.Path] = v.children
}

// visit reads, parses and resolves a single file.
func (l *Loader) visit(ctx context.Context, path string) (visitResult, error) {
	l.logger.Debug("visiting file", "path", path)

	source, err := l.fs.ReadFile(path)
	if err != nil {
		return visitResult{}, &ReadError{Path: path, Err: err}
	}

	ast, specifiers, err := l.parser.Parse(ctx, path, source)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return visitResult{}, err
		}
		return visitResult{}, &ParseError{Path: path, Err: err}
	}

	children := make([]Dependency, len(specifiers))
	for i, specifier := range specifiers {
		resolved, ok := l.resolver.Resolve(path, specifier)
		if !ok {
			resolved = ""
			l.logger.Debug("unresolved specifier", "file", path, "specifier", specifier)
		}
		children[i] = Dependency{Specifier: specifier, Path: resolved}
	}

	return visitResult{
		file:     &ParsedFile{Path: path, AST: ast, Specifiers: specifiers},
		children: children,
	}, nil
}
