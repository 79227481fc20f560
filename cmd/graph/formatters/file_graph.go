package formatters

import (
	"sort"

	"github.com/LegacyCodeHQ/tsdeps/depgraph"
)

// FileGraph is a loaded dependency graph together with the facts every
// formatter needs: its cycles and the specifiers that resolved to nothing.
type FileGraph struct {
	Root       string
	Adjacency  depgraph.DependencyGraph
	Cycles     [][]string
	Unresolved []depgraph.UnresolvedSpecifier

	inCycle map[[2]string]bool
}

// NewFileGraph prepares adjacency for rendering. Unresolved specifiers of
// files outside adjacency are dropped.
func NewFileGraph(root string, adjacency depgraph.DependencyGraph, unresolved []depgraph.UnresolvedSpecifier) (FileGraph, error) {
	cycles, err := depgraph.Cycles(adjacency)
	if err != nil {
		return FileGraph{}, err
	}

	kept := make([]depgraph.UnresolvedSpecifier, 0, len(unresolved))
	for _, u := range unresolved {
		if _, ok := adjacency[u.File]; ok {
			kept = append(kept, u)
		}
	}

	return FileGraph{
		Root:       root,
		Adjacency:  adjacency,
		Cycles:     cycles,
		Unresolved: kept,
		inCycle:    depgraph.InCycle(adjacency, cycles),
	}, nil
}

// FromGraph prepares everything g loaded.
func FromGraph(g *depgraph.Graph) (FileGraph, error) {
	return NewFileGraph(g.Root, g.DependencyGraph(), g.Unresolved())
}

// Files returns the graph's files in sorted order.
func (g FileGraph) Files() []string {
	files := make([]string, 0, len(g.Adjacency))
	for file := range g.Adjacency {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// Dependencies returns the files imported by file in sorted order.
func (g FileGraph) Dependencies(file string) []string {
	deps := append([]string(nil), g.Adjacency[file]...)
	sort.Strings(deps)
	return deps
}

// InCycle reports whether the edge from → to belongs to an import cycle.
func (g FileGraph) InCycle(from, to string) bool {
	return g.inCycle[[2]string{from, to}]
}

// CycleFiles returns the set of files taking part in any cycle.
func (g FileGraph) CycleFiles() map[string]bool {
	files := make(map[string]bool)
	for _, cycle := range g.Cycles {
		for _, file := range cycle {
			files[file] = true
		}
	}
	return files
}

// UnresolvedOf returns the distinct unresolved specifiers of file in source order.
func (g FileGraph) UnresolvedOf(file string) []string {
	var specifiers []string
	seen := make(map[string]bool)
	for _, u := range g.Unresolved {
		if u.File != file || seen[u.Specifier] {
			continue
		}
		seen[u.Specifier] = true
		specifiers = append(specifiers, u.Specifier)
	}
	return specifiers
}

// UnresolvedSpecifiers returns every distinct unresolved specifier, sorted.
func (g FileGraph) UnresolvedSpecifiers() []string {
	seen := make(map[string]bool)
	var specifiers []string
	for _, u := range g.Unresolved {
		if !seen[u.Specifier] {
			seen[u.Specifier] = true
			specifiers = append(specifiers, u.Specifier)
		}
	}
	sort.Strings(specifiers)
	return specifiers
}
