package depgraph

import "sort"

// DependencyGraph represents a mapping from file paths to their resolved dependencies
type DependencyGraph map[string][]string

// AST is an opaque syntax tree owned by a Graph until Close.
type AST interface {
	Close()
}

// ParsedFile is a visited file and the specifiers its parser reported, in
// source order with duplicates kept.
type ParsedFile struct {
	Path       string
	AST        AST
	Specifiers []string
}

// Dependency is one specifier occurrence and the file it resolved to.
// Path is empty when the specifier did not resolve.
type Dependency struct {
	Specifier string
	Path      string
}

// Resolved reports whether the specifier resolved to a file.
func (d Dependency) Resolved() bool {
	return d.Path != ""
}

// Graph is the result of loading every file reachable from Root.
// Children[f] is positionally aligned with Parsed[f].Specifiers.
type Graph struct {
	Root     string
	Parsed   map[string]*ParsedFile
	Children map[string][]Dependency
}

func newGraph(root string) *Graph {
	return &Graph{
		Root:     root,
		Parsed:   make(map[string]*ParsedFile),
		Children: make(map[string][]Dependency),
	}
}

// Close releases every syntax tree held by the graph.
func (g *Graph) Close() {
	if g == nil {
		return
	}
	for _, file := range g.Parsed {
		if file.AST != nil {
			file.AST.Close()
			file.AST = nil
		}
	}
}

// Files returns the parsed file paths in sorted order.
func (g *Graph) Files() []string {
	files := make([]string, 0, len(g.Parsed))
	for path := range g.Parsed {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// DependencyGraph returns the resolved edges of every parsed file with
// duplicates removed, keeping first-occurrence order.
func (g *Graph) DependencyGraph() DependencyGraph {
	adjacency := make(DependencyGraph, len(g.Parsed))
	for path := range g.Parsed {
		var deps []string
		for _, child := range g.Children[path] {
			if child.Resolved() {
				deps = append(deps, child.Path)
			}
		}
		adjacency[path] = deduplicatePaths(deps)
	}
	return adjacency
}

// UnresolvedSpecifier is a specifier occurrence that matched no file.
type UnresolvedSpecifier struct {
	File      string
	Specifier string
}

// Unresolved lists unresolved specifiers by file, then source order.
func (g *Graph) Unresolved() []UnresolvedSpecifier {
	var unresolved []UnresolvedSpecifier
	for _, path := range g.Files() {
		for _, child := range g.Children[path] {
			if !child.Resolved() {
				unresolved = append(unresolved, UnresolvedSpecifier{File: path, Specifier: child.Specifier})
			}
		}
	}
	return unresolved
}

// deduplicatePaths removes duplicate entries while preserving insertion order
func deduplicatePaths(paths []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}
	return result
}
