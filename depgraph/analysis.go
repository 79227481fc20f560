package depgraph

import (
	"errors"
	"fmt"
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// ErrCyclic is returned by TopologicalOrder when the graph has an import cycle.
var ErrCyclic = errors.New("dependency graph contains cycles")

// newGraphlib converts the adjacency map into a directed graph. With reverse
// set, every edge points from the imported file to its importer.
func newGraphlib(g DependencyGraph, reverse bool) (graphlib.Graph[string, string], error) {
	dg := graphlib.New(graphlib.StringHash, graphlib.Directed())

	nodes := make([]string, 0, len(g))
	for node := range g {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	addVertex := func(v string) error {
		if err := dg.AddVertex(v); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return err
		}
		return nil
	}

	for _, node := range nodes {
		if err := addVertex(node); err != nil {
			return nil, err
		}
	}
	for _, node := range nodes {
		for _, dep := range g[node] {
			if err := addVertex(dep); err != nil {
				return nil, err
			}
			from, to := node, dep
			if reverse {
				from, to = dep, node
			}
			if err := dg.AddEdge(from, to); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("failed to add edge %s -> %s: %w", from, to, err)
			}
		}
	}
	return dg, nil
}

// Cycles returns every import cycle as the sorted set of files in one strongly
// connected component. A file importing itself is a cycle of one.
func Cycles(g DependencyGraph) ([][]string, error) {
	dg, err := newGraphlib(g, false)
	if err != nil {
		return nil, err
	}

	components, err := graphlib.StronglyConnectedComponents(dg)
	if err != nil {
		return nil, err
	}

	var cycles [][]string
	for _, component := range components {
		if len(component) == 1 && !importsItself(g, component[0]) {
			continue
		}
		cycle := append([]string(nil), component...)
		sort.Strings(cycle)
		cycles = append(cycles, cycle)
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles, nil
}

func importsItself(g DependencyGraph, node string) bool {
	for _, dep := range g[node] {
		if dep == node {
			return true
		}
	}
	return false
}

// TopologicalOrder lists files so that every file comes after the files it
// imports. Ties break alphabetically. Cyclic graphs return ErrCyclic.
func TopologicalOrder(g DependencyGraph) ([]string, error) {
	cycles, err := Cycles(g)
	if err != nil {
		return nil, err
	}
	if len(cycles) > 0 {
		return nil, fmt.Errorf("%w: %d cycle(s), first: %v", ErrCyclic, len(cycles), cycles[0])
	}

	dg, err := newGraphlib(g, true)
	if err != nil {
		return nil, err
	}
	return graphlib.StableTopologicalSort(dg, func(a, b string) bool {
		return a < b
	})
}

// InCycle reports, for every edge, whether both ends sit in the same cycle.
func InCycle(g DependencyGraph, cycles [][]string) map[[2]string]bool {
	component := make(map[string]int)
	for i, cycle := range cycles {
		for _, node := range cycle {
			component[node] = i + 1
		}
	}

	edges := make(map[[2]string]bool)
	for node, deps := range g {
		for _, dep := range deps {
			c := component[node]
			edges[[2]string{node, dep}] = c != 0 && c == component[dep]
		}
	}
	return edges
}
