package depgraph

import (
	graphlib "github.com/dominikbraun/graph"
)

// FindPathNodes returns all nodes on any path between specified files.
// Treats the graph bidirectionally (paths from A to B OR from B to A).
// A node X is included if it lies on any directed path between any pair of target files.
// If a file isn't in the graph, it's skipped.
func FindPathNodes(graph DependencyGraph, targetFiles []string) (DependencyGraph, error) {
	var validTargets []string
	for _, f := range targetFiles {
		if _, ok := graph[f]; ok {
			validTargets = append(validTargets, f)
		}
	}

	nodesToKeep := make(map[string]bool)
	for _, f := range validTargets {
		nodesToKeep[f] = true
	}
	if len(validTargets) < 2 {
		return extractSubgraph(graph, nodesToKeep), nil
	}

	forward, err := newGraphlib(graph, false)
	if err != nil {
		return nil, err
	}
	reverse, err := newGraphlib(graph, true)
	if err != nil {
		return nil, err
	}

	reachableFrom := make(map[string]map[string]bool, len(validTargets))
	reaching := make(map[string]map[string]bool, len(validTargets))
	for _, target := range validTargets {
		if reachableFrom[target], err = reachable(forward, target); err != nil {
			return nil, err
		}
		if reaching[target], err = reachable(reverse, target); err != nil {
			return nil, err
		}
	}

	// X lies on a path from source to target when source reaches X and X reaches target.
	for _, source := range validTargets {
		for _, target := range validTargets {
			if source == target {
				continue
			}
			for node := range reachableFrom[source] {
				if reaching[target][node] {
					nodesToKeep[node] = true
				}
			}
		}
	}

	return extractSubgraph(graph, nodesToKeep), nil
}

func reachable(g graphlib.Graph[string, string], start string) (map[string]bool, error) {
	seen := make(map[string]bool)
	err := graphlib.BFS(g, start, func(node string) bool {
		seen[node] = true
		return false
	})
	return seen, err
}

// extractSubgraph creates a new graph containing only the specified nodes.
// Edges are preserved only if both endpoints are in the node set.
func extractSubgraph(original DependencyGraph, nodesToKeep map[string]bool) DependencyGraph {
	result := make(DependencyGraph)

	for node := range nodesToKeep {
		filteredDeps := []string{}
		for _, dep := range original[node] {
			if nodesToKeep[dep] {
				filteredDeps = append(filteredDeps, dep)
			}
		}
		result[node] = filteredDeps
	}

	return result
}
