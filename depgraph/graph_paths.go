package depgraph

import (
	graphlib "github.com/dominikbraun/graph"
)

// FindPathNodes returns the subgraph of modules lying on any directed path
// between any two of the target modules, in either direction. Targets that
// are not nodes of g are ignored; with fewer than two valid targets, the
// valid ones are returned without edges.
func FindPathNodes(g DependencyGraph, targets []string) (DependencyGraph, error) {
	var valid []string
	for _, target := range targets {
		if g.Contains(target) {
			valid = append(valid, target)
		}
	}

	keep := make(map[string]bool)
	for _, target := range valid {
		keep[target] = true
	}

	if len(valid) < 2 {
		return extractSubgraph(g, keep), nil
	}

	forward, err := toGraphlib(g, false)
	if err != nil {
		return nil, err
	}
	backward, err := toGraphlib(g, true)
	if err != nil {
		return nil, err
	}

	reachableFrom := make(map[string]map[string]bool, len(valid))
	reaching := make(map[string]map[string]bool, len(valid))
	for _, target := range valid {
		if reachableFrom[target], err = reachable(forward, target); err != nil {
			return nil, err
		}
		if reaching[target], err = reachable(backward, target); err != nil {
			return nil, err
		}
	}

	for _, source := range valid {
		for _, sink := range valid {
			if source == sink {
				continue
			}
			for node := range reachableFrom[source] {
				if reaching[sink][node] {
					keep[node] = true
				}
			}
		}
	}

	return extractSubgraph(g, keep), nil
}

func reachable(dg graphlib.Graph[string, string], start string) (map[string]bool, error) {
	seen := make(map[string]bool)
	err := graphlib.DFS(dg, start, func(id string) bool {
		seen[id] = true
		return false
	})
	return seen, err
}

// extractSubgraph keeps the given nodes of g and the edges between them.
// Opaque leaves never become nodes.
func extractSubgraph(g DependencyGraph, keep map[string]bool) DependencyGraph {
	result := make(DependencyGraph)
	for node := range keep {
		deps, ok := g[node]
		if !ok {
			continue
		}
		filtered := []string{}
		for _, dep := range deps {
			if keep[dep] {
				filtered = append(filtered, dep)
			}
		}
		result[node] = filtered
	}
	return SortDependencyGraph(result)
}
