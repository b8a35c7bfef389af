package formatters

import (
	"sort"

	"github.com/LegacyCodeHQ/requiregraph/depgraph"
)

// RenderOptions contains optional parameters for rendering dependency graphs.
type RenderOptions struct {
	// Label is an optional title for the graph
	Label string
	// Cycles are highlighted by formatters that can draw them
	Cycles [][]string
}

// Formatter is the interface that all graph formatters must implement.
type Formatter interface {
	// Format converts a dependency graph to a formatted string representation.
	Format(g depgraph.DependencyGraph, opts RenderOptions) (string, error)
}

// URLGenerator is implemented by formatters whose output can be opened in an
// online viewer.
type URLGenerator interface {
	GenerateURL(output string) (string, bool)
}

// CycleIndex maps every module in a cycle to the index of its cycle.
func CycleIndex(cycles [][]string) map[string]int {
	index := make(map[string]int)
	for i, cycle := range cycles {
		for _, id := range cycle {
			index[id] = i
		}
	}
	return index
}

// InSameCycle reports whether an edge from one module to another lies inside
// a cycle.
func InSameCycle(index map[string]int, from, to string) bool {
	a, okA := index[from]
	b, okB := index[to]
	return okA && okB && a == b
}

// ExternalModules returns the dependencies of g that are not graph nodes,
// sorted.
func ExternalModules(g depgraph.DependencyGraph) []string {
	seen := make(map[string]bool)
	var external []string
	for _, id := range g.Modules() {
		for _, dep := range g[id] {
			if !g.Contains(dep) && !seen[dep] {
				seen[dep] = true
				external = append(external, dep)
			}
		}
	}
	sort.Strings(external)
	return external
}
