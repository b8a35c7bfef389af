package depgraph

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	graphlib "github.com/dominikbraun/graph"
)

// toGraphlib converts g into a directed graph whose edges point from a module
// to its dependencies. Opaque dependencies become leaf vertices. With
// reversed set, edges point from a dependency to its dependents.
func toGraphlib(g DependencyGraph, reversed bool) (graphlib.Graph[string, string], error) {
	dg := graphlib.New(graphlib.StringHash, graphlib.Directed())

	addVertex := func(id string) error {
		if err := dg.AddVertex(id); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return err
		}
		return nil
	}

	for _, id := range g.Modules() {
		if err := addVertex(id); err != nil {
			return nil, err
		}
	}

	for _, id := range g.Modules() {
		for _, dep := range g[id] {
			if err := addVertex(dep); err != nil {
				return nil, err
			}
			source, target := id, dep
			if reversed {
				source, target = dep, id
			}
			if err := dg.AddEdge(source, target); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, err
			}
		}
	}

	return dg, nil
}

// FindCycles returns every group of modules that require each other, directly
// or transitively. A module that requires itself is a group of one. Members
// of a group are sorted, and groups are ordered by their members.
func FindCycles(g DependencyGraph) ([][]string, error) {
	dg, err := toGraphlib(g, false)
	if err != nil {
		return nil, err
	}

	components, err := graphlib.StronglyConnectedComponents(dg)
	if err != nil {
		return nil, err
	}

	var cycles [][]string
	for _, component := range components {
		if len(component) == 1 && !requiresItself(g, component[0]) {
			continue
		}
		members := append([]string(nil), component...)
		sort.Strings(members)
		cycles = append(cycles, members)
	}

	sort.Slice(cycles, func(i, j int) bool {
		return strings.Join(cycles[i], "\x00") < strings.Join(cycles[j], "\x00")
	})
	return cycles, nil
}

func requiresItself(g DependencyGraph, id string) bool {
	for _, dep := range g[id] {
		if dep == id {
			return true
		}
	}
	return false
}

// TopologicalOrder lists every id in the graph, opaque dependencies included,
// so that each module comes after all of its dependencies. Ties are broken
// lexicographically. A cyclic graph yields an error marked ErrCycle.
func TopologicalOrder(g DependencyGraph) ([]string, error) {
	cycles, err := FindCycles(g)
	if err != nil {
		return nil, err
	}
	if len(cycles) > 0 {
		return nil, errors.Mark(errors.Newf("%d cycle(s), first: %s", len(cycles), strings.Join(cycles[0], ", ")), ErrCycle)
	}

	dg, err := toGraphlib(g, true)
	if err != nil {
		return nil, err
	}
	return graphlib.StableTopologicalSort(dg, func(a, b string) bool {
		return a < b
	})
}
