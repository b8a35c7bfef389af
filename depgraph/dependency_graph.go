package depgraph

import (
	"bytes"
	"encoding/json"
	"sort"
)

// DependencyGraph maps a module id to the ids of the modules it requires.
//
// Keys are the discovered, non-excluded source files. Values may also contain
// opaque ids (references that did not resolve to a file), which never appear
// as keys.
type DependencyGraph map[string][]string

// Modules returns the graph's module ids in lexicographic order.
func (g DependencyGraph) Modules() []string {
	ids := make([]string, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Contains reports whether id is a node of the graph.
func (g DependencyGraph) Contains(id string) bool {
	_, ok := g[id]
	return ok
}

// MarshalJSON writes the graph with sorted keys and "[]" for modules without
// dependencies. Dependency order is preserved as stored.
func (g DependencyGraph) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range g.Modules() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		deps := g[id]
		if deps == nil {
			deps = []string{}
		}
		value, err := json.Marshal(deps)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SortDependencyGraph returns a copy of g in which every dependency list is
// sorted lexicographically. Combined with Modules, this is the only ordering
// the graph guarantees to consumers.
func SortDependencyGraph(g DependencyGraph) DependencyGraph {
	sorted := make(DependencyGraph, len(g))
	for _, id := range g.Modules() {
		deps := append([]string{}, g[id]...)
		sort.Strings(deps)
		sorted[id] = deps
	}
	return sorted
}

// Dependents returns the modules that list id as a dependency, sorted.
func Dependents(g DependencyGraph, id string) []string {
	var dependents []string
	for _, module := range g.Modules() {
		for _, dep := range g[module] {
			if dep == id {
				dependents = append(dependents, module)
				break
			}
		}
	}
	return dependents
}
