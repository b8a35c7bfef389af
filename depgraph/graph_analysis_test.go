package depgraph

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCycles(t *testing.T) {
	tests := []struct {
		name  string
		graph DependencyGraph
		want  [][]string
	}{
		{
			name:  "acyclic",
			graph: DependencyGraph{"a": {"b", "fs"}, "b": {}},
			want:  nil,
		},
		{
			name:  "two modules requiring each other",
			graph: DependencyGraph{"a": {"b"}, "b": {"a"}},
			want:  [][]string{{"a", "b"}},
		},
		{
			name:  "self require",
			graph: DependencyGraph{"a": {"a"}, "b": {}},
			want:  [][]string{{"a"}},
		},
		{
			name: "separate cycles are ordered",
			graph: DependencyGraph{
				"z": {"y"}, "y": {"x"}, "x": {"z"},
				"c": {"d"}, "d": {"c"},
				"m": {"c"},
			},
			want: [][]string{{"c", "d"}, {"x", "y", "z"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cycles, err := FindCycles(tc.graph)

			require.NoError(t, err)
			assert.Equal(t, tc.want, cycles)
		})
	}
}

func TestTopologicalOrder_DependenciesFirst(t *testing.T) {
	graph := DependencyGraph{
		"app":    {"router", "fs"},
		"router": {"view"},
		"view":   {},
	}

	order, err := TopologicalOrder(graph)

	require.NoError(t, err)
	assert.Len(t, order, 4)
	position := make(map[string]int, len(order))
	for i, id := range order {
		position[id] = i
	}
	for _, id := range graph.Modules() {
		for _, dep := range graph[id] {
			assert.Less(t, position[dep], position[id], "%s before %s", dep, id)
		}
	}
}

func TestTopologicalOrder_IsStable(t *testing.T) {
	graph := DependencyGraph{"c": {}, "a": {}, "b": {}}

	order, err := TopologicalOrder(graph)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestTopologicalOrder_CycleIsAnError(t *testing.T) {
	_, err := TopologicalOrder(DependencyGraph{"a": {"b"}, "b": {"a"}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycle))
	assert.Contains(t, err.Error(), "a, b")
}
