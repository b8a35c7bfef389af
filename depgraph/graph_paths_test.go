package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPathNodes(t *testing.T) {
	tests := []struct {
		name    string
		graph   DependencyGraph
		targets []string
		want    []string
	}{
		{
			name:    "linear chain",
			graph:   DependencyGraph{"app": {"router"}, "router": {"view"}, "view": {}},
			targets: []string{"app", "view"},
			want:    []string{"app", "router", "view"},
		},
		{
			name:    "diamond keeps both branches",
			graph:   DependencyGraph{"app": {"a", "b"}, "a": {"db"}, "b": {"db"}, "db": {}},
			targets: []string{"app", "db"},
			want:    []string{"a", "app", "b", "db"},
		},
		{
			name:    "disconnected targets keep only themselves",
			graph:   DependencyGraph{"a": {"b"}, "b": {}, "c": {"d"}, "d": {}},
			targets: []string{"a", "c"},
			want:    []string{"a", "c"},
		},
		{
			name:    "three targets",
			graph:   DependencyGraph{"a": {"b"}, "b": {"c"}, "c": {"d"}, "d": {}},
			targets: []string{"a", "c", "d"},
			want:    []string{"a", "b", "c", "d"},
		},
		{
			name:    "all paths not only the shortest",
			graph:   DependencyGraph{"a": {"b", "d"}, "b": {"c"}, "c": {}, "d": {"e"}, "e": {"c"}},
			targets: []string{"a", "c"},
			want:    []string{"a", "b", "c", "d", "e"},
		},
		{
			name:    "target order does not matter",
			graph:   DependencyGraph{"a": {"b"}, "b": {}},
			targets: []string{"b", "a"},
			want:    []string{"a", "b"},
		},
		{
			name:    "single target",
			graph:   DependencyGraph{"a": {"b"}, "b": {}},
			targets: []string{"a"},
			want:    []string{"a"},
		},
		{
			name:    "no targets",
			graph:   DependencyGraph{"a": {"b"}, "b": {}},
			targets: nil,
			want:    []string{},
		},
		{
			name:    "unknown target is ignored",
			graph:   DependencyGraph{"a": {"b"}, "b": {}},
			targets: []string{"a", "missing"},
			want:    []string{"a"},
		},
		{
			name:    "opaque dependencies never become nodes",
			graph:   DependencyGraph{"a": {"fs", "b"}, "b": {"fs"}},
			targets: []string{"a", "b"},
			want:    []string{"a", "b"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := FindPathNodes(tc.graph, tc.targets)

			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Modules())
		})
	}
}

func TestFindPathNodes_PreservesEdgesBetweenKeptNodes(t *testing.T) {
	graph := DependencyGraph{
		"a": {"b", "fs"},
		"b": {"c"},
		"c": {},
		"x": {"a"},
	}

	result, err := FindPathNodes(graph, []string{"a", "c"})

	require.NoError(t, err)
	assert.Equal(t, DependencyGraph{"a": {"b"}, "b": {"c"}, "c": {}}, result)
}

func TestExtractSubgraph(t *testing.T) {
	original := DependencyGraph{
		"a": {"b", "c"},
		"b": {"c"},
		"c": {},
	}

	result := extractSubgraph(original, map[string]bool{"a": true, "b": true})

	assert.Equal(t, DependencyGraph{"a": {"b"}, "b": {}}, result)
}
