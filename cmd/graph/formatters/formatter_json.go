package formatters

import (
	"encoding/json"

	"github.com/LegacyCodeHQ/requiregraph/depgraph"
)

// JSONFormatter formats dependency graphs as JSON with sorted keys.
type JSONFormatter struct{}

// Format converts the dependency graph to indented JSON.
// The opts parameter is accepted for interface compatibility but not used.
func (f *JSONFormatter) Format(g depgraph.DependencyGraph, _ RenderOptions) (string, error) {
	if g == nil {
		g = depgraph.DependencyGraph{}
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
