package dot

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/LegacyCodeHQ/requiregraph/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/requiregraph/depgraph"
)

// Formatter formats dependency graphs as Graphviz DOT.
type Formatter struct{}

// Format converts the dependency graph to Graphviz DOT format. Modules are
// boxes (test modules filled green), external references dashed ellipses.
// Modules and edges that belong to a cycle are drawn in red.
func (f *Formatter) Format(g depgraph.DependencyGraph, opts formatters.RenderOptions) (string, error) {
	var sb strings.Builder
	sb.WriteString("digraph dependencies {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}
	sb.WriteString("\n")

	modules := g.Modules()
	external := formatters.ExternalModules(g)
	names := formatters.BuildNodeNames(modules)
	cycles := formatters.CycleIndex(opts.Cycles)

	for _, id := range modules {
		if _, inCycle := cycles[id]; inCycle {
			sb.WriteString(fmt.Sprintf("  %q [label=%q, style=filled, fillcolor=mistyrose, color=red];\n", id, names[id]))
			continue
		}
		if depgraph.IsTestModule(id) {
			sb.WriteString(fmt.Sprintf("  %q [label=%q, style=filled, fillcolor=lightgreen];\n", id, names[id]))
			continue
		}
		sb.WriteString(fmt.Sprintf("  %q [label=%q, style=filled, fillcolor=white];\n", id, names[id]))
	}
	for _, id := range external {
		sb.WriteString(fmt.Sprintf("  %q [label=%q, shape=ellipse, style=dashed];\n", id, id))
	}
	if len(modules)+len(external) > 0 {
		sb.WriteString("\n")
	}

	for _, id := range modules {
		for _, dep := range g[id] {
			if formatters.InSameCycle(cycles, id, dep) {
				sb.WriteString(fmt.Sprintf("  %q -> %q [color=red];\n", id, dep))
				continue
			}
			sb.WriteString(fmt.Sprintf("  %q -> %q;\n", id, dep))
		}
	}

	sb.WriteString("}")
	return sb.String(), nil
}

// GenerateURL creates a GraphvizOnline URL with the DOT graph embedded.
func (f *Formatter) GenerateURL(output string) (string, bool) {
	encoded := url.PathEscape(output)
	return fmt.Sprintf("https://dreampuf.github.io/GraphvizOnline/?engine=dot#%s", encoded), true
}
