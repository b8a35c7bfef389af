package mermaid

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/LegacyCodeHQ/requiregraph/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/requiregraph/depgraph"
)

// Formatter formats dependency graphs as Mermaid.js flowcharts.
type Formatter struct{}

// Format converts the dependency graph to Mermaid.js flowchart format.
func (f *Formatter) Format(g depgraph.DependencyGraph, opts formatters.RenderOptions) (string, error) {
	var sb strings.Builder

	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}

	sb.WriteString("flowchart LR\n")

	for i, cycle := range opts.Cycles {
		sb.WriteString(fmt.Sprintf("%%%% C%d: %s\n", i+1, strings.Join(cycle, ", ")))
	}

	modules := g.Modules()
	external := formatters.ExternalModules(g)
	names := formatters.BuildNodeNames(modules)
	cycles := formatters.CycleIndex(opts.Cycles)

	// Mermaid node ids cannot hold slashes, dots or @, so nodes are numbered.
	nodeIDs := make(map[string]string, len(modules)+len(external))
	for _, id := range modules {
		nodeIDs[id] = fmt.Sprintf("n%d", len(nodeIDs))
	}
	for _, id := range external {
		nodeIDs[id] = fmt.Sprintf("n%d", len(nodeIDs))
	}

	for _, id := range modules {
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", nodeIDs[id], escapeLabel(names[id])))
	}
	for _, id := range external {
		sb.WriteString(fmt.Sprintf("    %s([\"%s\"])\n", nodeIDs[id], escapeLabel(id)))
	}

	var edgesSB strings.Builder
	edgeIndex := 0
	var cycleEdgeIndices []int
	for _, id := range modules {
		for _, dep := range g[id] {
			edgesSB.WriteString(fmt.Sprintf("    %s --> %s\n", nodeIDs[id], nodeIDs[dep]))
			if formatters.InSameCycle(cycles, id, dep) {
				cycleEdgeIndices = append(cycleEdgeIndices, edgeIndex)
			}
			edgeIndex++
		}
	}

	var stylesSB strings.Builder
	if len(external) > 0 {
		externalIDs := make([]string, len(external))
		for i, id := range external {
			externalIDs[i] = nodeIDs[id]
		}
		stylesSB.WriteString("    classDef external fill:#FFFFFF,stroke:#999999,stroke-dasharray: 5 5,color:#555555\n")
		stylesSB.WriteString(fmt.Sprintf("    class %s external\n", strings.Join(externalIDs, ",")))
	}
	var testIDs []string
	for _, id := range modules {
		if depgraph.IsTestModule(id) {
			testIDs = append(testIDs, nodeIDs[id])
		}
	}
	if len(testIDs) > 0 {
		stylesSB.WriteString("    classDef testFile fill:#C8E6C9,stroke:#2E7D32,color:#1B5E20\n")
		stylesSB.WriteString(fmt.Sprintf("    class %s testFile\n", strings.Join(testIDs, ",")))
	}
	for _, id := range modules {
		if _, inCycle := cycles[id]; inCycle {
			stylesSB.WriteString(fmt.Sprintf("    style %s stroke:#d62728,stroke-width:3px\n", nodeIDs[id]))
		}
	}
	for _, idx := range cycleEdgeIndices {
		stylesSB.WriteString(fmt.Sprintf("    linkStyle %d stroke:#d62728,stroke-width:3px,stroke-dasharray: 5 5\n", idx))
	}

	if edgeIndex > 0 {
		sb.WriteString("\n")
		sb.WriteString(edgesSB.String())
	}
	if stylesSB.Len() > 0 {
		sb.WriteString("\n")
		sb.WriteString(stylesSB.String())
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}

func escapeLabel(label string) string {
	return strings.ReplaceAll(label, "\"", "#quot;")
}

// GenerateURL creates a mermaid.live URL with the diagram embedded.
func (f *Formatter) GenerateURL(output string) (string, bool) {
	payload := map[string]interface{}{
		"code": output,
		"mermaid": map[string]interface{}{
			"theme": "default",
		},
		"autoSync":      true,
		"updateDiagram": true,
	}

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("https://mermaid.live/edit#%s", url.PathEscape(output)), true
	}

	encoded := base64.URLEncoding.EncodeToString(jsonBytes)
	return fmt.Sprintf("https://mermaid.live/edit#base64:%s", encoded), true
}
