package why

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/requiregraph/cmd/graph"
	"github.com/LegacyCodeHQ/requiregraph/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/requiregraph/depgraph"
	"github.com/LegacyCodeHQ/requiregraph/internal/config"
)

const formatText = "text"

type whyOptions struct {
	roots []string
}

type directConnection struct {
	From string
	To   string
}

// Cmd represents the why command.
var Cmd = NewCommand()

// NewCommand returns a new why command instance.
func NewCommand() *cobra.Command {
	opts := &whyOptions{}

	cmd := &cobra.Command{
		Use:   "why <from> <to>",
		Short: "Show how two modules are connected",
		Long: `Shows the direct require edge(s) between two modules and the modules
that lie on require paths between them.

Modules may be given as module ids ("lib/db") or as paths to their source
files.

Examples:
  requiregraph why app lib/db
  requiregraph why src/app.js src/lib/db.js --root src
  requiregraph why app lib/db -f mermaid`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhy(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringP(config.KeyFormat, "f", formatText,
		fmt.Sprintf("Output format (%s, %s, %s)", formatText, formatters.OutputFormatDOT, formatters.OutputFormatMermaid))
	cmd.Flags().StringSliceVarP(&opts.roots, "root", "r", nil, "Files and directories to build the graph from (default: current directory)")
	config.AddBuildFlags(cmd.Flags())

	return cmd
}

func runWhy(cmd *cobra.Command, opts *whyOptions, fromArg, toArg string) error {
	settings, err := graph.LoadSettings(cmd)
	if err != nil {
		return err
	}

	format := settings.Format
	if format == "" {
		format = formatText
	}
	if !strings.EqualFold(format, formatText) {
		if f, ok := formatters.ParseOutputFormat(format); !ok || f == formatters.OutputFormatJSON {
			return fmt.Errorf("unknown format: %s (valid options: %s, %s, %s)", format, formatText, formatters.OutputFormatDOT, formatters.OutputFormatMermaid)
		}
	}

	result, err := graph.Build(cmd, settings, opts.roots)
	if err != nil {
		return err
	}

	locator, err := graph.NewModuleLocator(result, "")
	if err != nil {
		return err
	}
	from, ok := locator.Locate(fromArg)
	if !ok {
		return fmt.Errorf("from module not found in dependency graph: %s", fromArg)
	}
	to, ok := locator.Locate(toArg)
	if !ok {
		return fmt.Errorf("to module not found in dependency graph: %s", toArg)
	}

	subgraph, err := depgraph.FindPathNodes(result.Graph, []string{from, to})
	if err != nil {
		return err
	}

	var output string
	if strings.EqualFold(format, formatText) {
		output = formatTextOutput(from, to, findDirectConnections(result.Graph, from, to), subgraph)
	} else {
		formatter, err := graph.NewFormatter(format)
		if err != nil {
			return err
		}
		cycles, err := depgraph.FindCycles(subgraph)
		if err != nil {
			return err
		}
		output, err = formatter.Format(subgraph, formatters.RenderOptions{
			Label:  fmt.Sprintf("%s ⇄ %s", from, to),
			Cycles: cycles,
		})
		if err != nil {
			return fmt.Errorf("failed to format graph: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

func findDirectConnections(g depgraph.DependencyGraph, from, to string) []directConnection {
	var connections []directConnection
	if containsID(g[from], to) {
		connections = append(connections, directConnection{From: from, To: to})
	}
	if from != to && containsID(g[to], from) {
		connections = append(connections, directConnection{From: to, To: from})
	}
	return connections
}

func containsID(ids []string, target string) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}

func formatTextOutput(from, to string, connections []directConnection, subgraph depgraph.DependencyGraph) string {
	var lines []string
	if len(connections) == 0 {
		lines = append(lines, fmt.Sprintf("No immediate dependency between %s and %s.", from, to))
	} else {
		lines = append(lines, fmt.Sprintf("Direct connection(s) between %s and %s:", from, to))
		for _, c := range connections {
			lines = append(lines, fmt.Sprintf("- %s requires %s", c.From, c.To))
		}
	}

	var via []string
	for _, id := range subgraph.Modules() {
		if id != from && id != to {
			via = append(via, id)
		}
	}
	if len(via) > 0 {
		lines = append(lines, fmt.Sprintf("Indirect paths pass through: %s", strings.Join(via, ", ")))
	}
	return strings.Join(lines, "\n")
}
