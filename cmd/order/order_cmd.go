package order

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/requiregraph/cmd/graph"
	"github.com/LegacyCodeHQ/requiregraph/depgraph"
	"github.com/LegacyCodeHQ/requiregraph/internal/config"
)

type orderOptions struct {
	includeExternal bool
}

// Cmd represents the order command.
var Cmd = NewCommand()

// NewCommand returns a new order command instance.
func NewCommand() *cobra.Command {
	opts := &orderOptions{}

	cmd := &cobra.Command{
		Use:   "order [paths...]",
		Short: "Print modules in load order, dependencies first",
		Long: `Builds the require graph of the given files and directories (default:
current directory) and prints one module id per line such that every module
comes after the modules it requires. Ties are broken alphabetically. Fails
when the graph has a cycle.

Examples:
  requiregraph order src
  requiregraph order src --external`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.includeExternal, "external", false, "Include external modules such as \"fs\"")
	config.AddBuildFlags(cmd.Flags())

	return cmd
}

func runOrder(cmd *cobra.Command, opts *orderOptions, args []string) error {
	settings, err := graph.LoadSettings(cmd)
	if err != nil {
		return err
	}
	result, err := graph.Build(cmd, settings, args)
	if err != nil {
		return err
	}

	ordered, err := depgraph.TopologicalOrder(result.Graph)
	if err != nil {
		return fmt.Errorf("failed to order modules: %w", err)
	}

	for _, id := range ordered {
		if !opts.includeExternal && !result.Graph.Contains(id) {
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
