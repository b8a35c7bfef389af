package cycles

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/requiregraph/cmd/graph"
	"github.com/LegacyCodeHQ/requiregraph/depgraph"
	"github.com/LegacyCodeHQ/requiregraph/internal/config"
)

type cyclesOptions struct {
	fail bool
}

// Cmd represents the cycles command.
var Cmd = NewCommand()

// NewCommand returns a new cycles command instance.
func NewCommand() *cobra.Command {
	opts := &cyclesOptions{}

	cmd := &cobra.Command{
		Use:   "cycles [paths...]",
		Short: "List groups of modules that require each other",
		Long: `Builds the require graph of the given files and directories (default:
current directory) and lists every group of modules that require each other,
directly or transitively. A module that requires itself is a group of one.

Examples:
  requiregraph cycles src
  requiregraph cycles src --fail`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCycles(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.fail, "fail", false, "Exit with an error when a cycle is found")
	config.AddBuildFlags(cmd.Flags())

	return cmd
}

func runCycles(cmd *cobra.Command, opts *cyclesOptions, args []string) error {
	settings, err := graph.LoadSettings(cmd)
	if err != nil {
		return err
	}
	result, err := graph.Build(cmd, settings, args)
	if err != nil {
		return err
	}

	cycles, err := depgraph.FindCycles(result.Graph)
	if err != nil {
		return fmt.Errorf("failed to analyze cycles: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(cycles) == 0 {
		fmt.Fprintln(out, "No require cycles found.")
		return nil
	}

	for i, cycle := range cycles {
		fmt.Fprintf(out, "%d. %s\n", i+1, strings.Join(cycle, " <-> "))
	}

	if opts.fail {
		return errors.Mark(errors.Newf("found %d require cycle(s)", len(cycles)), depgraph.ErrCycle)
	}
	return nil
}
