package dialects

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/requiregraph/depgraph/dialect"
)

// Cmd represents the dialects command.
var Cmd = NewCommand()

// NewCommand returns a new dialects command instance.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dialects",
		Short: "List the recognized source dialects and file extensions",
		Long: `List the source dialects whose files are discovered in directories,
with their file extensions and how thoroughly their analysis is tested.

Examples:
  requiregraph dialects`,
		RunE: runDialects,
	}

	return cmd
}

func runDialects(cmd *cobra.Command, _ []string) error {
	for _, d := range dialect.DefaultRegistry().Dialects() {
		preprocess := ""
		if d.NeedsPreprocessing() {
			preprocess = ", preprocessed"
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) %s%s\n",
			d.Maturity.Symbol(), d.Name, strings.Join(d.Extensions, ", "), d.Maturity.DisplayName(), preprocess); err != nil {
			return err
		}
	}

	return nil
}
