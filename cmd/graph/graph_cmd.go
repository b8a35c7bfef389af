package graph

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/requiregraph/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/requiregraph/depgraph"
	"github.com/LegacyCodeHQ/requiregraph/internal/config"
)

type graphOptions struct {
	betweenModules  []string
	generateURL     bool
	copyToClipboard bool
}

// Cmd represents the graph command.
var Cmd = NewCommand()

// NewCommand returns a new graph command instance.
func NewCommand() *cobra.Command {
	opts := &graphOptions{}

	cmd := &cobra.Command{
		Use:   "graph [paths...]",
		Short: "Build the require graph of a source tree",
		Long: `Discovers the CommonJS sources below the given files and directories
(default: current directory), resolves every require() call and prints the
graph of module ids.

Module ids are file paths relative to the common base directory of the
inputs, without their source extension. References that do not resolve to a
file, such as "fs" or "@scope/pkg", are kept verbatim as external modules.

Output formats:
  - json: sorted adjacency map (default)
  - dot: Graphviz DOT
  - mermaid: Mermaid flowchart

Examples:
  requiregraph graph
  requiregraph graph src lib --exclude '^vendor/'
  requiregraph graph src -f dot --url
  requiregraph graph src --between app,lib/db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, opts, args)
		},
	}

	cmd.Flags().StringP(config.KeyFormat, "f", formatters.OutputFormatJSON.String(),
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().StringSliceVarP(&opts.betweenModules, "between", "w", nil, "Only keep modules on paths between these modules (comma-separated)")
	cmd.Flags().BoolVarP(&opts.generateURL, "url", "u", false, "Generate visualization URL (supported formats: dot, mermaid)")
	cmd.Flags().BoolVarP(&opts.copyToClipboard, "clipboard", "b", false, "Automatically copy output to clipboard")
	config.AddBuildFlags(cmd.Flags())

	return cmd
}

func runGraph(cmd *cobra.Command, opts *graphOptions, args []string) error {
	settings, err := LoadSettings(cmd)
	if err != nil {
		return err
	}

	format := settings.Format
	if format == "" {
		format = formatters.OutputFormatJSON.String()
	}
	formatter, err := NewFormatter(format)
	if err != nil {
		return err
	}

	result, err := Build(cmd, settings, args)
	if err != nil {
		return err
	}

	g := result.Graph
	if len(opts.betweenModules) > 0 {
		g, err = betweenSubgraph(result, opts.betweenModules)
		if err != nil {
			return err
		}
	}

	cycles, err := depgraph.FindCycles(g)
	if err != nil {
		return fmt.Errorf("failed to analyze cycles: %w", err)
	}

	renderOpts := formatters.RenderOptions{
		Label:  graphLabel(result.BaseDir, len(g)),
		Cycles: cycles,
	}
	output, err := formatter.Format(g, renderOpts)
	if err != nil {
		return fmt.Errorf("failed to format graph: %w", err)
	}

	if opts.generateURL {
		if generator, ok := formatter.(formatters.URLGenerator); ok {
			if urlStr, ok := generator.GenerateURL(output); ok {
				fmt.Fprintln(cmd.OutOrStdout(), urlStr)
				return copyOutput(cmd, opts, urlStr)
			}
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: URL generation is not supported for %s format\n\n", format)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return copyOutput(cmd, opts, output)
}

// betweenSubgraph reduces the graph to the modules on paths between the
// requested modules.
func betweenSubgraph(result *depgraph.BuildResult, modules []string) (depgraph.DependencyGraph, error) {
	locator, err := NewModuleLocator(result, "")
	if err != nil {
		return nil, err
	}

	resolved, missing := locator.LocateAll(modules)
	if len(missing) > 0 {
		return nil, fmt.Errorf("modules not found in graph: %v", missing)
	}
	if len(resolved) < 2 {
		return nil, fmt.Errorf("at least 2 modules required for --between, found %d in graph", len(resolved))
	}
	return depgraph.FindPathNodes(result.Graph, resolved)
}

func graphLabel(baseDir string, modules int) string {
	if modules == 1 {
		return fmt.Sprintf("%s • 1 module", filepath.Base(baseDir))
	}
	return fmt.Sprintf("%s • %d modules", filepath.Base(baseDir), modules)
}

func copyOutput(cmd *cobra.Command, opts *graphOptions, output string) error {
	if !opts.copyToClipboard {
		return nil
	}
	if err := clipboard.WriteAll(output); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "\n✅ Content copied to your clipboard.")
	return nil
}
