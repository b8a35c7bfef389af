package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/requiregraph/cmd/cycles"
	"github.com/LegacyCodeHQ/requiregraph/cmd/dialects"
	"github.com/LegacyCodeHQ/requiregraph/cmd/graph"
	"github.com/LegacyCodeHQ/requiregraph/cmd/order"
	"github.com/LegacyCodeHQ/requiregraph/cmd/why"
	"github.com/LegacyCodeHQ/requiregraph/internal/config"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// NewRootCommand returns the requiregraph command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "requiregraph",
		Short: "Build and inspect require() dependency graphs",
		Long: `requiregraph builds a static dependency graph for a tree of CommonJS
sources (JavaScript, JSX and CoffeeScript) by following require() calls.

Settings are read from .requiregraph.yaml in the working directory (or
--config), REQUIREGRAPH_* environment variables and a .env file, and
command-line flags, in increasing order of precedence.

Use 'requiregraph --help' to see all available commands, or
'requiregraph <command> --help' for detailed information about a specific command.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(graph.NewCommand())
	rootCmd.AddCommand(cycles.NewCommand())
	rootCmd.AddCommand(why.NewCommand())
	rootCmd.AddCommand(order.NewCommand())
	rootCmd.AddCommand(dialects.NewCommand())

	rootCmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	rootCmd.PersistentFlags().String(config.KeyConfig, "", "Config file (default: .requiregraph.yaml in the working directory)")
	rootCmd.PersistentFlags().String(config.KeyLogLevel, "warn", "Log level (debug, info, warn, error)")

	return rootCmd
}

// Execute runs the root command until it finishes or the process is interrupted.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
