package graph

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/requiregraph/depgraph"
	"github.com/LegacyCodeHQ/requiregraph/internal/config"
	"github.com/LegacyCodeHQ/requiregraph/internal/runlog"
)

// LoadSettings resolves the settings of cmd from its flags, the environment
// and the config file, and configures logging accordingly.
func LoadSettings(cmd *cobra.Command) (config.Settings, error) {
	var configFile string
	if flag := cmd.Flags().Lookup(config.KeyConfig); flag != nil {
		configFile = flag.Value.String()
	}

	settings, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return config.Settings{}, err
	}
	if err := runlog.Configure(cmd.ErrOrStderr(), settings.LogLevel); err != nil {
		return config.Settings{}, errors.Wrapf(err, "invalid log level %q", settings.LogLevel)
	}
	if settings.ConfigFile != "" {
		runlog.Debug("loaded config file", map[string]any{"file": settings.ConfigFile})
	}
	return settings, nil
}

// Build builds the dependency graph of roots, defaulting to the working
// directory.
func Build(cmd *cobra.Command, settings config.Settings, roots []string) (*depgraph.BuildResult, error) {
	if len(roots) == 0 {
		roots = []string{"."}
	}

	builder, err := depgraph.NewBuilder(settings.BuildConfig())
	if err != nil {
		return nil, err
	}
	result, err := builder.Build(cmd.Context(), roots)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build dependency graph")
	}
	return result, nil
}
