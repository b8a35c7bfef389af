// Package config layers requiregraph settings from defaults, a config file,
// the environment and command-line flags, in increasing order of precedence.
package config

import (
	"runtime"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/LegacyCodeHQ/requiregraph/depgraph"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. REQUIREGRAPH_EXCLUDE.
	EnvPrefix = "REQUIREGRAPH"
	// FileName is the config file looked up in the working directory.
	FileName = ".requiregraph"
)

// Keys shared by config files, environment variables and flags.
const (
	KeyExclude      = "exclude"
	KeyExtensions   = "extensions"
	KeyBreakOnError = "break-on-error"
	KeyPaths        = "paths"
	KeyIgnore       = "ignore"
	KeyConcurrency  = "concurrency"
	KeyFileTimeout  = "file-timeout"
	KeyFormat       = "format"
	KeyLogLevel     = "log-level"
	KeyConfig       = "config"
)

// Settings is the resolved configuration of one CLI invocation.
type Settings struct {
	Exclude      string        `mapstructure:"exclude"`
	Extensions   []string      `mapstructure:"extensions"`
	BreakOnError bool          `mapstructure:"break-on-error"`
	Paths        []string      `mapstructure:"paths"`
	Ignore       []string      `mapstructure:"ignore"`
	Concurrency  int           `mapstructure:"concurrency"`
	FileTimeout  time.Duration `mapstructure:"file-timeout"`
	Format       string        `mapstructure:"format"`
	LogLevel     string        `mapstructure:"log-level"`

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `mapstructure:"-"`
}

// AddBuildFlags registers the flags that control graph construction.
func AddBuildFlags(flags *pflag.FlagSet) {
	flags.StringP(KeyExclude, "x", "", "Regular expression; matching module ids are left out of the graph")
	flags.StringSliceP(KeyExtensions, "e", nil, "Extensions probed when a require omits one (default .js)")
	flags.Bool(KeyBreakOnError, false, "Abort on the first file that cannot be processed")
	flags.StringSlice(KeyPaths, nil, "Extra directories searched for bare module names")
	flags.StringSlice(KeyIgnore, nil, "Glob patterns, relative to each root, of files and directories to skip")
	flags.IntP(KeyConcurrency, "j", 0, "Files processed in parallel (default: number of CPUs)")
	flags.Duration(KeyFileTimeout, 0, "Maximum time spent on a single file (0 disables the limit)")
}

// Load resolves settings. configFile may be empty, in which case
// .requiregraph.yaml is looked up in the working directory and a missing
// file is not an error. A .env file in the working directory is loaded into
// the environment first; variables already set are left alone.
func Load(configFile string, flags *pflag.FlagSet) (Settings, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, errors.Wrap(err, "failed to read config file")
			}
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return Settings{}, err
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, errors.Wrap(err, "failed to decode configuration")
	}
	settings.ConfigFile = v.ConfigFileUsed()
	settings.Extensions = normalizeExtensions(settings.Extensions)

	if settings.Concurrency < 0 {
		return Settings{}, errors.Mark(errors.Newf("concurrency must not be negative, got %d", settings.Concurrency), depgraph.ErrInvalidConfig)
	}
	if settings.Concurrency == 0 {
		settings.Concurrency = runtime.NumCPU()
	}
	return settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyExclude, "")
	v.SetDefault(KeyExtensions, []string{})
	v.SetDefault(KeyBreakOnError, false)
	v.SetDefault(KeyPaths, []string{})
	v.SetDefault(KeyIgnore, []string{})
	v.SetDefault(KeyConcurrency, 0)
	v.SetDefault(KeyFileTimeout, time.Duration(0))
	v.SetDefault(KeyFormat, "")
	v.SetDefault(KeyLogLevel, "warn")
}

// bindFlags binds only the flags that share a name with a settings key, so
// command-specific flags never leak into the settings.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{
		KeyExclude, KeyExtensions, KeyBreakOnError, KeyPaths, KeyIgnore,
		KeyConcurrency, KeyFileTimeout, KeyFormat, KeyLogLevel,
	} {
		flag := flags.Lookup(key)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "failed to bind flag --%s", key)
		}
	}
	return nil
}

// normalizeExtensions accepts "js" as well as ".js" and drops blanks.
func normalizeExtensions(extensions []string) []string {
	var normalized []string
	for _, ext := range extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}

// BuildConfig turns settings into the configuration of a graph build.
func (s Settings) BuildConfig() depgraph.Config {
	return depgraph.Config{
		Exclude:      s.Exclude,
		Extensions:   s.Extensions,
		BreakOnError: s.BreakOnError,
		Paths:        s.Paths,
		Ignore:       s.Ignore,
		Concurrency:  s.Concurrency,
		FileTimeout:  s.FileTimeout,
	}
}
