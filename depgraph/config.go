package depgraph

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/LegacyCodeHQ/requiregraph/depgraph/dialect"
	"github.com/LegacyCodeHQ/requiregraph/depgraph/scanner"
)

const defaultResolveCacheSize = 4096

// DefaultExtensions are the suffixes probed when a reference names a file
// without its extension.
var DefaultExtensions = []string{".js"}

// ReferenceScanner returns the raw module references found in source text.
type ReferenceScanner interface {
	Scan(ctx context.Context, source []byte) ([]string, error)
}

// Config is the per-run configuration of a graph build. It is passed by value
// and never shared between runs.
type Config struct {
	// Exclude is a regular expression; module ids matching it are dropped
	// from the graph as nodes and as dependencies.
	Exclude string
	// Extensions are probed, in order, after the verbatim reference.
	Extensions []string
	// BreakOnError aborts the run on the first per-file error. Otherwise the
	// file is skipped and the run continues.
	BreakOnError bool
	// Paths are extra directories searched for bare references.
	Paths []string
	// Ignore holds doublestar patterns, relative to each root, for files and
	// directories the traversal skips.
	Ignore []string
	// Concurrency is the number of files extracted at once. Values below 2
	// keep the build sequential.
	Concurrency int
	// FileTimeout bounds the extraction of a single file when positive.
	FileTimeout time.Duration
	// ResolveCacheSize bounds the memoized file-existence probes.
	ResolveCacheSize int

	Observer  Observer
	IsFile    func(path string) bool
	ReadFile  ContentReader
	Scanner   ReferenceScanner
	Dialects  *dialect.Registry
	Compilers map[string]dialect.CompileFunc
}

// compiledConfig is a validated Config with defaults applied.
type compiledConfig struct {
	Config
	exclude *regexp.Regexp
}

func (c Config) compile() (compiledConfig, error) {
	cc := compiledConfig{Config: c}

	if c.Exclude != "" {
		re, err := regexp.Compile(c.Exclude)
		if err != nil {
			return compiledConfig{}, newConfigError("exclude pattern %q: %v", c.Exclude, err)
		}
		cc.exclude = re
	}

	if len(cc.Extensions) == 0 {
		cc.Extensions = append([]string(nil), DefaultExtensions...)
	}
	for _, ext := range cc.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return compiledConfig{}, newConfigError("extension %q must start with a dot", ext)
		}
	}

	for _, pattern := range cc.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return compiledConfig{}, newConfigError("ignore pattern %q is not a valid glob", pattern)
		}
	}

	if cc.ResolveCacheSize <= 0 {
		cc.ResolveCacheSize = defaultResolveCacheSize
	}
	if cc.Observer == nil {
		cc.Observer = nopObserver{}
	}
	if cc.IsFile == nil {
		cc.IsFile = DefaultIsFile
	}
	if cc.ReadFile == nil {
		cc.ReadFile = FilesystemContentReader()
	}
	if cc.Scanner == nil {
		cc.Scanner = scanner.RequireScanner{}
	}
	if cc.Dialects == nil {
		cc.Dialects = dialect.DefaultRegistry()
	}
	compilerExts := make([]string, 0, len(cc.Compilers))
	for ext := range cc.Compilers {
		compilerExts = append(compilerExts, ext)
	}
	sort.Strings(compilerExts)
	for _, ext := range compilerExts {
		cc.Dialects = cc.Dialects.WithCompiler(ext, cc.Compilers[ext])
	}

	return cc, nil
}

func (c compiledConfig) isExcluded(id string) bool {
	return c.exclude != nil && c.exclude.MatchString(id)
}
