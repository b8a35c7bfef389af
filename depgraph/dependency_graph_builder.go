package depgraph

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/LegacyCodeHQ/requiregraph/internal/runlog"
)

// BuildResult is the outcome of one traversal run.
type BuildResult struct {
	// Graph is sorted and must not be modified by callers.
	Graph DependencyGraph
	// BaseDir is the directory every module id is relative to.
	BaseDir string
	// Skipped lists the files left out of the graph because of a recoverable
	// error. It is always empty when BreakOnError is set.
	Skipped []*FileError
}

// Builder builds dependency graphs for one configuration. A Builder holds no
// per-run state and may be reused.
type Builder struct {
	cfg compiledConfig
}

// NewBuilder validates cfg and applies its defaults.
func NewBuilder(cfg Config) (*Builder, error) {
	cc, err := cfg.compile()
	if err != nil {
		return nil, err
	}
	return &Builder{cfg: cc}, nil
}

// BuildDependencyGraph discovers every source file below roots and returns the
// sorted graph of their dependencies.
func BuildDependencyGraph(ctx context.Context, roots []string, cfg Config) (DependencyGraph, error) {
	builder, err := NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	result, err := builder.Build(ctx, roots)
	if err != nil {
		return nil, err
	}
	return result.Graph, nil
}

type extraction struct {
	parsed ParsedFile
	err    error
}

// Build runs one traversal over roots (files and/or directories).
func (b *Builder) Build(ctx context.Context, roots []string) (*BuildResult, error) {
	if len(roots) == 0 {
		return nil, newConfigError("at least one root is required")
	}
	start := time.Now()

	absRoots, err := absolutePaths(roots)
	if err != nil {
		return nil, err
	}
	baseDir, err := ComputeBaseDirectory(absRoots, os.Stat)
	if err != nil {
		return nil, err
	}
	searchPaths, err := absolutePaths(b.cfg.Paths)
	if err != nil {
		return nil, err
	}

	normalizer := NewPathNormalizer(baseDir, b.cfg.Dialects)
	resolver, err := NewModuleResolver(b.cfg.IsFile, b.cfg.Extensions, searchPaths, b.cfg.ResolveCacheSize)
	if err != nil {
		return nil, err
	}
	extractor := NewDependencyExtractor(
		NewSourceLoader(b.cfg.ReadFile, b.cfg.Dialects),
		resolver,
		normalizer,
		b.cfg.Scanner,
		b.cfg.isExcluded,
		b.cfg.BreakOnError,
	)

	result := &BuildResult{Graph: make(DependencyGraph), BaseDir: baseDir}

	candidates, err := b.discover(absRoots, result)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(candidates))
	for _, file := range candidates {
		if id := normalizer.Normalize(file); b.cfg.isExcluded(id) {
			runlog.Debug("excluded module", map[string]any{"id": id})
			continue
		}
		files = append(files, file)
	}

	extractions := b.extractAll(ctx, extractor, files)

	for _, ex := range extractions {
		if ex.parsed.Loaded {
			b.cfg.Observer.OnParseFile(ParseFileEvent{Filename: ex.parsed.Path, Source: ex.parsed.Source})
		}

		if ex.err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if b.cfg.BreakOnError && errors.Is(ex.err, context.Canceled) {
				// Cancelled because another file already failed.
				continue
			}

			fileErr := &FileError{Path: ex.parsed.Path, Err: ex.err}
			if b.cfg.BreakOnError {
				return nil, fileErr
			}
			runlog.Warn("skipping file", map[string]any{"path": ex.parsed.Path, "error": ex.err.Error()})
			result.Skipped = append(result.Skipped, fileErr)
			continue
		}

		if _, exists := result.Graph[ex.parsed.ID]; exists {
			runlog.Debug("module id seen twice, keeping the later file", map[string]any{"id": ex.parsed.ID, "path": ex.parsed.Path})
		}
		result.Graph[ex.parsed.ID] = ex.parsed.Dependencies
		runlog.Debug("added module", map[string]any{"id": ex.parsed.ID, "dependencies": len(ex.parsed.Dependencies)})
		b.cfg.Observer.OnAddModule(AddModuleEvent{ID: ex.parsed.ID, Dependencies: ex.parsed.Dependencies})
	}

	result.Graph = SortDependencyGraph(result.Graph)
	runlog.Info("dependency graph built", map[string]any{
		"base":    baseDir,
		"modules": len(result.Graph),
		"skipped": len(result.Skipped),
		"elapsed": time.Since(start).Round(time.Millisecond).String(),
	})

	return result, nil
}

// discover expands the roots into candidate files, in root order and without
// duplicates. A missing root or an unreadable directory below a root is a
// read error handled by the run's policy.
func (b *Builder) discover(roots []string, result *BuildResult) ([]string, error) {
	seen := make(map[string]bool)
	var candidates []string

	add := func(file string) {
		if !seen[file] {
			seen[file] = true
			candidates = append(candidates, file)
		}
	}

	// skip records an unreadable path, or returns the error that aborts the
	// run under BreakOnError.
	skip := func(path, message string, err error) error {
		if errors.As(err, new(*FileError)) {
			return err
		}
		fileErr := &FileError{Path: path, Err: newReadError(path, err)}
		if b.cfg.BreakOnError {
			return fileErr
		}
		runlog.Warn(message, map[string]any{"path": path, "error": err.Error()})
		result.Skipped = append(result.Skipped, fileErr)
		return nil
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			if abort := skip(root, "skipping root", err); abort != nil {
				return nil, abort
			}
			continue
		}

		if !info.IsDir() {
			add(root)
			continue
		}

		files, err := walkSourceFiles(root, b.cfg.Dialects, b.cfg.Ignore, func(path string, err error) error {
			return skip(path, "skipping unreadable path", err)
		})
		if err != nil {
			if abort := skip(root, "skipping root", err); abort != nil {
				return nil, abort
			}
			continue
		}
		for _, file := range files {
			add(file)
		}
	}

	return candidates, nil
}

// extractAll extracts files sequentially, or on Concurrency workers. The
// returned slice is in the order of files; in sequential mode it stops after
// the first failure when BreakOnError is set.
func (b *Builder) extractAll(ctx context.Context, extractor *DependencyExtractor, files []string) []extraction {
	extractions := make([]extraction, len(files))

	if b.cfg.Concurrency < 2 {
		for i, file := range files {
			extractions[i] = b.extractOne(ctx, extractor, file)
			if extractions[i].err != nil && b.cfg.BreakOnError {
				return extractions[:i+1]
			}
		}
		return extractions
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Concurrency)
	for i, file := range files {
		g.Go(func() error {
			extractions[i] = b.extractOne(gctx, extractor, file)
			if extractions[i].err != nil && b.cfg.BreakOnError {
				return extractions[i].err
			}
			return nil
		})
	}
	_ = g.Wait()

	return extractions
}

func (b *Builder) extractOne(ctx context.Context, extractor *DependencyExtractor, file string) extraction {
	if b.cfg.FileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.cfg.FileTimeout)
		defer cancel()
	}

	parsed, err := extractor.Extract(ctx, file, filepath.Dir(file))
	return extraction{parsed: parsed, err: err}
}

func absolutePaths(paths []string) ([]string, error) {
	abs := make([]string, 0, len(paths))
	for _, p := range paths {
		a, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve path %s", p)
		}
		abs = append(abs, a)
	}
	return abs, nil
}
