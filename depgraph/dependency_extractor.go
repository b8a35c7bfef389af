package depgraph

import (
	"context"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/LegacyCodeHQ/requiregraph/internal/runlog"
)

// requireMarker is the cheap check run before a file is parsed at all.
var requireMarker = regexp.MustCompile(`require\s*\(`)

// selfExportPattern finds `module.exports = Name` assignments whose right-hand
// side starts with a capitalized word. This is a textual heuristic, not a
// binding analysis: object literals, lowercase functions and other export
// styles are deliberately not recognized.
var selfExportPattern = regexp.MustCompile(`module\.exports\s*?=\s*([A-Z]+[a-z]+)`)

// ParsedFile is the outcome of extracting one file.
type ParsedFile struct {
	Path         string
	ID           string
	Source       string
	Loaded       bool
	Dependencies []string
}

// DependencyExtractor turns one source file into its list of dependency ids.
type DependencyExtractor struct {
	loader     SourceLoader
	resolver   *ModuleResolver
	normalizer PathNormalizer
	scanner    ReferenceScanner
	isExcluded func(id string) bool
	// breakOnError makes an unresolved path-like reference fail the file.
	// Otherwise the reference is kept as an opaque id.
	breakOnError bool
}

// NewDependencyExtractor wires the extraction collaborators together.
// isExcluded may be nil.
func NewDependencyExtractor(
	loader SourceLoader,
	resolver *ModuleResolver,
	normalizer PathNormalizer,
	scanner ReferenceScanner,
	isExcluded func(id string) bool,
	breakOnError bool,
) *DependencyExtractor {
	if isExcluded == nil {
		isExcluded = func(string) bool { return false }
	}
	return &DependencyExtractor{
		loader:       loader,
		resolver:     resolver,
		normalizer:   normalizer,
		scanner:      scanner,
		isExcluded:   isExcluded,
		breakOnError: breakOnError,
	}
}

// Extract loads file and returns its dependencies, resolving references from
// dir. Loaded is set on the result as soon as the source was read, even when
// a later step fails. Unless breakOnError is set, a path-like reference that
// names no file stays in the list verbatim.
func (e *DependencyExtractor) Extract(ctx context.Context, file, dir string) (ParsedFile, error) {
	parsed := ParsedFile{Path: file, ID: e.normalizer.Normalize(file), Dependencies: []string{}}

	if err := ctx.Err(); err != nil {
		return parsed, err
	}

	source, err := e.loader.Load(file)
	if err != nil {
		return parsed, err
	}
	parsed.Source = source
	parsed.Loaded = true

	if !requireMarker.MatchString(source) {
		return parsed, nil
	}

	selfExports := lo.Map(SelfExportNames(source), func(name string, _ int) string {
		return strings.ToLower(name)
	})

	references, err := e.scanner.Scan(ctx, []byte(source))
	if err != nil {
		return parsed, newScanError(file, err)
	}

	ids := make([]string, 0, len(references))
	for _, reference := range references {
		if lo.Contains(selfExports, strings.ToLower(reference)) {
			continue
		}

		resolved, ok, err := e.resolver.Resolve(dir, reference)
		if err != nil {
			if e.breakOnError || !errors.Is(err, ErrUnresolvedModule) {
				return parsed, err
			}
			runlog.Warn("unresolved module kept as opaque id", map[string]any{"path": file, "reference": reference})
		}
		if ok {
			ids = append(ids, e.normalizer.Normalize(resolved))
		} else {
			ids = append(ids, reference)
		}
	}

	parsed.Dependencies = lo.Filter(lo.Uniq(ids), func(id string, _ int) bool {
		return !e.isExcluded(id)
	})
	return parsed, nil
}

// SelfExportNames returns every name the source assigns to module.exports in
// the `module.exports = Name` form, in order of appearance.
func SelfExportNames(source string) []string {
	var names []string
	for _, match := range selfExportPattern.FindAllStringSubmatch(source, -1) {
		names = append(names, match[1])
	}
	return names
}
