package graph

import (
	"os"
	"path/filepath"

	"github.com/LegacyCodeHQ/requiregraph/depgraph"
)

// ModuleLocator maps command-line arguments to the module ids of a built
// graph. An argument may be a module id ("lib/util") or a path to the source
// file, absolute or relative to the working directory, with or without its
// extension.
type ModuleLocator struct {
	graph      depgraph.DependencyGraph
	normalizer depgraph.PathNormalizer
	workDir    string
}

// NewModuleLocator returns a locator for result. An empty workDir means the
// process working directory.
func NewModuleLocator(result *depgraph.BuildResult, workDir string) (ModuleLocator, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ModuleLocator{}, err
		}
		workDir = wd
	}
	return ModuleLocator{
		graph:      result.Graph,
		normalizer: depgraph.NewPathNormalizer(result.BaseDir, nil),
		workDir:    workDir,
	}, nil
}

// Locate returns the module id arg designates, if it is a node of the graph.
func (l ModuleLocator) Locate(arg string) (string, bool) {
	if arg == "" {
		return "", false
	}
	if l.graph.Contains(arg) {
		return arg, true
	}

	path := arg
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.workDir, path)
	}
	id := l.normalizer.Normalize(filepath.Clean(path))
	if l.graph.Contains(id) {
		return id, true
	}
	return "", false
}

// LocateAll locates every argument and returns the ids found, in argument
// order and without duplicates, and the arguments that matched nothing.
func (l ModuleLocator) LocateAll(args []string) (resolved []string, missing []string) {
	seen := make(map[string]bool)
	for _, arg := range args {
		id, ok := l.Locate(arg)
		if !ok {
			missing = append(missing, arg)
			continue
		}
		if !seen[id] {
			seen[id] = true
			resolved = append(resolved, id)
		}
	}
	return resolved, missing
}
