package depgraph

import (
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

type referenceKind int

const (
	// referenceOpaque is never looked up on disk (e.g. "@scope/pkg", "node:fs").
	referenceOpaque referenceKind = iota
	// referenceBare names a module without a path prefix (e.g. "fs", "lib/util").
	// It is looked up on disk but a miss is not an error.
	referenceBare
	// referencePath is absolute or relative and must name an existing file.
	referencePath
)

func classifyReference(reference string) referenceKind {
	switch {
	case reference == "." || reference == "..":
		return referencePath
	case strings.HasPrefix(reference, "./") || strings.HasPrefix(reference, "../"):
		return referencePath
	case strings.HasPrefix(reference, `.\`) || strings.HasPrefix(reference, `..\`):
		return referencePath
	case isAbsolutePath(reference):
		return referencePath
	case reference != "" && isASCIILetter(reference[0]) && !strings.Contains(reference, ":"):
		return referenceBare
	default:
		return referenceOpaque
	}
}

// DefaultIsFile reports whether path exists and is a regular file or a FIFO.
// Directories are not files, which is what lets "./lib" resolve to lib.js
// when a lib directory sits next to it.
func DefaultIsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() || info.Mode()&os.ModeNamedPipe != 0
}

// ModuleResolver maps require references to files on disk.
type ModuleResolver struct {
	isFile     func(string) bool
	extensions []string
	paths      []string
	probes     *lru.Cache[string, bool]
}

// NewModuleResolver returns a resolver probing extensions in order. paths are
// extra directories consulted for bare references after the referring
// directory. Probe results are cached for the resolver's lifetime, so a
// resolver must not outlive a single build of an unchanging tree.
func NewModuleResolver(isFile func(string) bool, extensions, paths []string, cacheSize int) (*ModuleResolver, error) {
	if isFile == nil {
		isFile = DefaultIsFile
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if cacheSize <= 0 {
		cacheSize = defaultResolveCacheSize
	}
	probes, err := lru.New[string, bool](cacheSize)
	if err != nil {
		return nil, err
	}
	return &ModuleResolver{
		isFile:     isFile,
		extensions: append([]string(nil), extensions...),
		paths:      append([]string(nil), paths...),
		probes:     probes,
	}, nil
}

// Resolve returns the file that reference designates when required from dir.
// resolved is false for references kept as opaque ids. A path-like reference
// that names no file yields an *UnresolvedModuleError.
func (r *ModuleResolver) Resolve(dir, reference string) (path string, resolved bool, err error) {
	switch classifyReference(reference) {
	case referencePath:
		target := reference
		if !isAbsolutePath(target) {
			target = filepath.Join(dir, reference)
		}
		if file, ok := r.loadAsFile(filepath.Clean(target)); ok {
			return file, true, nil
		}
		return "", false, &UnresolvedModuleError{Reference: reference, Dir: dir}

	case referenceBare:
		for _, base := range append([]string{dir}, r.paths...) {
			if file, ok := r.loadAsFile(filepath.Join(base, reference)); ok {
				return file, true, nil
			}
		}
		return "", false, nil

	default:
		return "", false, nil
	}
}

// loadAsFile tries file verbatim, then file plus each extension.
func (r *ModuleResolver) loadAsFile(file string) (string, bool) {
	if r.exists(file) {
		return file, true
	}
	for _, ext := range r.extensions {
		if candidate := file + ext; r.exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (r *ModuleResolver) exists(path string) bool {
	if found, ok := r.probes.Get(path); ok {
		return found
	}
	found := r.isFile(path)
	r.probes.Add(path, found)
	return found
}
