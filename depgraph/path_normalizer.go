package depgraph

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/requiregraph/depgraph/dialect"
)

// StatFunc reports file information the way os.Stat does.
type StatFunc func(path string) (os.FileInfo, error)

// ComputeBaseDirectory returns the nearest common ancestor directory of the
// absolute roots. When the longest common prefix is itself a file (a single
// file root, for instance) its parent directory is returned.
func ComputeBaseDirectory(roots []string, stat StatFunc) (string, error) {
	if len(roots) == 0 {
		return "", newResolutionError("no roots given")
	}
	if stat == nil {
		stat = os.Stat
	}

	existing := 0
	for _, root := range roots {
		if _, err := stat(root); err == nil {
			existing++
		}
	}
	if existing == 0 {
		return "", newResolutionError("none of the roots exist: %s", strings.Join(roots, ", "))
	}

	dir := commonPathPrefix(roots)
	info, err := stat(dir)
	if err != nil {
		return "", newResolutionError("common prefix %s: %v", dir, err)
	}
	if !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	return dir, nil
}

// commonPathPrefix returns the longest shared prefix of whole path segments.
func commonPathPrefix(paths []string) string {
	sep := string(filepath.Separator)
	common := strings.Split(filepath.Clean(paths[0]), sep)

	for _, p := range paths[1:] {
		segments := strings.Split(filepath.Clean(p), sep)
		n := 0
		for n < len(common) && n < len(segments) && common[n] == segments[n] {
			n++
		}
		common = common[:n]
	}

	joined := strings.Join(common, sep)
	if joined == "" {
		return sep
	}
	return joined
}

// PathNormalizer converts absolute file paths into module ids relative to a
// base directory, and back.
type PathNormalizer struct {
	BaseDir  string
	Dialects *dialect.Registry
}

// NewPathNormalizer returns a normalizer for baseDir. A nil registry means
// the default dialects.
func NewPathNormalizer(baseDir string, dialects *dialect.Registry) PathNormalizer {
	if dialects == nil {
		dialects = dialect.DefaultRegistry()
	}
	return PathNormalizer{BaseDir: filepath.Clean(baseDir), Dialects: dialects}
}

// Normalize returns the module id for path: relative to the base directory,
// without a recognized source extension, with forward slashes. A path that is
// not absolute is an opaque reference and is returned unchanged.
func (n PathNormalizer) Normalize(path string) string {
	if !isAbsolutePath(path) {
		return path
	}

	rel, err := filepath.Rel(n.BaseDir, path)
	if err != nil {
		rel = path
	}
	return strings.ReplaceAll(n.Dialects.TrimExtension(rel), `\`, "/")
}

// Denormalize maps a module id back to a filesystem path for display. The
// recognized extensions are probed with isFile; when none matches, the
// extension-less path is returned.
func (n PathNormalizer) Denormalize(id string, isFile func(string) bool) string {
	joined := filepath.Join(n.BaseDir, filepath.FromSlash(id))
	if isFile == nil {
		isFile = DefaultIsFile
	}
	for _, d := range n.Dialects.Dialects() {
		for _, ext := range d.Extensions {
			if isFile(joined + ext) {
				return joined + ext
			}
		}
	}
	return joined
}

// isAbsolutePath accepts both native absolute paths and drive-letter paths
// written with either separator.
func isAbsolutePath(path string) bool {
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return true
	}
	return len(path) >= 3 && isASCIILetter(path[0]) && path[1] == ':' && (path[2] == '/' || path[2] == '\\')
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
