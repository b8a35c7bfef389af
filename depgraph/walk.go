package depgraph

import (
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/LegacyCodeHQ/requiregraph/depgraph/dialect"
)

// walkSourceFiles returns the recognized source files below root in lexical
// order. Entries matching an ignore pattern (relative to root, slash
// separated) are skipped; an ignored directory is not descended into.
//
// An entry below root that cannot be read is passed to onError. The walk
// aborts if onError returns an error and otherwise continues past the entry.
// Failing to read root itself always aborts.
func walkSourceFiles(
	root string,
	dialects *dialect.Registry,
	ignore []string,
	onError func(path string, err error) error,
) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root || onError == nil {
				return err
			}
			if abort := onError(path, err); abort != nil {
				return abort
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path != root && isIgnored(root, path, ignore) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if dialects.IsSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func isIgnored(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
