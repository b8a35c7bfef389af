package depgraph

import (
	"path"
	"strings"
)

// IsTestModule reports whether a module id names a test file: a ".test" or
// ".spec" suffix on the last segment, or a file under a "__tests__" directory.
// Opaque ids are never test modules.
func IsTestModule(id string) bool {
	if id == "" || strings.Contains(id, ":") || strings.HasPrefix(id, "@") {
		return false
	}

	for _, segment := range strings.Split(path.Dir(id), "/") {
		if segment == "__tests__" {
			return true
		}
	}

	base := path.Base(id)
	return strings.HasSuffix(base, ".test") || strings.HasSuffix(base, ".spec")
}
