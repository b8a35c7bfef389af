package depgraph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files (slash-separated paths relative to root) and
// returns root.
func writeTree(t *testing.T, root string, files map[string]string) string {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// scannerFunc adapts a function to ReferenceScanner.
type scannerFunc func(ctx context.Context, source []byte) ([]string, error)

func (f scannerFunc) Scan(ctx context.Context, source []byte) ([]string, error) {
	return f(ctx, source)
}

// fileSet is an in-memory isFile predicate.
type fileSet map[string]bool

func (s fileSet) isFile(path string) bool {
	return s[path]
}

// recordingObserver records events as "parse:<file>" and "add:<id>".
type recordingObserver struct {
	events  []string
	sources map[string]string
}

func (r *recordingObserver) OnParseFile(e ParseFileEvent) {
	if r.sources == nil {
		r.sources = make(map[string]string)
	}
	r.sources[e.Filename] = e.Source
	r.events = append(r.events, "parse:"+filepath.Base(e.Filename))
}

func (r *recordingObserver) OnAddModule(e AddModuleEvent) {
	r.events = append(r.events, "add:"+e.ID)
}
