package depgraph

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, files fileSet, extensions, paths []string) *ModuleResolver {
	t.Helper()
	r, err := NewModuleResolver(files.isFile, extensions, paths, 0)
	require.NoError(t, err)
	return r
}

func TestModuleResolver_ProbesConfiguredExtension(t *testing.T) {
	r := newTestResolver(t, fileSet{"/a/b/c.js": true}, nil, nil)

	path, ok, err := r.Resolve("/a/b", "./c")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/a/b/c.js", path)
}

func TestModuleResolver_VerbatimWinsOverExtension(t *testing.T) {
	r := newTestResolver(t, fileSet{"/a/b/c": true, "/a/b/c.js": true}, nil, nil)

	path, ok, err := r.Resolve("/a/b", "./c")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/a/b/c", path)
}

func TestModuleResolver_ExtensionsTriedInOrder(t *testing.T) {
	files := fileSet{"/a/c.jsx": true, "/a/c.coffee": true}

	path, _, err := newTestResolver(t, files, []string{".js", ".coffee", ".jsx"}, nil).Resolve("/a", "./c")
	require.NoError(t, err)
	assert.Equal(t, "/a/c.coffee", path)

	path, _, err = newTestResolver(t, files, []string{".jsx", ".coffee"}, nil).Resolve("/a", "./c")
	require.NoError(t, err)
	assert.Equal(t, "/a/c.jsx", path)
}

func TestModuleResolver_ParentAndAbsoluteReferences(t *testing.T) {
	r := newTestResolver(t, fileSet{"/a/x.js": true, "/opt/lib/y.js": true}, nil, nil)

	path, ok, err := r.Resolve("/a/b", "../x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/a/x.js", path)

	path, ok, err = r.Resolve("/a/b", "/opt/lib/y")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/opt/lib/y.js", path)
}

func TestModuleResolver_DirectoryIsNotAFile(t *testing.T) {
	// The default predicate rejects directories; model that with a set that
	// only knows about lib.js.
	r := newTestResolver(t, fileSet{"/a/lib.js": true}, nil, nil)

	path, ok, err := r.Resolve("/a", "./lib")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/a/lib.js", path)
}

func TestModuleResolver_UnresolvedPathReference(t *testing.T) {
	r := newTestResolver(t, fileSet{}, nil, nil)

	_, ok, err := r.Resolve("/a/b", "./missing")

	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrUnresolvedModule))

	var unresolved *UnresolvedModuleError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "./missing", unresolved.Reference)
	assert.Equal(t, "/a/b", unresolved.Dir)
	assert.Equal(t, "cannot find module './missing' from '/a/b'", err.Error())
}

func TestModuleResolver_BareReferenceStaysOpaque(t *testing.T) {
	r := newTestResolver(t, fileSet{}, nil, nil)

	path, ok, err := r.Resolve("/a", "fs")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, path)
}

func TestModuleResolver_BareReferenceMatchingLocalFile(t *testing.T) {
	r := newTestResolver(t, fileSet{"/a/lib/util.js": true}, nil, nil)

	path, ok, err := r.Resolve("/a", "lib/util")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/a/lib/util.js", path)
}

func TestModuleResolver_BareReferenceSearchesPaths(t *testing.T) {
	r := newTestResolver(t, fileSet{"/shared/helpers.js": true}, nil, []string{"/vendor", "/shared"})

	path, ok, err := r.Resolve("/a", "helpers")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/shared/helpers.js", path)
}

func TestModuleResolver_OpaqueReferencesAreNotProbed(t *testing.T) {
	probed := 0
	r, err := NewModuleResolver(func(string) bool { probed++; return true }, nil, nil, 0)
	require.NoError(t, err)

	for _, reference := range []string{"@scope/pkg", "node:fs", "_private", ""} {
		_, ok, err := r.Resolve("/a", reference)
		require.NoError(t, err)
		assert.False(t, ok, reference)
	}
	assert.Zero(t, probed)
}

func TestModuleResolver_CachesProbes(t *testing.T) {
	calls := map[string]int{}
	r, err := NewModuleResolver(func(path string) bool {
		calls[path]++
		return path == "/a/c.js"
	}, nil, nil, 16)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, ok, err := r.Resolve("/a", "./c")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Equal(t, 1, calls["/a/c"])
	assert.Equal(t, 1, calls["/a/c.js"])
}

func TestClassifyReference(t *testing.T) {
	tests := []struct {
		reference string
		want      referenceKind
	}{
		{reference: "./a", want: referencePath},
		{reference: "../a", want: referencePath},
		{reference: ".", want: referencePath},
		{reference: "..", want: referencePath},
		{reference: "/abs/a", want: referencePath},
		{reference: `C:\lib\a`, want: referencePath},
		{reference: "fs", want: referenceBare},
		{reference: "lib/util", want: referenceBare},
		{reference: "@scope/pkg", want: referenceOpaque},
		{reference: "node:fs", want: referenceOpaque},
		{reference: "", want: referenceOpaque},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, classifyReference(tc.reference), tc.reference)
	}
}
