package depgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/requiregraph/depgraph/dialect"
)

func TestSourceLoader_ReadsJavaScriptVerbatim(t *testing.T) {
	root := writeTree(t, t.TempDir(), map[string]string{"a.js": "require('./b')\n"})

	source, err := NewSourceLoader(nil, nil).Load(filepath.Join(root, "a.js"))

	require.NoError(t, err)
	assert.Equal(t, "require('./b')\n", source)
}

func TestSourceLoader_CompilesCoffeeScript(t *testing.T) {
	root := writeTree(t, t.TempDir(), map[string]string{"a.coffee": "# header\nb = require './b'\n"})

	source, err := NewSourceLoader(nil, nil).Load(filepath.Join(root, "a.coffee"))

	require.NoError(t, err)
	assert.Equal(t, "b = require('./b')\n", source)
}

func TestSourceLoader_MissingFileIsReadError(t *testing.T) {
	_, err := NewSourceLoader(nil, nil).Load(filepath.Join(t.TempDir(), "gone.js"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRead))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSourceLoader_CompileFailureIsPreprocessError(t *testing.T) {
	registry := dialect.DefaultRegistry().WithCompiler(".coffee", func(string, string) (string, error) {
		return "", errors.New("unexpected indentation")
	})
	reader := func(string) ([]byte, error) { return []byte("x"), nil }

	_, err := NewSourceLoader(reader, registry).Load("/src/a.coffee")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPreprocess))
	assert.Contains(t, err.Error(), "unexpected indentation")
}

func TestSourceLoader_UsesInjectedReader(t *testing.T) {
	var requested string
	reader := func(path string) ([]byte, error) {
		requested = path
		return []byte("module.exports = 1"), nil
	}

	source, err := NewSourceLoader(reader, nil).Load("/virtual/x.js")

	require.NoError(t, err)
	assert.Equal(t, "/virtual/x.js", requested)
	assert.Equal(t, "module.exports = 1", source)
}
