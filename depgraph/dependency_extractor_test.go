package depgraph

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/requiregraph/depgraph/scanner"
)

type extractorFixture struct {
	sources map[string]string
	files   fileSet
	scanner ReferenceScanner
	exclude func(string) bool
	strict  bool
}

func (f extractorFixture) build(t *testing.T) *DependencyExtractor {
	t.Helper()
	reader := func(path string) ([]byte, error) {
		source, ok := f.sources[path]
		if !ok {
			return nil, errors.Newf("no such file %s", path)
		}
		return []byte(source), nil
	}
	files := f.files
	if files == nil {
		files = fileSet{}
		for path := range f.sources {
			files[path] = true
		}
	}
	resolver, err := NewModuleResolver(files.isFile, nil, nil, 0)
	require.NoError(t, err)

	s := f.scanner
	if s == nil {
		s = scanner.RequireScanner{}
	}
	return NewDependencyExtractor(NewSourceLoader(reader, nil), resolver, NewPathNormalizer("/src", nil), s, f.exclude, f.strict)
}

func TestDependencyExtractor_ResolvesAndNormalizes(t *testing.T) {
	extractor := extractorFixture{sources: map[string]string{
		"/src/a.js":     "var b = require('./b');\nvar fs = require('fs');\n",
		"/src/b.js":     "",
		"/src/lib/c.js": "",
	}}.build(t)

	parsed, err := extractor.Extract(context.Background(), "/src/a.js", "/src")

	require.NoError(t, err)
	assert.Equal(t, "a", parsed.ID)
	assert.True(t, parsed.Loaded)
	assert.Equal(t, []string{"b", "fs"}, parsed.Dependencies)
}

func TestDependencyExtractor_FastPathSkipsScanner(t *testing.T) {
	called := false
	extractor := extractorFixture{
		sources: map[string]string{"/src/a.js": "module.exports = 42;\n"},
		scanner: scannerFunc(func(context.Context, []byte) ([]string, error) {
			called = true
			return nil, nil
		}),
	}.build(t)

	parsed, err := extractor.Extract(context.Background(), "/src/a.js", "/src")

	require.NoError(t, err)
	assert.False(t, called)
	assert.Empty(t, parsed.Dependencies)
	assert.NotNil(t, parsed.Dependencies)
}

func TestDependencyExtractor_SuppressesSelfExport(t *testing.T) {
	extractor := extractorFixture{sources: map[string]string{
		"/src/a.js": "var Foo = require('foo');\nmodule.exports = Foo;\n",
	}}.build(t)

	parsed, err := extractor.Extract(context.Background(), "/src/a.js", "/src")

	require.NoError(t, err)
	assert.Empty(t, parsed.Dependencies)
}

func TestDependencyExtractor_SelfExportOnlyMatchesCapitalizedNames(t *testing.T) {
	extractor := extractorFixture{sources: map[string]string{
		"/src/a.js": "var foo = require('foo');\nmodule.exports = foo;\n",
	}}.build(t)

	parsed, err := extractor.Extract(context.Background(), "/src/a.js", "/src")

	require.NoError(t, err)
	assert.Equal(t, []string{"foo"}, parsed.Dependencies)
}

func TestDependencyExtractor_DeduplicatesKeepingFirst(t *testing.T) {
	extractor := extractorFixture{
		sources: map[string]string{"/src/a.js": "require('x')"},
		scanner: scannerFunc(func(context.Context, []byte) ([]string, error) {
			return []string{"zlib", "./b", "zlib", "./b.js"}, nil
		}),
		files: fileSet{"/src/b.js": true},
	}.build(t)

	parsed, err := extractor.Extract(context.Background(), "/src/a.js", "/src")

	require.NoError(t, err)
	assert.Equal(t, []string{"zlib", "b"}, parsed.Dependencies)
}

func TestDependencyExtractor_DropsExcludedDependencies(t *testing.T) {
	extractor := extractorFixture{
		sources: map[string]string{
			"/src/main.js":       "require('./vendor/lib'); require('./util');",
			"/src/vendor/lib.js": "",
			"/src/util.js":       "",
		},
		exclude: func(id string) bool { return id == "vendor/lib" },
	}.build(t)

	parsed, err := extractor.Extract(context.Background(), "/src/main.js", "/src")

	require.NoError(t, err)
	assert.Equal(t, []string{"util"}, parsed.Dependencies)
}

func TestDependencyExtractor_UnresolvedPathReferenceFailsWhenStrict(t *testing.T) {
	extractor := extractorFixture{
		sources: map[string]string{"/src/a.js": "require('./missing')"},
		strict:  true,
	}.build(t)

	parsed, err := extractor.Extract(context.Background(), "/src/a.js", "/src")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedModule))
	assert.True(t, parsed.Loaded)
}

func TestDependencyExtractor_UnresolvedPathReferenceKeptAsOpaqueId(t *testing.T) {
	extractor := extractorFixture{sources: map[string]string{
		"/src/a.js": "require('./b'); require('./missing'); require('./b');",
		"/src/b.js": "",
	}}.build(t)

	parsed, err := extractor.Extract(context.Background(), "/src/a.js", "/src")

	require.NoError(t, err)
	assert.Equal(t, []string{"b", "./missing"}, parsed.Dependencies)
}

func TestDependencyExtractor_ScannerFailure(t *testing.T) {
	extractor := extractorFixture{
		sources: map[string]string{"/src/a.js": "require('x')"},
		scanner: scannerFunc(func(context.Context, []byte) ([]string, error) {
			return nil, errors.New("parser exploded")
		}),
	}.build(t)

	_, err := extractor.Extract(context.Background(), "/src/a.js", "/src")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan /src/a.js")
	assert.Contains(t, err.Error(), "parser exploded")
}

func TestDependencyExtractor_ReadFailureLeavesFileUnloaded(t *testing.T) {
	extractor := extractorFixture{sources: map[string]string{}}.build(t)

	parsed, err := extractor.Extract(context.Background(), "/src/gone.js", "/src")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRead))
	assert.False(t, parsed.Loaded)
}

func TestDependencyExtractor_CancelledContext(t *testing.T) {
	extractor := extractorFixture{sources: map[string]string{"/src/a.js": ""}}.build(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extractor.Extract(ctx, "/src/a.js", "/src")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelfExportNames(t *testing.T) {
	source := "module.exports = Router;\nmodule.exports=View\nmodule.exports = helpers\nmodule.exports = { A: 1 }\n"

	assert.Equal(t, []string{"Router", "View"}, SelfExportNames(source))
	assert.Empty(t, SelfExportNames("exports.x = 1"))
}
