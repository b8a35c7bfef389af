// Package dialect describes the source dialects the graph builder recognizes
// and how each one is turned into text the require scanner can read.
package dialect

import (
	"path/filepath"
	"sort"
	"strings"
)

// CompileFunc turns raw dialect source into JavaScript. filename is passed
// for diagnostics only.
type CompileFunc func(filename, source string) (string, error)

// Dialect is one recognized source dialect. A nil Compile means the dialect
// is read as-is.
type Dialect struct {
	Name       string
	Extensions []string
	Maturity   MaturityLevel
	Compile    CompileFunc
}

// NeedsPreprocessing reports whether sources of this dialect go through Compile.
func (d Dialect) NeedsPreprocessing() bool {
	return d.Compile != nil
}

var javaScript = Dialect{
	Name:       "JavaScript",
	Extensions: []string{".js"},
	Maturity:   MaturityActivelyTested,
}

// JSX is parsed by the JavaScript grammar directly, so it needs no compile step.
var jsx = Dialect{
	Name:       "JSX",
	Extensions: []string{".jsx"},
	Maturity:   MaturityBasicTests,
}

var coffeeScript = Dialect{
	Name:       "CoffeeScript",
	Extensions: []string{".coffee"},
	Maturity:   MaturityBasicTests,
	Compile:    CompileCoffeeScript,
}

// Registry is an ordered set of dialects keyed by file extension.
type Registry struct {
	dialects []Dialect
}

// NewRegistry returns a registry holding the given dialects in order.
func NewRegistry(dialects ...Dialect) *Registry {
	r := &Registry{}
	for _, d := range dialects {
		r.dialects = append(r.dialects, cloneDialect(d))
	}
	return r
}

// DefaultRegistry returns a fresh registry with JavaScript, JSX and CoffeeScript.
func DefaultRegistry() *Registry {
	return NewRegistry(javaScript, jsx, coffeeScript)
}

// Dialects returns a copy of the registered dialects.
func (r *Registry) Dialects() []Dialect {
	dialects := make([]Dialect, len(r.dialects))
	for i, d := range r.dialects {
		dialects[i] = cloneDialect(d)
	}
	return dialects
}

// ForFile returns the dialect whose extension matches filename.
func (r *Registry) ForFile(filename string) (Dialect, bool) {
	ext := filepath.Ext(filename)
	if ext == "" {
		return Dialect{}, false
	}
	for _, d := range r.dialects {
		for _, dialectExt := range d.Extensions {
			if dialectExt == ext {
				return d, true
			}
		}
	}
	return Dialect{}, false
}

// IsSourceFile reports whether filename carries a recognized extension.
func (r *Registry) IsSourceFile(filename string) bool {
	_, ok := r.ForFile(filename)
	return ok
}

// TrimExtension strips a recognized source extension from path. Paths with
// any other extension are returned unchanged.
func (r *Registry) TrimExtension(path string) string {
	if !r.IsSourceFile(path) {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// Extensions returns every recognized extension in sorted order.
func (r *Registry) Extensions() []string {
	var extensions []string
	for _, d := range r.dialects {
		extensions = append(extensions, d.Extensions...)
	}
	sort.Strings(extensions)
	return extensions
}

// WithCompiler returns a copy of the registry in which files with ext are
// preprocessed by fn. An unknown extension is registered as a new dialect.
func (r *Registry) WithCompiler(ext string, fn CompileFunc) *Registry {
	next := NewRegistry(r.dialects...)
	for i, d := range next.dialects {
		for _, dialectExt := range d.Extensions {
			if dialectExt == ext {
				next.dialects[i].Compile = fn
				return next
			}
		}
	}
	next.dialects = append(next.dialects, Dialect{
		Name:       strings.TrimPrefix(ext, "."),
		Extensions: []string{ext},
		Maturity:   MaturityUntested,
		Compile:    fn,
	})
	return next
}

func cloneDialect(d Dialect) Dialect {
	d.Extensions = append([]string(nil), d.Extensions...)
	return d
}
