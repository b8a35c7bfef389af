// Package testhelpers holds golden-file helpers shared by formatter and
// command tests.
package testhelpers

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// JSONGoldie stores golden files as testdata/<name>.gold.json.
func JSONGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t, goldie.WithNameSuffix(".gold.json"))
}

// DotGoldie stores golden files as testdata/<name>.gold.dot.
func DotGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t, goldie.WithNameSuffix(".gold.dot"))
}

// MermaidGoldie stores golden files as testdata/<name>.gold.mmd.
func MermaidGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t, goldie.WithNameSuffix(".gold.mmd"))
}

// TextGoldie stores golden files as testdata/<name>.gold.txt.
func TextGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t, goldie.WithNameSuffix(".gold.txt"))
}
