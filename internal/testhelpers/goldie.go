// Package testhelpers holds golden-file helpers shared by formatter tests.
package testhelpers

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// DotGoldie compares against testdata/<name>.gold.dot.
func DotGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t, goldie.WithNameSuffix(".gold.dot"))
}

// MermaidGoldie compares against testdata/<name>.gold.mmd.
func MermaidGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t, goldie.WithNameSuffix(".gold.mmd"))
}

// JSONGoldie compares against testdata/<name>.gold.json.
func JSONGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t, goldie.WithNameSuffix(".gold.json"))
}

// TextGoldie compares against testdata/<name>.gold.txt.
func TextGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t, goldie.WithNameSuffix(".gold.txt"))
}
