package depgraph_test

import (
	"testing"

	"github.com/LegacyCodeHQ/tsdeps/depgraph"
	"github.com/stretchr/testify/assert"
)

func sampleGraph() *depgraph.Graph {
	return &depgraph.Graph{
		Root: "/p/main.ts",
		Parsed: map[string]*depgraph.ParsedFile{
			"/p/main.ts": {Path: "/p/main.ts", Specifiers: []string{"./b", "react", "./a", "./b"}},
			"/p/a.ts":    {Path: "/p/a.ts", Specifiers: []string{"./missing"}},
			"/p/b.ts":    {Path: "/p/b.ts"},
		},
		Children: map[string][]depgraph.Dependency{
			"/p/main.ts": {
				{Specifier: "./b", Path: "/p/b.ts"},
				{Specifier: "react"},
				{Specifier: "./a", Path: "/p/a.ts"},
				{Specifier: "./b", Path: "/p/b.ts"},
			},
			"/p/a.ts": {{Specifier: "./missing"}},
			"/p/b.ts": {},
		},
	}
}

func TestGraph_Files(t *testing.T) {
	assert.Equal(t, []string{"/p/a.ts", "/p/b.ts", "/p/main.ts"}, sampleGraph().Files())
}

func TestGraph_DependencyGraph(t *testing.T) {
	result := sampleGraph().DependencyGraph()

	// Duplicates collapse in first-occurrence order and unresolved specifiers drop out.
	assert.Equal(t, depgraph.DependencyGraph{
		"/p/main.ts": {"/p/b.ts", "/p/a.ts"},
		"/p/a.ts":    {},
		"/p/b.ts":    {},
	}, result)
}

func TestGraph_Unresolved(t *testing.T) {
	assert.Equal(t, []depgraph.UnresolvedSpecifier{
		{File: "/p/a.ts", Specifier: "./missing"},
		{File: "/p/main.ts", Specifier: "react"},
	}, sampleGraph().Unresolved())
}

func TestGraph_UnresolvedEmpty(t *testing.T) {
	g := &depgraph.Graph{
		Root:     "/p/main.ts",
		Parsed:   map[string]*depgraph.ParsedFile{"/p/main.ts": {Path: "/p/main.ts"}},
		Children: map[string][]depgraph.Dependency{"/p/main.ts": {}},
	}

	assert.Empty(t, g.Unresolved())
}

func TestGraph_CloseNil(t *testing.T) {
	var g *depgraph.Graph
	assert.NotPanics(t, g.Close)
}

func TestDependency_Resolved(t *testing.T) {
	assert.True(t, depgraph.Dependency{Specifier: "./a", Path: "/p/a.ts"}.Resolved())
	assert.False(t, depgraph.Dependency{Specifier: "fs"}.Resolved())
}
