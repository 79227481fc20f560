package formatters

import (
	"strings"
	"testing"

	"github.com/LegacyCodeHQ/tsdeps/depgraph"
	"github.com/LegacyCodeHQ/tsdeps/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFileGraph(t *testing.T, root string, adjacency map[string][]string, unresolved ...depgraph.UnresolvedSpecifier) FileGraph {
	t.Helper()
	g, err := NewFileGraph(root, depgraph.DependencyGraph(adjacency), unresolved)
	require.NoError(t, err)
	return g
}

// simpleGraph is main.ts importing util.ts.
func simpleGraph(t *testing.T) FileGraph {
	return testFileGraph(t, "/project/src/main.ts", map[string][]string{
		"/project/src/main.ts": {"/project/src/util.ts"},
		"/project/src/util.ts": {},
	})
}

// cyclicGraph has a test entry, an a.ts/b.ts cycle, a declaration file and
// unresolved imports of fs (twice) and react.
func cyclicGraph(t *testing.T) FileGraph {
	return testFileGraph(t, "/p/src/a.test.ts", map[string][]string{
		"/p/src/a.test.ts":    {"/p/src/a.ts"},
		"/p/src/a.ts":         {"/p/src/b.ts"},
		"/p/src/b.ts":         {"/p/types/index.d.ts", "/p/src/a.ts"},
		"/p/types/index.d.ts": {},
	},
		depgraph.UnresolvedSpecifier{File: "/p/src/a.ts", Specifier: "fs"},
		depgraph.UnresolvedSpecifier{File: "/p/src/a.ts", Specifier: "fs"},
		depgraph.UnresolvedSpecifier{File: "/p/src/b.ts", Specifier: "react"},
	)
}

// packagesGraph imports two index.d.ts files that share a base name.
func packagesGraph(t *testing.T) FileGraph {
	return testFileGraph(t, "/p/main.ts", map[string][]string{
		"/p/main.ts":                   {"/p/node_modules/b/index.d.ts", "/p/node_modules/a/index.d.ts"},
		"/p/node_modules/a/index.d.ts": {},
		"/p/node_modules/b/index.d.ts": {},
	})
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format string
		want   Formatter
	}{
		{"dot", dotFormatter{}},
		{"mermaid", mermaidFormatter{}},
		{"json", jsonFormatter{}},
		{"text", textFormatter{}},
		{"SVG", svgFormatter{}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := NewFormatter(tt.format)
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
		})
	}
}

func TestNewFormatter_UnknownFormat(t *testing.T) {
	_, err := NewFormatter("png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dot, json, mermaid, text, svg")
}

func TestDOT_Simple(t *testing.T) {
	output, err := dotFormatter{}.Format(simpleGraph(t), RenderOptions{})
	require.NoError(t, err)

	g := testhelpers.DotGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestDOT_CyclesAndUnresolved(t *testing.T) {
	output, err := dotFormatter{}.Format(cyclicGraph(t), RenderOptions{Label: "demo", ShowUnresolved: true})
	require.NoError(t, err)

	g := testhelpers.DotGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestDOT_UnresolvedHiddenByDefault(t *testing.T) {
	output, err := dotFormatter{}.Format(cyclicGraph(t), RenderOptions{})
	require.NoError(t, err)

	assert.NotContains(t, output, "unresolved:")
	assert.NotContains(t, output, "label=\"demo\"")
}

func TestDOT_GenerateURL(t *testing.T) {
	url, ok := dotFormatter{}.GenerateURL("digraph {}")

	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(url, "https://dreampuf.github.io/GraphvizOnline/?engine=dot#"))
	assert.Contains(t, url, "digraph%20%7B%7D")
}

func TestMermaid_DuplicateBaseNames(t *testing.T) {
	output, err := mermaidFormatter{}.Format(packagesGraph(t), RenderOptions{})
	require.NoError(t, err)

	g := testhelpers.MermaidGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestMermaid_CyclesAndUnresolved(t *testing.T) {
	output, err := mermaidFormatter{}.Format(cyclicGraph(t), RenderOptions{Label: "demo", ShowUnresolved: true})
	require.NoError(t, err)

	g := testhelpers.MermaidGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestMermaid_GenerateURL(t *testing.T) {
	url, ok := mermaidFormatter{}.GenerateURL("flowchart LR")

	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(url, "https://mermaid.live/edit#base64:"))
}

func TestJSON_Simple(t *testing.T) {
	output, err := jsonFormatter{}.Format(simpleGraph(t), RenderOptions{})
	require.NoError(t, err)

	g := testhelpers.JSONGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestJSON_CycleWithUnresolved(t *testing.T) {
	graph := testFileGraph(t, "/p/a.ts", map[string][]string{
		"/p/a.ts": {"/p/b.ts"},
		"/p/b.ts": {"/p/a.ts"},
	}, depgraph.UnresolvedSpecifier{File: "/p/b.ts", Specifier: "lodash"})

	output, err := jsonFormatter{}.Format(graph, RenderOptions{Label: "loop", ShowUnresolved: true})
	require.NoError(t, err)

	g := testhelpers.JSONGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestText_CyclesAndUnresolved(t *testing.T) {
	output, err := textFormatter{}.Format(cyclicGraph(t), RenderOptions{Label: "demo", ShowUnresolved: true})
	require.NoError(t, err)

	g := testhelpers.TextGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestSVG_RendersDOT(t *testing.T) {
	output, err := svgFormatter{}.Format(simpleGraph(t), RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "<svg")
	assert.Contains(t, output, "main.ts")
}

func TestFileGraph_DropsUnresolvedOutsideGraph(t *testing.T) {
	graph := testFileGraph(t, "/p/a.ts", map[string][]string{"/p/a.ts": {}},
		depgraph.UnresolvedSpecifier{File: "/p/a.ts", Specifier: "x"},
		depgraph.UnresolvedSpecifier{File: "/p/gone.ts", Specifier: "y"},
	)

	assert.Equal(t, []string{"x"}, graph.UnresolvedSpecifiers())
	assert.Empty(t, graph.UnresolvedOf("/p/gone.ts"))
}

func TestFileGraph_FromGraph(t *testing.T) {
	loaded := &depgraph.Graph{
		Root: "/p/a.ts",
		Parsed: map[string]*depgraph.ParsedFile{
			"/p/a.ts": {Path: "/p/a.ts", Specifiers: []string{"./b", "zod"}},
			"/p/b.ts": {Path: "/p/b.ts"},
		},
		Children: map[string][]depgraph.Dependency{
			"/p/a.ts": {{Specifier: "./b", Path: "/p/b.ts"}, {Specifier: "zod"}},
			"/p/b.ts": {},
		},
	}

	graph, err := FromGraph(loaded)

	require.NoError(t, err)
	assert.Equal(t, []string{"/p/a.ts", "/p/b.ts"}, graph.Files())
	assert.Equal(t, []string{"zod"}, graph.UnresolvedOf("/p/a.ts"))
	assert.Empty(t, graph.Cycles)
}
