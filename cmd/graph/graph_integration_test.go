package graph

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/LegacyCodeHQ/tsdeps/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func fixtureRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", "..", "testdata", "integration", "fixtures", "ts-app"))
	require.NoError(t, err)
	root, err = filepath.EvalSymlinks(root)
	require.NoError(t, err)
	return root
}

func TestGraph_FixtureProjectText(t *testing.T) {
	output, err := runGraphCommand(t, "src/main.ts", "-r", fixtureRoot(t), "-f", "text", "-u")
	require.NoError(t, err)

	g := testhelpers.TextGoldie(t)
	g.Assert(t, t.Name(), []byte(strings.TrimRight(output, "\n")))
}

func TestGraph_FixtureProjectTextSequential(t *testing.T) {
	concurrent, err := runGraphCommand(t, "src/main.ts", "-r", fixtureRoot(t), "-f", "text", "-u")
	require.NoError(t, err)
	sequential, err := runGraphCommand(t, "src/main.ts", "-r", fixtureRoot(t), "-f", "text", "-u", "-w", "1")
	require.NoError(t, err)

	require.Equal(t, concurrent, sequential)
}
