package formatters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileKind(t *testing.T) {
	assert.Equal(t, ".ts", FileKind("/p/a.ts"))
	assert.Equal(t, ".d.ts", FileKind("/p/node_modules/@types/node/fs.d.ts"))
	assert.Equal(t, ".tsx", FileKind("/p/App.tsx"))
	assert.Equal(t, "", FileKind("/p/Makefile"))
}

func TestIsTestFile(t *testing.T) {
	assert.True(t, IsTestFile("/p/src/a.test.ts"))
	assert.True(t, IsTestFile("/p/src/a.spec.tsx"))
	assert.True(t, IsTestFile("/p/src/__tests__/a.ts"))
	assert.False(t, IsTestFile("/p/src/testing.ts"))
}

func TestGetExtensionColors(t *testing.T) {
	colors := GetExtensionColors([]string{"/p/a.ts", "/p/b.d.ts", "/p/c.tsx", "/p/README"})

	assert.Equal(t, map[string]string{
		".d.ts": "lightblue",
		".ts":   "lightyellow",
		".tsx":  "mistyrose",
	}, colors)
}

func TestGetExtensionColors_Empty(t *testing.T) {
	assert.Empty(t, GetExtensionColors(nil))
}

func TestNodeColors(t *testing.T) {
	colors := NodeColors([]string{"/p/a.ts", "/p/b.ts", "/p/a.test.ts", "/p/types.d.ts"})

	assert.Equal(t, map[string]string{
		"/p/a.ts":       "white",
		"/p/b.ts":       "white",
		"/p/a.test.ts":  "lightgreen",
		"/p/types.d.ts": "lightblue",
	}, colors)
}

func TestNodeColors_SingleKindIsWhite(t *testing.T) {
	colors := NodeColors([]string{"/p/x.d.ts"})

	assert.Equal(t, map[string]string{"/p/x.d.ts": "white"}, colors)
}
