package formatters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildNodeNames(t *testing.T) {
	names := BuildNodeNames([]string{
		"/p/src/main.ts",
		"/p/node_modules/a/index.d.ts",
		"/p/node_modules/b/index.d.ts",
		"/p/src/x/util/index.ts",
		"/p/src/y/util/index.ts",
		"/p/src/util/index.ts",
	})

	assert.Equal(t, map[string]string{
		"/p/src/main.ts":               "main.ts",
		"/p/node_modules/a/index.d.ts": "a/index.d.ts",
		"/p/node_modules/b/index.d.ts": "b/index.d.ts",
		"/p/src/x/util/index.ts":       "x/util/index.ts",
		"/p/src/y/util/index.ts":       "y/util/index.ts",
		"/p/src/util/index.ts":         "src/util/index.ts",
	}, names)
}

func TestBuildNodeNames_Empty(t *testing.T) {
	assert.Empty(t, BuildNodeNames(nil))
}
