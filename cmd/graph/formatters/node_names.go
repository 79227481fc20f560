package formatters

import (
	"path/filepath"
	"strings"
)

// BuildNodeNames returns stable, distinct display names for file paths.
// Paths that share the same base name are disambiguated by increasing path
// suffix depth, so node_modules/a/index.d.ts and node_modules/b/index.d.ts
// become a/index.d.ts and b/index.d.ts.
func BuildNodeNames(paths []string) map[string]string {
	names := make(map[string]string, len(paths))
	groupedByBase := make(map[string][]string, len(paths))
	for _, path := range paths {
		base := filepath.Base(path)
		groupedByBase[base] = append(groupedByBase[base], path)
	}

	for base, group := range groupedByBase {
		if len(group) == 1 {
			names[group[0]] = base
			continue
		}
		for depth := 2; ; depth++ {
			suffixes, distinct := suffixesAt(group, depth)
			if distinct || depth > maxDepth(group) {
				for i, path := range group {
					names[path] = suffixes[i]
				}
				break
			}
		}
	}

	return names
}

func suffixesAt(paths []string, depth int) ([]string, bool) {
	suffixes := make([]string, len(paths))
	seen := make(map[string]bool, len(paths))
	distinct := true
	for i, path := range paths {
		suffixes[i] = pathSuffix(path, depth)
		if seen[suffixes[i]] {
			distinct = false
		}
		seen[suffixes[i]] = true
	}
	return suffixes, distinct
}

// maxDepth stops the search for identical paths, which never become distinct.
func maxDepth(paths []string) int {
	deepest := 0
	for _, path := range paths {
		if n := len(pathParts(path)); n > deepest {
			deepest = n
		}
	}
	return deepest
}

func pathParts(path string) []string {
	normalized := filepath.ToSlash(filepath.Clean(path))
	return strings.Split(strings.TrimPrefix(normalized, "/"), "/")
}

func pathSuffix(path string, depth int) string {
	parts := pathParts(path)
	if depth > len(parts) {
		depth = len(parts)
	}
	return strings.Join(parts[len(parts)-depth:], "/")
}
