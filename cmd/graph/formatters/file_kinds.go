package formatters

import (
	"path/filepath"
	"sort"
	"strings"
)

var availableColors = []string{
	"lightblue", "lightyellow", "mistyrose", "lightsalmon",
	"lightpink", "lavender", "peachpuff", "plum", "powderblue", "khaki",
	"palegoldenrod", "thistle",
}

// FileKind groups files for coloring. Declaration files form their own kind
// apart from .ts sources.
func FileKind(path string) string {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".d.ts") {
		return ".d.ts"
	}
	return filepath.Ext(base)
}

// IsTestFile reports whether path looks like a test or spec module.
func IsTestFile(path string) bool {
	base := filepath.Base(path)
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return true
	}
	return strings.Contains(filepath.ToSlash(path), "/__tests__/")
}

// GetExtensionColors assigns a fill color to every file kind in fileNames.
func GetExtensionColors(fileNames []string) map[string]string {
	unique := make(map[string]bool)
	for _, fileName := range fileNames {
		if kind := FileKind(fileName); kind != "" {
			unique[kind] = true
		}
	}

	kinds := make([]string, 0, len(unique))
	for kind := range unique {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	colors := make(map[string]string, len(kinds))
	for i, kind := range kinds {
		colors[kind] = availableColors[i%len(availableColors)]
	}
	return colors
}

// majorityKind returns the most common kind among files. Ties go to the
// alphabetically first kind.
func majorityKind(files []string) (string, int) {
	counts := make(map[string]int)
	for _, file := range files {
		counts[FileKind(file)]++
	}

	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	majority, maxCount := "", 0
	for _, kind := range kinds {
		if counts[kind] > maxCount {
			majority, maxCount = kind, counts[kind]
		}
	}
	return majority, len(kinds)
}

// NodeColors returns the fill color for each file. Test files are light green.
// Files of the majority kind are white, as is everything when only one kind
// is present; other kinds get their extension color.
func NodeColors(files []string) map[string]string {
	majority, kindCount := majorityKind(files)
	extensionColors := GetExtensionColors(files)

	colors := make(map[string]string, len(files))
	for _, file := range files {
		switch {
		case IsTestFile(file):
			colors[file] = "lightgreen"
		case kindCount < 2 || FileKind(file) == majority:
			colors[file] = "white"
		default:
			color, ok := extensionColors[FileKind(file)]
			if !ok {
				color = "white"
			}
			colors[file] = color
		}
	}
	return colors
}
