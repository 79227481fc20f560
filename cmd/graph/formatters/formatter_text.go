package formatters

import (
	"fmt"
	"strings"
)

// textFormatter prints one file per line with its imports indented below it.
type textFormatter struct{}

func (f textFormatter) Format(g FileGraph, opts RenderOptions) (string, error) {
	var sb strings.Builder
	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("# %s\n", opts.Label))
	}

	files := g.Files()
	nodeNames := BuildNodeNames(files)
	for _, file := range files {
		sb.WriteString(nodeNames[file])
		if file == g.Root {
			sb.WriteString(" (entry)")
		}
		sb.WriteString("\n")
		for _, dep := range g.Dependencies(file) {
			marker := "->"
			if g.InCycle(file, dep) {
				marker = "<>"
			}
			sb.WriteString(fmt.Sprintf("  %s %s\n", marker, nodeNames[dep]))
		}
		if opts.ShowUnresolved {
			for _, specifier := range g.UnresolvedOf(file) {
				sb.WriteString(fmt.Sprintf("  ?? %s\n", specifier))
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}
