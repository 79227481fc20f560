package formatters

import (
	"fmt"
	"net/url"
	"strings"
)

const cycleColor = "#d62728"

// dotFormatter formats dependency graphs as Graphviz DOT.
type dotFormatter struct{}

// Format converts the dependency graph to Graphviz DOT format.
func (f dotFormatter) Format(g FileGraph, opts RenderOptions) (string, error) {
	var sb strings.Builder
	sb.WriteString("digraph dependencies {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}
	sb.WriteString("\n")

	files := g.Files()
	nodeNames := BuildNodeNames(files)
	colors := NodeColors(files)

	for _, file := range files {
		attrs := fmt.Sprintf("label=%q, style=filled, fillcolor=%s", nodeNames[file], colors[file])
		if file == g.Root {
			attrs += ", penwidth=2"
		}
		sb.WriteString(fmt.Sprintf("  %q [%s];\n", nodeNames[file], attrs))
	}
	var unresolved []string
	if opts.ShowUnresolved {
		unresolved = g.UnresolvedSpecifiers()
	}
	for _, specifier := range unresolved {
		sb.WriteString(fmt.Sprintf("  %q [label=%q, style=dashed, fontcolor=gray40];\n", unresolvedNodeID(specifier), specifier))
	}
	if len(files) > 0 {
		sb.WriteString("\n")
	}

	for _, file := range files {
		for _, dep := range g.Dependencies(file) {
			if g.InCycle(file, dep) {
				sb.WriteString(fmt.Sprintf("  %q -> %q [color=%q, penwidth=2];\n", nodeNames[file], nodeNames[dep], cycleColor))
			} else {
				sb.WriteString(fmt.Sprintf("  %q -> %q;\n", nodeNames[file], nodeNames[dep]))
			}
		}
		if opts.ShowUnresolved {
			for _, specifier := range g.UnresolvedOf(file) {
				sb.WriteString(fmt.Sprintf("  %q -> %q [style=dashed];\n", nodeNames[file], unresolvedNodeID(specifier)))
			}
		}
	}

	sb.WriteString("}")
	return sb.String(), nil
}

func unresolvedNodeID(specifier string) string {
	return "unresolved:" + specifier
}

// GenerateURL creates a GraphvizOnline URL with the DOT graph embedded.
func (f dotFormatter) GenerateURL(output string) (string, bool) {
	encoded := url.PathEscape(output)
	return fmt.Sprintf("https://dreampuf.github.io/GraphvizOnline/?engine=dot#%s", encoded), true
}
