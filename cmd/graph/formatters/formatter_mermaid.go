package formatters

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// mermaidFormatter formats dependency graphs as Mermaid.js flowcharts.
type mermaidFormatter struct{}

// Format converts the dependency graph to Mermaid.js flowchart format.
func (f mermaidFormatter) Format(g FileGraph, opts RenderOptions) (string, error) {
	var sb strings.Builder

	// Add title if label provided
	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}

	sb.WriteString("flowchart LR\n")

	files := g.Files()
	nodeNames := BuildNodeNames(files)

	for i, cycle := range g.Cycles {
		names := make([]string, len(cycle))
		for j, file := range cycle {
			names[j] = nodeNames[file]
		}
		sb.WriteString(fmt.Sprintf("%%%% cycle %d: %s\n", i+1, strings.Join(names, ", ")))
	}

	// Mermaid node IDs can't have dots or special characters.
	nodeIDs := make(map[string]string, len(files))
	for i, file := range files {
		nodeIDs[file] = fmt.Sprintf("n%d", i)
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", nodeIDs[file], escapeMermaidLabel(nodeNames[file])))
	}

	var unresolved []string
	if opts.ShowUnresolved {
		unresolved = g.UnresolvedSpecifiers()
	}
	unresolvedIDs := make(map[string]string, len(unresolved))
	for i, specifier := range unresolved {
		unresolvedIDs[specifier] = fmt.Sprintf("u%d", i)
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", unresolvedIDs[specifier], escapeMermaidLabel(specifier)))
	}

	var edgesSB strings.Builder
	edgeIndex := 0
	var cycleEdgeIndices []int
	for _, file := range files {
		for _, dep := range g.Dependencies(file) {
			edgesSB.WriteString(fmt.Sprintf("    %s --> %s\n", nodeIDs[file], nodeIDs[dep]))
			if g.InCycle(file, dep) {
				cycleEdgeIndices = append(cycleEdgeIndices, edgeIndex)
			}
			edgeIndex++
		}
		if opts.ShowUnresolved {
			for _, specifier := range g.UnresolvedOf(file) {
				edgesSB.WriteString(fmt.Sprintf("    %s -.-> %s\n", nodeIDs[file], unresolvedIDs[specifier]))
				edgeIndex++
			}
		}
	}

	majority, kindCount := majorityKind(files)
	var testNodes, majorityNodes []string
	for _, file := range files {
		if IsTestFile(file) {
			testNodes = append(testNodes, nodeIDs[file])
		} else if kindCount > 1 && FileKind(file) == majority {
			majorityNodes = append(majorityNodes, nodeIDs[file])
		}
	}
	unresolvedNodes := make([]string, len(unresolved))
	for i, specifier := range unresolved {
		unresolvedNodes[i] = unresolvedIDs[specifier]
	}

	var stylesSB strings.Builder
	if len(testNodes) > 0 {
		stylesSB.WriteString("    classDef testFile fill:#90EE90,stroke:#228B22,color:#000000\n")
	}
	if len(majorityNodes) > 0 {
		stylesSB.WriteString("    classDef majorityExtension fill:#FFFFFF,stroke:#999999,color:#000000\n")
	}
	if len(unresolvedNodes) > 0 {
		stylesSB.WriteString("    classDef unresolved fill:#FFFFFF,stroke:#999999,stroke-dasharray: 5 5,color:#666666\n")
	}
	if len(testNodes) > 0 {
		stylesSB.WriteString(fmt.Sprintf("    class %s testFile\n", strings.Join(testNodes, ",")))
	}
	if len(majorityNodes) > 0 {
		stylesSB.WriteString(fmt.Sprintf("    class %s majorityExtension\n", strings.Join(majorityNodes, ",")))
	}
	if len(unresolvedNodes) > 0 {
		stylesSB.WriteString(fmt.Sprintf("    class %s unresolved\n", strings.Join(unresolvedNodes, ",")))
	}
	cycleFiles := g.CycleFiles()
	for _, file := range files {
		if cycleFiles[file] {
			stylesSB.WriteString(fmt.Sprintf("    style %s stroke:%s,stroke-width:3px\n", nodeIDs[file], cycleColor))
		}
	}
	for _, idx := range cycleEdgeIndices {
		stylesSB.WriteString(fmt.Sprintf("    linkStyle %d stroke:%s,stroke-width:3px,stroke-dasharray: 5 5\n", idx, cycleColor))
	}

	if edgesSB.Len() > 0 {
		sb.WriteString("\n")
		sb.WriteString(edgesSB.String())
	}
	if stylesSB.Len() > 0 {
		sb.WriteString("\n")
		sb.WriteString(stylesSB.String())
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}

func escapeMermaidLabel(label string) string {
	return strings.ReplaceAll(label, "\"", "#quot;")
}

// GenerateURL creates a mermaid.live URL with the diagram embedded.
func (f mermaidFormatter) GenerateURL(output string) (string, bool) {
	payload := map[string]interface{}{
		"code": output,
		"mermaid": map[string]interface{}{
			"theme": "default",
		},
		"autoSync":      true,
		"updateDiagram": true,
	}

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("https://mermaid.live/edit#%s", url.PathEscape(output)), true
	}

	encoded := base64.URLEncoding.EncodeToString(jsonBytes)
	return fmt.Sprintf("https://mermaid.live/edit#base64:%s", encoded), true
}
