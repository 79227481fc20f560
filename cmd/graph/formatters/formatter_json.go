package formatters

import (
	"encoding/json"
)

// jsonFormatter formats dependency graphs as JSON with full paths.
type jsonFormatter struct{}

type jsonGraphOutput struct {
	Label      string               `json:"label,omitempty"`
	Root       string               `json:"root"`
	Nodes      []jsonGraphNode      `json:"nodes"`
	Edges      []jsonGraphEdge      `json:"edges"`
	Cycles     [][]string           `json:"cycles"`
	Unresolved []jsonUnresolvedSpec `json:"unresolved,omitempty"`
}

type jsonGraphNode struct {
	Path       string   `json:"path"`
	Name       string   `json:"name"`
	Attributes []string `json:"attributes,omitempty"`
}

type jsonGraphEdge struct {
	From    string `json:"from"`
	To      string `json:"to"`
	InCycle bool   `json:"inCycle"`
}

type jsonUnresolvedSpec struct {
	File      string `json:"file"`
	Specifier string `json:"specifier"`
}

// Format converts the dependency graph to JSON format.
func (f jsonFormatter) Format(g FileGraph, opts RenderOptions) (string, error) {
	files := g.Files()
	nodeNames := BuildNodeNames(files)

	nodes := make([]jsonGraphNode, 0, len(files))
	for _, file := range files {
		node := jsonGraphNode{Path: file, Name: nodeNames[file]}
		if file == g.Root {
			node.Attributes = append(node.Attributes, "entry")
		}
		if FileKind(file) == ".d.ts" {
			node.Attributes = append(node.Attributes, "declaration")
		}
		if IsTestFile(file) {
			node.Attributes = append(node.Attributes, "test")
		}
		nodes = append(nodes, node)
	}

	edges := []jsonGraphEdge{}
	for _, file := range files {
		for _, dep := range g.Dependencies(file) {
			edges = append(edges, jsonGraphEdge{From: file, To: dep, InCycle: g.InCycle(file, dep)})
		}
	}

	cycles := [][]string{}
	cycles = append(cycles, g.Cycles...)

	output := jsonGraphOutput{
		Label:  opts.Label,
		Root:   g.Root,
		Nodes:  nodes,
		Edges:  edges,
		Cycles: cycles,
	}
	if opts.ShowUnresolved {
		for _, u := range g.Unresolved {
			output.Unresolved = append(output.Unresolved, jsonUnresolvedSpec{File: u.File, Specifier: u.Specifier})
		}
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
