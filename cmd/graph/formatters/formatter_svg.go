package formatters

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// svgFormatter lays out the DOT rendering with Graphviz and returns SVG.
type svgFormatter struct{}

func (f svgFormatter) Format(g FileGraph, opts RenderOptions) (string, error) {
	dot, err := dotFormatter{}.Format(g, opts)
	if err != nil {
		return "", err
	}
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		return "", err
	}
	return string(svg), nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
