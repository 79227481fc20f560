package formatters

// RenderOptions contains optional parameters for formatting dependency graphs.
type RenderOptions struct {
	// Label is an optional title or label for the graph
	Label string
	// ShowUnresolved adds a node for every specifier that matched no file
	ShowUnresolved bool
}
