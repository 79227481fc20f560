package formatters

import "strings"

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatMermaid OutputFormat = "mermaid"
	OutputFormatText    OutputFormat = "text"
	OutputFormatSVG     OutputFormat = "svg"
)

var outputFormats = []OutputFormat{
	OutputFormatDOT,
	OutputFormatJSON,
	OutputFormatMermaid,
	OutputFormatText,
	OutputFormatSVG,
}

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat matches s against the known formats, ignoring case.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	candidate := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range outputFormats {
		if f == candidate {
			return f, true
		}
	}
	return "", false
}

// SupportedFormats lists the format names for help and error messages.
func SupportedFormats() string {
	names := make([]string, len(outputFormats))
	for i, f := range outputFormats {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}
