package formatters

import "strings"

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatMermaid OutputFormat = "mermaid"
)

var outputFormats = []OutputFormat{OutputFormatJSON, OutputFormatDOT, OutputFormatMermaid}

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat maps a user-supplied name to an OutputFormat, ignoring case.
func ParseOutputFormat(name string) (OutputFormat, bool) {
	for _, f := range outputFormats {
		if strings.EqualFold(name, f.String()) {
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
