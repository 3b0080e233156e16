package format

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat represents the format for one-shot mode output
type OutputFormat string

const (
	// TextFormat prints the continuation alone (default)
	TextFormat OutputFormat = "text"

	// JSONFormat wraps the input and its continuation in a JSON object
	JSONFormat OutputFormat = "json"
)

// SupportedFormats lists the accepted values of the --output-format flag.
var SupportedFormats = []OutputFormat{TextFormat, JSONFormat}

// IsValid checks if the output format is valid
func (f OutputFormat) IsValid() bool {
	return f == TextFormat || f == JSONFormat
}

// String returns the string representation of the output format
func (f OutputFormat) String() string {
	return string(f)
}

// Parse converts a flag value into an OutputFormat. Matching is case-insensitive.
func Parse(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
	return f, nil
}

type completion struct {
	Text       string `json:"text"`
	Suggestion string `json:"suggestion"`
}

// FormatOutput renders the suggestion computed for text in the given format.
func FormatOutput(text, suggestion string, format OutputFormat) (string, error) {
	switch format {
	case TextFormat:
		return suggestion, nil
	case JSONFormat:
		jsonBytes, err := json.MarshalIndent(completion{Text: text, Suggestion: suggestion}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(jsonBytes), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
