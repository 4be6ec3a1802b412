// Package output implements quill.Parser for the value shapes the demo flows
// ask models for: timestamps in a declared pattern, JSON records derived
// from Go structs, comma-separated lists, and plain text.
package output

import (
	"fmt"
	"strings"

	"github.com/fwojciec/quill"
)

// Interface compliance checks.
var (
	_ quill.Parser[[]string] = List{}
	_ quill.Parser[string]   = Text{}
)

// List parses a comma-separated list of values.
type List struct{}

// Parse splits text on commas, trimming whitespace and dropping empties.
func (List) Parse(text string) ([]string, error) {
	var items []string
	for _, part := range strings.Split(text, ",") {
		if s := strings.TrimSpace(part); s != "" {
			items = append(items, s)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("empty list: %w", quill.ErrParse)
	}
	return items, nil
}

// FormatInstructions describes the list format.
func (List) FormatInstructions() string {
	return "Your response should be a list of comma separated values, eg: `foo, bar, baz` or `foo,bar,baz`"
}

// Text returns the trimmed completion. Only blank output fails.
type Text struct{}

// Parse trims text and rejects blank output.
func (Text) Parse(text string) (string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", fmt.Errorf("empty response: %w", quill.ErrParse)
	}
	return s, nil
}

// FormatInstructions is empty: any non-blank text is acceptable.
func (Text) FormatInstructions() string { return "" }
