package quill

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	Error   int // Error messages
	Success int // Correct answers
	Muted   int // Hints, previews, code gutters
	Accent  int // Headings, links, prompts
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Error:   1,
		Success: 2,
		Muted:   8,
		Accent:  5,
	}
}
