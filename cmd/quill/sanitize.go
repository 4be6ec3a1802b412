package main

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// sanitize makes model or web text safe to print: escape sequences are
// stripped, CRLF and lone CR become LF, and control characters other than
// tab and newline are dropped.
func sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || (r > 0x1F && r != 0x7F) {
			return r
		}
		return -1
	}, s)
}
