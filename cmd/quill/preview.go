package main

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// preview collapses whitespace in s and cuts it to at most width terminal
// columns, breaking only between grapheme clusters. A cut string ends in an
// ellipsis.
func preview(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	limit := width - runewidth.StringWidth(ellipsis)

	var b strings.Builder
	w := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		cw := runewidth.StringWidth(cluster)
		if w+cw > limit {
			break
		}
		b.WriteString(cluster)
		w += cw
	}
	return strings.TrimRight(b.String(), " ") + ellipsis
}
