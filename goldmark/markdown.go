// Package goldmark renders model answers to ANSI-styled terminal output and
// pulls fenced code out of markdown responses, using goldmark for parsing
// and lipgloss for styling.
package goldmark

import (
	"strings"

	"github.com/fwojciec/quill"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const defaultWidth = 80

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs, quotes, and list items are word-wrapped to width. Code blocks
// are rendered at full width without reflow.
func Render(source string, width int, theme quill.Theme) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	r := newRenderer(theme, width)
	return r.render([]byte(source))
}

// ExtractCode returns the body of the first fenced code block whose info
// string matches lang. An empty lang matches any fenced block, and blocks
// without a language match any lang. The bool reports whether a block was
// found.
func ExtractCode(source, lang string) (string, bool) {
	src := []byte(source)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var (
		body  string
		found bool
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fc, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		got := strings.ToLower(string(fc.Language(src)))
		if lang != "" && got != "" && got != strings.ToLower(lang) {
			return ast.WalkSkipChildren, nil
		}
		body = blockText(fc, src)
		found = true
		return ast.WalkStop, nil
	})
	return body, found
}

func blockText(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimRight(b.String(), "\n")
}
