package goldmark

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/quill"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type ansiRenderer struct {
	width int
	src   []byte
	out   bytes.Buffer

	bold      lipgloss.Style
	italic    lipgloss.Style
	heading   lipgloss.Style
	muted     lipgloss.Style
	underline lipgloss.Style
}

func newRenderer(theme quill.Theme, width int) *ansiRenderer {
	return &ansiRenderer{
		width:     width,
		bold:      lipgloss.NewStyle().Bold(true),
		italic:    lipgloss.NewStyle().Italic(true),
		heading:   lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		muted:     lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		underline: lipgloss.NewStyle().Underline(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *ansiRenderer) render(source []byte) string {
	r.src = source
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	r.blocks(doc, "")
	return strings.TrimRight(r.out.String(), "\n")
}

// blocks renders the block children of node, separating siblings with a
// blank line. prefix is written before every output line.
func (r *ansiRenderer) blocks(node ast.Node, prefix string) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.block(c, prefix)
		if c.NextSibling() != nil {
			r.out.WriteString(strings.TrimRight(prefix, " ") + "\n")
		}
	}
}

func (r *ansiRenderer) block(node ast.Node, prefix string) {
	switch n := node.(type) {
	case *ast.Heading:
		r.wrapped(prefix, prefix, r.heading.Render(r.inline(n)))

	case *ast.Paragraph, *ast.TextBlock:
		r.wrapped(prefix, prefix, r.inline(n))

	case *ast.FencedCodeBlock:
		if lang := string(n.Language(r.src)); lang != "" {
			r.out.WriteString(prefix + r.muted.Render(lang) + "\n")
		}
		r.code(n, prefix)

	case *ast.CodeBlock:
		r.code(n, prefix)

	case *ast.Blockquote:
		r.blocks(n, prefix+r.muted.Render("│")+" ")

	case *ast.List:
		r.list(n, prefix)

	case *ast.ThematicBreak:
		r.out.WriteString(prefix + r.muted.Render(strings.Repeat("─", min(r.width, 40))) + "\n")

	case *ast.HTMLBlock:
		r.code(n, prefix)

	default:
		r.blocks(n, prefix)
	}
}

func (r *ansiRenderer) code(n ast.Node, prefix string) {
	gutter := prefix + r.muted.Render("│") + " "
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		r.out.WriteString(gutter + strings.TrimRight(string(seg.Value(r.src)), "\n") + "\n")
	}
}

func (r *ansiRenderer) list(n *ast.List, prefix string) {
	num := n.Start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		marker := "• "
		if n.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		first := prefix + marker
		rest := prefix + strings.Repeat(" ", len(marker))
		for ic := c.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				r.wrapped(first, rest, r.inline(in))
			case *ast.List:
				r.list(in, rest)
			default:
				r.block(in, rest)
			}
			first = rest
		}
	}
}

// wrapped writes content word-wrapped to the remaining width, with first on
// the first line and rest on continuation lines.
func (r *ansiRenderer) wrapped(first, rest, content string) {
	w := r.width - lipgloss.Width(rest)
	if w < 10 {
		w = 10
	}
	lines := strings.Split(lipgloss.NewStyle().Width(w).Render(content), "\n")
	for i, line := range lines {
		p := rest
		if i == 0 {
			p = first
		}
		r.out.WriteString(p + strings.TrimRight(line, " ") + "\n")
	}
}

func (r *ansiRenderer) inline(node ast.Node) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.span(c, &buf)
	}
	return buf.String()
}

func (r *ansiRenderer) span(node ast.Node, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(r.src))
		switch {
		case n.HardLineBreak():
			buf.WriteByte('\n')
		case n.SoftLineBreak():
			buf.WriteByte(' ')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		if n.Level == 1 {
			buf.WriteString(r.italic.Render(r.inline(n)))
		} else {
			buf.WriteString(r.bold.Render(r.inline(n)))
		}

	case *ast.CodeSpan:
		buf.WriteString(r.bold.Render(r.inline(n)))

	case *ast.Link:
		buf.WriteString(r.underline.Render(r.inline(n)))
		buf.WriteString(" " + r.muted.Render("("+string(n.Destination)+")"))

	case *ast.AutoLink:
		buf.WriteString(r.underline.Render(string(n.URL(r.src))))

	case *ast.Image:
		buf.WriteString(r.underline.Render(r.inline(n)))
		buf.WriteString(" " + r.muted.Render("("+string(n.Destination)+")"))

	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(r.src))
		}

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.span(c, buf)
		}
	}
}
