package quill

import (
	"fmt"
	"strings"
	"unicode"
)

// Template is a role-tagged prompt pattern with named {placeholders}.
// Doubled braces ({{ and }}) render as literal braces. A Template is
// immutable once constructed; the zero value renders as an empty user
// message.
type Template struct {
	role     Role
	text     string
	segments []segment
	literal  bool
}

// segment is either literal text or a variable reference.
type segment struct {
	text     string
	variable string
}

// NewTemplate parses text and returns a Template for role.
func NewTemplate(role Role, text string) (Template, error) {
	if err := role.Validate(); err != nil {
		return Template{}, err
	}
	segs, err := parseTemplate(text)
	if err != nil {
		return Template{}, err
	}
	return Template{role: role, text: text, segments: segs}, nil
}

// MustTemplate is like NewTemplate but panics on error. It is meant for
// templates declared as package-level literals.
func MustTemplate(role Role, text string) Template {
	t, err := NewTemplate(role, text)
	if err != nil {
		panic(err)
	}
	return t
}

// System returns a system Template. It panics if text does not parse.
func System(text string) Template { return MustTemplate(RoleSystem, text) }

// User returns a user Template. It panics if text does not parse.
func User(text string) Template { return MustTemplate(RoleUser, text) }

// Assistant returns an assistant Template. It panics if text does not parse.
func Assistant(text string) Template { return MustTemplate(RoleAssistant, text) }

// Literal returns a Template whose text is sent verbatim. Braces are not
// interpreted. Few-shot example turns use it.
func Literal(role Role, text string) Template {
	return Template{role: role, text: text, literal: true}
}

// Role returns the template's role.
func (t Template) Role() Role {
	if t.role == "" {
		return RoleUser
	}
	return t.role
}

// Text returns the unrendered template text.
func (t Template) Text() string { return t.text }

// Variables returns the placeholder names in order of first appearance.
func (t Template) Variables() []string {
	var names []string
	seen := make(map[string]bool)
	for _, s := range t.segments {
		if s.variable == "" || seen[s.variable] {
			continue
		}
		seen[s.variable] = true
		names = append(names, s.variable)
	}
	return names
}

// Format substitutes vars into every placeholder. Values are rendered with
// fmt.Sprint. Keys that no placeholder references are ignored.
func (t Template) Format(vars map[string]any) (string, error) {
	if t.literal {
		return t.text, nil
	}
	var b strings.Builder
	for _, s := range t.segments {
		if s.variable == "" {
			b.WriteString(s.text)
			continue
		}
		v, ok := vars[s.variable]
		if !ok {
			return "", fmt.Errorf("%q: %w", s.variable, ErrMissingVariable)
		}
		b.WriteString(fmt.Sprint(v))
	}
	return b.String(), nil
}

// partial returns a copy of t with the given variables substituted and the
// remaining placeholders left in place.
func (t Template) partial(vars map[string]any) Template {
	if t.literal {
		return t
	}
	out := Template{role: t.role, segments: make([]segment, 0, len(t.segments))}
	var text strings.Builder
	for _, s := range t.segments {
		if s.variable != "" {
			if v, ok := vars[s.variable]; ok {
				lit := fmt.Sprint(v)
				out.segments = append(out.segments, segment{text: lit})
				text.WriteString(escapeBraces(lit))
				continue
			}
			out.segments = append(out.segments, s)
			text.WriteString("{" + s.variable + "}")
			continue
		}
		out.segments = append(out.segments, s)
		text.WriteString(escapeBraces(s.text))
	}
	out.text = text.String()
	return out
}

func escapeBraces(s string) string {
	return strings.NewReplacer("{", "{{", "}", "}}").Replace(s)
}

func parseTemplate(text string) ([]segment, error) {
	var (
		segs []segment
		lit  strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{text: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '{':
			if i+1 < len(text) && text[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unclosed '{' at offset %d: %w", i, ErrTemplateSyntax)
			}
			name := text[i+1 : i+1+end]
			if !validName(name) {
				return nil, fmt.Errorf("invalid placeholder %q at offset %d: %w", name, i, ErrTemplateSyntax)
			}
			flush()
			segs = append(segs, segment{variable: name})
			i += end + 1
		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, fmt.Errorf("single '}' at offset %d: %w", i, ErrTemplateSyntax)
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return segs, nil
}

// validName accepts identifier-like placeholder names.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
