package quill

import "fmt"

// Sequence is an ordered list of prompt templates rendered together.
type Sequence struct {
	templates []Template
}

// NewSequence returns a Sequence of the given templates in order.
func NewSequence(templates ...Template) Sequence {
	return Sequence{templates: append([]Template(nil), templates...)}
}

// Templates returns a copy of the sequence's templates.
func (s Sequence) Templates() []Template {
	return append([]Template(nil), s.templates...)
}

// Len returns the number of templates.
func (s Sequence) Len() int { return len(s.templates) }

// Variables returns the union of placeholder names across all templates in
// order of first appearance.
func (s Sequence) Variables() []string {
	var names []string
	seen := make(map[string]bool)
	for _, t := range s.templates {
		for _, v := range t.Variables() {
			if seen[v] {
				continue
			}
			seen[v] = true
			names = append(names, v)
		}
	}
	return names
}

// Format renders every template in order. It fails with ErrMissingVariable
// if any referenced placeholder has no key in vars.
func (s Sequence) Format(vars map[string]any) ([]Message, error) {
	msgs := make([]Message, 0, len(s.templates))
	for i, t := range s.templates {
		text, err := t.Format(vars)
		if err != nil {
			return nil, fmt.Errorf("message %d (%s): %w", i, t.Role(), err)
		}
		msgs = append(msgs, Message{Role: t.Role(), Text: text})
	}
	return msgs, nil
}

// Partial returns a new Sequence with vars bound ahead of time. Placeholders
// not present in vars remain for a later Format call.
func (s Sequence) Partial(vars map[string]any) Sequence {
	out := Sequence{templates: make([]Template, len(s.templates))}
	for i, t := range s.templates {
		out.templates[i] = t.partial(vars)
	}
	return out
}

// Append returns a new Sequence with templates added at the end.
func (s Sequence) Append(templates ...Template) Sequence {
	out := Sequence{templates: make([]Template, 0, len(s.templates)+len(templates))}
	out.templates = append(out.templates, s.templates...)
	out.templates = append(out.templates, templates...)
	return out
}
