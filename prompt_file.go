package quill

import (
	"fmt"
	"slices"
)

// TemplateFormatFString is the only supported PromptFile template format:
// {name} placeholders with doubled braces as escapes.
const TemplateFormatFString = "f-string"

// PromptFile is a single-string prompt template as stored on disk.
type PromptFile struct {
	InputVariables []string
	Template       string
	TemplateFormat string
}

// NewPromptFile describes t as a PromptFile.
func NewPromptFile(t Template) PromptFile {
	vars := t.Variables()
	if vars == nil {
		vars = []string{}
	}
	return PromptFile{
		InputVariables: vars,
		Template:       t.Text(),
		TemplateFormat: TemplateFormatFString,
	}
}

// Validate checks the template format and that the declared input
// variables are exactly the template's placeholders.
func (p PromptFile) Validate() error {
	_, err := p.parse()
	return err
}

// Sequence returns the prompt as a one-message user Sequence.
func (p PromptFile) Sequence() (Sequence, error) {
	t, err := p.parse()
	if err != nil {
		return Sequence{}, err
	}
	return NewSequence(t), nil
}

func (p PromptFile) parse() (Template, error) {
	if p.TemplateFormat != TemplateFormatFString {
		return Template{}, fmt.Errorf("unsupported template format %q: %w", p.TemplateFormat, ErrValidation)
	}
	t, err := NewTemplate(RoleUser, p.Template)
	if err != nil {
		return Template{}, err
	}
	declared := slices.Clone(p.InputVariables)
	slices.Sort(declared)
	actual := t.Variables()
	slices.Sort(actual)
	if !slices.Equal(declared, actual) {
		return Template{}, fmt.Errorf("input variables %v do not match template placeholders %v: %w",
			p.InputVariables, t.Variables(), ErrValidation)
	}
	return t, nil
}
