// Package json persists prompt templates as JSON files.
//
// The wire format carries a "_type" discriminator so that files written by
// other prompt tooling in the same shape load unchanged.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/quill"
)

const promptType = "prompt"

// promptDTO is the JSON representation of a PromptFile.
type promptDTO struct {
	Type           string   `json:"_type"`
	InputVariables []string `json:"input_variables"`
	Template       string   `json:"template"`
	TemplateFormat string   `json:"template_format"`
}

// MarshalPrompt validates p and serializes it to indented JSON.
func MarshalPrompt(p quill.PromptFile) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	vars := p.InputVariables
	if vars == nil {
		vars = []string{}
	}
	return json.MarshalIndent(promptDTO{
		Type:           promptType,
		InputVariables: vars,
		Template:       p.Template,
		TemplateFormat: p.TemplateFormat,
	}, "", "  ")
}

// UnmarshalPrompt deserializes and validates a PromptFile. A missing
// template_format defaults to f-string.
func UnmarshalPrompt(data []byte) (quill.PromptFile, error) {
	var dto promptDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return quill.PromptFile{}, fmt.Errorf("unmarshal prompt: %w", err)
	}
	if dto.Type != promptType {
		return quill.PromptFile{}, fmt.Errorf("unsupported _type %q: %w", dto.Type, quill.ErrValidation)
	}
	p := quill.PromptFile{
		InputVariables: dto.InputVariables,
		Template:       dto.Template,
		TemplateFormat: dto.TemplateFormat,
	}
	if p.TemplateFormat == "" {
		p.TemplateFormat = quill.TemplateFormatFString
	}
	if err := p.Validate(); err != nil {
		return quill.PromptFile{}, err
	}
	return p, nil
}

// Save writes a PromptFile to a JSON file, creating parent directories as
// needed. The file is replaced atomically.
func Save(path string, p quill.PromptFile) error {
	data, err := MarshalPrompt(p)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a PromptFile from a JSON file.
func Load(path string) (quill.PromptFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return quill.PromptFile{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalPrompt(data)
}
