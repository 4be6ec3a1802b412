// Package yaml persists prompt templates as YAML files using gopkg.in/yaml.v3.
// The document shape matches the json package's.
package yaml

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/quill"
	"gopkg.in/yaml.v3"
)

const promptType = "prompt"

type promptDTO struct {
	Type           string   `yaml:"_type"`
	InputVariables []string `yaml:"input_variables"`
	Template       string   `yaml:"template"`
	TemplateFormat string   `yaml:"template_format"`
}

// MarshalPrompt validates p and serializes it to YAML.
func MarshalPrompt(p quill.PromptFile) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	vars := p.InputVariables
	if vars == nil {
		vars = []string{}
	}
	return yaml.Marshal(promptDTO{
		Type:           promptType,
		InputVariables: vars,
		Template:       p.Template,
		TemplateFormat: p.TemplateFormat,
	})
}

// UnmarshalPrompt deserializes and validates a PromptFile. A missing
// template_format defaults to f-string.
func UnmarshalPrompt(data []byte) (quill.PromptFile, error) {
	var dto promptDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
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

// Save writes a PromptFile to a YAML file, creating parent directories as
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
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a PromptFile from a YAML file.
func Load(path string) (quill.PromptFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return quill.PromptFile{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalPrompt(data)
}
