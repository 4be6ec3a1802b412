package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/fwojciec/quill"
	"github.com/fwojciec/quill/goldmark"
)

const recordInstructions = `The output should be formatted as a JSON instance that conforms to the JSON schema below.

As an example, for the schema {"properties": {"foo": {"title": "Foo", "description": "a list of strings", "type": "array", "items": {"type": "string"}}}, "required": ["foo"]}
the object {"foo": ["bar", "baz"]} is a well-formatted instance of the schema. The object {"properties": {"foo": ["bar", "baz"]}} is not well-formatted.

Here is the output schema:
` + "```\n%s\n```"

// Record parses model output into a struct of type T. The schema is derived
// from T's struct tags (see FieldsOf); every required field must be present
// and non-null, and values must decode into T's field types.
type Record[T any] struct {
	fields []Field
	schema string
}

// NewRecord returns a Record parser for struct type T.
func NewRecord[T any]() (*Record[T], error) {
	fields, err := FieldsOf[T]()
	if err != nil {
		return nil, err
	}
	title := reflect.TypeFor[T]().Name()
	b, err := json.Marshal(schema(title, fields))
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return &Record[T]{fields: fields, schema: string(b)}, nil
}

// MustRecord is like NewRecord but panics on error.
func MustRecord[T any]() *Record[T] {
	r, err := NewRecord[T]()
	if err != nil {
		panic(err)
	}
	return r
}

// Fields returns the record schema.
func (r *Record[T]) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

// Schema returns the JSON schema embedded in the format instructions.
func (r *Record[T]) Schema() string { return r.schema }

// FormatInstructions asks the model for a JSON instance of the schema.
func (r *Record[T]) FormatInstructions() string {
	return fmt.Sprintf(recordInstructions, r.schema)
}

// Parse extracts a JSON object from text (a fenced code block when present,
// otherwise the outermost braces) and validates it against the schema.
func (r *Record[T]) Parse(text string) (T, error) {
	var zero T
	raw, err := extractObject(text)
	if err != nil {
		return zero, err
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return zero, fmt.Errorf("invalid JSON object: %v: %w", err, quill.ErrParse)
	}
	var missing []string
	for _, f := range r.fields {
		v, ok := obj[f.Name]
		if f.Required && (!ok || bytes.Equal(bytes.TrimSpace(v), []byte("null"))) {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return zero, fmt.Errorf("missing required fields %s: %w", strings.Join(missing, ", "), quill.ErrSchema)
	}

	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return zero, fmt.Errorf("%v: %w", err, quill.ErrSchema)
	}
	return out, nil
}

func extractObject(text string) (string, error) {
	if code, ok := goldmark.ExtractCode(text, "json"); ok {
		text = code
	}
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON object found in output: %w", quill.ErrParse)
	}
	return text[start : end+1], nil
}
