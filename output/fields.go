package output

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/fwojciec/quill"
)

// Field describes one member of a record schema.
type Field struct {
	Name        string
	Type        string // JSON schema type: string, integer, number, boolean, array, object
	Items       string // element type when Type is array
	Description string
	Required    bool
}

// FieldsOf derives the record schema of struct type T from its tags:
//
//	json:"name,omitempty"  field name; omitempty marks the field optional
//	desc:"..."             description shown to the model
//	json:"-"               excluded
//
// Unexported fields are skipped.
func FieldsOf[T any]() ([]Field, error) {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("record type must be a struct, got %s: %w", t.Kind(), quill.ErrValidation)
	}
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, optional := jsonName(f)
		if name == "" {
			continue
		}
		typ, items := schemaType(f.Type)
		fields = append(fields, Field{
			Name:        name,
			Type:        typ,
			Items:       items,
			Description: strings.TrimSpace(f.Tag.Get("desc")),
			Required:    !optional,
		})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("record type %s has no fields: %w", t.Name(), quill.ErrValidation)
	}
	return fields, nil
}

func jsonName(f reflect.StructField) (name string, optional bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = f.Name
	}
	for _, p := range parts[1:] {
		if p == "omitempty" || p == "omitzero" {
			optional = true
		}
	}
	if f.Type.Kind() == reflect.Pointer {
		optional = true
	}
	return name, optional
}

func schemaType(t reflect.Type) (typ, items string) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string", ""
	case reflect.Bool:
		return "boolean", ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer", ""
	case reflect.Float32, reflect.Float64:
		return "number", ""
	case reflect.Slice, reflect.Array:
		elem, _ := schemaType(t.Elem())
		return "array", elem
	default:
		return "object", ""
	}
}

// schema renders fields as a JSON-schema-shaped value.
func schema(title string, fields []Field) map[string]any {
	props := make(map[string]any, len(fields))
	var required []string
	for _, f := range fields {
		p := map[string]any{"type": f.Type}
		if f.Description != "" {
			p["description"] = f.Description
		}
		if f.Items != "" {
			p["items"] = map[string]any{"type": f.Items}
		}
		props[f.Name] = p
		if f.Required {
			required = append(required, f.Name)
		}
	}
	s := map[string]any{
		"title":      title,
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}
