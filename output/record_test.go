package output_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/quill"
	"github.com/fwojciec/quill/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scientist struct {
	Name      string `json:"name" desc:"The name of the scientist"`
	Field     string `json:"field" desc:"The field of expertise"`
	Discovery string `json:"discovery" desc:"The discovery made by the scientist"`
}

type book struct {
	Title  string   `json:"title"`
	Year   int      `json:"year,omitempty"`
	Tags   []string `json:"tags"`
	Rating *float64 `json:"rating"`
	secret string
	Skip   string `json:"-"`
}

func TestFieldsOf(t *testing.T) {
	t.Parallel()
	fields, err := output.FieldsOf[book]()
	require.NoError(t, err)
	assert.Equal(t, []output.Field{
		{Name: "title", Type: "string", Required: true},
		{Name: "year", Type: "integer"},
		{Name: "tags", Type: "array", Items: "string", Required: true},
		{Name: "rating", Type: "number"},
	}, fields)
}

func TestFieldsOf_NotAStruct(t *testing.T) {
	t.Parallel()
	_, err := output.FieldsOf[string]()
	assert.ErrorIs(t, err, quill.ErrValidation)

	_, err = output.NewRecord[struct{ hidden int }]()
	assert.ErrorIs(t, err, quill.ErrValidation)
}

func TestRecord_Parse(t *testing.T) {
	t.Parallel()
	r := output.MustRecord[scientist]()

	t.Run("bare object", func(t *testing.T) {
		t.Parallel()
		got, err := r.Parse(`{"name": "Marie Curie", "field": "Physics", "discovery": "Radioactivity"}`)
		require.NoError(t, err)
		assert.Equal(t, scientist{Name: "Marie Curie", Field: "Physics", Discovery: "Radioactivity"}, got)
	})

	t.Run("fenced json block with surrounding prose", func(t *testing.T) {
		t.Parallel()
		text := "Here you go:\n\n```json\n{\"name\": \"Isaac Newton\", \"field\": \"Physics\", \"discovery\": \"Gravity\"}\n```\n\nAnything else?"
		got, err := r.Parse(text)
		require.NoError(t, err)
		assert.Equal(t, "Isaac Newton", got.Name)
		assert.Equal(t, "Gravity", got.Discovery)
	})

	t.Run("missing required field", func(t *testing.T) {
		t.Parallel()
		_, err := r.Parse(`{"name": "Marie Curie", "field": "Physics"}`)
		assert.ErrorIs(t, err, quill.ErrSchema)
		assert.Contains(t, err.Error(), "discovery")
	})

	t.Run("null required field", func(t *testing.T) {
		t.Parallel()
		_, err := r.Parse(`{"name": "Marie Curie", "field": null, "discovery": "Polonium"}`)
		assert.ErrorIs(t, err, quill.ErrSchema)
	})

	t.Run("wrong value type", func(t *testing.T) {
		t.Parallel()
		_, err := r.Parse(`{"name": 42, "field": "Physics", "discovery": "Radium"}`)
		assert.ErrorIs(t, err, quill.ErrSchema)
	})

	t.Run("no object", func(t *testing.T) {
		t.Parallel()
		_, err := r.Parse("Marie Curie, Physics, Radioactivity")
		assert.ErrorIs(t, err, quill.ErrParse)
	})

	t.Run("malformed object", func(t *testing.T) {
		t.Parallel()
		_, err := r.Parse(`{"name": "Marie Curie",}`)
		assert.ErrorIs(t, err, quill.ErrParse)
	})
}

func TestRecord_OptionalFields(t *testing.T) {
	t.Parallel()
	got, err := output.MustRecord[book]().Parse(`{"title": "Dune", "tags": ["sf"]}`)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Zero(t, got.Year)
	assert.Nil(t, got.Rating)
}

func TestRecord_FormatInstructions(t *testing.T) {
	t.Parallel()
	r := output.MustRecord[scientist]()
	got := r.FormatInstructions()
	assert.Contains(t, got, "JSON instance that conforms to the JSON schema below")
	assert.Contains(t, got, "```\n"+r.Schema()+"\n```")

	var schema struct {
		Title      string                    `json:"title"`
		Properties map[string]map[string]any `json:"properties"`
		Required   []string                  `json:"required"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.Schema()), &schema))
	assert.Equal(t, "scientist", schema.Title)
	assert.Equal(t, "The field of expertise", schema.Properties["field"]["description"])
	assert.Equal(t, []string{"name", "field", "discovery"}, schema.Required)
}

func TestRecord_FieldsIsACopy(t *testing.T) {
	t.Parallel()
	r := output.MustRecord[scientist]()
	f := r.Fields()
	f[0].Name = "changed"
	assert.Equal(t, "name", r.Fields()[0].Name)
}
