package json_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/quill"
	quilljson "github.com/fwojciec/quill/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tripPlan = quill.PromptFile{
	InputVariables: []string{"destination", "budget", "duration"},
	Template:       "Plan a trip to {destination} on a {budget} budget for {duration}.",
	TemplateFormat: quill.TemplateFormatFString,
}

func TestMarshalPrompt_FieldNames(t *testing.T) {
	t.Parallel()
	data, err := quilljson.MarshalPrompt(tripPlan)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "prompt", raw["_type"])
	assert.Equal(t, "f-string", raw["template_format"])
	assert.Equal(t, tripPlan.Template, raw["template"])
	assert.Equal(t, []any{"destination", "budget", "duration"}, raw["input_variables"])
}

func TestMarshalPrompt_RoundTrip(t *testing.T) {
	t.Parallel()
	data, err := quilljson.MarshalPrompt(tripPlan)
	require.NoError(t, err)
	got, err := quilljson.UnmarshalPrompt(data)
	require.NoError(t, err)
	assert.Equal(t, tripPlan, got)
}

func TestMarshalPrompt_NoVariables(t *testing.T) {
	t.Parallel()
	data, err := quilljson.MarshalPrompt(quill.PromptFile{Template: "Say hi.", TemplateFormat: "f-string"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"input_variables": []`)
}

func TestMarshalPrompt_Invalid(t *testing.T) {
	t.Parallel()
	_, err := quilljson.MarshalPrompt(quill.PromptFile{Template: "{a}", TemplateFormat: "f-string"})
	assert.ErrorIs(t, err, quill.ErrValidation)
}

func TestUnmarshalPrompt(t *testing.T) {
	t.Parallel()

	t.Run("format defaults to f-string", func(t *testing.T) {
		t.Parallel()
		got, err := quilljson.UnmarshalPrompt([]byte(`{"_type": "prompt", "input_variables": ["x"], "template": "{x}"}`))
		require.NoError(t, err)
		assert.Equal(t, quill.TemplateFormatFString, got.TemplateFormat)
	})

	t.Run("extra keys are ignored", func(t *testing.T) {
		t.Parallel()
		got, err := quilljson.UnmarshalPrompt([]byte(`{"_type": "prompt", "input_variables": [], "template": "hi",
			"template_format": "f-string", "output_parser": null, "partial_variables": {}, "validate_template": false}`))
		require.NoError(t, err)
		assert.Equal(t, "hi", got.Template)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()
		_, err := quilljson.UnmarshalPrompt([]byte(`{"_type": "few_shot", "input_variables": [], "template": "hi"}`))
		assert.ErrorIs(t, err, quill.ErrValidation)
	})

	t.Run("mismatched variables", func(t *testing.T) {
		t.Parallel()
		_, err := quilljson.UnmarshalPrompt([]byte(`{"_type": "prompt", "input_variables": ["a"], "template": "{b}"}`))
		assert.ErrorIs(t, err, quill.ErrValidation)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		_, err := quilljson.UnmarshalPrompt([]byte(`{"_type":`))
		assert.Error(t, err)
	})
}

func TestSave_And_Load(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "trip_plan_prompt.json")

	require.NoError(t, quilljson.Save(path, tripPlan))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	got, err := quilljson.Load(path)
	require.NoError(t, err)
	assert.Equal(t, tripPlan, got)
}

func TestSave_CreatesParentDirectories(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "deep", "prompt.json")
	require.NoError(t, quilljson.Save(path, tripPlan))
	got, err := quilljson.Load(path)
	require.NoError(t, err)
	assert.Equal(t, tripPlan.Template, got.Template)
}

func TestSave_Overwrites(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "prompt.json")
	require.NoError(t, quilljson.Save(path, tripPlan))
	next := quill.NewPromptFile(quill.User("Describe {city}."))
	require.NoError(t, quilljson.Save(path, next))
	got, err := quilljson.Load(path)
	require.NoError(t, err)
	assert.Equal(t, next, got)
}

func TestLoad_NonexistentFile(t *testing.T) {
	t.Parallel()
	_, err := quilljson.Load("/nonexistent/path/prompt.json")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
