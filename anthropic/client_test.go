package anthropic_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/quill"
	"github.com/fwojciec/quill/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okResponse = `{"id":"msg_1","type":"message","role":"assistant","model":"m",` +
	`"content":[{"type":"text","text":"Seoul, "},{"type":"text","text":"5 days"}],` +
	`"stop_reason":"end_turn","usage":{"input_tokens":31,"output_tokens":7}}`

func okHandler(captured *[]byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*captured, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(okResponse))
	}
}

func TestNew_MissingKey(t *testing.T) {
	t.Parallel()
	_, err := anthropic.New("")
	assert.ErrorIs(t, err, quill.ErrNoCredential)
}

func TestClient_RequestFormat(t *testing.T) {
	t.Parallel()

	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-api-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("Anthropic-Version"))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		okHandler(&captured)(w, r)
	}))
	defer srv.Close()

	temp := 0.0
	client, err := anthropic.New("test-api-key", anthropic.WithBaseURL(srv.URL))
	require.NoError(t, err)
	resp, err := client.Generate(context.Background(), quill.Request{
		Model: "claude-opus-4-20250514",
		Messages: []quill.Message{
			quill.SystemMessage("You are helpful."),
			quill.UserMessage("Hello"),
			quill.AssistantMessage("Hi"),
			quill.UserMessage("Thanks"),
		},
		MaxTokens:   1024,
		Temperature: &temp,
	})
	require.NoError(t, err)
	assert.Equal(t, quill.Response{
		Text:       "Seoul, 5 days",
		StopReason: quill.StopEndTurn,
		Usage:      quill.Usage{InputTokens: 31, OutputTokens: 7},
	}, resp)

	var body map[string]any
	require.NoError(t, json.Unmarshal(captured, &body))

	assert.Equal(t, "claude-opus-4-20250514", body["model"])
	assert.Equal(t, float64(1024), body["max_tokens"])
	assert.Equal(t, "You are helpful.", body["system"])
	assert.Equal(t, 0.0, body["temperature"])
	assert.NotContains(t, body, "stream")

	msgs := body["messages"].([]any)
	require.Len(t, msgs, 3)
	roles := make([]string, len(msgs))
	for i, m := range msgs {
		roles[i] = m.(map[string]any)["role"].(string)
	}
	assert.Equal(t, []string{"user", "assistant", "user"}, roles)

	content0 := msgs[0].(map[string]any)["content"].([]any)
	require.Len(t, content0, 1)
	block0 := content0[0].(map[string]any)
	assert.Equal(t, "text", block0["type"])
	assert.Equal(t, "Hello", block0["text"])
}

func TestClient_DefaultModelAndMaxTokens(t *testing.T) {
	t.Parallel()

	var captured []byte
	srv := httptest.NewServer(okHandler(&captured))
	defer srv.Close()

	client, err := anthropic.New("test-key", anthropic.WithBaseURL(srv.URL))
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), quill.Request{
		Messages: []quill.Message{quill.UserMessage("Hi")},
	})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(captured, &body))
	assert.Equal(t, client.Model(), body["model"])
	assert.Equal(t, float64(quill.DefaultMaxTokens), body["max_tokens"])
	assert.NotContains(t, body, "system")
	assert.NotContains(t, body, "temperature")
}

func TestClient_WithModel(t *testing.T) {
	t.Parallel()

	var captured []byte
	srv := httptest.NewServer(okHandler(&captured))
	defer srv.Close()

	client, err := anthropic.New("k", anthropic.WithBaseURL(srv.URL), anthropic.WithModel("claude-3-opus"))
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), quill.Request{Messages: []quill.Message{quill.UserMessage("Hi")}})
	require.NoError(t, err)
	assert.Contains(t, string(captured), `"model":"claude-3-opus"`)
}

func TestClient_StopReasons(t *testing.T) {
	t.Parallel()
	for raw, want := range map[string]quill.StopReason{
		"end_turn":      quill.StopEndTurn,
		"stop_sequence": quill.StopEndTurn,
		"max_tokens":    quill.StopLength,
		"refusal":       quill.StopSafety,
		"pause_turn":    quill.StopUnknown,
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"x"}],"stop_reason":"` + raw + `"}`))
		}))
		client, err := anthropic.New("k", anthropic.WithBaseURL(srv.URL))
		require.NoError(t, err)
		resp, err := client.Generate(context.Background(), quill.Request{Messages: []quill.Message{quill.UserMessage("Hi")}})
		srv.Close()
		require.NoError(t, err)
		assert.Equal(t, want, resp.StopReason, raw)
	}
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"max_tokens: integer above 1 expected"}}`))
	}))
	defer srv.Close()

	client, err := anthropic.New("test-key", anthropic.WithBaseURL(srv.URL))
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), quill.Request{
		Messages: []quill.Message{quill.UserMessage("Hi")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_request_error")
	assert.Contains(t, err.Error(), "max_tokens")
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_HTTPErrorNonJSON(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal server error"))
	}))
	defer srv.Close()

	client, err := anthropic.New("test-key", anthropic.WithBaseURL(srv.URL))
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), quill.Request{
		Messages: []quill.Message{quill.UserMessage("Hi")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_MalformedBody(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	client, err := anthropic.New("test-key", anthropic.WithBaseURL(srv.URL))
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), quill.Request{Messages: []quill.Message{quill.UserMessage("Hi")}})
	assert.ErrorContains(t, err, "anthropic: decode response")
}
