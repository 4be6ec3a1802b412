// Package openai implements [quill.Provider] for the OpenAI Chat Completions
// API using github.com/sashabaranov/go-openai.
package openai

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/fwojciec/quill"
	openaiapi "github.com/sashabaranov/go-openai"
)

const defaultModel = openaiapi.GPT4oMini

// Interface compliance check.
var _ quill.Provider = (*Client)(nil)

// Client implements [quill.Provider] for OpenAI chat models.
type Client struct {
	api        *openaiapi.Client
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the default model ID. Default is gpt-4o-mini.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithBaseURL sets the API base URL, including the /v1 suffix.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a new OpenAI [Client]. An empty key yields
// [quill.ErrNoCredential].
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: api key: %w", quill.ErrNoCredential)
	}
	c := &Client{model: defaultModel}
	for _, o := range opts {
		o(c)
	}
	cfg := openaiapi.DefaultConfig(apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	if c.httpClient != nil {
		cfg.HTTPClient = c.httpClient
	}
	c.api = openaiapi.NewClientWithConfig(cfg)
	return c, nil
}

// Model returns the default model ID.
func (c *Client) Model() string { return c.model }

// Generate sends one chat completion request.
func (c *Client) Generate(ctx context.Context, req quill.Request) (quill.Response, error) {
	resp, err := c.api.CreateChatCompletion(ctx, c.buildRequest(req))
	if err != nil {
		return quill.Response{}, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return quill.Response{}, fmt.Errorf("openai: response has no choices")
	}
	choice := resp.Choices[0]
	return quill.Response{
		Text:       choice.Message.Content,
		StopReason: mapFinishReason(choice.FinishReason),
		Usage: quill.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

func (c *Client) buildRequest(req quill.Request) openaiapi.ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = c.model
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = quill.DefaultMaxTokens
	}
	apiReq := openaiapi.ChatCompletionRequest{
		Model:               model,
		MaxCompletionTokens: maxTokens,
		Messages:            toAPIMessages(req.Messages),
	}
	if req.Temperature != nil {
		// The client omits a zero temperature, which the API reads as 1.
		apiReq.Temperature = float32(*req.Temperature)
		if apiReq.Temperature == 0 {
			apiReq.Temperature = math.SmallestNonzeroFloat32
		}
	}
	return apiReq
}

func toAPIMessages(msgs []quill.Message) []openaiapi.ChatCompletionMessage {
	res := make([]openaiapi.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		role := openaiapi.ChatMessageRoleUser
		switch m.Role {
		case quill.RoleSystem:
			role = openaiapi.ChatMessageRoleSystem
		case quill.RoleAssistant:
			role = openaiapi.ChatMessageRoleAssistant
		}
		res = append(res, openaiapi.ChatCompletionMessage{
			Role:    role,
			Content: m.Text,
		})
	}
	return res
}

func mapFinishReason(r openaiapi.FinishReason) quill.StopReason {
	switch r {
	case openaiapi.FinishReasonStop:
		return quill.StopEndTurn
	case openaiapi.FinishReasonLength:
		return quill.StopLength
	case openaiapi.FinishReasonContentFilter:
		return quill.StopSafety
	default:
		return quill.StopUnknown
	}
}
