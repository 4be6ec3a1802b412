package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/quill"
)

// Interface compliance check.
var _ quill.Provider = (*Client)(nil)

// Client implements [quill.Provider] for the Anthropic Messages API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the default model ID.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a new Anthropic [Client] with the given API key and options.
// An empty key yields [quill.ErrNoCredential].
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: api key: %w", quill.ErrNoCredential)
	}
	c := &Client{
		apiKey:     apiKey,
		model:      defaultModel,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Model returns the default model ID.
func (c *Client) Model() string { return c.model }

// Generate sends one request to the Messages API and returns the text of
// the response's text blocks.
func (c *Client) Generate(ctx context.Context, req quill.Request) (quill.Response, error) {
	body, err := c.buildRequestBody(req)
	if err != nil {
		return quill.Response{}, fmt.Errorf("anthropic: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return quill.Response{}, fmt.Errorf("anthropic: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return quill.Response{}, fmt.Errorf("anthropic: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return quill.Response{}, parseHTTPError(resp)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return quill.Response{}, fmt.Errorf("anthropic: decode response: %w", err)
	}
	return convertResponse(apiResp), nil
}

func (c *Client) buildRequestBody(req quill.Request) ([]byte, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = quill.DefaultMaxTokens
	}
	system, turns := quill.SplitSystem(req.Messages)

	return json.Marshal(apiRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		System:      system,
		Messages:    convertMessages(turns),
		Temperature: req.Temperature,
	})
}

func convertMessages(msgs []quill.Message) []apiMessage {
	result := make([]apiMessage, 0, len(msgs))
	for _, m := range msgs {
		role := "user"
		if m.Role == quill.RoleAssistant {
			role = "assistant"
		}
		result = append(result, apiMessage{
			Role:    role,
			Content: []apiContentBlock{{Type: "text", Text: m.Text}},
		})
	}
	return result
}

func convertResponse(r apiResponse) quill.Response {
	var b strings.Builder
	for _, block := range r.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return quill.Response{
		Text:       b.String(),
		StopReason: mapStopReason(r.StopReason),
		Usage: quill.Usage{
			InputTokens:  r.Usage.InputTokens,
			OutputTokens: r.Usage.OutputTokens,
		},
	}
}

func mapStopReason(s string) quill.StopReason {
	switch s {
	case "end_turn", "stop_sequence":
		return quill.StopEndTurn
	case "max_tokens":
		return quill.StopLength
	case "refusal":
		return quill.StopSafety
	default:
		return quill.StopUnknown
	}
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("anthropic: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error.Type == "" {
		return fmt.Errorf("anthropic: HTTP %d: %s", resp.StatusCode, string(body))
	}
	return fmt.Errorf("anthropic: %s: %s", apiErr.Error.Type, apiErr.Error.Message)
}
