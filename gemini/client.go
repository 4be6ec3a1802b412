package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fwojciec/quill"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ quill.Provider = (*Client)(nil)

// Client implements [quill.Provider] for the Google Gemini API.
type Client struct {
	client     *genai.Client
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID. Default is gemini-1.5-flash.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a new Gemini [Client] with the given API key and options.
// An empty key yields [quill.ErrNoCredential].
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key: %w", quill.ErrNoCredential)
	}
	c := &Client{model: defaultModel}
	for _, o := range opts {
		o(c)
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	gc, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c.client = gc
	return c, nil
}

// Model returns the default model ID.
func (c *Client) Model() string { return c.model }

// Generate sends one GenerateContent request and returns the candidate text.
func (c *Client) Generate(ctx context.Context, req quill.Request) (quill.Response, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	system, turns := quill.SplitSystem(req.Messages)
	resp, err := c.client.Models.GenerateContent(ctx, model, ConvertMessages(turns), buildConfig(req, system))
	if err != nil {
		return quill.Response{}, fmt.Errorf("gemini: %w", err)
	}
	return convertResponse(resp)
}

func buildConfig(req quill.Request, system string) *genai.GenerateContentConfig {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = quill.DefaultMaxTokens
	}
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	if req.Temperature != nil {
		temp := float32(*req.Temperature)
		config.Temperature = &temp
	}
	return config
}

// ConvertMessages converts non-system quill Messages to genai Contents.
// Assistant turns use the "model" role. Exported for testing.
func ConvertMessages(msgs []quill.Message) []*genai.Content {
	result := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := "user"
		if m.Role == quill.RoleAssistant {
			role = "model"
		}
		result = append(result, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Text}},
		})
	}
	return result
}

func convertResponse(resp *genai.GenerateContentResponse) (quill.Response, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return quill.Response{}, fmt.Errorf("gemini: response has no candidates")
	}
	cand := resp.Candidates[0]
	var b strings.Builder
	if cand.Content != nil {
		for _, p := range cand.Content.Parts {
			if p.Thought {
				continue
			}
			b.WriteString(p.Text)
		}
	}
	out := quill.Response{
		Text:       b.String(),
		StopReason: mapFinishReason(cand.FinishReason),
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = quill.Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
		}
	}
	return out, nil
}

func mapFinishReason(r genai.FinishReason) quill.StopReason {
	switch r {
	case genai.FinishReasonStop:
		return quill.StopEndTurn
	case genai.FinishReasonMaxTokens:
		return quill.StopLength
	case genai.FinishReasonSafety, genai.FinishReasonRecitation,
		genai.FinishReasonBlocklist, genai.FinishReasonProhibitedContent:
		return quill.StopSafety
	default:
		return quill.StopUnknown
	}
}
