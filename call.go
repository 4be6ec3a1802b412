package quill

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// CallOption configures a single Call or ParseWithRepair invocation.
type CallOption func(*callConfig)

type callConfig struct {
	model       string
	maxTokens   int
	temperature float64
	logger      *slog.Logger
}

func newCallConfig(opts []CallOption) callConfig {
	cfg := callConfig{
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithModel sets the model ID for provider requests.
// Empty string means the provider uses its default model.
func WithModel(model string) CallOption {
	return func(c *callConfig) {
		c.model = model
	}
}

// WithMaxTokens overrides the output length cap (default 1024).
func WithMaxTokens(n int) CallOption {
	return func(c *callConfig) {
		c.maxTokens = n
	}
}

// WithTemperature overrides the sampling temperature (default 0).
func WithTemperature(t float64) CallOption {
	return func(c *callConfig) {
		c.temperature = t
	}
}

// WithLogger sets the logger used for call and repair diagnostics. If nil
// or not set, log output is discarded.
func WithLogger(l *slog.Logger) CallOption {
	return func(c *callConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Call sends msgs to the provider in a single request and returns the raw
// response. The request is validated before any network activity.
func Call(ctx context.Context, p Provider, msgs []Message, opts ...CallOption) (Response, error) {
	cfg := newCallConfig(opts)
	return call(ctx, p, msgs, &cfg)
}

func call(ctx context.Context, p Provider, msgs []Message, cfg *callConfig) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	temp := cfg.temperature
	req := Request{
		Model:       cfg.model,
		Messages:    msgs,
		MaxTokens:   cfg.maxTokens,
		Temperature: &temp,
	}
	if err := req.Validate(); err != nil {
		return Response{}, err
	}
	cfg.logger.Debug("model request", "messages", len(msgs), "model", cfg.model)
	resp, err := p.Generate(ctx, req)
	if err != nil {
		cfg.logger.Debug("model error", "error", err)
		return Response{}, err
	}
	cfg.logger.Debug("model response",
		"stop_reason", resp.StopReason,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens)
	return resp, nil
}

// Run renders seq with vars, sends it in one call, and returns the trimmed
// completion text.
func Run(ctx context.Context, p Provider, seq Sequence, vars map[string]any, opts ...CallOption) (string, error) {
	msgs, err := seq.Format(vars)
	if err != nil {
		return "", fmt.Errorf("format prompt: %w", err)
	}
	resp, err := Call(ctx, p, msgs, opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}
