package quill

import "fmt"

// Request carries the rendered messages and generation parameters for one
// model call. The provider uses its own defaults when fields are zero/nil.
type Request struct {
	Model       string // model ID, provider-specific; empty = provider default
	Messages    []Message
	MaxTokens   int      // 0 = provider default
	Temperature *float64 // nil = provider default
}

// Validate checks universal constraints on Request.
// Provider implementations may apply additional provider-specific validation.
func (r Request) Validate() error {
	if r.Temperature != nil {
		if *r.Temperature < 0 || *r.Temperature > 2 {
			return fmt.Errorf("temperature must be in [0, 2], got %g: %w", *r.Temperature, ErrValidation)
		}
	}
	if r.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative, got %d: %w", r.MaxTokens, ErrValidation)
	}
	if len(r.Messages) == 0 {
		return fmt.Errorf("request has no messages: %w", ErrValidation)
	}
	for i, m := range r.Messages {
		if err := m.Role.Validate(); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
	}
	return nil
}

// Response is the raw completion returned by a Provider.
type Response struct {
	Text       string
	StopReason StopReason
	Usage      Usage
}
