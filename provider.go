package quill

import "context"

// Provider is a strategy pattern interface for hosted text-generation
// services. Generate performs exactly one network call; transport and
// service errors are returned to the caller without retry.
type Provider interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// Default generation parameters shared by every flow.
const (
	DefaultTemperature = 0.0
	DefaultMaxTokens   = 1024
)
