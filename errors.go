package quill

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request or message failed validation.
	ErrValidation = errors.New("validation error")

	// ErrTemplateSyntax indicates a template string could not be parsed.
	ErrTemplateSyntax = errors.New("template syntax error")

	// ErrMissingVariable indicates a placeholder had no substitution value.
	ErrMissingVariable = errors.New("missing template variable")

	// ErrNoCredential indicates no API key was configured for a provider.
	ErrNoCredential = errors.New("no API credential configured")

	// ErrNoContent indicates a fetched document had no usable text.
	ErrNoContent = errors.New("no content found")

	// ErrParse indicates model output did not match the expected format.
	ErrParse = errors.New("parse error")

	// ErrSchema indicates a parsed record did not satisfy its declared schema.
	ErrSchema = errors.New("schema validation error")

	// ErrTooManyAttempts indicates interactive input exhausted its attempts.
	ErrTooManyAttempts = errors.New("too many attempts")
)
