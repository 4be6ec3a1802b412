// Package mock provides test doubles for quill interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/quill"
)

// Interface compliance checks.
var (
	_ quill.Provider       = (*Provider)(nil)
	_ quill.Parser[string] = (*Parser[string])(nil)
)

// Provider is a test double for quill.Provider.
// Set GenerateFn before calling Generate.
type Provider struct {
	GenerateFn func(ctx context.Context, req quill.Request) (quill.Response, error)
}

// Generate delegates to GenerateFn.
func (p *Provider) Generate(ctx context.Context, req quill.Request) (quill.Response, error) {
	return p.GenerateFn(ctx, req)
}

// Parser is a test double for quill.Parser.
// ParseFn panics when nil to catch missing setup. InstructionsFn is nil-safe
// and returns an empty string.
type Parser[T any] struct {
	ParseFn        func(text string) (T, error)
	InstructionsFn func() string
}

// Parse delegates to ParseFn.
func (p *Parser[T]) Parse(text string) (T, error) {
	return p.ParseFn(text)
}

// FormatInstructions delegates to InstructionsFn. Returns "" when unset.
func (p *Parser[T]) FormatInstructions() string {
	if p.InstructionsFn == nil {
		return ""
	}
	return p.InstructionsFn()
}

// Loader is a test double for the demo document loaders.
type Loader struct {
	HackerNewsFn func(ctx context.Context, id string) (quill.Document, error)
	WikipediaFn  func(ctx context.Context, title string) (quill.Document, error)
}

// HackerNews delegates to HackerNewsFn.
func (l *Loader) HackerNews(ctx context.Context, id string) (quill.Document, error) {
	return l.HackerNewsFn(ctx, id)
}

// Wikipedia delegates to WikipediaFn.
func (l *Loader) Wikipedia(ctx context.Context, title string) (quill.Document, error) {
	return l.WikipediaFn(ctx, title)
}
