// Package demo implements the example flows: each renders a fixed prompt,
// makes one model call, and interprets the answer.
//
// Every flow takes a quill.Provider so that the model can be swapped or
// mocked, and passes CallOptions through to quill.Call.
package demo

import (
	"context"

	"github.com/fwojciec/quill"
)

// HackerNewsLoader fetches a Hacker News item.
type HackerNewsLoader interface {
	HackerNews(ctx context.Context, id string) (quill.Document, error)
}

// WikipediaLoader fetches a Wikipedia article.
type WikipediaLoader interface {
	Wikipedia(ctx context.Context, title string) (quill.Document, error)
}
