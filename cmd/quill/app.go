package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fwojciec/quill"
	bt "github.com/fwojciec/quill/bubbletea"
	"github.com/fwojciec/quill/demo"
)

const renderWidth = 80

// documentLoader fetches the documents used by the hn and wiki commands.
type documentLoader interface {
	demo.HackerNewsLoader
	demo.WikipediaLoader
}

// app carries the resolved dependencies of a single command run.
type app struct {
	provider quill.Provider
	loader   documentLoader
	opts     []quill.CallOption

	stdin  io.Reader
	stdout io.Writer
	logger *slog.Logger
	theme  quill.Theme
	styles bt.Styles
	width  int

	// readDate runs the interactive date prompt.
	readDate func(ctx context.Context, m bt.DateEntry) (time.Time, error)
}

func newApp(stdout io.Writer, logger *slog.Logger) *app {
	theme := quill.DefaultTheme()
	return &app{
		stdin:  os.Stdin,
		stdout: stdout,
		logger: logger,
		theme:  theme,
		styles: bt.NewStyles(theme),
		width:  renderWidth,
		readDate: func(ctx context.Context, m bt.DateEntry) (time.Time, error) {
			return bt.RunDateEntry(ctx, m)
		},
	}
}
