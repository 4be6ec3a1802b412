// Package bubbletea provides interactive terminal prompts built on Bubble Tea.
package bubbletea

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RunDateEntry runs m as an inline program and returns the accepted date.
// It blocks until the user answers, gives up, or ctx is cancelled.
func RunDateEntry(ctx context.Context, m DateEntry, opts ...tea.ProgramOption) (time.Time, error) {
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return time.Time{}, ctx.Err()
		}
		return time.Time{}, fmt.Errorf("date entry: %w", err)
	}
	fm, ok := final.(DateEntry)
	if !ok {
		return time.Time{}, fmt.Errorf("date entry: unexpected model %T", final)
	}
	if err := fm.Err(); err != nil {
		return time.Time{}, err
	}
	v, _ := fm.Value()
	return v, nil
}
