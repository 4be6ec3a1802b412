package bubbletea

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/quill"
)

// DefaultMaxAttempts bounds how many invalid answers DateEntry accepts.
const DefaultMaxAttempts = 3

var _ tea.Model = DateEntry{}

// DateEntry asks a question and reads a date. Each Enter parses the answer;
// an invalid answer is reported and the user may try again until
// MaxAttempts invalid answers have been given.
type DateEntry struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model

	question    string
	parser      quill.Parser[time.Time]
	styles      Styles
	maxAttempts int

	attempts int
	lastErr  error
	value    time.Time
	done     bool
	err      error
}

// DateEntryOption configures a DateEntry.
type DateEntryOption func(*DateEntry)

// WithMaxAttempts sets the number of invalid answers allowed. Values below
// one are ignored.
func WithMaxAttempts(n int) DateEntryOption {
	return func(m *DateEntry) {
		if n > 0 {
			m.maxAttempts = n
		}
	}
}

// NewDateEntry creates a DateEntry that validates answers with parser.
func NewDateEntry(question string, parser quill.Parser[time.Time], theme quill.Theme, opts ...DateEntryOption) DateEntry {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 64

	m := DateEntry{
		Input:       ti,
		question:    question,
		parser:      parser,
		styles:      NewStyles(theme),
		maxAttempts: DefaultMaxAttempts,
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Value returns the accepted date and whether one was accepted.
func (m DateEntry) Value() (time.Time, bool) { return m.value, m.done && m.err == nil }

// Err returns why entry ended without a value: ErrTooManyAttempts or
// context.Canceled when the user aborted.
func (m DateEntry) Err() error { return m.err }

// Attempts returns the number of answers submitted.
func (m DateEntry) Attempts() int { return m.attempts }

// Done reports whether entry has finished.
func (m DateEntry) Done() bool { return m.done }

// Init implements tea.Model.
func (m DateEntry) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m DateEntry) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Input.Width = max(msg.Width-len(m.Input.Prompt)-1, 1)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			m.err = fmt.Errorf("date entry: %w", context.Canceled)
			return m, tea.Quit

		case tea.KeyEnter:
			text := strings.TrimSpace(m.Input.Value())
			if text == "" {
				return m, nil
			}
			return m.submit(text)
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m DateEntry) submit(text string) (tea.Model, tea.Cmd) {
	m.attempts++
	m.Input.SetValue("")
	v, err := m.parser.Parse(text)
	if err == nil {
		m.value = v
		m.lastErr = nil
		m.done = true
		return m, tea.Quit
	}
	m.lastErr = err
	if m.attempts >= m.maxAttempts {
		m.done = true
		m.err = fmt.Errorf("%d invalid answers: %w", m.attempts, quill.ErrTooManyAttempts)
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m DateEntry) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Accent.Render(m.question))
	b.WriteString("\n")

	if m.done {
		switch {
		case m.err == nil:
			b.WriteString(m.styles.Success.Render("✓ " + m.formatValue()))
		default:
			b.WriteString(m.styles.Error.Render("✗ " + m.err.Error()))
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.Input.View())
	b.WriteString("\n")
	if m.lastErr != nil {
		b.WriteString(m.styles.Error.Render("✗ " + m.lastErr.Error()))
		b.WriteString("\n")
	}
	left := m.maxAttempts - m.attempts
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d %s left · Enter to submit · Esc to cancel", left, plural(left, "try", "tries"))))
	b.WriteString("\n")
	return b.String()
}

func (m DateEntry) formatValue() string {
	if f, ok := m.parser.(interface{ Format(time.Time) string }); ok {
		return f.Format(m.value)
	}
	return m.value.Format(time.DateOnly)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
