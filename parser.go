package quill

// Parser converts a model's raw text into a typed value.
// FormatInstructions describes the expected shape to the model; it is
// substituted into prompts and into the repair request.
type Parser[T any] interface {
	Parse(text string) (T, error)
	FormatInstructions() string
}

// Outcome is the state of a parse attempt.
type Outcome int

const (
	OutcomeOK          Outcome = iota // Value holds the parsed result.
	OutcomeNeedsRepair                // Direct parse failed; Raw awaits a repair pass.
	OutcomeFailed                     // Parsing failed for good; Err explains why.
)

// String returns a lowercase name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNeedsRepair:
		return "needs_repair"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the explicit outcome of interpreting model output.
type Result[T any] struct {
	Outcome  Outcome
	Value    T      // valid when Outcome is OutcomeOK
	Raw      string // the text that was last parsed
	Err      error  // set for OutcomeNeedsRepair and OutcomeFailed
	Repaired bool   // Value came from the repair pass
}

// OK reports whether the result holds a value.
func (r Result[T]) OK() bool { return r.Outcome == OutcomeOK }

// Get returns the value, or the zero value and the error for any other
// outcome.
func (r Result[T]) Get() (T, error) {
	if r.Outcome != OutcomeOK {
		var zero T
		return zero, r.Err
	}
	return r.Value, nil
}

// Interpret attempts a direct parse of text. A failure is reported as
// OutcomeNeedsRepair; Interpret never calls a model.
func Interpret[T any](text string, p Parser[T]) Result[T] {
	v, err := p.Parse(text)
	if err != nil {
		return Result[T]{Outcome: OutcomeNeedsRepair, Raw: text, Err: err}
	}
	return Result[T]{Outcome: OutcomeOK, Value: v, Raw: text}
}
