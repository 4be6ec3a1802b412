package quill

import (
	"context"
	"fmt"
)

// RepairPrompt asks the model to rewrite a completion that failed to parse.
// Variables: instructions, completion, error.
var RepairPrompt = NewSequence(User(`Instructions:
--------------
{instructions}
--------------
Completion:
--------------
{completion}
--------------

Above, the Completion did not satisfy the constraints given in the Instructions.
Error:
--------------
{error}
--------------

Please try again. Please only respond with an answer that satisfies the constraints laid out in the Instructions:`))

// Repair issues one model call asking it to reformat completion so that it
// satisfies instructions, and returns the corrected text.
func Repair(ctx context.Context, p Provider, instructions, completion string, parseErr error, opts ...CallOption) (string, error) {
	errText := ""
	if parseErr != nil {
		errText = parseErr.Error()
	}
	return Run(ctx, p, RepairPrompt, map[string]any{
		"instructions": instructions,
		"completion":   completion,
		"error":        errText,
	}, opts...)
}

// ParseWithRepair parses text with parser. If the direct parse fails it
// makes exactly one repair call and parses the corrected text. When both
// attempts fail the error is logged and an OutcomeFailed result with a zero
// Value is returned.
func ParseWithRepair[T any](ctx context.Context, p Provider, parser Parser[T], text string, opts ...CallOption) Result[T] {
	res := Interpret(text, parser)
	if res.Outcome != OutcomeNeedsRepair {
		return res
	}

	cfg := newCallConfig(opts)
	log := cfg.logger
	log.Warn("error parsing response; attempting repair", "error", res.Err)

	fixed, err := Repair(ctx, p, parser.FormatInstructions(), text, res.Err, opts...)
	if err != nil {
		log.Error("error fixing response", "error", err)
		return Result[T]{Outcome: OutcomeFailed, Raw: text, Err: fmt.Errorf("repair call: %w", err)}
	}

	v, err := parser.Parse(fixed)
	if err != nil {
		log.Error("error fixing response", "error", err, "completion", fixed)
		return Result[T]{Outcome: OutcomeFailed, Raw: fixed, Err: fmt.Errorf("after repair: %w", err)}
	}
	log.Info("response repaired")
	return Result[T]{Outcome: OutcomeOK, Value: v, Raw: fixed, Repaired: true}
}
