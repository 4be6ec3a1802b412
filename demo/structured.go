package demo

import (
	"context"
	"time"

	"github.com/fwojciec/quill"
	"github.com/fwojciec/quill/output"
)

// Scientist is the record ScientistInfo asks for.
type Scientist struct {
	Name      string `json:"name" desc:"The name of the scientist"`
	Field     string `json:"field" desc:"The field of expertise"`
	Discovery string `json:"discovery" desc:"The discovery made by the scientist"`
}

var (
	historicDateMessages = quill.NewSequence(
		quill.System("당신은 항상 질문에 날짜와 시간 패턴에 맞게만 답변해야 합니다."),
		quill.User("{user_input}\n\n{format_instructions}"),
	)

	scientistMessages = quill.NewSequence(
		quill.User("{user_input}\n\n{format_instructions}"),
	)

	scientistParser = output.MustRecord[Scientist]()
)

// HistoricDate asks when something happened and parses the answer as a
// timestamp in output.DefaultDatetimePattern, repairing it once if needed.
// The error is non-nil only when the first model call fails; parse failures
// are reported in the Result.
func HistoricDate(ctx context.Context, p quill.Provider, question string, opts ...quill.CallOption) (quill.Result[time.Time], error) {
	return ask[time.Time](ctx, p, historicDateMessages, output.DefaultDatetime(), question, opts)
}

// ScientistInfo asks about a person and parses the answer into a Scientist,
// repairing it once if needed.
func ScientistInfo(ctx context.Context, p quill.Provider, question string, opts ...quill.CallOption) (quill.Result[Scientist], error) {
	return ask[Scientist](ctx, p, scientistMessages, scientistParser, question, opts)
}

func ask[T any](ctx context.Context, p quill.Provider, seq quill.Sequence, parser quill.Parser[T], input string, opts []quill.CallOption) (quill.Result[T], error) {
	seq = seq.Partial(map[string]any{"format_instructions": parser.FormatInstructions()})
	text, err := quill.Run(ctx, p, seq, map[string]any{"user_input": input}, opts...)
	if err != nil {
		return quill.Result[T]{Outcome: quill.OutcomeFailed, Err: err}, err
	}
	return quill.ParseWithRepair(ctx, p, parser, text, opts...), nil
}
