package demo

import (
	"context"
	"time"

	"github.com/fwojciec/quill"
	"github.com/fwojciec/quill/output"
)

// QuizDatePattern is the answer format for the history quiz.
const QuizDatePattern = "YYYY-MM-DD"

var (
	quizQuestionMessages = quill.NewSequence(
		quill.System("You are a history quiz bot. " +
			"Your task is to generate a quiz question based on the provided topic. " +
			"The answer is the correct date of {topic}. " +
			"Do not suggest the answer, just generate the question."),
		quill.User("Generate a quiz question about {topic}.\n" +
			"Make sure the question is clear and concise."),
	)

	quizAnswerMessages = quill.NewSequence(
		quill.System("You are an expert who announces the date of historic events. " +
			"Your task is to provide the date in a specific format: YYYY-MM-DD."),
		quill.User("Given the question: {question}\n\n{format_instructions}"),
	)
)

// QuizParser parses quiz answers, from the model or the player.
func QuizParser() *output.Datetime {
	return output.MustDatetime(QuizDatePattern)
}

// QuizQuestion generates a question whose answer is a date related to topic.
func QuizQuestion(ctx context.Context, p quill.Provider, topic string, opts ...quill.CallOption) (string, error) {
	return quill.Run(ctx, p, quizQuestionMessages, map[string]any{"topic": topic}, opts...)
}

// QuizAnswer asks the model for the date answering question.
func QuizAnswer(ctx context.Context, p quill.Provider, question string, opts ...quill.CallOption) (quill.Result[time.Time], error) {
	parser := QuizParser()
	seq := quizAnswerMessages.Partial(map[string]any{"format_instructions": parser.FormatInstructions()})
	text, err := quill.Run(ctx, p, seq, map[string]any{"question": question}, opts...)
	if err != nil {
		return quill.Result[time.Time]{Outcome: quill.OutcomeFailed, Err: err}, err
	}
	return quill.ParseWithRepair[time.Time](ctx, p, parser, text, opts...), nil
}

// CheckAnswer reports whether guess and answer fall on the same calendar
// day in UTC.
func CheckAnswer(guess, answer time.Time) bool {
	gy, gm, gd := guess.UTC().Date()
	ay, am, ad := answer.UTC().Date()
	return gy == ay && gm == am && gd == ad
}
