package demo

import (
	"context"

	"github.com/fwojciec/quill"
)

const (
	legalSystem = "당신은 유용한 법률 보조입니다. 복잡한 법률 용어를 쉽고 이해하기 쉽게 번역합니다."

	legalExample = "이 계약의 어떠한 조항도 무효, 불법 또는 집행 불가능한 것으로 판명되는 경우,\n" +
		"해당 조항은 필요한 최소한의 범위 내에서 수정된 것으로 간주되며, 나머지 조항의 유효성은 영향을 받지 않습니다."

	legalExampleAnswer = "계약의 일부 조항이 무효가 되더라도, 나머지 조항은 여전히 유효합니다."
)

// LegalMessages is the few-shot prompt for SimplifyLegal: a system
// instruction, one example exchange, then the text to simplify.
var LegalMessages = quill.NewSequence(
	quill.System(legalSystem),
	quill.Literal(quill.RoleUser, legalExample),
	quill.Literal(quill.RoleAssistant, legalExampleAnswer),
	quill.User("{legal_text}"),
)

// SimplifyLegal rewrites legal text in plain language.
func SimplifyLegal(ctx context.Context, p quill.Provider, text string, opts ...quill.CallOption) (string, error) {
	return quill.Run(ctx, p, LegalMessages, map[string]any{"legal_text": text}, opts...)
}
