package demo

import (
	"context"
	"fmt"

	"github.com/fwojciec/quill"
)

var (
	hackerNewsMessages = quill.NewSequence(
		quill.User("다음 Hacker News 게시물의 내용을 요약해 주세요:\n\n{text}"),
	)

	wikipediaMessages = quill.NewSequence(
		quill.User("질문에 답변해주세요:\n\n{question}\n\n{context}"),
	)
)

// SummarizeHackerNews fetches item id and asks for a summary of it. The
// fetched document is returned alongside the summary.
func SummarizeHackerNews(ctx context.Context, p quill.Provider, l HackerNewsLoader, id string, opts ...quill.CallOption) (string, quill.Document, error) {
	doc, err := l.HackerNews(ctx, id)
	if err != nil {
		return "", quill.Document{}, fmt.Errorf("load item %s: %w", id, err)
	}
	summary, err := quill.Run(ctx, p, hackerNewsMessages, map[string]any{"text": doc.Content}, opts...)
	if err != nil {
		return "", doc, err
	}
	return summary, doc, nil
}

// AnswerWikipedia answers question using the Wikipedia article on person as
// context.
func AnswerWikipedia(ctx context.Context, p quill.Provider, l WikipediaLoader, person, question string, opts ...quill.CallOption) (string, quill.Document, error) {
	doc, err := l.Wikipedia(ctx, person)
	if err != nil {
		return "", quill.Document{}, fmt.Errorf("load article %q: %w", person, err)
	}
	answer, err := quill.Run(ctx, p, wikipediaMessages, map[string]any{
		"question": question,
		"context":  doc.Content,
	}, opts...)
	if err != nil {
		return "", doc, err
	}
	return answer, doc, nil
}
