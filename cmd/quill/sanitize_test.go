package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in, want string
	}{
		"plain":          {"Day 1: Louvre", "Day 1: Louvre"},
		"csi color":      {"\x1b[31mred\x1b[0m text", "red text"},
		"osc title":      {"\x1b]0;pwned\x07answer", "answer"},
		"crlf":           {"a\r\nb", "a\nb"},
		"lone cr":        {"a\rb", "a\nb"},
		"tabs kept":      {"a\tb", "a\tb"},
		"controls":       {"a\x00b\x08c\x7fd", "abcd"},
		"unicode intact": {"질문에 답변해주세요", "질문에 답변해주세요"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitize(tt.in))
		})
	}
}

func TestRender_StripsEscapes(t *testing.T) {
	t.Parallel()
	a, out := testApp(nil)
	a.render("\x1b[2Jplain answer")
	assert.Contains(t, out.String(), "plain answer")
	assert.NotContains(t, out.String(), "\x1b[2J")
}
