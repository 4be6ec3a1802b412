package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/quill"
	"github.com/fwojciec/quill/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Generate(t *testing.T) {
	t.Parallel()
	t.Run("delegates to GenerateFn", func(t *testing.T) {
		t.Parallel()
		p := mock.Provider{
			GenerateFn: func(ctx context.Context, req quill.Request) (quill.Response, error) {
				return quill.Response{Text: "ok"}, nil
			},
		}
		got, err := p.Generate(context.Background(), quill.Request{})
		require.NoError(t, err)
		assert.Equal(t, "ok", got.Text)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("api error")
		p := mock.Provider{
			GenerateFn: func(ctx context.Context, req quill.Request) (quill.Response, error) {
				return quill.Response{}, wantErr
			},
		}
		_, err := p.Generate(context.Background(), quill.Request{})
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("panics when GenerateFn not set", func(t *testing.T) {
		t.Parallel()
		p := mock.Provider{}
		assert.Panics(t, func() {
			_, _ = p.Generate(context.Background(), quill.Request{})
		})
	})
}

func TestParser(t *testing.T) {
	t.Parallel()
	t.Run("delegates to ParseFn", func(t *testing.T) {
		t.Parallel()
		p := mock.Parser[int]{
			ParseFn: func(text string) (int, error) { return len(text), nil },
		}
		got, err := p.Parse("abc")
		require.NoError(t, err)
		assert.Equal(t, 3, got)
	})

	t.Run("instructions default to empty", func(t *testing.T) {
		t.Parallel()
		p := mock.Parser[int]{}
		assert.Empty(t, p.FormatInstructions())
	})
}
