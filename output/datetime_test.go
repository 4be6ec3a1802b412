package output_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/quill"
	"github.com/fwojciec/quill/mock"
	"github.com/fwojciec/quill/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatetime_Parse(t *testing.T) {
	t.Parallel()

	t.Run("date pattern", func(t *testing.T) {
		t.Parallel()
		d := output.MustDatetime("YYYY-MM-DD")
		got, err := d.Parse("1865-12-06")
		require.NoError(t, err)
		assert.Equal(t, time.Date(1865, 12, 6, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("surrounding whitespace is ignored", func(t *testing.T) {
		t.Parallel()
		got, err := output.MustDatetime("YYYY-MM-DD").Parse("  1789-07-14\n")
		require.NoError(t, err)
		assert.Equal(t, 1789, got.Year())
	})

	t.Run("default pattern with microseconds", func(t *testing.T) {
		t.Parallel()
		got, err := output.DefaultDatetime().Parse("1865-12-06T00:00:00.000000Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(1865, 12, 6, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("malformed text fails with ErrParse", func(t *testing.T) {
		t.Parallel()
		d := output.MustDatetime("YYYY-MM-DD")
		for _, text := range []string{"1791", "December 6, 1865", "1865-12-6", "The answer is 1865-12-06", ""} {
			_, err := d.Parse(text)
			assert.ErrorIs(t, err, quill.ErrParse, "input %q", text)
		}
	})
}

func TestDatetime_RoundTrip(t *testing.T) {
	t.Parallel()
	cases := map[string][]string{
		"YYYY-MM-DD":                  {"1865-12-06", "0668-08-09", "2024-02-29"},
		"YYYY/MM/DD HH:mm":            {"1969/07/20 20:17"},
		output.DefaultDatetimePattern: {"1213-06-23T21:01:36.868629Z"},
		"DD.MM.YYYY":                  {"14.07.1789"},
		"YYYYMMDD":                    {"18651206"},
		"HHmmss,SSS":                  {"201756,123"},
		"ss.SSS DD":                   {"05.123 03"},
	}
	for pattern, inputs := range cases {
		d := output.MustDatetime(pattern)
		for _, in := range inputs {
			got, err := d.Parse(in)
			require.NoError(t, err, "%s: %s", pattern, in)
			assert.Equal(t, in, d.Format(got), "%s: %s", pattern, in)
		}
	}
}

func TestNewDatetime_InvalidPattern(t *testing.T) {
	t.Parallel()
	for _, p := range []string{"", "YYYY-Mon-DD", "--", "yyyy-mm-dd"} {
		_, err := output.NewDatetime(p)
		assert.ErrorIs(t, err, quill.ErrValidation, "pattern %q", p)
	}
}

func TestNewDatetime_FractionNeedsSeparator(t *testing.T) {
	t.Parallel()
	for _, p := range []string{"SSS", "HHmmssSSS", "ss SSSSSS", "ss-SSS"} {
		_, err := output.NewDatetime(p)
		assert.ErrorIs(t, err, quill.ErrValidation, "pattern %q", p)
	}
}

func TestNewDatetime_MergedTokens(t *testing.T) {
	t.Parallel()
	// ".000" followed by "02" is read by time as a day of the year.
	_, err := output.NewDatetime("ss.SSSDD")
	require.ErrorIs(t, err, quill.ErrValidation)
	assert.Contains(t, err.Error(), "round trip")
}

func TestDatetime_Accessors(t *testing.T) {
	t.Parallel()
	d := output.MustDatetime("YYYY-MM-DD")
	assert.Equal(t, "YYYY-MM-DD", d.Pattern())
	assert.Equal(t, "2006-01-02", d.Layout())
	assert.Panics(t, func() { output.MustDatetime("bogus") })
}

func TestDatetime_FormatInstructions(t *testing.T) {
	t.Parallel()
	got := output.MustDatetime("YYYY-MM-DD").FormatInstructions()
	assert.Contains(t, got, "'YYYY-MM-DD'")
	assert.Contains(t, got, "0668-08-09, 1213-06-23, 1789-07-14")
	assert.Contains(t, got, "Return ONLY this string")
}

func TestDatetime_ParseWithRepair(t *testing.T) {
	t.Parallel()

	t.Run("year-only answer triggers exactly one repair", func(t *testing.T) {
		t.Parallel()
		calls := 0
		p := &mock.Provider{
			GenerateFn: func(_ context.Context, req quill.Request) (quill.Response, error) {
				calls++
				assert.Contains(t, req.Messages[0].Text, "1791")
				return quill.Response{Text: "1791-12-15"}, nil
			},
		}
		res := quill.ParseWithRepair[time.Time](context.Background(), p, output.MustDatetime("YYYY-MM-DD"), "1791")
		got, err := res.Get()
		require.NoError(t, err)
		assert.Equal(t, time.Date(1791, 12, 15, 0, 0, 0, 0, time.UTC), got)
		assert.True(t, res.Repaired)
		assert.Equal(t, 1, calls)
	})

	t.Run("residual failure returns zero time", func(t *testing.T) {
		t.Parallel()
		p := &mock.Provider{
			GenerateFn: func(context.Context, quill.Request) (quill.Response, error) {
				return quill.Response{Text: "sometime in 1791"}, nil
			},
		}
		res := quill.ParseWithRepair[time.Time](context.Background(), p, output.MustDatetime("YYYY-MM-DD"), "1791")
		assert.Equal(t, quill.OutcomeFailed, res.Outcome)
		assert.True(t, res.Value.IsZero())
	})
}
