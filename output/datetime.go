package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/quill"
)

// DefaultDatetimePattern is an ISO-8601 timestamp with microseconds in UTC.
const DefaultDatetimePattern = "YYYY-MM-DDTHH:mm:ss.SSSSSSZ"

// patternTokens maps pattern tokens to Go reference-time layout elements,
// longest first so that SSSSSS wins over shorter prefixes.
var patternTokens = []struct{ token, layout string }{
	{"SSSSSS", "000000"},
	{"YYYY", "2006"},
	{"SSS", "000"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
}

// Examples rendered into the format instructions.
var datetimeExamples = []time.Time{
	time.Date(668, 8, 9, 12, 56, 32, 732651000, time.UTC),
	time.Date(1213, 6, 23, 21, 1, 36, 868629000, time.UTC),
	time.Date(1789, 7, 14, 18, 19, 2, 257488000, time.UTC),
}

var _ quill.Parser[time.Time] = (*Datetime)(nil)

// Datetime parses model output that must be a date or timestamp in a
// declared pattern such as "YYYY-MM-DD".
type Datetime struct {
	pattern string
	layout  string
}

// NewDatetime returns a Datetime parser for pattern. Supported tokens are
// YYYY, MM, DD, HH, mm, ss, SSS and SSSSSS; the separators - / : . , and
// space plus the literals T and Z may appear between them.
func NewDatetime(pattern string) (*Datetime, error) {
	layout, err := layoutFor(pattern)
	if err != nil {
		return nil, err
	}
	return &Datetime{pattern: pattern, layout: layout}, nil
}

// MustDatetime is like NewDatetime but panics on error.
func MustDatetime(pattern string) *Datetime {
	d, err := NewDatetime(pattern)
	if err != nil {
		panic(err)
	}
	return d
}

// DefaultDatetime returns a parser for DefaultDatetimePattern.
func DefaultDatetime() *Datetime {
	return MustDatetime(DefaultDatetimePattern)
}

// Pattern returns the declared pattern.
func (d *Datetime) Pattern() string { return d.pattern }

// Layout returns the equivalent Go time layout.
func (d *Datetime) Layout() string { return d.layout }

// Parse interprets text, ignoring surrounding whitespace, as a UTC time in
// the declared pattern. Anything else in the text is an error.
func (d *Datetime) Parse(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	t, err := time.ParseInLocation(d.layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse %q as %s: %w", s, d.pattern, quill.ErrParse)
	}
	return t, nil
}

// Format renders t in the declared pattern.
func (d *Datetime) Format(t time.Time) string {
	return t.UTC().Format(d.layout)
}

// FormatInstructions tells the model which pattern to answer in.
func (d *Datetime) FormatInstructions() string {
	examples := make([]string, len(datetimeExamples))
	for i, t := range datetimeExamples {
		examples[i] = d.Format(t)
	}
	return fmt.Sprintf("Write a datetime string that matches the following pattern: '%s'.\n\n"+
		"Examples: %s\n\n"+
		"Return ONLY this string, no other words!", d.pattern, strings.Join(examples, ", "))
}

// layoutCheckTime has a distinct value in every field so that a layout Go
// reads differently from the pattern is caught.
var layoutCheckTime = time.Date(1987, 11, 23, 19, 47, 38, 123456000, time.UTC)

func layoutFor(pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("empty datetime pattern: %w", quill.ErrValidation)
	}
	var b strings.Builder
	seen := make(map[string]bool)
	for i := 0; i < len(pattern); {
		matched := false
		for _, pt := range patternTokens {
			if !strings.HasPrefix(pattern[i:], pt.token) {
				continue
			}
			if pt.token[0] == 'S' && (i == 0 || (pattern[i-1] != '.' && pattern[i-1] != ',')) {
				return "", fmt.Errorf("%s in datetime pattern %q must follow '.' or ',': %w", pt.token, pattern, quill.ErrValidation)
			}
			b.WriteString(pt.layout)
			i += len(pt.token)
			seen[pt.token] = true
			matched = true
			break
		}
		if matched {
			continue
		}
		switch c := pattern[i]; c {
		case '-', '/', ':', '.', ',', ' ', 'T', 'Z':
			b.WriteByte(c)
			i++
		default:
			return "", fmt.Errorf("unsupported character %q in datetime pattern %q: %w", c, pattern, quill.ErrValidation)
		}
	}
	if len(seen) == 0 {
		return "", fmt.Errorf("datetime pattern %q has no date or time fields: %w", pattern, quill.ErrValidation)
	}
	layout := b.String()
	if err := checkLayout(layout, seen); err != nil {
		return "", fmt.Errorf("datetime pattern %q: %w", pattern, err)
	}
	return layout, nil
}

// checkLayout formats layoutCheckTime with layout, parses it back and
// requires exactly the fields named by seen to survive. Adjacent tokens can
// otherwise merge into a different layout element, such as "000" followed
// by "02" reading as a day of the year.
func checkLayout(layout string, seen map[string]bool) error {
	ref := layoutCheckTime
	pick := func(token string, v, zero int) int {
		if seen[token] {
			return v
		}
		return zero
	}
	nsec := 0
	switch {
	case seen["SSSSSS"]:
		nsec = ref.Nanosecond() / 1000 * 1000
	case seen["SSS"]:
		nsec = ref.Nanosecond() / 1000000 * 1000000
	}
	want := time.Date(
		pick("YYYY", ref.Year(), 0),
		time.Month(pick("MM", int(ref.Month()), 1)),
		pick("DD", ref.Day(), 1),
		pick("HH", ref.Hour(), 0),
		pick("mm", ref.Minute(), 0),
		pick("ss", ref.Second(), 0),
		nsec, time.UTC)
	got, err := time.ParseInLocation(layout, ref.Format(layout), time.UTC)
	if err != nil || !got.Equal(want) {
		return fmt.Errorf("fields do not survive a format and parse round trip: %w", quill.ErrValidation)
	}
	return nil
}
