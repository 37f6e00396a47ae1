package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, "duplicate declaration keyword", E1010.Description())
	assert.Equal(t, "missing declaration", E2001.Description())
	assert.Equal(t, "parse", E1011.Category())
	assert.Equal(t, "resolve", E2002.Category())
	assert.Equal(t, "E2002", E2002.String())
}

func TestCompileErrorMessage(t *testing.T) {
	err := &CompileError{
		Code:     E2001,
		Message:  `no declaration kind for "rest"`,
		Filename: "main.vl",
		Line:     3,
		Column:   12,
	}
	msg := err.Error()
	assert.Contains(t, msg, `no declaration kind for "rest"`)
	assert.Contains(t, msg, "main.vl")
	assert.Contains(t, msg, "3:12")
}

func TestCompileErrorsToError(t *testing.T) {
	var errs CompileErrors
	assert.NoError(t, errs.ToError())
	assert.False(t, errs.HasErrors())

	first := &CompileError{Code: E2001, Message: "first"}
	errs.Add(first)
	require.Equal(t, 1, errs.Count())
	assert.Same(t, first, errs.ToError())

	errs.Add(&CompileError{Code: E2002, Message: "second"})
	err := errs.ToError()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "and 1 more errors")
}

func TestFormatterPlain(t *testing.T) {
	f := NewFormatter(false)
	out := f.Format(&FormattedError{
		Code:      E2002,
		Message:   `cannot redeclare "bar" as const: already declared as let`,
		Filename:  "main.vl",
		Line:      2,
		Column:    8,
		EndColumn: 10,
		SourceLines: []SourceLineEntry{
			{Number: 2, Text: "[const bar] = xs", IsMain: true},
		},
		Note: `"bar" was previously declared with let in this scope`,
	})

	assert.Contains(t, out, "error[E2002]: cannot redeclare")
	assert.Contains(t, out, "--> main.vl:2:8")
	assert.Contains(t, out, " 2 | [const bar] = xs")
	assert.Contains(t, out, "^^^")
	assert.Contains(t, out, "note: \"bar\" was previously declared")
	// Plain output carries no ANSI escapes
	assert.NotContains(t, out, "\x1b[")
}

func TestFormatterHint(t *testing.T) {
	f := NewFormatter(false)
	out := f.Format(&FormattedError{
		Code:    E2001,
		Message: `no declaration kind for "counts"`,
		Line:    1,
		Column:  2,
		SourceLines: []SourceLineEntry{
			{Number: 1, Text: "[counts] = xs", IsMain: true},
		},
		Hint: "Did you mean 'count'?",
	})
	assert.Contains(t, out, "hint: Did you mean 'count'?")
}

func TestFormatMultiple(t *testing.T) {
	f := NewFormatter(false)
	out := f.FormatMultiple([]*FormattedError{
		{Code: E2001, Message: "first"},
		{Code: E2001, Message: "second"},
	})
	assert.Contains(t, out, "error[E2001]: first")
	assert.Contains(t, out, "error[E2001]: second")
	assert.Contains(t, out, "found 2 errors")
}

func TestSuggestSimilar(t *testing.T) {
	candidates := []string{"count", "counter", "total", "x"}

	suggestions := SuggestSimilar("counts", candidates)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "count", suggestions[0].Value)
	assert.Equal(t, 1, suggestions[0].Distance)

	// No candidates close enough
	assert.Empty(t, SuggestSimilar("zzzzzz", candidates))

	// Short targets use a tighter threshold
	assert.Empty(t, SuggestSimilar("ab", []string{"xyz"}))

	// Exact matches are not suggested
	assert.Empty(t, SuggestSimilar("total", []string{"total"}))
}

func TestFormatSuggestions(t *testing.T) {
	assert.Equal(t, "", FormatSuggestions(nil))
	assert.Equal(t, "Did you mean 'count'?",
		FormatSuggestions([]Suggestion{{Value: "count", Distance: 1}}))
	assert.Equal(t, "Did you mean one of: 'a', 'b'?",
		FormatSuggestions([]Suggestion{{Value: "a", Distance: 1}, {Value: "b", Distance: 1}}))
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshteinDistance(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}
