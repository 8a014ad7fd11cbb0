package poet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tspoet/errors"
)

type wrapStep struct {
	text   string
	wrap   int    // indent level for a wrapping space; used when text is empty
	prefix string // line prefix after a break
}

func runWrapper(t *testing.T, limit int, steps ...wrapStep) string {
	t.Helper()
	var sb strings.Builder
	lw := NewLineWrapper(&sb, "  ", limit)
	for _, s := range steps {
		if s.text == "" {
			require.NoError(t, lw.WrappingSpace(s.wrap, s.prefix))
			continue
		}
		require.NoError(t, lw.Append(s.text))
	}
	require.NoError(t, lw.Close())
	return sb.String()
}

func TestLineWrapper(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		steps []wrapStep
		want  string
	}{
		{
			name:  "wraps when the next word overflows",
			limit: 10,
			steps: []wrapStep{{text: "abcde"}, {wrap: 2}, {text: "fghij"}},
			want:  "abcde\n    fghij",
		},
		{
			name:  "space when the next word fits exactly",
			limit: 10,
			steps: []wrapStep{{text: "abcde"}, {wrap: 2}, {text: "fghi"}},
			want:  "abcde fghi",
		},
		{
			name:  "newline before the limit keeps the space",
			limit: 10,
			steps: []wrapStep{{text: "abc"}, {wrap: 1}, {text: "def\n"}, {text: "ghi"}},
			want:  "abc def\nghi",
		},
		{
			name:  "earlier wrapping space resolves as a space",
			limit: 10,
			steps: []wrapStep{{text: "aaaa"}, {wrap: 1}, {text: "bbbb"}, {wrap: 1}, {text: "cc"}},
			want:  "aaaa bbbb\n  cc",
		},
		{
			name:  "no wrapping space lets the line overflow",
			limit: 5,
			steps: []wrapStep{{text: "abcdefghij"}},
			want:  "abcdefghij",
		},
		{
			name:  "line prefix follows the break indentation",
			limit: 10,
			steps: []wrapStep{{text: " * abcde"}, {wrap: 1, prefix: " * "}, {text: "fgh"}},
			want:  " * abcde\n   * fgh",
		},
		{
			name:  "line prefix counts toward the next wrap",
			limit: 10,
			steps: []wrapStep{{text: "// abcdefg"}, {prefix: "// "}, {text: "hijkl"}, {prefix: "// "}, {text: "mn"}},
			want:  "// abcdefg\n// hijkl\n// mn",
		},
		{
			name:  "wrapping space before a newline is dropped",
			limit: 10,
			steps: []wrapStep{{text: "abc"}, {wrap: 1}, {text: "\n"}, {text: "def"}},
			want:  "abc\ndef",
		},
		{
			name:  "wide runes count two columns",
			limit: 10,
			steps: []wrapStep{{text: "日本語"}, {wrap: 1}, {text: "ab"}, {text: "c"}, {text: "d"}},
			want:  "日本語\n  abcd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runWrapper(t, tt.limit, tt.steps...))
		})
	}
}

func TestLineWrapper_DefaultLimit(t *testing.T) {
	long := strings.Repeat("x", 95)
	got := runWrapper(t, 0, wrapStep{text: long}, wrapStep{wrap: 1}, wrapStep{text: "abcd"})
	assert.Equal(t, long+" abcd", got)

	got = runWrapper(t, 0, wrapStep{text: long}, wrapStep{wrap: 1}, wrapStep{text: "abcde"})
	assert.Equal(t, long+"\n  abcde", got)
}

func TestLineWrapper_Closed(t *testing.T) {
	var sb strings.Builder
	lw := NewLineWrapper(&sb, "  ", 10)
	require.NoError(t, lw.Append("x"))
	require.NoError(t, lw.Close())
	require.NoError(t, lw.Close())

	err := lw.Append("y")
	require.Error(t, err)
	assert.True(t, errors.IsWriterProtocol(err))

	err = lw.WrappingSpace(1, "")
	assert.True(t, errors.IsWriterProtocol(err))
	assert.Equal(t, "x", sb.String())
}
