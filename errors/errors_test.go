package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		is       func(error) bool
		message  string
	}{
		{
			name:     "malformed code",
			err:      NewMalformedCodef("expected %d args, received %d", 2, 1),
			sentinel: ErrMalformedCode,
			is:       IsMalformedCode,
			message:  "expected 2 args, received 1: malformed code",
		},
		{
			name:     "writer protocol",
			err:      NewWriterProtocolf("cannot unindent %d from %d", 1, 0),
			sentinel: ErrWriterProtocol,
			is:       IsWriterProtocol,
			message:  "cannot unindent 1 from 0: code writer protocol violation",
		},
		{
			name:     "invalid manifest",
			err:      NewInvalidManifestf("unknown kind %q", "struct"),
			sentinel: ErrInvalidManifest,
			is:       IsInvalidManifest,
			message:  `unknown kind "struct": invalid manifest`,
		},
		{
			name:     "out of date",
			err:      Wrapf(ErrOutOfDate, "%d file(s) differ", 2),
			sentinel: ErrOutOfDate,
			is:       IsOutOfDate,
			message:  "2 file(s) differ: generated files are out of date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			assert.True(t, tt.is(tt.err))
			assert.True(t, Is(tt.err, tt.sentinel))
			assert.False(t, tt.is(nil))

			// Context added by callers keeps the sentinel
			wrapped := Wrap(tt.err, "models.ts")
			assert.True(t, tt.is(wrapped))
			assert.Contains(t, wrapped.Error(), "models.ts: ")
		})
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	err := NewMalformedCodef("bad")
	assert.False(t, IsWriterProtocol(err))
	assert.False(t, IsInvalidManifest(err))
	assert.False(t, IsOutOfDate(err))
	assert.False(t, Is(Wrap(ErrUnsupportedType, "chan"), ErrMalformedCode))
}

func TestUnsupportedTypeWithHint(t *testing.T) {
	err := WithHint(
		Wrap(ErrUnsupportedType, "func"),
		"functions do not marshal to JSON; tag the field json:\"-\"",
	)
	err = Wrapf(err, "field %s", "OnSave")

	assert.True(t, Is(err, ErrUnsupportedType))
	assert.Equal(t, "field OnSave: func: unsupported type", err.Error())
	assert.Equal(t, []string{"functions do not marshal to JSON; tag the field json:\"-\""}, GetAllHints(err))
}

func TestOutOfDateChain(t *testing.T) {
	err := Wrapf(ErrOutOfDate, "%d file(s) differ", 1)
	err = WithHint(err, "run 'tspoet render' to regenerate")
	err = WithDetail(err, "color.ts")
	err = Wrap(err, "check")

	assert.True(t, IsOutOfDate(err))
	assert.Equal(t, "check: 1 file(s) differ: generated files are out of date", err.Error())
	assert.Contains(t, GetAllHints(err), "run 'tspoet render' to regenerate")
	assert.Contains(t, GetAllDetails(err), "color.ts")
}

type renderError struct {
	module string
}

func (e *renderError) Error() string {
	return "render " + e.module
}

func TestAsThroughWrapping(t *testing.T) {
	err := Wrap(&renderError{module: "geo/point"}, "generate")

	var target *renderError
	require.True(t, As(err, &target))
	assert.Equal(t, "geo/point", target.module)
	assert.Equal(t, target, UnwrapAll(err))
}

func TestStackTrace(t *testing.T) {
	err := NewWriterProtocolf("append after close")
	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, MarkInvalidManifest(nil))
}

func TestMarkInvalidManifest(t *testing.T) {
	err := MarkInvalidManifest(NewMalformedCodef("bad name %q", "1x"))

	assert.True(t, IsInvalidManifest(err))
	assert.True(t, IsMalformedCode(err), "original identity survives the mark")
	assert.Contains(t, err.Error(), "bad name")
}

func ExampleWrap() {
	baseErr := New("unbalanced statement")
	err := Wrap(baseErr, "failed to render models.ts")
	fmt.Println(err)
	// Output: failed to render models.ts: unbalanced statement
}

func ExampleWithHint() {
	err := New("generated files are out of date")
	err = WithHint(err, "run 'tspoet render' to regenerate")

	hints := GetAllHints(err)
	fmt.Println(hints[0])
	// Output: run 'tspoet render' to regenerate
}
