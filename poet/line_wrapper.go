package poet

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/teranos/tspoet/errors"
)

// DefaultColumnLimit is the column a wrapping space breaks at by default.
const DefaultColumnLimit = 100

// LineWrapper writes text to out, turning wrapping spaces into line breaks
// where the text that follows would pass the column limit. Columns are
// counted in display cells, so wide runes count twice.
type LineWrapper struct {
	out         io.Writer
	indent      string
	columnLimit int
	closed      bool

	// Text written since the pending wrapping space. It is held back until
	// we know whether the space becomes a break.
	buffer strings.Builder
	column int

	// Indentation applied after a break, or -1 when no wrapping space is
	// pending.
	indentLevel int

	// Written after the indentation of a break, such as " * " in a doc
	// comment.
	linePrefix string

	err error
}

// NewLineWrapper returns a wrapper writing to out. A non-positive columnLimit
// selects DefaultColumnLimit.
func NewLineWrapper(out io.Writer, indent string, columnLimit int) *LineWrapper {
	if columnLimit <= 0 {
		columnLimit = DefaultColumnLimit
	}
	return &LineWrapper{
		out:         out,
		indent:      indent,
		columnLimit: columnLimit,
		indentLevel: -1,
	}
}

// Append writes s, which may contain newlines.
func (lw *LineWrapper) Append(s string) error {
	if lw.closed {
		return errors.NewWriterProtocolf("append after close")
	}
	if lw.err != nil {
		return lw.err
	}

	// A wrapping space right before a newline would only leave trailing
	// whitespace.
	if lw.indentLevel != -1 && lw.buffer.Len() == 0 && strings.HasPrefix(s, "\n") {
		lw.indentLevel = -1
		lw.linePrefix = ""
	}

	if lw.indentLevel != -1 {
		nextNewline := strings.IndexByte(s, '\n')

		// Still on the pending line and it fits: keep buffering.
		if nextNewline == -1 && lw.column+runewidth.StringWidth(s) <= lw.columnLimit {
			lw.buffer.WriteString(s)
			lw.column += runewidth.StringWidth(s)
			return nil
		}

		wrap := nextNewline == -1 || lw.column+runewidth.StringWidth(s[:nextNewline]) > lw.columnLimit
		lw.flush(wrap)
	}

	lw.write(s)
	if last := strings.LastIndexByte(s, '\n'); last != -1 {
		lw.column = runewidth.StringWidth(s[last+1:])
	} else {
		lw.column += runewidth.StringWidth(s)
	}
	return lw.err
}

// WrappingSpace emits a space, or a newline followed by indentLevel indents
// and linePrefix if the text up to the next wrapping space or newline does
// not fit.
func (lw *LineWrapper) WrappingSpace(indentLevel int, linePrefix string) error {
	if lw.closed {
		return errors.NewWriterProtocolf("wrapping space after close")
	}
	if lw.err != nil {
		return lw.err
	}
	if lw.indentLevel != -1 {
		lw.flush(false)
	}
	lw.column++
	lw.indentLevel = indentLevel
	lw.linePrefix = linePrefix
	return lw.err
}

// Close flushes any pending wrapping space as a space. Further writes fail.
func (lw *LineWrapper) Close() error {
	if lw.closed {
		return lw.err
	}
	if lw.indentLevel != -1 {
		lw.flush(false)
	}
	lw.closed = true
	return lw.err
}

// flush resolves the pending wrapping space and writes the buffered text.
func (lw *LineWrapper) flush(wrap bool) {
	if wrap {
		lw.write("\n")
		for i := 0; i < lw.indentLevel; i++ {
			lw.write(lw.indent)
		}
		lw.write(lw.linePrefix)
		lw.column = lw.indentLevel*runewidth.StringWidth(lw.indent) +
			runewidth.StringWidth(lw.linePrefix) + runewidth.StringWidth(lw.buffer.String())
	} else {
		lw.write(" ")
	}
	lw.write(lw.buffer.String())
	lw.buffer.Reset()
	lw.indentLevel = -1
	lw.linePrefix = ""
}

func (lw *LineWrapper) write(s string) {
	if lw.err != nil || s == "" {
		return
	}
	if _, err := io.WriteString(lw.out, s); err != nil {
		lw.err = errors.Wrap(err, "write generated code")
	}
}
