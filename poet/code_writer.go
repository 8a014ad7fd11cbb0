package poet

import (
	"io"
	"strings"

	"github.com/teranos/tspoet/errors"
)

// DefaultIndent is one indentation unit.
const DefaultIndent = "  "

// WriterOption configures a CodeWriter.
type WriterOption func(*CodeWriter)

// WithIndent sets the indentation unit.
func WithIndent(indent string) WriterOption {
	return func(w *CodeWriter) { w.indent = indent }
}

// WithColumnLimit sets the column at which wrapping spaces break.
func WithColumnLimit(limit int) WriterOption {
	return func(w *CodeWriter) { w.columnLimit = limit }
}

// WithReferencedSymbols seeds the referenced-symbol set. Seeded symbols claim
// their short names before anything the render references.
func WithReferencedSymbols(symbols ...SymbolSpec) WriterOption {
	return func(w *CodeWriter) {
		for _, s := range symbols {
			w.referenced.Referenced(s)
		}
	}
}

// CodeWriter renders CodeBlocks into indented, wrapped TypeScript. Every
// byte goes through the LineWrapper so that indentation and wrapping are
// decided in one place. A CodeWriter belongs to one render of one file and
// is not safe for concurrent use.
type CodeWriter struct {
	out         *LineWrapper
	indent      string
	columnLimit int
	referenced  *ReferencedSymbols

	indentLevel     int
	doc             bool
	comment         bool
	trailingNewline bool

	// -1 outside a statement, 0 on its first line, then the number of
	// continuation lines emitted so far.
	statementLine int

	err error
}

// NewCodeWriter returns a writer appending to out.
func NewCodeWriter(out io.Writer, opts ...WriterOption) *CodeWriter {
	w := &CodeWriter{
		indent:          DefaultIndent,
		columnLimit:     DefaultColumnLimit,
		referenced:      NewReferencedSymbols(),
		trailingNewline: true,
		statementLine:   -1,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.out = NewLineWrapper(out, w.indent, w.columnLimit)
	return w
}

// Indent increases the indentation level.
func (w *CodeWriter) Indent(levels int) *CodeWriter {
	w.indentLevel += levels
	return w
}

// Unindent decreases the indentation level. Going below zero is a protocol
// violation and leaves the level unchanged.
func (w *CodeWriter) Unindent(levels int) error {
	if w.indentLevel-levels < 0 {
		return errors.NewWriterProtocolf("cannot unindent %d from %d", levels, w.indentLevel)
	}
	w.indentLevel -= levels
	return nil
}

// IndentLevel reports the current indentation level.
func (w *CodeWriter) IndentLevel() int { return w.indentLevel }

// Referenced records a symbol a type reference resolved to.
func (w *CodeWriter) Referenced(symbol SymbolSpec) {
	w.referenced.Referenced(symbol)
}

// ReferencedSymbols returns the set accumulated so far.
func (w *CodeWriter) ReferencedSymbols() *ReferencedSymbols {
	return w.referenced
}

// RequiredImports reduces everything referenced so far to imports.
func (w *CodeWriter) RequiredImports() []ImportedSymbol {
	return w.referenced.RequiredImports()
}

// Collisions lists imported symbols that lost their short name.
func (w *CodeWriter) Collisions() []Collision {
	return w.referenced.Collisions()
}

// EmitComment renders cb as `// ` prefixed lines, ending with a newline.
func (w *CodeWriter) EmitComment(cb CodeBlock, scope Scope) error {
	w.trailingNewline = true
	w.comment = true
	defer func() { w.comment = false }()

	if err := w.EmitCode(cb, scope); err != nil {
		return err
	}
	if w.trailingNewline {
		return nil
	}
	return w.Emit("\n")
}

// EmitDoc renders cb as a /** */ block. An empty block emits nothing.
func (w *CodeWriter) EmitDoc(cb CodeBlock, scope Scope) error {
	if cb.IsEmpty() {
		return nil
	}
	if err := w.Emit("/**\n"); err != nil {
		return err
	}

	w.doc = true
	err := w.EmitCode(cb, scope)
	if err == nil && !w.trailingNewline {
		err = w.Emit("\n")
	}
	w.doc = false
	if err != nil {
		return err
	}

	return w.Emit(" */\n")
}

// EmitDecorators renders each decorator followed by a space when inline or
// a newline otherwise.
func (w *CodeWriter) EmitDecorators(decorators []*DecoratorSpec, inline bool, scope Scope) error {
	sep := "\n"
	if inline {
		sep = " "
	}
	for _, d := range decorators {
		if err := d.emit(w, inline, scope); err != nil {
			return err
		}
		if err := w.Emit(sep); err != nil {
			return err
		}
	}
	return nil
}

// EmitModifiers renders modifiers in canonical order, each followed by a
// space, skipping those in implicit.
func (w *CodeWriter) EmitModifiers(modifiers []Modifier, implicit ...Modifier) error {
	skip := newModifierSet(implicit...)
	for _, m := range newModifierSet(modifiers...) {
		if skip.has(m) {
			continue
		}
		if err := w.Emit(m.Keyword() + " "); err != nil {
			return err
		}
	}
	return nil
}

// EmitTypeVariables renders a type parameter list with bounds:
// <A extends B & C, D>. An empty list emits nothing.
func (w *CodeWriter) EmitTypeVariables(vars []TypeVariable, scope Scope) error {
	if len(vars) == 0 {
		return nil
	}

	names := make([]string, len(vars))
	for i, tv := range vars {
		names[i] = tv.Name
	}
	scope = scope.Nested(names...)

	var sb strings.Builder
	sb.WriteString("<")
	for i, tv := range vars {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(tv.Name)
		for j, bound := range tv.Bounds {
			if j == 0 {
				sb.WriteString(" extends ")
			} else {
				sb.WriteString(" " + bound.Combiner.symbol() + " ")
			}
			if bound.Modifier == KeyOf {
				sb.WriteString("keyof ")
			}
			sb.WriteString(bound.Type.Reference(w, scope))
		}
	}
	sb.WriteString(">")
	return w.Emit(sb.String())
}

// EmitCode interprets the directives of cb.
func (w *CodeWriter) EmitCode(cb CodeBlock, scope Scope) error {
	a := 0
	for _, p := range cb.parts {
		var err error
		switch p.dir {
		case 0:
			err = w.Emit(p.text)

		case directiveLiteral:
			err = w.emitLiteral(cb.args[a], scope)
			a++

		case directiveName:
			err = w.Emit(cb.args[a].text)
			a++

		case directiveString:
			arg := cb.args[a]
			a++
			if arg.kind == argNull {
				err = w.Emit("null")
			} else {
				err = w.Emit(stringLiteralWithQuotes(arg.text, w.indent))
			}

		case directiveType:
			err = w.Emit(cb.args[a].typ.Reference(w, scope))
			a++

		case directivePercent:
			err = w.Emit("%")

		case directiveIndent:
			w.Indent(1)

		case directiveUnindent:
			err = w.Unindent(1)

		case directiveStatementBegin:
			if w.statementLine != -1 {
				return errors.NewWriterProtocolf("statement enter %%[ followed by statement enter %%[")
			}
			w.statementLine = 0

		case directiveStatementEnd:
			if w.statementLine == -1 {
				return errors.NewWriterProtocolf("statement exit %%] has no matching statement enter %%[")
			}
			if w.statementLine > 0 {
				err = w.Unindent(2)
			}
			w.statementLine = -1

		case directiveWrappingSpace:
			err = w.wrap(w.wrappingSpace())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// wrappingSpace registers a wrap point. Code continues two levels deeper;
// comments continue at their own level behind the comment prefix.
func (w *CodeWriter) wrappingSpace() error {
	switch {
	case w.doc:
		return w.out.WrappingSpace(w.indentLevel, " * ")
	case w.comment:
		return w.out.WrappingSpace(w.indentLevel, "// ")
	default:
		return w.out.WrappingSpace(w.indentLevel+2, "")
	}
}

func (w *CodeWriter) emitLiteral(arg Arg, scope Scope) error {
	switch arg.kind {
	case argCode:
		return w.EmitCode(arg.code, scope)
	case argDeclaration:
		return arg.decl.emit(w, scope)
	case argDecorator:
		return arg.decorator.emit(w, true, scope)
	case argType:
		return w.Emit(arg.typ.Reference(w, scope))
	default:
		return w.Emit(arg.text)
	}
}

// Emit writes s with indentation applied lazily: indentation, and the
// comment prefix in comment or doc mode, is written just before the first
// character of each non-empty line, so blank lines carry no trailing
// whitespace.
func (w *CodeWriter) Emit(s string) error {
	if w.err != nil {
		return w.err
	}

	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			// Close out a blank comment line with a bare prefix.
			if (w.doc || w.comment) && w.trailingNewline {
				w.emitIndentation()
				if w.doc {
					w.append(" *")
				} else {
					w.append("//")
				}
			}
			w.append("\n")
			w.trailingNewline = true
			if w.statementLine != -1 {
				if w.statementLine == 0 {
					w.Indent(2)
				}
				w.statementLine++
			}
		}

		if line == "" {
			continue
		}

		if w.trailingNewline {
			w.emitIndentation()
			if w.doc {
				w.append(" * ")
			} else if w.comment {
				w.append("// ")
			}
		}
		w.append(line)
		w.trailingNewline = false
	}
	return w.err
}

// Close flushes pending output.
func (w *CodeWriter) Close() error {
	if err := w.out.Close(); err != nil && w.err == nil {
		w.err = err
	}
	return w.err
}

func (w *CodeWriter) emitIndentation() {
	for i := 0; i < w.indentLevel; i++ {
		w.append(w.indent)
	}
}

func (w *CodeWriter) append(s string) {
	if w.err != nil {
		return
	}
	w.err = w.out.Append(s)
}

func (w *CodeWriter) wrap(err error) error {
	if err != nil && w.err == nil {
		w.err = err
	}
	return w.err
}

// renderString runs fn against a fresh writer and returns what it wrote.
// Output written before a failure is returned as is.
func renderString(fn func(w *CodeWriter) error, opts ...WriterOption) string {
	var sb strings.Builder
	w := NewCodeWriter(&sb, opts...)
	_ = fn(w)
	_ = w.Close()
	return sb.String()
}
