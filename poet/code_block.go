package poet

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/teranos/tspoet/errors"
)

// Directives understood inside a CodeBlock format string:
//
//	%L  literal value: text, or a nested CodeBlock, Declaration or Decorator
//	%N  name, emitted verbatim
//	%S  string, emitted as a quoted literal; nil emits null
//	%T  type, resolved through the scope and tracked for imports
//	%%  a percent sign
//	%>  increase the indentation level
//	%<  decrease the indentation level
//	%[  begin a statement; continuation lines are indented twice
//	%]  end a statement
//	%W  space or line break, whichever fits
const (
	directiveLiteral        = 'L'
	directiveName           = 'N'
	directiveString         = 'S'
	directiveType           = 'T'
	directivePercent        = '%'
	directiveIndent         = '>'
	directiveUnindent       = '<'
	directiveStatementBegin = '['
	directiveStatementEnd   = ']'
	directiveWrappingSpace  = 'W'
)

// part is a literal run of text when dir is zero, otherwise a directive.
type part struct {
	dir  byte
	text string
}

type argKind int

const (
	argText argKind = iota
	argCode
	argDeclaration
	argDecorator
	argType
	argString
	argNull
)

// Arg is one positional argument of a CodeBlock. Its kind is fixed when the
// block is built, so rendering never inspects dynamic values.
type Arg struct {
	kind      argKind
	text      string
	code      CodeBlock
	decl      Declaration
	decorator *DecoratorSpec
	typ       TypeName
}

// CodeBlock is an immutable fragment stream: literal text interleaved with
// directives, plus the arguments the directives consume in order.
type CodeBlock struct {
	parts []part
	args  []Arg
}

// CodeBlockOf builds a block from a single format string.
func CodeBlockOf(format string, args ...interface{}) (CodeBlock, error) {
	return NewCodeBlock().Add(format, args...).Build()
}

// MustCodeBlockOf is like CodeBlockOf but panics on a malformed format. Use
// it only for formats fixed at compile time.
func MustCodeBlockOf(format string, args ...interface{}) CodeBlock {
	cb, err := CodeBlockOf(format, args...)
	if err != nil {
		panic(err)
	}
	return cb
}

// IsEmpty reports whether the block renders nothing.
func (cb CodeBlock) IsEmpty() bool {
	return len(cb.parts) == 0
}

// Parts returns the format parts: literal runs and two-character directives.
func (cb CodeBlock) Parts() []string {
	out := make([]string, len(cb.parts))
	for i, p := range cb.parts {
		if p.dir == 0 {
			out[i] = p.text
		} else {
			out[i] = "%" + string(p.dir)
		}
	}
	return out
}

// ToBuilder returns a builder initialised with this block's contents.
func (cb CodeBlock) ToBuilder() *CodeBlockBuilder {
	b := NewCodeBlock()
	b.parts = append(b.parts, cb.parts...)
	b.args = append(b.args, cb.args...)
	return b
}

// String renders the block with a fresh writer and an empty scope.
func (cb CodeBlock) String() string {
	return renderString(func(w *CodeWriter) error {
		return w.EmitCode(cb, nil)
	})
}

// JoinCode concatenates blocks with separator between them.
func JoinCode(blocks []CodeBlock, separator string) (CodeBlock, error) {
	b := NewCodeBlock()
	for i, block := range blocks {
		if i > 0 {
			b.Add("%L", separator)
		}
		b.AddCode(block)
	}
	return b.Build()
}

// CodeBlockBuilder assembles a CodeBlock. The first malformed format is
// remembered; later calls are ignored and Build returns the error.
type CodeBlockBuilder struct {
	parts []part
	args  []Arg
	err   error
}

// NewCodeBlock returns an empty builder.
func NewCodeBlock() *CodeBlockBuilder {
	return &CodeBlockBuilder{}
}

// Add appends format, consuming one argument per %L, %N, %S and %T.
func (b *CodeBlockBuilder) Add(format string, args ...interface{}) *CodeBlockBuilder {
	if b.err != nil {
		return b
	}

	var parts []part
	var converted []Arg
	next := 0

	for p := 0; p < len(format); {
		if format[p] != '%' {
			end := strings.IndexByte(format[p:], '%')
			if end < 0 {
				end = len(format)
			} else {
				end += p
			}
			parts = append(parts, part{text: format[p:end]})
			p = end
			continue
		}

		if p+1 >= len(format) {
			b.err = errors.NewMalformedCodef("dangling %% at end of format %q", format)
			return b
		}

		c := format[p+1]
		switch c {
		case directiveLiteral, directiveName, directiveString, directiveType:
			if next >= len(args) {
				b.err = errors.NewMalformedCodef("format %q needs more than %d arguments", format, len(args))
				return b
			}
			arg, err := convertArg(c, args[next])
			if err != nil {
				b.err = errors.Wrapf(err, "argument %d of %q", next, format)
				return b
			}
			converted = append(converted, arg)
			next++
		case directivePercent, directiveIndent, directiveUnindent,
			directiveStatementBegin, directiveStatementEnd, directiveWrappingSpace:
		default:
			b.err = errors.NewMalformedCodef("invalid directive %%%c in format %q", c, format)
			return b
		}
		parts = append(parts, part{dir: c})
		p += 2
	}

	if next != len(args) {
		b.err = errors.NewMalformedCodef("format %q consumes %d arguments, received %d", format, next, len(args))
		return b
	}

	b.parts = append(b.parts, parts...)
	b.args = append(b.args, converted...)
	return b
}

// AddCode appends the contents of another block.
func (b *CodeBlockBuilder) AddCode(cb CodeBlock) *CodeBlockBuilder {
	if b.err != nil {
		return b
	}
	b.parts = append(b.parts, cb.parts...)
	b.args = append(b.args, cb.args...)
	return b
}

// AddStatement appends format as a statement terminated by ";\n".
func (b *CodeBlockBuilder) AddStatement(format string, args ...interface{}) *CodeBlockBuilder {
	return b.Add("%[").Add(format, args...).Add(";\n%]")
}

// BeginControlFlow opens a braced block: `if (x) {` followed by an indent.
func (b *CodeBlockBuilder) BeginControlFlow(controlFlow string, args ...interface{}) *CodeBlockBuilder {
	return b.Add(controlFlow+" {\n", args...).Indent()
}

// NextControlFlow closes the current block and opens the next: `} else {`.
func (b *CodeBlockBuilder) NextControlFlow(controlFlow string, args ...interface{}) *CodeBlockBuilder {
	return b.Unindent().Add("} "+controlFlow+" {\n", args...).Indent()
}

// EndControlFlow closes the current block.
func (b *CodeBlockBuilder) EndControlFlow() *CodeBlockBuilder {
	return b.Unindent().Add("}\n")
}

// Indent appends %>.
func (b *CodeBlockBuilder) Indent() *CodeBlockBuilder {
	return b.Add("%>")
}

// Unindent appends %<.
func (b *CodeBlockBuilder) Unindent() *CodeBlockBuilder {
	return b.Add("%<")
}

// IsEmpty reports whether nothing has been added.
func (b *CodeBlockBuilder) IsEmpty() bool {
	return len(b.parts) == 0
}

// Build returns the block, or the first construction error.
func (b *CodeBlockBuilder) Build() (CodeBlock, error) {
	if b.err != nil {
		return CodeBlock{}, b.err
	}
	cb := CodeBlock{
		parts: make([]part, len(b.parts)),
		args:  make([]Arg, len(b.args)),
	}
	copy(cb.parts, b.parts)
	copy(cb.args, b.args)
	return cb, nil
}

func convertArg(directive byte, v interface{}) (Arg, error) {
	// %S renders a nil pointer as null; everywhere else it would fail at
	// render time.
	if directive != directiveString && isNilPointer(v) {
		return Arg{}, errors.NewMalformedCodef("%%%c argument is a nil %T", directive, v)
	}
	switch directive {
	case directiveLiteral:
		return literalArg(v), nil
	case directiveName:
		return nameArg(v)
	case directiveString:
		return stringArg(v)
	default:
		return typeArg(v)
	}
}

func literalArg(v interface{}) Arg {
	switch o := v.(type) {
	case CodeBlock:
		return Arg{kind: argCode, code: o}
	case *DecoratorSpec:
		return Arg{kind: argDecorator, decorator: o}
	case Declaration:
		return Arg{kind: argDeclaration, decl: o}
	case TypeName:
		return Arg{kind: argType, typ: o}
	case nil:
		return Arg{kind: argText, text: "null"}
	case fmt.Stringer:
		return Arg{kind: argText, text: o.String()}
	default:
		return Arg{kind: argText, text: fmt.Sprint(o)}
	}
}

func isNilPointer(v interface{}) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func nameArg(v interface{}) (Arg, error) {
	switch o := v.(type) {
	case string:
		return Arg{kind: argText, text: o}, nil
	case SymbolSpec:
		return Arg{kind: argText, text: o.Name()}, nil
	case *PropertySpec:
		return Arg{kind: argText, text: o.Name}, nil
	case *ParameterSpec:
		return Arg{kind: argText, text: o.Name}, nil
	case *FunctionSpec:
		return Arg{kind: argText, text: o.Name}, nil
	case Declaration:
		return Arg{kind: argText, text: o.DeclarationName()}, nil
	default:
		return Arg{}, errors.NewMalformedCodef("expected name but was %T", v)
	}
}

func stringArg(v interface{}) (Arg, error) {
	switch o := v.(type) {
	case nil:
		return Arg{kind: argNull}, nil
	case string:
		return Arg{kind: argString, text: o}, nil
	case *string:
		if o == nil {
			return Arg{kind: argNull}, nil
		}
		return Arg{kind: argString, text: *o}, nil
	case fmt.Stringer:
		return Arg{kind: argString, text: o.String()}, nil
	default:
		return Arg{}, errors.NewMalformedCodef("expected string but was %T", v)
	}
}

func typeArg(v interface{}) (Arg, error) {
	switch o := v.(type) {
	case TypeName:
		return Arg{kind: argType, typ: o}, nil
	case SymbolSpec:
		return Arg{kind: argType, typ: TypeFor(o)}, nil
	default:
		return Arg{}, errors.NewMalformedCodef("expected type but was %T", v)
	}
}
