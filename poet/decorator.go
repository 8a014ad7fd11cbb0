package poet

import (
	"github.com/teranos/tspoet/errors"
)

// DecoratorArgument is one argument of a decorator call, optionally named.
// Names are informational; TypeScript decorator arguments are positional.
type DecoratorArgument struct {
	Name  string
	Value CodeBlock
}

// DecoratorSpec is `@Name`, `@Name()` or `@Name(args...)`.
type DecoratorSpec struct {
	Name      SymbolSpec
	Arguments []DecoratorArgument

	// Factory forces `()` when there are no arguments.
	Factory bool
}

// DecoratorBuilder builds a DecoratorSpec.
type DecoratorBuilder struct {
	name    SymbolSpec
	args    []DecoratorArgument
	factory bool
	err     error
}

// Decorator starts a decorator applying name.
func Decorator(name SymbolSpec) *DecoratorBuilder {
	return &DecoratorBuilder{name: name}
}

func (b *DecoratorBuilder) Factory(factory bool) *DecoratorBuilder {
	b.factory = factory
	return b
}

// AddArgument appends an argument rendered from format.
func (b *DecoratorBuilder) AddArgument(format string, args ...interface{}) *DecoratorBuilder {
	return b.AddNamedArgument("", format, args...)
}

func (b *DecoratorBuilder) AddNamedArgument(name, format string, args ...interface{}) *DecoratorBuilder {
	if b.err != nil {
		return b
	}
	cb, err := CodeBlockOf(format, args...)
	if err != nil {
		b.err = err
		return b
	}
	b.args = append(b.args, DecoratorArgument{Name: name, Value: cb})
	return b
}

func (b *DecoratorBuilder) Build() (*DecoratorSpec, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.name == nil || b.name.Name() == "" {
		return nil, errors.NewMalformedCodef("decorator needs a name")
	}
	return &DecoratorSpec{
		Name:      b.name,
		Arguments: append([]DecoratorArgument(nil), b.args...),
		Factory:   b.factory,
	}, nil
}

func (s *DecoratorSpec) String() string {
	return renderString(func(w *CodeWriter) error {
		return s.emit(w, true, nil)
	})
}

// emit renders the decorator. Outside inline contexts a decorator with more
// than one argument puts each argument on its own indented line.
func (s *DecoratorSpec) emit(w *CodeWriter, inline bool, scope Scope) error {
	if err := w.emitf(scope, "@%T", TypeFor(s.Name)); err != nil {
		return err
	}
	if len(s.Arguments) == 0 {
		if s.Factory {
			return w.Emit("()")
		}
		return nil
	}

	if err := w.Emit("("); err != nil {
		return err
	}
	multiline := !inline && len(s.Arguments) > 1
	if multiline {
		if err := w.Emit("\n"); err != nil {
			return err
		}
		w.Indent(1)
	}
	for i, arg := range s.Arguments {
		if i > 0 {
			sep := ", "
			if multiline {
				sep = ",\n"
			}
			if err := w.Emit(sep); err != nil {
				return err
			}
		}
		if err := w.EmitCode(arg.Value, scope); err != nil {
			return err
		}
	}
	if multiline {
		if err := w.Unindent(1); err != nil {
			return err
		}
		if err := w.Emit("\n"); err != nil {
			return err
		}
	}
	return w.Emit(")")
}
