package poet

import (
	"github.com/teranos/tspoet/errors"
)

// EnumConstant is one member of an enum, with an optional initializer.
type EnumConstant struct {
	Name        string
	Initializer *CodeBlock
}

// EnumSpec is `enum Name { A = init, B }`.
type EnumSpec struct {
	Name      string
	Doc       CodeBlock
	Modifiers []Modifier
	Constants []EnumConstant

	Tags
}

// EnumBuilder builds an EnumSpec. Constants keep insertion order; adding a
// name twice replaces its initializer in place.
type EnumBuilder struct {
	specBuilder
	name      string
	constants []EnumConstant
}

func Enum(name string) *EnumBuilder {
	return &EnumBuilder{specBuilder: newSpecBuilder(), name: name}
}

func (b *EnumBuilder) AddDoc(format string, args ...interface{}) *EnumBuilder {
	b.addDoc(format, args...)
	return b
}

func (b *EnumBuilder) AddModifiers(modifiers ...Modifier) *EnumBuilder {
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

// AddConstant adds a constant. A non-empty initializer is emitted verbatim.
func (b *EnumBuilder) AddConstant(name string, initializer string) *EnumBuilder {
	if initializer == "" {
		return b.AddConstantCode(name, nil)
	}
	cb, err := CodeBlockOf("%L", initializer)
	if err != nil {
		b.fail(err)
		return b
	}
	return b.AddConstantCode(name, &cb)
}

// AddStringConstant adds `Name = 'value'`.
func (b *EnumBuilder) AddStringConstant(name, value string) *EnumBuilder {
	cb, err := CodeBlockOf("%S", value)
	if err != nil {
		b.fail(err)
		return b
	}
	return b.AddConstantCode(name, &cb)
}

func (b *EnumBuilder) AddConstantCode(name string, initializer *CodeBlock) *EnumBuilder {
	if !IsMemberName(name) {
		b.fail(errors.NewMalformedCodef("not a valid enum constant: %q", name))
		return b
	}
	for i := range b.constants {
		if b.constants[i].Name == name {
			b.constants[i].Initializer = initializer
			return b
		}
	}
	b.constants = append(b.constants, EnumConstant{Name: name, Initializer: initializer})
	return b
}

// Tag attaches value to the spec under key.
func (b *EnumBuilder) Tag(key, value interface{}) *EnumBuilder {
	b.tag(key, value)
	return b
}

// Build validates the enum. Only export, declare and const are allowed.
func (b *EnumBuilder) Build() (*EnumSpec, error) {
	doc, mods, err := b.finish("enum", b.name, Export, Declare, Const)
	if err != nil {
		return nil, err
	}
	return &EnumSpec{
		Name:      b.name,
		Doc:       doc,
		Modifiers: mods,
		Constants: append([]EnumConstant(nil), b.constants...),

		Tags: b.tags.clone(),
	}, nil
}

func (s *EnumSpec) ToBuilder() *EnumBuilder {
	b := Enum(s.Name)
	b.doc.AddCode(s.Doc)
	b.modifiers = append(b.modifiers, s.Modifiers...)
	b.constants = append(b.constants, s.Constants...)
	b.tags = s.Tags.clone()
	return b
}

func (s *EnumSpec) DeclarationName() string { return s.Name }

func (s *EnumSpec) String() string { return DeclarationString(s) }

func (s *EnumSpec) emit(w *CodeWriter, scope Scope) error {
	if err := w.EmitDoc(s.Doc, scope); err != nil {
		return err
	}
	if err := w.EmitModifiers(s.Modifiers); err != nil {
		return err
	}
	if err := w.emitf(scope, "enum %L {\n", s.Name); err != nil {
		return err
	}

	w.Indent(1)
	for i, c := range s.Constants {
		if err := w.Emit(c.Name); err != nil {
			return err
		}
		if c.Initializer != nil {
			if err := w.Emit(" = "); err != nil {
				return err
			}
			if err := w.EmitCode(*c.Initializer, scope); err != nil {
				return err
			}
		}
		sep := ",\n"
		if i == len(s.Constants)-1 {
			sep = "\n"
		}
		if err := w.Emit(sep); err != nil {
			return err
		}
	}
	if err := w.Unindent(1); err != nil {
		return err
	}
	return w.Emit("}\n")
}
