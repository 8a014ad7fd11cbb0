package poet

import (
	"github.com/teranos/tspoet/errors"
)

// PropertySpec is a class or interface property.
type PropertySpec struct {
	Name        string
	Type        TypeName
	Doc         CodeBlock
	Decorators  []*DecoratorSpec
	Modifiers   []Modifier
	Optional    bool
	Initializer *CodeBlock

	Tags
}

// PropertyBuilder builds a PropertySpec.
type PropertyBuilder struct {
	specBuilder
	name        string
	typ         TypeName
	optional    bool
	decorators  []*DecoratorSpec
	initializer *CodeBlock
}

// Property starts a property.
func Property(name string, t TypeName, modifiers ...Modifier) *PropertyBuilder {
	b := &PropertyBuilder{specBuilder: newSpecBuilder(), name: name, typ: t}
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

func (b *PropertyBuilder) AddDoc(format string, args ...interface{}) *PropertyBuilder {
	b.addDoc(format, args...)
	return b
}

func (b *PropertyBuilder) AddModifiers(modifiers ...Modifier) *PropertyBuilder {
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

func (b *PropertyBuilder) AddDecorators(decorators ...*DecoratorSpec) *PropertyBuilder {
	b.decorators = append(b.decorators, decorators...)
	return b
}

func (b *PropertyBuilder) Optional(optional bool) *PropertyBuilder {
	b.optional = optional
	return b
}

// Initializer sets the value the property is initialised with. It may be set
// once.
func (b *PropertyBuilder) Initializer(format string, args ...interface{}) *PropertyBuilder {
	cb, err := CodeBlockOf(format, args...)
	if err != nil {
		b.fail(err)
		return b
	}
	return b.InitializerCode(cb)
}

func (b *PropertyBuilder) InitializerCode(cb CodeBlock) *PropertyBuilder {
	if b.initializer != nil {
		b.fail(errors.NewMalformedCodef("initializer of property %s was already set", b.name))
		return b
	}
	b.initializer = &cb
	return b
}

// Tag attaches value to the spec under key.
func (b *PropertyBuilder) Tag(key, value interface{}) *PropertyBuilder {
	b.tag(key, value)
	return b
}

func (b *PropertyBuilder) Build() (*PropertySpec, error) {
	doc, mods, err := b.finishNamed(IsMemberName, "property", b.name)
	if err != nil {
		return nil, err
	}
	return &PropertySpec{
		Name:        b.name,
		Type:        b.typ,
		Doc:         doc,
		Decorators:  append([]*DecoratorSpec(nil), b.decorators...),
		Modifiers:   mods,
		Optional:    b.optional,
		Initializer: b.initializer,

		Tags: b.tags.clone(),
	}, nil
}

func (s *PropertySpec) ToBuilder() *PropertyBuilder {
	b := Property(s.Name, s.Type, s.Modifiers...).Optional(s.Optional)
	b.doc.AddCode(s.Doc)
	b.decorators = append(b.decorators, s.Decorators...)
	if s.Initializer != nil {
		b.InitializerCode(*s.Initializer)
	}
	b.tags = s.Tags.clone()
	return b
}

func (s *PropertySpec) String() string {
	return renderString(func(w *CodeWriter) error {
		return s.emit(w, nil, propertyOptions{withInitializer: true}, nil)
	})
}

type propertyOptions struct {
	asStatement     bool
	withInitializer bool
	compactOptional bool
}

// emit renders `name?: Type = init`. Outside compact contexts an optional
// property renders as `name: Type | undefined`.
func (s *PropertySpec) emit(w *CodeWriter, implicit []Modifier, opts propertyOptions, scope Scope) error {
	if err := w.EmitDoc(s.Doc, scope); err != nil {
		return err
	}
	if err := w.EmitDecorators(s.Decorators, false, scope); err != nil {
		return err
	}
	if err := w.EmitModifiers(s.Modifiers, implicit...); err != nil {
		return err
	}

	format := "%L: %T"
	if s.Optional && opts.compactOptional {
		format = "%L?: %T"
	} else if s.Optional {
		format = "%L: %T | undefined"
	}
	if err := w.emitf(scope, format, s.Name, s.Type); err != nil {
		return err
	}

	if opts.withInitializer && s.Initializer != nil {
		if err := w.Emit(" = "); err != nil {
			return err
		}
		if err := w.emitf(scope, "%[%L%]", *s.Initializer); err != nil {
			return err
		}
	}
	if opts.asStatement {
		return w.Emit(";\n")
	}
	return nil
}
