package poet

import (
	"github.com/teranos/tspoet/errors"
)

// ClassSpec is a class declaration.
type ClassSpec struct {
	Name          string
	Doc           CodeBlock
	Decorators    []*DecoratorSpec
	Modifiers     []Modifier
	TypeVariables []TypeVariable
	SuperClass    TypeName
	Interfaces    []TypeName
	Properties    []*PropertySpec
	Constructor   *FunctionSpec
	Functions     []*FunctionSpec

	Tags
}

// ClassBuilder builds a ClassSpec.
type ClassBuilder struct {
	specBuilder
	name          string
	decorators    []*DecoratorSpec
	typeVariables []TypeVariable
	superClass    TypeName
	interfaces    []TypeName
	properties    []*PropertySpec
	constructor   *FunctionSpec
	functions     []*FunctionSpec
}

func Class(name string) *ClassBuilder {
	return &ClassBuilder{specBuilder: newSpecBuilder(), name: name}
}

func (b *ClassBuilder) AddDoc(format string, args ...interface{}) *ClassBuilder {
	b.addDoc(format, args...)
	return b
}

func (b *ClassBuilder) AddModifiers(modifiers ...Modifier) *ClassBuilder {
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

func (b *ClassBuilder) AddDecorators(decorators ...*DecoratorSpec) *ClassBuilder {
	b.decorators = append(b.decorators, decorators...)
	return b
}

func (b *ClassBuilder) AddTypeVariables(vars ...TypeVariable) *ClassBuilder {
	b.typeVariables = append(b.typeVariables, vars...)
	return b
}

// SuperClass sets the extended class. It may be set once.
func (b *ClassBuilder) SuperClass(t TypeName) *ClassBuilder {
	if b.superClass != nil {
		b.fail(errors.NewMalformedCodef("superclass of %s was already set", b.name))
		return b
	}
	b.superClass = t
	return b
}

func (b *ClassBuilder) AddInterfaces(types ...TypeName) *ClassBuilder {
	b.interfaces = append(b.interfaces, types...)
	return b
}

func (b *ClassBuilder) AddProperties(props ...*PropertySpec) *ClassBuilder {
	b.properties = append(b.properties, props...)
	return b
}

// Constructor sets the class constructor, built with the package-level
// Constructor function.
func (b *ClassBuilder) Constructor(ctor *FunctionSpec) *ClassBuilder {
	switch {
	case ctor == nil:
		b.fail(errors.NewMalformedCodef("nil constructor for %s", b.name))
	case !ctor.IsConstructor():
		b.fail(errors.NewMalformedCodef("%s is not a constructor", ctor.Name))
	case b.constructor != nil:
		b.fail(errors.NewMalformedCodef("constructor of %s was already set", b.name))
	default:
		b.constructor = ctor
	}
	return b
}

func (b *ClassBuilder) AddFunctions(fns ...*FunctionSpec) *ClassBuilder {
	for _, f := range fns {
		if f.IsConstructor() {
			b.Constructor(f)
			continue
		}
		b.functions = append(b.functions, f)
	}
	return b
}

// Tag attaches value to the spec under key.
func (b *ClassBuilder) Tag(key, value interface{}) *ClassBuilder {
	b.tag(key, value)
	return b
}

// Build validates the class. Abstract methods require an abstract class.
func (b *ClassBuilder) Build() (*ClassSpec, error) {
	doc, mods, err := b.finish("class", b.name, Export, Declare, Default, Abstract)
	if err != nil {
		return nil, err
	}
	if !mods.has(Abstract) {
		for _, f := range b.functions {
			if hasModifier(f.Modifiers, Abstract) {
				return nil, errors.NewMalformedCodef("non-abstract class %s has abstract method %s", b.name, f.Name)
			}
		}
	}
	return &ClassSpec{
		Name:          b.name,
		Doc:           doc,
		Decorators:    append([]*DecoratorSpec(nil), b.decorators...),
		Modifiers:     mods,
		TypeVariables: append([]TypeVariable(nil), b.typeVariables...),
		SuperClass:    b.superClass,
		Interfaces:    append([]TypeName(nil), b.interfaces...),
		Properties:    append([]*PropertySpec(nil), b.properties...),
		Constructor:   b.constructor,
		Functions:     append([]*FunctionSpec(nil), b.functions...),

		Tags: b.tags.clone(),
	}, nil
}

func (s *ClassSpec) ToBuilder() *ClassBuilder {
	b := Class(s.Name)
	b.doc.AddCode(s.Doc)
	b.modifiers = append(b.modifiers, s.Modifiers...)
	b.decorators = append(b.decorators, s.Decorators...)
	b.typeVariables = append(b.typeVariables, s.TypeVariables...)
	b.superClass = s.SuperClass
	b.interfaces = append(b.interfaces, s.Interfaces...)
	b.properties = append(b.properties, s.Properties...)
	b.constructor = s.Constructor
	b.functions = append(b.functions, s.Functions...)
	b.tags = s.Tags.clone()
	return b
}

func (s *ClassSpec) DeclarationName() string { return s.Name }

func (s *ClassSpec) String() string { return DeclarationString(s) }

func (s *ClassSpec) emit(w *CodeWriter, scope Scope) error {
	inner := scope.Nested(s.Name).Nested(typeVariableNames(s.TypeVariables)...)

	if err := w.EmitDoc(s.Doc, scope); err != nil {
		return err
	}
	if err := w.EmitDecorators(s.Decorators, false, scope); err != nil {
		return err
	}
	if err := w.EmitModifiers(s.Modifiers); err != nil {
		return err
	}
	if err := w.emitf(scope, "class %L", s.Name); err != nil {
		return err
	}
	if err := w.EmitTypeVariables(s.TypeVariables, scope); err != nil {
		return err
	}
	if s.SuperClass != nil {
		if err := emitTypeList(w, " extends", []TypeName{s.SuperClass}, inner); err != nil {
			return err
		}
	}
	if err := emitTypeList(w, " implements", s.Interfaces, inner); err != nil {
		return err
	}
	if err := w.Emit(" {\n"); err != nil {
		return err
	}

	w.Indent(1)
	first := true
	separate := func() error {
		if first {
			first = false
			return nil
		}
		return w.Emit("\n")
	}

	if len(s.Properties) > 0 {
		if err := separate(); err != nil {
			return err
		}
		for _, p := range s.Properties {
			opts := propertyOptions{asStatement: true, withInitializer: true, compactOptional: true}
			if err := p.emit(w, nil, opts, inner); err != nil {
				return err
			}
		}
	}
	if s.Constructor != nil {
		if err := separate(); err != nil {
			return err
		}
		if err := s.Constructor.emitIn(w, functionMember, nil, inner); err != nil {
			return err
		}
	}
	for _, f := range s.Functions {
		if err := separate(); err != nil {
			return err
		}
		if err := f.emitIn(w, functionMember, nil, inner); err != nil {
			return err
		}
	}

	if err := w.Unindent(1); err != nil {
		return err
	}
	return w.Emit("}\n")
}
