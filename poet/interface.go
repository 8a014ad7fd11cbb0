package poet

import (
	"github.com/teranos/tspoet/errors"
)

// InterfaceSpec is `interface Name<T> extends A, B { ... }`.
type InterfaceSpec struct {
	Name            string
	Doc             CodeBlock
	Modifiers       []Modifier
	TypeVariables   []TypeVariable
	SuperInterfaces []TypeName
	Properties      []*PropertySpec
	Functions       []*FunctionSpec

	Tags
}

// InterfaceBuilder builds an InterfaceSpec.
type InterfaceBuilder struct {
	specBuilder
	name            string
	typeVariables   []TypeVariable
	superInterfaces []TypeName
	properties      []*PropertySpec
	functions       []*FunctionSpec
}

func Interface(name string) *InterfaceBuilder {
	return &InterfaceBuilder{specBuilder: newSpecBuilder(), name: name}
}

func (b *InterfaceBuilder) AddDoc(format string, args ...interface{}) *InterfaceBuilder {
	b.addDoc(format, args...)
	return b
}

func (b *InterfaceBuilder) AddModifiers(modifiers ...Modifier) *InterfaceBuilder {
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

func (b *InterfaceBuilder) AddTypeVariables(vars ...TypeVariable) *InterfaceBuilder {
	b.typeVariables = append(b.typeVariables, vars...)
	return b
}

func (b *InterfaceBuilder) AddSuperInterfaces(types ...TypeName) *InterfaceBuilder {
	b.superInterfaces = append(b.superInterfaces, types...)
	return b
}

func (b *InterfaceBuilder) AddProperties(props ...*PropertySpec) *InterfaceBuilder {
	b.properties = append(b.properties, props...)
	return b
}

func (b *InterfaceBuilder) AddFunctions(fns ...*FunctionSpec) *InterfaceBuilder {
	b.functions = append(b.functions, fns...)
	return b
}

// Tag attaches value to the spec under key.
func (b *InterfaceBuilder) Tag(key, value interface{}) *InterfaceBuilder {
	b.tag(key, value)
	return b
}

// Build validates the interface. Members may not carry initializers or
// bodies.
func (b *InterfaceBuilder) Build() (*InterfaceSpec, error) {
	doc, mods, err := b.finish("interface", b.name, Export, Declare, Default)
	if err != nil {
		return nil, err
	}
	for _, p := range b.properties {
		if p.Initializer != nil {
			return nil, errors.NewMalformedCodef("interface %s: property %s cannot have an initializer", b.name, p.Name)
		}
	}
	for _, f := range b.functions {
		if !f.Body.IsEmpty() {
			return nil, errors.NewMalformedCodef("interface %s: method %s cannot have a body", b.name, f.Name)
		}
		if f.IsConstructor() {
			return nil, errors.NewMalformedCodef("interface %s cannot declare a constructor", b.name)
		}
	}
	return &InterfaceSpec{
		Name:            b.name,
		Doc:             doc,
		Modifiers:       mods,
		TypeVariables:   append([]TypeVariable(nil), b.typeVariables...),
		SuperInterfaces: append([]TypeName(nil), b.superInterfaces...),
		Properties:      append([]*PropertySpec(nil), b.properties...),
		Functions:       append([]*FunctionSpec(nil), b.functions...),

		Tags: b.tags.clone(),
	}, nil
}

func (s *InterfaceSpec) ToBuilder() *InterfaceBuilder {
	b := Interface(s.Name)
	b.doc.AddCode(s.Doc)
	b.modifiers = append(b.modifiers, s.Modifiers...)
	b.typeVariables = append(b.typeVariables, s.TypeVariables...)
	b.superInterfaces = append(b.superInterfaces, s.SuperInterfaces...)
	b.properties = append(b.properties, s.Properties...)
	b.functions = append(b.functions, s.Functions...)
	b.tags = s.Tags.clone()
	return b
}

func (s *InterfaceSpec) DeclarationName() string { return s.Name }

func (s *InterfaceSpec) String() string { return DeclarationString(s) }

func (s *InterfaceSpec) emit(w *CodeWriter, scope Scope) error {
	inner := scope.Nested(s.Name).Nested(typeVariableNames(s.TypeVariables)...)

	if err := w.EmitDoc(s.Doc, scope); err != nil {
		return err
	}
	if err := w.EmitModifiers(s.Modifiers); err != nil {
		return err
	}
	if err := w.emitf(scope, "interface %L", s.Name); err != nil {
		return err
	}
	if err := w.EmitTypeVariables(s.TypeVariables, scope); err != nil {
		return err
	}
	if err := emitTypeList(w, " extends", s.SuperInterfaces, inner); err != nil {
		return err
	}
	if err := w.Emit(" {\n"); err != nil {
		return err
	}

	w.Indent(1)
	for _, p := range s.Properties {
		opts := propertyOptions{asStatement: true, compactOptional: true}
		if err := p.emit(w, []Modifier{Public}, opts, inner); err != nil {
			return err
		}
	}
	for i, f := range s.Functions {
		if i > 0 || len(s.Properties) > 0 {
			if err := w.Emit("\n"); err != nil {
				return err
			}
		}
		if err := f.emitIn(w, functionSignature, []Modifier{Public, Abstract}, inner); err != nil {
			return err
		}
	}
	if err := w.Unindent(1); err != nil {
		return err
	}
	return w.Emit("}\n")
}

// emitTypeList renders `keyword A, B` with a wrap point before each type.
func emitTypeList(w *CodeWriter, keyword string, types []TypeName, scope Scope) error {
	if len(types) == 0 {
		return nil
	}
	if err := w.Emit(keyword); err != nil {
		return err
	}
	for i, t := range types {
		format := "%W%T"
		if i > 0 {
			format = ",%W%T"
		}
		if err := w.emitf(scope, format, t); err != nil {
			return err
		}
	}
	return nil
}
