package poet

import (
	"github.com/teranos/tspoet/errors"
)

const constructorName = "constructor"

// ParameterSpec is a function parameter. Modifiers are only meaningful on
// constructor parameters, where they declare parameter properties.
type ParameterSpec struct {
	Name       string
	Type       TypeName
	Optional   bool
	Rest       bool
	Decorators []*DecoratorSpec
	Modifiers  []Modifier
	Default    *CodeBlock
}

// ParameterBuilder builds a ParameterSpec.
type ParameterBuilder struct {
	specBuilder
	name       string
	typ        TypeName
	optional   bool
	rest       bool
	decorators []*DecoratorSpec
	def        *CodeBlock
}

func Parameter(name string, t TypeName) *ParameterBuilder {
	return &ParameterBuilder{specBuilder: newSpecBuilder(), name: name, typ: t}
}

func (b *ParameterBuilder) Optional(optional bool) *ParameterBuilder {
	b.optional = optional
	return b
}

func (b *ParameterBuilder) Rest(rest bool) *ParameterBuilder {
	b.rest = rest
	return b
}

func (b *ParameterBuilder) AddModifiers(modifiers ...Modifier) *ParameterBuilder {
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

func (b *ParameterBuilder) AddDecorators(decorators ...*DecoratorSpec) *ParameterBuilder {
	b.decorators = append(b.decorators, decorators...)
	return b
}

func (b *ParameterBuilder) Default(format string, args ...interface{}) *ParameterBuilder {
	if b.def != nil {
		b.fail(errors.NewMalformedCodef("default of parameter %s was already set", b.name))
		return b
	}
	cb, err := CodeBlockOf(format, args...)
	if err != nil {
		b.fail(err)
		return b
	}
	b.def = &cb
	return b
}

// Build validates the parameter. Only accessibility and readonly modifiers
// are allowed.
func (b *ParameterBuilder) Build() (*ParameterSpec, error) {
	_, mods, err := b.finish("parameter", b.name, Public, Protected, Private, Readonly)
	if err != nil {
		return nil, err
	}
	if b.rest && b.optional {
		return nil, errors.NewMalformedCodef("rest parameter %s cannot be optional", b.name)
	}
	return &ParameterSpec{
		Name:       b.name,
		Type:       b.typ,
		Optional:   b.optional,
		Rest:       b.rest,
		Decorators: append([]*DecoratorSpec(nil), b.decorators...),
		Modifiers:  mods,
		Default:    b.def,
	}, nil
}

func (p *ParameterSpec) String() string {
	return renderString(func(w *CodeWriter) error {
		return p.emit(w, nil)
	})
}

func (p *ParameterSpec) emit(w *CodeWriter, scope Scope) error {
	if err := w.EmitDecorators(p.Decorators, true, scope); err != nil {
		return err
	}
	if err := w.EmitModifiers(p.Modifiers); err != nil {
		return err
	}
	if p.Rest {
		if err := w.Emit("..."); err != nil {
			return err
		}
	}
	format := "%L: %T"
	if p.Optional {
		format = "%L?: %T"
	}
	if err := w.emitf(scope, format, p.Name, p.Type); err != nil {
		return err
	}
	if p.Default != nil {
		return w.emitf(scope, " = %L", *p.Default)
	}
	return nil
}

// FunctionSpec is a function, method or constructor.
type FunctionSpec struct {
	Name          string
	Doc           CodeBlock
	Decorators    []*DecoratorSpec
	Modifiers     []Modifier
	TypeVariables []TypeVariable
	Parameters    []*ParameterSpec
	ReturnType    TypeName
	Body          CodeBlock

	Tags
}

// FunctionBuilder builds a FunctionSpec.
type FunctionBuilder struct {
	specBuilder
	name          string
	decorators    []*DecoratorSpec
	typeVariables []TypeVariable
	parameters    []*ParameterSpec
	returnType    TypeName
	body          *CodeBlockBuilder
}

// Function starts a function or method.
func Function(name string) *FunctionBuilder {
	return &FunctionBuilder{specBuilder: newSpecBuilder(), name: name, body: NewCodeBlock()}
}

// Constructor starts a class constructor.
func Constructor() *FunctionBuilder {
	return Function(constructorName)
}

func (b *FunctionBuilder) AddDoc(format string, args ...interface{}) *FunctionBuilder {
	b.addDoc(format, args...)
	return b
}

func (b *FunctionBuilder) AddModifiers(modifiers ...Modifier) *FunctionBuilder {
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

func (b *FunctionBuilder) AddDecorators(decorators ...*DecoratorSpec) *FunctionBuilder {
	b.decorators = append(b.decorators, decorators...)
	return b
}

func (b *FunctionBuilder) AddTypeVariables(vars ...TypeVariable) *FunctionBuilder {
	b.typeVariables = append(b.typeVariables, vars...)
	return b
}

func (b *FunctionBuilder) AddParameters(params ...*ParameterSpec) *FunctionBuilder {
	b.parameters = append(b.parameters, params...)
	return b
}

// AddParameter adds a required parameter.
func (b *FunctionBuilder) AddParameter(name string, t TypeName) *FunctionBuilder {
	p, err := Parameter(name, t).Build()
	if err != nil {
		b.fail(err)
		return b
	}
	return b.AddParameters(p)
}

func (b *FunctionBuilder) Returns(t TypeName) *FunctionBuilder {
	b.returnType = t
	return b
}

func (b *FunctionBuilder) AddCode(format string, args ...interface{}) *FunctionBuilder {
	b.body.Add(format, args...)
	return b
}

func (b *FunctionBuilder) AddCodeBlock(cb CodeBlock) *FunctionBuilder {
	b.body.AddCode(cb)
	return b
}

func (b *FunctionBuilder) AddStatement(format string, args ...interface{}) *FunctionBuilder {
	b.body.AddStatement(format, args...)
	return b
}

func (b *FunctionBuilder) BeginControlFlow(controlFlow string, args ...interface{}) *FunctionBuilder {
	b.body.BeginControlFlow(controlFlow, args...)
	return b
}

func (b *FunctionBuilder) NextControlFlow(controlFlow string, args ...interface{}) *FunctionBuilder {
	b.body.NextControlFlow(controlFlow, args...)
	return b
}

func (b *FunctionBuilder) EndControlFlow() *FunctionBuilder {
	b.body.EndControlFlow()
	return b
}

// Tag attaches value to the spec under key.
func (b *FunctionBuilder) Tag(key, value interface{}) *FunctionBuilder {
	b.tag(key, value)
	return b
}

func (b *FunctionBuilder) Build() (*FunctionSpec, error) {
	kind := "function"
	name := b.name
	if name == constructorName {
		// constructor is a contextual keyword, not a reserved word.
		kind, name = "constructor", "ctor"
	}
	doc, mods, err := b.finish(kind, name)
	if err != nil {
		return nil, err
	}
	body, err := b.body.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "body of %s", b.name)
	}

	seenRest := false
	for i, p := range b.parameters {
		if seenRest {
			return nil, errors.NewMalformedCodef("rest parameter must be last in %s", b.name)
		}
		seenRest = p.Rest
		if len(p.Modifiers) > 0 && b.name != constructorName {
			return nil, errors.NewMalformedCodef("parameter %d of %s: modifiers are only allowed on constructor parameters", i, b.name)
		}
	}
	if mods.has(Abstract) && !body.IsEmpty() {
		return nil, errors.NewMalformedCodef("abstract function %s cannot have a body", b.name)
	}
	if b.name == constructorName && b.returnType != nil {
		return nil, errors.NewMalformedCodef("constructor cannot declare a return type")
	}

	return &FunctionSpec{
		Name:          b.name,
		Doc:           doc,
		Decorators:    append([]*DecoratorSpec(nil), b.decorators...),
		Modifiers:     mods,
		TypeVariables: append([]TypeVariable(nil), b.typeVariables...),
		Parameters:    append([]*ParameterSpec(nil), b.parameters...),
		ReturnType:    b.returnType,
		Body:          body,

		Tags: b.tags.clone(),
	}, nil
}

func (s *FunctionSpec) ToBuilder() *FunctionBuilder {
	b := Function(s.Name)
	b.doc.AddCode(s.Doc)
	b.modifiers = append(b.modifiers, s.Modifiers...)
	b.decorators = append(b.decorators, s.Decorators...)
	b.typeVariables = append(b.typeVariables, s.TypeVariables...)
	b.parameters = append(b.parameters, s.Parameters...)
	b.returnType = s.ReturnType
	b.body.AddCode(s.Body)
	b.tags = s.Tags.clone()
	return b
}

// IsConstructor reports whether s is a class constructor.
func (s *FunctionSpec) IsConstructor() bool { return s.Name == constructorName }

func (s *FunctionSpec) DeclarationName() string { return s.Name }

func (s *FunctionSpec) String() string { return DeclarationString(s) }

type functionContext int

const (
	functionTopLevel functionContext = iota
	functionMember
	functionSignature
)

func (s *FunctionSpec) emit(w *CodeWriter, scope Scope) error {
	return s.emitIn(w, functionTopLevel, nil, scope)
}

func (s *FunctionSpec) emitIn(w *CodeWriter, ctx functionContext, implicit []Modifier, scope Scope) error {
	inner := scope.Nested(typeVariableNames(s.TypeVariables)...)

	if err := w.EmitDoc(s.Doc, scope); err != nil {
		return err
	}
	if err := w.EmitDecorators(s.Decorators, false, scope); err != nil {
		return err
	}
	if err := w.EmitModifiers(s.Modifiers, implicit...); err != nil {
		return err
	}

	format := "%L"
	if ctx == functionTopLevel {
		format = "function %L"
	}
	if err := w.emitf(scope, format, s.Name); err != nil {
		return err
	}
	if err := w.EmitTypeVariables(s.TypeVariables, scope); err != nil {
		return err
	}

	if err := w.Emit("("); err != nil {
		return err
	}
	for i, p := range s.Parameters {
		if i > 0 {
			if err := w.emitf(inner, ",%W"); err != nil {
				return err
			}
		}
		if err := p.emit(w, inner); err != nil {
			return err
		}
	}
	if err := w.Emit(")"); err != nil {
		return err
	}

	if s.ReturnType != nil {
		if err := w.emitf(inner, ": %T", s.ReturnType); err != nil {
			return err
		}
	}

	if ctx == functionSignature || (ctx == functionMember && hasModifier(s.Modifiers, Abstract)) {
		return w.Emit(";\n")
	}

	if err := w.Emit(" {\n"); err != nil {
		return err
	}
	w.Indent(1)
	if err := w.EmitCode(s.Body, inner); err != nil {
		return err
	}
	if !w.trailingNewline {
		if err := w.Emit("\n"); err != nil {
			return err
		}
	}
	if err := w.Unindent(1); err != nil {
		return err
	}
	return w.Emit("}\n")
}

func hasModifier(mods []Modifier, m Modifier) bool {
	return modifierSet(mods).has(m)
}
