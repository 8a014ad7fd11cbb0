package poet

// TypeAliasSpec is `type Name<T> = Type;`.
type TypeAliasSpec struct {
	Name          string
	Type          TypeName
	Doc           CodeBlock
	Modifiers     []Modifier
	TypeVariables []TypeVariable

	Tags
}

// TypeAliasBuilder builds a TypeAliasSpec.
type TypeAliasBuilder struct {
	specBuilder
	name          string
	typ           TypeName
	typeVariables []TypeVariable
}

// TypeAlias starts a type alias of name to t.
func TypeAlias(name string, t TypeName) *TypeAliasBuilder {
	return &TypeAliasBuilder{specBuilder: newSpecBuilder(), name: name, typ: t}
}

func (b *TypeAliasBuilder) AddDoc(format string, args ...interface{}) *TypeAliasBuilder {
	b.addDoc(format, args...)
	return b
}

func (b *TypeAliasBuilder) AddModifiers(modifiers ...Modifier) *TypeAliasBuilder {
	b.modifiers = append(b.modifiers, modifiers...)
	return b
}

func (b *TypeAliasBuilder) AddTypeVariables(vars ...TypeVariable) *TypeAliasBuilder {
	b.typeVariables = append(b.typeVariables, vars...)
	return b
}

// Tag attaches value to the spec under key.
func (b *TypeAliasBuilder) Tag(key, value interface{}) *TypeAliasBuilder {
	b.tag(key, value)
	return b
}

// Build validates the alias. Only export and declare are allowed.
func (b *TypeAliasBuilder) Build() (*TypeAliasSpec, error) {
	doc, mods, err := b.finish("type alias", b.name, Export, Declare)
	if err != nil {
		return nil, err
	}
	return &TypeAliasSpec{
		Name:          b.name,
		Type:          b.typ,
		Doc:           doc,
		Modifiers:     mods,
		TypeVariables: append([]TypeVariable(nil), b.typeVariables...),

		Tags: b.tags.clone(),
	}, nil
}

// ToBuilder returns a builder holding every field of s.
func (s *TypeAliasSpec) ToBuilder() *TypeAliasBuilder {
	b := TypeAlias(s.Name, s.Type)
	b.doc.AddCode(s.Doc)
	b.modifiers = append(b.modifiers, s.Modifiers...)
	b.typeVariables = append(b.typeVariables, s.TypeVariables...)
	b.tags = s.Tags.clone()
	return b
}

func (s *TypeAliasSpec) DeclarationName() string { return s.Name }

func (s *TypeAliasSpec) String() string { return DeclarationString(s) }

func (s *TypeAliasSpec) emit(w *CodeWriter, scope Scope) error {
	inner := scope.Nested(typeVariableNames(s.TypeVariables)...)

	if err := w.EmitDoc(s.Doc, scope); err != nil {
		return err
	}
	if err := w.EmitModifiers(s.Modifiers); err != nil {
		return err
	}
	if err := w.emitf(scope, "type %L", s.Name); err != nil {
		return err
	}
	if err := w.EmitTypeVariables(s.TypeVariables, scope); err != nil {
		return err
	}
	if err := w.emitf(inner, " = %T", s.Type); err != nil {
		return err
	}
	return w.Emit(";\n")
}
