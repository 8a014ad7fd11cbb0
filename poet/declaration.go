package poet

import (
	"github.com/teranos/tspoet/errors"
)

// Declaration is a top-level or nested TypeScript declaration. The set of
// implementations is closed: *TypeAliasSpec, *InterfaceSpec, *ClassSpec,
// *EnumSpec and *FunctionSpec.
type Declaration interface {
	// DeclarationName is the identifier the declaration binds.
	DeclarationName() string

	emit(w *CodeWriter, scope Scope) error
}

// Emit renders d into w.
func Emit(w *CodeWriter, d Declaration, scope Scope) error {
	return d.emit(w, scope)
}

// DeclarationString renders d on its own.
func DeclarationString(d Declaration) string {
	return renderString(func(w *CodeWriter) error {
		return d.emit(w, nil)
	})
}

// emitf builds and emits a single-format block.
func (w *CodeWriter) emitf(scope Scope, format string, args ...interface{}) error {
	cb, err := CodeBlockOf(format, args...)
	if err != nil {
		return err
	}
	return w.EmitCode(cb, scope)
}

// specBuilder carries what every declaration builder has: a documentation
// block, modifiers and the first construction error.
type specBuilder struct {
	doc       *CodeBlockBuilder
	modifiers []Modifier
	tags      Tags
	err       error
}

func (b *specBuilder) tag(key, value interface{}) {
	if b.tags == nil {
		b.tags = make(Tags)
	}
	b.tags[key] = value
}

// Tags carries caller data on a spec, such as the source a declaration was
// generated from. Rendering ignores it. Keys follow context.Context rules:
// use an unexported type to avoid collisions.
type Tags map[interface{}]interface{}

// Tag returns the value stored under key.
func (t Tags) Tag(key interface{}) (interface{}, bool) {
	v, ok := t[key]
	return v, ok
}

func (t Tags) clone() Tags {
	if len(t) == 0 {
		return nil
	}
	out := make(Tags, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

func newSpecBuilder() specBuilder {
	return specBuilder{doc: NewCodeBlock()}
}

func (b *specBuilder) fail(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

func (b *specBuilder) addDoc(format string, args ...interface{}) {
	b.doc.Add(format, args...)
}

// finish validates the name and modifiers and builds the doc block.
func (b *specBuilder) finish(kind, name string, allowed ...Modifier) (CodeBlock, modifierSet, error) {
	return b.finishNamed(IsName, kind, name, allowed...)
}

func (b *specBuilder) finishNamed(valid func(string) bool, kind, name string, allowed ...Modifier) (CodeBlock, modifierSet, error) {
	if b.err != nil {
		return CodeBlock{}, nil, b.err
	}
	if !valid(name) {
		return CodeBlock{}, nil, errors.NewMalformedCodef("not a valid %s name: %q", kind, name)
	}
	mods := newModifierSet(b.modifiers...)
	if allowed != nil {
		if err := mods.requireOnly(kind+" "+name, allowed...); err != nil {
			return CodeBlock{}, nil, err
		}
	}
	doc, err := b.doc.Build()
	if err != nil {
		return CodeBlock{}, nil, errors.Wrapf(err, "doc of %s %s", kind, name)
	}
	return doc, mods, nil
}

func typeVariableNames(vars []TypeVariable) []string {
	names := make([]string, len(vars))
	for i, tv := range vars {
		names[i] = tv.Name
	}
	return names
}
