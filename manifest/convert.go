package manifest

import (
	"strings"

	"github.com/teranos/tspoet/errors"
	"github.com/teranos/tspoet/poet"
)

// NoHeader as a manifest header suppresses the file comment
const NoHeader = "-"

// ToFileSpec converts the manifest into a renderable file. defaultHeader is
// used when the manifest does not set its own. Every error returned matches
// errors.ErrInvalidManifest.
func (f *File) ToFileSpec(defaultHeader string) (*poet.FileSpec, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	b := poet.File(f.Name)

	header := f.Header
	if header == "" {
		header = defaultHeader
	}
	if header != "" && header != NoHeader {
		b.AddComment("%L", header)
	}

	for i := range f.Declarations {
		d := &f.Declarations[i]
		if d.Kind == KindCode {
			cb, err := bodyBlock(d.Body)
			if err != nil {
				return nil, errors.MarkInvalidManifest(errors.Wrapf(err, "declarations[%d]", i))
			}
			b.AddCode("%L", cb)
			continue
		}

		decl, err := d.toDeclaration()
		if err != nil {
			return nil, errors.MarkInvalidManifest(errors.Wrapf(err, "declarations[%d] (%s)", i, d.Name))
		}
		b.AddDeclarations(decl)
	}

	spec, err := b.Build()
	if err != nil {
		return nil, errors.MarkInvalidManifest(err)
	}
	return spec, nil
}

func (d *Declaration) toDeclaration() (poet.Declaration, error) {
	switch d.Kind {
	case KindAlias:
		return d.alias()
	case KindInterface:
		return d.iface()
	case KindClass:
		return d.class()
	case KindEnum:
		return d.enum()
	case KindFunction:
		return buildFunction(d.function(), nil, false)
	}
	return nil, errors.NewInvalidManifestf("unknown kind %q", d.Kind)
}

func (d *Declaration) alias() (*poet.TypeAliasSpec, error) {
	vars, names, err := typeVariables(d.TypeParams, nil)
	if err != nil {
		return nil, err
	}
	t, err := ParseType(d.Type, names...)
	if err != nil {
		return nil, err
	}
	mods, err := modifiers(d.Modifiers)
	if err != nil {
		return nil, err
	}

	b := poet.TypeAlias(d.Name, t).AddModifiers(mods...).AddTypeVariables(vars...)
	if d.Doc != "" {
		b.AddDoc("%L", d.Doc)
	}
	return b.Build()
}

func (d *Declaration) iface() (*poet.InterfaceSpec, error) {
	vars, names, err := typeVariables(d.TypeParams, nil)
	if err != nil {
		return nil, err
	}
	mods, err := modifiers(d.Modifiers)
	if err != nil {
		return nil, err
	}
	supers, err := parseTypes(d.Extends, names)
	if err != nil {
		return nil, err
	}
	props, err := properties(d.Properties, names)
	if err != nil {
		return nil, err
	}
	fns, err := methods(d.Methods, names)
	if err != nil {
		return nil, err
	}

	b := poet.Interface(d.Name).
		AddModifiers(mods...).
		AddTypeVariables(vars...).
		AddSuperInterfaces(supers...).
		AddProperties(props...).
		AddFunctions(fns...)
	if d.Doc != "" {
		b.AddDoc("%L", d.Doc)
	}
	return b.Build()
}

func (d *Declaration) class() (*poet.ClassSpec, error) {
	vars, names, err := typeVariables(d.TypeParams, nil)
	if err != nil {
		return nil, err
	}
	mods, err := modifiers(d.Modifiers)
	if err != nil {
		return nil, err
	}
	decs, err := decorators(d.Decorators)
	if err != nil {
		return nil, err
	}
	ifaces, err := parseTypes(d.Implements, names)
	if err != nil {
		return nil, err
	}
	props, err := properties(d.Properties, names)
	if err != nil {
		return nil, err
	}
	fns, err := methods(d.Methods, names)
	if err != nil {
		return nil, err
	}

	b := poet.Class(d.Name).
		AddModifiers(mods...).
		AddDecorators(decs...).
		AddTypeVariables(vars...).
		AddInterfaces(ifaces...).
		AddProperties(props...).
		AddFunctions(fns...)
	if d.Doc != "" {
		b.AddDoc("%L", d.Doc)
	}
	if len(d.Extends) == 1 {
		super, err := ParseType(d.Extends[0], names...)
		if err != nil {
			return nil, err
		}
		b.SuperClass(super)
	}
	if d.Constructor != nil {
		ctor, err := buildFunction(*d.Constructor, names, true)
		if err != nil {
			return nil, errors.Wrap(err, "constructor")
		}
		b.Constructor(ctor)
	}
	return b.Build()
}

func (d *Declaration) enum() (*poet.EnumSpec, error) {
	mods, err := modifiers(d.Modifiers)
	if err != nil {
		return nil, err
	}
	b := poet.Enum(d.Name).AddModifiers(mods...)
	if d.Doc != "" {
		b.AddDoc("%L", d.Doc)
	}
	for _, c := range d.Constants {
		if c.String != "" {
			b.AddStringConstant(c.Name, c.String)
		} else {
			b.AddConstant(c.Name, c.Value)
		}
	}
	return b.Build()
}

func buildFunction(fn Function, outer []string, ctor bool) (*poet.FunctionSpec, error) {
	vars, names, err := typeVariables(fn.TypeParams, outer)
	if err != nil {
		return nil, err
	}
	mods, err := modifiers(fn.Modifiers)
	if err != nil {
		return nil, err
	}
	decs, err := decorators(fn.Decorators)
	if err != nil {
		return nil, err
	}

	var b *poet.FunctionBuilder
	if ctor {
		b = poet.Constructor()
	} else {
		b = poet.Function(fn.Name)
	}
	b.AddModifiers(mods...).AddDecorators(decs...).AddTypeVariables(vars...)
	if fn.Doc != "" {
		b.AddDoc("%L", fn.Doc)
	}

	for _, p := range fn.Params {
		param, err := parameter(p, names)
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %s", p.Name)
		}
		b.AddParameters(param)
	}

	if fn.Returns != "" {
		ret, err := ParseType(fn.Returns, names...)
		if err != nil {
			return nil, err
		}
		b.Returns(ret)
	}

	if len(fn.Body) > 0 {
		body, err := bodyBlock(fn.Body)
		if err != nil {
			return nil, err
		}
		b.AddCodeBlock(body)
	}
	return b.Build()
}

func methods(fns []Function, names []string) ([]*poet.FunctionSpec, error) {
	out := make([]*poet.FunctionSpec, 0, len(fns))
	for _, fn := range fns {
		spec, err := buildFunction(fn, names, false)
		if err != nil {
			return nil, errors.Wrapf(err, "method %s", fn.Name)
		}
		out = append(out, spec)
	}
	return out, nil
}

func parameter(p Param, names []string) (*poet.ParameterSpec, error) {
	t, err := ParseType(p.Type, names...)
	if err != nil {
		return nil, err
	}
	mods, err := modifiers(p.Modifiers)
	if err != nil {
		return nil, err
	}
	decs, err := decorators(p.Decorators)
	if err != nil {
		return nil, err
	}

	b := poet.Parameter(p.Name, t).
		Optional(p.Optional).
		Rest(p.Rest).
		AddModifiers(mods...).
		AddDecorators(decs...)
	if p.Default != "" {
		b.Default("%L", p.Default)
	}
	return b.Build()
}

func properties(props []Property, names []string) ([]*poet.PropertySpec, error) {
	out := make([]*poet.PropertySpec, 0, len(props))
	for _, p := range props {
		t, err := ParseType(p.Type, names...)
		if err != nil {
			return nil, errors.Wrapf(err, "property %s", p.Name)
		}
		mods, err := modifiers(p.Modifiers)
		if err != nil {
			return nil, errors.Wrapf(err, "property %s", p.Name)
		}
		decs, err := decorators(p.Decorators)
		if err != nil {
			return nil, errors.Wrapf(err, "property %s", p.Name)
		}

		b := poet.Property(p.Name, t, mods...).Optional(p.Optional).AddDecorators(decs...)
		if p.Doc != "" {
			b.AddDoc("%L", p.Doc)
		}
		if p.Initializer != "" {
			b.Initializer("%L", p.Initializer)
		}
		spec, err := b.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

func decorators(decs []Decorator) ([]*poet.DecoratorSpec, error) {
	out := make([]*poet.DecoratorSpec, 0, len(decs))
	for _, d := range decs {
		b := poet.Decorator(poet.SymbolFrom(d.Name)).Factory(d.Factory)
		for _, arg := range d.Args {
			b.AddArgument("%L", arg)
		}
		spec, err := b.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

// typeVariables declares params on top of the enclosing names. All names are
// bound before bounds are parsed so bounds may refer to each other.
func typeVariables(params []TypeParam, outer []string) ([]poet.TypeVariable, []string, error) {
	names := append([]string(nil), outer...)
	for _, p := range params {
		if !poet.IsName(p.Name) {
			return nil, nil, errors.NewInvalidManifestf("invalid type parameter name %q", p.Name)
		}
		names = append(names, p.Name)
	}

	vars := make([]poet.TypeVariable, 0, len(params))
	for _, p := range params {
		combiner := poet.CombineIntersection
		if p.Union {
			combiner = poet.CombineUnion
		}
		modifier := poet.NoBoundModifier
		if p.KeyOf {
			modifier = poet.KeyOf
		}

		var bounds []poet.Bound
		for _, expr := range p.Extends {
			t, err := ParseType(expr, names...)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "bound of %s", p.Name)
			}
			bounds = append(bounds, poet.Bound{Type: t, Combiner: combiner, Modifier: modifier})
		}
		vars = append(vars, poet.TypeVar(p.Name, bounds...))
	}
	return vars, names, nil
}

func parseTypes(exprs []string, names []string) ([]poet.TypeName, error) {
	out := make([]poet.TypeName, 0, len(exprs))
	for _, expr := range exprs {
		t, err := ParseType(expr, names...)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func modifiers(keywords []string) ([]poet.Modifier, error) {
	out := make([]poet.Modifier, 0, len(keywords))
	for _, kw := range keywords {
		m, err := poet.ParseModifier(strings.TrimSpace(kw))
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// bodyBlock turns body lines into statements. A line ending in '{' opens a
// block, a line starting with '}' closes one, and any other line becomes a
// statement unless it already ends in punctuation or is a comment.
func bodyBlock(lines []string) (poet.CodeBlock, error) {
	b := poet.NewCodeBlock()
	depth := 0

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			b.Add("\n")
		case strings.HasPrefix(line, "}"):
			if depth == 0 {
				return poet.CodeBlock{}, errors.NewInvalidManifestf("unbalanced %q in body", line)
			}
			if strings.HasSuffix(line, "{") {
				b.NextControlFlow("%L", strings.TrimSpace(line[1:len(line)-1]))
				continue
			}
			depth--
			b.Unindent().Add("%L\n", line)
		case strings.HasSuffix(line, "{"):
			depth++
			b.BeginControlFlow("%L", strings.TrimSpace(strings.TrimSuffix(line, "{")))
		case isComment(line) || strings.ContainsAny(line[len(line)-1:], ";,([:"):
			b.Add("%L\n", line)
		default:
			b.AddStatement("%L", line)
		}
	}

	if depth != 0 {
		return poet.CodeBlock{}, errors.NewInvalidManifestf("body leaves %d block(s) open", depth)
	}
	return b.Build()
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "//") || strings.HasPrefix(line, "/*") || strings.HasPrefix(line, "*")
}
