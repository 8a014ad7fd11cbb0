// Package gotypes generates TypeScript declarations from Go source code.
//
// Exported structs become interfaces, string types with a const block become
// unions of string literals and other named types become aliases:
//
//	// A registered user.
//	type User struct {
//	    ID     string  `json:"id"`
//	    Status Status  `json:"status"`
//	    Email  *string `json:"email"`
//	}
//
// renders as
//
//	/**
//	 * A registered user.
//	 */
//	export interface User {
//	  id: string;
//	  status: Status;
//	  email?: string | null;
//	}
//
// Struct tags drive naming and optionality:
//   - json:"name,omitempty" names the property and makes it optional
//   - json:"-" or tstype:"-" drops the field
//   - tstype:"Type" overrides the inferred type (a manifest type expression)
//   - tstype:"Type,optional" overrides the type and makes it optional
//
// References to types of another loaded package become imports from
// ModulePrefix + package name, so a set of packages renders into sibling
// modules that import each other.
package gotypes

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/teranos/tspoet/am"
	"github.com/teranos/tspoet/errors"
	"github.com/teranos/tspoet/logger"
	"github.com/teranos/tspoet/poet"
)

// Package holds the declarations generated for one Go package.
type Package struct {
	// Name is the Go package name and the module name of the generated file
	Name string

	// Path is the Go import path, empty when converted from bare syntax
	Path string

	// Declarations sorted by name
	Declarations []poet.Declaration
}

// TypeNames returns the names of the generated declarations.
func (p *Package) TypeNames() []string {
	names := make([]string, len(p.Declarations))
	for i, d := range p.Declarations {
		names[i] = d.DeclarationName()
	}
	return names
}

// FileSpec assembles the package into a file. An empty header leaves the
// file without a comment.
func (p *Package) FileSpec(header string) (*poet.FileSpec, error) {
	b := poet.File(p.Name)
	if header != "" {
		b.AddComment("%L\n", header)
		if p.Path != "" {
			b.AddComment("Source: %L\n", p.Path)
		}
	}
	b.AddDeclarations(p.Declarations...)
	return b.Build()
}

// Generator converts Go packages using one configuration.
type Generator struct {
	cfg      am.GoTypesConfig
	excluded map[string]bool
}

// New creates a generator. An empty module prefix means "./".
func New(cfg am.GoTypesConfig) *Generator {
	if cfg.ModulePrefix == "" {
		cfg.ModulePrefix = "./"
	}
	if cfg.FieldCase == "" {
		cfg.FieldCase = am.FieldCaseJSON
	}
	excluded := make(map[string]bool, len(cfg.Excluded))
	for _, name := range cfg.Excluded {
		excluded[name] = true
	}
	return &Generator{cfg: cfg, excluded: excluded}
}

// Load loads the packages matching patterns, resolved from dir, and converts
// each of them. Packages are returned sorted by name; two loaded packages may
// not share a name since each becomes one module.
func (g *Generator) Load(ctx context.Context, dir string, patterns ...string) ([]*Package, error) {
	log := logger.ComponentLogger("gotypes")

	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load packages %s", strings.Join(patterns, " "))
	}
	if len(pkgs) == 0 {
		return nil, errors.Newf("no packages found for %s", strings.Join(patterns, " "))
	}

	local := make(map[string]bool, len(pkgs))
	byName := make(map[string]string, len(pkgs))
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.Newf("package %s: %v", pkg.PkgPath, pkg.Errors[0])
		}
		if prev, ok := byName[pkg.Name]; ok {
			return nil, errors.WithHint(
				errors.Newf("packages %s and %s are both named %s", prev, pkg.PkgPath, pkg.Name),
				"generate them in separate runs with different output directories",
			)
		}
		byName[pkg.Name] = pkg.PkgPath
		local[pkg.PkgPath] = true
	}

	out := make([]*Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		c := g.converter(pkg.Name, pkg.TypesInfo, local)
		result, err := c.convert(pkg.Syntax)
		if err != nil {
			return nil, errors.Wrapf(err, "package %s", pkg.PkgPath)
		}
		result.Path = pkg.PkgPath
		log.Debugw("converted package",
			logger.FieldPackage, pkg.PkgPath,
			logger.FieldCount, len(result.Declarations))
		out = append(out, result)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Convert converts parsed files of one package without type information.
// Every qualified reference pkg.Name is treated as a type of a sibling
// package named pkg.
func (g *Generator) Convert(name string, files []*ast.File) (*Package, error) {
	return g.converter(name, nil, nil).convert(files)
}

func (g *Generator) converter(name string, info *types.Info, local map[string]bool) *converter {
	return &converter{
		gen:     g,
		pkgName: name,
		info:    info,
		local:   local,
		consts:  make(map[string][]string),
	}
}

type goNameKey struct{}

// GoName returns the Go identifier a generated declaration or property was
// converted from, such as models.User or User.CreatedAt.
func GoName(tags poet.Tags) (string, bool) {
	v, ok := tags.Tag(goNameKey{})
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}

type typeDecl struct {
	spec *ast.TypeSpec
	doc  string
}

type converter struct {
	gen     *Generator
	pkgName string
	info    *types.Info
	local   map[string]bool // import paths of packages being generated
	consts  map[string][]string

	typeVars []string
}

func (c *converter) convert(files []*ast.File) (*Package, error) {
	var decls []typeDecl

	// First pass: exported type specs and string const values
	for _, file := range files {
		for _, d := range file.Decls {
			gen, ok := d.(*ast.GenDecl)
			if !ok {
				continue
			}
			switch gen.Tok {
			case token.CONST:
				collectConsts(gen, c.consts)
			case token.TYPE:
				for _, s := range gen.Specs {
					spec := s.(*ast.TypeSpec)
					if !spec.Name.IsExported() || c.gen.excluded[spec.Name.Name] {
						continue
					}
					doc := spec.Doc
					if doc == nil && !gen.Lparen.IsValid() {
						doc = gen.Doc
					}
					decls = append(decls, typeDecl{spec: spec, doc: commentText(doc)})
				}
			}
		}
	}

	sort.Slice(decls, func(i, j int) bool { return decls[i].spec.Name.Name < decls[j].spec.Name.Name })

	result := &Package{Name: c.pkgName}
	for _, d := range decls {
		decl, err := c.declaration(d)
		if err != nil {
			return nil, errors.Wrapf(err, "type %s", d.spec.Name.Name)
		}
		if decl != nil {
			result.Declarations = append(result.Declarations, decl)
		}
	}
	return result, nil
}

// declaration converts one type spec. Go interfaces describe behaviour, not
// data, and produce nothing.
func (c *converter) declaration(d typeDecl) (poet.Declaration, error) {
	name := d.spec.Name.Name
	vars, err := c.typeParams(d.spec.TypeParams)
	if err != nil {
		return nil, err
	}
	defer func() { c.typeVars = nil }()

	switch t := d.spec.Type.(type) {
	case *ast.InterfaceType:
		return nil, nil

	case *ast.StructType:
		b := poet.Interface(name).AddModifiers(poet.Export).AddTypeVariables(vars...).
			Tag(goNameKey{}, c.pkgName+"."+name)
		if d.doc != "" {
			b.AddDoc("%L", d.doc)
		}
		fields, supers, err := c.fields(t.Fields, true)
		if err != nil {
			return nil, err
		}
		b.AddSuperInterfaces(supers...)
		for _, f := range fields {
			pb := poet.Property(f.name, f.typ).Optional(f.optional).
				Tag(goNameKey{}, name+"."+f.goName)
			if f.doc != "" {
				pb.AddDoc("%L", f.doc)
			}
			prop, err := pb.Build()
			if err != nil {
				return nil, err
			}
			b.AddProperties(prop)
		}
		return b.Build()

	default:
		var target poet.TypeName
		if values := c.consts[name]; len(values) > 0 && isIdent(t, "string") {
			members := make([]poet.TypeName, len(values))
			for i, v := range values {
				members[i] = poet.StringLiteral(v)
			}
			target = poet.Union(members...)
		} else {
			target, err = c.typeOf(t)
			if err != nil {
				return nil, err
			}
		}
		b := poet.TypeAlias(name, target).AddModifiers(poet.Export).AddTypeVariables(vars...).
			Tag(goNameKey{}, c.pkgName+"."+name)
		if d.doc != "" {
			b.AddDoc("%L", d.doc)
		}
		return b.Build()
	}
}

// typeParams binds the type parameters before converting their constraints.
// Constraints that are not plain types, such as ~int | ~string, are dropped.
func (c *converter) typeParams(list *ast.FieldList) ([]poet.TypeVariable, error) {
	if list == nil {
		return nil, nil
	}
	for _, f := range list.List {
		for _, n := range f.Names {
			c.typeVars = append(c.typeVars, n.Name)
		}
	}

	var vars []poet.TypeVariable
	for _, f := range list.List {
		var bounds []poet.Bound
		if !isIdent(f.Type, "any") && !isIdent(f.Type, "comparable") {
			if bound, err := c.typeOf(f.Type); err == nil {
				bounds = append(bounds, poet.BoundBy(bound))
			}
		}
		for _, n := range f.Names {
			vars = append(vars, poet.TypeVar(n.Name, bounds...))
		}
	}
	return vars, nil
}

// collectConsts records string literal values grouped by their declared type.
// A spec without a type inherits the type of the previous spec in the block.
func collectConsts(decl *ast.GenDecl, constValues map[string][]string) {
	var currentType string

	for _, spec := range decl.Specs {
		valueSpec, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		if valueSpec.Type != nil {
			currentType = ""
			if ident, ok := valueSpec.Type.(*ast.Ident); ok {
				currentType = ident.Name
			}
		}
		if currentType == "" {
			continue
		}

		for _, value := range valueSpec.Values {
			if s, ok := stringLit(value); ok {
				constValues[currentType] = append(constValues[currentType], s)
			}
		}
	}
}

func isIdent(expr ast.Expr, name string) bool {
	ident, ok := expr.(*ast.Ident)
	return ok && ident.Name == name
}
