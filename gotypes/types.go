package gotypes

import (
	"go/ast"
	"go/token"
	"go/types"
	"strconv"

	"github.com/teranos/tspoet/errors"
	"github.com/teranos/tspoet/logger"
	"github.com/teranos/tspoet/poet"
)

// TypeMapping maps predeclared and well-known Go types to TypeScript
var TypeMapping = map[string]poet.TypeName{
	"string":          poet.String,
	"bool":            poet.Boolean,
	"int":             poet.Number,
	"int8":            poet.Number,
	"int16":           poet.Number,
	"int32":           poet.Number,
	"int64":           poet.Number,
	"uint":            poet.Number,
	"uint8":           poet.Number,
	"uint16":          poet.Number,
	"uint32":          poet.Number,
	"uint64":          poet.Number,
	"uintptr":         poet.Number,
	"byte":            poet.Number,
	"rune":            poet.Number,
	"float32":         poet.Number,
	"float64":         poet.Number,
	"any":             poet.Unknown,
	"error":           poet.Unknown,
	"time.Time":       poet.String,
	"time.Duration":   poet.Number,
	"json.RawMessage": poet.Unknown,
	"big.Int":         poet.String,
	"url.URL":         poet.String,
	// SQL nullable types
	"sql.NullString":  poet.Union(poet.String, poet.Null),
	"sql.NullInt64":   poet.Union(poet.Number, poet.Null),
	"sql.NullInt32":   poet.Union(poet.Number, poet.Null),
	"sql.NullInt16":   poet.Union(poet.Number, poet.Null),
	"sql.NullFloat64": poet.Union(poet.Number, poet.Null),
	"sql.NullBool":    poet.Union(poet.Boolean, poet.Null),
	"sql.NullTime":    poet.Union(poet.String, poet.Null),
}

// typeOf converts a Go type expression
func (c *converter) typeOf(expr ast.Expr) (poet.TypeName, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		for _, v := range c.typeVars {
			if v == t.Name {
				return poet.TypeVar(t.Name), nil
			}
		}
		if ts, ok := TypeMapping[t.Name]; ok && c.isUniverse(t) {
			return ts, nil
		}
		if c.gen.excluded[t.Name] {
			return poet.Unknown, nil
		}
		// A type declared in the same package
		return poet.TypeNamed(t.Name), nil

	case *ast.SelectorExpr:
		return c.qualified(t)

	case *ast.StarExpr:
		return c.typeOf(t.X)

	case *ast.ParenExpr:
		return c.typeOf(t.X)

	case *ast.ArrayType:
		// encoding/json writes []byte as a base64 string
		if t.Len == nil && isIdent(t.Elt, "byte") {
			return poet.String, nil
		}
		elem, err := c.typeOf(t.Elt)
		if err != nil {
			return nil, err
		}
		return poet.ArrayOf(elem), nil

	case *ast.MapType:
		key, err := c.typeOf(t.Key)
		if err != nil {
			return nil, err
		}
		value, err := c.typeOf(t.Value)
		if err != nil {
			return nil, err
		}
		return poet.RecordType(key, value), nil

	case *ast.IndexExpr:
		return c.instance(t.X, t.Index)

	case *ast.IndexListExpr:
		return c.instance(t.X, t.Indices...)

	case *ast.InterfaceType:
		return poet.Unknown, nil

	case *ast.StructType:
		fields, _, err := c.fields(t.Fields, false)
		if err != nil {
			return nil, err
		}
		members := make([]poet.ObjectMember, len(fields))
		for i, f := range fields {
			members[i] = poet.ObjectMember{Name: f.name, Type: f.typ, Optional: f.optional}
		}
		return poet.ObjectOf(members...), nil

	case *ast.FuncType:
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrUnsupportedType, "func"),
			"functions do not marshal to JSON; tag the field json:\"-\"",
		)

	case *ast.ChanType:
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrUnsupportedType, "chan"),
			"channels do not marshal to JSON; tag the field json:\"-\"",
		)
	}

	return nil, errors.Wrapf(errors.ErrUnsupportedType, "%T", expr)
}

func (c *converter) instance(generic ast.Expr, args ...ast.Expr) (poet.TypeName, error) {
	raw, err := c.typeOf(generic)
	if err != nil {
		return nil, err
	}
	if poet.TypeString(raw) == poet.TypeString(poet.Unknown) {
		return poet.Unknown, nil
	}
	converted := make([]poet.TypeName, len(args))
	for i, a := range args {
		converted[i], err = c.typeOf(a)
		if err != nil {
			return nil, err
		}
	}
	return poet.Parameterized(raw, converted...), nil
}

// qualified converts pkg.Name. Well-known types map directly, types of a
// package being generated are imported from its module, and anything else
// becomes unknown.
func (c *converter) qualified(sel *ast.SelectorExpr) (poet.TypeName, error) {
	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnsupportedType, "selector on %T", sel.X)
	}

	pkgName, pkgPath := ident.Name, ""
	if c.info != nil {
		if pn, ok := c.info.Uses[ident].(*types.PkgName); ok {
			pkgName = pn.Imported().Name()
			pkgPath = pn.Imported().Path()
		}
	}

	if ts, ok := TypeMapping[pkgName+"."+sel.Sel.Name]; ok {
		return ts, nil
	}

	if c.local != nil && !c.local[pkgPath] {
		logger.ComponentLogger("gotypes").Warnw("type from a package that is not generated",
			logger.FieldPackage, pkgPath,
			logger.FieldSymbol, sel.Sel.Name)
		return poet.Unknown, nil
	}
	return poet.TypeImported(sel.Sel.Name, c.gen.cfg.ModulePrefix+pkgName), nil
}

// isUniverse reports whether ident names a predeclared type rather than a
// package-level type that shadows it. Without type information the name is
// trusted.
func (c *converter) isUniverse(ident *ast.Ident) bool {
	if c.info == nil {
		return true
	}
	obj, ok := c.info.Uses[ident]
	if !ok {
		return true
	}
	return obj.Parent() == types.Universe
}

func stringLit(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return s, true
}
