package gotypes

import (
	"go/ast"
	"reflect"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/teranos/tspoet/am"
	"github.com/teranos/tspoet/errors"
	"github.com/teranos/tspoet/manifest"
	"github.com/teranos/tspoet/poet"
)

// FieldTags contains parsed struct tag information
type FieldTags struct {
	JSONName   string // Field name from json tag
	Omitempty  bool   // Has omitempty option
	TSType     string // Custom TypeScript type from tstype tag
	TSOptional bool   // Force optional with tstype:",optional"
	Skip       bool   // Skip this field (json:"-" or tstype:"-")
}

// ParseFieldTags extracts json and tstype tags from a raw struct tag, with
// or without the surrounding backquotes.
//
// Example:
//
//	Field string `json:"field" tstype:"string | null"`
func ParseFieldTags(tag string) FieldTags {
	info := FieldTags{}
	st := reflect.StructTag(strings.Trim(tag, "`"))

	if jsonTag, ok := st.Lookup("json"); ok {
		parts := strings.Split(jsonTag, ",")
		if parts[0] == "-" && len(parts) == 1 {
			info.Skip = true
			return info
		}
		info.JSONName = parts[0]
		for _, part := range parts[1:] {
			if part == "omitempty" || part == "omitzero" {
				info.Omitempty = true
			}
		}
	}

	if tstypeTag, ok := st.Lookup("tstype"); ok {
		if tstypeTag == "-" {
			info.Skip = true
			return info
		}
		// Only trailing option keywords are split off; the type itself may
		// contain commas, as in Record<string, unknown>
		typ := tstypeTag
		for {
			i := strings.LastIndexByte(typ, ',')
			if i < 0 || !tstypeOptions[strings.TrimSpace(typ[i+1:])] {
				break
			}
			if strings.TrimSpace(typ[i+1:]) == "optional" {
				info.TSOptional = true
			}
			typ = typ[:i]
		}
		info.TSType = strings.TrimSpace(typ)
	}

	return info
}

var tstypeOptions = map[string]bool{"optional": true}

type field struct {
	name     string
	goName   string
	typ      poet.TypeName
	optional bool
	doc      string
}

// fields converts a struct field list. Embedded structs without a json name
// are flattened by encoding/json; they are returned as super types when
// allowed and rejected otherwise.
func (c *converter) fields(list *ast.FieldList, allowEmbedded bool) ([]field, []poet.TypeName, error) {
	var out []field
	var supers []poet.TypeName

	for _, f := range list.List {
		var tags FieldTags
		if f.Tag != nil {
			raw, err := strconv.Unquote(f.Tag.Value)
			if err != nil {
				raw = f.Tag.Value
			}
			tags = ParseFieldTags(raw)
		}
		if tags.Skip {
			continue
		}

		names := make([]string, 0, len(f.Names))
		for _, n := range f.Names {
			if n.IsExported() {
				names = append(names, n.Name)
			}
		}

		if len(f.Names) == 0 {
			embedded := embeddedName(f.Type)
			if tags.JSONName == "" {
				if !allowEmbedded {
					return nil, nil, errors.Wrapf(errors.ErrUnsupportedType, "embedded %s in an anonymous struct", embedded)
				}
				super, err := c.typeOf(stripPointer(f.Type))
				if err != nil {
					return nil, nil, err
				}
				supers = append(supers, super)
				continue
			}
			if !ast.IsExported(embedded) {
				continue
			}
			names = append(names, embedded)
		}

		for _, goName := range names {
			fd, err := c.field(goName, f, tags)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "field %s", goName)
			}
			out = append(out, fd)
		}
	}
	return out, supers, nil
}

func (c *converter) field(goName string, f *ast.Field, tags FieldTags) (field, error) {
	name := c.gen.propertyName(goName, tags)
	if !poet.IsMemberName(name) {
		return field{}, errors.WithHint(
			errors.Wrapf(errors.ErrUnsupportedType, "property name %q is not a TypeScript identifier", name),
			"rename it in the json tag or drop it with tstype:\"-\"",
		)
	}

	_, isPointer := f.Type.(*ast.StarExpr)
	fd := field{
		name:     name,
		goName:   goName,
		optional: tags.Omitempty || tags.TSOptional || isPointer,
		doc:      fieldComment(f),
	}

	if tags.TSType != "" {
		t, err := manifest.ParseType(tags.TSType, c.typeVars...)
		if err != nil {
			return field{}, errors.Wrap(err, "tstype")
		}
		fd.typ = t
		return fd, nil
	}

	t, err := c.typeOf(f.Type)
	if err != nil {
		return field{}, err
	}
	if isPointer {
		t = poet.Union(t, poet.Null)
	}
	fd.typ = t
	return fd, nil
}

// propertyName applies the json name, then the configured casing. The keep
// case ignores json names altogether.
func (g *Generator) propertyName(goName string, tags FieldTags) string {
	if tags.JSONName != "" && g.cfg.FieldCase != am.FieldCaseKeep {
		return tags.JSONName
	}
	switch g.cfg.FieldCase {
	case am.FieldCaseCamel:
		return strcase.ToCamel(goName)
	case am.FieldCaseLowerCamel:
		return strcase.ToLowerCamel(goName)
	case am.FieldCaseSnake:
		return strcase.ToSnake(goName)
	}
	return goName
}

func embeddedName(expr ast.Expr) string {
	switch t := stripPointer(expr).(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	}
	return ""
}

func stripPointer(expr ast.Expr) ast.Expr {
	if star, ok := expr.(*ast.StarExpr); ok {
		return star.X
	}
	return expr
}

// fieldComment prefers the doc comment above a field over the trailing one
func fieldComment(f *ast.Field) string {
	if text := commentText(f.Doc); text != "" {
		return strings.Join(strings.Fields(text), " ")
	}
	return commentText(f.Comment)
}

func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}
