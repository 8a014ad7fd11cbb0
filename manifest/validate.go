package manifest

import (
	"path"
	"strings"

	"github.com/teranos/tspoet/errors"
)

// Validate checks the structure of a manifest. Type expressions and
// modifiers are checked when the manifest is converted.
func (f *File) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.NewInvalidManifestf("name is required")
	}
	if path.IsAbs(f.Name) || strings.HasPrefix(path.Clean(f.Name), "..") {
		return errors.WithHint(
			errors.NewInvalidManifestf("name %q escapes the output directory", f.Name),
			"use a relative module path such as models/user",
		)
	}
	if ext := path.Ext(f.Name); ext == ".ts" || ext == ".tsx" {
		return errors.NewInvalidManifestf("name %q must not carry an extension", f.Name)
	}

	seen := make(map[string]int)
	for i := range f.Declarations {
		d := &f.Declarations[i]
		if err := d.validate(); err != nil {
			return errors.Wrapf(err, "declarations[%d]%s", i, labelFor(d.Name))
		}
		if d.Kind == KindCode {
			continue
		}
		if prev, ok := seen[d.Name]; ok {
			return errors.NewInvalidManifestf("declarations[%d] redeclares %s (first at declarations[%d])", i, d.Name, prev)
		}
		seen[d.Name] = i
	}
	return nil
}

func labelFor(name string) string {
	if name == "" {
		return ""
	}
	return " (" + name + ")"
}

func (d *Declaration) validate() error {
	if d.Kind != KindCode && d.Name == "" {
		return errors.NewInvalidManifestf("%s needs a name", d.kindLabel())
	}

	// Fields that only make sense for particular kinds
	misplaced := func(field string, set bool, kinds ...string) error {
		if !set {
			return nil
		}
		for _, k := range kinds {
			if d.Kind == k {
				return nil
			}
		}
		return errors.NewInvalidManifestf("%s cannot have %s", d.kindLabel(), field)
	}
	checks := []error{
		misplaced("type", d.Type != "", KindAlias),
		misplaced("extends", len(d.Extends) > 0, KindInterface, KindClass),
		misplaced("implements", len(d.Implements) > 0, KindClass),
		misplaced("constructor", d.Constructor != nil, KindClass),
		misplaced("properties", len(d.Properties) > 0, KindInterface, KindClass),
		misplaced("methods", len(d.Methods) > 0, KindInterface, KindClass),
		misplaced("constants", len(d.Constants) > 0, KindEnum),
		misplaced("params", len(d.Params) > 0, KindFunction),
		misplaced("returns", d.Returns != "", KindFunction),
		misplaced("body", len(d.Body) > 0, KindFunction, KindCode),
		misplaced("decorators", len(d.Decorators) > 0, KindClass, KindFunction),
		misplaced("type_params", len(d.TypeParams) > 0, KindAlias, KindInterface, KindClass, KindFunction),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}

	switch d.Kind {
	case KindAlias:
		if d.Type == "" {
			return errors.NewInvalidManifestf("alias needs a type")
		}
	case KindClass:
		if len(d.Extends) > 1 {
			return errors.NewInvalidManifestf("class can extend one type, got %d", len(d.Extends))
		}
	case KindEnum:
		for _, c := range d.Constants {
			if c.Value != "" && c.String != "" {
				return errors.NewInvalidManifestf("enum constant %s sets both value and string", c.Name)
			}
		}
	case KindCode:
		if len(d.Body) == 0 {
			return errors.NewInvalidManifestf("code needs a body")
		}
	case KindInterface, KindFunction:
	default:
		return errors.WithHintf(
			errors.NewInvalidManifestf("unknown kind %q", d.Kind),
			"kind is one of %s", strings.Join([]string{KindAlias, KindInterface, KindClass, KindEnum, KindFunction, KindCode}, ", "),
		)
	}
	return nil
}

func (d *Declaration) kindLabel() string {
	if d.Kind == "" {
		return "declaration"
	}
	return d.Kind
}
