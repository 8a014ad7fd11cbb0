package poet

import (
	"sort"

	"github.com/teranos/tspoet/errors"
)

// Modifier is a declaration keyword. The constant order is the order in
// which modifiers are emitted.
type Modifier int

const (
	Export Modifier = iota
	Declare
	Default
	Public
	Protected
	Private
	Abstract
	Static
	Readonly
	Async
	Const
	Let
	Var
)

var modifierKeywords = [...]string{
	Export:    "export",
	Declare:   "declare",
	Default:   "default",
	Public:    "public",
	Protected: "protected",
	Private:   "private",
	Abstract:  "abstract",
	Static:    "static",
	Readonly:  "readonly",
	Async:     "async",
	Const:     "const",
	Let:       "let",
	Var:       "var",
}

// Keyword is the TypeScript spelling of the modifier.
func (m Modifier) Keyword() string {
	if m < 0 || int(m) >= len(modifierKeywords) {
		return ""
	}
	return modifierKeywords[m]
}

func (m Modifier) String() string { return m.Keyword() }

// ParseModifier maps a keyword back to its Modifier.
func ParseModifier(keyword string) (Modifier, error) {
	for m, kw := range modifierKeywords {
		if kw == keyword {
			return Modifier(m), nil
		}
	}
	return 0, errors.Newf("unknown modifier %q", keyword)
}

// modifierSet is a deduplicated, canonically ordered modifier list.
type modifierSet []Modifier

func newModifierSet(mods ...Modifier) modifierSet {
	var set modifierSet
	return set.with(mods...)
}

func (s modifierSet) with(mods ...Modifier) modifierSet {
	out := append(modifierSet(nil), s...)
	for _, m := range mods {
		if !out.has(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s modifierSet) has(m Modifier) bool {
	for _, x := range s {
		if x == m {
			return true
		}
	}
	return false
}

// requireOnly returns an error naming the first modifier outside allowed.
func (s modifierSet) requireOnly(what string, allowed ...Modifier) error {
	for _, m := range s {
		ok := false
		for _, a := range allowed {
			if m == a {
				ok = true
				break
			}
		}
		if !ok {
			return errors.NewMalformedCodef("modifier %s is not allowed on %s", m.Keyword(), what)
		}
	}
	return nil
}
