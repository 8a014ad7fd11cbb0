package poet

import "strings"

// Scope lists the names lexically bound around a reference site, outermost
// first: enclosing declaration names and their type parameters.
type Scope []string

// Nested returns a new scope with names appended. The receiver is not
// modified.
func (s Scope) Nested(names ...string) Scope {
	out := make(Scope, 0, len(s)+len(names))
	out = append(out, s...)
	return append(out, names...)
}

// Binds reports whether name is bound in the scope.
func (s Scope) Binds(name string) bool {
	for _, n := range s {
		if n == name {
			return true
		}
	}
	return false
}

// resolve returns the text a qualified name renders as at a site inside the
// scope, and whether the name is satisfied lexically (no import needed).
func (s Scope) resolve(qualified string) (string, bool) {
	for k := len(s); k > 0; k-- {
		prefix := strings.Join(s[:k], ".") + "."
		if strings.HasPrefix(qualified, prefix) && len(qualified) > len(prefix) {
			return qualified[len(prefix):], true
		}
	}
	return qualified, s.Binds(firstSegment(qualified))
}
