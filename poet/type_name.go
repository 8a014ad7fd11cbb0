package poet

import (
	"strings"
)

// TypeName is a TypeScript type as it appears at a use site. The set of
// implementations is closed; construct them with the functions below.
type TypeName interface {
	// Reference renders the type as seen from scope, reporting every symbol
	// it resolves to the tracker (which may be nil).
	Reference(tracker SymbolTracker, scope Scope) string

	isTypeName()
}

// Predefined types.
var (
	String    = TypeNamed("string")
	Number    = TypeNamed("number")
	Boolean   = TypeNamed("boolean")
	BigInt    = TypeNamed("bigint")
	Any       = TypeNamed("any")
	Unknown   = TypeNamed("unknown")
	Void      = TypeNamed("void")
	Null      = TypeNamed("null")
	Undefined = TypeNamed("undefined")
	Never     = TypeNamed("never")
	Object    = TypeNamed("object")
)

// StandardType is a type backed by a single symbol.
type StandardType struct {
	Symbol SymbolSpec
}

// TypeFor returns the type naming symbol.
func TypeFor(symbol SymbolSpec) StandardType {
	return StandardType{Symbol: symbol}
}

// TypeNamed returns a type for a locally bound name.
func TypeNamed(name string) StandardType {
	return StandardType{Symbol: Named(name)}
}

// TypeImported returns a type for name imported from source.
func TypeImported(name, source string) StandardType {
	return StandardType{Symbol: Imported(name, source)}
}

func (t StandardType) Reference(tracker SymbolTracker, scope Scope) string {
	display, local := scope.resolve(t.Symbol.Name())
	if !local && tracker != nil {
		tracker.Referenced(t.Symbol)
	}
	return display
}

// ParameterizedType applies type arguments to a generic type: Map<K, V>.
type ParameterizedType struct {
	Raw  TypeName
	Args []TypeName
}

// Parameterized returns raw<args...>.
func Parameterized(raw TypeName, args ...TypeName) ParameterizedType {
	return ParameterizedType{Raw: raw, Args: args}
}

// MapType returns Map<key, value>.
func MapType(key, value TypeName) ParameterizedType {
	return Parameterized(TypeNamed("Map"), key, value)
}

// RecordType returns Record<key, value>.
func RecordType(key, value TypeName) ParameterizedType {
	return Parameterized(TypeNamed("Record"), key, value)
}

// PromiseType returns Promise<value>.
func PromiseType(value TypeName) ParameterizedType {
	return Parameterized(TypeNamed("Promise"), value)
}

func (t ParameterizedType) Reference(tracker SymbolTracker, scope Scope) string {
	return t.Raw.Reference(tracker, scope) + "<" + joinReferences(t.Args, ", ", tracker, scope, nil) + ">"
}

// ArrayType is elem[].
type ArrayType struct {
	Elem TypeName
}

// ArrayOf returns elem[].
func ArrayOf(elem TypeName) ArrayType {
	return ArrayType{Elem: elem}
}

func (t ArrayType) Reference(tracker SymbolTracker, scope Scope) string {
	elem := t.Elem.Reference(tracker, scope)
	switch t.Elem.(type) {
	case UnionType, IntersectionType, FunctionType:
		elem = "(" + elem + ")"
	}
	return elem + "[]"
}

// TupleType is [A, B, ...].
type TupleType struct {
	Members []TypeName
}

// Tuple returns [members...].
func Tuple(members ...TypeName) TupleType {
	return TupleType{Members: members}
}

func (t TupleType) Reference(tracker SymbolTracker, scope Scope) string {
	return "[" + joinReferences(t.Members, ", ", tracker, scope, nil) + "]"
}

// UnionType is A | B | ...
type UnionType struct {
	Members []TypeName
}

// Union returns members joined with |.
func Union(members ...TypeName) UnionType {
	return UnionType{Members: members}
}

func (t UnionType) Reference(tracker SymbolTracker, scope Scope) string {
	return joinReferences(t.Members, " | ", tracker, scope, func(m TypeName) bool {
		_, fn := m.(FunctionType)
		return fn
	})
}

// IntersectionType is A & B & ...
type IntersectionType struct {
	Members []TypeName
}

// Intersection returns members joined with &.
func Intersection(members ...TypeName) IntersectionType {
	return IntersectionType{Members: members}
}

func (t IntersectionType) Reference(tracker SymbolTracker, scope Scope) string {
	return joinReferences(t.Members, " & ", tracker, scope, func(m TypeName) bool {
		switch m.(type) {
		case UnionType, FunctionType:
			return true
		}
		return false
	})
}

// Param is a parameter of a function type.
type Param struct {
	Name     string
	Type     TypeName
	Optional bool
	Rest     bool
}

// FunctionType is (a: A, b?: B) => R.
type FunctionType struct {
	Params []Param
	Return TypeName
}

// Lambda returns a function type.
func Lambda(ret TypeName, params ...Param) FunctionType {
	return FunctionType{Params: params, Return: ret}
}

func (t FunctionType) Reference(tracker SymbolTracker, scope Scope) string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range t.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		if p.Rest {
			sb.WriteString("...")
		}
		sb.WriteString(p.Name)
		if p.Optional {
			sb.WriteString("?")
		}
		sb.WriteString(": ")
		sb.WriteString(p.Type.Reference(tracker, scope))
	}
	sb.WriteString(") => ")
	ret := t.Return
	if ret == nil {
		ret = Void
	}
	sb.WriteString(ret.Reference(tracker, scope))
	return sb.String()
}

// ObjectMember is a property of an object literal type.
type ObjectMember struct {
	Name     string
	Type     TypeName
	Optional bool
	Readonly bool
}

// ObjectType is { a: A; b?: B }.
type ObjectType struct {
	Members []ObjectMember
}

// ObjectOf returns an object literal type.
func ObjectOf(members ...ObjectMember) ObjectType {
	return ObjectType{Members: members}
}

func (t ObjectType) Reference(tracker SymbolTracker, scope Scope) string {
	if len(t.Members) == 0 {
		return "{}"
	}
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		var sb strings.Builder
		if m.Readonly {
			sb.WriteString("readonly ")
		}
		sb.WriteString(m.Name)
		if m.Optional {
			sb.WriteString("?")
		}
		sb.WriteString(": ")
		sb.WriteString(m.Type.Reference(tracker, scope))
		parts[i] = sb.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// StringLiteralType is a string literal used as a type: 'active'.
type StringLiteralType struct {
	Value string
}

// StringLiteral returns the literal type for value.
func StringLiteral(value string) StringLiteralType {
	return StringLiteralType{Value: value}
}

func (t StringLiteralType) Reference(SymbolTracker, Scope) string {
	return stringLiteralWithQuotes(t.Value, "")
}

// Combiner joins multiple bounds of one type variable.
type Combiner int

const (
	CombineIntersection Combiner = iota
	CombineUnion
)

func (c Combiner) symbol() string {
	if c == CombineUnion {
		return "|"
	}
	return "&"
}

// BoundModifier prefixes a bound type.
type BoundModifier int

const (
	NoBoundModifier BoundModifier = iota
	KeyOf
)

// Bound constrains a type variable: `extends [keyof] Type`.
type Bound struct {
	Type     TypeName
	Combiner Combiner
	Modifier BoundModifier
}

// BoundBy returns an intersection-combined bound on t.
func BoundBy(t TypeName) Bound {
	return Bound{Type: t}
}

// TypeVariable is a type parameter. Its bounds are rendered only where it is
// declared; references render just the name.
type TypeVariable struct {
	Name   string
	Bounds []Bound
}

// TypeVar returns a type variable with optional bounds.
func TypeVar(name string, bounds ...Bound) TypeVariable {
	return TypeVariable{Name: name, Bounds: bounds}
}

func (t TypeVariable) Reference(SymbolTracker, Scope) string {
	return t.Name
}

func (StandardType) isTypeName()      {}
func (ParameterizedType) isTypeName() {}
func (ArrayType) isTypeName()         {}
func (TupleType) isTypeName()         {}
func (UnionType) isTypeName()         {}
func (IntersectionType) isTypeName()  {}
func (FunctionType) isTypeName()      {}
func (ObjectType) isTypeName()        {}
func (StringLiteralType) isTypeName() {}
func (TypeVariable) isTypeName()      {}

// TypeString renders t with no scope and no symbol tracking.
func TypeString(t TypeName) string {
	return t.Reference(nil, nil)
}

func joinReferences(types []TypeName, sep string, tracker SymbolTracker, scope Scope, parens func(TypeName) bool) string {
	parts := make([]string, len(types))
	for i, t := range types {
		ref := t.Reference(tracker, scope)
		if parens != nil && parens(t) {
			ref = "(" + ref + ")"
		}
		parts[i] = ref
	}
	return strings.Join(parts, sep)
}
