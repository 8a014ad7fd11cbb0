package poet

import (
	"strings"
)

// SymbolSpec identifies something a type reference can point at. The set of
// implementations is closed: NamedSymbol and ImportedSymbol.
type SymbolSpec interface {
	// Name is the (possibly dotted) name used at reference sites.
	Name() string

	// shortName is the first name segment, the identifier that an import
	// statement binds.
	shortName() string

	isSymbol()
}

// NamedSymbol is a bare identifier that needs no import: a primitive, a
// global, or a declaration in the file being generated.
type NamedSymbol struct {
	name string
}

// ImportKind selects the import statement form that binds an ImportedSymbol.
type ImportKind int

const (
	// ImportNamed binds with `import { Name } from 'source';`
	ImportNamed ImportKind = iota
	// ImportDefault binds with `import Name from 'source';`
	ImportDefault
	// ImportNamespace binds with `import * as Name from 'source';`
	ImportNamespace
)

// ImportedSymbol is an identifier exported by another module.
// Identity is (name, source).
type ImportedSymbol struct {
	name   string
	source string
	kind   ImportKind
}

// Named returns a symbol for a locally bound identifier.
func Named(name string) NamedSymbol {
	return NamedSymbol{name: name}
}

// Imported returns a symbol bound by a named import from source. A dotted
// name such as "ns.Inner" imports only the first segment.
func Imported(name, source string) ImportedSymbol {
	return ImportedSymbol{name: name, source: source, kind: ImportNamed}
}

// ImportedDefault returns a symbol bound by a default import from source.
func ImportedDefault(name, source string) ImportedSymbol {
	return ImportedSymbol{name: name, source: source, kind: ImportDefault}
}

// ImportedNamespace returns a symbol bound by a namespace import of source.
func ImportedNamespace(name, source string) ImportedSymbol {
	return ImportedSymbol{name: name, source: source, kind: ImportNamespace}
}

// SymbolFrom parses the compact symbol form used by manifests:
//
//	"Name"            named, no import
//	"Name@source"     named import
//	"Name=source"     default import
//	"*Name@source"    namespace import
//
// Scoped package sources keep their leading '@': "Component@@angular/core".
func SymbolFrom(spec string) SymbolSpec {
	if name, source, ok := strings.Cut(spec, "="); ok {
		return ImportedDefault(name, source)
	}
	if name, source, ok := strings.Cut(spec, "@"); ok && name != "" {
		if strings.HasPrefix(name, "*") {
			return ImportedNamespace(name[1:], source)
		}
		return Imported(name, source)
	}
	return Named(spec)
}

func (s NamedSymbol) Name() string      { return s.name }
func (s NamedSymbol) shortName() string { return firstSegment(s.name) }
func (NamedSymbol) isSymbol()           {}

func (s ImportedSymbol) Name() string      { return s.name }
func (s ImportedSymbol) shortName() string { return firstSegment(s.name) }
func (ImportedSymbol) isSymbol()           {}

// Source is the module the symbol is imported from.
func (s ImportedSymbol) Source() string { return s.source }

// Kind is the import statement form binding the symbol.
func (s ImportedSymbol) Kind() ImportKind { return s.kind }

// ImportedName is the identifier the import statement binds.
func (s ImportedSymbol) ImportedName() string { return s.shortName() }

func (s ImportedSymbol) String() string { return s.name + "@" + s.source }

func (s NamedSymbol) String() string { return s.name }

func firstSegment(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// SymbolTracker receives every symbol a type reference resolves to.
type SymbolTracker interface {
	Referenced(symbol SymbolSpec)
}

// Collision records an imported symbol that lost its short name to an
// earlier reference. The dropped symbol still renders with its short name.
type Collision struct {
	Name    string
	Kept    SymbolSpec
	Dropped ImportedSymbol
}

// ReferencedSymbols accumulates symbols in first-use order. It only grows.
type ReferencedSymbols struct {
	order []SymbolSpec
	seen  map[SymbolSpec]struct{}
}

// NewReferencedSymbols returns a set seeded with initial symbols.
func NewReferencedSymbols(initial ...SymbolSpec) *ReferencedSymbols {
	rs := &ReferencedSymbols{seen: make(map[SymbolSpec]struct{})}
	for _, s := range initial {
		rs.Referenced(s)
	}
	return rs
}

// Referenced adds a symbol unless it is already present.
func (rs *ReferencedSymbols) Referenced(symbol SymbolSpec) {
	if symbol == nil {
		return
	}
	if rs.seen == nil {
		rs.seen = make(map[SymbolSpec]struct{})
	}
	if _, ok := rs.seen[symbol]; ok {
		return
	}
	rs.seen[symbol] = struct{}{}
	rs.order = append(rs.order, symbol)
}

// Len reports the number of distinct symbols referenced so far.
func (rs *ReferencedSymbols) Len() int { return len(rs.order) }

// Symbols returns the referenced symbols in first-use order.
func (rs *ReferencedSymbols) Symbols() []SymbolSpec {
	out := make([]SymbolSpec, len(rs.order))
	copy(out, rs.order)
	return out
}

// RequiredImports reduces the set to the imported symbols a file must
// import. Each short name is claimed by the first symbol referenced with
// it; later imported symbols sharing the name are dropped and reported by
// Collisions. This may leave a file that does not compile.
func (rs *ReferencedSymbols) RequiredImports() []ImportedSymbol {
	imports, _ := rs.reduce()
	return imports
}

// Collisions returns the imported symbols RequiredImports dropped.
func (rs *ReferencedSymbols) Collisions() []Collision {
	_, collisions := rs.reduce()
	return collisions
}

func (rs *ReferencedSymbols) reduce() ([]ImportedSymbol, []Collision) {
	var imports []ImportedSymbol
	var collisions []Collision
	claimed := make(map[string]SymbolSpec)

	for _, symbol := range rs.order {
		short := symbol.shortName()
		owner, taken := claimed[short]
		imported, isImported := symbol.(ImportedSymbol)

		if taken {
			if !isImported || sameBinding(owner, imported) {
				continue
			}
			collisions = append(collisions, Collision{Name: short, Kept: owner, Dropped: imported})
			continue
		}

		claimed[short] = symbol
		if isImported {
			imports = append(imports, imported)
		}
	}

	return imports, collisions
}

// sameBinding reports whether an imported symbol is bound by the import
// statement that already claimed its short name ("ns.A" and "ns.B" from the
// same module share one binding).
func sameBinding(owner SymbolSpec, s ImportedSymbol) bool {
	o, ok := owner.(ImportedSymbol)
	return ok && o.source == s.source && o.kind == s.kind
}
