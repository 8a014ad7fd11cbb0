package poet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferencedSymbols_FirstUseWins(t *testing.T) {
	rs := NewReferencedSymbols()
	rs.Referenced(Imported("A", "./one"))
	rs.Referenced(Imported("B", "./b"))
	rs.Referenced(Imported("A", "./two"))

	assert.Equal(t, []ImportedSymbol{Imported("A", "./one"), Imported("B", "./b")}, rs.RequiredImports())

	collisions := rs.Collisions()
	require.Len(t, collisions, 1)
	assert.Equal(t, "A", collisions[0].Name)
	assert.Equal(t, Imported("A", "./one"), collisions[0].Kept)
	assert.Equal(t, Imported("A", "./two"), collisions[0].Dropped)
}

func TestReferencedSymbols_ThroughWriter(t *testing.T) {
	cb := MustCodeBlockOf("%T %T %T",
		TypeImported("A", "./one"),
		TypeImported("B", "./b"),
		TypeImported("A", "./two"),
	)
	out, w := render(t, func(w *CodeWriter) error { return w.EmitCode(cb, nil) })

	// The losing reference still renders with its short name.
	assert.Equal(t, "A B A", out)
	assert.Equal(t, []ImportedSymbol{Imported("A", "./one"), Imported("B", "./b")}, w.RequiredImports())
}

func TestReferencedSymbols_Dedup(t *testing.T) {
	rs := NewReferencedSymbols(Imported("A", "./a"), Named("string"))
	rs.Referenced(Imported("A", "./a"))
	rs.Referenced(Named("string"))
	rs.Referenced(nil)

	assert.Equal(t, 2, rs.Len())
	assert.Equal(t, []SymbolSpec{Imported("A", "./a"), Named("string")}, rs.Symbols())
	assert.Empty(t, rs.Collisions())
}

func TestReferencedSymbols_NamedOnlyClaims(t *testing.T) {
	rs := NewReferencedSymbols()
	rs.Referenced(Named("Promise"))
	rs.Referenced(Imported("Promise", "bluebird"))

	assert.Empty(t, rs.RequiredImports())
	require.Len(t, rs.Collisions(), 1)
	assert.Equal(t, Named("Promise"), rs.Collisions()[0].Kept)
}

func TestReferencedSymbols_SharedNamespaceBinding(t *testing.T) {
	rs := NewReferencedSymbols()
	rs.Referenced(ImportedNamespace("api.User", "./api"))
	rs.Referenced(ImportedNamespace("api.Group", "./api"))

	assert.Equal(t, []ImportedSymbol{ImportedNamespace("api.User", "./api")}, rs.RequiredImports())
	assert.Empty(t, rs.Collisions())
}

func TestReferencedSymbols_ZeroValue(t *testing.T) {
	var rs ReferencedSymbols
	rs.Referenced(Imported("X", "./x"))
	assert.Len(t, rs.RequiredImports(), 1)
}

func TestSymbolFrom(t *testing.T) {
	tests := []struct {
		in   string
		want SymbolSpec
	}{
		{"string", Named("string")},
		{"User@./user", Imported("User", "./user")},
		{"React=react", ImportedDefault("React", "react")},
		{"*fs@fs", ImportedNamespace("fs", "fs")},
		{"Component@@angular/core", Imported("Component", "@angular/core")},
		{"api.User@./api", Imported("api.User", "./api")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SymbolFrom(tt.in))
		})
	}
}

func TestImportedSymbol_Accessors(t *testing.T) {
	s := ImportedNamespace("api.User", "./api")
	assert.Equal(t, "api.User", s.Name())
	assert.Equal(t, "api", s.ImportedName())
	assert.Equal(t, "./api", s.Source())
	assert.Equal(t, ImportNamespace, s.Kind())
	assert.Equal(t, "api.User@./api", s.String())
}
