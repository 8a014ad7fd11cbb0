package poet

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tspoet/errors"
)

func TestCodeBlockOf_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []interface{}
	}{
		{"too few arguments", "%L and %L", []interface{}{1}},
		{"too many arguments", "%L", []interface{}{1, 2}},
		{"unknown directive", "%Q", nil},
		{"dangling percent", "100%", nil},
		{"type argument is not a type", "%T", []interface{}{"string"}},
		{"name argument is not a name", "%N", []interface{}{42}},
		{"string argument is not a string", "%S", []interface{}{3.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CodeBlockOf(tt.format, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsMalformedCode(err), "got %v", err)
		})
	}
}

func TestCodeBlockBuilder_StickyError(t *testing.T) {
	b := NewCodeBlock().Add("%L").Add("fine\n")
	assert.True(t, b.IsEmpty())

	_, err := b.Build()
	assert.True(t, errors.IsMalformedCode(err))
}

func TestCodeBlock_Parts(t *testing.T) {
	cb := MustCodeBlockOf("a %L b%%%>", "x")
	assert.Equal(t, []string{"a ", "%L", " b", "%%", "%>"}, cb.Parts())
}

func TestCodeBlock_ToBuilderLeavesOriginal(t *testing.T) {
	cb := MustCodeBlockOf("a;\n")
	extended, err := cb.ToBuilder().Add("b;\n").Build()
	require.NoError(t, err)

	assert.Equal(t, "a;\n", cb.String())
	assert.Equal(t, "a;\nb;\n", extended.String())
}

func TestCodeBlock_Arguments(t *testing.T) {
	name := "Widget"
	assert.Equal(t, "'Widget'", MustCodeBlockOf("%S", &name).String())
	assert.Equal(t, "null", MustCodeBlockOf("%S", (*string)(nil)).String())
	assert.Equal(t, "null", MustCodeBlockOf("%L", nil).String())
	assert.Equal(t, "true", MustCodeBlockOf("%L", true).String())
	assert.Equal(t, "Foo", MustCodeBlockOf("%T", Imported("Foo", "./foo")).String())
	assert.Equal(t, "Foo[]", MustCodeBlockOf("%L", ArrayOf(TypeImported("Foo", "./foo"))).String())
	assert.Equal(t, "Widget", MustCodeBlockOf("%N", Named("Widget")).String())
}

func TestCodeBlock_NilSpecArguments(t *testing.T) {
	tests := []struct {
		format string
		arg    interface{}
	}{
		{"%L", (*DecoratorSpec)(nil)},
		{"%L", (*ClassSpec)(nil)},
		{"%L", (*TypeAliasSpec)(nil)},
		{"%N", (*PropertySpec)(nil)},
		{"%N", (*FunctionSpec)(nil)},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %T", tt.format, tt.arg), func(t *testing.T) {
			_, err := CodeBlockOf(tt.format, tt.arg)
			require.Error(t, err)
			assert.True(t, errors.IsMalformedCode(err))
		})
	}
}

func TestCodeBlock_NameOfSpecs(t *testing.T) {
	prop, err := Property("count", Number).Build()
	require.NoError(t, err)
	fn, err := Function("load").Build()
	require.NoError(t, err)
	alias, err := TypeAlias("Id", String).Build()
	require.NoError(t, err)

	assert.Equal(t, "this.count = load(); // Id", MustCodeBlockOf("this.%N = %N(); // %N", prop, fn, alias).String())
}

func TestJoinCode(t *testing.T) {
	blocks := []CodeBlock{MustCodeBlockOf("%S", "a"), MustCodeBlockOf("%L", 1), MustCodeBlockOf("%T", Boolean)}
	joined, err := JoinCode(blocks, ", ")
	require.NoError(t, err)
	assert.Equal(t, "'a', 1, boolean", joined.String())
}

func TestMustCodeBlockOf_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCodeBlockOf("%L") })
}
