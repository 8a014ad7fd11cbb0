package poet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"

	"github.com/teranos/tspoet/errors"
)

func userFile(t *testing.T) *FileSpec {
	t.Helper()
	uuid := TypeImported("UUID", "./types")

	status, err := Enum("Status").
		AddModifiers(Export).
		AddStringConstant("Active", "active").
		AddStringConstant("Disabled", "disabled").
		Build()
	require.NoError(t, err)

	var props []*PropertySpec
	for _, b := range []*PropertyBuilder{
		Property("id", uuid, Readonly),
		Property("status", TypeImported("Status", "./models/user")),
		Property("createdAt", TypeFor(ImportedDefault("Moment", "moment"))),
		Property("meta", TypeFor(ImportedNamespace("api.Meta", "./api"))).Optional(true),
		Property("tags", ArrayOf(TypeImported("Tag", "./types"))),
	} {
		p, err := b.Build()
		require.NoError(t, err)
		props = append(props, p)
	}

	user, err := Interface("User").AddModifiers(Export).AddDoc("A registered user.\n").AddProperties(props...).Build()
	require.NoError(t, err)

	alias, err := TypeAlias("UserMap", RecordType(uuid, TypeNamed("User"))).AddModifiers(Export).Build()
	require.NoError(t, err)

	file, err := File("models/user").
		AddComment("Code generated by tspoet. DO NOT EDIT.").
		AddDeclarations(status, user, alias).
		Build()
	require.NoError(t, err)
	return file
}

func TestFile_Golden(t *testing.T) {
	golden.Assert(t, userFile(t).String(), "user.ts.golden")
}

func TestFile_RenderIsDeterministic(t *testing.T) {
	file := userFile(t)
	assert.Equal(t, file.String(), file.String())
}

func TestFile_RequiredImportsSkipOwnModule(t *testing.T) {
	imports, collisions, err := userFile(t).RequiredImports()
	require.NoError(t, err)
	assert.Empty(t, collisions)

	var sources []string
	for _, imp := range imports {
		sources = append(sources, imp.Source())
	}
	assert.NotContains(t, sources, "./models/user")
	assert.Len(t, imports, 4)
}

func TestFile_RenderWithImports(t *testing.T) {
	file := userFile(t)
	want, _, err := file.RequiredImports()
	require.NoError(t, err)

	var sb strings.Builder
	imports, err := file.RenderWithImports(&sb)
	require.NoError(t, err)
	assert.Equal(t, want, imports)
	assert.Equal(t, file.String(), sb.String())
}

func TestFile_WriteTo(t *testing.T) {
	file := userFile(t)
	var sb strings.Builder
	n, err := file.WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, int64(sb.Len()), n)
	assert.Equal(t, file.String(), sb.String())
}

func TestFile_Collision(t *testing.T) {
	file, err := File("handlers").
		AddCode("%[export const a: %T = null;\n%]", TypeImported("Request", "express")).
		AddCode("%[export const b: %T = null;\n%]", TypeImported("Request", "./http")).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "import { Request } from 'express';\n"+
		"\n"+
		"export const a: Request = null;\n"+
		"\n"+
		"export const b: Request = null;\n", file.String())

	_, collisions, err := file.RequiredImports()
	require.NoError(t, err)
	require.Len(t, collisions, 1)
	assert.Equal(t, "./http", collisions[0].Dropped.Source())
}

func TestFile_DefaultAndNamedFromOneModule(t *testing.T) {
	file, err := File("app").
		AddCode("%[const el: %T = %T.createElement(%S);\n%]",
			TypeImported("ReactElement", "react"),
			TypeFor(ImportedDefault("React", "react")),
			"div").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "import React, { ReactElement } from 'react';\n"+
		"\n"+
		"const el: ReactElement = React.createElement('div');\n", file.String())
}

func TestFile_LongImportWraps(t *testing.T) {
	b := File("wide")
	var names []string
	for _, n := range []string{"AlphaComponent", "BravoComponent", "CharlieComponent", "DeltaComponent", "EchoComponent", "FoxtrotComponent"} {
		names = append(names, n)
		b.AddCode("%T\n", TypeImported(n, "./components"))
	}
	file, err := b.Build()
	require.NoError(t, err)

	out := file.String()
	assert.True(t, strings.HasPrefix(out, "import { AlphaComponent, BravoComponent, CharlieComponent, DeltaComponent, EchoComponent,\n"+
		"    FoxtrotComponent } from './components';\n"), out)
	for _, n := range names {
		assert.Contains(t, out, n)
	}
}

func TestFile_Options(t *testing.T) {
	fn, err := Function("f").AddStatement("return 1").Build()
	require.NoError(t, err)
	file, err := File("f").AddDeclarations(fn).Build()
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, file.Render(&sb, WithIndent("    ")))
	assert.Equal(t, "function f() {\n    return 1;\n}\n", sb.String())
}

func TestFile_Invalid(t *testing.T) {
	_, err := File("").Build()
	assert.True(t, errors.IsMalformedCode(err))

	_, err = File("x").AddCode("%T").Build()
	assert.True(t, errors.IsMalformedCode(err))
}
