package manifest

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"

	"github.com/teranos/tspoet/errors"
)

const testHeader = "Code generated by tspoet. DO NOT EDIT."

func TestDecodeFile_AllFormatsRenderAlike(t *testing.T) {
	for _, name := range []string{"user.yaml", "user.toml", "user.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join("testdata", name)
			f, err := DecodeFile(path)
			require.NoError(t, err)
			assert.Equal(t, "models/user", f.Name)
			assert.Equal(t, path, f.Path())
			require.Len(t, f.Declarations, 3)

			spec, err := f.ToFileSpec(testHeader)
			require.NoError(t, err)
			golden.Assert(t, spec.String(), "user.ts.golden")
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.yaml", FormatYAML, true},
		{"dir/a.YML", FormatYAML, true},
		{"a.toml", FormatTOML, true},
		{"a.json", FormatJSON, true},
		{"a.ts", "", false},
		{"Makefile", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := FormatFromPath(tt.path)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.ok, IsManifestPath(tt.path))
		})
	}
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("name: a\nsurprise: true\n"), FormatYAML)
	assert.True(t, errors.IsInvalidManifest(err), "%v", err)

	_, err = Decode(strings.NewReader("name = \"a\"\nsurprise = true\n"), FormatTOML)
	require.True(t, errors.IsInvalidManifest(err), "%v", err)
	assert.Contains(t, err.Error(), "surprise")
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"empty yaml", "", FormatYAML},
		{"broken yaml", "name: [", FormatYAML},
		{"broken json", `{"name": `, FormatJSON},
		{"broken toml", "name = ", FormatTOML},
		{"unknown format", "name: a", Format("xml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			assert.True(t, errors.IsInvalidManifest(err), "%v", err)
		})
	}
}

func TestDecodeFile_Errors(t *testing.T) {
	_, err := DecodeFile("testdata/user.ts.golden")
	assert.True(t, errors.IsInvalidManifest(err))

	_, err = DecodeFile("testdata/missing.yaml")
	assert.Error(t, err)
	assert.False(t, errors.IsInvalidManifest(err))
}

func TestValidate(t *testing.T) {
	decl := func(d Declaration) *File {
		return &File{Name: "m", Declarations: []Declaration{d}}
	}

	tests := []struct {
		name    string
		file    *File
		wantErr string
	}{
		{"valid", decl(Declaration{Kind: KindAlias, Name: "A", Type: "string"}), ""},
		{"missing name", &File{}, "name is required"},
		{"absolute name", &File{Name: "/abs"}, "escapes"},
		{"parent name", &File{Name: "../up"}, "escapes"},
		{"extension", &File{Name: "models/user.ts"}, "extension"},
		{"unknown kind", decl(Declaration{Kind: "struct", Name: "S"}), "unknown kind"},
		{"missing declaration name", decl(Declaration{Kind: KindInterface}), "needs a name"},
		{"alias without type", decl(Declaration{Kind: KindAlias, Name: "A"}), "needs a type"},
		{"misplaced constants", decl(Declaration{Kind: KindInterface, Name: "I", Constants: []Constant{{Name: "A"}}}), "cannot have constants"},
		{"misplaced returns", decl(Declaration{Kind: KindClass, Name: "C", Returns: "void"}), "cannot have returns"},
		{"class extends two", decl(Declaration{Kind: KindClass, Name: "C", Extends: []string{"A", "B"}}), "extend one"},
		{"enum value and string", decl(Declaration{Kind: KindEnum, Name: "E", Constants: []Constant{{Name: "A", Value: "1", String: "a"}}}), "both"},
		{"empty code", decl(Declaration{Kind: KindCode}), "needs a body"},
		{
			"duplicate",
			&File{Name: "m", Declarations: []Declaration{
				{Kind: KindAlias, Name: "A", Type: "string"},
				{Kind: KindEnum, Name: "A"},
			}},
			"redeclares A",
		},
		{
			"code may repeat",
			&File{Name: "m", Declarations: []Declaration{
				{Kind: KindCode, Body: []string{"a()"}},
				{Kind: KindCode, Body: []string{"b()"}},
			}},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.file.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsInvalidManifest(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
