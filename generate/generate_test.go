package generate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tspoet/am"
	"github.com/teranos/tspoet/errors"
)

const (
	pointTS = "// Code generated by tspoet. DO NOT EDIT.\n\nexport interface Point {\n  x: number;\n  y: number;\n}\n"
	colorTS = "export type Color = 'red' | 'green';\n"
)

var (
	pointManifest = filepath.Join("testdata", "manifests", "point.yaml")
	colorManifest = filepath.Join("testdata", "manifests", "nested", "color.toml")
)

func testConfig(t *testing.T) *am.Config {
	t.Helper()
	cfg := am.DefaultConfig()
	cfg.Output.Dir = t.TempDir()
	return cfg
}

func TestExpandInputs(t *testing.T) {
	inputs, err := ExpandInputs([]string{filepath.Join("testdata", "manifests"), pointManifest})
	require.NoError(t, err)
	assert.Equal(t, []string{colorManifest, pointManifest, pointManifest}, inputs)

	_, err = ExpandInputs([]string{filepath.Join("testdata", "missing")})
	assert.Error(t, err)

	_, err = ExpandInputs([]string{t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no manifests found")
}

func TestRenderManifests(t *testing.T) {
	cfg := testConfig(t)
	outputs, err := RenderManifests(context.Background(), cfg, []string{pointManifest, colorManifest})
	require.NoError(t, err)
	require.Len(t, outputs, 2)

	assert.Equal(t, "geo/point", outputs[0].Name)
	assert.Equal(t, pointManifest, outputs[0].Source)
	assert.Equal(t, pointTS, string(outputs[0].Content))
	assert.Equal(t, 0, outputs[0].Imports)
	assert.Equal(t, 1, outputs[0].Members)
	assert.Equal(t, "color", outputs[1].Name)
	assert.Equal(t, colorTS, string(outputs[1].Content))
}

func TestRenderManifests_WriterOptions(t *testing.T) {
	cfg := testConfig(t)
	cfg.Writer.Indent = "\t"
	cfg.Output.Concurrency = 1

	outputs, err := RenderManifests(context.Background(), cfg, []string{pointManifest})
	require.NoError(t, err)
	assert.Contains(t, string(outputs[0].Content), "\tx: number;\n")
}

func TestRenderManifests_Errors(t *testing.T) {
	cfg := testConfig(t)

	t.Run("duplicate module", func(t *testing.T) {
		_, err := RenderManifests(context.Background(), cfg, []string{pointManifest, pointManifest})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "geo/point")
	})

	t.Run("invalid manifest", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("name: bad\ndeclarations:\n  - kind: alias\n    name: A\n"), 0644))
		_, err := RenderManifests(context.Background(), cfg, []string{pointManifest, bad})
		require.Error(t, err)
		assert.True(t, errors.IsInvalidManifest(err))
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := RenderManifests(ctx, cfg, []string{pointManifest})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWrite_Directory(t *testing.T) {
	cfg := testConfig(t)
	outputs, err := RenderManifests(context.Background(), cfg, []string{pointManifest, colorManifest})
	require.NoError(t, err)

	written, err := Write(cfg, outputs, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(cfg.Output.Dir, "geo", "point.ts"),
		filepath.Join(cfg.Output.Dir, "color.ts"),
	}, written)

	data, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "geo", "point.ts"))
	require.NoError(t, err)
	assert.Equal(t, pointTS, string(data))

	// Unchanged files are left alone
	written, err = Write(cfg, outputs, nil)
	require.NoError(t, err)
	assert.Empty(t, written)
}

func TestWrite_Stdout(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Dir = ""
	outputs, err := RenderManifests(context.Background(), cfg, []string{pointManifest, colorManifest})
	require.NoError(t, err)

	var buf bytes.Buffer
	written, err := Write(cfg, outputs, &buf)
	require.NoError(t, err)
	assert.Empty(t, written)
	assert.Equal(t, "// Module: geo/point\n"+pointTS+"\n// Module: color\n"+colorTS, buf.String())
}

func TestCheck(t *testing.T) {
	cfg := testConfig(t)
	outputs, err := RenderManifests(context.Background(), cfg, []string{pointManifest, colorManifest})
	require.NoError(t, err)

	// Nothing written yet: every file is missing
	result, err := Check(cfg, outputs)
	require.Error(t, err)
	assert.True(t, errors.IsOutOfDate(err))
	assert.Equal(t, []string{filepath.Join("geo", "point.ts"), "color.ts"}, result.Differences)

	_, err = Write(cfg, outputs, nil)
	require.NoError(t, err)

	result, err = Check(cfg, outputs)
	require.NoError(t, err)
	assert.True(t, result.UpToDate)
	assert.Empty(t, result.Differences)

	// A hand edit makes the file stale
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Output.Dir, "color.ts"), []byte("edited\n"), 0644))
	result, err = Check(cfg, outputs)
	require.Error(t, err)
	assert.True(t, errors.IsOutOfDate(err))
	assert.False(t, result.UpToDate)
	assert.Equal(t, []string{"color.ts"}, result.Differences)
}

func TestCheck_NeedsDirectory(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Dir = ""
	_, err := Check(cfg, nil)
	require.Error(t, err)
	assert.False(t, errors.IsOutOfDate(err))
}

func TestRenderPackages(t *testing.T) {
	cfg := testConfig(t)
	outputs, err := RenderPackages(context.Background(), cfg, ".", []string{"../gotypes/testdata/common"})
	require.NoError(t, err)
	require.Len(t, outputs, 2)

	assert.Equal(t, "common", outputs[0].Name)
	assert.Equal(t, "github.com/teranos/tspoet/gotypes/testdata/common", outputs[0].Source)
	assert.Contains(t, string(outputs[0].Content), "export type ID = string;\n")
	assert.Equal(t, 2, outputs[0].Members)

	assert.Equal(t, "index", outputs[1].Name)
	assert.Contains(t, string(outputs[1].Content), "} from './common';\n")
}

func TestConcurrency(t *testing.T) {
	cfg := am.DefaultConfig()

	cfg.Output.Concurrency = 4
	assert.Equal(t, 4, concurrency(cfg, 10))
	assert.Equal(t, 2, concurrency(cfg, 2))
	assert.Equal(t, 1, concurrency(cfg, 0))

	cfg.Output.Concurrency = 0
	assert.GreaterOrEqual(t, concurrency(cfg, 100), 1)
}

func TestRenderPackages_Imports(t *testing.T) {
	cfg := testConfig(t)
	outputs, err := RenderPackages(context.Background(), cfg, ".",
		[]string{"../gotypes/testdata/common", "../gotypes/testdata/models"})
	require.NoError(t, err)
	require.Len(t, outputs, 3)

	assert.Equal(t, "models", outputs[1].Name)
	assert.Equal(t, 1, outputs[1].Imports)
	assert.Equal(t, 4, outputs[1].Members)
}
