package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tspoet/am"
	"github.com/teranos/tspoet/errors"
)

var manifestDir = filepath.Join("..", "..", "..", "generate", "testdata", "manifests")

// run executes args against a fresh root with an isolated config file
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), am.ConfigFileName)
	require.NoError(t, am.InitFile(cfgPath, false))

	root := &cobra.Command{Use: "tspoet", SilenceUsage: true, SilenceErrors: true}
	AddGlobalFlags(root)
	root.AddCommand(RenderCmd, CheckCmd, AmCmd, VersionCmd)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestRender_Stdout(t *testing.T) {
	out, err := run(t, "render", filepath.Join(manifestDir, "point.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "// Module: geo/point\n// Code generated by tspoet. DO NOT EDIT.\n\nexport interface Point {\n  x: number;\n  y: number;\n}\n", out)
}

func TestRenderThenCheck(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "check", "-o", dir, manifestDir)
	require.Error(t, err)
	assert.True(t, errors.IsOutOfDate(err))

	_, err = run(t, "render", "-o", dir, manifestDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "geo", "point.ts"))
	assert.FileExists(t, filepath.Join(dir, "color.ts"))

	_, err = run(t, "check", "-o", dir, manifestDir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "color.ts"), []byte("stale\n"), 0644))
	_, err = run(t, "check", "-o", dir, manifestDir)
	require.Error(t, err)
	assert.True(t, errors.IsOutOfDate(err))
}

func TestRender_MissingInput(t *testing.T) {
	_, err := run(t, "render", filepath.Join(manifestDir, "absent.yaml"))
	require.Error(t, err)
}

func TestAmShow_TOML(t *testing.T) {
	out, err := run(t, "am", "show", "--format", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "# tspoet configuration\n")
	assert.Contains(t, out, "column_limit = 100")
}

func TestAmShow_UnknownFormat(t *testing.T) {
	_, err := run(t, "am", "show", "--format", "xml")
	require.Error(t, err)
	configFormat = "table"
}

func TestAmInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tspoet.toml")
	_, err := run(t, "am", "init", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = run(t, "am", "init", path)
	require.Error(t, err)
}

func TestLoadConfig_Flags(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), am.ConfigFileName)
	require.NoError(t, am.InitFile(cfgPath, false))

	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	AddGlobalFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "-vv", "-o", "gen"}))

	cfg, err := LoadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Log.Verbosity)
	assert.Equal(t, "gen", cfg.Output.Dir)
}

func TestVersion_JSON(t *testing.T) {
	out, err := run(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"go_version"`)
}
