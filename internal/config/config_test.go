package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "mdtree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(NewViper(t.TempDir()), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadSearchedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "render:\n  width: 80\n  code_style: dracula\nexport:\n  format: JSON\n")

	cfg, err := Load(NewViper(dir), "")
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Render.Width)
	assert.Equal(t, "dracula", cfg.Render.CodeStyle)
	assert.Equal(t, "json", cfg.Export.Format)
	assert.True(t, cfg.Render.Highlight, "unset keys keep defaults")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "render:\n  width: 80\n")
	t.Setenv("MDTREE_RENDER_WIDTH", "72")
	t.Setenv("MDTREE_INPUT_NORMALIZE", "true")
	t.Setenv("MDTREE_LOG_LEVEL", "DEBUG")

	cfg, err := Load(NewViper(dir), "")
	require.NoError(t, err)
	assert.Equal(t, 72, cfg.Render.Width)
	assert.True(t, cfg.Input.Normalize)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("MDTREE_RENDER_WIDTH", "72")
	v := NewViper(t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("width", 0, "")
	require.NoError(t, v.BindPFlag("render.width", flags.Lookup("width")))
	require.NoError(t, flags.Parse([]string{"--width", "100"}))

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Render.Width)
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "log:\n  level: info\n")
	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)

	_, err = Load(NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"format", "export:\n  format: toml\n", ErrUnknownFormat},
		{"level", "log:\n  level: loud\n", ErrUnknownLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)
			_, err := Load(NewViper(dir), "")
			assert.ErrorIs(t, err, tt.want)
		})
	}

	dir := t.TempDir()
	writeConfig(t, dir, "render:\n  width: -1\n")
	_, err := Load(NewViper(dir), "")
	assert.Error(t, err)
}

func TestDefaultSearchPathsStartWithWorkingDir(t *testing.T) {
	paths := DefaultSearchPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, ".", paths[0])
}
