package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdtree/internal/config"
	"github.com/kk-code-lab/mdtree/internal/fs"
	"github.com/kk-code-lab/mdtree/internal/render"
	"github.com/kk-code-lab/mdtree/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestTreeFromStdin(t *testing.T) {
	out, _, err := run(t, "# Hi", "tree")
	require.NoError(t, err)
	assert.Equal(t, "document\n  heading level=1\n    text \"Hi\"\n", out)

	out, _, err = run(t, "> q", "tree", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "  blockquote\n")
}

func TestRenderFileWithWidth(t *testing.T) {
	path := writeFile(t, "doc.md", []byte("Some *text* here"))
	out, _, err := run(t, "", "render", "--width", "8", path)
	require.NoError(t, err)
	assert.Equal(t, "Some\ntext\nhere\n", out)
}

func TestExportFormats(t *testing.T) {
	out, _, err := run(t, "- a", "export", "--format", "json")
	require.NoError(t, err)
	var node render.Node
	require.NoError(t, json.Unmarshal([]byte(out), &node))
	assert.Equal(t, "document", node.Type)
	require.Len(t, node.Children, 1)
	assert.Equal(t, "list", node.Children[0].Type)

	out, _, err = run(t, "- a", "export")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "type: document\n"), out)

	_, _, err = run(t, "- a", "export", "--format", "toml")
	assert.ErrorIs(t, err, config.ErrUnknownFormat)
}

func TestExportFormatFromEnvironment(t *testing.T) {
	t.Setenv("MDTREE_EXPORT_FORMAT", "json")
	out, _, err := run(t, "text", "export")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"), out)
}

func TestLoadErrors(t *testing.T) {
	_, _, err := run(t, "", "tree", filepath.Join(t.TempDir(), "missing.md"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bin := writeFile(t, "blob.dat", []byte{0x00, 0x01, 0x02, 0x03})
	_, _, err = run(t, "", "tree", bin)
	assert.ErrorIs(t, err, fs.ErrBinaryInput)

	_, _, err = run(t, "", "tree", "a.md", "b.md")
	assert.Error(t, err)
}

func TestDebugLoggingGoesToStderr(t *testing.T) {
	out, logs, err := run(t, "# Hi", "tree", "--log-level", "debug")
	require.NoError(t, err)
	assert.NotContains(t, out, "source loaded")
	assert.Contains(t, logs, "source loaded")
	assert.Contains(t, logs, "parsed")
}

func TestNormalizeFlag(t *testing.T) {
	out, _, err := run(t, "cafe\u0301", "tree", "--normalize")
	require.NoError(t, err)
	assert.Contains(t, out, "text \"caf\u00e9\"")
}

func TestViewQuitsOnKey(t *testing.T) {
	var scr tcell.SimulationScreen
	prev := newScreen
	newScreen = func() (tcell.Screen, error) {
		scr = tcell.NewSimulationScreen("")
		if err := scr.Init(); err != nil {
			return nil, err
		}
		scr.SetSize(40, 10)
		scr.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
		return scr, nil
	}
	t.Cleanup(func() { newScreen = prev })

	_, _, err := run(t, "# Title\n\nbody", "view")
	require.NoError(t, err)
	require.NotNil(t, scr)
}

func TestLayoutCapsWidth(t *testing.T) {
	c := &cli{cfg: config.DefaultConfig()}
	c.cfg.Render.Width = 6
	lines := c.layout(markdown.Parse("aaa bbb ccc"))(40)
	require.Len(t, lines, 3)

	c.cfg.Render.Width = 0
	lines = c.layout(markdown.Parse("aaa bbb ccc"))(40)
	require.Len(t, lines, 1)
}
