package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/kk-code-lab/mdtree/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteOutline(t *testing.T) {
	doc := markdown.Parse("# Hi\n\n- [a](u \"t\")\n\n```sh\nls\n```\n\n1. `x`\ny")

	var buf bytes.Buffer
	require.NoError(t, WriteOutline(&buf, doc))

	want := strings.Join([]string{
		`document`,
		`  heading level=1`,
		`    text "Hi"`,
		`  list bullet marker='-'`,
		`    item tight`,
		`      paragraph`,
		`        link url="u" title="t"`,
		`          text "a"`,
		`  code_block info="sh" "ls"`,
		`  list ordered start=1 delimiter='.'`,
		`    item tight`,
		`      paragraph`,
		`        code "x"`,
		`  paragraph`,
		`    text "y"`,
		``,
	}, "\n")
	assert.Equal(t, want, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteOutlineReportsWriteError(t *testing.T) {
	err := WriteOutline(failingWriter{}, markdown.Parse("text"))
	assert.EqualError(t, err, "closed")
}

func TestExportJSON(t *testing.T) {
	doc := markdown.Parse("2. *x*")

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, doc, FormatJSON))

	var got Node
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, ToNode(doc), got)

	require.Len(t, got.Children, 1)
	list := got.Children[0]
	assert.Equal(t, "list", list.Type)
	require.NotNil(t, list.Start)
	assert.Equal(t, 2, *list.Start)
	assert.Equal(t, ".", list.Delimiter)
	require.Len(t, list.Children, 1)
	assert.Equal(t, "list_item", list.Children[0].Type)
	require.NotNil(t, list.Children[0].Tight)
	assert.True(t, *list.Children[0].Tight)
}

func TestExportYAML(t *testing.T) {
	doc := markdown.Parse("> ## Q\n\n![alt](img.png \"T\")")

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, doc, FormatYAML))
	assert.True(t, strings.HasPrefix(buf.String(), "type: document\n"), buf.String())

	var got Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, ToNode(doc), got)

	image := got.Children[1].Children[0]
	assert.Equal(t, "image", image.Type)
	assert.Equal(t, "img.png", image.URL)
	assert.Equal(t, "T", image.Title)
}

func TestExportUnknownFormat(t *testing.T) {
	err := Export(&bytes.Buffer{}, markdown.Parse("x"), Format("toml"))
	assert.Error(t, err)
}
