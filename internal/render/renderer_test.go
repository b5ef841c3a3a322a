package render

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/kk-code-lab/mdtree/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRendersEveryBlockKind(t *testing.T) {
	src := strings.Join([]string{
		"# Title",
		"",
		"Some *em* and **strong**.",
		"",
		"- a",
		"- b",
		"",
		"> quote",
		"",
		"```go",
		"x := 1",
		"```",
		"",
		"---",
	}, "\n")

	want := strings.Join([]string{
		"# Title",
		"",
		"Some em and strong.",
		"",
		"• a",
		"• b",
		"",
		"│ quote",
		"",
		"    [go]",
		"    x := 1",
		"",
		"───",
	}, "\n")

	assert.Equal(t, want, New(Options{}).Text(markdown.Parse(src)))
}

func TestTextInlines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ordered list", "3) x\n4) y", "3) x\n4) y"},
		{"hard break", "a  \nb", "a\nb"},
		{"soft break", "a\nb", "a b"},
		{"link", "[t](http://x)", "t (http://x)"},
		{"image", "![alt](i.png)", "[alt] (i.png)"},
		{"image without alt", "![](i.png)", "[image] (i.png)"},
		{"code span", "use `go test`", "use go test"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(Options{}).Text(markdown.Parse(tt.in)))
		})
	}
}

func TestTextWraps(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"paragraph", "alpha beta gamma delta", 10, "alpha beta\ngamma\ndelta"},
		{"blockquote", "> alpha beta gamma", 8, "│ alpha\n│ beta\n│ gamma"},
		{"long word", "abcdefghij", 4, "abcd\nefgh\nij"},
		{"rule", "***", 10, strings.Repeat("─", 10)},
		{"list", "- one two three", 8, "• one\n  two\n  three"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(Options{Width: tt.width}).Text(markdown.Parse(tt.in)))
		})
	}
}

func TestLinesCarryStyles(t *testing.T) {
	lines := New(Options{}).Lines(markdown.Parse("**b** `c` *e*"))
	require.Len(t, lines, 1)
	assert.Equal(t, Line{
		{Text: "b", Style: StyleStrong},
		{Text: " ", Style: StylePlain},
		{Text: "c", Style: StyleCode},
		{Text: " ", Style: StylePlain},
		{Text: "e", Style: StyleEmphasis},
	}, lines[0])
}

func TestHighlightedCodeBlock(t *testing.T) {
	doc := markdown.Parse("```go\nfunc main() {}\n```")
	lines := New(Options{Highlight: true}).Lines(doc)
	require.Len(t, lines, 2)
	assert.Equal(t, "    [go]", lines[0].Text())
	assert.Equal(t, "    func main() {}", lines[1].Text())

	var keyword bool
	for _, seg := range lines[1] {
		if seg.Text == "func" && seg.Token.InCategory(chroma.Keyword) {
			keyword = true
		}
	}
	assert.True(t, keyword, "expected func to be tokenized as a keyword: %#v", lines[1])
}

func TestHighlightFallsBackForUnknownLanguage(t *testing.T) {
	doc := markdown.Parse("```nosuchlang\nplain\n```")
	lines := New(Options{Highlight: true}).Lines(doc)
	require.Len(t, lines, 2)
	assert.Equal(t, Line{
		{Text: codeIndent, Style: StyleCodeBlock},
		{Text: "plain", Style: StyleCodeBlock},
	}, lines[1])
}

func TestWrapLineKeepsStyles(t *testing.T) {
	line := Line{
		{Text: "bold words ", Style: StyleStrong},
		{Text: "plain tail", Style: StylePlain},
	}
	got := wrapLine(line, 10)
	require.Len(t, got, 2)
	assert.Equal(t, Line{{Text: "bold words", Style: StyleStrong}}, got[0])
	assert.Equal(t, Line{{Text: "plain tail", Style: StylePlain}}, got[1])

	got = wrapLine(Line{{Text: "ab ", Style: StyleLink}, {Text: "cd", Style: StyleCode}}, 4)
	require.Len(t, got, 2)
	assert.Equal(t, Line{{Text: "ab", Style: StyleLink}}, got[0])
	assert.Equal(t, Line{{Text: "cd", Style: StyleCode}}, got[1])
}
