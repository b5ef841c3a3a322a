package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkVisitsInSourceOrder(t *testing.T) {
	doc := Parse("# T *e*\n\n> - [l](u)\n\n![a](i)")

	var seen []string
	Walk(doc, VisitorFuncs{
		Block: func(b Block, depth int) bool {
			seen = append(seen, b.Kind().String())
			return true
		},
		Inline: func(n Inline, depth int) bool {
			seen = append(seen, n.Kind().String())
			return true
		},
	})

	assert.Equal(t, []string{
		"heading", "text", "emphasis", "text",
		"blockquote", "list", "paragraph", "link", "text",
		"paragraph", "image", "text",
	}, seen)
}

func TestWalkPrunes(t *testing.T) {
	doc := Parse("> inner\n\nouter")

	var paragraphs int
	Walk(doc, VisitorFuncs{
		Block: func(b Block, depth int) bool {
			if b.Kind() == BlockParagraph {
				paragraphs++
			}
			return b.Kind() != BlockBlockquote
		},
	})
	assert.Equal(t, 1, paragraphs)
}

func TestWalkDepth(t *testing.T) {
	doc := Parse("> > **x**")

	depths := map[string]int{}
	Walk(doc, VisitorFuncs{
		Inline: func(n Inline, depth int) bool {
			depths[n.Kind().String()] = depth
			return true
		},
	})
	assert.Equal(t, 3, depths["strong"])
	assert.Equal(t, 4, depths["text"])
}

func TestHeadings(t *testing.T) {
	doc := Parse("# One\n\n> ## Two\n\ntext\n\n### Three")
	headings := doc.Headings()
	require.Len(t, headings, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{headings[0].Level, headings[1].Level, headings[2].Level})
	assert.Equal(t, "Two", PlainText(headings[1].Content))
}

func TestPlainText(t *testing.T) {
	nodes := ParseInline("a *b* `c` [d](u) ![e](i)\nf  \ng")
	assert.Equal(t, "a b c d e f\ng", PlainText(nodes))
	assert.Equal(t, "", PlainText(nil))
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "html_block", HTMLBlock{}.Kind().String())
	assert.Equal(t, "html_inline", HTMLInline{}.Kind().String())
	assert.Equal(t, "unknown", BlockKind(99).String())
	assert.Equal(t, "unknown", InlineKind(-1).String())
}

func TestListOrdered(t *testing.T) {
	assert.True(t, List{Type: Ordered{Start: 1, Delimiter: '.'}}.Ordered())
	assert.False(t, List{Type: Unordered{Marker: '-'}}.Ordered())
}
