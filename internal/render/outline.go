package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kk-code-lab/mdtree/markdown"
)

// WriteOutline writes an indented dump of the tree, one node per line.
func WriteOutline(w io.Writer, doc markdown.Document) error {
	o := outline{w: bufio.NewWriter(w)}
	o.line(0, "document")
	o.blocks(doc.Blocks, 1)
	if o.err != nil {
		return o.err
	}
	return o.w.Flush()
}

type outline struct {
	w   *bufio.Writer
	err error
}

func (o *outline) line(depth int, format string, args ...any) {
	if o.err != nil {
		return
	}
	if _, err := o.w.WriteString(strings.Repeat("  ", depth)); err != nil {
		o.err = err
		return
	}
	if _, err := fmt.Fprintf(o.w, format+"\n", args...); err != nil {
		o.err = err
	}
}

func (o *outline) blocks(blocks []markdown.Block, depth int) {
	for _, block := range blocks {
		o.block(block, depth)
	}
}

func (o *outline) block(block markdown.Block, depth int) {
	kind := block.Kind().String()
	switch b := block.(type) {
	case markdown.Heading:
		o.line(depth, "%s level=%d", kind, b.Level)
		o.inlines(b.Content, depth+1)
	case markdown.Paragraph:
		o.line(depth, "%s", kind)
		o.inlines(b.Content, depth+1)
	case markdown.CodeBlock:
		if b.Info != "" {
			o.line(depth, "%s info=%s %s", kind, strconv.Quote(b.Info), strconv.Quote(b.Content))
		} else {
			o.line(depth, "%s %s", kind, strconv.Quote(b.Content))
		}
	case markdown.List:
		o.line(depth, "%s %s", kind, describeListType(b.Type))
		for _, item := range b.Items {
			if item.Tight {
				o.line(depth+1, "item tight")
			} else {
				o.line(depth+1, "item")
			}
			o.blocks(item.Content, depth+2)
		}
	case markdown.Blockquote:
		o.line(depth, "%s", kind)
		o.blocks(b.Content, depth+1)
	case markdown.HTMLBlock:
		o.line(depth, "%s %s", kind, strconv.Quote(b.Content))
	default:
		o.line(depth, "%s", kind)
	}
}

func describeListType(t markdown.ListType) string {
	switch t := t.(type) {
	case markdown.Ordered:
		return fmt.Sprintf("ordered start=%d delimiter=%q", t.Start, t.Delimiter)
	case markdown.Unordered:
		return fmt.Sprintf("bullet marker=%q", t.Marker)
	default:
		return "unknown"
	}
}

func (o *outline) inlines(nodes []markdown.Inline, depth int) {
	for _, node := range nodes {
		kind := node.Kind().String()
		switch n := node.(type) {
		case markdown.Text:
			o.line(depth, "%s %s", kind, strconv.Quote(n.Value))
		case markdown.Code:
			o.line(depth, "%s %s", kind, strconv.Quote(n.Value))
		case markdown.HTMLInline:
			o.line(depth, "%s %s", kind, strconv.Quote(n.Value))
		case markdown.Emphasis:
			o.line(depth, "%s", kind)
			o.inlines(n.Content, depth+1)
		case markdown.Strong:
			o.line(depth, "%s", kind)
			o.inlines(n.Content, depth+1)
		case markdown.Link:
			o.line(depth, "%s%s", kind, destination(n.URL, n.Title))
			o.inlines(n.Text, depth+1)
		case markdown.Image:
			o.line(depth, "%s%s", kind, destination(n.URL, n.Title))
			o.inlines(n.Alt, depth+1)
		default:
			o.line(depth, "%s", kind)
		}
	}
}

func destination(url, title string) string {
	s := " url=" + strconv.Quote(url)
	if title != "" {
		s += " title=" + strconv.Quote(title)
	}
	return s
}
