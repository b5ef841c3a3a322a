package markdown

import "strings"

// Visitor receives every node of a tree during Walk. Returning false from
// either method skips that node's children.
type Visitor interface {
	VisitBlock(b Block, depth int) bool
	VisitInline(n Inline, depth int) bool
}

// VisitorFuncs adapts plain functions to Visitor. Nil fields visit
// everything.
type VisitorFuncs struct {
	Block  func(b Block, depth int) bool
	Inline func(n Inline, depth int) bool
}

func (v VisitorFuncs) VisitBlock(b Block, depth int) bool {
	if v.Block == nil {
		return true
	}
	return v.Block(b, depth)
}

func (v VisitorFuncs) VisitInline(n Inline, depth int) bool {
	if v.Inline == nil {
		return true
	}
	return v.Inline(n, depth)
}

// Walk traverses the document depth-first in source order.
func Walk(doc Document, v Visitor) {
	WalkBlocks(doc.Blocks, 0, v)
}

func WalkBlocks(blocks []Block, depth int, v Visitor) {
	for _, b := range blocks {
		walkBlock(b, depth, v)
	}
}

func walkBlock(b Block, depth int, v Visitor) {
	if !v.VisitBlock(b, depth) {
		return
	}
	switch b := b.(type) {
	case Heading:
		WalkInlines(b.Content, depth+1, v)
	case Paragraph:
		WalkInlines(b.Content, depth+1, v)
	case List:
		for _, item := range b.Items {
			WalkBlocks(item.Content, depth+1, v)
		}
	case Blockquote:
		WalkBlocks(b.Content, depth+1, v)
	}
}

func WalkInlines(nodes []Inline, depth int, v Visitor) {
	for _, n := range nodes {
		if !v.VisitInline(n, depth) {
			continue
		}
		switch n := n.(type) {
		case Emphasis:
			WalkInlines(n.Content, depth+1, v)
		case Strong:
			WalkInlines(n.Content, depth+1, v)
		case Link:
			WalkInlines(n.Text, depth+1, v)
		case Image:
			WalkInlines(n.Alt, depth+1, v)
		}
	}
}

// PlainText flattens inline content to its literal text. Soft breaks
// become spaces and hard breaks become newlines.
func PlainText(nodes []Inline) string {
	var b strings.Builder
	writePlainText(&b, nodes)
	return b.String()
}

func writePlainText(b *strings.Builder, nodes []Inline) {
	for _, n := range nodes {
		switch n := n.(type) {
		case Text:
			b.WriteString(n.Value)
		case Code:
			b.WriteString(n.Value)
		case HTMLInline:
			b.WriteString(n.Value)
		case Emphasis:
			writePlainText(b, n.Content)
		case Strong:
			writePlainText(b, n.Content)
		case Link:
			writePlainText(b, n.Text)
		case Image:
			writePlainText(b, n.Alt)
		case SoftBreak:
			b.WriteByte(' ')
		case HardBreak:
			b.WriteByte('\n')
		}
	}
}
