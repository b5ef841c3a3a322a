// Package render turns a parsed markdown.Document into terminal output:
// styled lines for the viewer, plain text, an outline dump and structured
// exports. It only reads the tree.
package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// Style describes the semantic style of a rendered segment.
type Style int

const (
	StylePlain Style = iota
	StyleEmphasis
	StyleStrong
	StyleCode
	StyleCodeBlock
	StyleCodeInfo
	StyleLink
	StyleImage
	StyleHeading
	StyleQuote
	StyleBullet
	StyleRule
	StyleHTML
	styleBreak
)

// Segment is a chunk of text with an associated style. Token is set for
// highlighted code block segments.
type Segment struct {
	Text  string
	Style Style
	Token chroma.TokenType
}

// Line is one rendered output line.
type Line []Segment

// Text joins the segment texts of the line.
func (l Line) Text() string {
	switch len(l) {
	case 0:
		return ""
	case 1:
		return l[0].Text
	}
	total := 0
	for _, seg := range l {
		total += len(seg.Text)
	}
	var b strings.Builder
	b.Grow(total)
	for _, seg := range l {
		b.WriteString(seg.Text)
	}
	return b.String()
}

func prefixLine(prefix Segment, line Line) Line {
	out := make(Line, 0, len(line)+1)
	out = append(out, prefix)
	return append(out, line...)
}
