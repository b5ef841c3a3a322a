package render

import (
	"strconv"
	"strings"

	"github.com/kk-code-lab/mdtree/internal/textutil"
	"github.com/kk-code-lab/mdtree/markdown"
)

const (
	codeIndent  = "    "
	quotePrefix = "│ "
	minRule     = 3
)

// Options controls layout of rendered lines.
type Options struct {
	// Width wraps prose to this many columns. Zero disables wrapping.
	Width int
	// Highlight tokenizes fenced code with a lexer named by the info string.
	Highlight bool
}

// Renderer lays out a document as styled lines.
type Renderer struct {
	opts Options
}

// New returns a renderer for opts.
func New(opts Options) *Renderer {
	if opts.Width < 0 {
		opts.Width = 0
	}
	return &Renderer{opts: opts}
}

// Lines renders doc into styled lines. Blocks are separated by one empty
// line.
func (r *Renderer) Lines(doc markdown.Document) []Line {
	return r.renderBlocks(doc.Blocks, 0, r.opts.Width)
}

// Text renders doc as plain text without styling.
func (r *Renderer) Text(doc markdown.Document) string {
	lines := r.Lines(doc)
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimRight(line.Text(), " "))
	}
	return b.String()
}

func (r *Renderer) renderBlocks(blocks []markdown.Block, depth, width int) []Line {
	var lines []Line
	for idx, block := range blocks {
		rendered := r.renderBlock(block, depth, width)
		if idx > 0 && len(rendered) > 0 && len(lines) > 0 && len(lines[len(lines)-1]) != 0 {
			lines = append(lines, nil)
		}
		lines = append(lines, rendered...)
	}
	return lines
}

func (r *Renderer) renderBlock(block markdown.Block, depth, width int) []Line {
	switch b := block.(type) {
	case markdown.Heading:
		prefix := Segment{Text: strings.Repeat("#", b.Level) + " ", Style: StyleHeading}
		line := prefixLine(prefix, renderInlines(b.Content, StyleHeading))
		return wrapAll(splitBreaks(line), width)
	case markdown.Paragraph:
		return wrapAll(splitBreaks(renderInlines(b.Content, StylePlain)), width)
	case markdown.CodeBlock:
		return r.renderCodeBlock(b)
	case markdown.List:
		return r.renderList(b, depth, width)
	case markdown.Blockquote:
		content := r.renderBlocks(b.Content, depth, innerWidth(width, 2))
		quoted := make([]Line, 0, len(content))
		for _, line := range content {
			quoted = append(quoted, prefixLine(Segment{Text: quotePrefix, Style: StyleQuote}, line))
		}
		return quoted
	case markdown.HorizontalRule:
		n := width
		if n < minRule {
			n = minRule
		}
		return []Line{{{Text: strings.Repeat("─", n), Style: StyleRule}}}
	case markdown.HTMLBlock:
		var lines []Line
		for _, text := range strings.Split(b.Content, "\n") {
			lines = append(lines, Line{{Text: text, Style: StyleHTML}})
		}
		return lines
	default:
		return nil
	}
}

func (r *Renderer) renderCodeBlock(block markdown.CodeBlock) []Line {
	var body []Line
	if r.opts.Highlight {
		body, _ = highlightCode(block.Info, block.Content)
	}
	if body == nil {
		for _, text := range strings.Split(block.Content, "\n") {
			body = append(body, Line{{Text: text, Style: StyleCodeBlock}})
		}
	}

	lines := make([]Line, 0, len(body)+1)
	if block.Info != "" {
		lines = append(lines, Line{{Text: codeIndent + "[" + block.Info + "]", Style: StyleCodeInfo}})
	}
	for _, line := range body {
		lines = append(lines, prefixLine(Segment{Text: codeIndent, Style: StyleCodeBlock}, line))
	}
	return lines
}

func (r *Renderer) renderList(list markdown.List, depth, width int) []Line {
	var lines []Line
	for idx, item := range list.Items {
		bullet := bulletSymbol(list.Type, depth, idx)
		indent := textutil.DisplayWidth(bullet) + 1
		blocks := r.renderBlocks(item.Content, depth+1, innerWidth(width, indent))
		if len(blocks) == 0 {
			lines = append(lines, Line{{Text: bullet, Style: StyleBullet}})
			continue
		}
		lines = append(lines, prefixLine(Segment{Text: bullet + " ", Style: StyleBullet}, blocks[0]))
		pad := Segment{Text: strings.Repeat(" ", indent), Style: StylePlain}
		for _, line := range blocks[1:] {
			lines = append(lines, prefixLine(pad, line))
		}
	}
	return lines
}

func bulletSymbol(kind markdown.ListType, depth, idx int) string {
	if ordered, ok := kind.(markdown.Ordered); ok {
		delim := ordered.Delimiter
		if delim == 0 {
			delim = '.'
		}
		return strconv.Itoa(ordered.Start+idx) + string(delim)
	}
	switch depth {
	case 0:
		return "•"
	case 1:
		return "◦"
	default:
		return "▪"
	}
}

func innerWidth(width, used int) int {
	if width <= 0 {
		return 0
	}
	if width-used < 1 {
		return 1
	}
	return width - used
}

func renderInlines(nodes []markdown.Inline, style Style) Line {
	var line Line
	for _, node := range nodes {
		switch n := node.(type) {
		case markdown.Text:
			line = append(line, Segment{Text: n.Value, Style: style})
		case markdown.Emphasis:
			line = append(line, renderInlines(n.Content, StyleEmphasis)...)
		case markdown.Strong:
			line = append(line, renderInlines(n.Content, StyleStrong)...)
		case markdown.Code:
			line = append(line, Segment{Text: strings.ReplaceAll(n.Value, "\n", " "), Style: StyleCode})
		case markdown.Link:
			line = append(line, renderInlines(n.Text, StyleLink)...)
			line = appendDestination(line, n.URL)
		case markdown.Image:
			alt := markdown.PlainText(n.Alt)
			if alt == "" {
				alt = "image"
			}
			line = append(line, Segment{Text: "[" + alt + "]", Style: StyleImage})
			line = appendDestination(line, n.URL)
		case markdown.HTMLInline:
			line = append(line, Segment{Text: n.Value, Style: StyleHTML})
		case markdown.SoftBreak:
			line = append(line, Segment{Text: " ", Style: style})
		case markdown.HardBreak:
			line = append(line, Segment{Style: styleBreak})
		}
	}
	return line
}

func appendDestination(line Line, url string) Line {
	if url == "" {
		return line
	}
	return append(line,
		Segment{Text: " (", Style: StylePlain},
		Segment{Text: url, Style: StyleLink},
		Segment{Text: ")", Style: StylePlain},
	)
}

// splitBreaks cuts a line at hard-break markers.
func splitBreaks(line Line) []Line {
	lines := []Line{nil}
	for _, seg := range line {
		if seg.Style == styleBreak {
			lines = append(lines, nil)
			continue
		}
		last := len(lines) - 1
		lines[last] = append(lines[last], seg)
	}
	return lines
}
