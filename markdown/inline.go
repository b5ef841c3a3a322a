package markdown

import (
	"strings"
	"unicode/utf8"
)

// escapable lists the characters a backslash turns into literal text.
const escapable = "\\`*_[]!#+-()"

// ParseInline tokenizes a single run of block text into inline elements.
// Adjacent literal text is merged into one Text node.
func ParseInline(text string) []Inline {
	if text == "" {
		return nil
	}
	return parseInlineRunes([]rune(text))
}

func parseInlineRunes(runes []rune) []Inline {
	p := inlineParser{src: runes}
	return p.parse()
}

type inlineParser struct {
	src   []rune
	nodes []Inline
	buf   []rune
}

// inlineSpan describes a recognised construct without materialising its
// children, so look-ahead probes stay cheap.
type inlineSpan struct {
	kind    InlineKind
	end     int
	inner   [2]int
	literal string
	url     string
	title   string
}

func (p *inlineParser) parse() []Inline {
	i := 0
	for i < len(p.src) {
		if span, ok := p.scan(i); ok {
			p.emit(span)
			i = span.end
			continue
		}

		j := i + 1
		for j < len(p.src) {
			if _, ok := p.scan(j); ok {
				break
			}
			j++
		}
		p.buf = append(p.buf, p.src[i:j]...)
		i = j
	}
	p.flushText()
	return p.nodes
}

func (p *inlineParser) flushText() {
	if len(p.buf) == 0 {
		return
	}
	p.nodes = append(p.nodes, Text{Value: string(p.buf)})
	p.buf = p.buf[:0]
}

func (p *inlineParser) emit(span inlineSpan) {
	if span.kind == InlineText {
		p.buf = append(p.buf, []rune(span.literal)...)
		return
	}
	p.flushText()
	p.nodes = append(p.nodes, p.build(span))
}

func (p *inlineParser) build(span inlineSpan) Inline {
	switch span.kind {
	case InlineStrong:
		return Strong{Content: p.children(span)}
	case InlineEmphasis:
		return Emphasis{Content: p.children(span)}
	case InlineCode:
		return Code{Value: span.literal}
	case InlineLink:
		return Link{Text: p.children(span), URL: span.url, Title: span.title}
	case InlineImage:
		return Image{Alt: p.children(span), URL: span.url, Title: span.title}
	case InlineHardBreak:
		return HardBreak{}
	case InlineSoftBreak:
		return SoftBreak{}
	default:
		return Text{Value: span.literal}
	}
}

func (p *inlineParser) children(span inlineSpan) []Inline {
	inner := p.src[span.inner[0]:span.inner[1]]
	if len(inner) == 0 {
		return nil
	}
	return parseInlineRunes(inner)
}

// scan tries every inline form at src[i] in priority order.
func (p *inlineParser) scan(i int) (inlineSpan, bool) {
	switch p.src[i] {
	case '\\':
		if span, ok := p.scanEscape(i); ok {
			return span, true
		}
		return p.scanBackslashBreak(i)
	case '&':
		return p.scanEntity(i)
	case '*', '_':
		if span, ok := p.scanStrong(i); ok {
			return span, true
		}
		return p.scanEmphasis(i)
	case '`':
		return p.scanCode(i)
	case '!':
		return p.scanImage(i)
	case '[':
		return p.scanLink(i)
	case ' ':
		return p.scanSpaceBreak(i)
	case '\n':
		return inlineSpan{kind: InlineSoftBreak, end: i + 1}, true
	}
	return inlineSpan{}, false
}

func (p *inlineParser) scanEscape(i int) (inlineSpan, bool) {
	if i+1 >= len(p.src) || !strings.ContainsRune(escapable, p.src[i+1]) {
		return inlineSpan{}, false
	}
	return inlineSpan{kind: InlineText, literal: string(p.src[i+1]), end: i + 2}, true
}

func (p *inlineParser) scanEntity(i int) (inlineSpan, bool) {
	text, end, ok := decodeEntity(p.src, i)
	if !ok {
		return inlineSpan{}, false
	}
	return inlineSpan{kind: InlineText, literal: text, end: end}, true
}

func (p *inlineParser) scanStrong(i int) (inlineSpan, bool) {
	delim := p.src[i]
	if i+1 >= len(p.src) || p.src[i+1] != delim {
		return inlineSpan{}, false
	}
	closeIdx := p.findClosingDelimiter(i+2, delim, 2)
	if closeIdx < 0 {
		return inlineSpan{}, false
	}
	return inlineSpan{kind: InlineStrong, inner: [2]int{i + 2, closeIdx}, end: closeIdx + 2}, true
}

func (p *inlineParser) scanEmphasis(i int) (inlineSpan, bool) {
	delim := p.src[i]
	if i+1 < len(p.src) && p.src[i+1] == delim {
		return inlineSpan{}, false
	}
	// A lone '_' right after another '_' is the tail of a failed strong run.
	if delim == '_' && i > 0 && p.src[i-1] == '_' {
		return inlineSpan{}, false
	}
	closeIdx := p.findClosingDelimiter(i+1, delim, 1)
	if closeIdx < 0 {
		return inlineSpan{}, false
	}
	return inlineSpan{kind: InlineEmphasis, inner: [2]int{i + 1, closeIdx}, end: closeIdx + 1}, true
}

func (p *inlineParser) scanCode(i int) (inlineSpan, bool) {
	closeIdx := indexRune(p.src, i+1, '`')
	if closeIdx < 0 {
		return inlineSpan{}, false
	}
	return inlineSpan{kind: InlineCode, literal: string(p.src[i+1 : closeIdx]), end: closeIdx + 1}, true
}

func (p *inlineParser) scanImage(i int) (inlineSpan, bool) {
	if i+1 >= len(p.src) || p.src[i+1] != '[' {
		return inlineSpan{}, false
	}
	span, ok := p.scanLink(i + 1)
	if !ok {
		return inlineSpan{}, false
	}
	span.kind = InlineImage
	return span, true
}

// scanLink matches "[text](destination)" using the first ']' and the
// first ')' after it; brackets do not nest.
func (p *inlineParser) scanLink(i int) (inlineSpan, bool) {
	closeText := indexRune(p.src, i+1, ']')
	if closeText < 0 || closeText+1 >= len(p.src) || p.src[closeText+1] != '(' {
		return inlineSpan{}, false
	}
	closeDest := indexRune(p.src, closeText+2, ')')
	if closeDest < 0 {
		return inlineSpan{}, false
	}
	url, title := splitDestination(strings.TrimSpace(string(p.src[closeText+2 : closeDest])))
	return inlineSpan{
		kind:  InlineLink,
		inner: [2]int{i + 1, closeText},
		url:   url,
		title: title,
		end:   closeDest + 1,
	}, true
}

func (p *inlineParser) scanSpaceBreak(i int) (inlineSpan, bool) {
	if i+2 < len(p.src) && p.src[i+1] == ' ' && p.src[i+2] == '\n' {
		return inlineSpan{kind: InlineHardBreak, end: i + 3}, true
	}
	return inlineSpan{}, false
}

func (p *inlineParser) scanBackslashBreak(i int) (inlineSpan, bool) {
	if i+1 < len(p.src) && p.src[i+1] == '\n' {
		return inlineSpan{kind: InlineHardBreak, end: i + 2}, true
	}
	return inlineSpan{}, false
}

// findClosingDelimiter returns the index of the first run of count delim
// runes at or after start that is not preceded by an odd number of
// backslashes.
func (p *inlineParser) findClosingDelimiter(start int, delim rune, count int) int {
	for i := start; i+count <= len(p.src); i++ {
		if p.src[i] != delim {
			continue
		}
		if count == 2 && p.src[i+1] != delim {
			continue
		}
		if p.escaped(i) {
			continue
		}
		return i
	}
	return -1
}

func (p *inlineParser) escaped(i int) bool {
	n := 0
	for j := i - 1; j >= 0 && p.src[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// splitDestination separates an optional quoted title from the URL.
func splitDestination(dest string) (string, string) {
	sp := strings.IndexByte(dest, ' ')
	if sp < 0 {
		return dest, ""
	}
	candidate := dest[:sp]
	rest := strings.TrimSpace(dest[sp+1:])
	if utf8.RuneCountInString(rest) <= 2 {
		return dest, ""
	}
	first, last := rest[0], rest[len(rest)-1]
	if (first == '"' || first == '\'') && first == last {
		return candidate, rest[1 : len(rest)-1]
	}
	return dest, ""
}

func indexRune(runes []rune, start int, target rune) int {
	for i := start; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}
