package markdown

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxHeadingLevel = 6

var fenceMarkers = [...]string{"```", "~~~"}

// ParseBlocks scans preprocessed lines into block elements.
func ParseBlocks(lines []string) []Block {
	var blocks []Block
	i := 0
	for i < len(lines) {
		if isBlankLine(lines[i]) {
			i++
			continue
		}
		block, next := parseBlock(lines, i)
		if next <= i {
			i++
			continue
		}
		blocks = append(blocks, block)
		i = next
	}
	return blocks
}

// parseBlock tries each block form in priority order at lines[start],
// which must not be blank. The paragraph form always matches.
func parseBlock(lines []string, start int) (Block, int) {
	trimmed := strings.TrimSpace(lines[start])

	if level, text, ok := parseHeading(trimmed); ok {
		return Heading{Level: level, Content: ParseInline(text)}, start + 1
	}

	if isHorizontalRule(trimmed) {
		return HorizontalRule{}, start + 1
	}

	if fence, info, ok := detectFence(trimmed); ok {
		return parseFencedCodeBlock(lines, start, fence, info)
	}

	if strings.HasPrefix(trimmed, ">") {
		return parseBlockquote(lines, start)
	}

	if list, next, ok := parseList(lines, start); ok {
		return list, next
	}

	return parseParagraph(lines, start)
}

func parseHeading(trimmed string) (int, string, bool) {
	if !strings.HasPrefix(trimmed, "#") {
		return 0, "", false
	}
	level := countRepeatRune(trimmed, '#')
	if level > maxHeadingLevel {
		return 0, "", false
	}
	rest := trimmed[level:]
	if rest != "" && !isSpaceOrTab(rune(rest[0])) {
		return 0, "", false
	}
	return level, strings.TrimSpace(rest), true
}

func isHorizontalRule(trimmed string) bool {
	var marker rune
	count := 0
	for _, ch := range trimmed {
		if ch == ' ' {
			continue
		}
		if marker == 0 {
			if ch != '-' && ch != '*' && ch != '_' {
				return false
			}
			marker = ch
		}
		if ch != marker {
			return false
		}
		count++
	}
	return count >= 3
}

func detectFence(trimmed string) (string, string, bool) {
	for _, fence := range fenceMarkers {
		if strings.HasPrefix(trimmed, fence) {
			return fence, strings.TrimSpace(trimmed[len(fence):]), true
		}
	}
	return "", "", false
}

// parseFencedCodeBlock collects lines verbatim until a line opening with
// the same fence. An unclosed fence runs to the end of input.
func parseFencedCodeBlock(lines []string, start int, fence, info string) (CodeBlock, int) {
	var content []string
	i := start + 1
	for i < len(lines) {
		line := lines[i]
		if strings.HasPrefix(strings.TrimSpace(line), fence) {
			i++
			break
		}
		content = append(content, line)
		i++
	}
	return CodeBlock{
		Info:    info,
		Content: strings.Join(content, "\n"),
	}, i
}

// parseBlockquote strips one level of '>' from a run of quoted or blank
// lines and parses the remainder as a nested document.
func parseBlockquote(lines []string, start int) (Blockquote, int) {
	var quoteLines []string
	i := start
	for i < len(lines) {
		line := lines[i]
		if isBlankLine(line) {
			quoteLines = append(quoteLines, "")
			i++
			continue
		}

		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, ">") {
			break
		}
		stripped := strings.TrimPrefix(trimmed[1:], " ")
		quoteLines = append(quoteLines, stripped)
		i++
	}

	children := ParseBlocks(Preprocess(strings.Join(quoteLines, "\n")))
	return Blockquote{Content: children}, i
}

type listMarker struct {
	ordered   bool
	bullet    rune
	number    int
	delimiter rune
	content   string
}

func (m listMarker) continues(first listMarker) bool {
	if m.ordered != first.ordered {
		return false
	}
	return m.ordered || m.bullet == first.bullet
}

func (m listMarker) listType() ListType {
	if m.ordered {
		return Ordered{Start: m.number, Delimiter: m.delimiter}
	}
	return Unordered{Marker: m.bullet}
}

// parseList consumes items sharing the first item's marker family. Blank
// lines between items do not end the list.
func parseList(lines []string, start int) (List, int, bool) {
	first, ok := parseListMarker(strings.TrimSpace(lines[start]))
	if !ok {
		return List{}, start, false
	}

	list := List{Type: first.listType()}
	i := start
	for i < len(lines) {
		line := lines[i]
		if isBlankLine(line) {
			i++
			continue
		}
		m, ok := parseListMarker(strings.TrimSpace(line))
		if !ok || !m.continues(first) {
			break
		}
		list.Items = append(list.Items, ListItem{
			Content: []Block{Paragraph{Content: ParseInline(m.content)}},
			Tight:   true,
		})
		i++
	}
	return list, i, true
}

func parseListMarker(trimmed string) (listMarker, bool) {
	if trimmed == "" {
		return listMarker{}, false
	}

	if isBullet(trimmed[0]) {
		if len(trimmed) < 2 || !isSpaceOrTab(rune(trimmed[1])) {
			return listMarker{}, false
		}
		return listMarker{
			bullet:  rune(trimmed[0]),
			content: strings.TrimLeft(trimmed[2:], " \t"),
		}, true
	}

	j := 0
	for j < len(trimmed) && isASCIIDigit(trimmed[j]) {
		j++
	}
	if j == 0 || j >= len(trimmed) {
		return listMarker{}, false
	}
	if trimmed[j] != '.' && trimmed[j] != ')' {
		return listMarker{}, false
	}
	next, size := utf8.DecodeRuneInString(trimmed[j+1:])
	if size == 0 || !unicode.IsSpace(next) {
		return listMarker{}, false
	}
	num, err := strconv.Atoi(trimmed[:j])
	if err != nil {
		num = 1
	}
	return listMarker{
		ordered:   true,
		number:    num,
		delimiter: rune(trimmed[j]),
		content:   trimLeadingSpace(trimmed[j+1+size:]),
	}, true
}

// parseParagraph joins consecutive non-blank lines. Leading whitespace is
// dropped per line; trailing whitespace is kept for hard-break detection.
func parseParagraph(lines []string, start int) (Paragraph, int) {
	var parts []string
	i := start
	for i < len(lines) {
		line := lines[i]
		if isBlankLine(line) {
			break
		}
		parts = append(parts, trimLeadingSpace(line))
		i++
	}
	return Paragraph{Content: ParseInline(strings.Join(parts, "\n"))}, i
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

func trimLeadingSpace(line string) string {
	return strings.TrimLeftFunc(line, unicode.IsSpace)
}

func isBullet(ch byte) bool {
	return ch == '-' || ch == '+' || ch == '*'
}

func isASCIIDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpaceOrTab(r rune) bool {
	return r == ' ' || r == '\t'
}

func countRepeatRune(text string, target rune) int {
	n := 0
	for _, r := range text {
		if r != target {
			break
		}
		n++
	}
	return n
}
