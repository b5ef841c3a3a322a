package markdown

import "strings"

// TabWidth is the fixed tab stop used when expanding tabs.
const TabWidth = 4

// Preprocess expands tabs and splits the input into logical lines.
func Preprocess(input string) []string {
	return SplitLines(ExpandTabs(input))
}

// ExpandTabs replaces each tab with spaces up to the next multiple of
// TabWidth. Columns count runes and restart after every '\n'.
func ExpandTabs(text string) string {
	if !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	builder.Grow(len(text))
	column := 0
	for _, ru := range text {
		switch ru {
		case '\t':
			spaces := TabWidth - (column % TabWidth)
			for i := 0; i < spaces; i++ {
				builder.WriteByte(' ')
			}
			column += spaces
		case '\n':
			builder.WriteRune(ru)
			column = 0
		default:
			builder.WriteRune(ru)
			column++
		}
	}
	return builder.String()
}

// SplitLines splits text on "\r\n", "\r", "\n", and the Unicode line
// separators (NEL, LS, PS, VT, FF). Empty input yields no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		n := newlineWidth(text, i)
		if n == 0 {
			i++
			continue
		}
		lines = append(lines, text[start:i])
		i += n
		start = i
	}
	return append(lines, text[start:])
}

// newlineWidth returns the byte length of the line terminator at text[i],
// or 0 when there is none.
func newlineWidth(text string, i int) int {
	switch text[i] {
	case '\n', '\v', '\f':
		return 1
	case '\r':
		if i+1 < len(text) && text[i+1] == '\n' {
			return 2
		}
		return 1
	case 0xC2:
		if i+1 < len(text) && text[i+1] == 0x85 {
			return 2
		}
	case 0xE2:
		if i+2 < len(text) && text[i+1] == 0x80 && (text[i+2] == 0xA8 || text[i+2] == 0xA9) {
			return 3
		}
	}
	return 0
}
