package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// highlightCode tokenizes content with the lexer named by the first word
// of the info string. It reports false when no lexer matches.
func highlightCode(info, content string) ([]Line, bool) {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return nil, false
	}
	lexer := lexers.Get(fields[0])
	if lexer == nil {
		return nil, false
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, content)
	if err != nil {
		return nil, false
	}

	lines := []Line{nil}
	for _, token := range iterator.Tokens() {
		for i, part := range strings.Split(token.Value, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], Segment{Text: part, Style: StyleCodeBlock, Token: token.Type})
		}
	}
	// Lexers may append a newline the source did not have.
	if !strings.HasSuffix(content, "\n") && len(lines) > 1 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines, true
}
