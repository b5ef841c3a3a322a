package markdown

import (
	"strconv"
	"unicode/utf8"
)

// entityLookahead bounds how far past '&' the terminating ';' may appear.
const entityLookahead = 20

var entities = map[string]string{
	"amp":    "&",
	"lt":     "<",
	"gt":     ">",
	"quot":   "\"",
	"apos":   "'",
	"nbsp":   "\u00a0",
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
	"hellip": "…",
	"mdash":  "—",
	"ndash":  "–",
	"lsquo":  "‘",
	"rsquo":  "’",
	"ldquo":  "“",
	"rdquo":  "”",
	"laquo":  "«",
	"raquo":  "»",
	"bull":   "•",
	"middot": "·",
	"deg":    "°",
	"plusmn": "±",
	"times":  "×",
	"divide": "÷",
	"sect":   "§",
	"para":   "¶",
	"cent":   "¢",
	"pound":  "£",
	"yen":    "¥",
	"euro":   "€",
	"larr":   "←",
	"rarr":   "→",
	"uarr":   "↑",
	"darr":   "↓",
}

// LookupEntity returns the replacement text for a named entity such as
// "copy" (without the surrounding '&' and ';').
func LookupEntity(name string) (string, bool) {
	s, ok := entities[name]
	return s, ok
}

// decodeEntity decodes the reference starting at runes[i] == '&'. It returns
// the replacement text and the index just past ';'.
func decodeEntity(runes []rune, i int) (string, int, bool) {
	if i >= len(runes) || runes[i] != '&' {
		return "", 0, false
	}
	end := -1
	for j := i + 1; j < len(runes) && j-i <= entityLookahead; j++ {
		if runes[j] == ';' {
			end = j
			break
		}
		if runes[j] == '&' {
			break
		}
	}
	if end <= i+1 {
		return "", 0, false
	}
	body := string(runes[i+1 : end])
	if body[0] != '#' {
		if !isEntityName(body) {
			return "", 0, false
		}
		s, ok := entities[body]
		return s, end + 1, ok
	}

	digits, base := body[1:], 10
	if len(digits) > 0 && digits[0] == 'x' {
		digits, base = digits[1:], 16
	}
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return "", 0, false
	}
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return "", 0, false
	}
	r := rune(n)
	if n > utf8.MaxRune || !utf8.ValidRune(r) {
		return "", 0, false
	}
	return string(r), end + 1, true
}

func isEntityName(s string) bool {
	for _, r := range s {
		if !isASCIIAlnum(r) {
			return false
		}
	}
	return s != ""
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
