package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// DisplayWidth reports the terminal width of text, measuring each grapheme
// cluster once so emoji sequences and combining marks are not overcounted.
func DisplayWidth(text string) int {
	width := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		width += clusterWidth(g.Str())
	}
	return width
}

func clusterWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w > 2 {
		w = 2
	}
	if w < 1 {
		w = 1
	}
	return w
}

// Truncate shortens text to at most maxWidth columns, ending with an
// ellipsis when anything was cut.
func Truncate(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if DisplayWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= 1 {
		return ellipsis
	}

	var b strings.Builder
	current := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		w := clusterWidth(cluster)
		if current+w > maxWidth-1 {
			break
		}
		b.WriteString(cluster)
		current += w
	}
	b.WriteString(ellipsis)
	return b.String()
}

// Wrap breaks text into lines of at most width columns, preferring the last
// space before the limit. A width of zero or less disables wrapping.
func Wrap(text string, width int) []string {
	if width <= 0 || DisplayWidth(text) <= width {
		return []string{text}
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0
	lastSpace := -1

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		w := clusterWidth(cluster)
		if lineWidth+w > width && lineWidth > 0 {
			current := line.String()
			if lastSpace > 0 {
				lines = append(lines, strings.TrimRight(current[:lastSpace], " "))
				rest := current[lastSpace+1:]
				line.Reset()
				line.WriteString(rest)
				lineWidth = DisplayWidth(rest)
			} else {
				lines = append(lines, current)
				line.Reset()
				lineWidth = 0
			}
			lastSpace = -1
		}
		if cluster == " " {
			if lineWidth == 0 && len(lines) > 0 {
				continue
			}
			lastSpace = line.Len()
		}
		line.WriteString(cluster)
		lineWidth += w
	}
	if line.Len() > 0 || len(lines) == 0 {
		lines = append(lines, line.String())
	}
	return lines
}
