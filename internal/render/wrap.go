package render

import (
	"strings"

	"github.com/kk-code-lab/mdtree/internal/textutil"
	"github.com/rivo/uniseg"
)

func wrapAll(lines []Line, width int) []Line {
	if width <= 0 {
		return lines
	}
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

type byteRange struct{ start, end int }

// wrapLine breaks a styled line at Unicode line-break opportunities so no
// piece exceeds width columns. Words wider than the limit are split at
// grapheme boundaries.
func wrapLine(line Line, width int) []Line {
	text := line.Text()
	if width <= 0 || textutil.DisplayWidth(text) <= width {
		return []Line{line}
	}

	var ranges []byteRange
	lineStart, lineWidth := 0, 0
	offset := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var unit string
		unit, rest, _, state = uniseg.FirstLineSegmentInString(rest, state)
		unitStart := offset
		offset += len(unit)

		word := strings.TrimRight(unit, " ")
		wordWidth := textutil.DisplayWidth(word)
		if lineWidth > 0 && lineWidth+wordWidth > width {
			ranges = append(ranges, byteRange{lineStart, unitStart})
			lineStart, lineWidth = unitStart, 0
		}

		if wordWidth > width {
			g := uniseg.NewGraphemes(word)
			for g.Next() {
				w := textutil.DisplayWidth(g.Str())
				from, _ := g.Positions()
				if lineWidth > 0 && lineWidth+w > width {
					ranges = append(ranges, byteRange{lineStart, unitStart + from})
					lineStart, lineWidth = unitStart+from, 0
				}
				lineWidth += w
			}
			lineWidth += len(unit) - len(word)
			continue
		}
		lineWidth += textutil.DisplayWidth(unit)
	}
	ranges = append(ranges, byteRange{lineStart, len(text)})

	out := make([]Line, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, trimTrailingSpaces(sliceLine(line, r)))
	}
	return out
}

// sliceLine returns the segments covering the byte range r of the joined
// line text.
func sliceLine(line Line, r byteRange) Line {
	var out Line
	pos := 0
	for _, seg := range line {
		segStart, segEnd := pos, pos+len(seg.Text)
		pos = segEnd
		if segEnd <= r.start || segStart >= r.end {
			continue
		}
		from := max(r.start, segStart) - segStart
		to := min(r.end, segEnd) - segStart
		piece := seg
		piece.Text = seg.Text[from:to]
		out = append(out, piece)
	}
	return out
}

func trimTrailingSpaces(line Line) Line {
	for len(line) > 0 {
		last := &line[len(line)-1]
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			break
		}
		line = line[:len(line)-1]
	}
	return line
}
