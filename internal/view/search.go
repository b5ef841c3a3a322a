package view

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdtree/internal/render"
	"github.com/kk-code-lab/mdtree/internal/textutil"
)

// span is a half-open range of screen columns.
type span struct{ start, end int }

type search struct {
	editing bool
	input   []rune
	query   string
	hits    []int // line indices with at least one match
	current int
}

// smartCaseInsensitive folds case unless the query has an upper-case rune.
func smartCaseInsensitive(query string) bool {
	for _, r := range query {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// matchSpans returns the column ranges of non-overlapping occurrences of
// query in text.
func matchSpans(text, query string) []span {
	if query == "" || text == "" {
		return nil
	}
	orig := []rune(text)
	hay, needle := orig, []rune(query)
	if smartCaseInsensitive(query) {
		hay = lowerRunes(hay)
		needle = lowerRunes(needle)
	}

	var spans []span
	col, last := 0, 0
	for i := 0; i+len(needle) <= len(hay); {
		if !runesEqualAt(hay, i, needle) {
			i++
			continue
		}
		col += textutil.DisplayWidth(string(orig[last:i]))
		end := col + textutil.DisplayWidth(string(orig[i:i+len(needle)]))
		spans = append(spans, span{start: col, end: end})
		col = end
		i += len(needle)
		last = i
	}
	return spans
}

func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func runesEqualAt(hay []rune, at int, needle []rune) bool {
	for j, r := range needle {
		if hay[at+j] != r {
			return false
		}
	}
	return true
}

// handleSearchKey edits the query line shown in the footer.
func (v *Viewer) handleSearchKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.search.editing = false
	case tcell.KeyEnter:
		v.search.editing = false
		v.search.query = string(v.search.input)
		v.findHits()
		v.jumpToHit(v.firstHitFrom(v.top))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(v.search.input); n > 0 {
			v.search.input = v.search.input[:n-1]
		} else {
			v.search.editing = false
		}
	case tcell.KeyRune:
		v.search.input = append(v.search.input, ev.Rune())
	default:
		return false
	}
	return true
}

func (v *Viewer) findHits() {
	v.search.hits = v.search.hits[:0]
	v.search.current = -1
	if v.search.query == "" {
		return
	}
	for i, line := range v.lines {
		if len(matchSpans(displayText(line), v.search.query)) > 0 {
			v.search.hits = append(v.search.hits, i)
		}
	}
}

func (v *Viewer) firstHitFrom(line int) int {
	for i, hit := range v.search.hits {
		if hit >= line {
			return i
		}
	}
	if len(v.search.hits) > 0 {
		return 0
	}
	return -1
}

func (v *Viewer) jumpToHit(idx int) {
	if idx < 0 || idx >= len(v.search.hits) {
		return
	}
	v.search.current = idx
	v.top = v.search.hits[idx]
	v.clamp()
}

// nextHit moves to the following (delta 1) or preceding (delta -1) hit,
// wrapping around the document.
func (v *Viewer) nextHit(delta int) bool {
	n := len(v.search.hits)
	if n == 0 {
		return false
	}
	idx := v.search.current
	if idx < 0 {
		idx = v.firstHitFrom(v.top)
	} else {
		idx = ((idx+delta)%n + n) % n
	}
	v.jumpToHit(idx)
	return true
}

// displayText is the line as drawn, so match columns line up with cells.
func displayText(line render.Line) string {
	return textutil.SanitizeLine(line.Text())
}

// highlightMatches reverses the cells of every match on screen row y.
func (v *Viewer) highlightMatches(y, width int, text string) {
	for _, sp := range matchSpans(text, v.search.query) {
		for x := sp.start; x < sp.end && x < width; {
			mainc, combc, style, w := v.screen.GetContent(x, y)
			v.screen.SetContent(x, y, mainc, combc, style.Reverse(true))
			x += max(w, 1)
		}
	}
}
