package view

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchSpans(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []span
	}{
		{"smart case folds lower query", "Hello hello", "hello", []span{{0, 5}, {6, 11}}},
		{"upper query is exact", "Hello hello", "Hello", []span{{0, 5}}},
		{"wide runes shift columns", "日本語 x", "x", []span{{7, 8}}},
		{"wide match", "a日本", "日本", []span{{1, 5}}},
		{"non-overlapping", "aaaa", "aa", []span{{0, 2}, {2, 4}}},
		{"empty text", "", "x", nil},
		{"empty query", "abc", "", nil},
		{"no match", "abc", "d", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchSpans(tt.text, tt.query))
		})
	}
}

func typeQuery(v *Viewer, query string) {
	v.HandleEvent(runeKey('/'))
	for _, r := range query {
		v.HandleEvent(runeKey(r))
	}
	v.HandleEvent(key(tcell.KeyEnter))
}

func TestViewerSearchPrompt(t *testing.T) {
	scr := newTestScreen(t, 20, 10)
	v := New(scr, numberedLines(25), Options{Title: "doc.md"})

	assert.True(t, v.HandleEvent(runeKey('/')))
	v.HandleEvent(runeKey('l'))
	v.HandleEvent(runeKey('x'))
	v.HandleEvent(key(tcell.KeyBackspace2))
	v.Draw()
	assert.Equal(t, "/l", rowText(scr, 9))

	// q is part of the query while editing.
	v.HandleEvent(runeKey('q'))
	assert.False(t, v.Quit())

	v.HandleEvent(key(tcell.KeyEscape))
	assert.False(t, v.Quit())
	assert.False(t, v.search.editing)
	assert.Empty(t, v.search.query)
	v.Draw()
	assert.True(t, strings.HasPrefix(rowText(scr, 9), " doc.md"))
}

func TestViewerSearchJumpsBetweenHits(t *testing.T) {
	scr := newTestScreen(t, 20, 10)
	v := New(scr, numberedLines(25), Options{})

	typeQuery(v, "line 1")
	require.Equal(t, []int{1, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, v.search.hits)
	assert.Equal(t, 1, v.Top())

	assert.True(t, v.HandleEvent(runeKey('n')))
	assert.Equal(t, 10, v.Top())

	v.HandleEvent(runeKey('N'))
	assert.Equal(t, 1, v.Top())

	// Wraps to the last hit, clamped to the last page.
	v.HandleEvent(runeKey('N'))
	assert.Equal(t, 16, v.Top())
	assert.Equal(t, 10, v.search.current)

	v.HandleEvent(runeKey('n'))
	assert.Equal(t, 1, v.Top())
}

func TestViewerSearchStartsFromCurrentPage(t *testing.T) {
	scr := newTestScreen(t, 20, 10)
	v := New(scr, numberedLines(25), Options{})

	v.HandleEvent(runeKey('G'))
	typeQuery(v, "line 2")
	assert.Equal(t, []int{2, 20, 21, 22, 23, 24}, v.search.hits)
	assert.Equal(t, 1, v.search.current)
	assert.Equal(t, 16, v.Top())
}

func TestViewerSearchHighlightsMatches(t *testing.T) {
	scr := newTestScreen(t, 20, 10)
	v := New(scr, numberedLines(25), Options{})

	typeQuery(v, "line 1")
	v.Draw()

	reversed := func(x, y int) bool {
		_, _, style, _ := scr.GetContent(x, y)
		_, _, attrs := style.Decompose()
		return attrs&tcell.AttrReverse != 0
	}
	assert.Equal(t, "line 1", rowText(scr, 0))
	for x := 0; x < 6; x++ {
		assert.True(t, reversed(x, 0), "column %d", x)
	}
	assert.False(t, reversed(6, 0))
	assert.Equal(t, "line 2", rowText(scr, 1))
	assert.False(t, reversed(0, 1))
}

func TestViewerSearchWithoutMatches(t *testing.T) {
	scr := newTestScreen(t, 30, 10)
	v := New(scr, numberedLines(25), Options{Title: "doc.md"})

	typeQuery(v, "zzz")
	assert.Empty(t, v.search.hits)
	assert.Equal(t, 0, v.Top())
	assert.False(t, v.HandleEvent(runeKey('n')))

	v.Draw()
	assert.True(t, strings.HasPrefix(rowText(scr, 9), " no match: zzz"), rowText(scr, 9))
}

func TestViewerSearchSurvivesRelayout(t *testing.T) {
	scr := newTestScreen(t, 20, 10)
	v := New(scr, numberedLines(25), Options{})

	typeQuery(v, "line 2")
	scr.SetSize(30, 10)
	v.HandleEvent(tcell.NewEventResize(30, 10))
	assert.Equal(t, []int{2, 20, 21, 22, 23, 24}, v.search.hits)
}
