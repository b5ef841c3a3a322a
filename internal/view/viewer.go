// Package view shows rendered markdown in a full-screen, read-only pager.
package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdtree/internal/render"
	"github.com/kk-code-lab/mdtree/internal/textutil"
	"github.com/rivo/uniseg"
)

const wheelStep = 3

// LayoutFunc renders the document for a given screen width.
type LayoutFunc func(width int) []render.Line

// Options configures a Viewer.
type Options struct {
	Title     string
	CodeStyle string
	Theme     *Theme
}

// Viewer pages through rendered lines on a tcell screen.
type Viewer struct {
	screen tcell.Screen
	layout LayoutFunc
	styler styler
	title  string

	lines  []render.Line
	width  int
	top    int
	quit   bool
	search search
}

// NewScreen creates and initialises a terminal screen.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	return screen, nil
}

// New returns a viewer drawing on screen. The layout is recomputed
// whenever the screen width changes.
func New(screen tcell.Screen, layout LayoutFunc, opts Options) *Viewer {
	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	v := &Viewer{
		screen: screen,
		layout: layout,
		styler: styler{theme: theme, code: codeStyle(opts.CodeStyle)},
		title:  opts.Title,
		search: search{current: -1},
	}
	v.relayout()
	return v
}

// Run draws and processes events until the user quits. It finalises the
// screen before returning.
func (v *Viewer) Run() {
	defer v.screen.Fini()

	v.Draw()
	for !v.quit {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		if v.HandleEvent(ev) {
			v.Draw()
		}
	}
}

// Quit reports whether the user asked to leave.
func (v *Viewer) Quit() bool { return v.quit }

// Top is the index of the first visible line.
func (v *Viewer) Top() int { return v.top }

func (v *Viewer) relayout() {
	w, _ := v.screen.Size()
	v.width = w
	v.lines = v.layout(w)
	v.clamp()
	v.findHits()
}

func (v *Viewer) bodyHeight() int {
	_, h := v.screen.Size()
	if h <= 1 {
		return h
	}
	return h - 1
}

func (v *Viewer) maxTop() int {
	n := len(v.lines) - v.bodyHeight()
	if n < 0 {
		return 0
	}
	return n
}

func (v *Viewer) clamp() {
	if v.top > v.maxTop() {
		v.top = v.maxTop()
	}
	if v.top < 0 {
		v.top = 0
	}
}

func (v *Viewer) scroll(delta int) bool {
	prev := v.top
	v.top += delta
	v.clamp()
	return v.top != prev
}

// HandleEvent applies one terminal event and reports whether a redraw is
// needed.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		if w, _ := v.screen.Size(); w != v.width {
			v.relayout()
		} else {
			v.clamp()
		}
		return true
	case *tcell.EventMouse:
		switch ev.Buttons() {
		case tcell.WheelUp:
			return v.scroll(-wheelStep)
		case tcell.WheelDown:
			return v.scroll(wheelStep)
		}
		return false
	case *tcell.EventKey:
		return v.handleKey(ev)
	}
	return false
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	if v.search.editing {
		return v.handleSearchKey(ev)
	}
	page := v.bodyHeight()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.quit = true
		return false
	case tcell.KeyUp:
		return v.scroll(-1)
	case tcell.KeyDown, tcell.KeyEnter:
		return v.scroll(1)
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		return v.scroll(-page)
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		return v.scroll(page)
	case tcell.KeyHome:
		return v.scroll(-v.top)
	case tcell.KeyEnd:
		return v.scroll(v.maxTop() - v.top)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.quit = true
			return false
		case 'k':
			return v.scroll(-1)
		case 'j':
			return v.scroll(1)
		case 'b':
			return v.scroll(-page)
		case ' ', 'f':
			return v.scroll(page)
		case 'g':
			return v.scroll(-v.top)
		case 'G':
			return v.scroll(v.maxTop() - v.top)
		case '/':
			v.search.editing = true
			v.search.input = v.search.input[:0]
			return true
		case 'n':
			return v.nextHit(1)
		case 'N':
			return v.nextHit(-1)
		}
	}
	return false
}

// Draw paints the visible lines and the status footer.
func (v *Viewer) Draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	body := v.bodyHeight()

	for row := 0; row < body; row++ {
		idx := v.top + row
		if idx >= len(v.lines) {
			break
		}
		v.drawLine(row, width, v.lines[idx])
		if v.search.query != "" {
			v.highlightMatches(row, width, displayText(v.lines[idx]))
		}
	}
	if height > 1 {
		v.drawFooter(height-1, width)
	}
	v.screen.Show()
}

func (v *Viewer) drawLine(y, width int, line render.Line) {
	x := 0
	for _, seg := range line {
		x = v.drawText(x, y, width, textutil.SanitizeLine(seg.Text), v.styler.segment(seg))
	}
}

func (v *Viewer) drawFooter(y, width int) {
	style := v.styler.footer()
	for x := 0; x < width; x++ {
		v.screen.SetContent(x, y, ' ', nil, style)
	}

	if v.search.editing {
		v.drawText(0, y, width, "/"+string(v.search.input), style)
		v.screen.ShowCursor(textutil.DisplayWidth("/"+string(v.search.input)), y)
		return
	}
	v.screen.HideCursor()

	status := v.status()
	label := v.title
	if v.search.query != "" && len(v.search.hits) == 0 {
		label = "no match: " + v.search.query
	}
	label = textutil.Truncate(label, width-textutil.DisplayWidth(status)-2)
	v.drawText(0, y, width, " "+label, style)
	v.drawText(width-textutil.DisplayWidth(status), y, width, status, style)
}

func (v *Viewer) status() string {
	total := len(v.lines)
	if total == 0 {
		return "empty "
	}
	last := v.top + v.bodyHeight()
	if last > total {
		last = total
	}
	return fmt.Sprintf("%d-%d/%d %d%% ", v.top+1, last, total, last*100/total)
}

// drawText writes text from column x and returns the column after it.
// Clusters that would cross width are dropped.
func (v *Viewer) drawText(x, y, width int, text string, style tcell.Style) int {
	if x < 0 {
		x = 0
	}
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		w := textutil.DisplayWidth(g.Str())
		if x+w > width {
			return width
		}
		v.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}
