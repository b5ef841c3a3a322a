package view

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdtree/internal/render"
)

// Theme defines viewer colors.
type Theme struct {
	Foreground  tcell.Color
	Background  tcell.Color
	HeadingFg   tcell.Color
	LinkFg      tcell.Color
	QuoteFg     tcell.Color
	BulletFg    tcell.Color
	CodeFg      tcell.Color
	CodeBlockBg tcell.Color
	CodeBlockFg tcell.Color
	HTMLFg      tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
}

// DefaultTheme returns the default color scheme.
func DefaultTheme() Theme {
	return Theme{
		Foreground:  tcell.ColorDefault,
		Background:  tcell.ColorDefault,
		HeadingFg:   tcell.Color33,
		LinkFg:      tcell.Color39,
		QuoteFg:     tcell.ColorLightSlateGray,
		BulletFg:    tcell.Color33,
		CodeFg:      tcell.Color44,  // brighter cyan text for code
		CodeBlockBg: tcell.Color234, // darker grey background for fenced code
		CodeBlockFg: tcell.Color252, // light grey text for fenced code
		HTMLFg:      tcell.ColorLightSlateGray,
		FooterBg:    tcell.Color236,
		FooterFg:    tcell.ColorWhite,
	}
}

// codeStyle resolves a chroma style by name, falling back to chroma's
// default.
func codeStyle(name string) *chroma.Style {
	if s := styles.Get(name); s != nil {
		return s
	}
	return styles.Fallback
}

type styler struct {
	theme Theme
	code  *chroma.Style
}

func (s styler) base() tcell.Style {
	return tcell.StyleDefault.Foreground(s.theme.Foreground).Background(s.theme.Background)
}

func (s styler) footer() tcell.Style {
	return tcell.StyleDefault.Foreground(s.theme.FooterFg).Background(s.theme.FooterBg)
}

func foreground(style tcell.Style, color tcell.Color) tcell.Style {
	if color == tcell.ColorDefault {
		return style
	}
	return style.Foreground(color)
}

func (s styler) segment(seg render.Segment) tcell.Style {
	base := s.base()
	switch seg.Style {
	case render.StyleStrong:
		return base.Bold(true)
	case render.StyleEmphasis:
		return base.Italic(true)
	case render.StyleHeading:
		return foreground(base, s.theme.HeadingFg).Bold(true)
	case render.StyleCode:
		return foreground(base, s.theme.CodeFg)
	case render.StyleCodeBlock:
		style := foreground(base, s.theme.CodeBlockFg)
		if s.theme.CodeBlockBg != tcell.ColorDefault {
			style = style.Background(s.theme.CodeBlockBg)
		}
		if seg.Token != 0 {
			style = s.token(style, seg.Token)
		}
		return style
	case render.StyleCodeInfo:
		return foreground(base, s.theme.CodeBlockFg).Dim(true)
	case render.StyleLink:
		return foreground(base, s.theme.LinkFg).Underline(true)
	case render.StyleImage:
		return foreground(base, s.theme.LinkFg)
	case render.StyleQuote:
		return foreground(base, s.theme.QuoteFg)
	case render.StyleBullet:
		return foreground(base, s.theme.BulletFg)
	case render.StyleRule:
		return base.Dim(true)
	case render.StyleHTML:
		return foreground(base, s.theme.HTMLFg)
	default:
		return base
	}
}

func (s styler) token(style tcell.Style, token chroma.TokenType) tcell.Style {
	entry := s.code.Get(token)
	if entry.Colour.IsSet() {
		style = style.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}
