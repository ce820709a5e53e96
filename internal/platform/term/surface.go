package term

import (
	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/render"
	"github.com/atomicstack/popup-menu/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const ellipsis = "…"

var (
	border = lipgloss.RoundedBorder()
	glyphs = map[render.Glyph]rune{
		render.GlyphCheck:   '✓',
		render.GlyphRadio:   '●',
		render.GlyphSubmenu: '▸',
	}
)

// surface draws into a cell buffer. Colours only ever change the cells a
// call covers; backgrounds set by FillRect survive text drawn over them.
type surface struct {
	buf *Buffer
}

func (s *surface) FillRect(r geom.Rect, c theme.Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.buf.Set(x, y, Cell{Rune: ' ', FG: c, BG: c, Styled: true})
		}
	}
}

func (s *surface) fg(x, y int, r rune, c theme.Color, bold bool) {
	cell := s.buf.At(x, y)
	cell.Rune = r
	cell.FG = c
	cell.Bold = bold
	cell.Styled = true
	s.buf.Set(x, y, cell)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}

func (s *surface) StrokeRect(r geom.Rect, c theme.Color, _ int) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		s.fg(x, r.Y, firstRune(border.Top), c, false)
		s.fg(x, bottom, firstRune(border.Bottom), c, false)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.fg(r.X, y, firstRune(border.Left), c, false)
		s.fg(right, y, firstRune(border.Right), c, false)
	}
	s.fg(r.X, r.Y, firstRune(border.TopLeft), c, false)
	s.fg(right, r.Y, firstRune(border.TopRight), c, false)
	s.fg(r.X, bottom, firstRune(border.BottomLeft), c, false)
	s.fg(right, bottom, firstRune(border.BottomRight), c, false)
}

func (s *surface) DrawLine(from, to geom.Point, c theme.Color, _ int) {
	switch {
	case from.Y == to.Y:
		for x := min(from.X, to.X); x < max(from.X, to.X); x++ {
			s.fg(x, from.Y, firstRune(border.Top), c, false)
		}
	case from.X == to.X:
		for y := min(from.Y, to.Y); y < max(from.Y, to.Y); y++ {
			s.fg(from.X, y, firstRune(border.Left), c, false)
		}
	}
}

func (s *surface) DrawText(r geom.Rect, text string, _ theme.Font, c theme.Color, align render.Align) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	if ansi.StringWidth(text) > r.W {
		text = truncate.StringWithTail(text, uint(r.W), ellipsis)
	}
	x := r.X
	if align == render.AlignRight {
		x = r.Right() - ansi.StringWidth(text)
	}
	y := r.Y + (r.H-1)/2
	for _, ch := range text {
		w := ansi.StringWidth(string(ch))
		if w <= 0 {
			continue
		}
		s.fg(x, y, ch, c, false)
		if w == 2 {
			s.fg(x+1, y, 0, c, false)
		}
		x += w
	}
}

func (s *surface) DrawGlyph(r geom.Rect, g render.Glyph, c theme.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	s.fg(r.X+(r.W-1)/2, r.Y+(r.H-1)/2, glyphs[g], c, g != render.GlyphSubmenu)
}

// DrawIcon marks symbolic icons with a tinted diamond. Raster icons have no
// cell representation and leave the column blank.
func (s *surface) DrawIcon(r geom.Rect, _ string, tint *theme.Color) error {
	if tint == nil || r.W <= 0 || r.H <= 0 {
		return nil
	}
	s.fg(r.X+(r.W-1)/2, r.Y+(r.H-1)/2, '◆', *tint, false)
	return nil
}
