package term

import (
	"strings"

	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Cell is one terminal cell. Wide runes occupy their cell and a following
// continuation cell whose Rune is 0. Unstyled cells take the row's base
// style when rendered.
type Cell struct {
	Rune   rune
	FG     theme.Color
	BG     theme.Color
	Bold   bool
	Styled bool
}

var blank = Cell{Rune: ' '}

// Buffer is a fixed-size grid of cells.
type Buffer struct {
	W, H  int
	cells []Cell
}

func NewBuffer(w, h int) *Buffer {
	w, h = max(w, 0), max(h, 0)
	b := &Buffer{W: w, H: h, cells: make([]Cell, w*h)}
	for i := range b.cells {
		b.cells[i] = blank
	}
	return b
}

func (b *Buffer) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.W && y < b.H
}

// At returns the cell at (x, y); cells outside the buffer read as blank.
func (b *Buffer) At(x, y int) Cell {
	if !b.in(x, y) {
		return blank
	}
	return b.cells[y*b.W+x]
}

// Set writes c at (x, y). Writes outside the buffer are dropped.
func (b *Buffer) Set(x, y int, c Cell) {
	if b.in(x, y) {
		b.cells[y*b.W+x] = c
	}
}

// WriteString writes s from (x, y) with the given template cell and
// returns the column after the last written cell.
func (b *Buffer) WriteString(x, y int, s string, tmpl Cell) int {
	for _, r := range s {
		w := ansi.StringWidth(string(r))
		if w <= 0 {
			continue
		}
		c := tmpl
		c.Rune = r
		b.Set(x, y, c)
		if w == 2 {
			c.Rune = 0
			b.Set(x+1, y, c)
		}
		x += w
	}
	return x
}

// Clone returns an independent copy.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{W: b.W, H: b.H, cells: make([]Cell, len(b.cells))}
	copy(out.cells, b.cells)
	return out
}

// Blit copies src onto b with its top-left corner at at.
func (b *Buffer) Blit(src *Buffer, at geom.Point) {
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			b.Set(at.X+x, at.Y+y, src.At(x, y))
		}
	}
}

// Row returns the runes of row y without styling.
func (b *Buffer) Row(y int) string {
	var sb strings.Builder
	for x := 0; x < b.W; x++ {
		if r := b.At(x, y).Rune; r != 0 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

type runKey struct {
	styled bool
	fg, bg theme.Color
	bold   bool
}

func keyOf(c Cell) runKey {
	if !c.Styled {
		return runKey{}
	}
	return runKey{styled: true, fg: c.FG, bg: c.BG, bold: c.Bold}
}

// Render turns the buffer into styled lines. rowStyle, when non-nil, styles
// the unstyled runs of a row.
func (b *Buffer) Render(rowStyle func(y int) *lipgloss.Style) string {
	lines := make([]string, b.H)
	for y := 0; y < b.H; y++ {
		var line strings.Builder
		var run strings.Builder
		current := runKey{}
		flush := func() {
			if run.Len() == 0 {
				return
			}
			text := run.String()
			run.Reset()
			switch {
			case current.styled:
				line.WriteString(theme.CellStyle(current.fg, current.bg, current.bold).Render(text))
			case rowStyle != nil:
				if style := rowStyle(y); style != nil {
					line.WriteString(style.Render(text))
					return
				}
				line.WriteString(text)
			default:
				line.WriteString(text)
			}
		}
		for x := 0; x < b.W; x++ {
			c := b.At(x, y)
			if c.Rune == 0 {
				continue
			}
			if k := keyOf(c); k != current {
				flush()
				current = k
			}
			run.WriteRune(c.Rune)
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
