// Package layout turns a menu level into item rectangles and places menus on
// screen. Everything here is a pure function of its inputs.
package layout

import (
	"errors"

	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/theme"
)

// ErrNoVisibleItems is returned when every item of a menu is hidden.
var ErrNoVisibleItems = errors.New("menu has no visible items")

// TextMeasurer is the drawing collaborator's text extent query.
type TextMeasurer interface {
	MeasureText(text string, font theme.Font) geom.Size
}

// Box is the laid-out rectangle of one visible item, in menu-local
// coordinates.
type Box struct {
	Item *menu.Item
	Rect geom.Rect
}

// Geometry is the layout of one menu level.
type Geometry struct {
	Boxes []Box
	Size  geom.Size

	// Column offsets relative to a box's left edge, and widths.
	CheckX, CheckW int
	LabelX         int
	AccelX, AccelW int
	ArrowX, ArrowW int
}

// ItemAt returns the index of the box containing p, or -1.
func (g Geometry) ItemAt(p geom.Point) int {
	for i, b := range g.Boxes {
		if b.Rect.Contains(p) {
			return i
		}
	}
	return -1
}

// IndexOf returns the box index of it, or -1.
func (g Geometry) IndexOf(it *menu.Item) int {
	for i, b := range g.Boxes {
		if b.Item == it {
			return i
		}
	}
	return -1
}

// Engine computes Geometry using a text measurer.
type Engine struct {
	measure TextMeasurer
}

func New(m TextMeasurer) *Engine {
	return &Engine{measure: m}
}

type measured struct {
	item   *menu.Item
	labelW int
	accelW int
	height int
}

// Compute lays out the visible items of m with theme t. Rows share one
// width; heights depend on the tallest of text, icon and the minimum row
// height.
func (e *Engine) Compute(m *menu.Menu, t theme.Theme) (Geometry, error) {
	items := m.Visible()
	if len(items) == 0 {
		return Geometry{}, ErrNoVisibleItems
	}
	met := t.Metrics

	hasLeft, hasArrow := false, false
	for _, it := range items {
		switch it.Kind() {
		case menu.KindCheckbox, menu.KindRadio:
			hasLeft = true
		case menu.KindSubmenu:
			hasArrow = true
		}
		if it.Icon() != "" {
			hasLeft = true
		}
	}

	rows := make([]measured, len(items))
	maxAccel := 0
	for i, it := range items {
		row := measured{item: it}
		if it.IsSeparator() {
			row.height = met.SeparatorSize + 2*met.ItemVerticalPadding
			rows[i] = row
			continue
		}
		label := e.measure.MeasureText(it.Label(), t.Font)
		row.labelW = label.W
		if row.labelW <= 0 {
			row.labelW = met.MinItemWidth
		}
		h := label.H
		if it.Icon() != "" && met.IconSize > h {
			h = met.IconSize
		}
		if met.MinRowHeight > h {
			h = met.MinRowHeight
		}
		if acc := it.Accelerator(); acc != "" {
			row.accelW = e.measure.MeasureText(acc, t.Font).W
			if row.accelW > maxAccel {
				maxAccel = row.accelW
			}
		}
		row.height = h + 2*met.ItemVerticalPadding
		rows[i] = row
	}

	g := Geometry{}
	left := 0
	if hasLeft {
		left = met.CheckColumn
		if met.IconSize > left {
			left = met.IconSize
		}
	}
	accelSpace := 0
	if maxAccel > 0 {
		accelSpace = met.AcceleratorGap + maxAccel
	}
	right := 0
	if hasArrow {
		right = met.ArrowColumn
	}

	maxLabel := 0
	for _, row := range rows {
		if row.labelW > maxLabel {
			maxLabel = row.labelW
		}
	}
	width := met.ItemHorizontalPadding + left + maxLabel + accelSpace + right + met.ItemHorizontalPadding
	if width < met.MinItemWidth {
		width = met.MinItemWidth
	}

	g.CheckX = met.ItemHorizontalPadding
	g.CheckW = left
	g.LabelX = g.CheckX + left
	g.ArrowW = right
	g.ArrowX = width - met.ItemHorizontalPadding - right
	g.AccelW = maxAccel
	g.AccelX = g.ArrowX - maxAccel

	inset := met.BorderSize
	x := inset + met.HorizontalPadding
	y := inset + met.VerticalPadding
	g.Boxes = make([]Box, len(rows))
	for i, row := range rows {
		g.Boxes[i] = Box{Item: row.item, Rect: geom.Rect{X: x, Y: y, W: width, H: row.height}}
		y += row.height
	}
	g.Size = geom.Size{
		W: width + 2*met.HorizontalPadding + 2*inset,
		H: y + met.VerticalPadding + inset,
	}
	return g, nil
}
