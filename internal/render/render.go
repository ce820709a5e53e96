// Package render paints a laid-out menu level onto a drawing surface.
package render

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/layout"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/theme"
)

// Align positions text inside its rectangle.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Glyph names the marks a menu draws besides text and icons.
type Glyph int

const (
	GlyphCheck Glyph = iota
	GlyphRadio
	GlyphSubmenu
)

// Surface is the drawing collaborator for one overlay window. Coordinates
// are local to the overlay.
type Surface interface {
	FillRect(r geom.Rect, c theme.Color)
	StrokeRect(r geom.Rect, c theme.Color, width int)
	DrawLine(from, to geom.Point, c theme.Color, width int)
	DrawText(r geom.Rect, text string, font theme.Font, c theme.Color, align Align)
	DrawGlyph(r geom.Rect, g Glyph, c theme.Color)
	// DrawIcon draws the icon at ref. A non-nil tint recolours it.
	DrawIcon(r geom.Rect, ref string, tint *theme.Color) error
}

// Frame is everything needed to paint one level.
type Frame struct {
	Geometry    layout.Geometry
	Theme       theme.Theme
	Highlighted int
}

// IsSymbolic reports whether ref names an SVG icon meant to be recoloured
// with the text colour, e.g. "edit-copy-symbolic.svg".
func IsSymbolic(ref string) bool {
	base := filepath.Base(ref)
	if !strings.EqualFold(filepath.Ext(base), ".svg") {
		return false
	}
	return strings.Contains(strings.ToLower(base), "symbolic")
}

// Paint draws f onto s. Icon failures do not stop the pass; they are joined
// and returned at the end.
func Paint(s Surface, f Frame) error {
	t := f.Theme
	g := f.Geometry
	bounds := geom.Rect{W: g.Size.W, H: g.Size.H}

	s.FillRect(bounds, t.Colors.Background)
	if t.Metrics.BorderSize > 0 {
		s.StrokeRect(bounds, t.Colors.Border, t.Metrics.BorderSize)
	}

	var errs []error
	for i, box := range g.Boxes {
		if err := paintItem(s, f, box, i == f.Highlighted); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func paintItem(s Surface, f Frame, box layout.Box, highlighted bool) error {
	t := f.Theme
	g := f.Geometry
	it := box.Item
	r := box.Rect

	if it.IsSeparator() {
		mid := r.Y + r.H/2
		s.DrawLine(
			geom.Point{X: r.X + t.Metrics.ItemHorizontalPadding, Y: mid},
			geom.Point{X: r.Right() - t.Metrics.ItemHorizontalPadding, Y: mid},
			t.Colors.Separator,
			max(t.Metrics.SeparatorSize, 1),
		)
		return nil
	}

	if highlighted && it.Enabled() {
		s.FillRect(r, t.Colors.Highlight)
	}

	text := t.Colors.Text
	accel := t.Colors.Accelerator
	if !it.Enabled() {
		text = t.Colors.Disabled
		accel = t.Colors.Disabled
	}

	var err error
	// check marks and icons share the left column; a mark replaces the icon
	// while the item is checked
	left := geom.Rect{X: r.X + g.CheckX, Y: r.Y, W: g.CheckW, H: r.H}
	switch {
	case it.Kind() == menu.KindCheckbox && it.Checked():
		s.DrawGlyph(left, GlyphCheck, text)
	case it.Kind() == menu.KindRadio && it.Checked():
		s.DrawGlyph(left, GlyphRadio, text)
	case it.Icon() != "" && g.CheckW > 0:
		var tint *theme.Color
		if IsSymbolic(it.Icon()) {
			tint = &text
		}
		err = s.DrawIcon(iconRect(left, t.Metrics.IconSize), it.Icon(), tint)
	}

	labelEnd := r.X + g.AccelX
	if g.AccelW == 0 {
		labelEnd = r.X + g.ArrowX
	}
	s.DrawText(geom.Rect{X: r.X + g.LabelX, Y: r.Y, W: labelEnd - (r.X + g.LabelX), H: r.H}, it.Label(), t.Font, text, AlignLeft)

	if acc := it.Accelerator(); acc != "" && g.AccelW > 0 {
		s.DrawText(geom.Rect{X: r.X + g.AccelX, Y: r.Y, W: g.AccelW, H: r.H}, acc, t.Font, accel, AlignRight)
	}
	if it.Kind() == menu.KindSubmenu && g.ArrowW > 0 {
		s.DrawGlyph(geom.Rect{X: r.X + g.ArrowX, Y: r.Y, W: g.ArrowW, H: r.H}, GlyphSubmenu, text)
	}
	return err
}

// iconRect centres a size×size square inside column.
func iconRect(column geom.Rect, size int) geom.Rect {
	if size <= 0 || size > column.W || size > column.H {
		return column
	}
	return geom.Rect{
		X: column.X + (column.W-size)/2,
		Y: column.Y + (column.H-size)/2,
		W: size,
		H: size,
	}
}
