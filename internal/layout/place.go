package layout

import (
	"errors"

	"github.com/atomicstack/popup-menu/internal/geom"
)

// ErrTooLarge is returned when a menu cannot fit the display at all.
var ErrTooLarge = errors.New("menu is larger than the display")

// Place positions a root menu at anchor. The natural spot is below and to
// the right of the anchor; an axis that would overflow flips to the other
// side of the anchor, and the result is clamped into bounds.
func Place(anchor geom.Point, size geom.Size, bounds geom.Rect) (geom.Rect, error) {
	if size.W > bounds.W || size.H > bounds.H {
		return geom.Rect{}, ErrTooLarge
	}
	x := anchor.X
	if x+size.W > bounds.Right() {
		x = anchor.X - size.W
	}
	y := anchor.Y
	if y+size.H > bounds.Bottom() {
		y = anchor.Y - size.H
	}
	return geom.Rect{
		X: clamp(x, bounds.X, bounds.Right()-size.W),
		Y: clamp(y, bounds.Y, bounds.Bottom()-size.H),
		W: size.W,
		H: size.H,
	}, nil
}

// PlaceSubmenu positions a submenu next to its parent menu. parent and item
// are screen rectangles of the parent menu and the triggering item. The
// submenu opens to the right when it fits there, otherwise on whichever side
// has more room; its top lines up with the item, or its bottom with the
// item's bottom when it would run off the display.
func PlaceSubmenu(parent, item geom.Rect, size geom.Size, bounds geom.Rect, offset int) (geom.Rect, error) {
	if size.W > bounds.W || size.H > bounds.H {
		return geom.Rect{}, ErrTooLarge
	}
	rightX := parent.Right() + offset
	leftX := parent.X - size.W - offset
	x := rightX
	if rightX+size.W > bounds.Right() {
		roomRight := bounds.Right() - rightX
		roomLeft := parent.X - offset - bounds.X
		if leftX >= bounds.X || roomLeft > roomRight {
			x = leftX
		}
	}
	y := item.Y
	if y+size.H > bounds.Bottom() {
		y = item.Bottom() - size.H
	}
	return geom.Rect{
		X: clamp(x, bounds.X, bounds.Right()-size.W),
		Y: clamp(y, bounds.Y, bounds.Bottom()-size.H),
		W: size.W,
		H: size.H,
	}, nil
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
