package state

import (
	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/layout"
	"github.com/atomicstack/popup-menu/internal/menu"
)

// Level is one open menu window: its laid-out items, where it sits on
// screen and which item is highlighted.
type Level struct {
	ID         string
	Depth      int
	Menu       *menu.Menu
	Trigger    *menu.Item
	Items      []*menu.Item
	Geometry   layout.Geometry
	Bounds     geom.Rect
	Cursor     int
	LastCursor int

	typeAhead typeAhead
}

// NewLevel builds a level from a computed geometry. Items follow the
// geometry's boxes so that cursor indexes and box indexes agree.
func NewLevel(id string, m *menu.Menu, g layout.Geometry, bounds geom.Rect) *Level {
	items := make([]*menu.Item, len(g.Boxes))
	for i, b := range g.Boxes {
		items[i] = b.Item
	}
	return &Level{
		ID:         id,
		Depth:      m.Depth(),
		Menu:       m,
		Trigger:    m.Parent(),
		Items:      items,
		Geometry:   g,
		Bounds:     bounds,
		Cursor:     -1,
		LastCursor: -1,
	}
}

// IndexOf returns the position of the item with the given id, or -1.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, it := range l.Items {
		if it.ID() == id {
			return i
		}
	}
	return -1
}

// Highlighted returns the item under the cursor, or nil.
func (l *Level) Highlighted() *menu.Item {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return nil
	}
	return l.Items[l.Cursor]
}

// ItemAt maps a screen point to an item index, or -1.
func (l *Level) ItemAt(p geom.Point) int {
	if !l.Bounds.Contains(p) {
		return -1
	}
	return l.Geometry.ItemAt(p.Sub(l.Bounds.Origin()))
}

// ItemRect returns the screen rectangle of item i.
func (l *Level) ItemRect(i int) geom.Rect {
	if i < 0 || i >= len(l.Geometry.Boxes) {
		return geom.Rect{}
	}
	return l.Geometry.Boxes[i].Rect.Translate(l.Bounds.Origin())
}
