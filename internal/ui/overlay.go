package ui

import (
	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/layout"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/render"
	uistate "github.com/atomicstack/popup-menu/internal/ui/state"
)

// openWindow creates, paints and shows the overlay for m and pushes it onto
// the level stack.
func (c *Controller) openWindow(m *menu.Menu, g layout.Geometry, bounds geom.Rect) (*window, error) {
	overlay, err := c.host.CreateOverlay(bounds)
	if err != nil {
		return nil, err
	}
	id := "root"
	if trigger := m.Parent(); trigger != nil {
		id = trigger.ID()
	}
	w := &window{Level: uistate.NewLevel(id, m, g, bounds), overlay: overlay}
	depth := len(c.inv.stack)
	w.Depth = depth
	events.Overlay.Create(depth, bounds.X, bounds.Y, bounds.W, bounds.H)
	c.paint(w)
	if err := overlay.Show(); err != nil {
		overlay.Destroy()
		events.Overlay.Destroy(depth)
		return nil, err
	}
	c.inv.stack = append(c.inv.stack, w)
	return w, nil
}

// closeFrom destroys the levels at depth and deeper, innermost first.
func (c *Controller) closeFrom(depth int) {
	inv := c.inv
	if inv == nil || depth < 0 || depth >= len(inv.stack) {
		return
	}
	for d := len(inv.stack) - 1; d >= depth; d-- {
		inv.stack[d].overlay.Destroy()
		events.Overlay.Destroy(d)
		if d > 0 {
			events.Submenu.Close(d)
		}
	}
	inv.stack = inv.stack[:depth]
	if inv.timer != nil && inv.timer.depth >= depth {
		c.cancelTimer()
	}
}

func (c *Controller) paint(w *window) {
	err := render.Paint(w.overlay.Surface(), render.Frame{
		Geometry:    w.Geometry,
		Theme:       c.inv.theme,
		Highlighted: w.Cursor,
	})
	if err != nil {
		events.Overlay.PaintError(w.Depth, err)
	}
	w.overlay.Present()
}

func (c *Controller) repaintAll() {
	for _, w := range c.inv.stack {
		c.paint(w)
	}
}

// openSubmenu opens the submenu of item index at depth, replacing any
// deeper levels. With highlightFirst the new level starts on its first
// selectable item, as keyboard navigation expects.
func (c *Controller) openSubmenu(depth, index int, highlightFirst bool) bool {
	inv := c.inv
	if depth < 0 || depth >= len(inv.stack) {
		return false
	}
	parent := inv.stack[depth]
	if index < 0 || index >= len(parent.Items) {
		return false
	}
	it := parent.Items[index]
	sub := it.Submenu()
	if it.Kind() != menu.KindSubmenu || !it.Selectable() || sub == nil || len(sub.Visible()) == 0 {
		return false
	}
	if depth+1 < len(inv.stack) && inv.stack[depth+1].Menu == sub {
		// already open; only the highlight may need to move
		c.closeFrom(depth + 2)
		if highlightFirst && inv.stack[depth+1].MoveCursorHome() {
			c.paint(inv.stack[depth+1])
		}
		return true
	}
	c.closeFrom(depth + 1)
	if parent.SetCursor(index) {
		c.paint(parent)
	}

	g, err := c.engine.Compute(sub, inv.theme)
	if err != nil {
		events.Popup.Error(inv.id, err)
		return false
	}
	itemRect := parent.ItemRect(index)
	screen := c.host.ScreenBounds(itemRect.Origin())
	bounds, err := layout.PlaceSubmenu(parent.Bounds, itemRect, g.Size, screen, inv.theme.Metrics.SubmenuOffset)
	if err != nil {
		events.Popup.Error(inv.id, err)
		return false
	}
	w, err := c.openWindow(sub, g, bounds)
	if err != nil {
		events.Popup.Error(inv.id, &PresentationError{Op: "submenu", Err: err})
		return false
	}
	events.Submenu.Open(it.ID(), w.Depth, bounds.X, bounds.Y, bounds.W, bounds.H)
	if highlightFirst && w.MoveCursorHome() {
		c.paint(w)
	}
	return true
}
