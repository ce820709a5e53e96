package ui

import (
	"time"

	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/platform"
)

// levelAt finds the innermost level containing p and the item under p in
// it. depth is -1 when p is outside every level.
func (c *Controller) levelAt(p geom.Point) (depth, index int) {
	stack := c.inv.stack
	for d := len(stack) - 1; d >= 0; d-- {
		if stack[d].Bounds.Contains(p) {
			return d, stack[d].ItemAt(p)
		}
	}
	return -1, -1
}

func (c *Controller) handlePointerMove(ev platform.Event) {
	msg := ev.(platform.PointerMove)
	depth, index := c.levelAt(msg.Pos)
	if depth < 0 {
		return
	}
	inv := c.inv
	w := inv.stack[depth]

	// entering a submenu keeps it, and its trigger, alive
	if t := inv.timer; t != nil && t.action == timerClose && depth >= t.depth {
		c.cancelTimer()
	}
	if depth > 0 {
		parent := inv.stack[depth-1]
		if parent.SetCursor(parent.IndexOf(w.Trigger.ID())) {
			c.paint(parent)
		}
	}

	if w.SetCursor(index) {
		events.UI.MenuCursor(w.ID, w.Cursor)
		c.paint(w)
	}

	it := w.Highlighted()
	hoverSubmenu := it != nil && it.Kind() == menu.KindSubmenu
	leaf := depth == len(inv.stack)-1
	switch {
	case !leaf && it != nil && it == inv.stack[depth+1].Trigger:
		c.cancelTimer()
	case hoverSubmenu:
		if t := inv.timer; t != nil && t.action == timerOpen && t.depth == depth && t.index == index {
			return
		}
		c.schedule(timerOpen, depth, index, c.opts.ShowDelay)
	case !leaf:
		if t := inv.timer; t != nil && t.action == timerClose && t.depth == depth+1 {
			return
		}
		c.schedule(timerClose, depth+1, -1, c.opts.HideDelay)
	default:
		c.cancelTimer()
	}
}

func (c *Controller) handlePointerDown(ev platform.Event) {
	msg := ev.(platform.PointerDown)
	depth, _ := c.levelAt(msg.Pos)
	if depth < 0 {
		c.finish(nil, events.DismissOutside)
		return
	}
	c.inv.armed = true
}

func (c *Controller) handlePointerUp(ev platform.Event) {
	msg := ev.(platform.PointerUp)
	if !c.inv.armed {
		events.Input.Ignored("platform.PointerUp", "not armed")
		return
	}
	c.inv.armed = false
	if msg.Button == platform.ButtonMiddle {
		events.Input.Ignored("platform.PointerUp", "middle button")
		return
	}
	depth, index := c.levelAt(msg.Pos)
	if depth < 0 || index < 0 {
		return
	}
	c.activate(depth, index)
}

func (c *Controller) handleWheel(platform.Event) {
	c.finish(nil, events.DismissWheel)
}

func (c *Controller) handleFocusLost(ev platform.Event) {
	msg := ev.(platform.FocusLost)
	if msg.Embedded && c.opts.EmbeddedSurface {
		events.Input.Ignored("platform.FocusLost", "embedded surface")
		return
	}
	c.finish(nil, events.DismissFocus)
}

func (c *Controller) handleTick(ev platform.Event) {
	msg := ev.(platform.Tick)
	now := msg.Now
	if now.IsZero() {
		now = c.opts.Clock()
	}
	t := c.inv.timer
	if t == nil || now.Before(t.deadline) {
		return
	}
	c.inv.timer = nil
	c.fire(t)
}

func (c *Controller) handleThemeChanged(platform.Event) {
	resolved := c.resolver.Resolve(c.root.Config())
	if resolved.Dark == c.inv.theme.Dark && resolved.Colors == c.inv.theme.Colors {
		return
	}
	// only colours change; the geometry of open levels stays valid
	c.inv.theme.Dark = resolved.Dark
	c.inv.theme.Colors = resolved.Colors
	events.Theme.Changed(resolved.Dark)
	c.repaintAll()
}

func (c *Controller) schedule(action timerAction, depth, index int, delay time.Duration) {
	itemID := ""
	if action == timerOpen {
		itemID = c.inv.stack[depth].Items[index].ID()
	}
	c.inv.timer = &pendingTimer{
		action:   action,
		depth:    depth,
		index:    index,
		deadline: c.opts.Clock().Add(delay),
	}
	events.Submenu.Schedule(action.String(), itemID, depth)
}

func (c *Controller) cancelTimer() {
	if t := c.inv.timer; t != nil {
		events.Submenu.Cancel(t.action.String(), t.depth)
		c.inv.timer = nil
	}
}

func (c *Controller) fire(t *pendingTimer) {
	switch t.action {
	case timerOpen:
		c.openSubmenu(t.depth, t.index, false)
	case timerClose:
		c.closeFrom(t.depth)
	}
}
