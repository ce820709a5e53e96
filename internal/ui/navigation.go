package ui

import (
	"unicode"

	"github.com/atomicstack/popup-menu/internal/accel"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/platform"
	"github.com/atomicstack/popup-menu/internal/ui/command"
)

func (c *Controller) leaf() *window {
	stack := c.inv.stack
	return stack[len(stack)-1]
}

func (c *Controller) handleKey(ev platform.Event) {
	msg := ev.(platform.Key)
	if msg.Chord.Mods == 0 && c.navigate(msg.Chord.Key) {
		return
	}
	if c.handleAccelerator(msg.Chord) {
		return
	}
	if c.handleTypeAhead(msg) {
		return
	}
	events.Input.Ignored("platform.Key", "unbound "+msg.Chord.String())
}

// navigate handles the unmodified navigation keys. It reports whether key
// was one of them.
func (c *Controller) navigate(key string) bool {
	w := c.leaf()
	switch key {
	case "Escape":
		c.finish(nil, events.DismissEscape)
	case "ArrowDown":
		c.moveCursor(w, w.MoveCursorDown)
	case "ArrowUp":
		c.moveCursor(w, w.MoveCursorUp)
	case "Home":
		c.moveCursor(w, w.MoveCursorHome)
	case "End":
		c.moveCursor(w, w.MoveCursorEnd)
	case "ArrowRight":
		if it := w.Highlighted(); it != nil && it.Kind() == menu.KindSubmenu {
			c.cancelTimer()
			c.openSubmenu(w.Depth, w.Cursor, true)
		}
	case "ArrowLeft":
		if w.Depth > 0 {
			c.closeFrom(w.Depth)
		}
	case "Enter", "Space":
		if w.Cursor >= 0 {
			c.activate(w.Depth, w.Cursor)
		}
	default:
		return false
	}
	return true
}

func (c *Controller) moveCursor(w *window, move func() bool) {
	if move() {
		events.UI.MenuCursor(w.ID, w.Cursor)
		c.paint(w)
	}
}

func (c *Controller) handleAccelerator(chord accel.Chord) bool {
	if c.matcher.Mode() != accel.ModeCommand {
		return false
	}
	levels := make([]*menu.Menu, len(c.inv.stack))
	for i, w := range c.inv.stack {
		levels[i] = w.Menu
	}
	it, depth, ok := c.matcher.Match(chord, levels)
	if !ok {
		return false
	}
	index := c.inv.stack[depth].IndexOf(it.ID())
	if index < 0 {
		return false
	}
	c.activate(depth, index)
	return true
}

func (c *Controller) handleTypeAhead(msg platform.Key) bool {
	if msg.Rune == 0 || !unicode.IsPrint(msg.Rune) || msg.Chord.Mods.Has(accel.ModCtrl) || msg.Chord.Mods.Has(accel.ModAlt) {
		return false
	}
	w := c.leaf()
	query, moved := w.TypeAhead(msg.Rune, c.opts.Clock())
	events.UI.TypeAhead(w.ID, query, w.Cursor)
	if moved {
		c.paint(w)
	}
	return true
}

// activate runs item index of the level at depth: submenus open, leaves end
// the popup with a selection. Disabled items and separators do nothing.
func (c *Controller) activate(depth, index int) {
	w := c.inv.stack[depth]
	if index < 0 || index >= len(w.Items) {
		return
	}
	it := w.Items[index]
	if !it.Selectable() {
		events.Input.Ignored("activate", "item not selectable")
		return
	}
	if it.Kind() == menu.KindSubmenu {
		c.cancelTimer()
		c.openSubmenu(depth, index, true)
		return
	}
	events.UI.MenuEnter(w.ID, it.ID(), it.Label())
	if it.Kind() == menu.KindCheckbox && c.opts.KeepOpenOnCheck {
		c.bus.Apply(command.Request{Invocation: c.inv.id, Item: it})
		w.SetCursor(index)
		c.paint(w)
		return
	}
	c.finish(it, "")
}
