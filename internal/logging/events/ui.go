package events

import "github.com/atomicstack/popup-menu/internal/logging"

type UITracer struct{}

type SubmenuTracer struct{}

type InputTracer struct{}

type AcceleratorTracer struct{}

var (
	UI          = UITracer{}
	Submenu     = SubmenuTracer{}
	Input       = InputTracer{}
	Accelerator = AcceleratorTracer{}
)

func (UITracer) MenuCursor(levelID string, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"level": levelID, "cursor": cursor})
}

func (UITracer) MenuEnter(levelID, itemID, label string) {
	logging.Trace("menu.enter", map[string]interface{}{
		"level": levelID,
		"item":  itemID,
		"label": label,
	})
}

func (UITracer) TypeAhead(levelID, query string, cursor int) {
	logging.Trace("menu.typeahead", map[string]interface{}{"level": levelID, "query": query, "cursor": cursor})
}

func (SubmenuTracer) Schedule(action, itemID string, depth int) {
	logging.Trace("submenu.schedule", map[string]interface{}{"action": action, "item": itemID, "depth": depth})
}

func (SubmenuTracer) Cancel(action string, depth int) {
	logging.Trace("submenu.cancel", map[string]interface{}{"action": action, "depth": depth})
}

func (SubmenuTracer) Open(itemID string, depth int, x, y, w, h int) {
	logging.Trace("submenu.open", map[string]interface{}{
		"item":  itemID,
		"depth": depth,
		"x":     x,
		"y":     y,
		"w":     w,
		"h":     h,
	})
}

func (SubmenuTracer) Close(depth int) {
	logging.Trace("submenu.close", map[string]interface{}{"depth": depth})
}

// Ignored records an input event the controller dropped without a state change.
func (InputTracer) Ignored(eventType, reason string) {
	logging.Trace("input.ignored", map[string]interface{}{"type": eventType, "reason": reason})
}

func (AcceleratorTracer) Match(chord, itemID string, depth int) {
	logging.Trace("accelerator.match", map[string]interface{}{"chord": chord, "item": itemID, "depth": depth})
}

func (AcceleratorTracer) Invalid(itemID, text string, err error) {
	logging.Trace("accelerator.invalid", map[string]interface{}{"item": itemID, "text": text, "error": err.Error()})
}
