package events

import "github.com/atomicstack/popup-menu/internal/logging"

type PopupTracer struct{}

type OverlayTracer struct{}

type CommandTracer struct{}

type ThemeTracer struct{}

// DismissReason names what ended a popup without a selection.
type DismissReason string

const (
	DismissEscape      DismissReason = "escape"
	DismissOutside     DismissReason = "outside"
	DismissFocus       DismissReason = "focus"
	DismissWheel       DismissReason = "wheel"
	DismissTeardown    DismissReason = "teardown"
	DismissPresentFail DismissReason = "presentation"
)

var (
	Popup   = PopupTracer{}
	Overlay = OverlayTracer{}
	Command = CommandTracer{}
	Theme   = ThemeTracer{}
)

func (PopupTracer) Open(invocation string, x, y, w, h int, dark bool) {
	logging.Trace("popup.open", map[string]interface{}{
		"invocation": invocation,
		"x":          x,
		"y":          y,
		"w":          w,
		"h":          h,
		"dark":       dark,
	})
}

func (PopupTracer) Rejected(reason string) {
	logging.Trace("popup.rejected", map[string]interface{}{"reason": reason})
}

func (PopupTracer) Selected(invocation, itemID string) {
	logging.Trace("popup.selected", map[string]interface{}{"invocation": invocation, "item": itemID})
}

func (PopupTracer) Dismissed(invocation string, reason DismissReason) {
	logging.Trace("popup.dismissed", map[string]interface{}{"invocation": invocation, "reason": string(reason)})
}

func (PopupTracer) Error(invocation string, err error) {
	if err == nil {
		return
	}
	logging.Trace("popup.error", map[string]interface{}{"invocation": invocation, "error": err.Error()})
}

func (OverlayTracer) Create(depth, x, y, w, h int) {
	logging.Trace("overlay.create", map[string]interface{}{"depth": depth, "x": x, "y": y, "w": w, "h": h})
}

func (OverlayTracer) Destroy(depth int) {
	logging.Trace("overlay.destroy", map[string]interface{}{"depth": depth})
}

func (OverlayTracer) PaintError(depth int, err error) {
	logging.Trace("overlay.paint-error", map[string]interface{}{"depth": depth, "error": err.Error()})
}

func (CommandTracer) Queue(invocation, itemID string) {
	logging.Trace("command.queue", map[string]interface{}{"invocation": invocation, "item": itemID})
}

func (CommandTracer) Skip(invocation, itemID string) {
	logging.Trace("command.skip", map[string]interface{}{"invocation": invocation, "item": itemID})
}

func (CommandTracer) Result(invocation, itemID string, checked bool) {
	logging.Trace("command.result", map[string]interface{}{"invocation": invocation, "item": itemID, "checked": checked})
}

func (ThemeTracer) Resolve(mode string, dark bool, family string) {
	logging.Trace("theme.resolve", map[string]interface{}{"mode": mode, "dark": dark, "family": family})
}

func (ThemeTracer) Changed(dark bool) {
	logging.Trace("theme.changed", map[string]interface{}{"dark": dark})
}

func (ThemeTracer) WatchError(err error) {
	if err == nil {
		return
	}
	logging.Trace("theme.watch-error", map[string]interface{}{"error": err.Error()})
}
