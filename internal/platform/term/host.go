// Package term hosts popup menus in a terminal. Overlays are cell buffers
// composited over the host view, and a Bubble Tea model pumps terminal
// input into the interaction controller.
package term

import (
	"fmt"

	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/platform"
	"github.com/atomicstack/popup-menu/internal/render"
	"github.com/atomicstack/popup-menu/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// Family is the only font family a terminal can draw.
const Family = "monospace"

// Metrics are the theme spacing values in terminal cells.
func Metrics() theme.Metrics {
	return theme.Metrics{
		BorderSize:            1,
		ItemHorizontalPadding: 1,
		SeparatorSize:         1,
		CheckColumn:           2,
		IconSize:              1,
		ArrowColumn:           2,
		AcceleratorGap:        2,
		MinRowHeight:          1,
		MinItemWidth:          4,
	}
}

// Host is a terminal screen that menus pop up over.
type Host struct {
	screen   geom.Rect
	dark     bool
	captured bool
	overlays []*Overlay
}

// NewHost returns a host for a w×h terminal.
func NewHost(w, h int, dark bool) *Host {
	return &Host{screen: geom.Rect{W: w, H: h}, dark: dark}
}

// Resize updates the screen size. Open overlays keep their position.
func (h *Host) Resize(w, ht int) {
	h.screen = geom.Rect{W: w, H: ht}
}

func (h *Host) CreateOverlay(bounds geom.Rect) (platform.Overlay, error) {
	if bounds.Empty() {
		return nil, fmt.Errorf("create overlay: empty bounds %+v", bounds)
	}
	o := &Overlay{host: h, bounds: bounds, back: NewBuffer(bounds.W, bounds.H)}
	h.overlays = append(h.overlays, o)
	return o, nil
}

func (h *Host) ScreenBounds(geom.Point) geom.Rect { return h.screen }

func (h *Host) Capture(on bool) { h.captured = on }

func (h *Host) Captured() bool { return h.captured }

// MeasureText implements layout.TextMeasurer in cells.
func (h *Host) MeasureText(text string, _ theme.Font) geom.Size {
	return geom.Size{W: ansi.StringWidth(text), H: 1}
}

// IsDark implements theme.SystemTheme.
func (h *Host) IsDark() bool { return h.dark }

// SetDark records a system theme switch. It reports whether it changed.
func (h *Host) SetDark(dark bool) bool {
	changed := h.dark != dark
	h.dark = dark
	return changed
}

func (h *Host) HasFamily(family string) bool { return family == Family }

func (h *Host) DefaultFamily() string { return Family }

// Overlays returns the live overlays in creation order.
func (h *Host) Overlays() []*Overlay {
	out := make([]*Overlay, len(h.overlays))
	copy(out, h.overlays)
	return out
}

// Compose draws every shown overlay over base, oldest first.
func (h *Host) Compose(base *Buffer) {
	for _, o := range h.overlays {
		if o.shown && o.front != nil {
			base.Blit(o.front, o.bounds.Origin())
		}
	}
}

func (h *Host) remove(o *Overlay) {
	for i, cur := range h.overlays {
		if cur == o {
			h.overlays = append(h.overlays[:i:i], h.overlays[i+1:]...)
			return
		}
	}
}

// Overlay is a popup drawn into its own cell buffer.
type Overlay struct {
	host      *Host
	bounds    geom.Rect
	back      *Buffer
	front     *Buffer
	shown     bool
	destroyed bool
}

func (o *Overlay) Bounds() geom.Rect { return o.bounds }

func (o *Overlay) Surface() render.Surface { return &surface{buf: o.back} }

func (o *Overlay) Show() error {
	if o.destroyed {
		return fmt.Errorf("show: overlay destroyed")
	}
	o.shown = true
	return nil
}

func (o *Overlay) Present() { o.front = o.back.Clone() }

func (o *Overlay) Destroy() {
	if o.destroyed {
		return
	}
	o.destroyed = true
	o.shown = false
	o.host.remove(o)
}

// Buffer returns the last presented frame.
func (o *Overlay) Buffer() *Buffer { return o.front }
