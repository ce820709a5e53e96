package ui

import (
	"time"

	"github.com/atomicstack/popup-menu/internal/accel"
	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/platform"
	"github.com/atomicstack/popup-menu/internal/platform/headless"
	"github.com/atomicstack/popup-menu/internal/theme"
)

// Harness drives a controller on a headless host with a manual clock, for
// integration tests.
type Harness struct {
	Host       *headless.Host
	Controller *Controller
	now        time.Time
}

// NewHarness creates a headless host of the given screen size and a
// controller for m. opts.Clock is replaced by the harness clock.
func NewHarness(m *menu.Menu, screen geom.Size, opts Options) *Harness {
	h := &Harness{
		Host: headless.New(geom.Rect{W: screen.W, H: screen.H}),
		now:  time.Unix(1_700_000_000, 0),
	}
	opts.Clock = h.Now
	h.Controller = New(m, h.Host, h.Host, theme.NewResolver(h.Host, h.Host), opts)
	return h
}

// Now returns the harness clock.
func (h *Harness) Now() time.Time { return h.now }

// Send routes an event through the controller.
func (h *Harness) Send(ev platform.Event) {
	h.Controller.HandleEvent(ev)
}

// Advance moves the clock forward and delivers a Tick, the way a host
// honouring NextDeadline would.
func (h *Harness) Advance(d time.Duration) {
	h.now = h.now.Add(d)
	h.Send(platform.Tick{Now: h.now})
}

// Move sends a pointer move to (x, y).
func (h *Harness) Move(x, y int) {
	h.Send(platform.PointerMove{Pos: geom.Point{X: x, Y: y}})
}

// Click presses and releases the left button at (x, y).
func (h *Harness) Click(x, y int) {
	p := geom.Point{X: x, Y: y}
	h.Send(platform.PointerMove{Pos: p})
	h.Send(platform.PointerDown{Pos: p, Button: platform.ButtonLeft})
	h.Send(platform.PointerUp{Pos: p, Button: platform.ButtonLeft})
}

// Press sends a key with no modifiers.
func (h *Harness) Press(key string) {
	h.Send(platform.Key{Chord: accel.Chord{Key: key}})
}

// Chord sends a key with modifiers.
func (h *Harness) Chord(mods accel.Modifier, key string) {
	h.Send(platform.Key{Chord: accel.Chord{Mods: mods, Key: key}})
}

// Type sends a printable key.
func (h *Harness) Type(r rune) {
	key, _ := accel.KeyName(string(r))
	h.Send(platform.Key{Chord: accel.Chord{Key: key}, Rune: r})
}

// Overlays returns the live overlays of the host.
func (h *Harness) Overlays() []*headless.Overlay {
	return h.Host.Overlays()
}
