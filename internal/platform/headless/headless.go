// Package headless is an in-memory windowing backend. Overlays record the
// drawing operations they receive instead of producing pixels, which makes
// the backend suitable for tests and for hosts without a display.
package headless

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/platform"
	"github.com/atomicstack/popup-menu/internal/render"
	"github.com/atomicstack/popup-menu/internal/theme"
)

// ErrMissingIcon is returned by DrawIcon for references listed in
// Host.MissingIcons.
var ErrMissingIcon = errors.New("icon not found")

// Host is a fake host window with a single display.
type Host struct {
	Screen     geom.Rect
	CharWidth  int
	LineHeight int
	Dark       bool
	Families   map[string]bool
	// FailCreate, when set, is consulted before every overlay creation;
	// n counts successful and failed attempts starting at 1.
	FailCreate   func(n int, bounds geom.Rect) error
	MissingIcons map[string]bool

	attempts int
	captured bool
	overlays []*Overlay
}

// New returns a host with the given display bounds, 7-unit glyphs and a
// 16-unit line height.
func New(screen geom.Rect) *Host {
	return &Host{Screen: screen, CharWidth: 7, LineHeight: 16}
}

func (h *Host) CreateOverlay(bounds geom.Rect) (platform.Overlay, error) {
	h.attempts++
	if h.FailCreate != nil {
		if err := h.FailCreate(h.attempts, bounds); err != nil {
			return nil, err
		}
	}
	if bounds.Empty() {
		return nil, fmt.Errorf("create overlay: empty bounds %+v", bounds)
	}
	o := &Overlay{host: h, bounds: bounds}
	h.overlays = append(h.overlays, o)
	return o, nil
}

func (h *Host) ScreenBounds(geom.Point) geom.Rect { return h.Screen }

func (h *Host) Capture(on bool) { h.captured = on }

// Captured reports whether input is currently captured by a menu.
func (h *Host) Captured() bool { return h.captured }

// Overlays returns the live overlays in creation order.
func (h *Host) Overlays() []*Overlay {
	out := make([]*Overlay, len(h.overlays))
	copy(out, h.overlays)
	return out
}

// MeasureText implements layout.TextMeasurer.
func (h *Host) MeasureText(text string, _ theme.Font) geom.Size {
	return geom.Size{W: h.CharWidth * utf8.RuneCountInString(text), H: h.LineHeight}
}

// IsDark implements theme.SystemTheme.
func (h *Host) IsDark() bool { return h.Dark }

// HasFamily implements theme.FontCatalog. A nil family set accepts all.
func (h *Host) HasFamily(family string) bool {
	return h.Families == nil || h.Families[family]
}

func (h *Host) DefaultFamily() string { return "sans-serif" }

func (h *Host) remove(o *Overlay) {
	for i, cur := range h.overlays {
		if cur == o {
			h.overlays = append(h.overlays[:i:i], h.overlays[i+1:]...)
			return
		}
	}
}

// Overlay records drawing operations. Present moves the pending operations
// into the visible frame.
type Overlay struct {
	host      *Host
	bounds    geom.Rect
	shown     bool
	destroyed bool
	pending   []string
	frame     []string
	presents  int
}

func (o *Overlay) Bounds() geom.Rect { return o.bounds }

func (o *Overlay) Surface() render.Surface { return (*surface)(o) }

func (o *Overlay) Show() error {
	if o.destroyed {
		return errors.New("show: overlay destroyed")
	}
	o.shown = true
	return nil
}

func (o *Overlay) Present() {
	o.frame = o.pending
	o.pending = nil
	o.presents++
}

func (o *Overlay) Destroy() {
	if o.destroyed {
		return
	}
	o.destroyed = true
	o.shown = false
	o.host.remove(o)
}

func (o *Overlay) Shown() bool     { return o.shown }
func (o *Overlay) Destroyed() bool { return o.destroyed }
func (o *Overlay) Presents() int   { return o.presents }

// Frame returns the operations of the last presented paint.
func (o *Overlay) Frame() []string {
	out := make([]string, len(o.frame))
	copy(out, o.frame)
	return out
}

type surface Overlay

func (s *surface) record(format string, args ...interface{}) {
	s.pending = append(s.pending, fmt.Sprintf(format, args...))
}

func rect(r geom.Rect) string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.W, r.H)
}

func (s *surface) FillRect(r geom.Rect, c theme.Color) {
	s.record("fill %s %s", rect(r), c)
}

func (s *surface) StrokeRect(r geom.Rect, c theme.Color, width int) {
	s.record("stroke %s %s w%d", rect(r), c, width)
}

func (s *surface) DrawLine(from, to geom.Point, c theme.Color, width int) {
	s.record("line %d,%d-%d,%d %s w%d", from.X, from.Y, to.X, to.Y, c, width)
}

func (s *surface) DrawText(r geom.Rect, text string, _ theme.Font, c theme.Color, align render.Align) {
	side := "left"
	if align == render.AlignRight {
		side = "right"
	}
	s.record("text %s %s %q %s", rect(r), side, text, c)
}

func (s *surface) DrawGlyph(r geom.Rect, g render.Glyph, c theme.Color) {
	name := "check"
	switch g {
	case render.GlyphRadio:
		name = "radio"
	case render.GlyphSubmenu:
		name = "submenu"
	}
	s.record("glyph %s %s %s", name, rect(r), c)
}

func (s *surface) DrawIcon(r geom.Rect, ref string, tint *theme.Color) error {
	if s.host.MissingIcons[ref] {
		return fmt.Errorf("%w: %s", ErrMissingIcon, ref)
	}
	if tint != nil {
		s.record("icon %s %s tint %s", rect(r), ref, *tint)
	} else {
		s.record("icon %s %s", rect(r), ref)
	}
	return nil
}
