// Package platform declares the capability set the interaction controller
// needs from a windowing backend, and the input events backends deliver.
// Backends live in subpackages: headless (recording, in-memory) and term
// (a Bubble Tea terminal host).
package platform

import (
	"time"

	"github.com/atomicstack/popup-menu/internal/accel"
	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/render"
)

// Host is the host window a menu is anchored to.
type Host interface {
	// CreateOverlay creates a hidden popup window with the given screen
	// bounds.
	CreateOverlay(bounds geom.Rect) (Overlay, error)
	// ScreenBounds returns the usable area of the display containing p.
	ScreenBounds(p geom.Point) geom.Rect
	// Capture routes all pointer and keyboard input to the open menu while
	// on is true.
	Capture(on bool)
}

// Overlay is one popup window.
type Overlay interface {
	Bounds() geom.Rect
	Surface() render.Surface
	Show() error
	// Present flushes what was painted on the surface.
	Present()
	Destroy()
}

// Event is input delivered by the host's event pump.
type Event interface {
	event()
}

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// PointerMove carries the pointer position in screen coordinates.
type PointerMove struct {
	Pos geom.Point
}

// PointerDown is a button press at a screen position.
type PointerDown struct {
	Pos    geom.Point
	Button Button
}

// PointerUp is a button release at a screen position.
type PointerUp struct {
	Pos    geom.Point
	Button Button
}

// Wheel is a scroll-wheel notch.
type Wheel struct {
	Pos geom.Point
}

// Key is a key press. Rune is set for printable keys.
type Key struct {
	Chord accel.Chord
	Rune  rune
}

// FocusLost reports that the host window was deactivated. Embedded is set
// when focus moved into a web surface embedded in the host window itself.
type FocusLost struct {
	Embedded bool
}

// Tick advances timers.
type Tick struct {
	Now time.Time
}

// ThemeChanged reports a system light/dark switch.
type ThemeChanged struct{}

func (PointerMove) event()  {}
func (PointerDown) event()  {}
func (PointerUp) event()    {}
func (Wheel) event()        {}
func (Key) event()          {}
func (FocusLost) event()    {}
func (Tick) event()         {}
func (ThemeChanged) event() {}
