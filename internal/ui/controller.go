package ui

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/popup-menu/internal/accel"
	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/layout"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/menuevent"
	"github.com/atomicstack/popup-menu/internal/platform"
	"github.com/atomicstack/popup-menu/internal/theme"
	"github.com/atomicstack/popup-menu/internal/ui/command"
	uistate "github.com/atomicstack/popup-menu/internal/ui/state"
	"github.com/google/uuid"
)

// DefaultShowDelay is the hover time before a submenu opens.
const DefaultShowDelay = 400 * time.Millisecond

// ErrPopupOpen is returned when the menu is already shown by a popup.
var ErrPopupOpen = errors.New("popup already open")

// PresentationError reports that a popup could not be put on screen. The
// controller is back in PhaseClosed and the menu can be popped up again.
type PresentationError struct {
	Op  string
	Err error
}

func (e *PresentationError) Error() string {
	return fmt.Sprintf("present popup: %s: %v", e.Op, e.Err)
}

func (e *PresentationError) Unwrap() error { return e.Err }

// Phase is the controller's coarse state.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseOpenRoot
	PhaseOpenWithSubmenu
)

func (p Phase) String() string {
	switch p {
	case PhaseOpenRoot:
		return "open-root"
	case PhaseOpenWithSubmenu:
		return "open-with-submenu"
	default:
		return "closed"
	}
}

// Options tune a Controller.
type Options struct {
	// Accelerators in ModeCommand activate items from the keyboard; in
	// ModeDisplay they are drawn only.
	Accelerators accel.Mode
	// KeepOpenOnCheck applies checkbox toggles without closing the popup.
	KeepOpenOnCheck bool
	// EmbeddedSurface keeps the popup open when focus moves into a web
	// surface embedded in the host window.
	EmbeddedSurface bool
	ShowDelay       time.Duration
	// HideDelay defaults to ShowDelay minus 100ms.
	HideDelay time.Duration
	Clock     func() time.Time
}

func (o Options) withDefaults() Options {
	if o.ShowDelay <= 0 {
		o.ShowDelay = DefaultShowDelay
	}
	if o.HideDelay <= 0 {
		o.HideDelay = o.ShowDelay - 100*time.Millisecond
		if o.HideDelay <= 0 {
			o.HideDelay = o.ShowDelay
		}
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

type eventHandler func(platform.Event)

// window is an open level together with the overlay it is drawn in.
type window struct {
	*uistate.Level
	overlay platform.Overlay
}

type timerAction int

const (
	timerOpen timerAction = iota
	timerClose
)

func (a timerAction) String() string {
	if a == timerClose {
		return "close"
	}
	return "open"
}

// pendingTimer opens the submenu of item index at depth, or closes every
// level from depth down.
type pendingTimer struct {
	action   timerAction
	depth    int
	index    int
	deadline time.Time
}

// invocation is the state of one popup, from PopupAt to its terminal event.
type invocation struct {
	id    string
	theme theme.Theme
	stack []*window
	cell  *menuevent.Cell
	timer *pendingTimer
	// armed is set by a press inside a menu; only then does a release
	// activate.
	armed bool
}

// Controller shows a menu as a popup and runs its interaction state
// machine. All methods must be called from the host's UI goroutine.
type Controller struct {
	root     *menu.Menu
	host     platform.Host
	engine   *layout.Engine
	resolver *theme.Resolver
	matcher  *accel.Matcher
	bus      *command.Bus
	opts     Options

	handlers map[reflect.Type]eventHandler
	inv      *invocation
}

// New binds m to a host window. measurer sizes text in the host's drawing
// units; resolver may be nil to use the built-in defaults.
func New(m *menu.Menu, host platform.Host, measurer layout.TextMeasurer, resolver *theme.Resolver, opts Options) *Controller {
	if resolver == nil {
		resolver = theme.NewResolver(nil, nil)
	}
	opts = opts.withDefaults()
	c := &Controller{
		root:     m.Root(),
		host:     host,
		engine:   layout.New(measurer),
		resolver: resolver,
		matcher:  accel.NewMatcher(opts.Accelerators),
		bus:      command.New(),
		opts:     opts,
	}
	c.registerHandlers()
	return c
}

func (c *Controller) registerHandlers() {
	c.handlers = map[reflect.Type]eventHandler{
		reflect.TypeOf(platform.PointerMove{}):  c.handlePointerMove,
		reflect.TypeOf(platform.PointerDown{}):  c.handlePointerDown,
		reflect.TypeOf(platform.PointerUp{}):    c.handlePointerUp,
		reflect.TypeOf(platform.Wheel{}):        c.handleWheel,
		reflect.TypeOf(platform.Key{}):          c.handleKey,
		reflect.TypeOf(platform.FocusLost{}):    c.handleFocusLost,
		reflect.TypeOf(platform.Tick{}):         c.handleTick,
		reflect.TypeOf(platform.ThemeChanged{}): c.handleThemeChanged,
	}
}

// Menu returns the root menu the controller shows.
func (c *Controller) Menu() *menu.Menu { return c.root }

// PopupAt shows the menu with its corner at the screen point (x, y) and
// returns a receiver that yields the invocation's terminal event once.
func (c *Controller) PopupAt(x, y int) (*menuevent.Receiver, error) {
	cell, err := c.popup(x, y)
	if err != nil {
		return nil, err
	}
	return menuevent.NewReceiver(cell), nil
}

// PopupAtAsync is PopupAt with an awaitable handle.
func (c *Controller) PopupAtAsync(x, y int) (*menuevent.Handle, error) {
	cell, err := c.popup(x, y)
	if err != nil {
		return nil, err
	}
	return menuevent.NewHandle(cell), nil
}

func (c *Controller) popup(x, y int) (*menuevent.Cell, error) {
	if c.inv != nil || !c.root.Acquire() {
		events.Popup.Rejected(ErrPopupOpen.Error())
		return nil, ErrPopupOpen
	}
	id := uuid.NewString()
	c.inv = &invocation{
		id:    id,
		theme: c.resolver.Resolve(c.root.Config()),
		cell:  menuevent.NewCell(id),
	}

	anchor := geom.Point{X: x, Y: y}
	g, err := c.engine.Compute(c.root, c.inv.theme)
	if err != nil {
		return nil, c.abort("layout", err)
	}
	bounds, err := layout.Place(anchor, g.Size, c.host.ScreenBounds(anchor))
	if err != nil {
		return nil, c.abort("place", err)
	}
	if _, err := c.openWindow(c.root, g, bounds); err != nil {
		return nil, c.abort("overlay", err)
	}
	c.host.Capture(true)
	events.Popup.Open(id, bounds.X, bounds.Y, bounds.W, bounds.H, c.inv.theme.Dark)
	return c.inv.cell, nil
}

// abort unwinds a popup that failed before it was shown.
func (c *Controller) abort(op string, err error) error {
	perr := &PresentationError{Op: op, Err: err}
	if c.inv != nil {
		events.Popup.Error(c.inv.id, perr)
		c.closeFrom(0)
	}
	c.inv = nil
	c.matcher.Reset()
	c.root.Release()
	return perr
}

// HandleEvent feeds one host event to the state machine. Events that do not
// apply are traced and dropped.
func (c *Controller) HandleEvent(ev platform.Event) {
	name := fmt.Sprintf("%T", ev)
	if c.inv == nil {
		events.Input.Ignored(name, "closed")
		return
	}
	h, ok := c.handlers[reflect.TypeOf(ev)]
	if !ok {
		events.Input.Ignored(name, "unhandled")
		return
	}
	h(ev)
}

// Teardown ends an open popup with a cancellation, for hosts that are
// going away.
func (c *Controller) Teardown() {
	c.finish(nil, events.DismissTeardown)
}

// State returns the phase and the depth of the innermost open level, or -1
// when closed.
func (c *Controller) State() (Phase, int) {
	if c.inv == nil || len(c.inv.stack) == 0 {
		return PhaseClosed, -1
	}
	depth := len(c.inv.stack) - 1
	if depth == 0 {
		return PhaseOpenRoot, 0
	}
	return PhaseOpenWithSubmenu, depth
}

// NextDeadline reports when the host should deliver the next Tick.
func (c *Controller) NextDeadline() (time.Time, bool) {
	if c.inv == nil || c.inv.timer == nil {
		return time.Time{}, false
	}
	return c.inv.timer.deadline, true
}

// Highlighted returns the highlighted item of the level at depth, or nil.
func (c *Controller) Highlighted(depth int) *menu.Item {
	if c.inv == nil || depth < 0 || depth >= len(c.inv.stack) {
		return nil
	}
	return c.inv.stack[depth].Highlighted()
}

// Theme returns the theme of the open popup.
func (c *Controller) Theme() (theme.Theme, bool) {
	if c.inv == nil {
		return theme.Theme{}, false
	}
	return c.inv.theme, true
}

// finish closes every level and publishes the terminal event. A nil item
// means the popup was dismissed for reason.
func (c *Controller) finish(selected *menu.Item, reason events.DismissReason) {
	inv := c.inv
	if inv == nil {
		return
	}
	c.closeFrom(0)
	c.host.Capture(false)
	c.inv = nil
	c.matcher.Reset()
	c.root.Release()

	if selected == nil {
		events.Popup.Dismissed(inv.id, reason)
		inv.cell.Resolve(menuevent.Cancellation(inv.id))
		return
	}
	snap := c.bus.Apply(command.Request{Invocation: inv.id, Item: selected})
	events.Popup.Selected(inv.id, snap.ID)
	inv.cell.Resolve(menuevent.Selection(inv.id, snap))
}
