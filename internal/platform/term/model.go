package term

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/popup-menu/internal/backend"
	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/logging"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/menuevent"
	"github.com/atomicstack/popup-menu/internal/platform"
	"github.com/atomicstack/popup-menu/internal/theme"
	"github.com/atomicstack/popup-menu/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Options configure the terminal host model.
type Options struct {
	// PopupOnStart opens the menu at Anchor once the first window size is
	// known, so placement clamps against the real screen.
	PopupOnStart bool
	Anchor       geom.Point
	// OnHandle, when set, makes popups open asynchronously; it receives
	// each invocation's handle.
	OnHandle func(*menuevent.Handle)
	// QuitOnResult ends the program after the first terminal event.
	QuitOnResult bool
}

type msgHandler func(tea.Msg) tea.Cmd

type tickMsg struct {
	at time.Time
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

// Model implements the Bubble Tea model for the terminal menu host.
type Model struct {
	host     *Host
	ctrl     *ui.Controller
	resolver *theme.Resolver
	watcher  *backend.Watcher
	opts     Options
	keys     keyMap
	styles   *theme.Styles

	width   int
	height  int
	pointer geom.Point
	tickAt  time.Time
	sized   bool

	receiver *menuevent.Receiver
	handle   *menuevent.Handle
	last     *menuevent.Event
	errMsg   string

	handlers map[reflect.Type]msgHandler
}

// NewModel wires a controller bound to host into a Bubble Tea model. The
// watcher may be nil.
func NewModel(ctrl *ui.Controller, host *Host, resolver *theme.Resolver, watcher *backend.Watcher, opts Options) *Model {
	m := &Model{
		host:     host,
		ctrl:     ctrl,
		resolver: resolver,
		watcher:  watcher,
		opts:     opts,
		keys:     defaultKeyMap(),
		width:    host.screen.W,
		height:   host.screen.H,
		pointer:  opts.Anchor,
	}
	m.refreshStyles()
	m.registerHandlers()
	return m
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.BlurMsg{}):       m.handleBlurMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil {
		return nil
	}
	return m.handlers[reflect.TypeOf(msg)]
}

func (m *Model) refreshStyles() {
	m.styles = theme.NewStyles(m.resolver.Resolve(m.ctrl.Menu().Config()))
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitForBackendEvent(m.watcher)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 3)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) open() bool {
	phase, _ := m.ctrl.State()
	return phase != ui.PhaseClosed
}

// finishUpdate collects a finished invocation and keeps a tick scheduled for
// the controller's next timer.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if ev, ok := m.collect(); ok {
		m.last = &ev
		if m.opts.QuitOnResult {
			cmds = append(cmds, tea.Quit)
		}
	}
	if cmd := m.scheduleTick(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

func (m *Model) collect() (menuevent.Event, bool) {
	if m.receiver != nil {
		if ev, ok := m.receiver.TryRecv(); ok {
			m.receiver = nil
			return ev, true
		}
	}
	if m.handle != nil {
		select {
		case <-m.handle.Done():
			ev, err := m.handle.Await(context.Background())
			m.handle = nil
			return ev, err == nil
		default:
		}
	}
	return menuevent.Event{}, false
}

func (m *Model) scheduleTick() tea.Cmd {
	deadline, ok := m.ctrl.NextDeadline()
	if !ok || deadline.Equal(m.tickAt) {
		return nil
	}
	m.tickAt = deadline
	return tea.Tick(max(time.Until(deadline), 0), func(t time.Time) tea.Msg {
		return tickMsg{at: t}
	})
}

func (m *Model) popup(at geom.Point) {
	m.errMsg = ""
	if m.opts.OnHandle != nil {
		h, err := m.ctrl.PopupAtAsync(at.X, at.Y)
		if err != nil {
			m.fail(err)
			return
		}
		m.handle = h
		m.opts.OnHandle(h)
		return
	}
	rx, err := m.ctrl.PopupAt(at.X, at.Y)
	if err != nil {
		m.fail(err)
		return
	}
	m.receiver = rx
}

func (m *Model) fail(err error) {
	logging.Error(err)
	m.errMsg = err.Error()
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg := msg.(tea.KeyMsg)
	if m.open() {
		if key.Matches(keyMsg, m.keys.ForceQuit) {
			m.ctrl.Teardown()
			return tea.Quit
		}
		ev, ok := translateKey(keyMsg)
		if !ok {
			events.Input.Ignored("tea.KeyMsg", "untranslatable "+keyMsg.String())
			return nil
		}
		m.ctrl.HandleEvent(ev)
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Popup):
		m.popup(m.pointer)
	case key.Matches(keyMsg, m.keys.ToggleTheme):
		m.host.SetDark(!m.host.IsDark())
		m.refreshStyles()
	}
	return nil
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse := msg.(tea.MouseMsg)
	m.pointer = geom.Point{X: mouse.X, Y: mouse.Y}
	if !m.open() {
		if mouse.Action == tea.MouseActionPress && mouse.Button == tea.MouseButtonRight {
			m.popup(m.pointer)
		}
		return nil
	}
	if ev, ok := translateMouse(mouse); ok {
		m.ctrl.HandleEvent(ev)
	}
	return nil
}

func translateMouse(mouse tea.MouseMsg) (platform.Event, bool) {
	pos := geom.Point{X: mouse.X, Y: mouse.Y}
	switch mouse.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown, tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return platform.Wheel{Pos: pos}, true
	}
	button := platform.ButtonLeft
	switch mouse.Button {
	case tea.MouseButtonMiddle:
		button = platform.ButtonMiddle
	case tea.MouseButtonRight:
		button = platform.ButtonRight
	}
	switch mouse.Action {
	case tea.MouseActionMotion:
		return platform.PointerMove{Pos: pos}, true
	case tea.MouseActionPress:
		return platform.PointerDown{Pos: pos, Button: button}, true
	case tea.MouseActionRelease:
		// terminals rarely report which button was released
		return platform.PointerUp{Pos: pos, Button: button}, true
	}
	return nil, false
}

func (m *Model) handleBlurMsg(tea.Msg) tea.Cmd {
	if m.open() {
		m.ctrl.HandleEvent(platform.FocusLost{})
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size := msg.(tea.WindowSizeMsg)
	m.width, m.height = size.Width, size.Height
	m.host.Resize(size.Width, size.Height)
	if !m.sized {
		m.sized = true
		if m.opts.PopupOnStart {
			m.popup(m.opts.Anchor)
		}
	}
	return nil
}

func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	m.tickAt = time.Time{}
	if m.open() {
		m.ctrl.HandleEvent(platform.Tick{Now: msg.(tickMsg).at})
	}
	return nil
}

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	evt := msg.(backendEventMsg).event
	if evt.Err != nil {
		m.errMsg = evt.Err.Error()
	} else if evt.Kind == backend.KindTheme && m.host.SetDark(evt.Dark) {
		m.refreshStyles()
		if m.open() {
			m.ctrl.HandleEvent(platform.ThemeChanged{})
		}
	}
	if m.watcher != nil {
		return waitForBackendEvent(m.watcher)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

// Last returns the terminal event of the most recent popup.
func (m *Model) Last() (menuevent.Event, bool) {
	if m.last == nil {
		return menuevent.Event{}, false
	}
	return *m.last, true
}

// Status describes the most recent popup outcome.
func (m *Model) Status() string {
	if m.errMsg != "" {
		return "error: " + m.errMsg
	}
	if m.open() {
		return "menu open"
	}
	if m.last == nil {
		return "no selection yet"
	}
	return Describe(*m.last)
}

// Describe renders a terminal event for people.
func Describe(ev menuevent.Event) string {
	if ev.Kind == menuevent.Cancelled || ev.Item == nil {
		return "cancelled"
	}
	out := fmt.Sprintf("selected %q (%s)", ev.Item.Label, ev.Item.ID)
	if ev.Item.Kind == menu.KindCheckbox || ev.Item.Kind == menu.KindRadio {
		out += fmt.Sprintf(" checked=%v", ev.Item.Checked)
	}
	return out
}

// View implements tea.Model.
func (m *Model) View() string {
	w, h := m.width, m.height
	if w <= 0 || h <= 0 {
		return ""
	}
	base := NewBuffer(w, h)
	base.WriteString(0, 0, truncate.StringWithTail(m.keys.HelpLine(), uint(w), ellipsis), blank)
	if h > 1 {
		base.WriteString(0, h-1, truncate.StringWithTail(m.Status(), uint(w), ellipsis), blank)
	}
	m.host.Compose(base)
	return base.Render(func(y int) *lipgloss.Style {
		switch {
		case y == 0:
			return m.styles.Hint
		case y == h-1 && m.errMsg != "":
			return m.styles.Error
		case y == h-1:
			return m.styles.Status
		default:
			return m.styles.Desktop
		}
	})
}
