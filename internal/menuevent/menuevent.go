// Package menuevent delivers the single terminal event of a popup
// invocation, either to a polling caller or to any number of awaiters.
package menuevent

import (
	"context"
	"sync"

	"github.com/atomicstack/popup-menu/internal/menu"
)

// Kind distinguishes the two ways a popup ends.
type Kind int

const (
	Selected Kind = iota
	Cancelled
)

func (k Kind) String() string {
	if k == Cancelled {
		return "cancelled"
	}
	return "selected"
}

// Event is the outcome of one invocation. Item is the state of the
// activated item after its side effect was applied; it is nil for
// cancellations.
type Event struct {
	Kind       Kind
	Item       *menu.Snapshot
	Invocation string
}

// Selection builds a Selected event.
func Selection(invocation string, item menu.Snapshot) Event {
	return Event{Kind: Selected, Item: &item, Invocation: invocation}
}

// Cancellation builds a Cancelled event.
func Cancellation(invocation string) Event {
	return Event{Kind: Cancelled, Invocation: invocation}
}

// Cell holds the event of one invocation. It is resolved at most once.
type Cell struct {
	id   string
	once sync.Once
	done chan struct{}

	mu    sync.Mutex
	ev    Event
	taken bool
}

func NewCell(invocation string) *Cell {
	return &Cell{id: invocation, done: make(chan struct{})}
}

// ID returns the invocation id.
func (c *Cell) ID() string { return c.id }

// Resolve stores ev and wakes every awaiter. It reports whether this call
// resolved the cell; later calls are no-ops.
func (c *Cell) Resolve(ev Event) bool {
	resolved := false
	c.once.Do(func() {
		ev.Invocation = c.id
		c.mu.Lock()
		c.ev = ev
		c.mu.Unlock()
		close(c.done)
		resolved = true
	})
	return resolved
}

// Done is closed once the cell is resolved.
func (c *Cell) Done() <-chan struct{} { return c.done }

// Resolved reports whether Resolve has run.
func (c *Cell) Resolved() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Cell) event() Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ev
}

// take hands the event out to the first poll after resolution.
func (c *Cell) take() (Event, bool) {
	if !c.Resolved() {
		return Event{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.taken {
		return Event{}, false
	}
	c.taken = true
	return c.ev, true
}

// Receiver is the polling side of a cell.
type Receiver struct {
	cell *Cell
}

func NewReceiver(c *Cell) *Receiver { return &Receiver{cell: c} }

// TryRecv never blocks. It returns the event exactly once: on the first
// call made after the invocation ended.
func (r *Receiver) TryRecv() (Event, bool) {
	return r.cell.take()
}

// ID returns the invocation id.
func (r *Receiver) ID() string { return r.cell.id }

// Handle is the awaitable side of a cell. Every awaiter sees the same event.
type Handle struct {
	cell *Cell
}

func NewHandle(c *Cell) *Handle { return &Handle{cell: c} }

func (h *Handle) ID() string { return h.cell.id }

// Receiver returns a poller over the same invocation, for hosts that poll
// while other goroutines await.
func (h *Handle) Receiver() *Receiver { return NewReceiver(h.cell) }

// Done is closed when the invocation has ended.
func (h *Handle) Done() <-chan struct{} { return h.cell.done }

// Await blocks until the invocation ends or ctx is cancelled. It must not be
// called from the goroutine that drives the controller.
func (h *Handle) Await(ctx context.Context) (Event, error) {
	select {
	case <-h.cell.done:
		return h.cell.event(), nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}
