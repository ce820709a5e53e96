package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/popup-menu/internal/logging/events"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindTheme Kind = iota
)

// Event conveys a changed system setting or a probe error.
type Event struct {
	Kind Kind
	Dark bool
	Err  error
}

// ThemeSource reports the system's light/dark preference.
type ThemeSource interface {
	IsDark() (bool, error)
}

// ThemeSourceFunc adapts a function to ThemeSource.
type ThemeSourceFunc func() (bool, error)

func (f ThemeSourceFunc) IsDark() (bool, error) { return f() }

// Watcher polls the system theme at a fixed interval and publishes an event
// whenever the preference changes.
type Watcher struct {
	source   ThemeSource
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts polling source every interval. The first probe only
// records the initial preference.
func NewWatcher(source ThemeSource, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startThemePoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current probe
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startThemePoller() {
	throttle := newThrottle(w.interval / 2)
	var (
		known bool
		last  bool
	)
	w.wg.Add(1)
	go w.poll(KindTheme, func(ctx context.Context) (Event, bool) {
		if !throttle.wait(ctx) {
			return Event{}, false
		}
		dark, err := w.source.IsDark()
		if err != nil {
			events.Theme.WatchError(err)
			return Event{Kind: KindTheme, Err: err}, true
		}
		changed := known && dark != last
		known, last = true, dark
		if changed {
			events.Theme.Changed(dark)
		}
		return Event{Kind: KindTheme, Dark: dark}, changed
	})
}

// poll runs probe immediately and then on every tick, publishing the events
// probe asks for.
func (w *Watcher) poll(kind Kind, probe func(context.Context) (Event, bool)) {
	defer w.wg.Done()

	emit := func() bool {
		evt, publish := probe(w.ctx)
		if !publish {
			return w.ctx.Err() == nil
		}
		evt.Kind = kind
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
