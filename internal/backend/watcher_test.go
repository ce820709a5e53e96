package backend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeSource struct {
	mu   sync.Mutex
	dark bool
	err  error
}

func (f *fakeSource) IsDark() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dark, f.err
}

func (f *fakeSource) set(dark bool, err error) {
	f.mu.Lock()
	f.dark, f.err = dark, err
	f.mu.Unlock()
}

func next(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed")
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for event")
	}
	return Event{}
}

func TestWatcherPublishesChanges(t *testing.T) {
	src := &fakeSource{}
	w := NewWatcher(src, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	time.Sleep(30 * time.Millisecond)
	src.set(true, nil)
	evt := next(t, w)
	if evt.Kind != KindTheme || !evt.Dark || evt.Err != nil {
		t.Fatalf("expected dark change event, got %+v", evt)
	}

	boom := errors.New("probe failed")
	src.set(true, boom)
	evt = next(t, w)
	if !errors.Is(evt.Err, boom) {
		t.Fatalf("expected probe error, got %+v", evt)
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	w := NewWatcher(ThemeSourceFunc(func() (bool, error) { return false, nil }), 5*time.Millisecond)
	w.Stop()
	w.Wait()
	for range w.Events() {
		t.Fatalf("expected no events without a change")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	ctx := context.Background()
	th := newThrottle(20 * time.Millisecond)
	start := time.Now()
	th.wait(ctx)
	th.wait(ctx)
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected second wait to be throttled, took %s", elapsed)
	}
	var nilThrottle *throttle
	if !nilThrottle.wait(ctx) {
		t.Fatalf("expected nil throttle not to block")
	}
}

func TestThrottleHonoursCancellation(t *testing.T) {
	th := newThrottle(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	th.wait(ctx)
	cancel()
	if th.wait(ctx) {
		t.Fatalf("expected cancelled wait to report false")
	}
}
