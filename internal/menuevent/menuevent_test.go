package menuevent

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/popup-menu/internal/menu"
)

func TestReceiverDeliversOnce(t *testing.T) {
	c := NewCell("inv-1")
	r := NewReceiver(c)
	if _, ok := r.TryRecv(); ok {
		t.Fatalf("expected nothing before resolution")
	}
	if !c.Resolve(Selection("ignored", menu.Snapshot{ID: "a"})) {
		t.Fatalf("expected first resolve to win")
	}
	if c.Resolve(Cancellation("inv-1")) {
		t.Fatalf("expected second resolve to be a no-op")
	}
	ev, ok := r.TryRecv()
	if !ok || ev.Kind != Selected || ev.Item == nil || ev.Item.ID != "a" {
		t.Fatalf("unexpected event %+v ok=%v", ev, ok)
	}
	if ev.Invocation != "inv-1" {
		t.Fatalf("expected invocation id from the cell, got %q", ev.Invocation)
	}
	if _, ok := r.TryRecv(); ok {
		t.Fatalf("expected event to be delivered only once")
	}
}

func TestAwaitersObserveSameEvent(t *testing.T) {
	c := NewCell("inv-2")
	h := NewHandle(c)
	r := NewReceiver(c)

	const awaiters = 8
	results := make([]Event, awaiters)
	var wg sync.WaitGroup
	for i := 0; i < awaiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ev, err := h.Await(context.Background())
			if err != nil {
				t.Errorf("await: %v", err)
			}
			results[i] = ev
		}(i)
	}
	c.Resolve(Cancellation(""))
	wg.Wait()

	for i, ev := range results {
		if ev.Kind != Cancelled || ev.Item != nil || ev.Invocation != "inv-2" {
			t.Fatalf("awaiter %d saw %+v", i, ev)
		}
	}
	polled := 0
	for i := 0; i < 3; i++ {
		if _, ok := r.TryRecv(); ok {
			polled++
		}
	}
	if polled != 1 {
		t.Fatalf("expected the poller to see exactly one event, saw %d", polled)
	}
	select {
	case <-h.Done():
	default:
		t.Fatalf("expected done channel to be closed")
	}
}

func TestAwaitHonoursContext(t *testing.T) {
	h := NewHandle(NewCell("inv-3"))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := h.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestHandleReceiverSharesCell(t *testing.T) {
	c := NewCell("inv-4")
	h := NewHandle(c)
	r := h.Receiver()
	if r.ID() != h.ID() {
		t.Fatalf("expected receiver for the same invocation")
	}
	c.Resolve(Cancellation(""))
	if _, ok := r.TryRecv(); !ok {
		t.Fatalf("expected poller to get the event")
	}
	if _, ok := h.Receiver().TryRecv(); ok {
		t.Fatalf("expected a second poller to get nothing")
	}
	ev, err := h.Await(context.Background())
	if err != nil || ev.Kind != Cancelled {
		t.Fatalf("expected awaiters unaffected by polling, got %+v %v", ev, err)
	}
}
