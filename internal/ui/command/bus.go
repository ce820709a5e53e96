package command

import (
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
)

// Request is the activation of one item during an invocation.
type Request struct {
	Invocation string
	Item       *menu.Item
}

// Bus applies activation side effects to the menu tree.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Apply runs the item's side effect (checkbox flip, radio group check) and
// returns the item's state afterwards. Items without a side effect are
// reported unchanged.
func (b *Bus) Apply(req Request) menu.Snapshot {
	id := req.Item.ID()
	events.Command.Queue(req.Invocation, id)
	switch req.Item.Kind() {
	case menu.KindCheckbox, menu.KindRadio:
		req.Item.Menu().Toggle(req.Item)
		events.Command.Result(req.Invocation, id, req.Item.Checked())
	default:
		events.Command.Skip(req.Invocation, id)
	}
	return req.Item.Snapshot()
}
