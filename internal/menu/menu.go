package menu

import (
	"sync/atomic"

	"github.com/atomicstack/popup-menu/internal/theme"
)

// Kind distinguishes the item variants a menu can hold.
type Kind int

const (
	KindText Kind = iota
	KindCheckbox
	KindRadio
	KindSubmenu
	KindSeparator
)

func (k Kind) String() string {
	switch k {
	case KindCheckbox:
		return "checkbox"
	case KindRadio:
		return "radio"
	case KindSubmenu:
		return "submenu"
	case KindSeparator:
		return "separator"
	default:
		return "text"
	}
}

// Item is one entry of a Menu. Identity, kind and position are fixed once the
// menu is built; the flags change through Menu methods.
type Item struct {
	id          string
	kind        Kind
	label       string
	icon        string
	accelerator string
	group       string
	value       string
	checked     bool
	disabled    bool
	hidden      bool
	submenu     *Menu
	owner       *Menu
}

func (it *Item) ID() string          { return it.id }
func (it *Item) Kind() Kind          { return it.kind }
func (it *Item) Label() string       { return it.label }
func (it *Item) Icon() string        { return it.icon }
func (it *Item) Accelerator() string { return it.accelerator }
func (it *Item) Group() string       { return it.group }
func (it *Item) Value() string       { return it.value }
func (it *Item) Checked() bool       { return it.checked }
func (it *Item) Enabled() bool       { return !it.disabled }
func (it *Item) Visible() bool       { return !it.hidden }

// Submenu returns the child menu of a KindSubmenu item, nil otherwise.
func (it *Item) Submenu() *Menu { return it.submenu }

// Menu returns the menu the item belongs to.
func (it *Item) Menu() *Menu { return it.owner }

// IsSeparator reports whether the item is a separator.
func (it *Item) IsSeparator() bool { return it.kind == KindSeparator }

// Selectable reports whether navigation may land on the item.
func (it *Item) Selectable() bool {
	return it.kind != KindSeparator && !it.disabled && !it.hidden
}

// Snapshot is an immutable copy of an item handed out with terminal events.
type Snapshot struct {
	ID          string
	Kind        Kind
	Label       string
	Value       string
	Group       string
	Accelerator string
	Checked     bool
	Enabled     bool
}

// Snapshot copies the item's current state.
func (it *Item) Snapshot() Snapshot {
	return Snapshot{
		ID:          it.id,
		Kind:        it.kind,
		Label:       it.label,
		Value:       it.value,
		Group:       it.group,
		Accelerator: it.accelerator,
		Checked:     it.checked,
		Enabled:     !it.disabled,
	}
}

// Menu is an ordered list of items. Submenus are owned by their parent menu
// and point back at the triggering item without owning it.
type Menu struct {
	items  []*Item
	parent *Item
	root   *Menu

	// root-only state
	config theme.Config
	index  map[string]*Item
	open   atomic.Bool
}

// Items returns the menu's items in display order.
func (m *Menu) Items() []*Item {
	out := make([]*Item, len(m.items))
	copy(out, m.items)
	return out
}

// Visible returns the items that are laid out and drawn.
func (m *Menu) Visible() []*Item {
	out := make([]*Item, 0, len(m.items))
	for _, it := range m.items {
		if !it.hidden {
			out = append(out, it)
		}
	}
	return out
}

// Len returns the number of items including hidden ones.
func (m *Menu) Len() int { return len(m.items) }

// Parent returns the item that opens this menu, nil for the root.
func (m *Menu) Parent() *Item { return m.parent }

// Root returns the top-level menu of the tree.
func (m *Menu) Root() *Menu {
	if m.root == nil {
		return m
	}
	return m.root
}

// Depth is 0 for the root menu and grows by one per submenu level.
func (m *Menu) Depth() int {
	depth := 0
	for p := m.parent; p != nil; p = p.owner.parent {
		depth++
	}
	return depth
}

// Config returns the theme configuration shared by the whole tree.
func (m *Menu) Config() theme.Config {
	return m.Root().config
}

// FindByID looks an item up anywhere in the tree.
func (m *Menu) FindByID(id string) (*Item, bool) {
	if id == "" {
		return nil, false
	}
	it, ok := m.Root().index[id]
	return it, ok
}

// IndexOf returns the position of the item with the given id in this menu.
func (m *Menu) IndexOf(id string) int {
	for i, it := range m.items {
		if it.id == id && id != "" {
			return i
		}
	}
	return -1
}

// Acquire marks the tree as shown. It fails when a popup already holds it.
func (m *Menu) Acquire() bool {
	return m.Root().open.CompareAndSwap(false, true)
}

// Release marks the tree as no longer shown.
func (m *Menu) Release() {
	m.Root().open.Store(false)
}

// IsOpen reports whether a popup currently shows the tree.
func (m *Menu) IsOpen() bool {
	return m.Root().open.Load()
}
