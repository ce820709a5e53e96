package menu

import (
	"errors"
	"fmt"

	"github.com/atomicstack/popup-menu/internal/theme"
)

var (
	ErrMenuOpen        = errors.New("menu is showing")
	ErrNotFound        = errors.New("item not found")
	ErrNotCheckable    = errors.New("item is not a checkbox or radio")
	ErrIndexOutOfRange = errors.New("index out of range")
)

func (m *Menu) lookup(id string) (*Item, error) {
	if m.IsOpen() {
		return nil, ErrMenuOpen
	}
	it, ok := m.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return it, nil
}

// SetChecked updates a checkbox or radio. Checking a radio unchecks the other
// members of its group in the same menu.
func (m *Menu) SetChecked(id string, checked bool) error {
	it, err := m.lookup(id)
	if err != nil {
		return err
	}
	switch it.kind {
	case KindCheckbox:
		it.checked = checked
	case KindRadio:
		if checked {
			checkRadio(it)
		} else {
			it.checked = false
		}
	default:
		return fmt.Errorf("%w: %q", ErrNotCheckable, id)
	}
	return nil
}

func (m *Menu) SetEnabled(id string, enabled bool) error {
	it, err := m.lookup(id)
	if err != nil {
		return err
	}
	it.disabled = !enabled
	return nil
}

func (m *Menu) SetLabel(id, label string) error {
	it, err := m.lookup(id)
	if err != nil {
		return err
	}
	it.label = label
	return nil
}

func (m *Menu) SetIcon(id, ref string) error {
	it, err := m.lookup(id)
	if err != nil {
		return err
	}
	it.icon = ref
	return nil
}

func (m *Menu) SetVisible(id string, visible bool) error {
	it, err := m.lookup(id)
	if err != nil {
		return err
	}
	it.hidden = !visible
	return nil
}

// SetThemeMode switches between light, dark and system colours for later
// popups.
func (m *Menu) SetThemeMode(mode theme.Mode) error {
	if m.IsOpen() {
		return ErrMenuOpen
	}
	m.Root().config.Mode = mode
	return nil
}

// SetTheme replaces the whole theme configuration.
func (m *Menu) SetTheme(cfg theme.Config) error {
	if m.IsOpen() {
		return ErrMenuOpen
	}
	m.Root().config = cfg
	return nil
}

// Append adds the items declared in b to the end of m.
func (m *Menu) Append(b *Builder) error {
	return m.Insert(len(m.items), b)
}

// Insert adds the items declared in b before position at. Ids are validated
// against the whole tree; on error nothing changes.
func (m *Menu) Insert(at int, b *Builder) error {
	if m.IsOpen() {
		return ErrMenuOpen
	}
	if at < 0 || at > len(m.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, at)
	}
	if b == nil || len(b.decls) == 0 {
		return nil
	}
	root := m.Root()
	index := make(map[string]*Item, len(root.index))
	for k, v := range root.index {
		index[k] = v
	}
	added, err := b.materialise(m, root, index)
	if err != nil {
		return err
	}
	items := make([]*Item, 0, len(m.items)+len(added))
	items = append(items, m.items[:at]...)
	items = append(items, added...)
	items = append(items, m.items[at:]...)
	m.items = items
	root.index = index
	normaliseRadios(m.items)
	return nil
}

// Remove deletes the item with the given id, together with its submenu.
func (m *Menu) Remove(id string) error {
	it, err := m.lookup(id)
	if err != nil {
		return err
	}
	owner := it.owner
	return owner.RemoveAt(owner.IndexOf(id))
}

// RemoveAt deletes the item at position i of m. A menu cannot be emptied.
func (m *Menu) RemoveAt(i int) error {
	if m.IsOpen() {
		return ErrMenuOpen
	}
	if i < 0 || i >= len(m.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	if len(m.items) == 1 {
		if m.parent != nil {
			return &BuildError{ItemID: m.parent.id, Err: ErrEmptySubmenu}
		}
		return &BuildError{Err: ErrEmptyMenu}
	}
	removed := m.items[i]
	m.items = append(m.items[:i:i], m.items[i+1:]...)
	unindex(m.Root().index, removed)
	return nil
}

func unindex(index map[string]*Item, it *Item) {
	if it.id != "" {
		delete(index, it.id)
	}
	if it.submenu != nil {
		for _, child := range it.submenu.items {
			unindex(index, child)
		}
	}
}

// Toggle applies activation side effects to it: checkboxes flip, radios
// check themselves and uncheck the rest of their group. It reports whether
// anything changed. Toggle is the activation path used while a popup is
// closing, so it does not consult the open flag.
func (m *Menu) Toggle(it *Item) bool {
	if it == nil || it.owner == nil || it.owner.Root() != m.Root() {
		return false
	}
	switch it.kind {
	case KindCheckbox:
		it.checked = !it.checked
		return true
	case KindRadio:
		return checkRadio(it)
	}
	return false
}

func checkRadio(it *Item) bool {
	changed := !it.checked
	for _, other := range it.owner.items {
		if other == it || other.kind != KindRadio || other.group != it.group {
			continue
		}
		if other.checked {
			other.checked = false
			changed = true
		}
	}
	it.checked = true
	return changed
}
