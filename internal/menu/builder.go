package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/popup-menu/internal/theme"
)

var (
	ErrEmptyMenu    = errors.New("menu has no items")
	ErrEmptySubmenu = errors.New("submenu has no items")
	ErrDuplicateID  = errors.New("duplicate item id")
	ErrMissingID    = errors.New("item id is required")
)

// BuildError reports a malformed tree. It unwraps to one of the Err*
// sentinels above.
type BuildError struct {
	ItemID string
	Err    error
}

func (e *BuildError) Error() string {
	if e.ItemID == "" {
		return "build menu: " + e.Err.Error()
	}
	return fmt.Sprintf("build menu: %s: %q", e.Err.Error(), e.ItemID)
}

func (e *BuildError) Unwrap() error { return e.Err }

// ItemOption adjusts an item while it is being declared.
type ItemOption func(*Item)

// WithIcon attaches an icon reference, usually a file path.
func WithIcon(ref string) ItemOption {
	return func(it *Item) { it.icon = ref }
}

// WithAccelerator sets the accelerator hint, e.g. "Ctrl+Shift+P".
func WithAccelerator(text string) ItemOption {
	return func(it *Item) { it.accelerator = strings.TrimSpace(text) }
}

// WithValue stores an opaque host value returned with the selection.
func WithValue(v string) ItemOption {
	return func(it *Item) { it.value = v }
}

// Disabled marks the item as not selectable.
func Disabled() ItemOption {
	return func(it *Item) { it.disabled = true }
}

// Hidden keeps the item in the tree without laying it out.
func Hidden() ItemOption {
	return func(it *Item) { it.hidden = true }
}

type declared struct {
	item *Item
	sub  *Builder
}

// Builder accumulates declarations and produces a validated Menu.
type Builder struct {
	decls  []declared
	config theme.Config
}

// NewBuilder starts an empty declaration list.
func NewBuilder() *Builder {
	return &Builder{}
}

// Theme sets the theme configuration of the built tree. Only the root
// builder's configuration is used.
func (b *Builder) Theme(cfg theme.Config) *Builder {
	b.config = cfg
	return b
}

func (b *Builder) add(it *Item, sub *Builder, opts []ItemOption) *Builder {
	for _, opt := range opts {
		if opt != nil {
			opt(it)
		}
	}
	b.decls = append(b.decls, declared{item: it, sub: sub})
	return b
}

func (b *Builder) Text(id, label string, opts ...ItemOption) *Builder {
	return b.add(&Item{id: id, kind: KindText, label: label}, nil, opts)
}

func (b *Builder) Check(id, label string, checked bool, opts ...ItemOption) *Builder {
	return b.add(&Item{id: id, kind: KindCheckbox, label: label, checked: checked}, nil, opts)
}

func (b *Builder) Radio(id, label, group string, checked bool, opts ...ItemOption) *Builder {
	return b.add(&Item{id: id, kind: KindRadio, label: label, group: group, checked: checked}, nil, opts)
}

func (b *Builder) Separator() *Builder {
	return b.add(&Item{kind: KindSeparator}, nil, nil)
}

func (b *Builder) Submenu(id, label string, sub *Builder, opts ...ItemOption) *Builder {
	if sub == nil {
		sub = NewBuilder()
	}
	return b.add(&Item{id: id, kind: KindSubmenu, label: label}, sub, opts)
}

// Build validates the declarations and returns the tree.
func (b *Builder) Build() (*Menu, error) {
	root := &Menu{config: b.config, index: make(map[string]*Item)}
	if len(b.decls) == 0 {
		return nil, &BuildError{Err: ErrEmptyMenu}
	}
	items, err := b.materialise(root, root, root.index)
	if err != nil {
		return nil, err
	}
	root.items = items
	return root, nil
}

// materialise copies the declarations into fresh items owned by m, recording
// ids in index. The builder stays reusable.
func (b *Builder) materialise(m, root *Menu, index map[string]*Item) ([]*Item, error) {
	items := make([]*Item, 0, len(b.decls))
	for _, d := range b.decls {
		it := *d.item
		it.owner = m
		it.submenu = nil
		if it.kind != KindSeparator {
			if strings.TrimSpace(it.id) == "" {
				return nil, &BuildError{ItemID: it.label, Err: ErrMissingID}
			}
			if _, dup := index[it.id]; dup {
				return nil, &BuildError{ItemID: it.id, Err: ErrDuplicateID}
			}
			index[it.id] = &it
		}
		if it.kind == KindSubmenu {
			if d.sub == nil || len(d.sub.decls) == 0 {
				return nil, &BuildError{ItemID: it.id, Err: ErrEmptySubmenu}
			}
			child := &Menu{parent: &it, root: root}
			childItems, err := d.sub.materialise(child, root, index)
			if err != nil {
				return nil, err
			}
			child.items = childItems
			it.submenu = child
		}
		items = append(items, &it)
	}
	normaliseRadios(items)
	return items, nil
}

// normaliseRadios keeps only the first checked radio of each group.
func normaliseRadios(items []*Item) {
	seen := make(map[string]bool)
	for _, it := range items {
		if it.kind != KindRadio || !it.checked {
			continue
		}
		if seen[it.group] {
			it.checked = false
			continue
		}
		seen[it.group] = true
	}
}
