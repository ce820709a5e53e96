package accel

import (
	"fmt"
	"strings"

	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
)

// Mode decides whether accelerators are hints only or act as commands.
type Mode int

const (
	ModeDisplay Mode = iota
	ModeCommand
)

func (m Mode) String() string {
	if m == ModeCommand {
		return "command"
	}
	return "display"
}

// ParseMode maps a configuration string onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "display":
		return ModeDisplay, nil
	case "command":
		return ModeCommand, nil
	}
	return ModeDisplay, fmt.Errorf("unknown accelerator mode %q", s)
}

type parsed struct {
	text  string
	chord Chord
	ok    bool
}

// Matcher finds the item an accelerator chord refers to. It is owned by a
// single controller and is not safe for concurrent use. Parsed chords are
// cached by item id, which is unique within one menu tree.
type Matcher struct {
	mode  Mode
	Cache map[string]parsed
}

func NewMatcher(mode Mode) *Matcher {
	return &Matcher{mode: mode, Cache: make(map[string]parsed)}
}

func (m *Matcher) Mode() Mode { return m.mode }

// Reset drops every cached chord. The controller calls it when a popup
// ends, so items removed between popups are not kept alive.
func (m *Matcher) Reset() {
	clear(m.Cache)
}

// Match searches levels from the innermost (last) to the root (first) and
// returns the first enabled, visible leaf item whose accelerator equals
// chord, plus the index of the level it was found in. In display mode it
// never matches. Within a level the first declared item wins.
func (m *Matcher) Match(chord Chord, levels []*menu.Menu) (*menu.Item, int, bool) {
	if m.mode != ModeCommand || chord.Key == "" {
		return nil, -1, false
	}
	for depth := len(levels) - 1; depth >= 0; depth-- {
		lvl := levels[depth]
		if lvl == nil {
			continue
		}
		for _, it := range lvl.Items() {
			if !it.Selectable() || it.Kind() == menu.KindSubmenu || it.Accelerator() == "" {
				continue
			}
			if c, ok := m.chordFor(it); ok && c == chord {
				events.Accelerator.Match(chord.String(), it.ID(), depth)
				return it, depth, true
			}
		}
	}
	return nil, -1, false
}

func (m *Matcher) chordFor(it *menu.Item) (Chord, bool) {
	text := it.Accelerator()
	if p, ok := m.Cache[it.ID()]; ok && p.text == text {
		return p.chord, p.ok
	}
	chord, err := Parse(text)
	p := parsed{text: text, chord: chord, ok: err == nil}
	if err != nil {
		events.Accelerator.Invalid(it.ID(), text, err)
	}
	m.Cache[it.ID()] = p
	return p.chord, p.ok
}
