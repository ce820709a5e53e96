package term

import (
	"strings"
	"unicode"

	"github.com/atomicstack/popup-menu/internal/accel"
	"github.com/atomicstack/popup-menu/internal/platform"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the host's own bindings, active while no popup is open.
type keyMap struct {
	Popup       key.Binding
	ToggleTheme key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Popup: key.NewBinding(
			key.WithKeys("m", "enter", " "),
			key.WithHelp("m", "open menu"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle dark mode"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// HelpLine renders the bindings as a one-line hint.
func (k keyMap) HelpLine() string {
	parts := []string{"right click: open menu"}
	for _, b := range []key.Binding{k.Popup, k.ToggleTheme, k.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

var namedKeys = map[tea.KeyType]string{
	tea.KeyUp:        "ArrowUp",
	tea.KeyDown:      "ArrowDown",
	tea.KeyLeft:      "ArrowLeft",
	tea.KeyRight:     "ArrowRight",
	tea.KeyEnter:     "Enter",
	tea.KeyEsc:       "Escape",
	tea.KeySpace:     "Space",
	tea.KeyTab:       "Tab",
	tea.KeyBackspace: "Backspace",
	tea.KeyDelete:    "Delete",
	tea.KeyInsert:    "Insert",
	tea.KeyHome:      "Home",
	tea.KeyEnd:       "End",
	tea.KeyPgUp:      "PageUp",
	tea.KeyPgDown:    "PageDown",
	tea.KeyShiftTab:  "Tab",
}

// translateKey maps a Bubble Tea key press onto a platform key event.
func translateKey(msg tea.KeyMsg) (platform.Key, bool) {
	var mods accel.Modifier
	if msg.Alt {
		mods |= accel.ModAlt
	}
	if name, ok := namedKeys[msg.Type]; ok {
		if msg.Type == tea.KeyShiftTab {
			mods |= accel.ModShift
		}
		ev := platform.Key{Chord: accel.Chord{Mods: mods, Key: name}}
		if msg.Type == tea.KeySpace {
			ev.Rune = ' '
		}
		return ev, true
	}
	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) == 0 {
			return platform.Key{}, false
		}
		r := msg.Runes[0]
		name, _ := accel.KeyName(string(r))
		if unicode.IsUpper(r) {
			mods |= accel.ModShift
		}
		return platform.Key{Chord: accel.Chord{Mods: mods, Key: name}, Rune: r}, true
	}
	// ctrl+letter, function keys and friends share the accelerator syntax
	chord, err := accel.Parse(msg.String())
	if err != nil {
		return platform.Key{}, false
	}
	chord.Mods |= mods
	return platform.Key{Chord: chord}, true
}
