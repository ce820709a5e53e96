// Package accel parses accelerator hints such as "Ctrl+Shift+P" into key
// chords and matches pressed chords against the items of open menu levels.
package accel

import (
	"errors"
	"fmt"
	"strings"
)

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

func (m Modifier) Has(o Modifier) bool { return m&o == o }

var (
	ErrEmpty           = errors.New("empty accelerator")
	ErrMissingKey      = errors.New("accelerator has no key")
	ErrUnknownKey      = errors.New("unknown accelerator key")
	ErrUnknownModifier = errors.New("unknown accelerator modifier")
)

// Chord is a modifier set plus a canonical key name ("P", "F5", "Enter").
type Chord struct {
	Mods Modifier
	Key  string
}

// String renders the chord in the hint form used by menus.
func (c Chord) String() string {
	var parts []string
	if c.Mods.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if c.Mods.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if c.Mods.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}

var modifierNames = map[string]Modifier{
	"CTRL":    ModCtrl,
	"CONTROL": ModCtrl,
	"ALT":     ModAlt,
	"OPTION":  ModAlt,
	"SHIFT":   ModShift,
}

var keyAliases = map[string]string{
	"SPACE":      "Space",
	"TAB":        "Tab",
	"ENTER":      "Enter",
	"RETURN":     "Enter",
	"ESC":        "Escape",
	"ESCAPE":     "Escape",
	"BACKSPACE":  "Backspace",
	"DELETE":     "Delete",
	"DEL":        "Delete",
	"INSERT":     "Insert",
	"HOME":       "Home",
	"END":        "End",
	"PAGEUP":     "PageUp",
	"PAGEDOWN":   "PageDown",
	"UP":         "ArrowUp",
	"ARROWUP":    "ArrowUp",
	"DOWN":       "ArrowDown",
	"ARROWDOWN":  "ArrowDown",
	"LEFT":       "ArrowLeft",
	"ARROWLEFT":  "ArrowLeft",
	"RIGHT":      "ArrowRight",
	"ARROWRIGHT": "ArrowRight",
	"PLUS":       "Plus",
	"=":          "Equal",
	"EQUAL":      "Equal",
	",":          "Comma",
	"COMMA":      "Comma",
	"-":          "Minus",
	"MINUS":      "Minus",
	".":          "Period",
	"PERIOD":     "Period",
	";":          "Semicolon",
	"SEMICOLON":  "Semicolon",
	"/":          "Slash",
	"SLASH":      "Slash",
	"`":          "Backquote",
	"BACKQUOTE":  "Backquote",
	"[":          "BracketLeft",
	"]":          "BracketRight",
	"\\":         "Backslash",
	"BACKSLASH":  "Backslash",
	"'":          "Quote",
	"QUOTE":      "Quote",
}

// KeyName canonicalises a single key token. It reports false for names
// outside the supported set.
func KeyName(token string) (string, bool) {
	up := strings.ToUpper(strings.TrimSpace(token))
	if up == "" {
		return "", false
	}
	if len(up) == 1 {
		c := up[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return up, true
		}
	}
	if name, ok := keyAliases[up]; ok {
		return name, true
	}
	if len(up) >= 2 && up[0] == 'F' {
		var n int
		if _, err := fmt.Sscanf(up[1:], "%d", &n); err == nil && n >= 1 && n <= 24 && fmt.Sprint(n) == up[1:] {
			return up, true
		}
	}
	return "", false
}

// Parse reads an accelerator hint. Tokens are separated by "+"; a trailing
// "++" names the plus key itself.
func Parse(text string) (Chord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Chord{}, ErrEmpty
	}
	plusKey := false
	if strings.HasSuffix(text, "++") {
		plusKey = true
		text = strings.TrimSuffix(text, "+")
	} else if text == "+" {
		return Chord{Key: "Plus"}, nil
	}
	tokens := strings.Split(text, "+")
	var chord Chord
	for i, tok := range tokens {
		last := i == len(tokens)-1
		up := strings.ToUpper(strings.TrimSpace(tok))
		if last && plusKey {
			if mod, ok := modifierNames[up]; ok {
				chord.Mods |= mod
			} else if up != "" {
				return Chord{}, fmt.Errorf("%w: %q", ErrUnknownModifier, tok)
			}
			chord.Key = "Plus"
			return chord, nil
		}
		if mod, ok := modifierNames[up]; ok {
			if last {
				return Chord{}, fmt.Errorf("%w: %q", ErrMissingKey, text)
			}
			chord.Mods |= mod
			continue
		}
		if !last {
			return Chord{}, fmt.Errorf("%w: %q", ErrUnknownModifier, tok)
		}
		key, ok := KeyName(tok)
		if !ok {
			return Chord{}, fmt.Errorf("%w: %q", ErrUnknownKey, tok)
		}
		chord.Key = key
	}
	return chord, nil
}
