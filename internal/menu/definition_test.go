package menu

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/popup-menu/internal/theme"
)

const sampleDefinition = `
theme:
  mode: dark
  dark:
    text: "#ff0000"
items:
  - {id: copy, label: Copy, accelerator: Ctrl+C}
  - {type: separator}
  - id: wrap
    type: check
    label: Word wrap
    checked: true
  - id: theme
    label: Theme
    items:
      - {id: light, type: radio, group: theme, label: Light, checked: true}
      - {id: dark, type: radio, group: theme, label: Dark, icon: weather-clear-night-symbolic.svg}
  - {id: gone, label: Gone, disabled: true}
`

func TestParseDefinition(t *testing.T) {
	m, err := ParseDefinition([]byte(sampleDefinition))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if m.Len() != 5 {
		t.Fatalf("expected 5 items, got %d", m.Len())
	}
	cfg := m.Config()
	if cfg.Mode != theme.ModeDark {
		t.Fatalf("expected dark mode, got %s", cfg.Mode)
	}
	if cfg.Dark.Text == nil || *cfg.Dark.Text != theme.RGB(0xff, 0, 0) {
		t.Fatalf("expected dark text override, got %v", cfg.Dark.Text)
	}
	trigger, _ := m.FindByID("theme")
	if trigger.Kind() != KindSubmenu || trigger.Submenu().Len() != 2 {
		t.Fatalf("expected nested items to form a submenu")
	}
	dark, _ := m.FindByID("dark")
	if dark.Icon() != "weather-clear-night-symbolic.svg" {
		t.Fatalf("unexpected icon %q", dark.Icon())
	}
	gone, _ := m.FindByID("gone")
	if gone.Enabled() {
		t.Fatalf("expected gone to be disabled")
	}
}

func TestParseDefinitionErrors(t *testing.T) {
	if _, err := ParseDefinition([]byte("items: [{id: x, type: slider}]")); err == nil || !strings.Contains(err.Error(), "unknown type") {
		t.Fatalf("expected unknown type error, got %v", err)
	}
	if _, err := ParseDefinition([]byte("items: []")); err == nil {
		t.Fatalf("expected empty menu error")
	}
	if _, err := ParseDefinition([]byte("theme: {mode: sepia}\nitems: [{id: x}]")); err == nil {
		t.Fatalf("expected invalid mode error")
	}
	if _, err := ParseDefinition([]byte("unknown: 1\nitems: [{id: x}]")); err == nil {
		t.Fatalf("expected strict parsing to reject unknown keys")
	}
}

func TestLoadDefinitionReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	if err := os.WriteFile(path, []byte(sampleDefinition), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadDefinition(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := LoadDefinition(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
