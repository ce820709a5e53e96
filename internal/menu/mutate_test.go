package menu

import (
	"errors"
	"testing"

	"github.com/atomicstack/popup-menu/internal/theme"
)

func TestToggleRadioKeepsSingleChecked(t *testing.T) {
	m, err := sampleBuilder().Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	c, _ := m.FindByID("c")
	if !m.Toggle(c) {
		t.Fatalf("expected toggle to report a change")
	}
	b, _ := m.FindByID("b")
	if b.Checked() || !c.Checked() {
		t.Fatalf("expected b unchecked and c checked, got b=%v c=%v", b.Checked(), c.Checked())
	}
	if m.Toggle(c) {
		t.Fatalf("expected re-activating a checked radio to be a no-op")
	}
	light, _ := m.FindByID("light")
	if !light.Checked() {
		t.Fatalf("expected radios of another menu to be untouched")
	}
}

func TestToggleCheckbox(t *testing.T) {
	m, err := sampleBuilder().Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	a, _ := m.FindByID("a")
	m.Toggle(a)
	if a.Checked() {
		t.Fatalf("expected checkbox to flip off")
	}
	quit, _ := m.FindByID("quit")
	if m.Toggle(quit) {
		t.Fatalf("expected text item toggle to be a no-op")
	}
}

func TestSettersRejectedWhileOpen(t *testing.T) {
	m, err := sampleBuilder().Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !m.Acquire() {
		t.Fatalf("expected first acquire to succeed")
	}
	if m.Acquire() {
		t.Fatalf("expected second acquire to fail")
	}
	if err := m.SetEnabled("a", false); !errors.Is(err, ErrMenuOpen) {
		t.Fatalf("expected ErrMenuOpen, got %v", err)
	}
	if err := m.SetThemeMode(theme.ModeDark); !errors.Is(err, ErrMenuOpen) {
		t.Fatalf("expected ErrMenuOpen for theme, got %v", err)
	}
	m.Release()
	if err := m.SetEnabled("a", false); err != nil {
		t.Fatalf("expected mutation after release, got %v", err)
	}
	a, _ := m.FindByID("a")
	if a.Enabled() || a.Selectable() {
		t.Fatalf("expected a disabled")
	}
}

func TestSetCheckedRadioGroup(t *testing.T) {
	m, err := sampleBuilder().Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if err := m.SetChecked("dark", true); err != nil {
		t.Fatalf("set checked: %v", err)
	}
	light, _ := m.FindByID("light")
	dark, _ := m.FindByID("dark")
	if light.Checked() || !dark.Checked() {
		t.Fatalf("expected dark to replace light")
	}
	if err := m.SetChecked("quit", true); !errors.Is(err, ErrNotCheckable) {
		t.Fatalf("expected ErrNotCheckable, got %v", err)
	}
	if err := m.SetChecked("missing", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertAndRemove(t *testing.T) {
	m, err := sampleBuilder().Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if err := m.Insert(0, NewBuilder().Text("first", "First")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if m.Items()[0].ID() != "first" {
		t.Fatalf("expected inserted item at 0")
	}
	if err := m.Append(NewBuilder().Text("a", "Clash")); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
	if m.Len() != 7 {
		t.Fatalf("expected failed append to leave 7 items, got %d", m.Len())
	}
	if err := m.Remove("theme"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := m.FindByID("light"); ok {
		t.Fatalf("expected submenu ids to be dropped with the submenu")
	}
	if err := m.Append(NewBuilder().Text("light", "Reused")); err != nil {
		t.Fatalf("expected id to be reusable after removal: %v", err)
	}
}

func TestRemoveCannotEmptyMenu(t *testing.T) {
	m, err := NewBuilder().Text("only", "Only").Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if err := m.Remove("only"); !errors.Is(err, ErrEmptyMenu) {
		t.Fatalf("expected ErrEmptyMenu, got %v", err)
	}
	if err := m.RemoveAt(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestVisibleSkipsHidden(t *testing.T) {
	m, err := NewBuilder().Text("a", "A").Text("b", "B", Hidden()).Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if got := len(m.Visible()); got != 1 {
		t.Fatalf("expected 1 visible item, got %d", got)
	}
	if err := m.SetVisible("b", true); err != nil {
		t.Fatalf("set visible: %v", err)
	}
	if got := len(m.Visible()); got != 2 {
		t.Fatalf("expected 2 visible items, got %d", got)
	}
}
