package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/menuevent"
	"github.com/atomicstack/popup-menu/internal/testutil"
	"github.com/atomicstack/popup-menu/internal/theme"
)

func TestLoadMenuSample(t *testing.T) {
	m, err := LoadMenu(Config{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Config().Mode != theme.ModeSystem {
		t.Fatalf("expected sample menu to follow the system theme")
	}
	sort, ok := m.FindByID("sort")
	if !ok || sort.Kind() != menu.KindSubmenu {
		t.Fatalf("expected sort submenu")
	}
	checked := 0
	for _, it := range sort.Submenu().Items() {
		if it.Checked() {
			checked++
		}
	}
	if checked != 1 {
		t.Fatalf("expected one checked sort radio, got %d", checked)
	}
}

func TestLoadMenuDefinitionWithOverride(t *testing.T) {
	path := filepath.Join(testutil.RepoRoot(t), "testdata", "menu.yaml")
	m, err := LoadMenu(Config{MenuPath: path, Theme: theme.ModeDark, ThemeSet: true})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Config().Mode != theme.ModeDark {
		t.Fatalf("expected theme override, got %v", m.Config().Mode)
	}
	paste, ok := m.FindByID("paste")
	if !ok || paste.Enabled() {
		t.Fatalf("expected disabled paste item")
	}
	if _, ok := m.FindByID("grid"); !ok {
		t.Fatalf("expected nested radio to be reachable")
	}
}

func TestLoadMenuMissingFile(t *testing.T) {
	if _, err := LoadMenu(Config{MenuPath: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Fatalf("expected error for missing definition")
	}
}

func TestFileThemeSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mode")
	src := FileThemeSource(path)
	if _, err := src.IsDark(); err == nil {
		t.Fatalf("expected error for missing file")
	}
	for content, want := range map[string]bool{"dark\n": true, " light ": false} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		dark, err := src.IsDark()
		if err != nil || dark != want {
			t.Fatalf("content %q: got %v %v, want %v", content, dark, err, want)
		}
	}
	if err := os.WriteFile(path, []byte("system"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := src.IsDark(); err == nil {
		t.Fatalf("expected system to be rejected")
	}
}

func TestAwaitResult(t *testing.T) {
	ctx := context.Background()

	exited := make(chan struct{})
	close(exited)
	if _, err := awaitResult(ctx, make(chan *menuevent.Handle), exited); !errors.Is(err, ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}

	cell := menuevent.NewCell("inv")
	handles := make(chan *menuevent.Handle, 1)
	handles <- menuevent.NewHandle(cell)
	cell.Resolve(menuevent.Cancellation("inv"))
	ev, err := awaitResult(ctx, handles, exited)
	if err != nil || ev.Kind != menuevent.Cancelled {
		t.Fatalf("expected handed-over cancellation, got %+v %v", ev, err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	if _, err := awaitResult(ctx, make(chan *menuevent.Handle), make(chan struct{})); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline, got %v", err)
	}
}

func TestListGolden(t *testing.T) {
	m, err := LoadMenu(Config{MenuPath: filepath.Join(testutil.RepoRoot(t), "testdata", "menu.yaml")})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var out strings.Builder
	if err := List(m, &out); err != nil {
		t.Fatalf("list: %v", err)
	}
	testutil.AssertGolden(t, "list_menu.golden", out.String())
}
