package main

import (
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/popup-menu/internal/accel"
	"github.com/atomicstack/popup-menu/internal/app"
	"github.com/atomicstack/popup-menu/internal/config"
	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/theme"
)

func TestDetectScreenPrefersFirstTerminal(t *testing.T) {
	fds := []descriptor{{"stdout", 1}, {"stdin", 0}, {"stderr", 2}}
	isTerminal := func(fd int) bool { return fd != 1 }
	getSize := func(fd int) (int, int, error) {
		if fd == 0 {
			return 0, 0, errors.New("no size")
		}
		return 120, 40, nil
	}
	got := detectScreen(fds, isTerminal, getSize)
	if got.Source != "stderr" || got.Size != (geom.Size{W: 120, H: 40}) {
		t.Fatalf("expected stderr 120x40, got %+v", got)
	}
}

func TestDetectScreenFallsBack(t *testing.T) {
	fds := []descriptor{{"stdout", 1}, {"closed", -1}}
	getSize := func(int) (int, int, error) { return 0, 0, errors.New("not a tty") }
	got := detectScreen(fds, func(int) bool { return true }, getSize)
	if got.Source != "fallback" || got.Size != fallbackScreen {
		t.Fatalf("expected fallback screen, got %+v", got)
	}
	if got.Error == "" {
		t.Fatalf("expected probe error recorded")
	}
}

func TestStartupTracePayloadDescribesPopup(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			MenuPath:     "menu.yaml",
			Theme:        theme.ModeDark,
			ThemeSet:     true,
			Accelerators: accel.ModeCommand,
			Anchor:       geom.Point{X: 4, Y: 2},
			Once:         true,
			ShowDelay:    250 * time.Millisecond,
		},
		Flags: map[string]string{"menu": "menu.yaml", "once": "true"},
		Args:  []string{"--menu", "menu.yaml", "--once"},
	}
	screen := screenInfo{Size: geom.Size{W: 100, H: 30}, Source: "stdout"}

	payload := startupTracePayload(cfg, screen)

	popup, ok := payload["popup"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected popup map in payload")
	}
	want := map[string]interface{}{
		"mode":         "once",
		"menu":         "menu.yaml",
		"theme":        "dark",
		"accelerators": "command",
		"showDelay":    "250ms",
	}
	for k, v := range want {
		if popup[k] != v {
			t.Fatalf("popup[%s] = %v, want %v", k, popup[k], v)
		}
	}
	if popup["anchor"] != (geom.Point{X: 4, Y: 2}) {
		t.Fatalf("expected anchor in once mode, got %v", popup["anchor"])
	}
	if _, ok := popup["themeFile"]; ok {
		t.Fatalf("expected no theme file entry")
	}
	if payload["screen"] != screen {
		t.Fatalf("expected screen info, got %v", payload["screen"])
	}
	if flags, ok := payload["flags"].(map[string]string); !ok || flags["menu"] != "menu.yaml" {
		t.Fatalf("expected raw flags, got %v", payload["flags"])
	}
}

func TestStartupTracePayloadInteractiveSample(t *testing.T) {
	payload := startupTracePayload(config.Config{}, screenInfo{Size: fallbackScreen, Source: "fallback"})
	popup := payload["popup"].(map[string]interface{})
	if popup["mode"] != "interactive" || popup["menu"] != "sample" || popup["theme"] != "menu" {
		t.Fatalf("unexpected popup payload %v", popup)
	}
	if _, ok := popup["anchor"]; ok {
		t.Fatalf("expected no anchor outside once mode")
	}
}
