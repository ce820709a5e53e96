package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/popup-menu/internal/accel"
	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/theme"
	"github.com/atomicstack/popup-menu/internal/ui"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Accelerators != accel.ModeDisplay {
		t.Fatalf("expected display accelerators by default")
	}
	if cfg.App.ThemeSet {
		t.Fatalf("expected no theme override by default")
	}
	if cfg.App.ShowDelay != ui.DefaultShowDelay {
		t.Fatalf("expected default show delay, got %s", cfg.App.ShowDelay)
	}
	if cfg.App.ThemePoll != defaultThemePoll {
		t.Fatalf("expected default theme poll, got %s", cfg.App.ThemePoll)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnv(t *testing.T) {
	env := []string{
		envTheme + "=light",
		envAccelerators + "=display",
		envX + "=3",
		envShowDelay + "=250ms",
		envTrace + "=true",
		"MALFORMED",
	}
	args := []string{"--theme", "dark", "--accelerators", "command", "--y", "7", "--once"}
	cfg, err := LoadArgs(args, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.App.ThemeSet || cfg.App.Theme != theme.ModeDark {
		t.Fatalf("expected dark override, got %v set=%v", cfg.App.Theme, cfg.App.ThemeSet)
	}
	if cfg.App.Accelerators != accel.ModeCommand {
		t.Fatalf("expected command accelerators")
	}
	if cfg.App.Anchor != (geom.Point{X: 3, Y: 7}) {
		t.Fatalf("unexpected anchor %+v", cfg.App.Anchor)
	}
	if cfg.App.ShowDelay != 250*time.Millisecond {
		t.Fatalf("expected env show delay, got %s", cfg.App.ShowDelay)
	}
	if !cfg.App.Once || !cfg.Logging.Trace {
		t.Fatalf("expected once and trace enabled")
	}
	if cfg.Flags["accelerators"] != "command" || cfg.Flags["y"] != "7" {
		t.Fatalf("unexpected flags %v", cfg.Flags)
	}
	if strings.Join(cfg.Args, " ") != strings.Join(args, " ") {
		t.Fatalf("expected args preserved, got %v", cfg.Args)
	}
}

func TestLoadArgsRejectsBadValues(t *testing.T) {
	cases := [][]string{
		{"--theme", "sepia"},
		{"--accelerators", "always"},
		{"--x", "-1"},
		{"--show-delay", "-1s"},
		{"--unknown"},
	}
	for _, args := range cases {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestInvalidEnvFallsBack(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{envX + "=abc", envShowDelay + "=soon", envOnce + "=maybe"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Anchor.X != 0 || cfg.App.ShowDelay != ui.DefaultShowDelay || cfg.App.Once {
		t.Fatalf("expected fallbacks, got %+v", cfg.App)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	menuPath := filepath.Join(dir, "menu.yaml")
	if err := os.WriteFile(menuPath, []byte("items: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadArgs([]string{"--menu", menuPath, "--theme-file", filepath.Join(dir, "mode")}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("validate: %v", err)
	}

	cfg.App.ThemePoll = 0
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected zero poll interval rejected")
	}

	cfg.App.ThemePoll = time.Second
	cfg.App.MenuPath = filepath.Join(dir, "missing.yaml")
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected missing menu rejected")
	}
	cfg.App.MenuPath = dir
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected directory rejected")
	}
}
