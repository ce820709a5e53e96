package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/popup-menu/internal/accel"
	"github.com/atomicstack/popup-menu/internal/app"
	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/theme"
	"github.com/atomicstack/popup-menu/internal/ui"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envMenuPath        = "POPUP_MENU_DEFINITION"
	envTheme           = "POPUP_MENU_THEME"
	envAccelerators    = "POPUP_MENU_ACCELERATORS"
	envKeepOpenOnCheck = "POPUP_MENU_KEEP_OPEN_ON_CHECK"
	envEmbedded        = "POPUP_MENU_EMBEDDED_SURFACE"
	envX               = "POPUP_MENU_X"
	envY               = "POPUP_MENU_Y"
	envOnce            = "POPUP_MENU_ONCE"
	envList            = "POPUP_MENU_LIST"
	envShowDelay       = "POPUP_MENU_SHOW_DELAY"
	envThemeFile       = "POPUP_MENU_THEME_FILE"
	envThemePoll       = "POPUP_MENU_THEME_POLL"
	envTrace           = "POPUP_MENU_TRACE"
	envLogFile         = "POPUP_MENU_LOG_FILE"
)

const defaultThemePoll = 2 * time.Second

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("popup-menu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	menuPath := fs.String("menu", envOrDefault(env, envMenuPath, ""), "path to a YAML menu definition (empty uses the built-in sample)")
	themeMode := fs.String("theme", envOrDefault(env, envTheme, ""), "override the menu theme mode: light, dark or system")
	accelerators := fs.String("accelerators", envOrDefault(env, envAccelerators, "display"), "accelerator mode: display or command")
	keepOpen := fs.Bool("keep-open-on-check", envOrBool(env, envKeepOpenOnCheck, false), "keep the popup open when a checkbox is toggled")
	embedded := fs.Bool("embedded-surface", envOrBool(env, envEmbedded, false), "ignore focus moving into embedded surfaces")
	x := fs.Int("x", envOrInt(env, envX, 0), "anchor column for --once")
	y := fs.Int("y", envOrInt(env, envY, 0), "anchor row for --once")
	once := fs.Bool("once", envOrBool(env, envOnce, false), "pop up immediately, print the result and exit")
	list := fs.Bool("list", envOrBool(env, envList, false), "print the menu tree and exit")
	showDelay := fs.Duration("show-delay", envOrDuration(env, envShowDelay, ui.DefaultShowDelay), "hover delay before a submenu opens")
	themeFile := fs.String("theme-file", envOrDefault(env, envThemeFile, ""), "file holding \"dark\" or \"light\", polled for theme changes")
	themePoll := fs.Duration("theme-poll", envOrDuration(env, envThemePoll, defaultThemePoll), "theme file poll interval")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	accelMode, err := accel.ParseMode(*accelerators)
	if err != nil {
		return Config{}, err
	}
	var mode theme.Mode
	if *themeMode != "" {
		if mode, err = theme.ParseMode(*themeMode); err != nil {
			return Config{}, err
		}
	}
	if *x < 0 || *y < 0 {
		return Config{}, fmt.Errorf("anchor must be >= 0 (got %d,%d)", *x, *y)
	}
	if *showDelay < 0 {
		return Config{}, fmt.Errorf("show-delay must be >= 0 (got %s)", *showDelay)
	}

	cfg := Config{
		App: app.Config{
			MenuPath:        *menuPath,
			Theme:           mode,
			ThemeSet:        *themeMode != "",
			Accelerators:    accelMode,
			KeepOpenOnCheck: *keepOpen,
			EmbeddedSurface: *embedded,
			Anchor:          geom.Point{X: *x, Y: *y},
			Once:            *once,
			List:            *list,
			ShowDelay:       *showDelay,
			ThemeFile:       *themeFile,
			ThemePoll:       *themePoll,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"menu":               *menuPath,
			"theme":              *themeMode,
			"accelerators":       accelMode.String(),
			"keep-open-on-check": strconv.FormatBool(*keepOpen),
			"embedded-surface":   strconv.FormatBool(*embedded),
			"x":                  strconv.Itoa(*x),
			"y":                  strconv.Itoa(*y),
			"once":               strconv.FormatBool(*once),
			"list":               strconv.FormatBool(*list),
			"show-delay":         showDelay.String(),
			"theme-file":         *themeFile,
			"theme-poll":         themePoll.String(),
			"trace":              strconv.FormatBool(*trace),
			"logFile":            *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks settings that depend on each other or on the filesystem.
func Validate(cfg Config) error {
	if cfg.App.ThemeFile != "" && cfg.App.ThemePoll <= 0 {
		return fmt.Errorf("theme-poll must be > 0 when theme-file is set (got %s)", cfg.App.ThemePoll)
	}
	if path := cfg.App.MenuPath; path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("menu definition: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("menu definition %s is a directory", path)
		}
	}
	return nil
}
