package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/popup-menu/internal/app"
	"github.com/atomicstack/popup-menu/internal/config"
	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/logging"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"golang.org/x/term"
)

// fallbackScreen is used until the terminal reports its size, or for good
// when no standard descriptor is a terminal.
var fallbackScreen = geom.Size{W: 80, H: 24}

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	screen := detectScreen(standardDescriptors(), term.IsTerminal, term.GetSize)
	events.App.Start(startupTracePayload(runtimeCfg, screen))

	if err := app.Run(runtimeCfg.App, screen.Size, os.Stdout); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type descriptor struct {
	name string
	fd   int
}

func standardDescriptors() []descriptor {
	return []descriptor{
		{"stdout", int(os.Stdout.Fd())},
		{"stdin", int(os.Stdin.Fd())},
		{"stderr", int(os.Stderr.Fd())},
	}
}

// screenInfo is the screen the popup host starts with and where it came
// from.
type screenInfo struct {
	geom.Size
	Source string `json:"source"`
	Error  string `json:"error,omitempty"`
}

// detectScreen takes the size of the first terminal descriptor, stdout
// first since that is where the popup is drawn.
func detectScreen(fds []descriptor, isTerminal func(int) bool, getSize func(int) (int, int, error)) screenInfo {
	info := screenInfo{Size: fallbackScreen, Source: "fallback"}
	for _, d := range fds {
		if d.fd < 0 || !isTerminal(d.fd) {
			continue
		}
		w, h, err := getSize(d.fd)
		if err != nil {
			info.Error = fmt.Sprintf("%s: %v", d.name, err)
			continue
		}
		if w <= 0 || h <= 0 {
			continue
		}
		return screenInfo{Size: geom.Size{W: w, H: h}, Source: d.name}
	}
	return info
}

// startupTracePayload records what the popup host starts with.
func startupTracePayload(cfg config.Config, screen screenInfo) map[string]interface{} {
	menuSource := "sample"
	if cfg.App.MenuPath != "" {
		menuSource = cfg.App.MenuPath
	}
	themeMode := "menu"
	if cfg.App.ThemeSet {
		themeMode = cfg.App.Theme.String()
	}
	mode := "interactive"
	switch {
	case cfg.App.List:
		mode = "list"
	case cfg.App.Once:
		mode = "once"
	}
	popup := map[string]interface{}{
		"mode":            mode,
		"menu":            menuSource,
		"theme":           themeMode,
		"accelerators":    cfg.App.Accelerators.String(),
		"keepOpenOnCheck": cfg.App.KeepOpenOnCheck,
		"embeddedSurface": cfg.App.EmbeddedSurface,
		"showDelay":       cfg.App.ShowDelay.String(),
	}
	if cfg.App.Once {
		popup["anchor"] = cfg.App.Anchor
	}
	if cfg.App.ThemeFile != "" {
		popup["themeFile"] = cfg.App.ThemeFile
		popup["themePoll"] = cfg.App.ThemePoll.String()
	}
	return map[string]interface{}{
		"argv":    cfg.Args,
		"flags":   cfg.Flags,
		"popup":   popup,
		"screen":  screen,
		"logFile": logging.Path(),
	}
}
