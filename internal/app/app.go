package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atomicstack/popup-menu/internal/accel"
	"github.com/atomicstack/popup-menu/internal/backend"
	"github.com/atomicstack/popup-menu/internal/format/table"
	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/menuevent"
	"github.com/atomicstack/popup-menu/internal/platform/term"
	"github.com/atomicstack/popup-menu/internal/theme"
	"github.com/atomicstack/popup-menu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"
)

// ErrNoResult is returned in once mode when the program exits before a popup
// was ever shown.
var ErrNoResult = errors.New("program exited without a popup result")

// Config describes user-provided application options.
type Config struct {
	MenuPath        string
	Theme           theme.Mode
	ThemeSet        bool
	Accelerators    accel.Mode
	KeepOpenOnCheck bool
	EmbeddedSurface bool
	Anchor          geom.Point
	Once            bool
	List            bool
	ShowDelay       time.Duration
	ThemeFile       string
	ThemePoll       time.Duration
}

// Run bootstraps and executes the Bubble Tea program on a screen of the
// given size. In once mode the menu pops up as soon as the terminal reports
// its size and the outcome is written to out after the program exits.
func Run(cfg Config, screen geom.Size, out io.Writer) error {
	m, err := LoadMenu(cfg)
	if err != nil {
		return err
	}
	if cfg.List {
		return List(m, out)
	}
	host := term.NewHost(screen.W, screen.H, lipgloss.HasDarkBackground())
	resolver := theme.NewResolver(host, host).WithBaseMetrics(term.Metrics())
	ctrl := ui.New(m, host, host, resolver, ui.Options{
		Accelerators:    cfg.Accelerators,
		KeepOpenOnCheck: cfg.KeepOpenOnCheck,
		EmbeddedSurface: cfg.EmbeddedSurface,
		ShowDelay:       cfg.ShowDelay,
	})

	var watcher *backend.Watcher
	if cfg.ThemeFile != "" {
		watcher = backend.NewWatcher(FileThemeSource(cfg.ThemeFile), cfg.ThemePoll)
		defer watcher.Stop()
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus()}
	if !cfg.Once {
		model := term.NewModel(ctrl, host, resolver, watcher, term.Options{})
		return runProgram(tea.NewProgram(model, programOpts...))
	}

	handles := make(chan *menuevent.Handle, 1)
	model := term.NewModel(ctrl, host, resolver, watcher, term.Options{
		PopupOnStart: true,
		Anchor:       cfg.Anchor,
		QuitOnResult: true,
		OnHandle:     func(h *menuevent.Handle) { handles <- h },
	})
	program := tea.NewProgram(model, programOpts...)

	var result menuevent.Event
	exited := make(chan struct{})
	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		defer close(exited)
		return runProgram(program)
	})
	g.Go(func() error {
		ev, err := awaitResult(ctx, handles, exited)
		if err != nil {
			return err
		}
		result = ev
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, term.Describe(result))
	return err
}

func runProgram(p *tea.Program) error {
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// awaitResult waits for the popup handle and then for its outcome. A program
// that exits without handing one over yields ErrNoResult.
func awaitResult(ctx context.Context, handles <-chan *menuevent.Handle, exited <-chan struct{}) (menuevent.Event, error) {
	var h *menuevent.Handle
	select {
	case h = <-handles:
	case <-exited:
		select {
		case h = <-handles:
		default:
			return menuevent.Event{}, ErrNoResult
		}
	case <-ctx.Done():
		return menuevent.Event{}, ctx.Err()
	}
	return h.Await(ctx)
}

// LoadMenu builds the menu named by cfg, or the built-in sample when no
// definition file is configured.
func LoadMenu(cfg Config) (*menu.Menu, error) {
	var (
		m   *menu.Menu
		err error
	)
	if cfg.MenuPath != "" {
		m, err = menu.LoadDefinition(cfg.MenuPath)
	} else {
		m, err = SampleMenu()
	}
	if err != nil {
		return nil, err
	}
	if cfg.ThemeSet {
		if err := m.SetThemeMode(cfg.Theme); err != nil {
			return nil, fmt.Errorf("apply theme mode: %w", err)
		}
	}
	return m, nil
}

// SampleMenu is the menu shown when no definition file is given.
func SampleMenu() (*menu.Menu, error) {
	sort := menu.NewBuilder().
		Radio("sort-name", "Name", "sort", true).
		Radio("sort-size", "Size", "sort", false).
		Radio("sort-date", "Date modified", "sort", false)
	appearance := menu.NewBuilder().
		Radio("theme-system", "Follow system", "theme", true).
		Radio("theme-light", "Light", "theme", false).
		Radio("theme-dark", "Dark", "theme", false)
	return menu.NewBuilder().
		Theme(theme.Config{Mode: theme.ModeSystem}).
		Text("open", "Open", menu.WithAccelerator("Ctrl+O"), menu.WithIcon("document-open-symbolic")).
		Text("copy", "Copy", menu.WithAccelerator("Ctrl+C"), menu.WithIcon("edit-copy-symbolic")).
		Text("paste", "Paste", menu.WithAccelerator("Ctrl+V"), menu.Disabled()).
		Separator().
		Check("hidden", "Show hidden files", false, menu.WithAccelerator("Ctrl+H")).
		Submenu("sort", "Sort by", sort).
		Submenu("appearance", "Appearance", appearance).
		Separator().
		Text("quit", "Quit", menu.WithAccelerator("Ctrl+Q")).
		Build()
}

// List writes the menu tree as an aligned table, one row per item.
func List(m *menu.Menu, out io.Writer) error {
	tb := table.New(
		table.Column{Title: "ITEM"},
		table.Column{Title: "KIND"},
		table.Column{Title: "STATE"},
		table.Column{Title: "KEY", Align: table.AlignRight},
		table.Column{Title: "ID"},
	)
	listItems(tb, m, 0)
	_, err := io.WriteString(out, tb.String())
	return err
}

func listItems(tb *table.Table, m *menu.Menu, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, it := range m.Items() {
		if it.IsSeparator() {
			tb.Add(indent+"----", it.Kind().String())
			continue
		}
		var state []string
		if it.Checked() {
			state = append(state, "checked")
		}
		if !it.Enabled() {
			state = append(state, "disabled")
		}
		if !it.Visible() {
			state = append(state, "hidden")
		}
		tb.Add(indent+it.Label(), it.Kind().String(), strings.Join(state, ","), it.Accelerator(), it.ID())
		if sub := it.Submenu(); sub != nil {
			listItems(tb, sub, depth+1)
		}
	}
}

// FileThemeSource reports the theme preference stored in path as "dark" or
// "light".
func FileThemeSource(path string) backend.ThemeSource {
	return backend.ThemeSourceFunc(func() (bool, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return false, fmt.Errorf("read theme file: %w", err)
		}
		mode, err := theme.ParseMode(strings.TrimSpace(string(data)))
		if err != nil {
			return false, fmt.Errorf("theme file %s: %w", path, err)
		}
		if mode == theme.ModeSystem {
			return false, fmt.Errorf("theme file %s: want dark or light, got system", path)
		}
		return mode == theme.ModeDark, nil
	})
}
