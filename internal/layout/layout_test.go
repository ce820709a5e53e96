package layout

import (
	"errors"
	"reflect"
	"testing"
	"unicode/utf8"

	"github.com/atomicstack/popup-menu/internal/geom"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/theme"
)

// fixedMeasurer reports 7 units per rune and a 16 unit line, and zero width
// for labels listed in missing.
type fixedMeasurer struct {
	missing map[string]bool
}

func (f fixedMeasurer) MeasureText(text string, _ theme.Font) geom.Size {
	if f.missing[text] {
		return geom.Size{W: 0, H: 16}
	}
	return geom.Size{W: 7 * utf8.RuneCountInString(text), H: 16}
}

func defaultTheme() theme.Theme {
	return theme.NewResolver(nil, nil).Resolve(theme.Config{})
}

func mustBuild(t *testing.T, b *menu.Builder) *menu.Menu {
	t.Helper()
	m, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return m
}

func TestComputeRowsAndWidth(t *testing.T) {
	m := mustBuild(t, menu.NewBuilder().
		Check("a", "Alpha", true).
		Separator().
		Radio("b", "Bravo", "g", true).
		Radio("c", "Charlie", "g", false))
	g, err := New(fixedMeasurer{}).Compute(m, defaultTheme())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	wantY := []int{0, 32, 49, 81}
	wantH := []int{32, 17, 32, 32}
	for i, box := range g.Boxes {
		if box.Rect.Y != wantY[i] || box.Rect.H != wantH[i] {
			t.Fatalf("box %d: expected y=%d h=%d, got %+v", i, wantY[i], wantH[i], box.Rect)
		}
		if box.Rect.W != 77 {
			t.Fatalf("box %d: expected uniform width 77, got %d", i, box.Rect.W)
		}
	}
	if g.Size != (geom.Size{W: 77, H: 113}) {
		t.Fatalf("unexpected size %+v", g.Size)
	}
	if g.CheckW != 28 || g.LabelX != 28 || g.ArrowW != 0 || g.AccelW != 0 {
		t.Fatalf("unexpected columns %+v", g)
	}
}

func TestComputeInvariants(t *testing.T) {
	sub := menu.NewBuilder().Text("x", "X")
	m := mustBuild(t, menu.NewBuilder().
		Text("open", "Open", menu.WithAccelerator("Ctrl+O"), menu.WithIcon("doc.svg")).
		Separator().
		Text("a-much-longer-item", "A much longer label", menu.WithAccelerator("Ctrl+Shift+L")).
		Text("hidden", "Hidden", menu.Hidden()).
		Submenu("more", "More", sub))
	th := defaultTheme()
	th.Metrics.BorderSize = 1
	th.Metrics.VerticalPadding = 4
	th.Metrics.HorizontalPadding = 2

	engine := New(fixedMeasurer{})
	g, err := engine.Compute(m, th)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(g.Boxes) != 4 {
		t.Fatalf("expected hidden item to be skipped, got %d boxes", len(g.Boxes))
	}
	sum := 0
	for i, box := range g.Boxes {
		sum += box.Rect.H
		if i > 0 {
			prev := g.Boxes[i-1].Rect
			if box.Rect.Intersects(prev) {
				t.Fatalf("boxes %d and %d overlap", i-1, i)
			}
			if box.Rect.Y != prev.Bottom() {
				t.Fatalf("box %d does not follow box %d", i, i-1)
			}
		}
	}
	outer := 2*th.Metrics.VerticalPadding + 2*th.Metrics.BorderSize
	if g.Size.H != sum+outer {
		t.Fatalf("expected height %d, got %d", sum+outer, g.Size.H)
	}
	if g.Boxes[0].Rect.X != 3 || g.Boxes[0].Rect.Y != 5 {
		t.Fatalf("expected first box inset by border and padding, got %+v", g.Boxes[0].Rect)
	}
	if g.ArrowW != th.Metrics.ArrowColumn {
		t.Fatalf("expected arrow column reserved")
	}
	if g.AccelW != 7*len("Ctrl+Shift+L") {
		t.Fatalf("expected widest accelerator width, got %d", g.AccelW)
	}
	if g.ArrowX+g.ArrowW > g.Boxes[0].Rect.W || g.AccelX+g.AccelW > g.ArrowX {
		t.Fatalf("columns do not fit inside the row: %+v", g)
	}

	again, err := engine.Compute(m, th)
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}
	if !reflect.DeepEqual(g, again) {
		t.Fatalf("expected identical geometry for identical inputs")
	}
}

func TestComputeZeroWidthFallsBack(t *testing.T) {
	m := mustBuild(t, menu.NewBuilder().Text("t", "tofu"))
	th := defaultTheme()
	g, err := New(fixedMeasurer{missing: map[string]bool{"tofu": true}}).Compute(m, th)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if g.Boxes[0].Rect.W != th.Metrics.MinItemWidth {
		t.Fatalf("expected min width %d, got %d", th.Metrics.MinItemWidth, g.Boxes[0].Rect.W)
	}
	if g.Boxes[0].Rect.H <= 0 {
		t.Fatalf("expected a non-empty row")
	}
}

func TestComputeAllHidden(t *testing.T) {
	m := mustBuild(t, menu.NewBuilder().Text("t", "T", menu.Hidden()))
	if _, err := New(fixedMeasurer{}).Compute(m, defaultTheme()); !errors.Is(err, ErrNoVisibleItems) {
		t.Fatalf("expected ErrNoVisibleItems, got %v", err)
	}
}

func TestItemAt(t *testing.T) {
	m := mustBuild(t, menu.NewBuilder().Text("a", "A").Text("b", "B"))
	g, err := New(fixedMeasurer{}).Compute(m, defaultTheme())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if got := g.ItemAt(geom.Point{X: 1, Y: 40}); got != 1 {
		t.Fatalf("expected second row, got %d", got)
	}
	if got := g.ItemAt(geom.Point{X: 1, Y: 400}); got != -1 {
		t.Fatalf("expected miss, got %d", got)
	}
	b, _ := m.FindByID("b")
	if g.IndexOf(b) != 1 {
		t.Fatalf("expected IndexOf to find b")
	}
}
