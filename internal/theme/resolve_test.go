package theme

import "testing"

type fakeSystem struct{ dark bool }

func (f *fakeSystem) IsDark() bool { return f.dark }

type fakeFonts struct{ known map[string]bool }

func (f fakeFonts) HasFamily(family string) bool { return f.known[family] }
func (f fakeFonts) DefaultFamily() string        { return "Fallback Sans" }

func TestResolveModeDefaults(t *testing.T) {
	r := NewResolver(nil, nil)
	light := r.Resolve(Config{})
	if light.Dark {
		t.Fatalf("expected light by default")
	}
	if light.Colors != DefaultScheme(false) {
		t.Fatalf("expected light scheme, got %+v", light.Colors)
	}
	dark := r.Resolve(Config{Mode: ModeDark})
	if !dark.Dark || dark.Colors.Background != 0x252526 {
		t.Fatalf("expected dark scheme, got %+v", dark.Colors)
	}
	if dark.Metrics != DefaultMetrics() {
		t.Fatalf("expected default metrics")
	}
	if dark.Font.Family != DefaultFamily || dark.Font.Weight != WeightNormal || dark.Font.Size != 12 {
		t.Fatalf("unexpected default font %+v", dark.Font)
	}
}

func TestResolveSystemModeIsReevaluated(t *testing.T) {
	sys := &fakeSystem{}
	r := NewResolver(sys, nil)
	cfg := Config{Mode: ModeSystem}
	if r.Resolve(cfg).Dark {
		t.Fatalf("expected light while system is light")
	}
	sys.dark = true
	if !r.Resolve(cfg).Dark {
		t.Fatalf("expected dark after the system switched")
	}
}

func TestResolveOverridePrecedence(t *testing.T) {
	cfg := Config{
		Mode: ModeDark,
		Dark: SchemeOverride{Text: Some(RGB(1, 2, 3))},
		// light overrides must not leak into dark resolution
		Light:    SchemeOverride{Background: Some(RGB(9, 9, 9))},
		DarkFont: FontOverride{Size: Some(14.0), Weight: Some(WeightBold)},
		Metrics:  MetricsOverride{SubmenuOffset: Some(4), BorderSize: Some(-2)},
	}
	th := NewResolver(nil, nil).Resolve(cfg)
	if th.Colors.Text != RGB(1, 2, 3) {
		t.Fatalf("expected text override, got %s", th.Colors.Text)
	}
	if th.Colors.Background != DefaultScheme(true).Background {
		t.Fatalf("expected dark default background, got %s", th.Colors.Background)
	}
	if th.Font.Size != 14 || th.Font.Weight != WeightBold {
		t.Fatalf("expected font override, got %+v", th.Font)
	}
	if th.Metrics.SubmenuOffset != 4 {
		t.Fatalf("expected submenu offset override")
	}
	if th.Metrics.BorderSize != 0 {
		t.Fatalf("expected negative border override to be ignored, got %d", th.Metrics.BorderSize)
	}
}

func TestResolveUnknownFamilyFallsBack(t *testing.T) {
	fonts := fakeFonts{known: map[string]bool{"Inter": true}}
	r := NewResolver(nil, fonts)
	th := r.Resolve(Config{LightFont: FontOverride{Family: Some("Inter")}})
	if th.Font.Family != "Inter" {
		t.Fatalf("expected known family, got %q", th.Font.Family)
	}
	th = r.Resolve(Config{LightFont: FontOverride{Family: Some("No Such Font")}})
	if th.Font.Family != "Fallback Sans" {
		t.Fatalf("expected fallback family, got %q", th.Font.Family)
	}
}

func TestWithBaseMetrics(t *testing.T) {
	base := Metrics{ItemHorizontalPadding: 1, MinRowHeight: 1, SeparatorSize: 1}
	th := NewResolver(nil, nil).WithBaseMetrics(base).Resolve(Config{})
	if th.Metrics != base {
		t.Fatalf("expected base metrics, got %+v", th.Metrics)
	}
}

func TestParseColorAndMode(t *testing.T) {
	c, err := ParseColor("3b3a3a")
	if err != nil || c != 0x3b3a3a {
		t.Fatalf("expected 0x3b3a3a, got %s (%v)", c, err)
	}
	if c.Hex() != "#3b3a3a" {
		t.Fatalf("unexpected hex %q", c.Hex())
	}
	if _, err := ParseColor("#zzzzzz"); err == nil {
		t.Fatalf("expected parse error")
	}
	if m, err := ParseMode("System"); err != nil || m != ModeSystem {
		t.Fatalf("expected system mode, got %v (%v)", m, err)
	}
	if _, err := ParseMode("sepia"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
