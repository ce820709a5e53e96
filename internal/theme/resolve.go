package theme

import (
	"strings"

	"github.com/atomicstack/popup-menu/internal/logging/events"
)

// DefaultFamily is used when neither the configuration nor the font catalog
// names a family.
const DefaultFamily = "Segoe UI"

var (
	darkScheme = Scheme{
		Text:        0xe7e0e0,
		Accelerator: 0xc5c1c1,
		Border:      0x454545,
		Separator:   0x454545,
		Disabled:    0x565659,
		Background:  0x252526,
		Highlight:   0x3b3a3a,
	}
	lightScheme = Scheme{
		Text:        0x494747,
		Accelerator: 0x635e5e,
		Border:      0xe9e2e2,
		Separator:   0xe9e2e2,
		Disabled:    0xc5c1c1,
		Background:  0xffffff,
		Highlight:   0xefefef,
	}
	defaultFont = Font{
		Family: DefaultFamily,
		Size:   12,
		Weight: WeightNormal,
	}
	defaultMetrics = Metrics{
		BorderSize:            0,
		VerticalPadding:       0,
		HorizontalPadding:     0,
		ItemVerticalPadding:   8,
		ItemHorizontalPadding: 0,
		SeparatorSize:         1,
		SubmenuOffset:         -3,
		CheckColumn:           28,
		IconSize:              16,
		ArrowColumn:           20,
		AcceleratorGap:        28,
		MinRowHeight:          16,
		MinItemWidth:          48,
	}
)

// DefaultScheme returns the built-in colours for dark or light mode.
func DefaultScheme(dark bool) Scheme {
	if dark {
		return darkScheme
	}
	return lightScheme
}

// DefaultMetrics returns the built-in spacing values.
func DefaultMetrics() Metrics {
	return defaultMetrics
}

// SystemTheme reports the platform's current light/dark preference.
type SystemTheme interface {
	IsDark() bool
}

// FontCatalog answers whether a family can be drawn and which family to use
// otherwise.
type FontCatalog interface {
	HasFamily(family string) bool
	DefaultFamily() string
}

// Resolver merges a Config with the built-in defaults.
type Resolver struct {
	system SystemTheme
	fonts  FontCatalog
	base   Metrics
}

// NewResolver builds a resolver. Either collaborator may be nil: system mode
// then resolves to light and every font family is accepted.
func NewResolver(system SystemTheme, fonts FontCatalog) *Resolver {
	return &Resolver{system: system, fonts: fonts, base: defaultMetrics}
}

// WithBaseMetrics replaces the library metric defaults, for backends whose
// units are not pixels.
func (r *Resolver) WithBaseMetrics(m Metrics) *Resolver {
	cp := *r
	cp.base = m
	return &cp
}

// Resolve produces a concrete Theme. System mode is evaluated on every call.
func (r *Resolver) Resolve(cfg Config) Theme {
	dark := false
	switch cfg.Mode {
	case ModeDark:
		dark = true
	case ModeSystem:
		dark = r.system != nil && r.system.IsDark()
	}

	colors := DefaultScheme(dark)
	font := defaultFont
	if dark {
		applyScheme(&colors, cfg.Dark)
		applyFont(&font, cfg.DarkFont)
	} else {
		applyScheme(&colors, cfg.Light)
		applyFont(&font, cfg.LightFont)
	}
	if r.fonts != nil && !r.fonts.HasFamily(font.Family) {
		if family := r.fonts.DefaultFamily(); family != "" {
			font.Family = family
		}
	}
	metrics := r.base
	applyMetrics(&metrics, cfg.Metrics)

	events.Theme.Resolve(cfg.Mode.String(), dark, font.Family)
	return Theme{Dark: dark, Colors: colors, Font: font, Metrics: metrics}
}

func applyScheme(dst *Scheme, o SchemeOverride) {
	set := func(field *Color, v *Color) {
		if v != nil {
			*field = *v
		}
	}
	set(&dst.Text, o.Text)
	set(&dst.Accelerator, o.Accelerator)
	set(&dst.Border, o.Border)
	set(&dst.Separator, o.Separator)
	set(&dst.Disabled, o.Disabled)
	set(&dst.Background, o.Background)
	set(&dst.Highlight, o.Highlight)
}

func applyFont(dst *Font, o FontOverride) {
	if o.Family != nil {
		family := strings.TrimSpace(*o.Family)
		if family != "" {
			dst.Family = family
		}
	}
	if o.Size != nil && *o.Size > 0 {
		dst.Size = *o.Size
	}
	if o.Weight != nil && *o.Weight > 0 {
		dst.Weight = *o.Weight
	}
}

func applyMetrics(dst *Metrics, o MetricsOverride) {
	set := func(field *int, v *int, allowNegative bool) {
		if v == nil {
			return
		}
		if *v < 0 && !allowNegative {
			return
		}
		*field = *v
	}
	set(&dst.BorderSize, o.BorderSize, false)
	set(&dst.VerticalPadding, o.VerticalPadding, false)
	set(&dst.HorizontalPadding, o.HorizontalPadding, false)
	set(&dst.ItemVerticalPadding, o.ItemVerticalPadding, false)
	set(&dst.ItemHorizontalPadding, o.ItemHorizontalPadding, false)
	set(&dst.SeparatorSize, o.SeparatorSize, false)
	set(&dst.SubmenuOffset, o.SubmenuOffset, true)
	set(&dst.CheckColumn, o.CheckColumn, false)
	set(&dst.IconSize, o.IconSize, false)
	set(&dst.ArrowColumn, o.ArrowColumn, false)
	set(&dst.AcceleratorGap, o.AcceleratorGap, false)
	set(&dst.MinRowHeight, o.MinRowHeight, false)
	set(&dst.MinItemWidth, o.MinItemWidth, false)
}
