package theme

import (
	"fmt"
	"strings"
)

// Mode selects the colour set a menu is drawn with.
type Mode int

const (
	ModeLight Mode = iota
	ModeDark
	ModeSystem
)

func (m Mode) String() string {
	switch m {
	case ModeDark:
		return "dark"
	case ModeSystem:
		return "system"
	default:
		return "light"
	}
}

// ParseMode maps a configuration string onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "light":
		return ModeLight, nil
	case "dark":
		return ModeDark, nil
	case "system":
		return ModeSystem, nil
	}
	return ModeLight, fmt.Errorf("unknown theme mode %q", s)
}

// UnmarshalYAML accepts the ParseMode spellings.
func (m *Mode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseMode(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Weight is a CSS-style font weight.
type Weight int

const (
	WeightThin   Weight = 100
	WeightLight  Weight = 300
	WeightNormal Weight = 400
	WeightMedium Weight = 500
	WeightBold   Weight = 700
)

// Scheme is the concrete colour set for one mode.
type Scheme struct {
	Text        Color
	Accelerator Color
	Border      Color
	Separator   Color
	Disabled    Color
	Background  Color
	Highlight   Color
}

// Font describes the face used for labels and accelerator hints.
type Font struct {
	Family string
	Size   float64
	Weight Weight
}

// Metrics are the spacing values used by layout and painting.
type Metrics struct {
	BorderSize            int
	VerticalPadding       int
	HorizontalPadding     int
	ItemVerticalPadding   int
	ItemHorizontalPadding int
	SeparatorSize         int
	SubmenuOffset         int
	CheckColumn           int
	IconSize              int
	ArrowColumn           int
	AcceleratorGap        int
	MinRowHeight          int
	MinItemWidth          int
}

// Theme is a fully resolved set of draw attributes. Every field is concrete.
type Theme struct {
	Dark    bool
	Colors  Scheme
	Font    Font
	Metrics Metrics
}

// SchemeOverride carries the colours a caller wants to replace. Nil fields
// keep the mode default.
type SchemeOverride struct {
	Text        *Color `yaml:"text"`
	Accelerator *Color `yaml:"accelerator"`
	Border      *Color `yaml:"border"`
	Separator   *Color `yaml:"separator"`
	Disabled    *Color `yaml:"disabled"`
	Background  *Color `yaml:"background"`
	Highlight   *Color `yaml:"highlight"`
}

// FontOverride replaces parts of the default font.
type FontOverride struct {
	Family *string  `yaml:"family"`
	Size   *float64 `yaml:"size"`
	Weight *Weight  `yaml:"weight"`
}

// MetricsOverride replaces individual metrics.
type MetricsOverride struct {
	BorderSize            *int `yaml:"border_size"`
	VerticalPadding       *int `yaml:"vertical_padding"`
	HorizontalPadding     *int `yaml:"horizontal_padding"`
	ItemVerticalPadding   *int `yaml:"item_vertical_padding"`
	ItemHorizontalPadding *int `yaml:"item_horizontal_padding"`
	SeparatorSize         *int `yaml:"separator_size"`
	SubmenuOffset         *int `yaml:"submenu_offset"`
	CheckColumn           *int `yaml:"check_column"`
	IconSize              *int `yaml:"icon_size"`
	ArrowColumn           *int `yaml:"arrow_column"`
	AcceleratorGap        *int `yaml:"accelerator_gap"`
	MinRowHeight          *int `yaml:"min_row_height"`
	MinItemWidth          *int `yaml:"min_item_width"`
}

// Config is the partially specified theme a menu is built with.
type Config struct {
	Mode      Mode            `yaml:"mode"`
	Dark      SchemeOverride  `yaml:"dark"`
	Light     SchemeOverride  `yaml:"light"`
	DarkFont  FontOverride    `yaml:"dark_font"`
	LightFont FontOverride    `yaml:"light_font"`
	Metrics   MetricsOverride `yaml:"metrics"`
}

// Some returns a pointer to v, for filling override fields.
func Some[T any](v T) *T {
	return &v
}
