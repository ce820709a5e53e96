package theme

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB value laid out as 0xRRGGBB.
type Color uint32

// RGB packs three channels into a Color.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// Hex renders the colour as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R(), c.G(), c.B())
}

func (c Color) String() string { return c.Hex() }

// ParseColor accepts #rrggbb, rrggbb and #rgb forms.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty colour")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	parsed, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("parse colour %q: %w", s, err)
	}
	r, g, b := parsed.RGB255()
	return RGB(r, g, b), nil
}

// UnmarshalYAML lets definition files spell colours as hex strings.
func (c *Color) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseColor(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
