package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGBA value.
type Color struct {
	R, G, B, A uint8
}

// Palette is the fixed set of selection colors offered when creating a tracker.
var Palette = []string{
	"#fd4c49", "#ff881e", "#007bfa", "#6e44fe", "#33cf69", "#e66dd4",
	"#f9d4d4", "#34a7fe", "#46e69d", "#35347c", "#ff674d", "#ff99cc",
	"#f6c48b", "#7994f5", "#832cf1", "#ad56da", "#8d72e6", "#2fd058",
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	alpha := uint8(0xff)
	switch len(s) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	default:
		return Color{}, fmt.Errorf("invalid color %q: expected #rrggbb or #rrggbbaa", s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// MustParseColor is ParseColor for known-good literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns "#rrggbb", with an alpha suffix only when not fully opaque.
func (c Color) Hex() string {
	h := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
	if c.A != 0xff {
		h += fmt.Sprintf("%02x", c.A)
	}
	return h
}

func (c Color) IsZero() bool {
	return c == Color{}
}

func (c Color) String() string {
	return c.Hex()
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
