// Package colors resolves CSS color names and converts between color forms
package colors

import (
	"fmt"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Lookup resolves a keyword to six hex digits (no '#') when it is a CSS
// color name. Names are matched case-sensitively against the lowercase
// table. Keywords made only of hex digits are not names, and neither is
// transparent, which has no opaque hex form.
func Lookup(name string) (string, bool) {
	if name == "" || name != strings.ToLower(name) || name == "transparent" || isHex(name) {
		return "", false
	}
	c, err := csscolorparser.Parse(name)
	if err != nil {
		return "", false
	}
	return strings.TrimPrefix(c.HexString(), "#"), true
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Parse parses any CSS color form: hex with or without '#', names, rgb(),
// hsl() and so on
func Parse(value string) (csscolorparser.Color, error) {
	c, err := csscolorparser.Parse(strings.TrimSpace(value))
	if err != nil {
		return csscolorparser.Color{}, fmt.Errorf("unsupported color format: %s", value)
	}
	return c, nil
}

// FromHex parses the digits of a #rgb or #rrggbb color
func FromHex(hex string) (csscolorparser.Color, error) {
	return Parse("#" + strings.TrimPrefix(hex, "#"))
}

// Hex formats c as #rrggbb, or #rrggbbaa when it is not opaque
func Hex(c csscolorparser.Color) string {
	return c.HexString()
}

// RGB formats c as rgb() or rgba()
func RGB(c csscolorparser.Color) string {
	r, g, b, _ := c.RGBA255()
	if c.A < 1 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, trimFloat(c.A))
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.3f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Same reports whether a and b render to the same hex form
func Same(a, b csscolorparser.Color) bool {
	return a.HexString() == b.HexString()
}
