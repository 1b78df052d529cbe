package theme

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHex converts "#RGB", "#RRGGBB" or "#RRGGBBAA" to a color. Alpha is
// straight, not premultiplied.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}

	if len(h) == 6 {
		h += "ff"
	}

	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("parsing color %q: want #RRGGBB", s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parsing color %q: %w", s, err)
	}

	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustHex is ParseHex for compile-time constants.
func MustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}

	return c
}
