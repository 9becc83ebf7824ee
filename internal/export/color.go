package export

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrBadColor is returned for color strings that are neither hex nor a
// known color name.
var ErrBadColor = errors.New("export: unrecognized color")

// Colors used when drawing the tree.
var (
	TreeColor     = color.RGBA{0x2e, 0x7d, 0x32, 0xff}
	OutlineColor  = color.RGBA{0x1b, 0x5e, 0x20, 0xff}
	OrnamentColor = color.RGBA{0xd3, 0x2f, 0x2f, 0xff}
)

// ParseColor accepts #rgb, #rrggbb and SVG/CSS color names.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// colorOr parses s, returning fallback for empty or invalid input.
func colorOr(s string, fallback color.RGBA) color.RGBA {
	if c, err := ParseColor(s); err == nil {
		return c
	}
	return fallback
}
