package typeset

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	black = colorful.Color{R: 0, G: 0, B: 0}
	white = colorful.Color{R: 1, G: 1, B: 1}
)

// ParseHexColor parses "#rrggbb" into an opaque color.
func ParseHexColor(hex string) (color.Color, error) {
	parsed, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return parsed.Clamped(), nil
}

// ContrastingColor returns black or white, whichever is further from the
// background in CIEDE2000 distance.
func ContrastingColor(background color.Color) color.Color {
	bg, ok := colorful.MakeColor(background)
	if !ok {
		return color.Black
	}
	if bg.DistanceCIEDE2000(black) >= bg.DistanceCIEDE2000(white) {
		return color.Black
	}
	return color.White
}
