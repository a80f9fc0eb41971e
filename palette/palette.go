// Package palette converts forest preset colours into drawable colours.
package palette

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// shadeStrength limits how far Shade darkens a colour at minimum brightness.
const shadeStrength = 0.75

var black = colorful.Color{R: 0, G: 0, B: 0}

// Parse parses a "#rrggbb" or "#rgb" colour.
func Parse(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parsing colour %q: %w", hex, err)
	}
	return c, nil
}

// AdjustBrightness shifts every channel of hex by round(2.55*percent), clamped
// to [0,255]. Negative percentages darken. Invalid input is returned unchanged.
func AdjustBrightness(hex string, percent float64) string {
	c, err := Parse(hex)
	if err != nil {
		return hex
	}
	// Half-up rounding keeps -25.5 at -25.
	amt := int(math.Floor(2.55*percent + 0.5))
	r, g, b := c.RGB255()
	out := colorful.Color{
		R: float64(shift(r, amt)) / 255,
		G: float64(shift(g, amt)) / 255,
		B: float64(shift(b, amt)) / 255,
	}
	return out.Hex()
}

func shift(v uint8, amt int) int {
	n := int(v) + amt
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// Shade darkens hex according to a display brightness percentage in [10,100].
// Blending happens in Lab space so hue survives heavy shading.
func Shade(hex string, brightness float64) color.RGBA {
	c, err := Parse(hex)
	if err != nil {
		return color.RGBA{R: 255, G: 0, B: 255, A: 255}
	}
	b := math.Max(0, math.Min(100, brightness))
	t := (1 - b/100) * shadeStrength
	if t == 0 {
		return toRGBA(c)
	}
	return toRGBA(c.BlendLab(black, t).Clamped())
}

// MustParseRGBA parses hex and panics on failure. For compile-time constants only.
func MustParseRGBA(hex string) color.RGBA {
	c, err := Parse(hex)
	if err != nil {
		panic(err)
	}
	return toRGBA(c)
}

// WithAlpha returns c with its alpha set from an opacity in [0,1].
func WithAlpha(c color.RGBA, opacity float64) color.RGBA {
	o := math.Max(0, math.Min(1, opacity))
	c.A = uint8(math.Round(o * 255))
	return c
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Mix blends a toward b by t in [0,1] in Lab space. Invalid input yields
// magenta so it stands out on screen.
func Mix(a, b string, t float64) color.RGBA {
	ca, err := Parse(a)
	if err != nil {
		return color.RGBA{R: 255, G: 0, B: 255, A: 255}
	}
	cb, err := Parse(b)
	if err != nil {
		return color.RGBA{R: 255, G: 0, B: 255, A: 255}
	}
	t = math.Max(0, math.Min(1, t))
	switch t {
	case 0:
		return toRGBA(ca)
	case 1:
		return toRGBA(cb)
	}
	return toRGBA(ca.BlendLab(cb, t).Clamped())
}
