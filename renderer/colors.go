package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/palette"
	"github.com/pthm-cable/canopy/scene"
)

// Sky colours with the sun on the horizon and overhead.
const (
	skyLowTop    = "#f2a65a"
	skyLowBottom = "#f7d9a8"
	skyHighTop   = "#6fb7e8"
	skyHighBot   = "#d8eef7"

	rayColor  = "#fff6c8"
	gapColor  = "#ffeaa0"
	glowColor = "#fffacd"
	fogColor  = "#e8f0ea"
)

// toneHex picks the preset colour for a tone.
func toneHex(p forest.Palette, t scene.Tone) string {
	switch t {
	case scene.ToneUnderstory:
		return p.Understory
	case scene.ToneFloor:
		return p.Floor
	case scene.ToneTrunk:
		return p.Trunk
	default:
		return p.Canopy
	}
}

// ToneColor resolves the fill for a scene element: the preset tone, shifted
// by the element's brightness offset, then shaded by the layer's brightness
// and faded by opacity.
func ToneColor(p forest.Palette, t scene.Tone, shift, brightness, opacity float64) rl.Color {
	hex := toneHex(p, t)
	if shift != 0 {
		hex = palette.AdjustBrightness(hex, shift)
	}
	return palette.WithAlpha(palette.Shade(hex, brightness), opacity)
}

// SkyColors returns the top and bottom of the sky gradient for a sun
// intensity in [0,1]. Low sun warms the sky.
func SkyColors(intensity float64) (top, bottom rl.Color) {
	return palette.Mix(skyLowTop, skyHighTop, intensity), palette.Mix(skyLowBottom, skyHighBot, intensity)
}

// BandColor is the translucent wash behind a layer band.
func BandColor(p forest.Palette, id forest.LayerID, brightness float64) rl.Color {
	tone := scene.ToneCanopy
	switch id {
	case forest.Understory:
		tone = scene.ToneUnderstory
	case forest.ForestFloor:
		tone = scene.ToneFloor
	}
	alpha := 0.35
	if id == forest.Emergent {
		alpha = 0.08
	}
	return ToneColor(p, tone, 0, brightness, alpha)
}

// GlowColor is the fill for the ambient floor glow.
func GlowColor(opacity float64) rl.Color {
	return palette.WithAlpha(palette.Shade(glowColor, 100), opacity)
}

// RayColor is the fill for a light shaft.
func RayColor(opacity float32) rl.Color {
	return palette.WithAlpha(palette.Shade(rayColor, 100), float64(opacity))
}
