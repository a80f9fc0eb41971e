package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/canopy/scene"
)

// SunRenderer renders the sun disc with a soft radial glow.
type SunRenderer struct{}

// NewSunRenderer creates a new sun renderer.
func NewSunRenderer() *SunRenderer {
	return &SunRenderer{}
}

// Draw renders the sun glow and disc.
func (r *SunRenderer) Draw(v View, sun scene.Sun) {
	c := v.Point(float32(sun.X), float32(sun.Y))
	intensity := float32(sun.Intensity)
	radius := v.Len(float32(sun.Radius))

	r.drawRadialLight(c.X, c.Y, radius*8, intensity)
	r.drawSunGlow(c.X, c.Y, radius, intensity)
}

// drawRadialLight draws a subtle radial gradient from the light source.
func (r *SunRenderer) drawRadialLight(x, y, maxRadius, intensity float32) {
	steps := 12
	for i := steps; i >= 0; i-- {
		t := float32(i) / float32(steps)
		radius := maxRadius * t

		// Fast falloff - light concentrated near source
		falloff := float32(math.Pow(float64(1-t), 4.0))
		alpha := falloff * 0.06 * (0.3 + 0.7*intensity) * 255

		if alpha < 1 {
			continue
		}

		// Warm color
		color := rl.Color{R: 255, G: 220, B: 150, A: uint8(alpha)}
		rl.DrawCircle(int32(x), int32(y), radius, color)
	}
}

// drawSunGlow draws the halo rings and the disc. A low sun is redder.
func (r *SunRenderer) drawSunGlow(x, y, radius, intensity float32) {
	glowLayers := []struct {
		scale float32
		alpha float32
	}{
		{2.2, 20},
		{1.6, 40},
		{1.25, 70},
	}

	for _, layer := range glowLayers {
		alpha := layer.alpha * (0.5 + 0.5*intensity)
		color := rl.Color{R: 255, G: 225, B: 160, A: uint8(alpha)}
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, radius*layer.scale, color)
	}

	g := uint8(170 + 70*intensity)
	b := uint8(60 + 120*intensity)
	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, radius, rl.Color{R: 255, G: g, B: b, A: 255})
}
