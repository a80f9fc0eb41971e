package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/palette"
	"github.com/pthm-cable/canopy/scene"
)

// LightRenderer renders light shafts and the sunlit patches under canopy gaps.
type LightRenderer struct{}

// NewLightRenderer creates a new light renderer.
func NewLightRenderer() *LightRenderer {
	return &LightRenderer{}
}

// DrawRays renders every light shaft as a tapered line with a soft halo.
func (l *LightRenderer) DrawRays(v View, s *scene.Scene) {
	rl.BeginBlendMode(rl.BlendAdditive)
	s.EachRay(func(ray scene.Ray) {
		from := v.Point(ray.X1, ray.Y1)
		to := v.Point(ray.X2, ray.Y2)
		width := v.Len(ray.Width)
		rl.DrawLineEx(from, to, width*3, RayColor(ray.Opacity*0.25))
		rl.DrawLineEx(from, to, width, RayColor(ray.Opacity))
	})
	rl.EndBlendMode()
}

// DrawGlow renders the ambient glow that light reaching the floor casts
// through the stand.
func (l *LightRenderer) DrawGlow(v View, s *scene.Scene) {
	g, ok := s.Glow()
	if !ok {
		return
	}
	c := v.Point(float32(g.X), float32(g.Y))
	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DrawEllipse(int32(c.X), int32(c.Y), v.Len(float32(g.RX)), v.Len(float32(g.RY)), GlowColor(g.Opacity))
	rl.EndBlendMode()
}

// DrawGaps renders the patch of light in each gap, its pool on the floor and
// any regrowth clump the pool supports.
func (l *LightRenderer) DrawGaps(v View, s *scene.Scene) {
	floor := s.Preset().Colors
	brightness := s.Visual().Brightness.Get(forest.ForestFloor)

	s.EachGap(func(pos scene.Position, g scene.GapPatch) {
		c := v.Point(pos.X, pos.Y)
		patch := palette.WithAlpha(palette.Shade(gapColor, 100), float64(g.Intensity)*0.45)
		rl.DrawEllipse(int32(c.X), int32(c.Y), v.Len(g.RX), v.Len(g.RY), patch)

		pool := v.Point(pos.X, g.FloorY)
		poolColor := palette.WithAlpha(palette.Shade(gapColor, 100), float64(g.Intensity)*0.3)
		rl.DrawEllipse(int32(pool.X), int32(pool.Y), v.Len(g.FloorRX), v.Len(g.FloorRX*0.25), poolColor)

		if g.Regrowth {
			clump := v.Point(pos.X, g.FloorY-g.RegrowthRY*0.5)
			col := ToneColor(floor, scene.ToneUnderstory, 10, brightness, float64(g.RegrowthOpacity))
			rl.DrawEllipse(int32(clump.X), int32(clump.Y), v.Len(g.RegrowthRX), v.Len(g.RegrowthRY), col)
		}
	})
}
