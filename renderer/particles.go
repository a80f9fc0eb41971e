package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/palette"
	"github.com/pthm-cable/canopy/scene"
)

// ParticleRenderer renders falling leaves and the drifting mist.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// leafLength is the leaf blade length in scene units at full scale.
const leafLength = 9

// DrawLeaves renders all leaves that have started falling.
func (r *ParticleRenderer) DrawLeaves(v View, s *scene.Scene) {
	colors := s.Preset().Colors
	visual := s.Visual()

	s.EachLeaf(func(pos scene.Position, layer scene.Layer, leaf scene.Leaf) {
		if leaf.Scale <= 0 || leaf.Opacity <= 0 {
			return
		}
		// Emergent leaves catch more light and read a little brighter.
		shift := 0.0
		if layer.ID == forest.Emergent {
			shift = 10
		}
		col := ToneColor(colors, scene.ToneCanopy, shift, visual.Brightness.Get(layer.ID), float64(leaf.Opacity))

		size := leafLength * leaf.Size * leaf.Scale
		if size < 1 {
			size = 1
		}
		p := v.Point(pos.X, pos.Y+leaf.Y)
		w, h := v.Len(size), v.Len(size*0.5)
		rl.DrawRectanglePro(
			rl.Rectangle{X: p.X, Y: p.Y, Width: w, Height: h},
			rl.Vector2{X: w / 2, Y: h / 2},
			leaf.Rotation,
			col,
		)
	})
}

// DrawFog renders the mist band as stacked soft strips.
func (r *ParticleRenderer) DrawFog(v View, s *scene.Scene) {
	fog := s.Fog()
	if fog.Opacity <= 0 || fog.Height <= 0 {
		return
	}

	width := float32(scene.ViewWidth) * fog.ScaleX
	x := (scene.ViewWidth-width)/2 + fog.Offset
	strips := 6
	for i := 0; i < strips; i++ {
		t := (float32(i) + 0.5) / float32(strips)
		// Densest in the middle of the band.
		weight := 1 - 2*abs32(t-0.5)
		col := palette.WithAlpha(palette.Shade(fogColor, 100), float64(fog.Opacity*weight))
		p := v.Point(x, fog.Y+fog.Height*float32(i)/float32(strips))
		rl.DrawRectangleV(p, rl.Vector2{X: v.Len(width), Y: v.Len(fog.Height / float32(strips))}, col)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
