package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/scene"
)

// VegetationRenderer renders trunks and crowns, swaying about their bases.
type VegetationRenderer struct{}

// NewVegetationRenderer creates a new vegetation renderer.
func NewVegetationRenderer() *VegetationRenderer {
	return &VegetationRenderer{}
}

// Draw renders every trunk, then every crown, bottom layer first so
// emergent crowns overlap the canopy.
func (r *VegetationRenderer) Draw(v View, s *scene.Scene) {
	colors := s.Preset().Colors
	visual := s.Visual()

	for i := forest.NumLayers - 1; i >= 0; i-- {
		id := forest.Layers[i]
		brightness := visual.Brightness[i]
		opacity := visual.Opacity[i]

		s.EachTrunk(func(pos scene.Position, layer scene.Layer, trunk scene.Trunk, sw scene.Sway) {
			if layer.ID != id {
				return
			}
			r.drawTrunk(v, pos, trunk, sw, ToneColor(colors, scene.ToneTrunk, 0, brightness, opacity))
		})

		s.EachCrown(func(pos scene.Position, layer scene.Layer, crown scene.Crown, sw scene.Sway) {
			if layer.ID != id {
				return
			}
			col := ToneColor(colors, crown.Tone, crown.Shift, brightness, float64(crown.Opacity)*opacity)
			r.drawCrown(v, pos, crown, sw, col)
		})
	}
}

// drawTrunk draws a trunk rotated about the middle of its base.
func (r *VegetationRenderer) drawTrunk(v View, pos scene.Position, t scene.Trunk, sw scene.Sway, col rl.Color) {
	base := v.Point(pos.X+t.Width/2, pos.Y+t.Height)
	w, h := v.Len(t.Width), v.Len(t.Height)
	rl.DrawRectanglePro(
		rl.Rectangle{X: base.X, Y: base.Y, Width: w, Height: h},
		rl.Vector2{X: w / 2, Y: h},
		float32(sw.Angle),
		col,
	)
}

// drawCrown draws a crown ellipse whose centre swings about the pivot line
// directly below it.
func (r *VegetationRenderer) drawCrown(v View, pos scene.Position, c scene.Crown, sw scene.Sway, col rl.Color) {
	x, y := rotateAbout(pos.X, pos.Y, pos.X, c.PivotY, sw.Angle)
	p := v.Point(x, y)
	rl.DrawEllipse(int32(p.X), int32(p.Y), v.Len(c.RX), v.Len(c.RY), col)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
