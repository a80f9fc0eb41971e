package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/scene"
)

// BackgroundRenderer paints the sky gradient and the layer bands.
type BackgroundRenderer struct{}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer() *BackgroundRenderer {
	return &BackgroundRenderer{}
}

// Draw renders the sky and one translucent wash per layer band, shaded by
// the layer's brightness.
func (b *BackgroundRenderer) Draw(v View, s *scene.Scene) {
	bounds := v.Bounds()
	top, bottom := SkyColors(s.Sun().Intensity)
	rl.DrawRectangleGradientV(int32(bounds.X), int32(bounds.Y), int32(bounds.Width), int32(bounds.Height), top, bottom)

	colors := s.Preset().Colors
	visual := s.Visual()
	for _, info := range forest.LayerInfos() {
		y, h := scene.BandY(info.Band)
		p := v.Point(0, y)
		rl.DrawRectangleV(p, rl.Vector2{X: bounds.Width, Y: v.Len(h)},
			BandColor(colors, info.ID, visual.Brightness.Get(info.ID)))
	}
}

// DrawLabels draws separator lines and layer names over the scene.
func (b *BackgroundRenderer) DrawLabels(v View, s *scene.Scene) {
	bounds := v.Bounds()
	lineColor := rl.Color{R: 255, G: 255, B: 255, A: 70}
	fontSize := int32(v.Len(18))
	if fontSize < 10 {
		fontSize = 10
	}
	readout := forest.NewReadout(s.Controls())

	for i, info := range forest.LayerInfos() {
		y, _ := scene.BandY(info.Band)
		p := v.Point(0, y)
		if i > 0 {
			rl.DrawLineEx(p, rl.Vector2{X: p.X + bounds.Width, Y: p.Y}, 1, lineColor)
		}
		label := info.Name
		rl.DrawText(label, int32(p.X+v.Len(14)), int32(p.Y+v.Len(8)), fontSize, rl.Color{R: 255, G: 255, B: 255, A: 200})
		light := formatPercent(readout.LayerLight[i])
		lw := rl.MeasureText(light, fontSize)
		rl.DrawText(light, int32(p.X+bounds.Width-v.Len(14))-lw, int32(p.Y+v.Len(8)), fontSize, rl.Color{R: 255, G: 240, B: 180, A: 220})
	}
}
