// Package renderer draws a forest scene with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/scene"
)

// View maps scene coordinates (a fixed 1000x800 frame) onto a screen
// rectangle, preserving aspect ratio and centring the frame.
type View struct {
	X, Y  float32 // screen position of the scene origin
	Scale float32
}

// FitView returns the largest view of the scene frame inside the rectangle.
func FitView(x, y, width, height float32) View {
	s := float32(math.Min(float64(width)/scene.ViewWidth, float64(height)/scene.ViewHeight))
	if s <= 0 {
		s = 1
	}
	return View{
		X:     x + (width-scene.ViewWidth*s)/2,
		Y:     y + (height-scene.ViewHeight*s)/2,
		Scale: s,
	}
}

// Point converts a scene point to screen coordinates.
func (v View) Point(x, y float32) rl.Vector2 {
	return rl.Vector2{X: v.X + x*v.Scale, Y: v.Y + y*v.Scale}
}

// Len converts a scene length to screen pixels.
func (v View) Len(l float32) float32 {
	return l * v.Scale
}

// ToScene converts a screen point back to scene coordinates.
func (v View) ToScene(sx, sy float32) (x, y float32) {
	return (sx - v.X) / v.Scale, (sy - v.Y) / v.Scale
}

// Bounds returns the screen rectangle covered by the scene frame.
func (v View) Bounds() rl.Rectangle {
	return rl.Rectangle{X: v.X, Y: v.Y, Width: scene.ViewWidth * v.Scale, Height: scene.ViewHeight * v.Scale}
}

// LayerAt returns the layer whose band contains the screen point.
func (v View) LayerAt(sx, sy float32) (forest.LayerID, bool) {
	x, y := v.ToScene(sx, sy)
	if x < 0 || x > scene.ViewWidth {
		return "", false
	}
	for _, info := range forest.LayerInfos() {
		top, h := scene.BandY(info.Band)
		if y >= top && y < top+h {
			return info.ID, true
		}
	}
	return "", false
}

// rotateAbout rotates (x,y) by deg degrees clockwise on screen about (px,py).
func rotateAbout(x, y, px, py float32, deg float64) (float32, float32) {
	if deg == 0 {
		return x, y
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := float64(x-px), float64(y-py)
	return px + float32(dx*cos-dy*sin), py + float32(dx*sin+dy*cos)
}
