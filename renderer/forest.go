package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/canopy/scene"
)

// DrawOptions switches optional scene elements on or off.
type DrawOptions struct {
	Rays   bool
	Gaps   bool
	Leaves bool
	Fog    bool
	Labels bool

	// Clip limits drawing to a screen rectangle. Zero size means the
	// scene frame only.
	Clip rl.Rectangle
}

// AllElements draws everything.
func AllElements() DrawOptions {
	return DrawOptions{Rays: true, Gaps: true, Leaves: true, Fog: true, Labels: true}
}

// ForestRenderer draws a complete scene cross-section.
type ForestRenderer struct {
	background *BackgroundRenderer
	sun        *SunRenderer
	vegetation *VegetationRenderer
	light      *LightRenderer
	particles  *ParticleRenderer
}

// NewForestRenderer creates a renderer. It holds no GPU resources, so it can
// be created before the window opens.
func NewForestRenderer() *ForestRenderer {
	return &ForestRenderer{
		background: NewBackgroundRenderer(),
		sun:        NewSunRenderer(),
		vegetation: NewVegetationRenderer(),
		light:      NewLightRenderer(),
		particles:  NewParticleRenderer(),
	}
}

// Draw renders s into the view, clipped to the scene frame.
func (r *ForestRenderer) Draw(v View, s *scene.Scene, opts DrawOptions) {
	b := clipRect(v.Bounds(), opts.Clip)
	rl.BeginScissorMode(int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height))
	defer rl.EndScissorMode()

	r.background.Draw(v, s)
	r.sun.Draw(v, s.Sun())

	if opts.Gaps {
		r.light.DrawGaps(v, s)
	}
	r.vegetation.Draw(v, s)
	if opts.Rays {
		r.light.DrawRays(v, s)
		r.light.DrawGlow(v, s)
	}
	if opts.Leaves {
		r.particles.DrawLeaves(v, s)
	}
	if opts.Fog {
		r.particles.DrawFog(v, s)
	}
	if opts.Labels {
		r.background.DrawLabels(v, s)
	}
}

// Unload frees resources (none for this renderer).
func (r *ForestRenderer) Unload() {}

// clipRect intersects the frame with clip, ignoring an empty clip.
func clipRect(frame, clip rl.Rectangle) rl.Rectangle {
	if clip.Width <= 0 || clip.Height <= 0 {
		return frame
	}
	x0 := max(frame.X, clip.X)
	y0 := max(frame.Y, clip.Y)
	x1 := min(frame.X+frame.Width, clip.X+clip.Width)
	y1 := min(frame.Y+frame.Height, clip.Y+clip.Height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
