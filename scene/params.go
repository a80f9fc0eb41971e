package scene

import (
	"math"

	"github.com/pthm-cable/canopy/forest"
)

// View geometry. The scene is laid out in a fixed 1000x800 frame and scaled
// by the renderer.
const (
	ViewWidth  = 1000
	ViewHeight = 800

	skyY           = 50.0
	emergentStop   = 120.0
	canopyStop     = 400.0
	understoryStop = 600.0
	floorStop      = 750.0

	raySpread   = 350.0
	centreX     = 500.0
	minRayCount = 5
)

// RayCount is the number of primary light shafts, floor(5 + emergent/100*5).
func RayCount(c forest.Controls) int {
	e := forest.LayerLight(forest.Emergent, c)
	return int(math.Floor(minRayCount + e/100*5))
}

// BlockageFactor scales ray opacity by how much the canopy intercepts.
func BlockageFactor(c forest.Controls) float64 {
	c = c.Clamped()
	d := c.CanopyCover / 100
	return math.Max(0.2, forest.CanopyTransmission(c)*(1-d*0.5))
}

// RayDepth is how far the primary shafts reach, in view units. The deepest
// layer whose light, scaled by penetration, clears its threshold decides.
func RayDepth(c forest.Controls) float64 {
	lights := forest.LayerLights(c)
	pen := forest.LightPenetration(c) / 100

	floor := lights.Get(forest.ForestFloor) * pen
	under := lights.Get(forest.Understory) * pen
	canopy := lights.Get(forest.Canopy) * pen

	switch {
	case floor > 2:
		return emergentStop + (floorStop-emergentStop)*(floor/5)
	case under > 2:
		return emergentStop + (understoryStop-emergentStop)*(under/15)
	case canopy > 50:
		return emergentStop + (canopyStop-emergentStop)*((canopy-50)/50)
	default:
		return emergentStop + (canopyStop-emergentStop)*0.3
	}
}

// Rays lays out the primary shafts followed by any scattered shafts.
func Rays(c forest.Controls) []Ray {
	lights := forest.LayerLights(c)
	pen := forest.LightPenetration(c) / 100
	block := BlockageFactor(c)
	depth := RayDepth(c)

	n := RayCount(c)
	rays := make([]Ray, 0, n+len(scatterOffsets))
	endY := math.Min(depth, floorStop)
	depthRatio := (endY - emergentStop) / (floorStop - emergentStop)
	fade := 1 - depthRatio*0.6

	var level float64
	switch {
	case endY < canopyStop:
		level = lights.Get(forest.Emergent)
	case endY < understoryStop:
		level = lights.Get(forest.Canopy)
	case endY < floorStop:
		level = lights.Get(forest.Understory)
	default:
		level = lights.Get(forest.ForestFloor)
	}
	opacity := math.Max(0.15, math.Min(0.8, level/100*block*fade*pen))

	for i := 0; i < n; i++ {
		offset := (float64(i) - float64(n-1)/2) * (raySpread / float64(n-1))
		width := math.Max(1, 5-depthRatio*2-math.Abs(offset)/100)
		rays = append(rays, Ray{
			X1:      float32(centreX + offset*0.3),
			Y1:      skyY,
			X2:      float32(centreX + offset),
			Y2:      float32(endY),
			Width:   float32(width),
			Opacity: float32(opacity),
		})
	}

	under := lights.Get(forest.Understory) * pen
	if under <= 5 {
		return rays
	}
	floor := lights.Get(forest.ForestFloor) * pen
	sd := 500 + under/5*100
	if under > 10 {
		sd = 600 + floor/5*150
	}
	sOpacity := math.Max(0.1, lights.Get(forest.Understory)/100*block*pen*0.6)
	for _, off := range scatterOffsets {
		rays = append(rays, Ray{
			X1:        float32(centreX + off*0.2),
			Y1:        skyY,
			X2:        float32(centreX + off*0.8),
			Y2:        float32(math.Min(sd, floorStop)),
			Width:     float32(math.Max(1.5, 3-math.Abs(off)/100)),
			Opacity:   float32(sOpacity),
			Scattered: true,
		})
	}
	return rays
}

var scatterOffsets = [...]float64{-180, -120, -60, 60, 120, 180}

// Glow is the ambient light pooled above the floor, centred on the view.
type Glow struct {
	X, Y    float64
	RX, RY  float64
	Opacity float64
}

// GlowGeometry sizes the ambient glow from the floor light that penetration
// lets through. It reports false when that light is 1% or less.
func GlowGeometry(c forest.Controls) (Glow, bool) {
	c = c.Clamped()
	pen := forest.LightPenetration(c) / 100
	reach := forest.LayerLight(forest.ForestFloor, c) * pen
	if reach <= 1 {
		return Glow{}, false
	}
	d := c.CanopyCover / 100
	block := math.Max(0.3, forest.CanopyTransmission(c)*(1-d*0.5))
	f := reach / 5
	return Glow{
		X:       centreX,
		Y:       skyY + f*350,
		RX:      150 + f*200,
		RY:      f * 300,
		Opacity: 0.1 * block * pen,
	}, true
}

// GapLayout returns the centre and radius of gap i.
func GapLayout(i int) (x, y, size float64) {
	x = 200 + float64((i*150)%600)
	y = 250 + float64((i*80)%250)
	size = 60 + float64(i%3)*20
	return x, y, size
}

// GapIntensity is the brightness of gap light patches, 0.3 + eff/100*0.5.
func GapIntensity(c forest.Controls) float64 {
	return 0.3 + forest.LightPenetration(c)/100*0.5
}

// Gaps lays out one patch per canopy gap.
func Gaps(c forest.Controls) []GapPatch {
	c = c.Clamped()
	eff := forest.LightPenetration(c)
	intensity := GapIntensity(c)
	out := make([]GapPatch, c.CanopyGaps)
	for i := range out {
		_, _, size := GapLayout(i)
		g := GapPatch{
			RX:        float32(size),
			RY:        float32(size * 0.6),
			Intensity: float32(intensity),
			FloorY:    float32(650 + (i%2)*80),
			FloorRX:   float32(size * 0.8),
		}
		if eff > 20 {
			g.Regrowth = true
			g.RegrowthRX = float32(25 + (i%2)*10)
			g.RegrowthRY = float32(15 + (i%2)*8)
			g.RegrowthOpacity = float32(0.6 + eff/100*0.3)
		}
		out[i] = g
	}
	return out
}

// LeafCount returns how many falling leaves a layer sheds. Only the canopy
// and emergent layers shed leaves.
func LeafCount(id forest.LayerID, c forest.Controls) int {
	c = c.Clamped()
	d := c.CanopyCover / 100
	l := c.LAI / 10
	switch id {
	case forest.Canopy:
		return int(math.Floor(8 + d*10 + l*5))
	case forest.Emergent:
		return int(math.Floor(5 + d*8 + l*3))
	}
	return 0
}

// FogOpacity is max(0.05, d*0.15 - eff/100*0.05).
func FogOpacity(c forest.Controls) float64 {
	c = c.Clamped()
	return math.Max(0.05, c.CanopyCover/100*0.15-forest.LightPenetration(c)/100*0.05)
}

// FogPeriod is the drift cycle length; fog moves slower in dense stands.
func FogPeriod(c forest.Controls) float64 {
	return 2 * (8 + c.Clamped().LAI/2)
}

// WindForce is the base sway for a layer, damped by wind resistance.
func WindForce(id forest.LayerID, c forest.Controls) float64 {
	wr := forest.WindResistance(c)
	switch id {
	case forest.Emergent:
		return 1.5 / wr
	case forest.Canopy:
		return 1.0 / wr
	case forest.Understory:
		return 0.5 / wr
	}
	return 0
}

// WindDuration is the half-cycle of a layer's sway, 2 + d*2 scaled per layer.
func WindDuration(id forest.LayerID, c forest.Controls) float64 {
	base := 2 + c.Clamped().CanopyCover/100*2
	switch id {
	case forest.Canopy:
		return base * 1.2
	case forest.Understory:
		return base * 1.5
	}
	return base
}

// SwayAmplitude is the peak trunk rotation in degrees for a layer.
func SwayAmplitude(id forest.LayerID, c forest.Controls) float64 {
	lai := c.Clamped().LAI
	switch id {
	case forest.Emergent:
		return WindForce(id, c) + lai*0.05
	case forest.Canopy:
		return WindForce(id, c) + lai*0.03
	case forest.Understory:
		return WindForce(id, c) + lai*0.02
	}
	return 0
}

// CrownClusterCount is how many of the overlapping canopy crowns are drawn.
func CrownClusterCount(c forest.Controls) int {
	c = c.Clamped()
	d := c.CanopyCover / 100
	l := c.LAI / 10
	n := int(math.Floor(10 * (0.5 + d*0.5) * (0.7 + l*0.3)))
	return min(n, len(crownCluster))
}

// Sun is the sun disc placement for a sun angle.
type Sun struct {
	X, Y      float64
	Radius    float64
	Intensity float64
}

// SunGeometry places the sun on an arc: 0 degrees far left, 90 overhead, 180
// far right. The disc shrinks and dims toward the horizon.
func SunGeometry(c forest.Controls) Sun {
	rad := c.SunAngleDegrees() * math.Pi / 180
	intensity := math.Abs(math.Sin(rad))
	return Sun{
		X:         centreX - math.Cos(rad)*400,
		Y:         skyY + (1-intensity)*100,
		Radius:    35 * (0.7 + 0.3*intensity),
		Intensity: intensity,
	}
}

// BandY converts a layer band from percent to view units.
func BandY(b forest.Band) (top, height float32) {
	return float32(b.Top / 100 * ViewHeight), float32(b.Height / 100 * ViewHeight)
}
