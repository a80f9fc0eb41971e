package forest

import "math"

// VisualState holds the derived visual and physical mappings for one evaluation.
type VisualState struct {
	Opacity           LayerValues // [0,1]; canopy bounded to [0.3,0.95]
	Brightness        LayerValues // display brightness percent [10,100]
	WindResistance    float64     // >= 1; divides sway amplitude
	TreeDensity       int         // display-only percent
	BiodiversityIndex float64     // [20,100]
}

const (
	emergentOpacity = 0.9
	canopyOpacityLo = 0.3
	canopyOpacityHi = 0.95

	biodiversityFloor = 20.0
	biodiversityCeil  = 100.0
)

// Opacity returns the display opacity of a layer.
func Opacity(id LayerID, c Controls) float64 {
	c = c.Clamped()
	switch id {
	case Canopy:
		density := c.densityFactor()*0.7 + c.laiFactor()*0.3
		return clamp(canopyOpacityLo+density*0.65, canopyOpacityLo, canopyOpacityHi)
	case Emergent:
		return emergentOpacity
	case Understory, ForestFloor:
		return 0.7 + 0.3*LightPenetration(c)/100
	}
	return 0
}

// Brightness maps a light level to a display brightness percentage in [10,100].
func Brightness(lightLevel float64) float64 {
	return clamp(10+lightLevel*0.9, 10, 100)
}

// WindResistance returns the sway-damping multiplier. Denser structure resists wind.
func WindResistance(c Controls) float64 {
	c = c.Clamped()
	return 1 + c.densityFactor()*0.5 + c.laiFactor()*0.3
}

// TreeDensity returns the display tree density percentage.
func TreeDensity(c Controls) int {
	c = c.Clamped()
	return int(math.Round(c.densityFactor()*100 + c.laiFactor()*30))
}

// BiodiversityIndex scores habitat favourability in [20,100] from canopy
// structure and the number of gaps.
func BiodiversityIndex(c Controls) float64 {
	c = c.Clamped()
	structure := c.densityFactor()*0.4 + c.laiFactor()*0.3
	gaps := float64(c.CanopyGaps) / MaxCanopyGaps
	score := structure*50 + gaps*30 + biodiversityFloor
	return clamp(score, biodiversityFloor, biodiversityCeil)
}

// ComputeVisualState evaluates every derived mapping for c.
func ComputeVisualState(c Controls) VisualState {
	c = c.Clamped()
	lights := LayerLights(c)

	var vs VisualState
	for i, id := range Layers {
		vs.Opacity[i] = Opacity(id, c)
		vs.Brightness[i] = Brightness(lights[i])
	}
	vs.WindResistance = WindResistance(c)
	vs.TreeDensity = TreeDensity(c)
	vs.BiodiversityIndex = BiodiversityIndex(c)
	return vs
}
