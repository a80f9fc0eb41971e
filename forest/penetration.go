package forest

import "math"

const (
	// penetrationDecay scales the exponential loss of sub-canopy light with density.
	penetrationDecay = 0.8
	// minAutoPenetration is the floor of AutoPenetration; the remaining range is 100 - floor.
	minAutoPenetration = 5.0
	// angleFloor is the share of light that arrives regardless of sun elevation.
	angleFloor = 0.7
)

// AutoPenetration returns the structural light penetration in [5,100].
// Denser canopies and higher LAI reduce it exponentially.
func AutoPenetration(c Controls) float64 {
	c = c.Clamped()
	base := math.Exp(-penetrationDecay * c.densityFactor() * (1 + c.laiFactor()))
	return minAutoPenetration + base*(100-minAutoPenetration)
}

// AngleFactor returns |sin(sunAngle)|: 1 overhead, 0 at the horizon.
func AngleFactor(c Controls) float64 {
	rad := c.SunAngleDegrees() * math.Pi / 180
	return math.Abs(math.Sin(rad))
}

// LightPenetration returns the effective penetration in [0,100]: the
// structural penetration scaled by solar intensity and sun elevation.
func LightPenetration(c Controls) float64 {
	c = c.Clamped()
	eff := AutoPenetration(c) * (c.LightPenetration / 100) * (angleFloor + (1-angleFloor)*AngleFactor(c))
	return clamp(eff, 0, 100)
}
