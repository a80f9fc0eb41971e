// Package forest implements the forest light-transmission model.
//
// The model turns a handful of structural parameters (canopy cover, leaf area
// index, solar intensity, sun angle, canopy gaps) into per-layer light levels
// and the visual mappings derived from them. Every function is pure: the same
// Controls always produce bit-identical output, and nothing is cached between
// calls.
package forest

import "math"

// Control ranges.
const (
	MaxCanopyCover      = 100.0
	MaxLAI              = 10.0
	MaxLightPenetration = 100.0
	MaxSunAngle         = 180.0
	MaxCanopyGaps       = 20

	// DefaultSunAngle is used when Controls.SunAngle is unset.
	DefaultSunAngle = 45.0
)

// Controls holds the user-adjustable forest structure.
// It is passed by value into every model function.
type Controls struct {
	CanopyCover      float64  `yaml:"canopy_cover"`        // percent of area under foliage [0,100]
	LAI              float64  `yaml:"lai"`                 // leaf area index [0,10]
	LightPenetration float64  `yaml:"light_penetration"`   // solar intensity modifier [0,100]
	SunAngle         *float64 `yaml:"sun_angle,omitempty"` // degrees, 90 = overhead; nil = DefaultSunAngle
	CanopyGaps       int      `yaml:"canopy_gaps"`         // light-admitting openings [0,20]
}

// Degrees returns a pointer suitable for Controls.SunAngle.
func Degrees(v float64) *float64 {
	return &v
}

// SunAngleDegrees returns the resolved sun angle, clamped to [0,180].
func (c Controls) SunAngleDegrees() float64 {
	if c.SunAngle == nil {
		return DefaultSunAngle
	}
	return clamp(*c.SunAngle, 0, MaxSunAngle)
}

// WithSunAngle returns a copy of c with the sun angle set.
func (c Controls) WithSunAngle(deg float64) Controls {
	c.SunAngle = Degrees(deg)
	return c
}

// Clamped returns a copy of c with every field inside its documented range.
// NaN values collapse to the lower bound. An unset sun angle stays unset.
func (c Controls) Clamped() Controls {
	out := Controls{
		CanopyCover:      clamp(c.CanopyCover, 0, MaxCanopyCover),
		LAI:              clamp(c.LAI, 0, MaxLAI),
		LightPenetration: clamp(c.LightPenetration, 0, MaxLightPenetration),
		CanopyGaps:       clampInt(c.CanopyGaps, 0, MaxCanopyGaps),
	}
	if c.SunAngle != nil {
		out.SunAngle = Degrees(clamp(*c.SunAngle, 0, MaxSunAngle))
	}
	return out
}

// densityFactor is canopy cover as a fraction.
func (c Controls) densityFactor() float64 {
	return c.CanopyCover / MaxCanopyCover
}

// laiFactor is LAI normalized to [0,1].
func (c Controls) laiFactor() float64 {
	return c.LAI / MaxLAI
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
