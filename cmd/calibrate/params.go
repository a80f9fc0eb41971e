package main

import (
	"math"

	"github.com/pthm-cable/canopy/forest"
)

// ParamSpec defines a single searchable control.
type ParamSpec struct {
	Name    string  // Column name in the log
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Integer bool    // Rounded before use
}

// ParamVector holds the set of searchable controls, in Controls field order.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of searchable controls.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "canopy_cover", Min: 0, Max: forest.MaxCanopyCover},
			{Name: "lai", Min: 0, Max: forest.MaxLAI},
			{Name: "light_penetration", Min: 0, Max: forest.MaxLightPenetration},
			{Name: "sun_angle", Min: 0, Max: forest.MaxSunAngle},
			{Name: "canopy_gaps", Min: 0, Max: forest.MaxCanopyGaps, Integer: true},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// FromControls flattens c into a raw parameter vector.
func (pv *ParamVector) FromControls(c forest.Controls) []float64 {
	return []float64{c.CanopyCover, c.LAI, c.LightPenetration, c.SunAngleDegrees(), float64(c.CanopyGaps)}
}

// ToControls builds controls from a raw vector, clamping and rounding first.
func (pv *ParamVector) ToControls(raw []float64) forest.Controls {
	v := pv.Clamp(raw)
	c := forest.Controls{
		CanopyCover:      v[0],
		LAI:              v[1],
		LightPenetration: v[2],
		CanopyGaps:       int(v[4]),
	}
	return c.WithSunAngle(v[3])
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds. Integer parameters are rounded.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if math.IsNaN(val) || val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}
