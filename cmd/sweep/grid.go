package main

import (
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/forest"
)

// Grid is the cartesian product of the sweep axes.
type Grid struct {
	Cover     []float64
	LAI       []float64
	Light     []float64
	SunAngles []float64
	Gaps      []int
}

// NewGrid spaces each continuous axis evenly over its full control range.
func NewGrid(cfg config.SweepConfig) Grid {
	g := Grid{
		Cover:     floats.Span(make([]float64, cfg.CoverSteps), 0, forest.MaxCanopyCover),
		LAI:       floats.Span(make([]float64, cfg.LAISteps), 0, forest.MaxLAI),
		Light:     floats.Span(make([]float64, cfg.LightSteps), 0, forest.MaxLightPenetration),
		SunAngles: cfg.SunAngles,
		Gaps:      cfg.Gaps,
	}
	if len(g.SunAngles) == 0 {
		g.SunAngles = []float64{forest.DefaultSunAngle}
	}
	if len(g.Gaps) == 0 {
		g.Gaps = []int{0}
	}
	return g
}

// Size is the number of grid points.
func (g Grid) Size() int {
	return len(g.Cover) * len(g.LAI) * len(g.Light) * len(g.SunAngles) * len(g.Gaps)
}

// Slice returns every point sharing the i-th canopy cover value, in a
// fixed order.
func (g Grid) Slice(i int) []forest.Controls {
	out := make([]forest.Controls, 0, g.Size()/len(g.Cover))
	for _, lai := range g.LAI {
		for _, light := range g.Light {
			for _, sun := range g.SunAngles {
				for _, gaps := range g.Gaps {
					c := forest.Controls{
						CanopyCover:      g.Cover[i],
						LAI:              lai,
						LightPenetration: light,
						CanopyGaps:       gaps,
					}
					out = append(out, c.WithSunAngle(sun))
				}
			}
		}
	}
	return out
}
