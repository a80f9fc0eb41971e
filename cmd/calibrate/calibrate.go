package main

import (
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/telemetry"
)

// Objective scores controls against observed layer light and, optionally,
// a biodiversity index. Errors are measured in fractions of 100.
type Objective struct {
	Targets            forest.LayerValues
	Biodiversity       float64 // 0 disables the term
	BiodiversityWeight float64
}

// NewObjective reads the targets from the calibrate config section.
func NewObjective(cfg config.CalibrateConfig) Objective {
	return Objective{
		Targets: forest.LayerValues{
			cfg.Targets.Emergent,
			cfg.Targets.Canopy,
			cfg.Targets.Understory,
			cfg.Targets.ForestFloor,
		},
		Biodiversity:       cfg.Biodiversity,
		BiodiversityWeight: cfg.BiodiversityWeight,
	}
}

// Loss is the sum of squared scaled errors for c.
func (o Objective) Loss(c forest.Controls) float64 {
	lights := forest.LayerLights(c)
	var loss float64
	for i := range lights {
		d := (lights[i] - o.Targets[i]) / 100
		loss += d * d
	}
	if o.Biodiversity > 0 {
		d := (forest.BiodiversityIndex(c) - o.Biodiversity) / 100
		loss += o.BiodiversityWeight * d * d
	}
	return loss
}

// Result is the best point found by a search.
type Result struct {
	Controls forest.Controls
	Loss     float64
	Evals    int
}

// Search bounds a calibration run.
type Search struct {
	MaxEvals   int     // Objective evaluation budget
	InitStep   float64 // Initial simplex size in normalized space
	Tolerance  float64 // Smallest drop in best loss that counts as progress
	StallIters int     // Iterations without progress before stopping, 0 = never
}

// NewSearch reads the search limits from the calibrate config section.
func NewSearch(cfg config.CalibrateConfig) Search {
	return Search{
		MaxEvals:   cfg.MaxEvals,
		InitStep:   cfg.InitStep,
		Tolerance:  cfg.Tolerance,
		StallIters: cfg.StallIters,
	}
}

func (s Search) converger() optimize.Converger {
	if s.StallIters <= 0 {
		return optimize.NeverTerminate{}
	}
	return &optimize.FunctionConverge{
		Absolute:   s.Tolerance,
		Iterations: s.StallIters,
	}
}

// Calibrate searches for controls minimising obj, starting from start.
// onStep, if non-nil, sees every evaluation in order.
func Calibrate(params *ParamVector, obj Objective, start forest.Controls, search Search, onStep func(telemetry.CalibrationStep)) (Result, error) {
	best := Result{Loss: math.Inf(1)}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			c := params.ToControls(params.Denormalize(x))
			loss := obj.Loss(c)
			best.Evals++
			if loss < best.Loss {
				best.Loss = loss
				best.Controls = c
			}
			if onStep != nil {
				onStep(telemetry.CalibrationStep{
					Eval:             best.Evals,
					Loss:             loss,
					BestLoss:         best.Loss,
					CanopyCover:      c.CanopyCover,
					LAI:              c.LAI,
					LightPenetration: c.LightPenetration,
					SunAngle:         c.SunAngleDegrees(),
					CanopyGaps:       c.CanopyGaps,
				})
			}
			return loss
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: search.MaxEvals,
		Converger:       search.converger(),
	}
	method := &optimize.NelderMead{
		SimplexSize: search.InitStep,
	}

	initX := params.Normalize(params.FromControls(start.Clamped()))
	_, err := optimize.Minimize(problem, initX, settings, method)
	return best, err
}
