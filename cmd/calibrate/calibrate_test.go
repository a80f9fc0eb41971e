package main

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/telemetry"
)

func TestParamRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := []float64{75, 4.5, 30, 120, 6}
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: round trip %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestToControlsClampsAndRounds(t *testing.T) {
	pv := NewParamVector()
	c := pv.ToControls([]float64{130, -1, math.NaN(), 200, 6.6})

	if c.CanopyCover != forest.MaxCanopyCover || c.LAI != 0 || c.LightPenetration != 0 {
		t.Errorf("controls = %+v", c)
	}
	if c.SunAngleDegrees() != forest.MaxSunAngle {
		t.Errorf("sun angle = %v", c.SunAngleDegrees())
	}
	if c.CanopyGaps != 7 {
		t.Errorf("gaps = %d, want 7", c.CanopyGaps)
	}
}

func TestFromControlsDefaultSun(t *testing.T) {
	pv := NewParamVector()
	v := pv.FromControls(forest.Controls{CanopyCover: 50})
	if v[3] != forest.DefaultSunAngle {
		t.Errorf("unset sun angle flattened to %v", v[3])
	}
	if len(v) != pv.Dim() {
		t.Errorf("len = %d, want %d", len(v), pv.Dim())
	}
}

func TestLossZeroAtTarget(t *testing.T) {
	c := forest.DefaultPreset().Controls()
	obj := Objective{
		Targets:            forest.LayerLights(c),
		Biodiversity:       forest.BiodiversityIndex(c),
		BiodiversityWeight: 1,
	}
	if got := obj.Loss(c); got > 1e-12 {
		t.Errorf("loss at target = %v", got)
	}
}

func TestLossWeightsBiodiversity(t *testing.T) {
	c := forest.DefaultPreset().Controls()
	obj := Objective{Targets: forest.LayerLights(c)}
	if got := obj.Loss(c); got != 0 {
		t.Fatalf("loss = %v", got)
	}

	bio := forest.BiodiversityIndex(c)
	obj.Biodiversity = bio + 10
	obj.BiodiversityWeight = 0.5
	want := 0.5 * 0.1 * 0.1
	if got := obj.Loss(c); math.Abs(got-want) > 1e-12 {
		t.Errorf("loss = %v, want %v", got, want)
	}
}

func TestCalibrateImproves(t *testing.T) {
	presets := forest.Presets()
	target := presets[len(presets)-1].Controls()
	start := presets[0].Controls()
	obj := Objective{Targets: forest.LayerLights(target)}

	pv := NewParamVector()
	var steps []telemetry.CalibrationStep
	res, _ := Calibrate(pv, obj, start, Search{MaxEvals: 400, InitStep: 0.1}, func(s telemetry.CalibrationStep) {
		steps = append(steps, s)
	})

	startLoss := obj.Loss(start)
	if startLoss == 0 {
		t.Fatal("start and target presets have identical light")
	}
	if res.Loss >= startLoss {
		t.Errorf("best loss %v did not improve on start %v", res.Loss, startLoss)
	}
	if len(steps) != res.Evals || res.Evals == 0 || res.Evals > 400+pv.Dim()+1 {
		t.Errorf("evals = %d, steps logged = %d", res.Evals, len(steps))
	}
	for i := 1; i < len(steps); i++ {
		if steps[i].BestLoss > steps[i-1].BestLoss {
			t.Fatalf("best loss rose at eval %d", steps[i].Eval)
		}
	}
	if math.Abs(obj.Loss(res.Controls)-res.Loss) > 1e-12 {
		t.Error("reported loss does not match best controls")
	}
}

func TestCalibrateStopsWhenStalled(t *testing.T) {
	start := forest.DefaultPreset().Controls()
	obj := Objective{Targets: forest.LayerLights(start)}

	search := Search{MaxEvals: 5000, InitStep: 0.1, Tolerance: 1e-9, StallIters: 20}
	res, err := Calibrate(NewParamVector(), obj, start, search, nil)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if res.Loss > 1e-12 {
		t.Errorf("best loss = %v, want ~0 at the start point", res.Loss)
	}
	if res.Evals >= search.MaxEvals {
		t.Errorf("search used all %d evaluations instead of stopping on a flat loss", res.Evals)
	}
}

func TestNewSearch(t *testing.T) {
	cfg := config.CalibrateConfig{MaxEvals: 300, InitStep: 0.2, Tolerance: 1e-8, StallIters: 40}
	s := NewSearch(cfg)
	if s.MaxEvals != 300 || s.InitStep != 0.2 || s.Tolerance != 1e-8 || s.StallIters != 40 {
		t.Errorf("search = %+v", s)
	}
	if _, ok := s.converger().(*optimize.FunctionConverge); !ok {
		t.Error("stall limit should use function convergence")
	}
	if _, ok := (Search{}).converger().(optimize.NeverTerminate); !ok {
		t.Error("no stall limit should never terminate early")
	}
}
