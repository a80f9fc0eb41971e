package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/forest"
)

func TestEvaluateMatchesModel(t *testing.T) {
	p, _ := forest.ResolvePreset(forest.TropicalWetEvergreen)
	c := p.Controls()
	e := Evaluate(p.ID, c)

	if e.Preset != p.ID || e.SunAngle != 75 || e.CanopyGaps != 3 {
		t.Errorf("inputs not recorded: %+v", e)
	}
	if e.EffectivePenetration != forest.LightPenetration(c) {
		t.Errorf("penetration %v disagrees with model", e.EffectivePenetration)
	}
	if e.LayerLights() != forest.LayerLights(c) {
		t.Errorf("layer lights %v disagree with model %v", e.LayerLights(), forest.LayerLights(c))
	}
	if e.TreeDensity != 113 || math.Abs(e.BiodiversityIndex-53.75) > 1e-9 {
		t.Errorf("density/biodiversity = %d/%v", e.TreeDensity, e.BiodiversityIndex)
	}
	if e.TimeOfDay != "Midday" {
		t.Errorf("time of day = %q", e.TimeOfDay)
	}
}

func TestEvaluateClampsInputs(t *testing.T) {
	e := Evaluate("", forest.Controls{CanopyCover: 150, LAI: -2, LightPenetration: 50, CanopyGaps: 40})
	if e.CanopyCover != 100 || e.LAI != 0 || e.CanopyGaps != 20 || e.SunAngle != 45 {
		t.Errorf("inputs not clamped: %+v", e)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize("x", []float64{5, 1, 4, 2, 3})
	if s.Count != 5 || s.Min != 1 || s.Max != 5 {
		t.Errorf("count/min/max = %d/%v/%v", s.Count, s.Min, s.Max)
	}
	if math.Abs(s.Mean-3) > 1e-12 {
		t.Errorf("mean = %v, want 3", s.Mean)
	}
	if math.Abs(s.Std-math.Sqrt(2.5)) > 1e-12 {
		t.Errorf("std = %v, want sqrt(2.5)", s.Std)
	}
	if s.P10 != 1 || s.P50 != 3 || s.P90 != 5 {
		t.Errorf("percentiles = %v/%v/%v, want 1/3/5", s.P10, s.P50, s.P90)
	}

	if one := Summarize("y", []float64{7}); one.Std != 0 || one.P50 != 7 {
		t.Errorf("single value summary = %+v", one)
	}
	if empty := Summarize("z", nil); empty.Count != 0 || empty.Mean != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}

func TestSummarizeEvaluations(t *testing.T) {
	var evals []Evaluation
	for _, p := range forest.Presets() {
		evals = append(evals, Evaluate(p.ID, p.Controls()))
	}
	rows := SummarizeEvaluations(evals)
	if len(rows) != len(summaryColumns) {
		t.Fatalf("got %d rows, want %d", len(rows), len(summaryColumns))
	}
	for _, r := range rows {
		if r.Count != len(evals) {
			t.Errorf("%s count = %d", r.Column, r.Count)
		}
		if r.Min > r.P50 || r.P50 > r.Max {
			t.Errorf("%s quantiles out of order: %+v", r.Column, r)
		}
		if r.Column == "biodiversity" && (r.Min < 20 || r.Max > 100) {
			t.Errorf("biodiversity summary outside [20,100]: %+v", r)
		}
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager, got %v, %v", om, err)
	}
	// Every method must be safe on nil
	if err := om.WriteEvaluations("e.csv", Evaluation{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteCalibrationStep("c.csv", CalibrationStep{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteConfig(nil, "config.yaml"); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" || om.Path("x") != "" {
		t.Error("nil manager reported a path")
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	a := Evaluate(forest.Montane, forest.DefaultPreset().Controls())
	b := Evaluate(forest.TropicalThorn, forest.Controls{CanopyCover: 25, LAI: 1.5, LightPenetration: 95})
	if err := om.WriteEvaluations("evals.csv", a); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteEvaluations("evals.csv", b); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "evals.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "canopy_cover"); n != 1 {
		t.Errorf("header written %d times", n)
	}

	var back []Evaluation
	if err := gocsv.UnmarshalBytes(data, &back); err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if len(back) != 2 || back[0].Preset != forest.Montane || back[1].CanopyCover != 25 {
		t.Errorf("unexpected rows: %+v", back)
	}
}

func TestOutputManagerWriteConfig(t *testing.T) {
	om, err := NewOutputManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg, "config.yaml"); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if _, err := config.Load(om.Path("config.yaml")); err != nil {
		t.Errorf("written config does not reload: %v", err)
	}
}
