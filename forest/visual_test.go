package forest

import (
	"math"
	"testing"
)

func TestCanopyOpacityBounds(t *testing.T) {
	for cover := 0.0; cover <= 100; cover += 5 {
		for lai := 0.0; lai <= 10; lai += 0.5 {
			c := Controls{CanopyCover: cover, LAI: lai, LightPenetration: 50}
			if o := Opacity(Canopy, c); o < 0.3 || o > 0.95 {
				t.Fatalf("cover=%v lai=%v: canopy opacity %v outside [0.3,0.95]", cover, lai, o)
			}
		}
	}
	if o := Opacity(Canopy, Controls{CanopyCover: 100, LAI: 10}); math.Abs(o-0.95) > 1e-9 {
		t.Errorf("closed canopy opacity = %v, want capped 0.95", o)
	}
	if o := Opacity(Canopy, Controls{}); o != 0.3 {
		t.Errorf("empty canopy opacity = %v, want 0.3", o)
	}
}

func TestOpacityPerLayer(t *testing.T) {
	c := Controls{CanopyCover: 75, LAI: 6, LightPenetration: 65, SunAngle: Degrees(70)}
	if o := Opacity(Emergent, c); o != 0.9 {
		t.Errorf("emergent opacity = %v, want 0.9", o)
	}
	want := 0.7 + 0.3*LightPenetration(c)/100
	for _, id := range []LayerID{Understory, ForestFloor} {
		if o := Opacity(id, c); math.Abs(o-want) > 1e-12 {
			t.Errorf("%s opacity = %v, want %v", id, o, want)
		}
	}
}

func TestBrightness(t *testing.T) {
	tests := []struct {
		level, want float64
	}{
		{0, 10},
		{1, 10.9},
		{50, 55},
		{100, 100},
		{150, 100},
		{-20, 10},
	}
	for _, tt := range tests {
		if got := Brightness(tt.level); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Brightness(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestWindResistanceAndDensity(t *testing.T) {
	c := Controls{CanopyCover: 90, LAI: 7.5}
	if got, want := WindResistance(c), 1+0.45+0.225; math.Abs(got-want) > 1e-12 {
		t.Errorf("WindResistance = %v, want %v", got, want)
	}
	if got := TreeDensity(c); got != 113 {
		t.Errorf("TreeDensity = %d, want 113", got)
	}
	if got := WindResistance(Controls{}); got != 1 {
		t.Errorf("WindResistance(empty) = %v, want 1", got)
	}
}

func TestBiodiversityIndexBounds(t *testing.T) {
	for cover := 0.0; cover <= 100; cover += 10 {
		for lai := 0.0; lai <= 10; lai++ {
			for gaps := -5; gaps <= 40; gaps += 5 {
				c := Controls{CanopyCover: cover, LAI: lai, CanopyGaps: gaps}
				if b := BiodiversityIndex(c); b < 20 || b > 100 {
					t.Fatalf("%+v: biodiversity %v outside [20,100]", c, b)
				}
			}
		}
	}
}

func TestBiodiversityGapsSaturate(t *testing.T) {
	base := Controls{CanopyCover: 50, LAI: 5}
	at20 := BiodiversityIndex(Controls{CanopyCover: 50, LAI: 5, CanopyGaps: 20})
	at999 := BiodiversityIndex(Controls{CanopyCover: 50, LAI: 5, CanopyGaps: 999})
	if at20 != at999 {
		t.Errorf("gaps beyond 20 changed the score: %v vs %v", at20, at999)
	}
	if BiodiversityIndex(base) >= at20 {
		t.Error("gaps should raise the biodiversity index")
	}
}

func TestComputeVisualStateIdempotent(t *testing.T) {
	for _, p := range Presets() {
		c := p.Controls()
		a := ComputeVisualState(c)
		b := ComputeVisualState(c)
		if a != b {
			t.Errorf("%s: visual state not deterministic", p.ID)
		}
		if LayerLights(c) != LayerLights(c) {
			t.Errorf("%s: layer lights not deterministic", p.ID)
		}
		if math.Float64bits(LightPenetration(c)) != math.Float64bits(LightPenetration(c)) {
			t.Errorf("%s: penetration not deterministic", p.ID)
		}
	}
}

func TestComputeVisualStateMatchesParts(t *testing.T) {
	c := Controls{CanopyCover: 25, LAI: 1.5, LightPenetration: 95, SunAngle: Degrees(55), CanopyGaps: 15}
	vs := ComputeVisualState(c)
	lights := LayerLights(c)
	for i, id := range Layers {
		if vs.Opacity[i] != Opacity(id, c) {
			t.Errorf("%s opacity mismatch", id)
		}
		if vs.Brightness.Get(id) != Brightness(lights[i]) {
			t.Errorf("%s brightness mismatch", id)
		}
	}
	if vs.WindResistance != WindResistance(c) || vs.TreeDensity != TreeDensity(c) || vs.BiodiversityIndex != BiodiversityIndex(c) {
		t.Errorf("scalar fields mismatch: %+v", vs)
	}
}

func TestDenseEvergreenScenario(t *testing.T) {
	c := Controls{CanopyCover: 90, LAI: 7.5, LightPenetration: 60, SunAngle: Degrees(90), CanopyGaps: 3}

	if got := AutoPenetration(c); math.Abs(got-(5+95*math.Exp(-0.8*0.9*1.75))) > 1e-9 {
		t.Errorf("AutoPenetration = %v", got)
	}
	if got := LightPenetration(c); math.Abs(got-AutoPenetration(c)*0.6) > 1e-9 {
		t.Errorf("LightPenetration = %v, want auto*0.6", got)
	}
	if got := LayerLight(ForestFloor, c); got < floorMin || got > 1.5 {
		t.Errorf("floor light = %v, want near the floor", got)
	}
	// structure 0.9*0.4 + 0.75*0.3 = 0.585; 0.585*50 + 0.15*30 + 20
	if got := BiodiversityIndex(c); math.Abs(got-53.75) > 1e-9 {
		t.Errorf("BiodiversityIndex = %v, want 53.75", got)
	}
}
