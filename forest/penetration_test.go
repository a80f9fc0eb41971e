package forest

import (
	"math"
	"testing"
)

func TestAutoPenetrationBounds(t *testing.T) {
	tests := []struct {
		name string
		c    Controls
		want float64
	}{
		{"open ground", Controls{CanopyCover: 0, LAI: 0}, 100},
		{"closed canopy", Controls{CanopyCover: 100, LAI: 10}, 5 + 95*math.Exp(-1.6)},
		{"evergreen", Controls{CanopyCover: 90, LAI: 7.5}, 5 + 95*math.Exp(-0.8*0.9*1.75)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AutoPenetration(tt.c)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AutoPenetration(%+v) = %v, want %v", tt.c, got, tt.want)
			}
			if got < 5 || got > 100 {
				t.Errorf("AutoPenetration out of [5,100]: %v", got)
			}
		})
	}
}

func TestLightPenetrationMonotonicInCanopyCover(t *testing.T) {
	for _, lai := range []float64{0, 2.5, 7.5, 10} {
		prev := math.Inf(1)
		for cover := 0.0; cover <= 100; cover += 5 {
			c := Controls{CanopyCover: cover, LAI: lai, LightPenetration: 60, SunAngle: Degrees(60)}
			got := LightPenetration(c)
			if got >= prev {
				t.Fatalf("lai=%v cover=%v: penetration %v did not decrease from %v", lai, cover, got, prev)
			}
			prev = got
		}
	}
}

func TestAutoPenetrationMonotonicInLAI(t *testing.T) {
	prev := math.Inf(1)
	for lai := 0.0; lai <= 10; lai += 0.5 {
		got := AutoPenetration(Controls{CanopyCover: 50, LAI: lai})
		if got >= prev {
			t.Fatalf("lai=%v: %v did not decrease from %v", lai, got, prev)
		}
		prev = got
	}
}

func TestLightPenetrationPeaksOverhead(t *testing.T) {
	base := Controls{CanopyCover: 60, LAI: 4, LightPenetration: 80}
	peak := LightPenetration(base.WithSunAngle(90))
	for angle := 0.0; angle <= 180; angle += 10 {
		if got := LightPenetration(base.WithSunAngle(angle)); got > peak+1e-12 {
			t.Errorf("angle %v gave %v, above overhead value %v", angle, got, peak)
		}
	}
}

func TestSunAngleSymmetry(t *testing.T) {
	base := Controls{CanopyCover: 70, LAI: 5.5, LightPenetration: 65, CanopyGaps: 6}
	for _, pair := range [][2]float64{{30, 150}, {10, 170}, {60, 120}} {
		a := LightPenetration(base.WithSunAngle(pair[0]))
		b := LightPenetration(base.WithSunAngle(pair[1]))
		if math.Abs(a-b) > 1e-12 {
			t.Errorf("angle %v = %v, angle %v = %v", pair[0], a, pair[1], b)
		}
	}
}

func TestUnsetSunAngleMatches45(t *testing.T) {
	unset := Controls{CanopyCover: 45, LAI: 3.5, LightPenetration: 80, CanopyGaps: 12}
	set := unset.WithSunAngle(45)

	if LightPenetration(unset) != LightPenetration(set) {
		t.Errorf("unset sun angle: %v, 45 degrees: %v", LightPenetration(unset), LightPenetration(set))
	}
	if LayerLights(unset) != LayerLights(set) {
		t.Errorf("layer lights differ: %v vs %v", LayerLights(unset), LayerLights(set))
	}
	if ComputeVisualState(unset) != ComputeVisualState(set) {
		t.Error("visual state differs between unset and 45 degrees")
	}
}

func TestHorizonSunUsesAngleFloor(t *testing.T) {
	c := Controls{CanopyCover: 25, LAI: 1.5, LightPenetration: 95, SunAngle: Degrees(0)}
	if f := AngleFactor(c); f != 0 {
		t.Fatalf("AngleFactor at horizon = %v, want 0", f)
	}
	want := AutoPenetration(c) * 0.95 * 0.7
	if got := LightPenetration(c); math.Abs(got-want) > 1e-12 {
		t.Errorf("LightPenetration = %v, want %v", got, want)
	}
}

func TestLightPenetrationZeroIntensity(t *testing.T) {
	c := Controls{CanopyCover: 10, LAI: 1, LightPenetration: 0, SunAngle: Degrees(90)}
	if got := LightPenetration(c); got != 0 {
		t.Errorf("zero solar intensity gave %v, want 0", got)
	}
}

func TestLightPenetrationClampsInputs(t *testing.T) {
	wild := Controls{CanopyCover: -40, LAI: -5, LightPenetration: 400, SunAngle: Degrees(720), CanopyGaps: 999}
	got := LightPenetration(wild)
	if got < 0 || got > 100 {
		t.Errorf("LightPenetration(%+v) = %v, want within [0,100]", wild, got)
	}
	want := LightPenetration(Controls{CanopyCover: 0, LAI: 0, LightPenetration: 100, SunAngle: Degrees(180), CanopyGaps: 20})
	if got != want {
		t.Errorf("clamped input gave %v, want %v", got, want)
	}
}
