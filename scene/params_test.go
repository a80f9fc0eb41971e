package scene

import (
	"math"
	"testing"

	"github.com/pthm-cable/canopy/forest"
)

func evergreen(t *testing.T) forest.Controls {
	t.Helper()
	p, ok := forest.ResolvePreset(forest.TropicalWetEvergreen)
	if !ok {
		t.Fatal("evergreen preset missing")
	}
	return p.Controls()
}

func TestRayParamsBounds(t *testing.T) {
	for cover := 0.0; cover <= 100; cover += 10 {
		for lai := 0.0; lai <= 10; lai += 1 {
			for lp := 0.0; lp <= 100; lp += 25 {
				c := forest.Controls{CanopyCover: cover, LAI: lai, LightPenetration: lp, SunAngle: forest.Degrees(90)}
				if n := RayCount(c); n < 5 || n > 10 {
					t.Fatalf("%+v: ray count %d outside [5,10]", c, n)
				}
				if b := BlockageFactor(c); b < 0.2 || b > 1 {
					t.Fatalf("%+v: blockage %v outside [0.2,1]", c, b)
				}
				for _, r := range Rays(c) {
					if r.Scattered {
						continue
					}
					if r.Opacity < 0.15-1e-6 || r.Opacity > 0.8+1e-6 {
						t.Fatalf("%+v: ray opacity %v outside [0.15,0.8]", c, r.Opacity)
					}
					if r.Y2 < emergentStop || r.Y2 > floorStop {
						t.Fatalf("%+v: ray end %v outside stand", c, r.Y2)
					}
					if r.Width < 1 {
						t.Fatalf("%+v: ray width %v below 1", c, r.Width)
					}
				}
			}
		}
	}
}

func TestRaysSymmetric(t *testing.T) {
	rays := Rays(evergreen(t))
	n := RayCount(evergreen(t))
	for i := 0; i < n/2; i++ {
		l, r := rays[i], rays[n-1-i]
		if math.Abs(float64(l.X2+r.X2)-2*centreX) > 1e-3 {
			t.Errorf("rays %d and %d not mirrored: %v, %v", i, n-1-i, l.X2, r.X2)
		}
	}
}

func TestRayDepthDarkStand(t *testing.T) {
	c := forest.Controls{CanopyCover: 100, LAI: 10, LightPenetration: 0, SunAngle: forest.Degrees(90)}
	want := emergentStop + (canopyStop-emergentStop)*0.3
	if got := RayDepth(c); math.Abs(got-want) > 1e-9 {
		t.Errorf("RayDepth(dark) = %v, want %v", got, want)
	}
}

func TestGapLayout(t *testing.T) {
	tests := []struct {
		i          int
		x, y, size float64
	}{
		{0, 200, 250, 60},
		{1, 350, 330, 80},
		{2, 500, 410, 100},
		{4, 200, 320, 80},
	}
	for _, tt := range tests {
		x, y, size := GapLayout(tt.i)
		if x != tt.x || y != tt.y || size != tt.size {
			t.Errorf("GapLayout(%d) = (%v,%v,%v), want (%v,%v,%v)", tt.i, x, y, size, tt.x, tt.y, tt.size)
		}
	}
}

func TestGapsFollowControls(t *testing.T) {
	c := forest.Controls{CanopyCover: 25, LAI: 1.5, LightPenetration: 95, SunAngle: forest.Degrees(55), CanopyGaps: 15}
	gaps := Gaps(c)
	if len(gaps) != 15 {
		t.Fatalf("expected 15 gaps, got %d", len(gaps))
	}
	want := float32(GapIntensity(c))
	for i, g := range gaps {
		if g.Intensity != want {
			t.Errorf("gap %d intensity %v, want %v", i, g.Intensity, want)
		}
		if !g.Regrowth {
			t.Errorf("gap %d should show regrowth in an open stand", i)
		}
	}
	if n := len(Gaps(forest.Controls{CanopyGaps: 99})); n != forest.MaxCanopyGaps {
		t.Errorf("gap count not clamped: %d", n)
	}
	dark := Gaps(forest.Controls{CanopyCover: 100, LAI: 10, LightPenetration: 10, CanopyGaps: 2})
	for _, g := range dark {
		if g.Regrowth {
			t.Error("regrowth shown in a dark stand")
		}
	}
}

func TestLeafCount(t *testing.T) {
	c := evergreen(t)
	if got := LeafCount(forest.Canopy, c); got != 20 {
		t.Errorf("canopy leaves = %d, want 20", got)
	}
	if got := LeafCount(forest.Emergent, c); got != 14 {
		t.Errorf("emergent leaves = %d, want 14", got)
	}
	if got := LeafCount(forest.Understory, c); got != 0 {
		t.Errorf("understory leaves = %d, want 0", got)
	}
}

func TestFogOpacity(t *testing.T) {
	if got := FogOpacity(forest.Controls{}); got != 0.05 {
		t.Errorf("open stand fog = %v, want 0.05 floor", got)
	}
	c := forest.Controls{CanopyCover: 100, LAI: 10, LightPenetration: 0}
	if got := FogOpacity(c); math.Abs(got-0.15) > 1e-12 {
		t.Errorf("closed dark stand fog = %v, want 0.15", got)
	}
}

func TestWindOrdering(t *testing.T) {
	c := evergreen(t)
	e := WindForce(forest.Emergent, c)
	cn := WindForce(forest.Canopy, c)
	u := WindForce(forest.Understory, c)
	if !(e > cn && cn > u && u > 0) {
		t.Errorf("wind forces not ordered: %v %v %v", e, cn, u)
	}
	if got, want := cn*forest.WindResistance(c), 1.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("canopy force * resistance = %v, want 1", got)
	}
	if WindForce(forest.ForestFloor, c) != 0 {
		t.Error("forest floor should not sway")
	}

	base := WindDuration(forest.Emergent, c)
	if math.Abs(WindDuration(forest.Canopy, c)-base*1.2) > 1e-12 ||
		math.Abs(WindDuration(forest.Understory, c)-base*1.5) > 1e-12 {
		t.Error("layer wind durations not scaled 1.2x/1.5x")
	}
	if math.Abs(base-(2+0.9*2)) > 1e-12 {
		t.Errorf("wind duration = %v, want 3.8", base)
	}
}

func TestSunGeometry(t *testing.T) {
	overhead := SunGeometry(forest.Controls{SunAngle: forest.Degrees(90)})
	if math.Abs(overhead.X-centreX) > 1e-9 || math.Abs(overhead.Y-skyY) > 1e-9 {
		t.Errorf("overhead sun at (%v,%v)", overhead.X, overhead.Y)
	}
	if math.Abs(overhead.Intensity-1) > 1e-12 {
		t.Errorf("overhead intensity = %v", overhead.Intensity)
	}
	dawn := SunGeometry(forest.Controls{SunAngle: forest.Degrees(0)})
	if dawn.X >= overhead.X || dawn.Radius >= overhead.Radius {
		t.Errorf("dawn sun should sit left and smaller: %+v", dawn)
	}
	dusk := SunGeometry(forest.Controls{SunAngle: forest.Degrees(180)})
	if dusk.X <= overhead.X {
		t.Errorf("dusk sun should sit right: %+v", dusk)
	}
}

func TestGlowGeometry(t *testing.T) {
	open := forest.Controls{CanopyCover: 20, LAI: 1, LightPenetration: 100, SunAngle: forest.Degrees(90)}
	g, ok := GlowGeometry(open)
	if !ok {
		t.Fatal("open stand should glow")
	}
	pen := forest.LightPenetration(open) / 100
	reach := forest.LayerLight(forest.ForestFloor, open) * pen
	if math.Abs(g.Y-(skyY+reach/5*350)) > 1e-9 || math.Abs(g.RX-(150+reach/5*200)) > 1e-9 ||
		math.Abs(g.RY-reach/5*300) > 1e-9 || g.X != centreX {
		t.Errorf("glow = %+v for floor reach %v", g, reach)
	}
	block := math.Max(0.3, forest.CanopyTransmission(open)*(1-0.2*0.5))
	if math.Abs(g.Opacity-0.1*block*pen) > 1e-12 {
		t.Errorf("glow opacity = %v, want %v", g.Opacity, 0.1*block*pen)
	}

	// Blockage never drops below 0.3
	thick := forest.Controls{CanopyCover: 40, LAI: 10, LightPenetration: 100, SunAngle: forest.Degrees(90)}
	if g, ok := GlowGeometry(thick); ok && g.Opacity < 0.1*0.3*forest.LightPenetration(thick)/100-1e-12 {
		t.Errorf("glow opacity %v below blockage floor", g.Opacity)
	}

	dark := forest.Controls{CanopyCover: 100, LAI: 10, LightPenetration: 0, SunAngle: forest.Degrees(90)}
	if _, ok := GlowGeometry(dark); ok {
		t.Error("no glow expected when no light reaches the floor")
	}
}
