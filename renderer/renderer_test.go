package renderer

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/palette"
	"github.com/pthm-cable/canopy/scene"
)

func TestFitView(t *testing.T) {
	tests := []struct {
		name           string
		x, y, w, h     float32
		wantScale      float32
		wantOX, wantOY float32
	}{
		{"exact", 0, 0, 1000, 800, 1, 0, 0},
		{"wide area letterboxes horizontally", 0, 0, 2000, 800, 1, 500, 0},
		{"tall area letterboxes vertically", 10, 20, 500, 800, 0.5, 10, 220},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := FitView(tt.x, tt.y, tt.w, tt.h)
			if v.Scale != tt.wantScale || v.X != tt.wantOX || v.Y != tt.wantOY {
				t.Errorf("FitView = %+v, want scale %v origin (%v,%v)", v, tt.wantScale, tt.wantOX, tt.wantOY)
			}
		})
	}
}

func TestViewRoundTrip(t *testing.T) {
	v := FitView(380, 0, 1020, 820)
	p := v.Point(250, 640)
	x, y := v.ToScene(p.X, p.Y)
	if math.Abs(float64(x-250)) > 1e-3 || math.Abs(float64(y-640)) > 1e-3 {
		t.Errorf("round trip gave (%v,%v)", x, y)
	}
	if got := v.Len(100); math.Abs(float64(got-100*v.Scale)) > 1e-6 {
		t.Errorf("Len(100) = %v", got)
	}
}

func TestLayerAt(t *testing.T) {
	v := FitView(0, 0, 1000, 800)
	tests := []struct {
		y    float32
		want forest.LayerID
		ok   bool
	}{
		{10, forest.Emergent, true},
		{200, forest.Canopy, true},
		{400, forest.Understory, true},
		{700, forest.ForestFloor, true},
		{-5, "", false},
		{900, "", false},
	}
	for _, tt := range tests {
		got, ok := v.LayerAt(500, tt.y)
		if got != tt.want || ok != tt.ok {
			t.Errorf("LayerAt(500, %v) = %q,%v want %q,%v", tt.y, got, ok, tt.want, tt.ok)
		}
	}
	if _, ok := v.LayerAt(1200, 200); ok {
		t.Error("point right of the frame should not hit a layer")
	}
}

func TestRotateAbout(t *testing.T) {
	x, y := rotateAbout(10, 0, 0, 0, 90)
	if math.Abs(float64(x)) > 1e-4 || math.Abs(float64(y-10)) > 1e-4 {
		t.Errorf("90 deg clockwise of (10,0) = (%v,%v), want (0,10)", x, y)
	}
	if x, y := rotateAbout(3, 4, 1, 1, 0); x != 3 || y != 4 {
		t.Errorf("zero rotation moved the point to (%v,%v)", x, y)
	}
}

func TestToneColor(t *testing.T) {
	p := forest.DefaultPreset().Colors

	full := ToneColor(p, scene.ToneCanopy, 0, 100, 1)
	if want := palette.MustParseRGBA(p.Canopy); full != want {
		t.Errorf("full brightness canopy = %+v, want %+v", full, want)
	}

	shifted := ToneColor(p, scene.ToneCanopy, 20, 100, 1)
	if want := palette.MustParseRGBA(palette.AdjustBrightness(p.Canopy, 20)); shifted != want {
		t.Errorf("shifted canopy = %+v, want %+v", shifted, want)
	}

	dark := ToneColor(p, scene.ToneTrunk, 0, 10, 0.5)
	trunk := palette.MustParseRGBA(p.Trunk)
	if int(dark.R)+int(dark.G)+int(dark.B) >= int(trunk.R)+int(trunk.G)+int(trunk.B) {
		t.Errorf("shaded trunk %+v should be darker than %+v", dark, trunk)
	}
	if dark.A != 128 {
		t.Errorf("alpha = %d, want 128", dark.A)
	}

	if toneHex(p, scene.ToneFloor) != p.Floor || toneHex(p, scene.ToneUnderstory) != p.Understory {
		t.Error("tone lookup picked the wrong palette entry")
	}
}

func TestSkyColorsFollowSun(t *testing.T) {
	lowTop, _ := SkyColors(0)
	highTop, _ := SkyColors(1)
	if lowTop.R <= highTop.R || lowTop.B >= highTop.B {
		t.Errorf("low sun sky %+v should be warmer than overhead sky %+v", lowTop, highTop)
	}
}

func TestBandColorAlpha(t *testing.T) {
	p := forest.DefaultPreset().Colors
	if e, f := BandColor(p, forest.Emergent, 100), BandColor(p, forest.ForestFloor, 100); e.A >= f.A {
		t.Errorf("emergent wash (%d) should be lighter than floor wash (%d)", e.A, f.A)
	}
}

func TestClipRect(t *testing.T) {
	frame := rl.Rectangle{X: -100, Y: -50, Width: 2000, Height: 1600}
	tests := []struct {
		name string
		clip rl.Rectangle
		want rl.Rectangle
	}{
		{"empty clip keeps frame", rl.Rectangle{}, frame},
		{"clip inside frame", rl.Rectangle{X: 0, Y: 0, Width: 1020, Height: 820}, rl.Rectangle{X: 0, Y: 0, Width: 1020, Height: 820}},
		{"disjoint clip is empty", rl.Rectangle{X: 3000, Y: 0, Width: 10, Height: 10}, rl.Rectangle{X: 3000, Y: 0, Width: 0, Height: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clipRect(frame, tt.clip); got != tt.want {
				t.Errorf("clipRect = %+v, want %+v", got, tt.want)
			}
		})
	}
}
