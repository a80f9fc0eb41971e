package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/canopy/renderer"
)

func TestNew(t *testing.T) {
	cam := New(1000, 1000, 1000, 800)

	// Should be centered on world
	if cam.X != 500 || cam.Y != 400 {
		t.Errorf("expected camera at (500, 400), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 || cam.MinZoom != 1.0 || cam.MaxZoom != 4.0 {
		t.Errorf("zoom %f in [%f, %f], want 1 in [1, 4]", cam.Zoom, cam.MinZoom, cam.MaxZoom)
	}
}

func TestViewMatchesFitView(t *testing.T) {
	cam := New(1020, 820, 1000, 800)
	got := cam.View(0, 0)
	want := renderer.FitView(0, 0, 1020, 820)
	if math.Abs(float64(got.X-want.X)) > 1e-3 || math.Abs(float64(got.Y-want.Y)) > 1e-3 ||
		math.Abs(float64(got.Scale-want.Scale)) > 1e-6 {
		t.Errorf("unzoomed view %+v, want %+v", got, want)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 1000, 800)
	cam.ZoomBy(2)

	// Test roundtrip at various positions
	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanStaysInsideWorld(t *testing.T) {
	cam := New(1000, 800, 1000, 800)

	// Fully zoomed out, panning has nowhere to go
	cam.Pan(-300, 200)
	if cam.X != 500 || cam.Y != 400 {
		t.Errorf("unzoomed pan moved camera to (%f, %f)", cam.X, cam.Y)
	}

	cam.SetZoom(2)
	cam.Pan(-5000, -5000)
	// Visible half-extents are 250x200 world units
	if cam.X != 250 || cam.Y != 200 {
		t.Errorf("expected camera clamped to (250, 200), got (%f, %f)", cam.X, cam.Y)
	}
	cam.Pan(100, 0)
	if math.Abs(float64(cam.X-300)) > 1e-4 {
		t.Errorf("100px pan at zoom 2 should move 50 units, got X=%f", cam.X)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(500, 400, 1000, 800)

	if cam.MinZoom != 0.5 {
		t.Errorf("expected MinZoom 0.5, got %f", cam.MinZoom)
	}

	cam.SetZoom(0.1) // Below min
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom clamped to 0.5, got %f", cam.Zoom)
	}

	cam.SetZoom(10.0) // Above max
	if cam.Zoom != 2.0 {
		t.Errorf("expected zoom clamped to 2.0, got %f", cam.Zoom)
	}
	if !cam.Zoomed() {
		t.Error("camera at max zoom should report Zoomed")
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := New(1000, 800, 1000, 800)
	wx, wy := cam.ScreenToWorld(600, 500)

	cam.ZoomAt(600, 500, 2)

	gx, gy := cam.ScreenToWorld(600, 500)
	if math.Abs(float64(gx-wx)) > 0.01 || math.Abs(float64(gy-wy)) > 0.01 {
		t.Errorf("point under cursor moved from (%f,%f) to (%f,%f)", wx, wy, gx, gy)
	}
}

func TestResizeKeepsRelativeZoom(t *testing.T) {
	cam := New(1000, 800, 1000, 800)
	cam.SetZoom(2)

	cam.Resize(500, 400)
	if cam.MinZoom != 0.5 || cam.Zoom != 1 {
		t.Errorf("after resize zoom %f min %f, want 1 and 0.5", cam.Zoom, cam.MinZoom)
	}
}

func TestReset(t *testing.T) {
	cam := New(1000, 800, 1000, 800)
	cam.SetZoom(3)
	cam.Pan(200, 100)

	cam.Reset()

	if cam.X != 500 || cam.Y != 400 {
		t.Errorf("expected position (500, 400), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != cam.MinZoom || cam.Zoomed() {
		t.Errorf("expected fitted zoom, got %f", cam.Zoom)
	}
}
