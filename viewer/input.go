package viewer

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/telemetry"
)

// Update handles input and advances the animation by one frame.
// Must be paired with Draw, which ends the frame's timing.
func (v *Viewer) Update() {
	v.perf.StartFrame()
	v.perf.StartPhase(telemetry.PhaseInput)
	v.handleInput()
	v.Advance(v.cfg.Derived.FrameDT)
}

// presetForKey maps the number keys to presets in table order.
func presetForKey(key int32) (string, bool) {
	presets := forest.Presets()
	i := int(key - rl.KeyOne)
	if i < 0 || i >= len(presets) {
		return "", false
	}
	return presets[i].ID, true
}

func (v *Viewer) handleInput() {
	for key := int32(rl.KeyOne); key <= rl.KeyNine; key++ {
		if !rl.IsKeyPressed(key) {
			continue
		}
		if id, ok := presetForKey(key); ok {
			v.SelectPreset(id)
		}
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		v.controlsPanel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.ResetControls()
		slog.Info("controls reset", "preset", v.preset.ID)
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		v.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		if v.output == nil {
			slog.Warn("snapshot skipped, no output directory configured")
		} else if err := v.Snapshot(); err != nil {
			slog.Error("snapshot failed", "error", err)
		}
	}

	for _, desc := range v.overlays.All() {
		if desc.Key == 0 || !rl.IsKeyPressed(desc.Key) {
			continue
		}
		if id, on, ok := v.overlays.HandleKeyPress(desc.Key); ok {
			slog.Debug("overlay toggled", "overlay", id, "enabled", on)
		}
	}

	v.handleMouse()
}

// zoomStep is the zoom factor per mouse wheel notch.
const zoomStep = 1.15

// handleMouse tracks the layer under the cursor and drives the camera.
// Clicking a layer pins it in the inspector; clicking it again unpins.
func (v *Viewer) handleMouse() {
	if rl.IsKeyPressed(rl.KeyC) {
		v.cam.Reset()
	}

	lay := v.layout()
	mouse := rl.GetMousePosition()
	if int32(mouse.X) >= lay.PanelX {
		v.hoverLayer = ""
		return
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.cam.ZoomAt(mouse.X, mouse.Y, float32(math.Pow(zoomStep, float64(wheel))))
		lay = v.layout()
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
		lay = v.layout()
	}

	id, ok := lay.View.LayerAt(mouse.X, mouse.Y)
	if !ok {
		id = ""
	}
	v.hoverLayer = id

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		v.selectedLayer = toggleSelection(v.selectedLayer, id)
	}
}

// toggleSelection returns the layer to pin after a click on clicked.
func toggleSelection(current, clicked forest.LayerID) forest.LayerID {
	if clicked == current {
		return ""
	}
	return clicked
}

// inspectedLayer is the pinned layer, or the hovered one when nothing is pinned.
func (v *Viewer) inspectedLayer() forest.LayerID {
	if v.selectedLayer != "" {
		return v.selectedLayer
	}
	return v.hoverLayer
}
