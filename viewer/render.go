package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/renderer"
	"github.com/pthm-cable/canopy/telemetry"
	"github.com/pthm-cable/canopy/ui"
)

const (
	windowTitle = "Canopy"
	floatWidth  = 320 // Inspector and perf panel width
	margin      = 10
)

// Layout places the scene view and the panel column on screen.
type Layout struct {
	View    renderer.View
	ViewW   int32
	PanelX  int32
	PanelW  int32
	ScreenH int32
}

// ComputeLayout splits the screen into the scene view on the left and the
// panel column of width panelW on the right.
func ComputeLayout(screenW, screenH, panelW int32) Layout {
	if panelW > screenW {
		panelW = screenW
	}
	viewW := screenW - panelW
	return Layout{
		View:    renderer.FitView(0, 0, float32(viewW), float32(screenH)),
		ViewW:   viewW,
		PanelX:  viewW,
		PanelW:  panelW,
		ScreenH: screenH,
	}
}

// layout computes the layout for the current window size and applies the
// camera's zoom to the scene view.
func (v *Viewer) layout() Layout {
	lay := ComputeLayout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), int32(v.cfg.Viewer.PanelWidth))
	v.cam.Resize(float32(lay.ViewW), float32(lay.ScreenH))
	lay.View = v.cam.View(0, 0)
	return lay
}

// drawOptions maps the enabled overlays onto scene elements.
func (v *Viewer) drawOptions(lay Layout) renderer.DrawOptions {
	return renderer.DrawOptions{
		Rays:   v.overlays.IsEnabled(ui.OverlayRays),
		Gaps:   v.overlays.IsEnabled(ui.OverlayGaps),
		Leaves: v.overlays.IsEnabled(ui.OverlayLeaves),
		Fog:    v.overlays.IsEnabled(ui.OverlayFog),
		Labels: v.overlays.IsEnabled(ui.OverlayLabels),
		Clip:   rl.Rectangle{Width: float32(lay.ViewW), Height: float32(lay.ScreenH)},
	}
}

// Draw renders the scene and all panels, then ends the frame's timing.
// Slider and preset changes made in the controls panel take effect here.
func (v *Viewer) Draw() {
	v.perf.StartPhase(telemetry.PhaseDraw)
	lay := v.layout()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 18, B: 14, A: 255})

	v.forest.Draw(lay.View, v.scene, v.drawOptions(lay))
	v.drawHUD(lay)
	v.drawFloating(lay)
	v.drawPanelColumn(lay)

	rl.EndDrawing()

	v.perf.EndFrame()
	v.maybeLogPerf()
}

func (v *Viewer) drawHUD(lay Layout) {
	stats := v.scene.Stats()
	v.hud.Draw(ui.HUDData{
		Title:        windowTitle,
		PresetName:   v.preset.Name,
		TimeOfDay:    v.readout.TimeOfDay,
		AnimTime:     v.scene.Time(),
		FPS:          rl.GetFPS(),
		Paused:       v.paused,
		Trees:        stats.Trunks,
		Rays:         stats.Rays,
		Leaves:       stats.Leaves,
		ScreenWidth:  lay.ViewW,
		ScreenHeight: lay.ScreenH,
	})
	v.hud.DrawControls(lay.ViewW, lay.ScreenH, ui.ControlsLegend(v.overlays))
}

// drawFloating renders the layer inspector or the perf panel in the top
// right corner of the view.
func (v *Viewer) drawFloating(lay Layout) {
	x := lay.ViewW - floatWidth - margin
	switch {
	case v.overlays.IsEnabled(ui.OverlayPerf):
		v.perfPanel.SetPosition(x, margin)
		v.perfPanel.Draw(v.perf.Stats(), telemetry.PerfPhases)
	case v.overlays.IsEnabled(ui.OverlayInspector):
		id := v.inspectedLayer()
		if id == "" {
			return
		}
		data, ok := ui.NewInspectorData(id, v.readout, v.scene.Visual())
		if !ok {
			return
		}
		v.inspector.SetPosition(x, margin)
		v.inspector.Draw(data)
	}
}

// drawPanelColumn renders the controls and the readout stacked in the
// right-hand column, applying any control changes.
func (v *Viewer) drawPanelColumn(lay Layout) {
	rl.DrawRectangle(lay.PanelX, 0, lay.PanelW, lay.ScreenH, rl.Color{R: 18, G: 26, B: 20, A: 255})

	presets := forest.Presets()
	y := int32(margin)
	x := lay.PanelX + margin

	v.controlsPanel.SetPosition(x, y)
	res := v.controlsPanel.Draw(v.controls, presets, v.preset.ID)
	if v.controlsPanel.IsVisible() {
		y += v.controlsPanel.Height(len(presets)) + margin
	}

	v.readoutPanel.SetPosition(x, y)
	v.readoutPanel.Draw(ui.ReadoutData{Readout: v.readout, Preset: v.preset})

	switch {
	case res.Preset != "":
		v.SelectPreset(res.Preset)
	case res.Changed:
		v.SetControls(res.Controls)
	}
}
