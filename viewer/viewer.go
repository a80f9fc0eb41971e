// Package viewer is the interactive forest viewer: it owns the active
// controls and preset, rebuilds the scene when they change, and draws the
// scene with its panels.
package viewer

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/canopy/camera"
	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/renderer"
	"github.com/pthm-cable/canopy/scene"
	"github.com/pthm-cable/canopy/telemetry"
	"github.com/pthm-cable/canopy/ui"
)

// Options holds viewer initialization options. Empty fields fall back to
// the config.
type Options struct {
	PresetID  string // Preset selected at startup
	OutputDir string // Directory for snapshots and the config copy
	Headless  bool   // No window; Draw must not be called
	LogPerf   bool   // Periodically log frame timing
}

// perfLogEvery is how many frames pass between perf log lines.
const perfLogEvery = 600

// Viewer holds the complete viewer state.
type Viewer struct {
	cfg  *config.Config
	opts Options

	scene    *scene.Scene
	preset   forest.Preset
	controls forest.Controls
	readout  forest.Readout

	paused        bool
	frame         int
	sinceSnapshot float64

	output *telemetry.OutputManager
	perf   *telemetry.PerfCollector

	// Rendering and UI (nil when headless)
	cam           *camera.Camera
	forest        *renderer.ForestRenderer
	hud           *ui.HUD
	controlsPanel *ui.ControlsPanel
	readoutPanel  *ui.ReadoutPanel
	inspector     *ui.Inspector
	perfPanel     *ui.PerfPanel
	overlays      *ui.OverlayRegistry

	hoverLayer    forest.LayerID
	selectedLayer forest.LayerID
}

// SceneOptions converts the scene section of the config.
func SceneOptions(cfg *config.Config) scene.Options {
	return scene.Options{
		Seed:       cfg.Scene.Seed,
		CrownLimit: cfg.Scene.CrownLimit,
		Leaves: scene.LeafTimeline{
			Fall:        cfg.Scene.LeafFall,
			Duration:    cfg.Scene.LeafDuration,
			RepeatDelay: cfg.Scene.LeafRepeatDelay,
		},
		LeafStagger: cfg.Scene.LeafStagger,
	}
}

// New creates a viewer showing the requested preset. An unknown preset id
// is logged and replaced by the default preset.
func New(cfg *config.Config, opts Options) (*Viewer, error) {
	if opts.PresetID == "" {
		opts.PresetID = cfg.Viewer.StartPreset
	}
	if opts.OutputDir == "" {
		opts.OutputDir = cfg.Telemetry.OutputDir
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := output.WriteConfig(cfg, cfg.Telemetry.ConfigFile); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	v := &Viewer{
		cfg:    cfg,
		opts:   opts,
		scene:  scene.New(SceneOptions(cfg)),
		output: output,
		perf:   telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
	}

	preset, ok := forest.ResolvePreset(opts.PresetID)
	if !ok {
		slog.Warn("unknown preset, using default", "preset", opts.PresetID, "default", forest.DefaultPreset().ID)
		preset = forest.DefaultPreset()
	}
	v.applyPreset(preset)

	if !opts.Headless {
		v.initUI()
	}

	return v, nil
}

// initUI creates renderers and panels. Positions are set at draw time.
func (v *Viewer) initUI() {
	panelW := int32(v.cfg.Viewer.PanelWidth) - 2*margin
	v.cam = camera.New(v.cfg.Derived.ViewW32, v.cfg.Derived.ScreenH32, scene.ViewWidth, scene.ViewHeight)
	v.forest = renderer.NewForestRenderer()
	v.hud = ui.NewHUD()
	v.controlsPanel = ui.NewControlsPanel(0, 0, panelW)
	v.controlsPanel.SetVisible(v.cfg.Viewer.ShowControls)
	v.readoutPanel = ui.NewReadoutPanel(0, 0, panelW)
	v.inspector = ui.NewInspector(0, 0, floatWidth)
	v.perfPanel = ui.NewPerfPanel(0, 0, floatWidth)
	v.overlays = ui.NewOverlayRegistry()
	v.overlays.SetEnabled(ui.OverlayInspector, v.cfg.Viewer.ShowLayerInfo)
}

// applyPreset makes p active and replaces the controls with its defaults.
func (v *Viewer) applyPreset(p forest.Preset) {
	v.preset = p
	v.setControls(p.Controls())
}

// setControls clamps c, recomputes the readout and rebuilds the scene.
func (v *Viewer) setControls(c forest.Controls) {
	v.controls = c.Clamped()
	v.readout = forest.NewReadout(v.controls)
	v.scene.Rebuild(v.controls, v.preset)
}

// SelectPreset switches to the preset with the given id, overwriting every
// control with the preset's defaults. It returns false, leaving the state
// untouched, when no such preset exists.
func (v *Viewer) SelectPreset(id string) bool {
	p, ok := forest.ResolvePreset(id)
	if !ok {
		slog.Warn("unknown preset", "preset", id)
		return false
	}
	v.applyPreset(p)
	slog.Info("preset selected",
		"preset", p.ID,
		"canopy_cover", v.controls.CanopyCover,
		"lai", v.controls.LAI,
		"sun_angle", v.controls.SunAngleDegrees(),
	)
	return true
}

// SetControls replaces the active controls. Out-of-range values are clamped.
func (v *Viewer) SetControls(c forest.Controls) {
	v.setControls(c)
}

// ResetControls restores the active preset's defaults.
func (v *Viewer) ResetControls() {
	v.setControls(v.preset.Controls())
}

// TogglePause pauses or resumes the animation and returns the new state.
func (v *Viewer) TogglePause() bool {
	v.paused = !v.paused
	return v.paused
}

// Advance moves the animation forward by dt seconds unless paused, and
// takes an automatic snapshot when one is due.
func (v *Viewer) Advance(dt float64) {
	v.frame++
	if v.paused {
		return
	}

	v.perf.StartPhase(telemetry.PhaseAnimate)
	v.scene.Update(dt)

	if every := v.cfg.Telemetry.SnapshotEvery; every > 0 && v.output != nil {
		v.sinceSnapshot += dt
		if v.sinceSnapshot >= every {
			v.sinceSnapshot -= every
			if err := v.Snapshot(); err != nil {
				slog.Error("automatic snapshot failed", "error", err)
			}
		}
	}
}

// Snapshot appends the current evaluation to the evaluations CSV. It is a
// no-op when output is disabled.
func (v *Viewer) Snapshot() error {
	if v.output == nil {
		return nil
	}
	v.perf.StartPhase(telemetry.PhaseWrite)
	e := v.Evaluation()
	if err := v.output.WriteEvaluations(v.cfg.Telemetry.EvaluationsFile, e); err != nil {
		return err
	}
	slog.Info("snapshot", "file", v.output.Path(v.cfg.Telemetry.EvaluationsFile), "evaluation", e)
	return nil
}

// UpdateHeadless advances one frame without input or drawing and logs the
// resulting evaluation.
func (v *Viewer) UpdateHeadless() {
	v.perf.StartFrame()
	v.Advance(v.cfg.Derived.FrameDT)
	v.perf.StartPhase(telemetry.PhaseEvaluate)
	e := v.Evaluation()
	v.perf.EndFrame()

	slog.Info("evaluation", "frame", v.frame, "time", v.scene.Time(), "evaluation", e)
	v.maybeLogPerf()
}

func (v *Viewer) maybeLogPerf() {
	if v.opts.LogPerf && v.frame%perfLogEvery == 0 {
		v.perf.Stats().LogStats()
	}
}

// Evaluation returns the model outputs for the active preset and controls.
func (v *Viewer) Evaluation() telemetry.Evaluation {
	return telemetry.Evaluate(v.preset.ID, v.controls)
}

// Controls returns the active (clamped) controls.
func (v *Viewer) Controls() forest.Controls { return v.controls }

// Preset returns the active preset.
func (v *Viewer) Preset() forest.Preset { return v.preset }

// Readout returns the live readout for the active controls.
func (v *Viewer) Readout() forest.Readout { return v.readout }

// Scene returns the animated scene.
func (v *Viewer) Scene() *scene.Scene { return v.scene }

// Paused reports whether the animation is paused.
func (v *Viewer) Paused() bool { return v.paused }

// Frame returns the number of frames advanced so far.
func (v *Viewer) Frame() int { return v.frame }

// Unload flushes output files and releases renderer resources.
func (v *Viewer) Unload() {
	if v.forest != nil {
		v.forest.Unload()
	}
	if err := v.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}
