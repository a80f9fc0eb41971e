// Package main fits forest controls to observed per-layer light levels by
// searching the model with Nelder-Mead.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/telemetry"
)

// progressEvery is how many evaluations pass between progress lines.
const progressEvery = 100

// bestFile records the best controls found, in a form that can be pasted
// into a preset table.
type bestFile struct {
	StartPreset      string             `yaml:"start_preset"`
	Loss             float64            `yaml:"loss"`
	Evals            int                `yaml:"evals"`
	CanopyCover      float64            `yaml:"canopy_cover"`
	LAI              float64            `yaml:"lai"`
	LightPenetration float64            `yaml:"light_penetration"`
	SunAngle         float64            `yaml:"sun_angle"`
	CanopyGaps       int                `yaml:"canopy_gaps"`
	LayerLight       map[string]float64 `yaml:"layer_light"`
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for the evaluation log and best controls")
	preset := flag.String("preset", "", "Starting preset (overrides config)")
	maxEvals := flag.Int("max-evals", 0, "Objective evaluation budget (0 = config value)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()
	if *preset != "" {
		cfg.Calibrate.StartPreset = *preset
	}
	if *maxEvals > 0 {
		cfg.Calibrate.MaxEvals = *maxEvals
	}

	start, ok := forest.ResolvePreset(cfg.Calibrate.StartPreset)
	if !ok {
		log.Fatalf("unknown start preset %q", cfg.Calibrate.StartPreset)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg, cfg.Telemetry.ConfigFile); err != nil {
		log.Fatalf("failed to write config: %v", err)
	}

	params := NewParamVector()
	obj := NewObjective(cfg.Calibrate)
	startTime := time.Now()

	fmt.Printf("Calibrating %d controls from %s, max_evals=%d\n", params.Dim(), start.Name, cfg.Calibrate.MaxEvals)
	fmt.Printf("Targets: emergent=%.1f canopy=%.1f understory=%.1f floor=%.1f\n",
		obj.Targets[0], obj.Targets[1], obj.Targets[2], obj.Targets[3])

	onStep := func(step telemetry.CalibrationStep) {
		if err := output.WriteCalibrationStep(cfg.Calibrate.LogFile, step); err != nil {
			log.Fatalf("failed to write calibration log: %v", err)
		}
		if step.Eval%progressEvery == 0 {
			fmt.Printf("Eval %d/%d: loss=%.6f best=%.6f | elapsed: %s\n",
				step.Eval, cfg.Calibrate.MaxEvals, step.Loss, step.BestLoss, time.Since(startTime).Round(time.Millisecond))
		}
	}

	result, err := Calibrate(params, obj, start.Controls(), NewSearch(cfg.Calibrate), onStep)
	if err != nil {
		log.Printf("search ended: %v", err)
	}

	c := result.Controls
	lights := forest.LayerLights(c)
	fmt.Printf("\nCalibration complete after %d evaluations in %s\n", result.Evals, time.Since(startTime).Round(time.Millisecond))
	fmt.Printf("Best loss: %.6f\n", result.Loss)
	fmt.Println("\nBest controls:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.3f\n", spec.Name, params.FromControls(c)[i])
	}
	fmt.Println("\nLayer light:")
	for i, info := range forest.LayerInfos() {
		fmt.Printf("  %-12s %6.2f%%  (target %.2f%%)\n", info.Name, lights[i], obj.Targets[i])
	}

	if *outputDir == "" {
		return
	}
	best := bestFile{
		StartPreset:      start.ID,
		Loss:             result.Loss,
		Evals:            result.Evals,
		CanopyCover:      c.CanopyCover,
		LAI:              c.LAI,
		LightPenetration: c.LightPenetration,
		SunAngle:         c.SunAngleDegrees(),
		CanopyGaps:       c.CanopyGaps,
		LayerLight:       make(map[string]float64, len(lights)),
	}
	for i, info := range forest.LayerInfos() {
		best.LayerLight[string(info.ID)] = lights[i]
	}
	data, err := yaml.Marshal(best)
	if err != nil {
		log.Fatalf("failed to marshal best controls: %v", err)
	}
	bestPath := filepath.Join(*outputDir, "best_controls.yaml")
	if err := os.WriteFile(bestPath, data, 0644); err != nil {
		log.Fatalf("failed to write best controls: %v", err)
	}
	fmt.Printf("\nBest controls saved to: %s\n", bestPath)
}
