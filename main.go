package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	preset := flag.String("preset", "", "Forest preset id (empty = config start preset)")
	headless := flag.Bool("headless", false, "Evaluate without graphics")
	logPerf := flag.Bool("log-perf", false, "Log frame timing via slog")
	outputDir := flag.String("output-dir", "", "Output directory for snapshots and config copy")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited, headless defaults to 1)")
	listPresets := flag.Bool("list-presets", false, "Print the available presets and exit")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *listPresets {
		for i, p := range forest.Presets() {
			slog.Info("preset", "key", i+1, "id", p.ID, "name", p.Name, "location", p.Location)
		}
		return
	}

	opts := viewer.Options{
		PresetID:  *preset,
		OutputDir: *outputDir,
		Headless:  *headless,
		LogPerf:   *logPerf,
	}

	if *headless {
		v, err := viewer.New(cfg, opts)
		if err != nil {
			slog.Error("failed to start viewer", "error", err)
			os.Exit(1)
		}
		defer v.Unload()

		frames := *maxFrames
		if frames <= 0 {
			frames = 1
		}
		slog.Info("starting headless evaluation", "preset", v.Preset().ID, "frames", frames)

		for v.Frame() < frames {
			v.UpdateHeadless()
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Canopy")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	v, err := viewer.New(cfg, opts)
	if err != nil {
		slog.Error("failed to start viewer", "error", err)
		return
	}
	defer v.Unload()

	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()

		if *maxFrames > 0 && v.Frame() >= *maxFrames {
			break
		}
	}
}
