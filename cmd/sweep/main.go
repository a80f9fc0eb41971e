// Package main evaluates the forest model over a grid of controls and
// writes every evaluation plus per-column statistics to CSV.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/pthm-cable/canopy/config"
	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/telemetry"
)

// sweepLabel is recorded in the preset column of every row.
const sweepLabel = "sweep"

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	outputDir := flag.String("output-dir", "sweep-out", "Output directory for results")
	logPerf := flag.Bool("perf", false, "Log evaluation and write timing at the end")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg, cfg.Telemetry.ConfigFile); err != nil {
		log.Fatalf("failed to write config: %v", err)
	}

	grid := NewGrid(cfg.Sweep)
	perf := telemetry.NewPerfCollector(len(grid.Cover))
	all := make([]telemetry.Evaluation, 0, grid.Size())
	startTime := time.Now()

	fmt.Printf("Sweeping %d points (%d cover x %d LAI x %d light x %d sun x %d gaps)\n",
		grid.Size(), len(grid.Cover), len(grid.LAI), len(grid.Light), len(grid.SunAngles), len(grid.Gaps))

	for i := range grid.Cover {
		perf.StartFrame()
		perf.StartPhase(telemetry.PhaseEvaluate)
		batch := Evaluate(grid.Slice(i))

		perf.StartPhase(telemetry.PhaseWrite)
		if err := output.WriteEvaluations(cfg.Sweep.OutputFile, batch...); err != nil {
			log.Fatalf("failed to write evaluations: %v", err)
		}
		perf.EndFrame()

		all = append(all, batch...)
		fmt.Printf("Cover %5.1f%%: %d/%d evaluated | elapsed: %s\n",
			grid.Cover[i], len(all), grid.Size(), time.Since(startTime).Round(time.Millisecond))
	}

	summary := telemetry.SummarizeEvaluations(all)
	if err := output.WriteSummary(cfg.Sweep.SummaryFile, summary); err != nil {
		log.Fatalf("failed to write summary: %v", err)
	}

	fmt.Printf("\nSweep complete: %d evaluations in %s\n", len(all), time.Since(startTime).Round(time.Millisecond))
	fmt.Printf("%-22s %10s %10s %10s %10s\n", "column", "mean", "min", "p50", "max")
	for _, s := range summary {
		fmt.Printf("%-22s %10.3f %10.3f %10.3f %10.3f\n", s.Column, s.Mean, s.Min, s.P50, s.Max)
	}
	if output != nil {
		fmt.Printf("\nResults saved to: %s\n", output.Dir())
	}
	if *logPerf {
		perf.Stats().LogStats()
	}
}

// Evaluate runs the model for every point in order.
func Evaluate(points []forest.Controls) []telemetry.Evaluation {
	out := make([]telemetry.Evaluation, len(points))
	for i, c := range points {
		out[i] = telemetry.Evaluate(sweepLabel, c)
	}
	return out
}
