package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary holds distribution statistics for one numeric column.
type ColumnSummary struct {
	Column string  `csv:"column"`
	Count  int     `csv:"count"`
	Mean   float64 `csv:"mean"`
	Std    float64 `csv:"std"`
	Min    float64 `csv:"min"`
	P10    float64 `csv:"p10"`
	P50    float64 `csv:"p50"`
	P90    float64 `csv:"p90"`
	Max    float64 `csv:"max"`
}

// Summarize computes mean, sample standard deviation, extremes and
// empirical percentiles of values. An empty input yields a zero summary.
func Summarize(column string, values []float64) ColumnSummary {
	s := ColumnSummary{Column: column, Count: len(values)}
	if len(values) == 0 {
		return s
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		s.Std = 0
	}
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return s
}

// summaryColumns lists the Evaluation outputs that get summarized.
var summaryColumns = []struct {
	name string
	get  func(Evaluation) float64
}{
	{"auto_penetration", func(e Evaluation) float64 { return e.AutoPenetration }},
	{"effective_penetration", func(e Evaluation) float64 { return e.EffectivePenetration }},
	{"emergent_light", func(e Evaluation) float64 { return e.EmergentLight }},
	{"canopy_light", func(e Evaluation) float64 { return e.CanopyLight }},
	{"understory_light", func(e Evaluation) float64 { return e.UnderstoryLight }},
	{"floor_light", func(e Evaluation) float64 { return e.FloorLight }},
	{"canopy_opacity", func(e Evaluation) float64 { return e.CanopyOpacity }},
	{"wind_resistance", func(e Evaluation) float64 { return e.WindResistance }},
	{"tree_density", func(e Evaluation) float64 { return float64(e.TreeDensity) }},
	{"biodiversity", func(e Evaluation) float64 { return e.BiodiversityIndex }},
}

// SummarizeEvaluations summarizes every derived output column of evals.
func SummarizeEvaluations(evals []Evaluation) []ColumnSummary {
	out := make([]ColumnSummary, 0, len(summaryColumns))
	values := make([]float64, len(evals))
	for _, col := range summaryColumns {
		for i, e := range evals {
			values[i] = col.get(e)
		}
		out = append(out, Summarize(col.name, values))
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s ColumnSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("column", s.Column),
		slog.Int("count", s.Count),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("min", s.Min),
		slog.Float64("p50", s.P50),
		slog.Float64("max", s.Max),
	)
}

// CalibrationStep is one objective evaluation during an inverse-model search.
type CalibrationStep struct {
	Eval             int     `csv:"eval"`
	Loss             float64 `csv:"loss"`
	BestLoss         float64 `csv:"best_loss"`
	CanopyCover      float64 `csv:"canopy_cover"`
	LAI              float64 `csv:"lai"`
	LightPenetration float64 `csv:"light_penetration"`
	SunAngle         float64 `csv:"sun_angle"`
	CanopyGaps       int     `csv:"canopy_gaps"`
}
