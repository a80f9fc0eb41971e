package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/canopy/forest"
)

// Evaluation is one flattened model evaluation: the controls that went in
// and every derived quantity that came out.
type Evaluation struct {
	Preset string `csv:"preset"`

	CanopyCover      float64 `csv:"canopy_cover"`
	LAI              float64 `csv:"lai"`
	LightPenetration float64 `csv:"light_penetration"`
	SunAngle         float64 `csv:"sun_angle"`
	CanopyGaps       int     `csv:"canopy_gaps"`

	AutoPenetration      float64 `csv:"auto_penetration"`
	EffectivePenetration float64 `csv:"effective_penetration"`

	EmergentLight   float64 `csv:"emergent_light"`
	CanopyLight     float64 `csv:"canopy_light"`
	UnderstoryLight float64 `csv:"understory_light"`
	FloorLight      float64 `csv:"floor_light"`

	CanopyOpacity     float64 `csv:"canopy_opacity"`
	UnderstoryOpacity float64 `csv:"understory_opacity"`
	FloorBrightness   float64 `csv:"floor_brightness"`

	WindResistance    float64 `csv:"wind_resistance"`
	TreeDensity       int     `csv:"tree_density"`
	BiodiversityIndex float64 `csv:"biodiversity"`
	TimeOfDay         string  `csv:"time_of_day"`
}

// Evaluate runs the full model for c. The preset id is recorded as given.
func Evaluate(preset string, c forest.Controls) Evaluation {
	r := forest.NewReadout(c)
	vs := forest.ComputeVisualState(r.Controls)
	return Evaluation{
		Preset:               preset,
		CanopyCover:          r.Controls.CanopyCover,
		LAI:                  r.Controls.LAI,
		LightPenetration:     r.Controls.LightPenetration,
		SunAngle:             r.Controls.SunAngleDegrees(),
		CanopyGaps:           r.Controls.CanopyGaps,
		AutoPenetration:      r.AutoPenetration,
		EffectivePenetration: r.Penetration,
		EmergentLight:        r.LayerLight.Get(forest.Emergent),
		CanopyLight:          r.LayerLight.Get(forest.Canopy),
		UnderstoryLight:      r.LayerLight.Get(forest.Understory),
		FloorLight:           r.LayerLight.Get(forest.ForestFloor),
		CanopyOpacity:        vs.Opacity.Get(forest.Canopy),
		UnderstoryOpacity:    vs.Opacity.Get(forest.Understory),
		FloorBrightness:      vs.Brightness.Get(forest.ForestFloor),
		WindResistance:       r.WindResistance,
		TreeDensity:          r.TreeDensity,
		BiodiversityIndex:    r.BiodiversityIndex,
		TimeOfDay:            r.TimeOfDay,
	}
}

// LayerLights returns the per-layer light levels in layer order.
func (e Evaluation) LayerLights() forest.LayerValues {
	return forest.LayerValues{e.EmergentLight, e.CanopyLight, e.UnderstoryLight, e.FloorLight}
}

// LogValue implements slog.LogValuer for structured logging.
func (e Evaluation) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("preset", e.Preset),
		slog.Float64("canopy_cover", e.CanopyCover),
		slog.Float64("lai", e.LAI),
		slog.Float64("light_penetration", e.LightPenetration),
		slog.Float64("sun_angle", e.SunAngle),
		slog.Int("canopy_gaps", e.CanopyGaps),
		slog.Float64("auto_penetration", e.AutoPenetration),
		slog.Float64("effective_penetration", e.EffectivePenetration),
		slog.Float64("emergent_light", e.EmergentLight),
		slog.Float64("canopy_light", e.CanopyLight),
		slog.Float64("understory_light", e.UnderstoryLight),
		slog.Float64("floor_light", e.FloorLight),
		slog.Float64("wind_resistance", e.WindResistance),
		slog.Int("tree_density", e.TreeDensity),
		slog.Float64("biodiversity", e.BiodiversityIndex),
		slog.String("time_of_day", e.TimeOfDay),
	)
}
