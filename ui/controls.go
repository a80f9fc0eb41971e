package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/canopy/forest"
)

// SliderSpec describes one forest control slider.
type SliderSpec struct {
	ID     string
	Label  string
	Min    float64
	Max    float64
	Step   float64
	Format string
	Get    func(forest.Controls) float64
	Set    func(forest.Controls, float64) forest.Controls
}

// Snap rounds v to the slider step and clamps it to the slider range.
func (s SliderSpec) Snap(v float64) float64 {
	if math.IsNaN(v) {
		return s.Min
	}
	if s.Step > 0 {
		// Divide by the inverse so tenths land on the same float as their literal.
		inv := math.Round(1 / s.Step)
		if inv >= 1 {
			v = math.Round(v*inv) / inv
		} else {
			v = math.Round(v/s.Step) * s.Step
		}
	}
	return math.Max(s.Min, math.Min(s.Max, v))
}

// ControlSliders lists the sliders in panel order. LAI moves in tenths,
// everything else in whole units.
var ControlSliders = []SliderSpec{
	{
		ID: "canopy_cover", Label: "Canopy cover", Min: 0, Max: forest.MaxCanopyCover, Step: 1, Format: "%.0f%%",
		Get: func(c forest.Controls) float64 { return c.CanopyCover },
		Set: func(c forest.Controls, v float64) forest.Controls { c.CanopyCover = v; return c },
	},
	{
		ID: "lai", Label: "Leaf area index", Min: 0, Max: forest.MaxLAI, Step: 0.1, Format: "%.1f",
		Get: func(c forest.Controls) float64 { return c.LAI },
		Set: func(c forest.Controls, v float64) forest.Controls { c.LAI = v; return c },
	},
	{
		ID: "light_penetration", Label: "Solar intensity", Min: 0, Max: forest.MaxLightPenetration, Step: 1, Format: "%.0f%%",
		Get: func(c forest.Controls) float64 { return c.LightPenetration },
		Set: func(c forest.Controls, v float64) forest.Controls { c.LightPenetration = v; return c },
	},
	{
		ID: "sun_angle", Label: "Sun angle", Min: 0, Max: forest.MaxSunAngle, Step: 1, Format: "%.0f deg",
		Get: func(c forest.Controls) float64 { return c.SunAngleDegrees() },
		Set: func(c forest.Controls, v float64) forest.Controls { return c.WithSunAngle(v) },
	},
	{
		ID: "canopy_gaps", Label: "Canopy gaps", Min: 0, Max: forest.MaxCanopyGaps, Step: 1, Format: "%.0f",
		Get: func(c forest.Controls) float64 { return float64(c.CanopyGaps) },
		Set: func(c forest.Controls, v float64) forest.Controls { c.CanopyGaps = int(math.Round(v)); return c },
	},
}

// ApplySlider snaps v and writes it into c. The second result reports
// whether the control actually changed.
func ApplySlider(s SliderSpec, c forest.Controls, v float64) (forest.Controls, bool) {
	v = s.Snap(v)
	if math.Abs(v-s.Snap(s.Get(c))) < 1e-9 {
		return c, false
	}
	return s.Set(c, v), true
}

// ControlsResult is what a frame of user interaction produced.
type ControlsResult struct {
	Controls forest.Controls
	Changed  bool
	Preset   string // id of a clicked preset button, empty if none
}

// ControlsPanel renders the sliders and the preset picker.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

const (
	sliderHeight  = 18
	presetButtonH = 24
)

// Height returns the panel height for the given number of presets.
func (c *ControlsPanel) Height(presets int) int32 {
	t := c.renderer.Theme
	rows := int32((presets + 1) / 2)
	return t.Padding*2 + t.TitleFontSize + 6 +
		int32(len(ControlSliders))*(t.LineHeight+sliderHeight+8) +
		t.LineHeight + 2 + rows*(presetButtonH+6)
}

// Draw renders the panel and reports any changes the user made.
// When hidden it returns controls unchanged.
func (c *ControlsPanel) Draw(controls forest.Controls, presets []forest.Preset, activePreset string) ControlsResult {
	res := ControlsResult{Controls: controls}
	if !c.visible {
		return res
	}

	r := c.renderer
	padding := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, c.Height(len(presets)))

	x := c.x + padding
	y := r.DrawTitle(x, c.y+padding, "Forest controls")
	inner := float32(c.width - padding*2)

	for _, s := range ControlSliders {
		cur := s.Get(res.Controls)
		r.DrawLabel(x, y, s.Label)
		value := fmt.Sprintf(s.Format, cur)
		vw := rl.MeasureText(value, r.Theme.FontSize)
		rl.DrawText(value, x+int32(inner)-vw, y, r.Theme.FontSize, r.Theme.ValueColor)
		y += r.Theme.LineHeight

		rect := rl.Rectangle{X: float32(x) + 24, Y: float32(y), Width: inner - 56, Height: sliderHeight}
		v := gui.SliderBar(rect,
			fmt.Sprintf("%g", s.Min), fmt.Sprintf("%g", s.Max),
			float32(cur), float32(s.Min), float32(s.Max),
		)
		if next, changed := ApplySlider(s, res.Controls, float64(v)); changed {
			res.Controls = next
			res.Changed = true
		}
		y += sliderHeight + 8
	}

	y = r.DrawSectionHeader(x, y, "Forest type")
	bw := (inner - 6) / 2
	for i, p := range presets {
		col := float32(i % 2)
		row := float32(i / 2)
		rect := rl.Rectangle{
			X:      float32(x) + col*(bw+6),
			Y:      float32(y) + row*(presetButtonH+6),
			Width:  bw,
			Height: presetButtonH,
		}
		label := fmt.Sprintf("%d %s", i+1, p.ShortName)
		if p.ID == activePreset {
			label = "> " + label
		}
		if gui.Button(rect, label) {
			res.Preset = p.ID
		}
	}

	return res
}
