package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/canopy/forest"
	"github.com/pthm-cable/canopy/palette"
)

// ReadoutData is what the readout panel displays.
type ReadoutData struct {
	Readout forest.Readout
	Preset  forest.Preset
}

func readoutOf(data any) ReadoutData {
	d, _ := data.(ReadoutData)
	return d
}

// ReadoutDescriptor lays out the live model readout.
func ReadoutDescriptor() PanelDescriptor {
	light := SectionDescriptor{ID: "light", Title: "Light by layer"}
	for i, id := range forest.Layers {
		label := string(id)
		if info, ok := forest.LookupLayerInfo(id); ok {
			label = info.Name
		}
		light.Fields = append(light.Fields, FieldDescriptor{
			ID:     "light_" + string(id),
			Label:  label,
			Widget: WidgetLevelBar,
			Format: "%.1f%%",
			Range:  PercentRange(),
			Getter: func(d any) float32 { return float32(readoutOf(d).Readout.LayerLight[i]) },
		})
	}

	return PanelDescriptor{
		ID:    "readout",
		Title: "Forest readout",
		Sections: []SectionDescriptor{
			{
				ID:    "preset",
				Title: "Forest type",
				Fields: []FieldDescriptor{
					{ID: "preset_name", Label: "Type", Widget: WidgetText,
						TextGetter: func(d any) string { return readoutOf(d).Preset.Name }},
					{ID: "preset_location", Label: "Location", Widget: WidgetText,
						TextGetter: func(d any) string { return readoutOf(d).Preset.Location },
						Visible:    func(d any) bool { return readoutOf(d).Preset.Location != "" }},
				},
			},
			{
				ID:    "penetration",
				Title: "Penetration",
				Fields: []FieldDescriptor{
					{ID: "auto_penetration", Label: "Auto (Beer-Lambert)", Widget: WidgetBar,
						Format: "%.1f%%", Range: PercentRange(),
						Color:  rl.Color{R: 150, G: 190, B: 230, A: 255},
						Getter: func(d any) float32 { return float32(readoutOf(d).Readout.AutoPenetration) }},
					{ID: "effective_penetration", Label: "Effective", Widget: WidgetBar,
						Format: "%.1f%%", Range: PercentRange(),
						Getter: func(d any) float32 { return float32(readoutOf(d).Readout.Penetration) }},
				},
			},
			light,
			{
				ID:    "structure",
				Title: "Structure",
				Fields: []FieldDescriptor{
					{ID: "wind_resistance", Label: "Wind resistance", Widget: WidgetText, Format: "%.2fx",
						Getter: func(d any) float32 { return float32(readoutOf(d).Readout.WindResistance) }},
					{ID: "tree_density", Label: "Tree density", Widget: WidgetText,
						TextGetter: func(d any) string { return fmt.Sprintf("%d%%", readoutOf(d).Readout.TreeDensity) }},
					{ID: "biodiversity", Label: "Biodiversity", Widget: WidgetBar,
						Format: "%.0f%%", Range: FieldRange{Min: 20, Max: 100},
						Color:  rl.Color{R: 110, G: 200, B: 120, A: 255},
						Getter: func(d any) float32 {
							return float32(math.Round(readoutOf(d).Readout.BiodiversityIndex))
						}},
				},
			},
			{
				ID:    "sun",
				Title: "Sun",
				Fields: []FieldDescriptor{
					{ID: "sun_angle", Label: "Angle", Widget: WidgetText, Format: "%.0f deg",
						Getter: func(d any) float32 { return float32(readoutOf(d).Readout.Controls.SunAngleDegrees()) }},
					{ID: "time_of_day", Label: "Time of day", Widget: WidgetText,
						TextGetter: func(d any) string { return readoutOf(d).Readout.TimeOfDay }},
				},
			},
			{
				ID:    "palette",
				Title: "Palette",
				Fields: []FieldDescriptor{
					swatchField("trunk", "Trunk", func(p forest.Palette) string { return p.Trunk }),
					swatchField("canopy", "Canopy", func(p forest.Palette) string { return p.Canopy }),
					swatchField("understory", "Understory", func(p forest.Palette) string { return p.Understory }),
					swatchField("floor", "Floor", func(p forest.Palette) string { return p.Floor }),
				},
			},
		},
	}
}

func swatchField(id, label string, hex func(forest.Palette) string) FieldDescriptor {
	return FieldDescriptor{
		ID:          "swatch_" + id,
		Label:       label,
		Widget:      WidgetColorSwatch,
		ColorGetter: func(d any) rl.Color { return palette.Shade(hex(readoutOf(d).Preset.Colors), 100) },
		TextGetter:  func(d any) string { return hex(readoutOf(d).Preset.Colors) },
	}
}

// ReadoutPanel renders the live model readout.
type ReadoutPanel struct {
	renderer   *Renderer
	descriptor PanelDescriptor
	x, y       int32
	width      int32
}

// NewReadoutPanel creates a readout panel.
func NewReadoutPanel(x, y, width int32) *ReadoutPanel {
	return &ReadoutPanel{
		renderer:   NewRenderer(),
		descriptor: ReadoutDescriptor(),
		x:          x,
		y:          y,
		width:      width,
	}
}

// SetPosition updates the panel position.
func (p *ReadoutPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Height returns the panel height for data.
func (p *ReadoutPanel) Height(data ReadoutData) int32 {
	return p.renderer.PanelHeight(p.descriptor, data)
}

// Draw renders the panel and returns its bottom edge.
func (p *ReadoutPanel) Draw(data ReadoutData) int32 {
	return p.renderer.DrawPanelDescriptor(p.x, p.y, p.width, p.descriptor, data)
}
