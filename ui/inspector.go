package ui

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/canopy/forest"
)

// InspectorData holds all the data needed to render the layer inspector.
type InspectorData struct {
	Info       forest.LayerInfo
	Light      float64 // live light level for the layer, percent
	Opacity    float64
	Brightness float64
}

// NewInspectorData collects the inspector data for a layer. The second
// result is false for an unknown layer.
func NewInspectorData(id forest.LayerID, r forest.Readout, v forest.VisualState) (InspectorData, bool) {
	info, ok := forest.LookupLayerInfo(id)
	if !ok {
		return InspectorData{}, false
	}
	return InspectorData{
		Info:       info,
		Light:      r.LayerLight.Get(id),
		Opacity:    v.Opacity.Get(id),
		Brightness: v.Brightness.Get(id),
	}, true
}

// Inspector renders the description of the hovered or selected layer.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// wrapChars estimates how many characters fit on a line.
func (ins *Inspector) wrapChars() int {
	charW := ins.renderer.Theme.FontSize * 6 / 10
	if charW < 1 {
		charW = 1
	}
	return int((ins.width - ins.renderer.Theme.Padding*2) / charW)
}

// Lines returns the wrapped text blocks in display order, keyed by heading.
func (ins *Inspector) Lines(data InspectorData) []InspectorBlock {
	info := data.Info
	blocks := []InspectorBlock{
		{"Position", info.Position},
		{"Conditions", info.Conditions},
		{"Role", info.Role},
	}
	if len(info.Species.Trees) > 0 {
		blocks = append(blocks, InspectorBlock{"Trees", strings.Join(info.Species.Trees, ", ")})
	}
	if len(info.Species.Fauna) > 0 {
		blocks = append(blocks, InspectorBlock{"Fauna", strings.Join(info.Species.Fauna, ", ")})
	}
	return blocks
}

// InspectorBlock is a heading followed by wrapped text.
type InspectorBlock struct {
	Heading string
	Text    string
}

// Height computes the panel height for data.
func (ins *Inspector) Height(data InspectorData) int32 {
	t := ins.renderer.Theme
	h := t.Padding*2 + t.TitleFontSize + 6
	h += 5*t.LineHeight + 2 // light bar, opacity, brightness, nominal light, climate
	for _, b := range ins.Lines(data) {
		h += t.LineHeight + 2
		h += int32(len(WrapText(b.Text, ins.wrapChars()))) * t.LineHeight
	}
	return h + t.Padding
}

// Draw renders the inspector panel and returns its bottom edge.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	height := ins.Height(data)
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	x := ins.x + padding
	y := r.DrawTitle(x, ins.y+padding, data.Info.Name)
	contentWidth := ins.width - padding*2

	y = r.DrawBar(x, y, "Light now", float32(data.Light), PercentRange(), "%.1f%%",
		r.Theme.LevelColor(PercentRange().Normalize(float32(data.Light))), contentWidth)
	y = r.DrawLabelValue(x, y, "Opacity", fmt.Sprintf("%.2f", data.Opacity))
	y = r.DrawLabelValue(x, y, "Brightness", fmt.Sprintf("%.0f%%", data.Brightness))
	y = r.DrawLabelValue(x, y, "Typical light", data.Info.Light)
	y = r.DrawLabelValue(x, y, "Climate", fmt.Sprintf("%s, %s humidity", data.Info.Temperature, strings.ToLower(data.Info.Humidity)))

	for _, b := range ins.Lines(data) {
		y = r.DrawSectionHeader(x, y, b.Heading)
		y = r.DrawWrapped(x, y, b.Text, ins.wrapChars(), r.Theme.LabelColor)
	}

	return ins.y + height
}
