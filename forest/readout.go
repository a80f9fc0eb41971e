package forest

import (
	"fmt"
	"math"
)

// TimeOfDay labels a sun angle the way the controls panel does.
func TimeOfDay(angle float64) string {
	switch {
	case angle < 30:
		return "Dawn"
	case angle < 60:
		return "Morning"
	case angle < 120:
		return "Midday"
	case angle < 150:
		return "Afternoon"
	default:
		return "Dusk"
	}
}

// Readout is the live numeric panel for one set of controls.
// Numeric fields carry full precision; Format renders the display strings.
type Readout struct {
	Controls          Controls
	AutoPenetration   float64
	Penetration       float64
	LayerLight        LayerValues
	WindResistance    float64
	TreeDensity       int
	BiodiversityIndex float64
	TimeOfDay         string
}

// NewReadout evaluates the model for the readout panel.
func NewReadout(c Controls) Readout {
	c = c.Clamped()
	return Readout{
		Controls:          c,
		AutoPenetration:   AutoPenetration(c),
		Penetration:       LightPenetration(c),
		LayerLight:        LayerLights(c),
		WindResistance:    WindResistance(c),
		TreeDensity:       TreeDensity(c),
		BiodiversityIndex: BiodiversityIndex(c),
		TimeOfDay:         TimeOfDay(c.SunAngleDegrees()),
	}
}

// ReadoutLine is a single label/value row.
type ReadoutLine struct {
	Label string
	Value string
}

// Lines returns the rows shown in the readout panel, in display order.
func (r Readout) Lines() []ReadoutLine {
	lines := make([]ReadoutLine, 0, NumLayers+6)
	lines = append(lines,
		ReadoutLine{"Auto penetration", fmt.Sprintf("%.1f%%", r.AutoPenetration)},
		ReadoutLine{"Effective penetration", fmt.Sprintf("%.1f%%", r.Penetration)},
	)
	for i, id := range Layers {
		lines = append(lines, ReadoutLine{layerLabel(id), fmt.Sprintf("%.1f%%", r.LayerLight[i])})
	}
	lines = append(lines,
		ReadoutLine{"Wind resistance", fmt.Sprintf("%.2fx", r.WindResistance)},
		ReadoutLine{"Tree density", fmt.Sprintf("%d%%", r.TreeDensity)},
		ReadoutLine{"Biodiversity", fmt.Sprintf("%d%%", int(math.Round(r.BiodiversityIndex)))},
		ReadoutLine{"Time", r.TimeOfDay},
	)
	return lines
}

func layerLabel(id LayerID) string {
	switch id {
	case Emergent:
		return "Emergent"
	case Canopy:
		return "Canopy"
	case Understory:
		return "Understory"
	case ForestFloor:
		return "Forest floor"
	}
	return string(id)
}
