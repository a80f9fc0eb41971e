package forest

import (
	_ "embed"
	"fmt"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// Palette holds the hex colours used to draw a forest type.
type Palette struct {
	Trunk      string `yaml:"trunk"`
	Canopy     string `yaml:"canopy"`
	Understory string `yaml:"understory"`
	Floor      string `yaml:"floor"`
}

// Characteristics are descriptive labels. They never feed the numeric model.
type Characteristics struct {
	TreeHeight   string `yaml:"tree_height"`
	Density      string `yaml:"density"`
	Understory   string `yaml:"understory"`
	Biodiversity string `yaml:"biodiversity"`
}

// Source is a reference for a preset's data.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Preset is an immutable forest-type configuration.
type Preset struct {
	ID                  string          `yaml:"id"`
	Name                string          `yaml:"name"`
	ShortName           string          `yaml:"short_name"`
	Description         string          `yaml:"description"`
	Location            string          `yaml:"location"`
	DetailedDescription string          `yaml:"detailed_description"`
	Defaults            Controls        `yaml:"defaults"`
	TreeTypes           []string        `yaml:"tree_types"`
	Colors              Palette         `yaml:"colors"`
	Characteristics     Characteristics `yaml:"characteristics"`
	Sources             []Source        `yaml:"sources"`
	ImageQueries        []string        `yaml:"image_queries"`
}

// Controls returns the preset's defaults as a fresh Controls value.
// Applying a preset replaces the active controls entirely; there is no merge.
func (p Preset) Controls() Controls {
	c := p.Defaults
	if c.SunAngle != nil {
		c.SunAngle = Degrees(*c.SunAngle)
	}
	return c
}

// clone returns a deep copy so callers cannot mutate the table.
func (p Preset) clone() Preset {
	p.Defaults = p.Controls()
	p.TreeTypes = slices.Clone(p.TreeTypes)
	p.Sources = slices.Clone(p.Sources)
	p.ImageQueries = slices.Clone(p.ImageQueries)
	return p
}

// Band is a layer's vertical extent in percent of the scene height.
type Band struct {
	Top    float64 `yaml:"top"`
	Height float64 `yaml:"height"`
}

// Bottom returns Top + Height.
func (b Band) Bottom() float64 {
	return b.Top + b.Height
}

// LayerInfo describes a stratum for display.
type LayerInfo struct {
	ID           LayerID `yaml:"id"`
	Name         string  `yaml:"name"`
	Position     string  `yaml:"position"`
	Conditions   string  `yaml:"conditions"`
	Species      Species `yaml:"species"`
	Role         string  `yaml:"role"`
	Light        string  `yaml:"light"`
	Biodiversity string  `yaml:"biodiversity"`
	Temperature  string  `yaml:"temperature"`
	Humidity     string  `yaml:"humidity"`
	Band         Band    `yaml:"band"`
}

// Species lists representative flora and fauna of a layer.
type Species struct {
	Trees []string `yaml:"trees"`
	Fauna []string `yaml:"fauna"`
}

// PresetTable is the parsed form of presets.yaml.
type PresetTable struct {
	Presets []Preset    `yaml:"presets"`
	Layers  []LayerInfo `yaml:"layers"`

	index map[string]int
}

// Preset identifiers, in table order.
const (
	TropicalWetEvergreen   = "tropical-wet-evergreen"
	TropicalSemiEvergreen  = "tropical-semi-evergreen"
	TropicalMoistDeciduous = "tropical-moist-deciduous"
	TropicalDryDeciduous   = "tropical-dry-deciduous"
	TropicalThorn          = "tropical-thorn"
	Montane                = "montane"
)

var requiredPresets = []string{
	TropicalWetEvergreen,
	TropicalSemiEvergreen,
	TropicalMoistDeciduous,
	TropicalDryDeciduous,
	TropicalThorn,
	Montane,
}

// ParsePresetTable parses and validates a preset table.
func ParsePresetTable(data []byte) (*PresetTable, error) {
	t := &PresetTable{}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parsing preset table: %w", err)
	}

	t.index = make(map[string]int, len(t.Presets))
	for i, p := range t.Presets {
		if p.ID == "" {
			return nil, fmt.Errorf("preset %d: missing id", i)
		}
		if _, dup := t.index[p.ID]; dup {
			return nil, fmt.Errorf("preset %q: duplicate id", p.ID)
		}
		if err := validatePreset(p); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.ID, err)
		}
		t.index[p.ID] = i
	}
	for _, id := range requiredPresets {
		if _, ok := t.index[id]; !ok {
			return nil, fmt.Errorf("preset %q: missing from table", id)
		}
	}

	if len(t.Layers) != NumLayers {
		return nil, fmt.Errorf("layer table: want %d layers, got %d", NumLayers, len(t.Layers))
	}
	for i, info := range t.Layers {
		if info.ID != Layers[i] {
			return nil, fmt.Errorf("layer %d: want %q, got %q", i, Layers[i], info.ID)
		}
	}

	return t, nil
}

func validatePreset(p Preset) error {
	c := p.Defaults
	if c.SunAngle == nil {
		return fmt.Errorf("defaults: sun_angle is required")
	}
	cl := c.Clamped()
	if cl.CanopyCover != c.CanopyCover ||
		cl.LAI != c.LAI ||
		cl.LightPenetration != c.LightPenetration ||
		cl.CanopyGaps != c.CanopyGaps ||
		*cl.SunAngle != *c.SunAngle {
		return fmt.Errorf("defaults out of range: %+v", c)
	}
	for name, hex := range map[string]string{
		"trunk":      p.Colors.Trunk,
		"canopy":     p.Colors.Canopy,
		"understory": p.Colors.Understory,
		"floor":      p.Colors.Floor,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("colors.%s: %w", name, err)
		}
	}
	return nil
}

// Lookup finds a preset by id.
func (t *PresetTable) Lookup(id string) (Preset, bool) {
	i, ok := t.index[id]
	if !ok {
		return Preset{}, false
	}
	return t.Presets[i].clone(), true
}

// table is the compiled-in preset table, parsed once at startup.
var table = mustParsePresetTable(presetsYAML)

func mustParsePresetTable(data []byte) *PresetTable {
	t, err := ParsePresetTable(data)
	if err != nil {
		panic(fmt.Sprintf("forest: embedded preset table: %v", err))
	}
	return t
}

// ResolvePreset returns the preset with the given id.
// The second result is false when no such preset exists.
func ResolvePreset(id string) (Preset, bool) {
	return table.Lookup(id)
}

// Presets returns a copy of every preset in table order.
func Presets() []Preset {
	out := make([]Preset, len(table.Presets))
	for i, p := range table.Presets {
		out[i] = p.clone()
	}
	return out
}

// DefaultPreset returns the first preset (tropical wet evergreen).
func DefaultPreset() Preset {
	return table.Presets[0].clone()
}

// LookupLayerInfo returns the descriptive record for a layer.
func LookupLayerInfo(id LayerID) (LayerInfo, bool) {
	i := id.Index()
	if i < 0 {
		return LayerInfo{}, false
	}
	return cloneLayerInfo(table.Layers[i]), true
}

// LayerInfos returns every layer record, top to bottom.
func LayerInfos() []LayerInfo {
	out := make([]LayerInfo, len(table.Layers))
	for i, info := range table.Layers {
		out[i] = cloneLayerInfo(info)
	}
	return out
}

func cloneLayerInfo(info LayerInfo) LayerInfo {
	info.Species.Trees = slices.Clone(info.Species.Trees)
	info.Species.Fauna = slices.Clone(info.Species.Fauna)
	return info
}
