// Package ui provides a descriptor-driven UI system for the forest viewer.
// Panels are described by metadata over the model's readout so the layout
// can change alongside the model without touching draw code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Horizontal bar over Range
	WidgetLevelBar                      // Bar coloured by low/medium/high thresholds
	WidgetColorSwatch                   // Color preview square
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// PercentRange returns a [0, 100] range.
func PercentRange() FieldRange {
	return FieldRange{Min: 0, Max: 100}
}

// Normalize maps v into [0, 1] over the range. A degenerate range yields 0.
func (fr FieldRange) Normalize(v float32) float32 {
	span := fr.Max - fr.Min
	if span <= 0 {
		return 0
	}
	n := (v - fr.Min) / span
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID          string             // Unique identifier for the field
	Label       string             // Display label
	Widget      WidgetType         // How to render
	Format      string             // Printf format for text and bar values (e.g., "%.1f%%")
	Range       FieldRange         // Value range for bars
	Color       rl.Color           // Optional color override
	Visible     func(any) bool     // Optional visibility check (nil = always visible)
	Getter      func(any) float32  // Value extractor (for numeric fields)
	TextGetter  func(any) string   // Value extractor (for text fields)
	ColorGetter func(any) rl.Color // Color extractor (for color swatches)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string            // Unique identifier
	Title   string            // Section header text
	Fields  []FieldDescriptor // Fields in this section
	Visible func(any) bool    // Optional visibility check for entire section
}

// PanelDescriptor defines a complete panel layout.
type PanelDescriptor struct {
	ID       string              // Unique identifier
	Title    string              // Panel title (optional)
	Sections []SectionDescriptor // Sections in order
	Width    int32               // Panel width (0 = caller decides)
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	Title          rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	MutedColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	TitleFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 16, G: 26, B: 20, A: 235},
		PanelBorder:    rl.Color{R: 52, G: 84, B: 60, A: 255},
		Title:          rl.RayWhite,
		SectionHeader:  rl.Color{R: 235, G: 200, B: 90, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		MutedColor:     rl.Color{R: 140, G: 150, B: 140, A: 255},
		BarBg:          rl.Color{R: 36, G: 44, B: 38, A: 255},
		BarFill:        rl.Color{R: 250, G: 210, B: 90, A: 255},
		BarFillLow:     rl.Color{R: 120, G: 110, B: 170, A: 255},
		BarFillMedium:  rl.Color{R: 120, G: 180, B: 110, A: 255},
		BarFillHigh:    rl.Color{R: 250, G: 210, B: 90, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     150,
		BarHeight:      12,
		FontSize:       14,
		HeaderFontSize: 16,
		TitleFontSize:  20,
	}
}

// LevelColor picks the low/medium/high fill for a normalized value.
func (t Theme) LevelColor(n float32) rl.Color {
	switch {
	case n < 0.2:
		return t.BarFillLow
	case n < 0.5:
		return t.BarFillMedium
	default:
		return t.BarFillHigh
	}
}
