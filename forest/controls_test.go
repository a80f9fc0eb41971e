package forest

import (
	"fmt"
	"math"
	"testing"
)

func TestClamped(t *testing.T) {
	tests := []struct {
		name string
		in   Controls
		want Controls
	}{
		{
			"in range untouched",
			Controls{CanopyCover: 50, LAI: 5, LightPenetration: 50, CanopyGaps: 10},
			Controls{CanopyCover: 50, LAI: 5, LightPenetration: 50, CanopyGaps: 10},
		},
		{
			"negatives floor",
			Controls{CanopyCover: -1, LAI: -5, LightPenetration: -10, CanopyGaps: -3},
			Controls{},
		},
		{
			"overflow ceiling",
			Controls{CanopyCover: 101, LAI: 11, LightPenetration: 1e9, CanopyGaps: 999},
			Controls{CanopyCover: 100, LAI: 10, LightPenetration: 100, CanopyGaps: 20},
		},
		{
			"nan to lower bound",
			Controls{CanopyCover: math.NaN(), LAI: math.NaN(), LightPenetration: math.NaN()},
			Controls{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Clamped()
			if got.CanopyCover != tt.want.CanopyCover || got.LAI != tt.want.LAI ||
				got.LightPenetration != tt.want.LightPenetration || got.CanopyGaps != tt.want.CanopyGaps {
				t.Errorf("Clamped() = %+v, want %+v", got, tt.want)
			}
			if got.SunAngle != nil {
				t.Errorf("unset sun angle became %v", *got.SunAngle)
			}
		})
	}
}

func TestSunAngleDegrees(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want float64
	}{
		{"unset", nil, 45},
		{"horizon", Degrees(0), 0},
		{"overhead", Degrees(90), 90},
		{"below range", Degrees(-30), 0},
		{"above range", Degrees(270), 180},
		{"nan", Degrees(math.NaN()), 0},
	}
	for _, tt := range tests {
		c := Controls{SunAngle: tt.in}
		if got := c.SunAngleDegrees(); got != tt.want {
			t.Errorf("%s: SunAngleDegrees() = %v, want %v", tt.name, got, tt.want)
		}
		if got := c.Clamped().SunAngleDegrees(); got != tt.want {
			t.Errorf("%s: Clamped().SunAngleDegrees() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClampedDoesNotAlias(t *testing.T) {
	c := Controls{SunAngle: Degrees(60)}
	cl := c.Clamped()
	*cl.SunAngle = 10
	if *c.SunAngle != 60 {
		t.Errorf("Clamped aliased the sun angle: %v", *c.SunAngle)
	}
}

func TestTimeOfDay(t *testing.T) {
	tests := []struct {
		angle float64
		want  string
	}{
		{0, "Dawn"},
		{29, "Dawn"},
		{30, "Morning"},
		{59, "Morning"},
		{60, "Midday"},
		{119, "Midday"},
		{120, "Afternoon"},
		{149, "Afternoon"},
		{150, "Dusk"},
		{180, "Dusk"},
	}
	for _, tt := range tests {
		if got := TimeOfDay(tt.angle); got != tt.want {
			t.Errorf("TimeOfDay(%v) = %q, want %q", tt.angle, got, tt.want)
		}
	}
}

func TestReadoutLines(t *testing.T) {
	p, _ := ResolvePreset(TropicalWetEvergreen)
	r := NewReadout(p.Controls())

	lines := r.Lines()
	if len(lines) != 10 {
		t.Fatalf("expected 10 readout lines, got %d", len(lines))
	}
	byLabel := make(map[string]string, len(lines))
	for _, l := range lines {
		byLabel[l.Label] = l.Value
	}
	if want := fmt.Sprintf("%.2fx", WindResistance(p.Controls())); byLabel["Wind resistance"] != want {
		t.Errorf("wind resistance = %q, want %q", byLabel["Wind resistance"], want)
	}
	if byLabel["Tree density"] != "113%" {
		t.Errorf("tree density = %q, want 113%%", byLabel["Tree density"])
	}
	if byLabel["Biodiversity"] != "54%" {
		t.Errorf("biodiversity = %q, want 54%%", byLabel["Biodiversity"])
	}
	if byLabel["Time"] != "Midday" {
		t.Errorf("time = %q, want Midday", byLabel["Time"])
	}
	if r.Penetration != LightPenetration(p.Controls()) {
		t.Errorf("readout penetration %v disagrees with model", r.Penetration)
	}
}
