package ui

import (
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/canopy/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	PresetName   string
	TimeOfDay    string
	AnimTime     float64
	FPS          int32
	Paused       bool
	Trees        int
	Rays         int
	Leaves       int
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("%s | %s", data.PresetName, data.TimeOfDay),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Trees: %d | Rays: %d | Leaves: %d | t=%.1fs | FPS: %d",
			data.Trees, data.Rays, data.Leaves, data.AnimTime, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// ControlsLegend joins the fixed key bindings with the overlay legend.
func ControlsLegend(overlays *OverlayRegistry) string {
	parts := []string{"[1-6] Forest type", "[Tab] Controls", "[R] Reset", "[Space] Pause", "[S] Snapshot", "[Wheel] Zoom", "[C] Fit view"}
	if overlays != nil {
		parts = append(parts, overlays.Legend()...)
	}
	return strings.Join(parts, "  ")
}

// PerfPanel renders frame timing by phase.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// PerfRow is one formatted phase line.
type PerfRow struct {
	Text string
	Pct  float64
}

// PerfRows returns the phase rows to display, in the order phases are listed.
func PerfRows(stats telemetry.PerfStats, phases []string) []PerfRow {
	rows := make([]PerfRow, 0, len(phases))
	for _, name := range phases {
		avg, ok := stats.PhaseAvg[name]
		if !ok {
			continue
		}
		pct := stats.PhasePct[name]
		rows = append(rows, PerfRow{
			Text: fmt.Sprintf("%-10s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			Pct:  pct,
		})
	}
	return rows
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, phases []string) {
	r := p.renderer
	rows := PerfRows(stats, phases)
	lineHeight := int32(14)
	height := r.Theme.Padding*2 + 40 + int32(len(rows))*lineHeight
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Frame: %s  (%.0f fps)", stats.AvgFrame.Round(time.Microsecond), stats.FramesPerSecond), x, y, 14, rl.Yellow)
	y += 20

	for _, row := range rows {
		color := rl.LightGray
		if row.Pct > 50 {
			color = rl.Red
		} else if row.Pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(row.Text, x, y, 12, color)
		y += lineHeight
	}
}
