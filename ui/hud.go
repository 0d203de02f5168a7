package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/telemetry"
)

// HUDData holds the values shown in the corner HUD.
type HUDData struct {
	Title    string
	FPS      int32
	Frame    int64
	Cells    int
	Items    int
	Zoom     float64
	OffsetX  float64
	OffsetY  float64
	Selected int // -1 when idle
	Loading  int // textures in flight
}

// HUD renders the heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	th := h.renderer.Theme
	rl.DrawText(data.Title, 10, 10, 20, th.SectionHeader)

	rl.DrawText(
		fmt.Sprintf("Cells: %d | Items: %d | FPS: %d | Frame: %d", data.Cells, data.Items, data.FPS, data.Frame),
		10, 35, 16, th.LabelColor,
	)
	rl.DrawText(
		fmt.Sprintf("Zoom: %.1f | Offset: (%.1f, %.1f)", data.Zoom, data.OffsetX, data.OffsetY),
		10, 55, 16, th.LabelColor,
	)

	status := "Browsing"
	if data.Selected >= 0 {
		status = fmt.Sprintf("Viewing #%d", data.Selected)
	}
	if data.Loading > 0 {
		status += fmt.Sprintf(" | loading %d", data.Loading)
	}
	rl.DrawText(status, 10, 75, 16, th.SectionHeader)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase step timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	const width, lineH = 230, 14
	height := int32(44 + lineH*len(telemetry.Phases))
	p.renderer.DrawPanel(p.x, p.y, width, height)

	x := p.x + p.renderer.Theme.Padding
	y := p.y + p.renderer.Theme.Padding
	rl.DrawText("Step Performance", x, y, 14, p.renderer.Theme.SectionHeader)
	y += 18
	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s", stats.AvgStep.Round(time.Microsecond), stats.MaxStep.Round(time.Microsecond)), x, y, 12, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-11s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += lineH
	}
}
