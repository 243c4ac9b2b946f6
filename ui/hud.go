package ui

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/microbiome/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Players   int
	Cells     int
	Food      int
	Tick      int32
	SimTime   float64
	Speed     int
	FPS       int32
	Paused    bool
	Autopilot bool
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
		fmt.Sprintf("Players: %d | Cells: %d | Food: %d", data.Players, data.Cells, data.Food),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Time: %.1fs | Speed: %dx | FPS: %d", data.Tick, data.SimTime, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	if data.Autopilot {
		status += " | Autopilot"
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PlayerInfo is the human player's readout.
type PlayerInfo struct {
	Name  string
	Color rl.Color
	Alive bool
	Mass  float64
	Cells int
	Score float64
	Rank  int
	Share float32 // fraction of all cell mass
}

var playerSections = []SectionDescriptor{
	{
		Title: "You",
		Fields: []FieldDescriptor{
			{Label: "Name", Widget: WidgetText, TextGetter: func(d any) string { return d.(PlayerInfo).Name }},
			{Label: "Colour", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color { return d.(PlayerInfo).Color }},
			{
				Label: "Status", Widget: WidgetText,
				Visible:    func(d any) bool { return !d.(PlayerInfo).Alive },
				TextGetter: func(any) string { return "eaten - [R] respawn" },
			},
		},
	},
	{
		Title:   "Size",
		Visible: func(d any) bool { return d.(PlayerInfo).Alive },
		Fields: []FieldDescriptor{
			{Label: "Mass", Widget: WidgetText, Format: "%.5f", Getter: func(d any) float32 { return float32(d.(PlayerInfo).Mass) }},
			{Label: "Cells", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(d.(PlayerInfo).Cells) }},
			{Label: "Eaten", Widget: WidgetText, Format: "%.5f", Getter: func(d any) float32 { return float32(d.(PlayerInfo).Score) }},
			{Label: "Rank", Widget: WidgetText, TextGetter: func(d any) string { return fmt.Sprintf("#%d", d.(PlayerInfo).Rank) }},
			{Label: "Share", Widget: WidgetBar, Getter: func(d any) float32 { return d.(PlayerInfo).Share }},
		},
	},
}

// PlayerPanel renders the human player's stats.
type PlayerPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPlayerPanel creates a player panel.
func NewPlayerPanel(x, y, width int32) *PlayerPanel {
	return &PlayerPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PlayerPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel.
func (p *PlayerPanel) Draw(info PlayerInfo) {
	r := p.renderer
	pad := r.Theme.Padding

	height := 2 * pad
	for _, sd := range playerSections {
		height += r.SectionHeight(sd, info)
	}
	r.DrawPanel(p.x, p.y, p.width, height)

	y := p.y + pad
	for _, sd := range playerSections {
		y = r.DrawSection(p.x+pad, y, sd, info, p.width-2*pad)
	}
}

// LeaderboardEntry is one ranked player.
type LeaderboardEntry struct {
	Name   string
	Color  rl.Color
	Mass   float64
	Cells  int
	IsUser bool
}

// LeaderboardPanel renders the top players.
type LeaderboardPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewLeaderboardPanel creates a leaderboard panel.
func NewLeaderboardPanel(x, y, width int32) *LeaderboardPanel {
	return &LeaderboardPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (l *LeaderboardPanel) SetPosition(x, y int32) {
	l.x = x
	l.y = y
}

// Draw renders the ranked entries.
func (l *LeaderboardPanel) Draw(entries []LeaderboardEntry) {
	r := l.renderer
	pad := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	r.DrawPanel(l.x, l.y, l.width, 2*pad+lineHeight+int32(len(entries))*lineHeight)
	y := r.DrawSectionHeader(l.x+pad, l.y+pad, "Leaderboard")

	for i, e := range entries {
		rl.DrawRectangle(l.x+pad, y+2, 10, 10, e.Color)
		col := r.Theme.LabelColor
		if e.IsUser {
			col = rl.Yellow
		}
		rl.DrawText(fmt.Sprintf("%d. %-12s %.4f", i+1, e.Name, e.Mass), l.x+pad+16, y, r.Theme.FontSize, col)
		y += lineHeight
	}
}

// PerfPanel renders the simulation phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s | TPS: %.0f", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	rl.DrawText(fmt.Sprintf("Cells: %.0f | %s/cell", stats.AvgCells, stats.CellStep.Round(time.Nanosecond)), x, y, 12, rl.LightGray)
	y += 14

	phases := telemetry.Phases
	slices.SortStableFunc(phases[:], func(a, b telemetry.Phase) int {
		return cmp.Compare(stats.Phases[b].Avg, stats.Phases[a].Avg)
	})

	for _, ph := range phases {
		ps := stats.Phases[ph]
		color := rl.LightGray
		if ps.Pct > 50 {
			color = rl.Red
		} else if ps.Pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", ph, ps.Avg.Round(time.Microsecond), ps.Pct),
			x, y, 12, color,
		)
		y += 14
	}
}
