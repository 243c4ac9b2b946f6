package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/microbiome/ui"
	"github.com/pthm-cable/microbiome/units"
)

const controlsLegend = "[Mouse] steer  [Space] split  [P] pause  [A] autopilot  [R] respawn  [</>] speed  [Wheel] zoom  [F3] perf"

// Draw renders the game.
func (g *Game) Draw() {
	if g.headless {
		return
	}
	g.perfCollector.RecordFrame()

	g.camera.Follow(g.focus())

	rl.BeginDrawing()
	g.background.Draw(g.camera)
	g.entities.Draw(g.world.Frame(), g.camera)
	g.drawUI()
	rl.EndDrawing()
}

// focus returns the point the camera follows: the human's cells, or the
// leader's while the human is dead.
func (g *Game) focus() units.Position {
	if _, ok := g.world.Player(g.human); ok {
		return g.world.CameraPosition(g.human)
	}
	if top := g.world.Leaderboard(1); len(top) > 0 {
		return g.world.CameraPosition(top[0].Player.ID)
	}
	return units.Position{}
}

func (g *Game) drawUI() {
	census := g.world.Census()
	g.hud.Draw(ui.HUDData{
		Title:     "Microbiome",
		Players:   census.Players,
		Cells:     census.Cells,
		Food:      census.Food,
		Tick:      g.tick,
		SimTime:   float64(g.tick) * g.config().Physics.DT,
		Speed:     g.stepsPerUpdate,
		FPS:       rl.GetFPS(),
		Paused:    g.paused,
		Autopilot: g.autopilot,
	})

	standings := g.world.Leaderboard(0)
	info := ui.PlayerInfo{Name: g.config().Scene.PlayerName, Color: rl.Gray}
	entries := make([]ui.LeaderboardEntry, 0, g.leaderboardSize)
	for i, s := range standings {
		isUser := s.Player.ID == g.human
		if isUser {
			info = ui.PlayerInfo{
				Name:  s.Player.Name.String(),
				Color: toRL(s.Player.Color),
				Alive: true,
				Mass:  s.Mass,
				Cells: s.Cells,
				Score: s.Player.Score,
				Rank:  i + 1,
			}
			if census.CellMass > 0 {
				info.Share = float32(s.Mass / census.CellMass)
			}
		}
		if i < g.leaderboardSize {
			entries = append(entries, ui.LeaderboardEntry{
				Name:   s.Player.Name.String(),
				Color:  toRL(s.Player.Color),
				Mass:   s.Mass,
				Cells:  s.Cells,
				IsUser: isUser,
			})
		}
	}

	g.playerPanel.Draw(info)
	g.leaderboard.Draw(entries)
	g.applyControlActions(g.controlPanel.Draw(ui.ControlState{
		Paused:    g.paused,
		Autopilot: g.autopilot,
		Steps:     g.stepsPerUpdate,
	}))
	if g.showPerf {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
}

func toRL(c units.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}
