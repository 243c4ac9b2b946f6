package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/microbiome/ui"
	"github.com/pthm-cable/microbiome/units"
)

// steerReach is the cursor distance, in world units, at which the human's
// cells reach full speed.
const steerReach = 0.25

// humanMaxSpeed is the control speed at full cursor reach.
const humanMaxSpeed = units.DefaultSpeed * 4

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.splitRequested = true
	}
	if rl.IsKeyPressed(rl.KeyA) {
		g.autopilot = !g.autopilot
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.respawnHuman()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.showPerf = !g.showPerf
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < ui.MaxSteps {
		g.stepsPerUpdate++
	}

	g.handleCameraInput()

	if !g.autopilot && !g.paused {
		g.steerHuman()
	}
}

// applyControlActions applies the buttons pressed in the control panel.
// It runs during Draw, so effects land on the next Update.
func (g *Game) applyControlActions(a ui.ControlActions) {
	if a.Split {
		g.splitRequested = true
	}
	if a.TogglePause {
		g.paused = !g.paused
	}
	if a.ToggleAutopilot {
		g.autopilot = !g.autopilot
	}
	if a.Respawn {
		g.respawnHuman()
	}
	g.stepsPerUpdate = a.Steps
}

// steerHuman points the human's cells at the mouse cursor. Speed grows with
// cursor distance from the cells' centroid.
func (g *Game) steerHuman() {
	if _, ok := g.world.Player(g.human); !ok {
		return
	}
	mouse := rl.GetMousePosition()
	target := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	centre := g.world.CameraPosition(g.human)

	dist := centre.Distance(target)
	speed := humanMaxSpeed.Scale(min(1, dist/steerReach))
	if err := g.world.SetControls(g.human, centre.DirectionTo(target), speed); err != nil {
		slog.Debug("steer failed", "error", err)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.layoutPanels()
}

// handleCameraInput processes zoom controls. The camera follows the human
// player, so there is no panning.
func (g *Game) handleCameraInput() {
	wheelMove := rl.GetMouseWheelMove()
	if wheelMove != 0 {
		g.camera.ZoomBy(1 + wheelMove*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
