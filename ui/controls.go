package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxSteps is the highest steps-per-update the slider offers.
const MaxSteps = 10

// ControlState is what the control panel displays.
type ControlState struct {
	Paused    bool
	Autopilot bool
	Steps     int
}

// ControlActions reports the buttons pressed this frame.
type ControlActions struct {
	Split           bool
	TogglePause     bool
	ToggleAutopilot bool
	Respawn         bool
	Steps           int
}

// ControlPanel renders the clickable simulation controls.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlPanel creates a control panel.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (c *ControlPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Height returns the panel height.
func (c *ControlPanel) Height() int32 {
	return 2*c.renderer.Theme.Padding + 3*34
}

// Draw renders the panel and returns the actions taken.
func (c *ControlPanel) Draw(state ControlState) ControlActions {
	r := c.renderer
	pad := float32(r.Theme.Padding)
	r.DrawPanel(c.x, c.y, c.width, c.Height())

	x := float32(c.x) + pad
	y := float32(c.y) + pad
	half := (float32(c.width) - 3*pad) / 2

	actions := ControlActions{Steps: state.Steps}

	actions.Split = gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 26}, "Split [Space]")
	pauseText := "Pause [P]"
	if state.Paused {
		pauseText = "Resume [P]"
	}
	actions.TogglePause = gui.Button(rl.Rectangle{X: x + half + pad, Y: y, Width: half, Height: 26}, pauseText)
	y += 34

	autoText := "Autopilot [A]"
	if state.Autopilot {
		autoText = "Manual [A]"
	}
	actions.ToggleAutopilot = gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 26}, autoText)
	actions.Respawn = gui.Button(rl.Rectangle{X: x + half + pad, Y: y, Width: half, Height: 26}, "Respawn [R]")
	y += 34

	steps := gui.SliderBar(
		rl.Rectangle{X: x + 40, Y: y + 4, Width: float32(c.width) - 2*pad - 80, Height: 18},
		"1x", fmt.Sprintf("%dx", MaxSteps),
		float32(state.Steps), 1, MaxSteps,
	)
	actions.Steps = max(1, min(MaxSteps, int(steps+0.5)))

	return actions
}
