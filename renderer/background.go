// Package renderer draws the world with raylib primitives.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/microbiome/camera"
	"github.com/pthm-cable/microbiome/systems"
	"github.com/pthm-cable/microbiome/units"
)

// BackgroundRenderer draws the backdrop, a reference grid and the world border.
type BackgroundRenderer struct {
	BaseColor   rl.Color
	GridColor   rl.Color
	BorderColor rl.Color
	GridStep    float64 // world units between grid lines
}

// NewBackgroundRenderer creates a background renderer with the given base colour.
func NewBackgroundRenderer(baseR, baseG, baseB uint8) *BackgroundRenderer {
	return &BackgroundRenderer{
		BaseColor:   rl.Color{R: baseR, G: baseG, B: baseB, A: 255},
		GridColor:   rl.Color{R: baseR + 18, G: baseG + 18, B: baseB + 22, A: 255},
		BorderColor: rl.Color{R: 120, G: 130, B: 150, A: 255},
		GridStep:    0.1,
	}
}

// Draw clears the screen and draws the grid lines visible through cam.
func (b *BackgroundRenderer) Draw(cam *camera.Camera) {
	rl.ClearBackground(b.BaseColor)

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	minX = max(minX, systems.WorldMin)
	minY = max(minY, systems.WorldMin)
	maxX = min(maxX, systems.WorldMax)
	maxY = min(maxY, systems.WorldMax)

	// Start on a multiple of the step so lines don't swim while panning.
	for i := int(minX / b.GridStep); float64(i)*b.GridStep <= maxX; i++ {
		x := float64(i) * b.GridStep
		b.line(cam, units.Position{X: x, Y: minY}, units.Position{X: x, Y: maxY}, b.GridColor)
	}
	for i := int(minY / b.GridStep); float64(i)*b.GridStep <= maxY; i++ {
		y := float64(i) * b.GridStep
		b.line(cam, units.Position{X: minX, Y: y}, units.Position{X: maxX, Y: y}, b.GridColor)
	}

	corners := []units.Position{
		{X: systems.WorldMin, Y: systems.WorldMin},
		{X: systems.WorldMax, Y: systems.WorldMin},
		{X: systems.WorldMax, Y: systems.WorldMax},
		{X: systems.WorldMin, Y: systems.WorldMax},
	}
	for i, c := range corners {
		b.line(cam, c, corners[(i+1)%len(corners)], b.BorderColor)
	}
}

func (b *BackgroundRenderer) line(cam *camera.Camera, from, to units.Position, col rl.Color) {
	x0, y0 := cam.WorldToScreen(from)
	x1, y1 := cam.WorldToScreen(to)
	rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, col)
}
