// Package camera maps the simulation plane onto the screen.
package camera

import (
	"math"

	"github.com/pthm-cable/microbiome/units"
)

// Camera controls the viewport into the simulation world.
// The world is the square [-1,1]²; at zoom 1 the whole square fits the
// shorter screen side.
type Camera struct {
	// Centre of the view in world coordinates
	X, Y float64

	// Zoom level (1.0 = whole world fits, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	// Follow smoothing in [0,1]; 1 snaps to the target
	Smoothing float64
}

// New creates a camera centred on the origin with the whole world visible.
func New(viewportW, viewportH float32) *Camera {
	return &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   0.5,
		MaxZoom:   16.0,
		Smoothing: 0.15,
	}
}

// pixelsPerUnit returns the screen length of one world unit.
func (c *Camera) pixelsPerUnit() float32 {
	return min(c.ViewportW, c.ViewportH) / 2 * c.Zoom
}

// WorldToScreen converts a world position to screen coordinates.
// World y grows upward; screen y grows downward.
func (c *Camera) WorldToScreen(p units.Position) (sx, sy float32) {
	ppu := c.pixelsPerUnit()
	sx = c.ViewportW/2 + float32(p.X-c.X)*ppu
	sy = c.ViewportH/2 - float32(p.Y-c.Y)*ppu
	return sx, sy
}

// ScreenToWorld converts screen coordinates to a world position.
func (c *Camera) ScreenToWorld(sx, sy float32) units.Position {
	ppu := c.pixelsPerUnit()
	return units.Position{
		X: c.X + float64((sx-c.ViewportW/2)/ppu),
		Y: c.Y - float64((sy-c.ViewportH/2)/ppu),
	}
}

// ScaleLength converts a world length, such as a radius, to pixels.
func (c *Camera) ScaleLength(l float64) float32 {
	return float32(l) * c.pixelsPerUnit()
}

// IsVisible returns true if a circle at p with the given radius could be
// visible on screen (conservative check for culling).
func (c *Camera) IsVisible(p units.Position, radius float64) bool {
	ppu := float64(c.pixelsPerUnit())
	halfW := float64(c.ViewportW)/(2*ppu) + radius
	halfH := float64(c.ViewportH)/(2*ppu) + radius
	return math.Abs(p.X-c.X) <= halfW && math.Abs(p.Y-c.Y) <= halfH
}

// Follow eases the view centre toward target.
func (c *Camera) Follow(target units.Position) {
	s := c.Smoothing
	if s <= 0 || s > 1 {
		s = 1
	}
	c.X += (target.X - c.X) * s
	c.Y += (target.Y - c.Y) * s
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the origin at zoom 1.
func (c *Camera) Reset() {
	c.X, c.Y = 0, 0
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	ppu := float64(c.pixelsPerUnit())
	halfW := float64(c.ViewportW) / (2 * ppu)
	halfH := float64(c.ViewportH) / (2 * ppu)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
