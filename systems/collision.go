package systems

import "github.com/pthm-cable/microbiome/components"

// RepelFromWall pushes an overlapping cell out of w along the line between
// their centres, leaving it exactly touching the wall.
// Returns true if the cell was moved.
func RepelFromWall(w components.Wall, c *components.Cell) bool {
	dist := w.Pos.Distance(c.Pos)
	overlap := w.R + c.Radius() - dist
	if overlap <= 0 {
		return false
	}

	// Coincident centres have no separating line; back out the way the cell came.
	dir := c.Direction.Reverse()
	if dist > 0 {
		dir = w.Pos.DirectionTo(c.Pos)
	}
	c.Pos = c.Pos.MoveTowards(dir, overlap)
	return true
}
