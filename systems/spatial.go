package systems

import (
	"math"

	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/units"
)

// FoodGrid buckets food pellets over the world square for fast
// proximity lookups. Pellets outside the square land in the border buckets.
type FoodGrid struct {
	cellSize  float64
	cols      int
	rows      int
	cells     [][]components.ID
	bucket    map[components.ID]int
	maxRadius float64 // upper bound on any pellet radius ever inserted
}

// NewFoodGrid creates a grid covering [WorldMin, WorldMax]². Sizes below
// MinFoodGridCellSize are raised to it.
func NewFoodGrid(cellSize float64) *FoodGrid {
	if cellSize <= 0 {
		cellSize = DefaultParams().FoodGridCellSize
	}
	cellSize = max(cellSize, MinFoodGridCellSize)
	span := WorldMax - WorldMin
	cols := int(math.Ceil(span / cellSize))
	rows := cols

	cells := make([][]components.ID, cols*rows)
	for i := range cells {
		cells[i] = make([]components.ID, 0, 4)
	}

	return &FoodGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
		bucket:   make(map[components.ID]int),
	}
}

// Len returns the number of indexed pellets.
func (g *FoodGrid) Len() int {
	return len(g.bucket)
}

// MaxRadius returns the largest pellet radius the grid has seen.
func (g *FoodGrid) MaxRadius() float64 {
	return g.maxRadius
}

// Insert indexes a pellet, replacing any previous entry for id.
func (g *FoodGrid) Insert(id components.ID, f components.Food) {
	if _, ok := g.bucket[id]; ok {
		g.Remove(id)
	}
	idx := g.cellIndex(f.Pos)
	g.cells[idx] = append(g.cells[idx], id)
	g.bucket[id] = idx
	g.Grow(f.Radius())
}

// Grow raises the radius bound, e.g. after pellets gained mass in place.
func (g *FoodGrid) Grow(radius float64) {
	if radius > g.maxRadius {
		g.maxRadius = radius
	}
}

// Remove drops a pellet from the index. Unknown ids are ignored.
func (g *FoodGrid) Remove(id components.ID) {
	idx, ok := g.bucket[id]
	if !ok {
		return
	}
	delete(g.bucket, id)

	list := g.cells[idx]
	for i, e := range list {
		if e == id {
			last := len(list) - 1
			list[i] = list[last]
			g.cells[idx] = list[:last]
			return
		}
	}
}

// Clear removes all pellets and resets the radius bound.
func (g *FoodGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	clear(g.bucket)
	g.maxRadius = 0
}

// QueryRadiusInto appends ids of pellets whose bucket intersects the square
// around pos with half-side radius. Callers apply the exact distance test.
// Reuse dst across calls to avoid allocations.
func (g *FoodGrid) QueryRadiusInto(dst []components.ID, pos units.Position, radius float64) []components.ID {
	minCol, minRow := g.cellCoords(units.Position{X: pos.X - radius, Y: pos.Y - radius})
	maxCol, maxRow := g.cellCoords(units.Position{X: pos.X + radius, Y: pos.Y + radius})

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			dst = append(dst, g.cells[row*g.cols+col]...)
		}
	}
	return dst
}

// cellCoords returns the clamped bucket column and row for a position.
func (g *FoodGrid) cellCoords(p units.Position) (col, row int) {
	col = int(math.Floor((p.X - WorldMin) / g.cellSize))
	row = int(math.Floor((p.Y - WorldMin) / g.cellSize))

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// cellIndex returns the flat bucket index for a position.
func (g *FoodGrid) cellIndex(p units.Position) int {
	col, row := g.cellCoords(p)
	return row*g.cols + col
}
