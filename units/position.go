package units

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Position is a point on the simulation plane.
// The playable area is [-1, 1] on both axes.
type Position struct {
	X, Y float64
}

// Vec returns p as a gonum vector.
func (p Position) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func fromVec(v r2.Vec) Position {
	return Position{X: v.X, Y: v.Y}
}

// Add returns p + o.
func (p Position) Add(o Position) Position {
	return fromVec(r2.Add(p.Vec(), o.Vec()))
}

// Sub returns p - o.
func (p Position) Sub(o Position) Position {
	return fromVec(r2.Sub(p.Vec(), o.Vec()))
}

// Mul returns the component-wise product of p and o.
func (p Position) Mul(o Position) Position {
	return Position{X: p.X * o.X, Y: p.Y * o.Y}
}

// Scale returns p scaled by f.
func (p Position) Scale(f float64) Position {
	return fromVec(r2.Scale(f, p.Vec()))
}

// Distance returns the euclidean distance between p and o.
func (p Position) Distance(o Position) float64 {
	return r2.Norm(r2.Sub(p.Vec(), o.Vec()))
}

// DirectionTo returns the heading from p to o.
func (p Position) DirectionTo(o Position) Direction {
	return DirectionFromPositions(p, o)
}

// MoveTowards steps distance along d.
func (p Position) MoveTowards(d Direction, distance float64) Position {
	return fromVec(r2.Add(p.Vec(), r2.Scale(distance, d.Vector())))
}

// MoveAway steps distance against d.
func (p Position) MoveAway(d Direction, distance float64) Position {
	return p.MoveTowards(d, -distance)
}

// Clamp limits both axes to [lo, hi].
func (p Position) Clamp(lo, hi float64) Position {
	return Position{
		X: math.Max(lo, math.Min(hi, p.X)),
		Y: math.Max(lo, math.Min(hi, p.Y)),
	}
}

// ProjectOnto maps p from [-1, 1] onto a width×height surface.
func (p Position) ProjectOnto(width, height float64) (x, y float64) {
	return (p.X + 1) * width / 2, (p.Y + 1) * height / 2
}

// Average returns the mean of positions, or the origin for an empty slice.
func Average(positions []Position) Position {
	if len(positions) == 0 {
		return Position{}
	}
	var sum r2.Vec
	for _, p := range positions {
		sum = r2.Add(sum, p.Vec())
	}
	return fromVec(r2.Scale(1/float64(len(positions)), sum))
}
