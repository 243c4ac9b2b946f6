package units

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const twoPi = 2 * math.Pi

// Direction is a heading in radians, kept in [0, 2π).
type Direction float64

// wrapAngle maps any finite angle into [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	// -tiny + 2π rounds to 2π
	if a >= twoPi {
		a = 0
	}
	return a
}

// DirectionFromRadians returns the heading for an angle in radians.
func DirectionFromRadians(r float64) Direction {
	return Direction(wrapAngle(r))
}

// DirectionFromDegrees returns the heading for an angle in degrees.
func DirectionFromDegrees(deg float64) Direction {
	return DirectionFromRadians(deg * math.Pi / 180)
}

// DirectionFromVector returns the heading of (x, y). The zero vector maps to 0.
func DirectionFromVector(x, y float64) Direction {
	return DirectionFromRadians(math.Atan2(y, x))
}

// DirectionFromPositions returns the heading pointing from one position to another.
func DirectionFromPositions(from, to Position) Direction {
	return DirectionFromVector(to.X-from.X, to.Y-from.Y)
}

// Radians returns the heading in [0, 2π).
func (d Direction) Radians() float64 {
	return wrapAngle(float64(d))
}

// Degrees returns the heading in [0, 360).
func (d Direction) Degrees() float64 {
	return d.Radians() * 180 / math.Pi
}

// Rotate turns the heading by r radians.
func (d Direction) Rotate(r float64) Direction {
	return DirectionFromRadians(float64(d) + r)
}

// RotateDegrees turns the heading by deg degrees.
func (d Direction) RotateDegrees(deg float64) Direction {
	return d.Rotate(deg * math.Pi / 180)
}

// Neg mirrors the heading across the x axis.
func (d Direction) Neg() Direction {
	return DirectionFromRadians(-float64(d))
}

// Reverse points the opposite way.
func (d Direction) Reverse() Direction {
	return d.Rotate(math.Pi)
}

// Add sums two headings.
func (d Direction) Add(o Direction) Direction {
	return DirectionFromRadians(float64(d) + float64(o))
}

// Scale multiplies the angle by f.
func (d Direction) Scale(f float64) Direction {
	return DirectionFromRadians(float64(d) * f)
}

// Vector returns the unit vector for the heading.
func (d Direction) Vector() r2.Vec {
	r := d.Radians()
	return r2.Vec{X: math.Cos(r), Y: math.Sin(r)}
}
