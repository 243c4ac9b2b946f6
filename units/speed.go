package units

import "math"

// Speed is a scalar velocity magnitude in plane units per second.
// It may go negative briefly to express a kickback against the heading.
type Speed float64

// DefaultSpeed is the base control speed.
const DefaultSpeed Speed = 0.025

// SpeedFromVector returns the magnitude of (x, y).
func SpeedFromVector(x, y float64) Speed {
	return Speed(math.Hypot(x, y))
}

// Distance returns how far the speed carries over elapsed seconds.
func (s Speed) Distance(elapsed float64) float64 {
	return float64(s) * elapsed
}

// Vector returns the velocity along d.
func (s Speed) Vector(d Direction) (x, y float64) {
	v := d.Vector()
	return v.X * float64(s), v.Y * float64(s)
}

// Scale multiplies the speed by f.
func (s Speed) Scale(f float64) Speed {
	return Speed(float64(s) * f)
}
