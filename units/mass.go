// Package units provides the scalar value types the simulation is built on:
// mass, position, direction, speed and color.
package units

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidMass is returned when constructing a Mass from a negative value.
var ErrInvalidMass = errors.New("invalid mass")

// Mass is the amount of matter in a circular body.
// The body's radius is √mass and its area is π·mass.
type Mass float64

// DefaultMass is the mass of a body with radius 1/1024.
var DefaultMass = MassFromRadius(1.0 / 1024.0)

// NewMass validates v and returns it as a Mass.
func NewMass(v float64) (Mass, error) {
	if v < 0 || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidMass, v)
	}
	return Mass(v), nil
}

// MassFromRadius returns the mass of a body with radius r.
func MassFromRadius(r float64) Mass {
	return Mass(r * r)
}

// MassFromArea returns the mass of a body covering area a.
func MassFromArea(a float64) Mass {
	return Mass(a / math.Pi)
}

// Radius returns √m. Zero and negative masses have radius 0.
func (m Mass) Radius() float64 {
	if m <= 0 {
		return 0
	}
	return math.Sqrt(float64(m))
}

// Area returns π·m.
func (m Mass) Area() float64 {
	return math.Pi * float64(m)
}

// Add returns m + o.
func (m Mass) Add(o Mass) Mass {
	return m + o
}

// Scale multiplies the mass by f.
func (m Mass) Scale(f float64) Mass {
	return Mass(float64(m) * f)
}

// Dead reports whether the body has no mass left.
func (m Mass) Dead() bool {
	return m <= 0
}

// Slowness scales a control speed by the body's size.
// Larger bodies move slower: s·base·√(DefaultMass/m). Dead bodies don't move.
func (m Mass) Slowness(s Speed, base float64) Speed {
	if m <= 0 {
		return 0
	}
	return s.Scale(base * math.Sqrt(float64(DefaultMass/m)))
}
