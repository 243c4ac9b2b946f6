package units

import "math"

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(1, v)) * 255)
}

// RGB builds a color from normalized channels in [0, 1].
func RGB(r, g, b float64) Color {
	return Color{R: channel(r), G: channel(g), B: channel(b)}
}

// HSV builds a color from hue in degrees and saturation/value in [0, 1].
func HSV(h, s, v float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = math.Max(0, math.Min(1, s))
	v = math.Max(0, math.Min(1, v))

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	switch {
	case h < 60:
		return RGB(c+m, x+m, m)
	case h < 120:
		return RGB(x+m, c+m, m)
	case h < 180:
		return RGB(m, c+m, x+m)
	case h < 240:
		return RGB(m, x+m, c+m)
	case h < 300:
		return RGB(x+m, m, c+m)
	default:
		return RGB(c+m, m, x+m)
	}
}

// Floats returns the channels normalized to [0, 1].
func (c Color) Floats() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}
