package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/units"
)

func cellAt(mass units.Mass, x, y float64, owner components.ID, age float64) components.Cell {
	c := components.NewCell(mass, units.Position{X: x, Y: y}, 0, 0, owner)
	c.Age = age
	return c
}

func TestCanSwallowCell(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name string
		a, b components.Cell
		want bool
	}{
		{
			name: "bigger enemy overlapping",
			a:    cellAt(1, 0, 0, 1, 0),
			b:    cellAt(0.25, 0.5, 0, 2, 0),
			want: true,
		},
		{
			name: "enemy too far for attack reach",
			a:    cellAt(1, 0, 0, 1, 0),
			b:    cellAt(0.25, 1.34, 0, 2, 0), // reach = 1 + 0.5*2/3 ≈ 1.333
			want: false,
		},
		{
			name: "size ratio not met",
			a:    cellAt(1.05, 0, 0, 1, 0),
			b:    cellAt(1, 0, 0, 2, 0),
			want: false,
		},
		{
			name: "mature siblings within recombine reach",
			a:    cellAt(1, 0, 0, 1, 6),
			b:    cellAt(0.25, 1.39, 0, 1, 6), // reach = 1 + 0.5*4/5 = 1.4
			want: true,
		},
		{
			name: "mature sibling beyond recombine reach",
			a:    cellAt(1, 0, 0, 1, 6),
			b:    cellAt(0.25, 1.41, 0, 1, 6),
			want: false,
		},
		{
			name: "young predator sibling",
			a:    cellAt(100, 0, 0, 1, 4.9),
			b:    cellAt(0.01, 0, 0, 1, 10),
			want: false,
		},
		{
			name: "young prey sibling",
			a:    cellAt(100, 0, 0, 1, 10),
			b:    cellAt(0.01, 0, 0, 1, 0),
			want: false,
		},
		{
			name: "young enemies are fair game",
			a:    cellAt(100, 0, 0, 1, 0),
			b:    cellAt(0.01, 0, 0, 2, 0),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanSwallowCell(tt.a, tt.b, p); got != tt.want {
				t.Errorf("CanSwallowCell() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGracePeriodBothDirections(t *testing.T) {
	p := DefaultParams()
	sizes := []units.Mass{0.001, 0.1, 1, 10, 1000}
	for _, ma := range sizes {
		for _, mb := range sizes {
			a := cellAt(ma, 0, 0, 3, 4.99)
			b := cellAt(mb, 0, 0, 3, 0)
			if CanSwallowCell(a, b, p) || CanSwallowCell(b, a, p) {
				t.Errorf("young siblings %v/%v swallowed each other", ma, mb)
			}
		}
	}
}

func TestCanSwallowFood(t *testing.T) {
	c := cellAt(0.0001, 0, 0, 1, 0) // radius 0.01
	near := components.NewFood(1e-4, units.Position{X: 0.019})
	far := components.NewFood(1e-4, units.Position{X: 0.021})
	big := components.NewFood(100, units.Position{X: 5})

	if !CanSwallowFood(c, near) {
		t.Error("touching pellet should be edible")
	}
	if CanSwallowFood(c, far) {
		t.Error("distant pellet should not be edible")
	}
	if !CanSwallowFood(c, big) {
		t.Error("tiny cell should eat a large pellet it touches")
	}
}

func TestEatTransfersMass(t *testing.T) {
	a := cellAt(10, 0, 0, 1, 0)
	EatFood(&a, components.NewFood(2, units.Position{}))
	if math.Abs(float64(a.Mass)-12) > 1e-9 {
		t.Errorf("mass after food = %v, want 12", a.Mass)
	}
	EatCell(&a, cellAt(3, 0, 0, 2, 0))
	if math.Abs(float64(a.Mass)-15) > 1e-9 {
		t.Errorf("mass after cell = %v, want 15", a.Mass)
	}
}
