package systems

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/units"
)

func TestFoodGridMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	grid := NewFoodGrid(0.1)
	foods := make(map[components.ID]components.Food)

	for i := 1; i <= 500; i++ {
		f := RandomFood(rng)
		foods[components.ID(i)] = f
		grid.Insert(components.ID(i), f)
	}
	// Out-of-bounds pellets fall into border buckets.
	foods[1000] = components.NewFood(1e-5, units.Position{X: 1.2, Y: -1.3})
	grid.Insert(1000, foods[1000])

	for q := 0; q < 50; q++ {
		cell := components.NewCell(units.Mass(rng.Float64()*0.01), RandomPosition(rng), 0, 0, 1)
		if q == 0 {
			cell.Pos = units.Position{X: 1, Y: -1}
		}

		var want []components.ID
		for id, f := range foods {
			if CanSwallowFood(cell, f) {
				want = append(want, id)
			}
		}

		var got []components.ID
		for _, id := range grid.QueryRadiusInto(nil, cell.Pos, cell.Radius()+grid.MaxRadius()) {
			if CanSwallowFood(cell, foods[id]) {
				got = append(got, id)
			}
		}

		sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
		sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
		if len(got) != len(want) {
			t.Fatalf("query %d: grid found %v, brute force %v", q, got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("query %d: grid found %v, brute force %v", q, got, want)
			}
		}
	}
}

func TestFoodGridRemove(t *testing.T) {
	grid := NewFoodGrid(0.5)
	grid.Insert(1, components.NewFood(0.01, units.Position{X: 0.1, Y: 0.1}))
	grid.Insert(2, components.NewFood(0.01, units.Position{X: 0.2, Y: 0.1}))
	grid.Insert(3, components.NewFood(0.01, units.Position{X: 0.3, Y: 0.1}))

	grid.Remove(2)
	grid.Remove(99)

	if grid.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", grid.Len())
	}
	ids := grid.QueryRadiusInto(nil, units.Position{X: 0.2, Y: 0.1}, 0.3)
	for _, id := range ids {
		if id == 2 {
			t.Fatal("removed pellet still returned")
		}
	}
	if len(ids) != 2 {
		t.Errorf("query returned %v, want ids 1 and 3", ids)
	}

	// Re-inserting moves the pellet rather than duplicating it.
	grid.Insert(1, components.NewFood(0.25, units.Position{X: -0.9, Y: -0.9}))
	if grid.Len() != 2 || grid.MaxRadius() != 0.5 {
		t.Errorf("after move: Len %d MaxRadius %v", grid.Len(), grid.MaxRadius())
	}

	grid.Clear()
	if grid.Len() != 0 || grid.MaxRadius() != 0 {
		t.Errorf("Clear left Len %d MaxRadius %v", grid.Len(), grid.MaxRadius())
	}
}

func TestNewFoodGridCellSizeFloor(t *testing.T) {
	tests := []struct {
		name     string
		size     float64
		wantCols int
	}{
		{"default for zero", 0, 40},
		{"tiny size floored", 1e-6, 2000},
		{"at floor", MinFoodGridCellSize, 2000},
		{"coarse", 0.5, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewFoodGrid(tt.size)
			if g.cols != tt.wantCols || g.rows != tt.wantCols {
				t.Errorf("grid is %dx%d, want %dx%d", g.cols, g.rows, tt.wantCols, tt.wantCols)
			}
		})
	}
}
