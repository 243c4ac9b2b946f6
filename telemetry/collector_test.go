package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/units"
	"github.com/pthm-cable/microbiome/world"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	if c.WindowDurationTicks() != 10 {
		t.Fatalf("window ticks = %d, want 10", c.WindowDurationTicks())
	}

	c.RecordFoodEaten(1, 0.002)
	c.RecordFoodEaten(1, 0.003)
	c.RecordCellEaten(1, 2, 0.01, false)
	c.RecordCellEaten(1, 1, 0.02, true)
	c.RecordFoodSpawned(7)
	c.RecordSplit(1, 3)
	c.RecordPlayerPruned(2)

	if c.ShouldFlush(9) {
		t.Error("flushed before window end")
	}
	if !c.ShouldFlush(10) {
		t.Error("expected flush at window end")
	}

	census := world.Census{Players: 1, Cells: 2, Food: 5, CellMass: 0.3, CellMasses: []float64{0.1, 0.2}}
	stats := c.Flush(10, census)

	if stats.FoodEaten != 2 || math.Abs(stats.FoodMassEaten-0.005) > 1e-12 {
		t.Errorf("food eaten = %d / %v", stats.FoodEaten, stats.FoodMassEaten)
	}
	if stats.Kills != 1 || stats.Merges != 1 || stats.MassHunted != 0.01 {
		t.Errorf("kills=%d merges=%d hunted=%v", stats.Kills, stats.Merges, stats.MassHunted)
	}
	if math.Abs(stats.KillShare-1.0/3.0) > 1e-12 {
		t.Errorf("kill share = %v, want 1/3", stats.KillShare)
	}
	if stats.FoodSpawned != 7 || stats.Splits != 1 || stats.Siblings != 3 || stats.PlayersPruned != 1 {
		t.Errorf("unexpected event counts: %+v", stats)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("sim time = %v, want 1", stats.SimTimeSec)
	}
	if math.Abs(stats.CellMassMean-0.15) > 1e-9 || stats.CellMassMax != 0.2 {
		t.Errorf("mass stats = mean %v max %v", stats.CellMassMean, stats.CellMassMax)
	}

	// Counters reset for the next window
	next := c.Flush(20, world.Census{})
	if next.FoodEaten != 0 || next.Kills != 0 || next.WindowStartTick != 10 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestCollectorLifetimes(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	lt := c.Lifetimes()

	hunter := components.NewPlayer(components.NewPlayerName("hunter"), 1, units.Color{}, 0, 0)
	prey := components.NewPlayer(components.NewPlayerName("prey"), 2, units.Color{}, 0, 0)
	lt.Register(hunter, 0)
	lt.Register(prey, 5)

	c.RecordFoodEaten(hunter.ID, 0.001)
	c.RecordCellEaten(hunter.ID, prey.ID, 0.01, false)
	lt.UpdateSize(hunter.ID, 0.05, 3)
	lt.UpdateSize(hunter.ID, 0.04, 2)

	lt.Advance(25, 0.1)
	c.RecordPlayerPruned(prey.ID)

	if lt.Count() != 1 {
		t.Errorf("tracked = %d, want 1", lt.Count())
	}
	h := lt.Get(hunter.ID)
	if h.FoodEaten != 1 || h.Kills != 1 || h.PeakMass != 0.05 || h.PeakCells != 3 {
		t.Errorf("hunter stats = %+v", h)
	}

	retired := lt.Drain()
	if len(retired) != 1 {
		t.Fatalf("retired = %d, want 1", len(retired))
	}
	p := retired[0]
	if p.Name != "prey" || p.DeathTick != 25 || math.Abs(p.SurvivalTimeSec-2.0) > 1e-9 || p.MassLost != 0.01 {
		t.Errorf("prey lifetime = %+v", p)
	}
	if len(lt.Drain()) != 0 {
		t.Error("drain should clear retired players")
	}
}
