package telemetry

import (
	"math"
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCollector(window int) (*PerfCollector, *fakeClock) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	pc := NewPerfCollector(window)
	pc.now = clk.now
	return pc, clk
}

// runTick records one tick where the world phase costs perCell for each cell.
func runTick(pc *PerfCollector, clk *fakeClock, cells int, perCell time.Duration) {
	pc.StartTick()
	pc.StartPhase(PhaseControls)
	clk.advance(100 * time.Microsecond)
	pc.StartPhase(PhaseWorld)
	clk.advance(time.Duration(cells) * perCell)
	pc.StartPhase(PhaseMitosis)
	clk.advance(50 * time.Microsecond)
	pc.EndTick(Load{Entities: cells + 10, Cells: cells, Food: 10})
}

func TestPerfCollectorPhases(t *testing.T) {
	pc, clk := newTestCollector(10)
	for i := 0; i < 4; i++ {
		runTick(pc, clk, 100, 2*time.Microsecond)
	}

	s := pc.Stats()
	if s.Ticks != 4 {
		t.Fatalf("Ticks = %d, want 4", s.Ticks)
	}
	if s.AvgTickDuration != 350*time.Microsecond {
		t.Errorf("AvgTickDuration = %v, want 350µs", s.AvgTickDuration)
	}

	tests := []struct {
		phase Phase
		avg   time.Duration
	}{
		{PhaseControls, 100 * time.Microsecond},
		{PhaseWorld, 200 * time.Microsecond},
		{PhaseMitosis, 50 * time.Microsecond},
		{PhaseTelemetry, 0},
		{PhaseSnapshot, 0},
	}
	var total float64
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			if got := s.Phases[tt.phase].Avg; got != tt.avg {
				t.Errorf("avg = %v, want %v", got, tt.avg)
			}
		})
		total += s.Phases[tt.phase].Pct
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("phase shares sum to %v%%", total)
	}
}

func TestPerfCollectorCellStep(t *testing.T) {
	pc, clk := newTestCollector(8)
	for _, cells := range []int{50, 100, 200, 400} {
		runTick(pc, clk, cells, 3*time.Microsecond)
	}

	s := pc.Stats()
	if s.CellStep != 3*time.Microsecond {
		t.Errorf("CellStep = %v, want 3µs", s.CellStep)
	}
	if s.AvgCells != 187.5 {
		t.Errorf("AvgCells = %v, want 187.5", s.AvgCells)
	}
	if s.AvgEntities != 197.5 {
		t.Errorf("AvgEntities = %v, want 197.5", s.AvgEntities)
	}
	if s.MaxTickDuration != 1350*time.Microsecond {
		t.Errorf("MaxTickDuration = %v, want 1.35ms", s.MaxTickDuration)
	}
	if s.P90TickDuration < s.AvgTickDuration || s.P90TickDuration > s.MaxTickDuration {
		t.Errorf("P90 %v outside [avg %v, max %v]", s.P90TickDuration, s.AvgTickDuration, s.MaxTickDuration)
	}
}

func TestPerfCollectorEmptyWorld(t *testing.T) {
	pc, clk := newTestCollector(4)
	runTick(pc, clk, 0, time.Microsecond)

	s := pc.Stats()
	if s.CellStep != 0 || s.AvgCells != 0 {
		t.Errorf("empty world: CellStep %v, AvgCells %v", s.CellStep, s.AvgCells)
	}
	if s.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc, clk := newTestCollector(3)
	for i := 0; i < 5; i++ {
		runTick(pc, clk, 10, 100*time.Microsecond)
	}
	// Only the last three ticks, all at 1000 cells, remain.
	for i := 0; i < 3; i++ {
		runTick(pc, clk, 1000, time.Microsecond)
	}

	s := pc.Stats()
	if s.Ticks != 3 {
		t.Errorf("Ticks = %d, want 3", s.Ticks)
	}
	if s.AvgCells != 1000 || s.CellStep != time.Microsecond {
		t.Errorf("window kept stale samples: AvgCells %v, CellStep %v", s.AvgCells, s.CellStep)
	}
}

func TestPerfCollectorNoTicks(t *testing.T) {
	s := NewPerfCollector(0).Stats()
	if s.Ticks != 0 || s.AvgTickDuration != 0 || s.TicksPerSecond != 0 {
		t.Errorf("unexpected stats for empty collector: %+v", s)
	}
}

func TestPerfCollectorFrames(t *testing.T) {
	pc, clk := newTestCollector(4)
	pc.RecordFrame()
	if pc.Stats().FPS != 0 {
		t.Error("single frame should not report FPS")
	}
	clk.advance(20 * time.Millisecond)
	pc.RecordFrame()

	s := pc.Stats()
	if s.FrameDuration != 20*time.Millisecond || s.FPS != 50 {
		t.Errorf("frame %v at %v fps, want 20ms at 50", s.FrameDuration, s.FPS)
	}
}

func TestPhaseString(t *testing.T) {
	for i, ph := range Phases {
		if ph != Phase(i) || ph.String() == "unknown" {
			t.Errorf("phase %d misnamed: %v", i, ph)
		}
	}
	if numPhases.String() != "unknown" {
		t.Errorf("out of range phase = %q", numPhases.String())
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	var s PerfStats
	s.AvgTickDuration = 1500 * time.Microsecond
	s.CellStep = 750 * time.Nanosecond
	s.AvgCells = 42
	s.Phases[PhaseWorld].Pct = 80
	s.Phases[PhaseSnapshot].Pct = 5

	row := s.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgTickUS != 1500 {
		t.Errorf("unexpected timing fields: %+v", row)
	}
	if row.CellStepNS != 750 || row.AvgCells != 42 {
		t.Errorf("unexpected load fields: %+v", row)
	}
	if row.WorldPct != 80 || row.SnapshotPct != 5 || row.MitosisPct != 0 {
		t.Errorf("unexpected phase columns: %+v", row)
	}
}
