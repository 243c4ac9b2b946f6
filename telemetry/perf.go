package telemetry

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase identifies one stage of a simulation step.
type Phase uint8

// Simulation step phases, in execution order.
const (
	PhaseControls Phase = iota
	PhaseWorld
	PhaseMitosis
	PhaseTelemetry
	PhaseSnapshot
	numPhases
)

// Phases lists every phase in execution order.
var Phases = [numPhases]Phase{PhaseControls, PhaseWorld, PhaseMitosis, PhaseTelemetry, PhaseSnapshot}

var phaseNames = [numPhases]string{"controls", "world", "mitosis", "telemetry", "snapshot"}

func (p Phase) String() string {
	if p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// Load is the world population a tick ran against.
type Load struct {
	Entities int
	Cells    int
	Food     int
}

type tickSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
	load   Load
}

// PerfCollector times simulation ticks over a rolling window and relates
// the world phase to the number of cells stepped.
type PerfCollector struct {
	now     func() time.Time
	samples []tickSample
	next    int
	filled  int

	current    tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{now: time.Now, samples: make([]tickSample, window)}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.current = tickSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase, p.phaseStart, p.inPhase = ph, now, true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < numPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndTick records the tick along with the load it was run against.
func (p *PerfCollector) EndTick(load Load) {
	now := p.now()
	p.closePhase(now)
	p.current.total = now.Sub(p.tickStart)
	p.current.load = load

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	p.filled = min(p.filled+1, len(p.samples))
}

// RecordFrame marks the end of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PhaseStats is the average cost of one phase.
type PhaseStats struct {
	Avg time.Duration
	Pct float64 // share of the average tick
}

// PerfStats summarizes the ticks in the window.
type PerfStats struct {
	Ticks int

	AvgTickDuration time.Duration
	P90TickDuration time.Duration
	MaxTickDuration time.Duration
	TicksPerSecond  float64

	Phases [numPhases]PhaseStats

	// World load and the world phase cost per stepped cell
	AvgCells    float64
	AvgEntities float64
	CellStep    time.Duration

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Ticks: p.filled, FrameDuration: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	window := p.samples[:p.filled]
	ticks := make([]float64, len(window))
	cells := make([]float64, len(window))
	entities := make([]float64, len(window))
	var perCell []float64
	var phaseSum [numPhases]time.Duration
	for i, smp := range window {
		ticks[i] = float64(smp.total)
		cells[i] = float64(smp.load.Cells)
		entities[i] = float64(smp.load.Entities)
		for ph, d := range smp.phases {
			phaseSum[ph] += d
		}
		if smp.load.Cells > 0 {
			perCell = append(perCell, float64(smp.phases[PhaseWorld])/float64(smp.load.Cells))
		}
	}

	avg := stat.Mean(ticks, nil)
	slices.Sort(ticks)
	s.AvgTickDuration = time.Duration(avg)
	s.P90TickDuration = time.Duration(stat.Quantile(0.9, stat.Empirical, ticks, nil))
	s.MaxTickDuration = time.Duration(floats.Max(ticks))
	if avg > 0 {
		s.TicksPerSecond = float64(time.Second) / avg
	}

	n := time.Duration(len(window))
	for ph := range s.Phases {
		s.Phases[ph].Avg = phaseSum[ph] / n
		if avg > 0 {
			s.Phases[ph].Pct = float64(s.Phases[ph].Avg) / avg * 100
		}
	}

	s.AvgCells = stat.Mean(cells, nil)
	s.AvgEntities = stat.Mean(entities, nil)
	if len(perCell) > 0 {
		s.CellStep = time.Duration(stat.Mean(perCell, nil))
	}
	return s
}

func (s PerfStats) attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p90_tick_us", s.P90TickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
		slog.Int("avg_cells", int(s.AvgCells)),
		slog.Int64("cell_step_ns", s.CellStep.Nanoseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, ph := range Phases {
		if pct := s.Phases[ph].Pct; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return attrs
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.LogAttrs(context.Background(), slog.LevelInfo, "perf", s.attrs()...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	return slog.GroupValue(s.attrs()...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	P90TickUS    int64   `csv:"p90_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	AvgCells     float64 `csv:"avg_cells"`
	AvgEntities  float64 `csv:"avg_entities"`
	CellStepNS   int64   `csv:"cell_step_ns"`
	FPS          float64 `csv:"fps"`
	ControlsPct  float64 `csv:"controls_pct"`
	WorldPct     float64 `csv:"world_pct"`
	MitosisPct   float64 `csv:"mitosis_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
	SnapshotPct  float64 `csv:"snapshot_pct"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		P90TickUS:    s.P90TickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		AvgCells:     s.AvgCells,
		AvgEntities:  s.AvgEntities,
		CellStepNS:   s.CellStep.Nanoseconds(),
		FPS:          s.FPS,
		ControlsPct:  s.Phases[PhaseControls].Pct,
		WorldPct:     s.Phases[PhaseWorld].Pct,
		MitosisPct:   s.Phases[PhaseMitosis].Pct,
		TelemetryPct: s.Phases[PhaseTelemetry].Pct,
		SnapshotPct:  s.Phases[PhaseSnapshot].Pct,
	}
}
