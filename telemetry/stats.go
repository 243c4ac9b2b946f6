package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Players int `csv:"players"`
	Cells   int `csv:"cells"`
	Food    int `csv:"food"`
	Walls   int `csv:"walls"`

	// Events during window
	FoodEaten     int     `csv:"food_eaten"`
	FoodMassEaten float64 `csv:"food_mass_eaten"`
	Kills         int     `csv:"kills"`
	Merges        int     `csv:"merges"`
	MassHunted    float64 `csv:"mass_hunted"`
	KillShare     float64 `csv:"kill_share"` // kills / (kills + pellets)
	FoodSpawned   int     `csv:"food_spawned"`
	Splits        int     `csv:"splits"`
	Siblings      int     `csv:"siblings"`
	PlayersPruned int     `csv:"players_pruned"`

	// Mass (sampled at window end)
	CellMassTotal float64 `csv:"cell_mass_total"`
	FoodMassTotal float64 `csv:"food_mass_total"`
	CellMassMean  float64 `csv:"cell_mass_mean"`
	CellMassStd   float64 `csv:"cell_mass_std"`
	CellMassP10   float64 `csv:"cell_mass_p10"`
	CellMassP50   float64 `csv:"cell_mass_p50"`
	CellMassP90   float64 `csv:"cell_mass_p90"`
	CellMassMax   float64 `csv:"cell_mass_max"`
}

// ComputeMassStats calculates mean, sample standard deviation, empirical
// percentiles and maximum of cell masses. Empty input yields zeros.
func ComputeMassStats(values []float64) (mean, std, p10, p50, p90, peak float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) > 1 {
		mean, std = stat.MeanStdDev(sorted, nil)
	} else {
		mean = sorted[0]
	}

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	peak = floats.Max(sorted)

	return mean, std, p10, p50, p90, peak
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("players", s.Players),
		slog.Int("cells", s.Cells),
		slog.Int("food", s.Food),
		slog.Int("walls", s.Walls),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Float64("food_mass_eaten", s.FoodMassEaten),
		slog.Int("kills", s.Kills),
		slog.Int("merges", s.Merges),
		slog.Float64("mass_hunted", s.MassHunted),
		slog.Float64("kill_share", s.KillShare),
		slog.Int("food_spawned", s.FoodSpawned),
		slog.Int("splits", s.Splits),
		slog.Int("siblings", s.Siblings),
		slog.Int("players_pruned", s.PlayersPruned),
		slog.Float64("cell_mass_total", s.CellMassTotal),
		slog.Float64("food_mass_total", s.FoodMassTotal),
		slog.Float64("cell_mass_mean", s.CellMassMean),
		slog.Float64("cell_mass_std", s.CellMassStd),
		slog.Float64("cell_mass_p10", s.CellMassP10),
		slog.Float64("cell_mass_p50", s.CellMassP50),
		slog.Float64("cell_mass_p90", s.CellMassP90),
		slog.Float64("cell_mass_max", s.CellMassMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
