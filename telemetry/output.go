package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/microbiome/config"
	"github.com/pthm-cable/microbiome/world"
)

// csvLog appends gocsv rows of one type to a file, writing the header with
// the first batch.
type csvLog[T any] struct {
	name   string
	f      *os.File
	header bool
}

func openCSVLog[T any](dir, name string) (*csvLog[T], error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog[T]{name: name, f: f}, nil
}

func (l *csvLog[T]) append(rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	marshal := gocsv.MarshalWithoutHeaders
	if !l.header {
		marshal = gocsv.Marshal
	}
	if err := marshal(rows, l.f); err != nil {
		return fmt.Errorf("writing %s: %w", l.name, err)
	}
	l.header = true
	return nil
}

func (l *csvLog[T]) close() error {
	if l == nil {
		return nil
	}
	return l.f.Close()
}

// StandingRow is one ranked player at the end of a stats window.
type StandingRow struct {
	WindowEnd int32   `csv:"window_end"`
	Rank      int     `csv:"rank"`
	PlayerID  uint32  `csv:"player_id"`
	Name      string  `csv:"name"`
	Mass      float64 `csv:"mass"`
	Cells     int     `csv:"cells"`
	Score     float64 `csv:"score"`
}

// NewStandingRows ranks standings for standings.csv. The input is expected
// in leaderboard order.
func NewStandingRows(windowEnd int32, standings []world.Standing) []StandingRow {
	rows := make([]StandingRow, len(standings))
	for i, s := range standings {
		rows[i] = StandingRow{
			WindowEnd: windowEnd,
			Rank:      i + 1,
			PlayerID:  uint32(s.Player.ID),
			Name:      s.Player.Name.String(),
			Mass:      s.Mass,
			Cells:     s.Cells,
			Score:     s.Player.Score,
		}
	}
	return rows
}

// OutputManager writes one CSV per record kind into an experiment
// directory. A nil manager discards everything.
type OutputManager struct {
	dir       string
	telemetry *csvLog[WindowStats]
	perf      *csvLog[PerfStatsCSV]
	lifetimes *csvLog[LifetimeStats]
	standings *csvLog[StandingRow]
}

// NewOutputManager creates dir and opens its CSV files. Returns nil if dir
// is empty.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.telemetry, err = openCSVLog[WindowStats](dir, "telemetry.csv"); err != nil {
		return nil, errors.Join(err, om.Close())
	}
	if om.perf, err = openCSVLog[PerfStatsCSV](dir, "perf.csv"); err != nil {
		return nil, errors.Join(err, om.Close())
	}
	if om.lifetimes, err = openCSVLog[LifetimeStats](dir, "lifetimes.csv"); err != nil {
		return nil, errors.Join(err, om.Close())
	}
	if om.standings, err = openCSVLog[StandingRow](dir, "standings.csv"); err != nil {
		return nil, errors.Join(err, om.Close())
	}
	return om, nil
}

// WriteConfig saves the run configuration next to the CSVs.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.append([]WindowStats{stats})
}

// WritePerf appends the perf window ending at windowEnd to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return om.perf.append([]PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteLifetimes appends retired players to lifetimes.csv.
func (om *OutputManager) WriteLifetimes(records []LifetimeStats) error {
	if om == nil {
		return nil
	}
	return om.lifetimes.append(records)
}

// WriteStandings appends the ranked players at windowEnd to standings.csv.
func (om *OutputManager) WriteStandings(windowEnd int32, standings []world.Standing) error {
	if om == nil {
		return nil
	}
	return om.standings.append(NewStandingRows(windowEnd, standings))
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every open file.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(
		om.telemetry.close(),
		om.perf.close(),
		om.lifetimes.close(),
		om.standings.close(),
	)
}
