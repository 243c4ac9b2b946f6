package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/systems"
	"github.com/pthm-cable/microbiome/units"
	"github.com/pthm-cable/microbiome/world"
)

func TestNilOutputManagerIsNoop(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("empty dir should disable output, got %v, %v", om, err)
	}
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteLifetimes([]LifetimeStats{{}}); err != nil {
		t.Error(err)
	}
	if err := om.WriteStandings(100, []world.Standing{{Mass: 1}}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for i := int32(1); i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: i * 100, Cells: int(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteLifetimes([]LifetimeStats{{PlayerID: 4, Name: "x"}}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,sim_time,players,cells") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "window_end") != 1 {
		t.Error("header written more than once")
	}

	for _, name := range []string{"perf.csv", "lifetimes.csv", "standings.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestOutputManagerWritesStandings(t *testing.T) {
	w := world.New(systems.DefaultParams())
	big := w.CreatePlayer("big", units.RGB(1, 0, 0))
	small := w.CreatePlayer("small", units.RGB(0, 1, 0))
	w.AddEntity(components.NewCell(0.02, units.Position{X: -0.5}, 0, 0, big.ID))
	w.AddEntity(components.NewCell(0.01, units.Position{X: 0.5}, 0, 0, big.ID))
	w.AddEntity(components.NewCell(0.005, units.Position{Y: 0.5}, 0, 0, small.ID))

	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, end := range []int32{60, 120} {
		if err := om.WriteStandings(end, w.Leaderboard(0)); err != nil {
			t.Fatal(err)
		}
	}
	// Empty batches leave the file untouched.
	if err := om.WriteStandings(180, nil); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, "standings.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var rows []StandingRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatal(err)
	}

	want := []struct {
		end   int32
		rank  int
		name  string
		cells int
	}{
		{60, 1, "big", 3},
		{60, 2, "small", 2},
		{120, 1, "big", 3},
		{120, 2, "small", 2},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, tt := range want {
		r := rows[i]
		if r.WindowEnd != tt.end || r.Rank != tt.rank || r.Name != tt.name || r.Cells != tt.cells {
			t.Errorf("row %d = %+v, want %+v", i, r, tt)
		}
	}
	// CreatePlayer spawns one default cell per player.
	wantMass := 0.03 + float64(components.DefaultCellMass)
	if math.Abs(rows[0].Mass-wantMass) > 1e-9 {
		t.Errorf("big mass = %v, want %v", rows[0].Mass, wantMass)
	}
}

func TestSnapshotRoundtrip(t *testing.T) {
	w := world.New(systems.DefaultParams())
	p := w.CreatePlayer("snap", units.RGB(0.2, 0.4, 0.6))
	w.AddEntity(components.NewFood(0.001, units.Position{X: 0.5}))

	snap := &Snapshot{
		Version:     SnapshotVersion,
		RNGSeed:     42,
		Tick:        120,
		SimTime:     2,
		Frame:       w.Frame(),
		Leaderboard: NewLeaderboardRows(w.Leaderboard(0)),
	}

	path, err := SaveSnapshot(snap, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "frame_00000120.msgpack" {
		t.Errorf("unexpected file name %s", filepath.Base(path))
	}

	back, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Tick != 120 || back.RNGSeed != 42 {
		t.Errorf("header mismatch: %+v", back)
	}
	if len(back.Frame.Entities) != 2 || len(back.Frame.Players) != 1 {
		t.Fatalf("frame has %d entities, %d players", len(back.Frame.Entities), len(back.Frame.Players))
	}
	if back.Frame.Players[0].Name != "snap" || back.Frame.Players[0].Color != p.Color {
		t.Errorf("player mismatch: %+v", back.Frame.Players[0])
	}
	if len(back.Leaderboard) != 1 || back.Leaderboard[0].PlayerID != uint32(p.ID) {
		t.Errorf("leaderboard mismatch: %+v", back.Leaderboard)
	}
}
