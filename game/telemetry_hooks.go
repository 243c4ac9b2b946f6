package game

import (
	"log/slog"

	"github.com/pthm-cable/microbiome/telemetry"
)

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.world.Census())
	perfStats := g.perfCollector.Stats()
	retired := g.collector.Lifetimes().Drain()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
		if err := g.outputManager.WriteLifetimes(retired); err != nil {
			slog.Error("failed to write lifetimes", "error", err)
		}
		if err := g.outputManager.WriteStandings(stats.WindowEndTick, g.world.Leaderboard(0)); err != nil {
			slog.Error("failed to write standings", "error", err)
		}
	}

	// Without a fixed interval, snapshot once per stats window.
	if g.snapshotDir != "" && g.snapshotEvery <= 0 {
		g.saveSnapshot()
	}
}

// saveSnapshot writes the current frame and leaderboard to the snapshot dir.
func (g *Game) saveSnapshot() {
	snap := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		RNGSeed:     g.seed,
		Tick:        g.tick,
		SimTime:     float64(g.tick) * g.config().Physics.DT,
		Frame:       g.world.Frame(),
		Leaderboard: telemetry.NewLeaderboardRows(g.world.Leaderboard(g.leaderboardSize)),
	}

	path, err := telemetry.SaveSnapshot(snap, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	if g.logStats {
		slog.Info("snapshot saved", "path", path, "tick", g.tick)
	}
}
