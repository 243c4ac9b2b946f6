package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pthm-cable/microbiome/world"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot is one rendered frame of the simulation, written for offline
// viewing. It is an export artifact and is never loaded back into a World.
type Snapshot struct {
	Version int     `msgpack:"version"`
	RNGSeed int64   `msgpack:"rng_seed"`
	Tick    int32   `msgpack:"tick"`
	SimTime float64 `msgpack:"sim_time"`

	Frame       world.Frame      `msgpack:"frame"`
	Leaderboard []LeaderboardRow `msgpack:"leaderboard"`
}

// LeaderboardRow is one ranked player in a snapshot.
type LeaderboardRow struct {
	PlayerID uint32  `msgpack:"player_id"`
	Name     string  `msgpack:"name"`
	Mass     float64 `msgpack:"mass"`
	Cells    int     `msgpack:"cells"`
	Score    float64 `msgpack:"score"`
}

// NewLeaderboardRows flattens world standings for export.
func NewLeaderboardRows(standings []world.Standing) []LeaderboardRow {
	rows := make([]LeaderboardRow, len(standings))
	for i, s := range standings {
		rows[i] = LeaderboardRow{
			PlayerID: uint32(s.Player.ID),
			Name:     s.Player.Name.String(),
			Mass:     s.Mass,
			Cells:    s.Cells,
			Score:    s.Player.Score,
		}
	}
	return rows
}

// SaveSnapshot writes a snapshot to dir as msgpack.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("frame_%08d.msgpack", snapshot.Tick))

	data, err := msgpack.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk for inspection tools.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := msgpack.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
