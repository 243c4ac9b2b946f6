package telemetry

import "github.com/pthm-cable/microbiome/components"

// LifetimeStats tracks one player's statistics from creation to pruning.
type LifetimeStats struct {
	PlayerID        uint32  `csv:"player_id"`
	Name            string  `csv:"name"`
	BirthTick       int32   `csv:"birth_tick"`
	DeathTick       int32   `csv:"death_tick"`
	SurvivalTimeSec float64 `csv:"survival_time_sec"`

	// Feeding
	FoodEaten  int     `csv:"food_eaten"`
	FoodMass   float64 `csv:"food_mass"`
	Kills      int     `csv:"kills"`
	MassHunted float64 `csv:"mass_hunted"`
	MassLost   float64 `csv:"mass_lost"`

	// Mitosis
	Splits   int `csv:"splits"`
	Siblings int `csv:"siblings"`

	// Size
	PeakMass  float64 `csv:"peak_mass"`
	PeakCells int     `csv:"peak_cells"`
}

// LifetimeTracker manages per-player lifetime statistics.
type LifetimeTracker struct {
	stats   map[components.ID]*LifetimeStats
	retired []LifetimeStats
	tick    int32
	dt      float64
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[components.ID]*LifetimeStats),
	}
}

// Register starts tracking a player.
func (lt *LifetimeTracker) Register(p components.Player, birthTick int32) {
	lt.stats[p.ID] = &LifetimeStats{
		PlayerID:  uint32(p.ID),
		Name:      p.Name.String(),
		BirthTick: birthTick,
	}
}

// Get returns the lifetime stats for a player, or nil if not found.
func (lt *LifetimeTracker) Get(id components.ID) *LifetimeStats {
	return lt.stats[id]
}

// Advance sets the current tick used to stamp retirements.
func (lt *LifetimeTracker) Advance(tick int32, dt float64) {
	lt.tick = tick
	lt.dt = dt
}

// RecordForage adds a pellet to the player's totals.
func (lt *LifetimeTracker) RecordForage(id components.ID, mass float64) {
	if s := lt.stats[id]; s != nil {
		s.FoodEaten++
		s.FoodMass += mass
	}
}

// RecordKill adds a hunted cell to the player's totals.
func (lt *LifetimeTracker) RecordKill(id components.ID, mass float64) {
	if s := lt.stats[id]; s != nil {
		s.Kills++
		s.MassHunted += mass
	}
}

// RecordLoss adds mass the player lost to another player.
func (lt *LifetimeTracker) RecordLoss(id components.ID, mass float64) {
	if s := lt.stats[id]; s != nil {
		s.MassLost += mass
	}
}

// RecordSplit counts a mitosis request.
func (lt *LifetimeTracker) RecordSplit(id components.ID, siblings int) {
	if s := lt.stats[id]; s != nil {
		s.Splits++
		s.Siblings += siblings
	}
}

// UpdateSize tracks peak total mass and cell count.
func (lt *LifetimeTracker) UpdateSize(id components.ID, mass float64, cells int) {
	s := lt.stats[id]
	if s == nil {
		return
	}
	if mass > s.PeakMass {
		s.PeakMass = mass
	}
	if cells > s.PeakCells {
		s.PeakCells = cells
	}
}

// Retire stops tracking a player and queues its final stats for Drain.
func (lt *LifetimeTracker) Retire(id components.ID) {
	s := lt.stats[id]
	if s == nil {
		return
	}
	delete(lt.stats, id)
	s.DeathTick = lt.tick
	s.SurvivalTimeSec = float64(lt.tick-s.BirthTick) * lt.dt
	lt.retired = append(lt.retired, *s)
}

// Drain returns and clears the stats of players retired since the last call.
func (lt *LifetimeTracker) Drain() []LifetimeStats {
	out := lt.retired
	lt.retired = nil
	return out
}

// Count returns the number of tracked players.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
