// Package telemetry tracks simulation health over time windows and writes
// stats, perf timings, player lifetimes and frame snapshots.
package telemetry

import (
	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/units"
	"github.com/pthm-cable/microbiome/world"
)

var _ world.Recorder = (*Collector)(nil)

// Collector accumulates world events within time windows and produces WindowStats.
// It implements world.Recorder.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	foodEaten     int
	foodMassEaten float64
	kills         int
	merges        int
	massHunted    float64
	foodSpawned   int
	splits        int
	siblings      int
	playersPruned int

	lifetimes *LifetimeTracker
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		lifetimes:           NewLifetimeTracker(),
	}
}

// Lifetimes returns the per-player tracker fed by this collector.
func (c *Collector) Lifetimes() *LifetimeTracker {
	return c.lifetimes
}

// RecordFoodEaten records a pellet eaten by one of owner's cells.
func (c *Collector) RecordFoodEaten(owner components.ID, mass units.Mass) {
	c.foodEaten++
	c.foodMassEaten += float64(mass)
	c.lifetimes.RecordForage(owner, float64(mass))
}

// RecordCellEaten records one cell swallowing another. Same-owner merges
// are counted apart from kills.
func (c *Collector) RecordCellEaten(owner, victim components.ID, mass units.Mass, sameOwner bool) {
	if sameOwner {
		c.merges++
		return
	}
	c.kills++
	c.massHunted += float64(mass)
	c.lifetimes.RecordKill(owner, float64(mass))
	c.lifetimes.RecordLoss(victim, float64(mass))
}

// RecordFoodSpawned records replenished pellets.
func (c *Collector) RecordFoodSpawned(n int) {
	c.foodSpawned += n
}

// RecordSplit records a mitosis request that produced siblings.
func (c *Collector) RecordSplit(player components.ID, siblings int) {
	c.splits++
	c.siblings += siblings
	c.lifetimes.RecordSplit(player, siblings)
}

// RecordPlayerPruned records a player leaving the registry.
func (c *Collector) RecordPlayerPruned(player components.ID) {
	c.playersPruned++
	c.lifetimes.Retire(player)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// census is the world population sampled at currentTick.
func (c *Collector) Flush(currentTick int32, census world.Census) WindowStats {
	massMean, massStd, massP10, massP50, massP90, massMax := ComputeMassStats(census.CellMasses)

	var killShare float64
	if eaten := c.kills + c.foodEaten; eaten > 0 {
		killShare = float64(c.kills) / float64(eaten)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Players: census.Players,
		Cells:   census.Cells,
		Food:    census.Food,
		Walls:   census.Walls,

		FoodEaten:     c.foodEaten,
		FoodMassEaten: c.foodMassEaten,
		Kills:         c.kills,
		Merges:        c.merges,
		MassHunted:    c.massHunted,
		KillShare:     killShare,
		FoodSpawned:   c.foodSpawned,
		Splits:        c.splits,
		Siblings:      c.siblings,
		PlayersPruned: c.playersPruned,

		CellMassTotal: census.CellMass,
		FoodMassTotal: census.FoodMass,
		CellMassMean:  massMean,
		CellMassStd:   massStd,
		CellMassP10:   massP10,
		CellMassP50:   massP50,
		CellMassP90:   massP90,
		CellMassMax:   massMax,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.foodEaten = 0
	c.foodMassEaten = 0
	c.kills = 0
	c.merges = 0
	c.massHunted = 0
	c.foodSpawned = 0
	c.splits = 0
	c.siblings = 0
	c.playersPruned = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
