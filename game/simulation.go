package game

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/pthm-cable/microbiome/ai"
	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/scene"
	"github.com/pthm-cable/microbiome/telemetry"
	"github.com/pthm-cable/microbiome/world"
)

// simulationStep advances the game by one tick.
func (g *Game) simulationStep() {
	cfg := g.config()
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseControls)
	splits := g.updateControls()

	g.perfCollector.StartPhase(telemetry.PhaseWorld)
	load := telemetry.Load{
		Entities: g.world.Len(),
		Cells:    g.world.CellCount(),
		Food:     g.world.FoodCount(),
	}
	g.world.Tick(cfg.Physics.DT)
	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseMitosis)
	if g.splitRequested {
		g.splitRequested = false
		splits = append(splits, g.human)
	}
	for _, id := range splits {
		g.split(id)
	}
	g.respawnBots()
	if g.autopilot {
		g.respawnHuman()
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.updateLifetimes()
	g.flushTelemetry()

	g.perfCollector.StartPhase(telemetry.PhaseSnapshot)
	if g.snapshotDir != "" && g.snapshotEvery > 0 && g.tick%g.snapshotEvery == 0 {
		g.saveSnapshot()
	}

	g.perfCollector.EndTick(load)
}

// updateControls steers the computer players every AIRetargetEvery ticks
// and returns the players that chose to split.
func (g *Game) updateControls() []components.ID {
	cfg := g.config()
	every := int32(max(1, cfg.Scene.AIRetargetEvery))
	if g.tick%every != 0 {
		return nil
	}

	players := g.bots
	if g.autopilot {
		players = append(slices.Clone(g.bots), g.human)
	}

	g.agents = g.agents[:0]
	for _, id := range players {
		if a, ok := ai.NewAgent(g.world, id); ok {
			g.agents = append(g.agents, a)
		}
	}
	if len(g.agents) == 0 {
		return nil
	}

	view := ai.NewView(g.world)
	g.intents = g.pool.Steer(view, g.agents, g.aiParams, g.intents)

	// Apply in agent order so rng draws are reproducible.
	var splits []components.ID
	for _, in := range g.intents {
		if in.Idle {
			continue
		}
		if err := g.world.SetControls(in.Player, in.Direction, in.Speed); err != nil {
			slog.Debug("steer failed", "player", in.Player, "error", err)
			continue
		}
		if in.Split && g.rng.Float64() < cfg.Scene.AISplitChance {
			splits = append(splits, in.Player)
		}
	}
	return splits
}

// split runs mitosis for a player. Requests with nothing to split are normal
// and only logged at debug level.
func (g *Game) split(id components.ID) {
	n, err := g.world.Mitosis(id)
	switch {
	case err == nil:
		slog.Debug("mitosis", "player", id, "siblings", n, "tick", g.tick)
	case errors.Is(err, world.ErrMitosisNoEligibleCells), errors.Is(err, world.ErrUnknownPlayer):
		slog.Debug("mitosis skipped", "player", id, "reason", err)
	default:
		slog.Error("mitosis failed", "player", id, "error", err)
	}
}

// respawnBots drops pruned bots and creates new ones up to the configured
// opponent count.
func (g *Game) respawnBots() {
	g.bots = slices.DeleteFunc(g.bots, func(id components.ID) bool {
		_, ok := g.world.Player(id)
		return !ok
	})

	cfg := g.config()
	for len(g.bots) < cfg.Scene.Opponents {
		g.botSerial++
		p := g.world.CreatePlayer(fmt.Sprintf("bot-%02d", g.botSerial), scene.PlayerColor(g.botSerial))
		g.bots = append(g.bots, p.ID)
		g.collector.Lifetimes().Register(p, g.tick)
		slog.Debug("bot spawned", "player", p.ID, "tick", g.tick)
	}
}

// respawnHuman gives the human a new player once all its cells are gone.
func (g *Game) respawnHuman() {
	if _, ok := g.world.Player(g.human); ok {
		return
	}
	p := g.world.CreatePlayer(g.config().Scene.PlayerName, scene.PlayerColor(0))
	g.human = p.ID
	g.collector.Lifetimes().Register(p, g.tick)
	if g.entities != nil {
		g.entities.Highlight = p.ID
	}
	slog.Info("player respawned", "player", p.ID, "tick", g.tick)
}

// updateLifetimes refreshes per-player peak sizes.
func (g *Game) updateLifetimes() {
	lt := g.collector.Lifetimes()
	lt.Advance(g.tick, g.config().Physics.DT)
	for _, s := range g.world.Leaderboard(0) {
		lt.UpdateSize(s.Player.ID, s.Mass, s.Cells)
	}
}
