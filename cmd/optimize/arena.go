package main

import (
	"math/rand"

	"github.com/pthm-cable/microbiome/ai"
	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/config"
	"github.com/pthm-cable/microbiome/scene"
	"github.com/pthm-cable/microbiome/telemetry"
	"github.com/pthm-cable/microbiome/world"
)

// runResult holds the results from a single arena run.
type runResult struct {
	survivalTicks int32     // ticks the challenger kept at least one cell
	shares        []float64 // challenger share of all cell mass, once per stats window
	lifetime      telemetry.LifetimeStats
}

// arena pits one challenger, steered by candidate parameters, against bots
// steered by the base config. It drives the world directly so runs need no
// window or renderer.
type arena struct {
	w          *world.World
	rng        *rand.Rand
	collector  *telemetry.Collector
	pool       *ai.Pool
	challenger components.ID
	bots       []components.ID

	botParams        ai.Params
	challengerParams ai.Params
	retargetEvery    int32
	splitChance      float64
	dt               float64

	agents  []ai.Agent
	intents []ai.Intent
}

func newArena(cfg *config.Config, candidate config.AIConfig, seed int64) *arena {
	rules := cfg.Params()
	a := &arena{
		rng:              rand.New(rand.NewSource(seed)),
		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT),
		pool:             ai.NewPool(1), // arenas already run one per goroutine
		botParams:        ai.ParamsFromConfig(cfg.AI, rules),
		challengerParams: ai.ParamsFromConfig(candidate, rules),
		retargetEvery:    int32(max(1, cfg.Scene.AIRetargetEvery)),
		splitChance:      cfg.Scene.AISplitChance,
		dt:               cfg.Physics.DT,
	}
	a.w = world.New(rules,
		world.WithRand(rand.New(rand.NewSource(seed+1))),
		world.WithRecorder(a.collector),
	)

	// The human slot becomes the challenger.
	res := scene.Seed(a.w, cfg.Scene, a.rng, seed)
	a.challenger = res.Human
	a.bots = res.Opponents
	for _, p := range a.w.Players() {
		a.collector.Lifetimes().Register(p, 0)
	}
	return a
}

// run advances the arena until the challenger dies or maxTicks pass.
func (a *arena) run(maxTicks int32) runResult {
	defer a.pool.Close()

	var result runResult
	lt := a.collector.Lifetimes()
	for tick := int32(0); tick < maxTicks; tick++ {
		splits := a.steer(tick)
		lt.Advance(tick+1, a.dt)
		a.w.Tick(a.dt)
		for _, id := range splits {
			// Players with no eligible cells simply skip the split.
			_, _ = a.w.Mitosis(id)
		}

		if _, ok := a.w.Player(a.challenger); !ok {
			for _, s := range lt.Drain() {
				if components.ID(s.PlayerID) == a.challenger {
					result.lifetime = s
				}
			}
			result.survivalTicks = tick + 1
			return result
		}
		lt.Drain()
		for _, s := range a.w.Leaderboard(0) {
			lt.UpdateSize(s.Player.ID, s.Mass, s.Cells)
		}

		if a.collector.ShouldFlush(tick + 1) {
			census := a.w.Census()
			a.collector.Flush(tick+1, census)
			result.shares = append(result.shares, a.share(census.CellMass))
		}
	}
	if s := lt.Get(a.challenger); s != nil {
		result.lifetime = *s
		result.lifetime.SurvivalTimeSec = float64(maxTicks) * a.dt
	}
	result.survivalTicks = maxTicks
	return result
}

// steer updates controls every retargetEvery ticks and returns the players
// that chose to split.
func (a *arena) steer(tick int32) []components.ID {
	if tick%a.retargetEvery != 0 {
		return nil
	}

	a.agents = a.agents[:0]
	for _, id := range a.bots {
		if ag, ok := ai.NewAgent(a.w, id); ok {
			a.agents = append(a.agents, ag)
		}
	}
	view := ai.NewView(a.w)
	a.intents = a.pool.Steer(view, a.agents, a.botParams, a.intents)
	if ag, ok := ai.NewAgent(a.w, a.challenger); ok {
		a.intents = append(a.intents, ai.Steer(view, ag, a.challengerParams))
	}

	var splits []components.ID
	for _, in := range a.intents {
		if in.Idle {
			continue
		}
		if err := a.w.SetControls(in.Player, in.Direction, in.Speed); err != nil {
			continue
		}
		if in.Split && a.rng.Float64() < a.splitChance {
			splits = append(splits, in.Player)
		}
	}
	return splits
}

// share returns the challenger's fraction of all cell mass.
func (a *arena) share(total float64) float64 {
	if total <= 0 {
		return 0
	}
	var mass float64
	for _, c := range a.w.PlayerCells(a.challenger) {
		mass += float64(c.Mass)
	}
	return mass / total
}
