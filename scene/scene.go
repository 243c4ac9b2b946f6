// Package scene populates a fresh world: the human player, AI opponents,
// food and walls.
package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/config"
	"github.com/pthm-cable/microbiome/systems"
	"github.com/pthm-cable/microbiome/units"
	"github.com/pthm-cable/microbiome/world"
)

// clusterCandidates is how many random points compete for each patch centre.
const clusterCandidates = 16

// Result lists the players a scene created.
type Result struct {
	Human     components.ID
	Opponents []components.ID
}

// PlayerColor returns a well-spread hue for the i-th player.
func PlayerColor(i int) units.Color {
	hue := math.Mod(float64(i)*0.618033988749895*360, 360)
	return units.HSV(hue, 0.65, 0.95)
}

// Seed fills w according to cfg. Food density follows a simplex noise
// field derived from seed, so the same seed and rng state reproduce the
// same scene.
func Seed(w *world.World, cfg config.SceneConfig, rng *rand.Rand, seed int64) Result {
	noise := opensimplex.NewNormalized(seed)
	density := func(p units.Position) float64 {
		return noise.Eval2(p.X*cfg.ClusterNoise, p.Y*cfg.ClusterNoise)
	}

	var res Result
	human := w.CreatePlayer(cfg.PlayerName, PlayerColor(0))
	res.Human = human.ID
	placeCells(w, rng, human.ID, units.Position{}, cfg.PlayerCells, cfg.PlayerSpread)

	for i, n := 0, cfg.Opponents; i < n; i++ {
		p := w.CreatePlayer(fmt.Sprintf("bot-%02d", i+1), PlayerColor(i+1))
		res.Opponents = append(res.Opponents, p.ID)
		home := systems.RandomPosition(rng).Scale(0.9)
		placeCells(w, rng, p.ID, home, cfg.OpponentCells, cfg.OpponentSpread)
	}

	for i, n := 0, cfg.Food; i < n; i++ {
		w.AddEntity(noisyFood(rng, density))
	}

	for i, n := 0, cfg.FoodClusters; i < n; i++ {
		centre := bestCentre(rng, density)
		for i, n := 0, cfg.ClusterSize; i < n; i++ {
			pos := scatter(rng, centre, cfg.ClusterSpread)
			w.AddEntity(components.NewFood(foodMass(rng), pos))
		}
	}

	for i, n := 0, cfg.Walls; i < n; i++ {
		r := cfg.WallRadiusMin + rng.Float64()*(cfg.WallRadiusMax-cfg.WallRadiusMin)
		pos := systems.RandomPosition(rng).Scale(1 - r)
		w.AddEntity(components.NewWall(pos, r))
	}
	return res
}

// placeCells replaces the player's starting cell with n cells scattered
// around centre. n <= 1 keeps the single starting cell, moved to centre.
func placeCells(w *world.World, rng *rand.Rand, player components.ID, centre units.Position, n int, spread float64) {
	recs := w.PlayerRecords(player)
	if len(recs) == 0 {
		return
	}
	first := recs[0]
	cell := first.Entity.(components.Cell)
	cell.Pos = centre
	if n > 1 {
		cell.Pos = scatter(rng, centre, spread)
	}
	w.UpdateEntity(first.ID, cell)

	for i := 1; i < n; i++ {
		c := cell
		c.Pos = scatter(rng, centre, spread)
		w.AddEntity(c)
	}
}

// noisyFood rejection-samples a pellet position against the density field.
func noisyFood(rng *rand.Rand, density func(units.Position) float64) components.Food {
	for {
		pos := systems.RandomPosition(rng)
		if rng.Float64() < density(pos) {
			return components.NewFood(foodMass(rng), pos)
		}
	}
}

func bestCentre(rng *rand.Rand, density func(units.Position) float64) units.Position {
	best := systems.RandomPosition(rng)
	bestVal := density(best)
	for i := 0; i < clusterCandidates-1; i++ {
		p := systems.RandomPosition(rng)
		if v := density(p); v > bestVal {
			best, bestVal = p, v
		}
	}
	return best
}

func scatter(rng *rand.Rand, centre units.Position, spread float64) units.Position {
	dir := units.DirectionFromRadians(rng.Float64() * 2 * math.Pi)
	dist := spread * math.Sqrt(rng.Float64())
	return centre.MoveTowards(dir, dist).Clamp(systems.WorldMin, systems.WorldMax)
}

func foodMass(rng *rand.Rand) units.Mass {
	return units.DefaultMass.Scale((rng.Float64() + 1) * 10)
}
