package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/units"
)

// Integrate moves the cell along its heading for elapsed seconds.
// Speed is scaled down for heavier cells.
func Integrate(c *components.Cell, elapsed float64, p Params) {
	speed := c.Mass.Slowness(c.Speed, p.BaseSpeed)
	c.Pos = c.Pos.MoveTowards(c.Direction, speed.Distance(elapsed))
}

// ApplyFriction slows the cell. The factor is floored at zero so a long
// tick stops the cell instead of reversing it.
func ApplyFriction(c *components.Cell, elapsed float64, p Params) {
	factor := math.Max(0, 1-p.Friction*elapsed)
	c.Speed = c.Speed.Scale(factor)
}

// ClampToBounds keeps the cell inside the world square.
func ClampToBounds(c *components.Cell) {
	c.Pos = c.Pos.Clamp(WorldMin, WorldMax)
}

// Decay ages the cell and shrinks its mass. Mass never goes below zero.
func Decay(c *components.Cell, elapsed float64, p Params) {
	c.Age += elapsed
	c.Mass = c.Mass.Scale(math.Max(0, 1-p.DecayRate*elapsed))
}

// GrowFood compounds a pellet's mass.
func GrowFood(f *components.Food, elapsed float64, p Params) {
	f.Mass = f.Mass.Scale(1 + p.FoodGrowthRate*elapsed)
}

// FoodSpawnCount returns how many pellets to add for elapsed seconds.
func FoodSpawnCount(elapsed float64, p Params) int {
	return int(math.Round(math.Abs(p.FoodSpawnRate * elapsed)))
}

// RandomPosition returns a uniform point in the world square.
func RandomPosition(rng *rand.Rand) units.Position {
	return units.Position{X: Uniform(rng), Y: Uniform(rng)}
}

// RandomFood returns a pellet at a random position with 10–20× default mass.
func RandomFood(rng *rand.Rand) components.Food {
	mass := units.DefaultMass.Scale((math.Abs(Uniform(rng)) + 1) * 10)
	return components.NewFood(mass, RandomPosition(rng))
}

// Uniform returns a random value in [-1, 1).
func Uniform(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}
