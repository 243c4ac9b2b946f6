// Package systems contains the per-entity simulation rules: movement,
// friction, decay, feeding, wall repulsion and cell splitting.
package systems

// World bounds on both axes.
const (
	WorldMin = -1.0
	WorldMax = 1.0
)

// MinFoodGridCellSize bounds the food grid at 2000×2000 buckets.
const MinFoodGridCellSize = 0.001

// Params holds the tunable constants of the simulation rules.
type Params struct {
	// Movement
	BaseSpeed float64 // size-independent speed multiplier
	Friction  float64 // speed loss per second

	// Growth
	DecayRate      float64 // cell mass loss per second
	FoodGrowthRate float64 // food mass gain per second

	// Feeding
	SizeRatio      float64 // predator area must exceed prey area by this factor
	GracePeriod    float64 // seconds before same-owner cells may merge
	RecombineReach float64 // prey radius factor for same-owner merges
	AttackReach    float64 // prey radius factor for cross-owner predation

	// Food supply
	FoodFloor        int     // replenish while fewer pellets than this exist
	FoodSpawnRate    float64 // pellets per simulated second while below the floor
	FoodGridCellSize float64 // broad-phase bucket size

	// Mitosis
	MaturityAge  float64 // seconds a cell must live before splitting
	SplitOffset  float64 // sibling offset in pre-split radii
	MaxSiblings  int     // new cells per mitosis call
	SplitMinimum int     // splits allowed on top of half the cell count
}

// DefaultParams returns the standard rule set.
func DefaultParams() Params {
	return Params{
		BaseSpeed: 5,
		Friction:  0.1,

		DecayRate:      0.03,
		FoodGrowthRate: 0.01,

		SizeRatio:      1.1,
		GracePeriod:    5,
		RecombineReach: 4.0 / 5.0,
		AttackReach:    2.0 / 3.0,

		FoodFloor:        1000,
		FoodSpawnRate:    10,
		FoodGridCellSize: 0.05,

		MaturityAge:  8,
		SplitOffset:  1.5,
		MaxSiblings:  256,
		SplitMinimum: 2,
	}
}
