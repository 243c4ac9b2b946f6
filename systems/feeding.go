package systems

import "github.com/pthm-cable/microbiome/components"

// CanSwallowCell reports whether predator a may eat cell b.
//
// Siblings are protected while either is younger than the grace period.
// Otherwise a must be SizeRatio times larger by area and close enough:
// same-owner merges need b mostly inside a, attacks need b two thirds inside.
func CanSwallowCell(a, b components.Cell, p Params) bool {
	sameOwner := a.SameOwner(b)
	if sameOwner && (a.Age < p.GracePeriod || b.Age < p.GracePeriod) {
		return false
	}

	reach := p.AttackReach
	if sameOwner {
		reach = p.RecombineReach
	}

	return a.Area() > b.Area()*p.SizeRatio &&
		a.Pos.Distance(b.Pos) < a.Radius()+b.Radius()*reach
}

// CanSwallowFood reports whether cell a touches pellet f.
// Any cell can eat any pellet regardless of size.
func CanSwallowFood(a components.Cell, f components.Food) bool {
	return a.Pos.Distance(f.Pos) < a.Radius()+f.Radius()
}

// EatCell moves b's mass into a.
func EatCell(a *components.Cell, b components.Cell) {
	a.Mass = a.Mass.Add(b.Mass)
}

// EatFood moves f's mass into a.
func EatFood(a *components.Cell, f components.Food) {
	a.Mass = a.Mass.Add(f.Mass)
}
