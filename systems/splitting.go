package systems

import (
	"sort"

	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/units"
)

// Split halves c by area and returns the new sibling.
//
// The sibling is placed SplitOffset radii ahead along the heading with
// doubled speed; the original is pushed the same distance back with a
// reversed doubled speed. Both restart at age zero.
func Split(c *components.Cell, p Params) components.Cell {
	radius := c.Radius()
	half := units.MassFromArea(c.Area() / 2)
	offset := radius * p.SplitOffset

	sibling := components.NewCell(half, c.Pos, c.Direction, c.Speed.Scale(2), c.Owner)
	sibling.Pos = sibling.Pos.MoveTowards(c.Direction, offset)

	c.Mass = half
	c.Speed = c.Speed.Scale(-2)
	c.Pos = c.Pos.MoveAway(c.Direction, offset)
	c.Age = 0

	return sibling
}

// PlanMitosis picks which of a player's cells split.
// It returns indices into cells: the largest cells older than MaturityAge,
// at most len(cells)/2 + SplitMinimum of them and never more than MaxSiblings.
func PlanMitosis(cells []components.Cell, p Params) []int {
	order := make([]int, len(cells))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return cells[order[i]].Area() > cells[order[j]].Area()
	})

	limit := len(cells)/2 + p.SplitMinimum
	if limit > p.MaxSiblings {
		limit = p.MaxSiblings
	}

	picked := make([]int, 0, limit)
	for _, idx := range order {
		if len(picked) == limit {
			break
		}
		if cells[idx].Age > p.MaturityAge {
			picked = append(picked, idx)
		}
	}
	return picked
}
