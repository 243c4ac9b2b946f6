package world

import (
	"slices"

	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/systems"
)

// Tick advances the world by elapsed simulated seconds.
//
// Every entity present at the start of the tick is stepped exactly once, in
// id order. Entities created during the tick wait for the next one and
// entities eaten earlier in the tick are skipped. Afterwards dead and
// orphaned cells are removed, then players left without cells.
func (w *World) Tick(elapsed float64) {
	w.ticking = true
	w.tickIDs = w.orderedIDs(w.tickIDs[:0])

	for _, id := range w.tickIDs {
		e, ok := w.entities[id]
		if !ok {
			continue
		}
		switch v := e.(type) {
		case components.Cell:
			// Take the cell out so it can mutate its neighbours without
			// observing itself, then put it back under the same id.
			w.unstore(id)
			w.stepCell(&v, elapsed)
			w.store(id, v)
		case components.Food:
			systems.GrowFood(&v, elapsed, w.params)
			w.entities[id] = v
			w.food.Grow(v.Radius())
		case components.Wall:
		}
	}

	w.ticking = false
	w.pruneCells()
	w.prunePlayers()
	w.compact()
}

func (w *World) stepCell(c *components.Cell, elapsed float64) {
	if i := w.playerIndex(c.Owner); i >= 0 {
		c.SetVelocity(w.players[i].Direction, w.players[i].Speed)
	}

	systems.Integrate(c, elapsed, w.params)
	systems.ApplyFriction(c, elapsed, w.params)
	systems.ClampToBounds(c)

	w.eaten = w.eaten[:0]
	w.scanBodies(c)
	// A wall near the border can push the cell back out of the square.
	systems.ClampToBounds(c)
	w.scanFood(c)
	for _, prey := range w.eaten {
		w.unstore(prey)
	}

	if w.FoodCount() < w.params.FoodFloor {
		n := systems.FoodSpawnCount(elapsed, w.params)
		for i := 0; i < n; i++ {
			w.AddEntity(systems.RandomFood(w.rng))
		}
		if n > 0 {
			w.recorder.RecordFoodSpawned(n)
		}
	}

	systems.Decay(c, elapsed, w.params)
}

// scanBodies lets c eat smaller cells and get pushed out of walls.
func (w *World) scanBodies(c *components.Cell) {
	for _, other := range w.bodies {
		switch v := w.entities[other].(type) {
		case components.Cell:
			if !systems.CanSwallowCell(*c, v, w.params) {
				continue
			}
			systems.EatCell(c, v)
			w.eaten = append(w.eaten, other)
			w.credit(c.Owner, float64(v.Mass))
			w.recorder.RecordCellEaten(c.Owner, v.Owner, v.Mass, c.SameOwner(v))
		case components.Wall:
			systems.RepelFromWall(v, c)
		}
	}
}

// scanFood lets c eat every pellet it touches. The grid is queried again
// while c keeps growing so pellets brought into reach by growth are still found.
func (w *World) scanFood(c *components.Cell) {
	clear(w.checked)
	for {
		radius := c.Radius()
		w.candidates = w.food.QueryRadiusInto(w.candidates[:0], c.Pos, radius+w.food.MaxRadius())
		slices.Sort(w.candidates)

		for _, fid := range w.candidates {
			if _, seen := w.checked[fid]; seen {
				continue
			}
			w.checked[fid] = struct{}{}

			f, ok := w.entities[fid].(components.Food)
			if !ok || !systems.CanSwallowFood(*c, f) {
				continue
			}
			systems.EatFood(c, f)
			w.eaten = append(w.eaten, fid)
			w.credit(c.Owner, float64(f.Mass))
			w.recorder.RecordFoodEaten(c.Owner, f.Mass)
		}

		if c.Radius() <= radius {
			return
		}
	}
}

func (w *World) credit(owner components.ID, mass float64) {
	if i := w.playerIndex(owner); i >= 0 {
		w.players[i].Score += mass
	}
}

// pruneCells removes cells that starved to nothing or whose owner is gone.
func (w *World) pruneCells() {
	for _, id := range w.bodies {
		c, ok := w.entities[id].(components.Cell)
		if !ok {
			continue
		}
		if c.Mass.Dead() || w.playerIndex(c.Owner) < 0 {
			w.unstore(id)
		}
	}
}

// prunePlayers drops players that own no cells.
func (w *World) prunePlayers() {
	owned := make(map[components.ID]int, len(w.players))
	for _, id := range w.bodies {
		if c, ok := w.entities[id].(components.Cell); ok {
			owned[c.Owner]++
		}
	}

	kept := w.players[:0]
	for _, p := range w.players {
		if owned[p.ID] > 0 {
			kept = append(kept, p)
			continue
		}
		w.log.Debug("player pruned", "player", p.ID, "name", p.Name.String(), "score", p.Score)
		w.recorder.RecordPlayerPruned(p.ID)
	}
	clear(w.players[len(kept):])
	w.players = kept
}
