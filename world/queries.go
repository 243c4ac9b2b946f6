package world

import (
	"fmt"
	"math"

	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/systems"
	"github.com/pthm-cable/microbiome/units"
)

// CreatePlayer registers a player and spawns its first cell at a random
// position. The player starts with a random heading and speed; the cell
// starts at rest until the next tick refreshes its controls.
func (w *World) CreatePlayer(name string, color units.Color) components.Player {
	id := w.ids.Next()
	speed := units.DefaultSpeed.Scale(systems.Uniform(w.rng))
	player := components.NewPlayer(components.NewPlayerName(name), id, color, w.randomDirection(), speed)
	w.players = append(w.players, player)

	cell := components.NewCell(components.DefaultCellMass, systems.RandomPosition(w.rng), w.randomDirection(), 0, id)
	w.AddEntity(cell)
	return player
}

func (w *World) randomDirection() units.Direction {
	return units.DirectionFromRadians(w.rng.Float64() * 2 * math.Pi)
}

// Players returns a copy of the registry in creation order.
func (w *World) Players() []components.Player {
	out := make([]components.Player, len(w.players))
	copy(out, w.players)
	return out
}

// Player returns the player registered under id.
func (w *World) Player(id components.ID) (components.Player, bool) {
	if i := w.playerIndex(id); i >= 0 {
		return w.players[i], true
	}
	return components.Player{}, false
}

// LookupPlayer is Player with an error for unknown ids.
func (w *World) LookupPlayer(id components.ID) (components.Player, error) {
	p, ok := w.Player(id)
	if !ok {
		return p, fmt.Errorf("player %d: %w", id, ErrUnknownPlayer)
	}
	return p, nil
}

func (w *World) playerIndex(id components.ID) int {
	for i := range w.players {
		if w.players[i].ID == id {
			return i
		}
	}
	return -1
}

// Cells returns every cell in id order.
func (w *World) Cells() []components.Cell {
	out := make([]components.Cell, 0, w.counts[components.KindCell])
	for _, id := range w.bodies {
		if c, ok := w.entities[id].(components.Cell); ok {
			out = append(out, c)
		}
	}
	return out
}

// PlayerCells returns the cells owned by the player, in id order.
// Unknown players own nothing.
func (w *World) PlayerCells(id components.ID) []components.Cell {
	var out []components.Cell
	for _, rec := range w.PlayerRecords(id) {
		out = append(out, rec.Entity.(components.Cell))
	}
	return out
}

// PlayerRecords returns the player's cells with their ids, in id order.
func (w *World) PlayerRecords(owner components.ID) []Record {
	var out []Record
	for _, id := range w.bodies {
		if c, ok := w.entities[id].(components.Cell); ok && c.Owner == owner {
			out = append(out, Record{ID: id, Entity: c})
		}
	}
	return out
}

// Entities returns every entity with its id, in id order.
func (w *World) Entities() []Record {
	ids := w.orderedIDs(make([]components.ID, 0, len(w.bodies)+len(w.pellets)))
	out := make([]Record, 0, len(w.entities))
	for _, id := range ids {
		if e, ok := w.entities[id]; ok {
			out = append(out, Record{ID: id, Entity: e})
		}
	}
	return out
}

// Entity returns the entity stored under id.
func (w *World) Entity(id components.ID) (components.Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// LookupEntity is Entity with an error for unknown ids.
func (w *World) LookupEntity(id components.ID) (components.Entity, error) {
	e, ok := w.entities[id]
	if !ok {
		return nil, fmt.Errorf("entity %d: %w", id, ErrUnknownEntity)
	}
	return e, nil
}

// FoodCount returns the number of food pellets.
func (w *World) FoodCount() int {
	return w.counts[components.KindFood]
}

// CellCount returns the number of live cells.
func (w *World) CellCount() int {
	return w.counts[components.KindCell]
}

// Len returns the number of stored entities.
func (w *World) Len() int {
	return len(w.entities)
}

// CameraPosition returns the area-weighted centroid of the player's cells,
// or the origin when it owns none.
func (w *World) CameraPosition(player components.ID) units.Position {
	var sum units.Position
	var area float64
	for _, id := range w.bodies {
		c, ok := w.entities[id].(components.Cell)
		if !ok || c.Owner != player {
			continue
		}
		a := c.Area()
		sum = sum.Add(c.Pos.Scale(a))
		area += a
	}
	if area <= 0 {
		return units.Position{}
	}
	return sum.Scale(1 / area)
}

// SetControls sets the player's heading and speed and applies them to
// every cell it owns.
func (w *World) SetControls(id components.ID, dir units.Direction, speed units.Speed) error {
	i := w.playerIndex(id)
	if i < 0 {
		return fmt.Errorf("set controls for player %d: %w", id, ErrUnknownPlayer)
	}
	w.players[i].SetVelocity(dir, speed)

	for _, rec := range w.PlayerRecords(id) {
		c := rec.Entity.(components.Cell)
		c.SetVelocity(dir, speed)
		w.UpdateEntity(rec.ID, c)
	}
	return nil
}
