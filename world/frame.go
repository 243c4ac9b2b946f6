package world

import (
	"sort"

	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/units"
)

// Display colours for entities without an owner.
var (
	FoodColor = units.RGB(0.55, 0.85, 0.35)
	WallColor = units.RGB(0.35, 0.35, 0.4)
)

// Census summarises world population for telemetry.
type Census struct {
	Players    int
	Cells      int
	Food       int
	Walls      int
	CellMass   float64
	FoodMass   float64
	CellMasses []float64 // one entry per cell, id order
}

// Census counts entities and their mass.
func (w *World) Census() Census {
	c := Census{
		Players:    len(w.players),
		Cells:      w.counts[components.KindCell],
		Food:       w.counts[components.KindFood],
		Walls:      w.counts[components.KindWall],
		CellMasses: make([]float64, 0, w.counts[components.KindCell]),
	}
	for _, id := range w.bodies {
		if cell, ok := w.entities[id].(components.Cell); ok {
			c.CellMass += float64(cell.Mass)
			c.CellMasses = append(c.CellMasses, float64(cell.Mass))
		}
	}
	for _, id := range w.pellets {
		if f, ok := w.entities[id].(components.Food); ok {
			c.FoodMass += float64(f.Mass)
		}
	}
	return c
}

// Standing is a player's leaderboard entry.
type Standing struct {
	Player components.Player
	Mass   float64 // total mass of owned cells
	Cells  int
}

// Leaderboard returns up to n players ranked by total cell mass, ties broken
// by lower id. n <= 0 returns every player.
func (w *World) Leaderboard(n int) []Standing {
	byOwner := make(map[components.ID]*Standing, len(w.players))
	out := make([]Standing, len(w.players))
	for i, p := range w.players {
		out[i].Player = p
		byOwner[p.ID] = &out[i]
	}
	for _, id := range w.bodies {
		c, ok := w.entities[id].(components.Cell)
		if !ok {
			continue
		}
		if s := byOwner[c.Owner]; s != nil {
			s.Mass += float64(c.Mass)
			s.Cells++
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Mass != out[j].Mass {
			return out[i].Mass > out[j].Mass
		}
		return out[i].Player.ID < out[j].Player.ID
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// FrameEntity is the render view of one entity.
type FrameEntity struct {
	ID     components.ID   `msgpack:"id"`
	Kind   components.Kind `msgpack:"kind"`
	X      float64         `msgpack:"x"`
	Y      float64         `msgpack:"y"`
	Radius float64         `msgpack:"r"`
	Owner  components.ID   `msgpack:"owner,omitempty"`
	Color  units.Color     `msgpack:"color"`
}

// FramePlayer is the render view of one player.
type FramePlayer struct {
	ID    components.ID `msgpack:"id"`
	Name  string        `msgpack:"name"`
	Score float64       `msgpack:"score"`
	Color units.Color   `msgpack:"color"`
}

// Frame is a self-contained snapshot of everything a renderer draws.
type Frame struct {
	Players  []FramePlayer `msgpack:"players"`
	Entities []FrameEntity `msgpack:"entities"`
}

// Frame captures the world for drawing or export. Cells take their owner's
// colour.
func (w *World) Frame() Frame {
	colors := make(map[components.ID]units.Color, len(w.players))
	f := Frame{
		Players:  make([]FramePlayer, len(w.players)),
		Entities: make([]FrameEntity, 0, len(w.entities)),
	}
	for i, p := range w.players {
		colors[p.ID] = p.Color
		f.Players[i] = FramePlayer{ID: p.ID, Name: p.Name.String(), Score: p.Score, Color: p.Color}
	}

	for _, rec := range w.Entities() {
		pos := rec.Entity.Position()
		fe := FrameEntity{
			ID:     rec.ID,
			Kind:   rec.Entity.Kind(),
			X:      pos.X,
			Y:      pos.Y,
			Radius: rec.Entity.Radius(),
		}
		switch v := rec.Entity.(type) {
		case components.Cell:
			fe.Owner = v.Owner
			fe.Color = colors[v.Owner]
		case components.Food:
			fe.Color = FoodColor
		case components.Wall:
			fe.Color = WallColor
		}
		f.Entities = append(f.Entities, fe)
	}
	return f
}
