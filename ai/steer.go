// Package ai steers computer-controlled players.
//
// Steering is a pure function of a read-only View of the world, so many
// agents can be steered concurrently and the results applied afterwards
// in a fixed order.
package ai

import (
	"math"

	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/config"
	"github.com/pthm-cable/microbiome/systems"
	"github.com/pthm-cable/microbiome/units"
	"github.com/pthm-cable/microbiome/world"
)

// Target is a snapshot of one entity as seen by the steering code.
type Target struct {
	Pos    units.Position
	Radius float64
	Area   float64
	Owner  components.ID
	Kind   components.Kind
}

// View is a read-only snapshot of the entities agents react to.
type View struct {
	Food   []Target
	Bodies []Target // cells and walls
}

// NewView snapshots w.
func NewView(w *world.World) *View {
	v := &View{}
	for _, rec := range w.Entities() {
		t := Target{
			Pos:    rec.Entity.Position(),
			Radius: rec.Entity.Radius(),
			Kind:   rec.Entity.Kind(),
		}
		t.Area = math.Pi * t.Radius * t.Radius
		switch e := rec.Entity.(type) {
		case components.Food:
			v.Food = append(v.Food, t)
			continue
		case components.Cell:
			t.Owner = e.Owner
		}
		v.Bodies = append(v.Bodies, t)
	}
	return v
}

// Agent summarizes one player's cells.
type Agent struct {
	ID       components.ID
	Centre   units.Position
	Smallest float64 // area of the smallest owned cell
	Largest  float64 // area of the largest owned cell
	Reach    float64 // radius of the largest owned cell
	Cells    int
}

// NewAgent summarizes the cells player owns in w. It reports false when
// the player owns no cells.
func NewAgent(w *world.World, player components.ID) (Agent, bool) {
	cells := w.PlayerCells(player)
	if len(cells) == 0 {
		return Agent{}, false
	}
	a := Agent{
		ID:       player,
		Centre:   w.CameraPosition(player),
		Smallest: math.Inf(1),
		Cells:    len(cells),
	}
	for _, c := range cells {
		area := c.Area()
		a.Smallest = math.Min(a.Smallest, area)
		if area > a.Largest {
			a.Largest = area
			a.Reach = c.Radius()
		}
	}
	return a, true
}

// Intent is the steering decision for one agent.
type Intent struct {
	Player    components.ID
	Direction units.Direction
	Speed     units.Speed
	Split     bool // prey is within lunge distance and nothing threatens
	Idle      bool // nothing in sight; keep the current controls
}

// Params tunes steering.
type Params struct {
	SightRadius  float64
	MaxSpeed     units.Speed
	SizeRatio    float64 // must match the feeding rule
	PreyWeight   float64
	ThreatWeight float64
	WallWeight   float64
	BorderMargin float64
	SplitReach   float64 // lunge distance in radii of the largest cell
}

// DefaultParams returns the standard steering weights for the given rules.
func DefaultParams(p systems.Params) Params {
	return Params{
		SightRadius:  0.35,
		MaxSpeed:     units.DefaultSpeed,
		SizeRatio:    p.SizeRatio,
		PreyWeight:   4,
		ThreatWeight: 8,
		WallWeight:   2,
		BorderMargin: 0.1,
		SplitReach:   6,
	}
}

// ParamsFromConfig builds steering parameters from the ai config section.
func ParamsFromConfig(c config.AIConfig, p systems.Params) Params {
	return Params{
		SightRadius:  c.SightRadius,
		MaxSpeed:     units.DefaultSpeed,
		SizeRatio:    p.SizeRatio,
		PreyWeight:   c.PreyWeight,
		ThreatWeight: c.ThreatWeight,
		WallWeight:   c.WallWeight,
		BorderMargin: c.BorderMargin,
		SplitReach:   c.SplitReach,
	}
}

// Steer computes the intent for a. Food and smaller foreign cells attract
// with weight area/d², larger foreign cells and walls repel, and the world
// border pushes inwards within BorderMargin.
func Steer(v *View, a Agent, p Params) Intent {
	var fx, fy float64
	pull := func(t Target, weight float64) {
		dx, dy := t.Pos.X-a.Centre.X, t.Pos.Y-a.Centre.Y
		d2 := dx*dx + dy*dy
		if d2 == 0 {
			return
		}
		d := math.Sqrt(d2)
		w := weight * t.Area / d2
		fx += w * dx / d
		fy += w * dy / d
	}
	sight2 := p.SightRadius * p.SightRadius
	inSight := func(t Target) bool {
		dx, dy := t.Pos.X-a.Centre.X, t.Pos.Y-a.Centre.Y
		return dx*dx+dy*dy <= sight2
	}

	seen := false
	for _, f := range v.Food {
		if inSight(f) {
			pull(f, 1)
			seen = true
		}
	}

	threatened := false
	preyNear := false
	for _, b := range v.Bodies {
		if !inSight(b) {
			continue
		}
		switch {
		case b.Kind == components.KindWall:
			pull(b, -p.WallWeight)
		case b.Owner == a.ID:
		case b.Area*p.SizeRatio < a.Largest:
			pull(b, p.PreyWeight)
			seen = true
			if a.Centre.Distance(b.Pos) <= a.Reach*p.SplitReach {
				preyNear = true
			}
		case b.Area > a.Smallest*p.SizeRatio:
			pull(b, -p.ThreatWeight)
			seen = true
			threatened = true
		}
	}

	// Border push uses the agent's own area so it scales with the other terms.
	border := func(dist float64) float64 {
		if dist >= p.BorderMargin {
			return 0
		}
		dist = math.Max(dist, 1e-3)
		return p.ThreatWeight * a.Largest / (dist * dist)
	}
	fx += border(a.Centre.X-systems.WorldMin) - border(systems.WorldMax-a.Centre.X)
	fy += border(a.Centre.Y-systems.WorldMin) - border(systems.WorldMax-a.Centre.Y)

	if !seen && fx == 0 && fy == 0 {
		return Intent{Player: a.ID, Idle: true}
	}
	return Intent{
		Player:    a.ID,
		Direction: units.DirectionFromVector(fx, fy),
		Speed:     p.MaxSpeed,
		Split:     preyNear && !threatened,
	}
}
