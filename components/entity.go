package components

import "github.com/pthm-cable/microbiome/units"

// Kind distinguishes entity variants.
type Kind uint8

const (
	KindCell Kind = iota
	KindFood
	KindWall
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindCell:
		return "cell"
	case KindFood:
		return "food"
	case KindWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Entity is one of Cell, Food or Wall.
// The set is closed: consumers switch on the concrete type.
type Entity interface {
	Kind() Kind
	Position() units.Position
	Radius() float64
	isEntity()
}

// Cell is a player-owned body that moves, eats, decays and splits.
type Cell struct {
	Mass      units.Mass
	Pos       units.Position
	Direction units.Direction
	Speed     units.Speed
	Owner     ID      // NoID when unowned
	Age       float64 // seconds since spawn or last split
}

// DefaultCellMass is the mass a freshly spawned player cell starts with.
var DefaultCellMass = units.DefaultMass.Scale(10)

// NewCell returns a cell of age zero.
func NewCell(mass units.Mass, pos units.Position, dir units.Direction, speed units.Speed, owner ID) Cell {
	return Cell{Mass: mass, Pos: pos, Direction: dir, Speed: speed, Owner: owner}
}

func (Cell) Kind() Kind                 { return KindCell }
func (c Cell) Position() units.Position { return c.Pos }
func (c Cell) Radius() float64          { return c.Mass.Radius() }
func (Cell) isEntity()                  {}

// Area returns the cell's area.
func (c Cell) Area() float64 { return c.Mass.Area() }

// HasOwner reports whether the cell belongs to a player.
func (c Cell) HasOwner() bool { return c.Owner != NoID }

// SameOwner reports whether both cells belong to the same player.
// Two unowned cells count as the same owner.
func (c Cell) SameOwner(o Cell) bool { return c.Owner == o.Owner }

// SetVelocity replaces the cell's heading and speed.
func (c *Cell) SetVelocity(dir units.Direction, speed units.Speed) {
	c.Direction = dir
	c.Speed = speed
}

// Food is a static pellet that slowly grows until eaten.
type Food struct {
	Mass units.Mass
	Pos  units.Position
}

// NewFood returns a food pellet.
func NewFood(mass units.Mass, pos units.Position) Food {
	return Food{Mass: mass, Pos: pos}
}

func (Food) Kind() Kind                 { return KindFood }
func (f Food) Position() units.Position { return f.Pos }
func (f Food) Radius() float64          { return f.Mass.Radius() }
func (Food) isEntity()                  {}

// Wall is an immovable circular obstacle.
type Wall struct {
	Pos units.Position
	R   float64
}

// NewWall returns a wall.
func NewWall(pos units.Position, radius float64) Wall {
	return Wall{Pos: pos, R: radius}
}

func (Wall) Kind() Kind                 { return KindWall }
func (w Wall) Position() units.Position { return w.Pos }
func (w Wall) Radius() float64          { return w.R }
func (Wall) isEntity()                  {}
