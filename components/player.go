package components

import (
	"strings"

	"github.com/pthm-cable/microbiome/units"
)

// NameLength is the fixed size of a player name buffer.
const NameLength = 32

// PlayerName is a fixed-length name buffer. Unused slots are zero.
type PlayerName [NameLength]rune

// NewPlayerName copies s into a name buffer, truncating past NameLength runes.
func NewPlayerName(s string) PlayerName {
	var n PlayerName
	i := 0
	for _, r := range s {
		if i == NameLength {
			break
		}
		n[i] = r
		i++
	}
	return n
}

// String returns the name without trailing padding.
func (n PlayerName) String() string {
	var b strings.Builder
	for _, r := range n {
		if r == 0 {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Player is a competing organism. It owns cells indirectly: each Cell
// records its owner's ID.
type Player struct {
	Name      PlayerName
	ID        ID
	Score     float64 // total mass eaten by the player's cells
	Color     units.Color
	Direction units.Direction
	Speed     units.Speed
}

// NewPlayer returns a player with the given control state.
func NewPlayer(name PlayerName, id ID, color units.Color, dir units.Direction, speed units.Speed) Player {
	return Player{Name: name, ID: id, Color: color, Direction: dir, Speed: speed}
}

// SetVelocity replaces the player's control state.
func (p *Player) SetVelocity(dir units.Direction, speed units.Speed) {
	p.Direction = dir
	p.Speed = speed
}
