package world

import (
	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/units"
)

// Recorder observes simulation events as they happen. Events name players,
// not cells. Implementations must not call back into the World.
type Recorder interface {
	RecordFoodEaten(owner components.ID, mass units.Mass)
	RecordCellEaten(owner, victim components.ID, mass units.Mass, sameOwner bool)
	RecordFoodSpawned(n int)
	RecordSplit(player components.ID, siblings int)
	RecordPlayerPruned(player components.ID)
}

type nopRecorder struct{}

func (nopRecorder) RecordFoodEaten(components.ID, units.Mass)                      {}
func (nopRecorder) RecordCellEaten(components.ID, components.ID, units.Mass, bool) {}
func (nopRecorder) RecordFoodSpawned(int)                                          {}
func (nopRecorder) RecordSplit(components.ID, int)                                 {}
func (nopRecorder) RecordPlayerPruned(components.ID)                               {}
