package world

import (
	"fmt"

	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/systems"
)

// Mitosis splits the player's largest mature cells in two.
// It returns the number of new cells, or ErrMitosisNoEligibleCells when no
// cell was old enough. Either error leaves the world unchanged.
func (w *World) Mitosis(player components.ID) (int, error) {
	if w.playerIndex(player) < 0 {
		return 0, fmt.Errorf("mitosis for player %d: %w", player, ErrUnknownPlayer)
	}

	records := w.PlayerRecords(player)
	cells := make([]components.Cell, len(records))
	for i, rec := range records {
		cells[i] = rec.Entity.(components.Cell)
	}

	siblings := make([]components.Cell, 0, len(cells))
	for _, idx := range systems.PlanMitosis(cells, w.params) {
		if len(siblings) == w.params.MaxSiblings {
			break
		}
		c := cells[idx]
		sibling := systems.Split(&c, w.params)
		if sibling.Area() <= 0 {
			continue
		}
		w.UpdateEntity(records[idx].ID, c)
		siblings = append(siblings, sibling)
	}

	if len(siblings) == 0 {
		return 0, fmt.Errorf("mitosis for player %d: %w", player, ErrMitosisNoEligibleCells)
	}
	for _, s := range siblings {
		w.AddEntity(s)
	}
	w.recorder.RecordSplit(player, len(siblings))
	return len(siblings), nil
}
