package world

import "errors"

var (
	// ErrUnknownPlayer is returned when a player id is not registered.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrUnknownEntity is returned when an entity id is not in the store.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrMitosisNoEligibleCells is returned when a mitosis request split nothing.
	ErrMitosisNoEligibleCells = errors.New("mitosis: no eligible cells")
)
