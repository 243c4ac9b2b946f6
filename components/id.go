// Package components defines the entity and player types stored by the world.
package components

import "sync/atomic"

// ID identifies a player or entity for the lifetime of the process.
type ID uint32

// NoID is the zero ID. It is never allocated and marks an unowned cell.
const NoID ID = 0

// IDAllocator hands out unique, monotonically increasing IDs.
// Safe for concurrent use.
type IDAllocator struct {
	last atomic.Uint32
}

// Next returns a fresh ID.
func (a *IDAllocator) Next() ID {
	return ID(a.last.Add(1))
}

// Last returns the most recently allocated ID, or NoID.
func (a *IDAllocator) Last() ID {
	return ID(a.last.Load())
}
