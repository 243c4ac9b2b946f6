// Package world owns the simulation state: players, the entity store and
// the per-tick orchestration of the rules in package systems.
//
// A World is not safe for concurrent mutation. Read-only queries may run
// in parallel between ticks.
package world

import (
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/systems"
)

// compactSlack is how many stale ids an order list may carry before compaction.
const compactSlack = 64

// Record pairs an entity with its id.
type Record struct {
	ID     components.ID
	Entity components.Entity
}

// Option configures a World.
type Option func(*World)

// WithRand sets the random source used for spawning. Use a seeded source
// for reproducible runs.
func WithRand(rng *rand.Rand) Option {
	return func(w *World) { w.rng = rng }
}

// WithRecorder attaches an event observer.
func WithRecorder(r Recorder) Option {
	return func(w *World) {
		if r != nil {
			w.recorder = r
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// World is the entity store and simulation orchestrator.
type World struct {
	params   systems.Params
	rng      *rand.Rand
	ids      components.IDAllocator
	log      *slog.Logger
	recorder Recorder

	players  []components.Player
	entities map[components.ID]components.Entity
	counts   [3]int // live entities per components.Kind

	// Insertion-ordered ids. IDs are monotonic so both lists stay sorted.
	// Removed ids linger until compaction; lookups go through entities.
	bodies  []components.ID // cells and walls
	pellets []components.ID // food

	food    *systems.FoodGrid
	ticking bool

	// Scratch buffers reused across ticks.
	tickIDs    []components.ID
	eaten      []components.ID
	candidates []components.ID
	checked    map[components.ID]struct{}
}

// New creates an empty world governed by params.
func New(params systems.Params, opts ...Option) *World {
	w := &World{
		params:   params,
		log:      slog.Default(),
		recorder: nopRecorder{},
		entities: make(map[components.ID]components.Entity),
		food:     systems.NewFoodGrid(params.FoodGridCellSize),
		checked:  make(map[components.ID]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return w
}

// Params returns the rules the world runs with.
func (w *World) Params() systems.Params {
	return w.params
}

// AddEntity stores e under a fresh id and returns the id.
func (w *World) AddEntity(e components.Entity) components.ID {
	id := w.ids.Next()
	w.store(id, e)
	list := w.listFor(e.Kind())
	*list = append(*list, id)
	return id
}

// RemoveEntity deletes and returns the entity stored under id.
func (w *World) RemoveEntity(id components.ID) (components.Entity, bool) {
	e, ok := w.unstore(id)
	if ok && !w.ticking {
		w.compact()
	}
	return e, ok
}

// UpdateEntity replaces the entity stored under id.
// Missing ids are ignored and report false.
func (w *World) UpdateEntity(id components.ID, e components.Entity) bool {
	old, ok := w.unstore(id)
	if !ok {
		return false
	}
	w.store(id, e)

	if isPellet(old.Kind()) != isPellet(e.Kind()) {
		from, to := w.listFor(old.Kind()), w.listFor(e.Kind())
		*from = removeID(*from, id)
		*to = insertID(*to, id)
	}
	return true
}

// store writes e into the map and indexes, without touching order lists.
func (w *World) store(id components.ID, e components.Entity) {
	w.entities[id] = e
	w.counts[e.Kind()]++
	if f, ok := e.(components.Food); ok {
		w.food.Insert(id, f)
	}
}

// unstore removes id from the map and indexes, without touching order lists.
func (w *World) unstore(id components.ID) (components.Entity, bool) {
	e, ok := w.entities[id]
	if !ok {
		return nil, false
	}
	delete(w.entities, id)
	w.counts[e.Kind()]--
	if e.Kind() == components.KindFood {
		w.food.Remove(id)
	}
	return e, true
}

func isPellet(k components.Kind) bool {
	return k == components.KindFood
}

func (w *World) listFor(k components.Kind) *[]components.ID {
	if isPellet(k) {
		return &w.pellets
	}
	return &w.bodies
}

// compact drops stale ids from the order lists once they carry enough dead weight.
func (w *World) compact() {
	liveBodies := w.counts[components.KindCell] + w.counts[components.KindWall]
	if len(w.bodies) > 2*liveBodies+compactSlack {
		w.bodies = w.filterLive(w.bodies, false)
	}
	if len(w.pellets) > 2*w.counts[components.KindFood]+compactSlack {
		w.pellets = w.filterLive(w.pellets, true)
	}
}

func (w *World) filterLive(ids []components.ID, pellets bool) []components.ID {
	kept := ids[:0]
	for _, id := range ids {
		if e, ok := w.entities[id]; ok && isPellet(e.Kind()) == pellets {
			kept = append(kept, id)
		}
	}
	return kept
}

// orderedIDs appends every indexed id in ascending order to dst.
func (w *World) orderedIDs(dst []components.ID) []components.ID {
	a, b := w.bodies, w.pellets
	for len(a) > 0 && len(b) > 0 {
		if a[0] < b[0] {
			dst = append(dst, a[0])
			a = a[1:]
		} else {
			dst = append(dst, b[0])
			b = b[1:]
		}
	}
	dst = append(dst, a...)
	return append(dst, b...)
}

func removeID(ids []components.ID, id components.ID) []components.ID {
	for i, e := range ids {
		if e == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func insertID(ids []components.ID, id components.ID) []components.ID {
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	if i < len(ids) && ids[i] == id {
		return ids
	}
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}
