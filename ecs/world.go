package ecs

import (
	"go.uber.org/zap"

	"github.com/milk9111/hollowblade/common"
	"github.com/milk9111/hollowblade/ecs/component"
)

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// World owns entities, component stores and the per-world resources systems
// share: the game clock, the random source, the logger and the event bus.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet

	clock  Clock
	rand   common.Rand
	logger *zap.Logger
	events EventBus
}

// Option configures a World at construction.
type Option func(w *World)

// WithRand sets the random source used for crit, evasion and spawn jitter.
func WithRand(r common.Rand) Option {
	return func(w *World) {
		if r != nil {
			w.rand = r
		}
	}
}

// WithLogger sets the world logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWorld creates an empty ECS world.
func NewWorld(opts ...Option) *World {
	w := &World{
		stores: make(map[component.ComponentID]*SparseSet),
		rand:   common.NewRand(1),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e, tears down the event
// subscriptions e owns and invalidates the handle.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	w.events.unsubscribeOwner(e)
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}

func (w *World) DestroyEntity(e Entity) bool {
	return DestroyEntity(w, e)
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// Query returns the live entities that have every given component kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	// iterate the smallest set
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	var out []Entity
	for _, e := range smallest.Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		match := true
		for _, s := range sets {
			if !s.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity having the component kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(kind.ID(), false)
	for _, e := range s.Entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// Now returns the monotonic game time in seconds.
func (w *World) Now() float64 {
	if w == nil {
		return 0
	}
	return w.clock.Now()
}

// Delta returns the length of the current tick in seconds.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.clock.Delta()
}

// Clock exposes the world clock for the scheduler and tests.
func (w *World) Clock() *Clock {
	if w == nil {
		return nil
	}
	return &w.clock
}

// Rand returns the world random source.
func (w *World) Rand() common.Rand {
	if w == nil {
		return nil
	}
	return w.rand
}

// Logger returns the world logger; never nil for a constructed world.
func (w *World) Logger() *zap.Logger {
	if w == nil || w.logger == nil {
		return zap.NewNop()
	}
	return w.logger
}

// Events returns the world event bus.
func (w *World) Events() *EventBus {
	if w == nil {
		return nil
	}
	return &w.events
}
