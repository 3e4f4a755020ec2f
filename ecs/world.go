package ecs

import (
	"time"

	"github.com/milk9111/folio/ecs/component"
)

// World owns entities, their components, the event queue and the frame clock.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
	clock    Clock
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Clock returns the frame clock.
func (w *World) Clock() *Clock {
	if w == nil {
		return nil
	}
	return &w.clock
}

// Now is shorthand for the current frame time.
func (w *World) Now() time.Time {
	if w == nil {
		return time.Time{}
	}
	return w.clock.Now
}

// entityOf rebuilds a full handle from a bare id.
func (w *World) entityOf(id entityID) Entity {
	if id == 0 || int(id) > len(w.entities.gen) {
		return 0
	}
	return makeEntity(id, w.entities.gen[id-1])
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]store)
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		set := newSparseSet[T]()
		w.stores[kind.ID()] = set
		return set
	}
	typed, ok := s.(*sparseSet[T])
	if !ok {
		return nil
	}
	return typed
}
