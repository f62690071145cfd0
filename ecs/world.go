package ecs

import "github.com/milk9111/roadrush/ecs/component"

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// World owns entities, component stores, the tick clock, and the event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]storage
	events   EventQueue
	clock    Clock

	destroyHooks []func(Entity)
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]storage)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity runs destroy hooks, strips every component, and invalidates
// the handle. It reports false when the entity was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, hook := range w.destroyHooks {
		hook(e)
	}
	for _, s := range w.stores {
		s.remove(e)
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

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

// OnDestroy registers fn to run before an entity's components are removed.
// Owners of per-entity side tables use it to release their entries.
func (w *World) OnDestroy(fn func(Entity)) {
	if w == nil || fn == nil {
		return
	}
	w.destroyHooks = append(w.destroyHooks, fn)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Clock returns the world's simulation clock.
func (w *World) Clock() *Clock {
	if w == nil {
		return nil
	}
	return &w.clock
}
