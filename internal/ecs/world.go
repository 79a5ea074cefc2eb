package ecs

import "sort"

// World is the central entity registry and component store.
//
// Deletion is deferred: Delete queues an entity and Maintain removes every
// queued entity at once, so a system iterating a Query result never sees an
// entity half torn down.
type World struct {
	nextID     EntityID
	alive      map[EntityID]bool
	doomed     map[EntityID]bool
	components map[ComponentType]map[EntityID]Component
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		nextID:     1,
		alive:      make(map[EntityID]bool),
		doomed:     make(map[EntityID]bool),
		components: make(map[ComponentType]map[EntityID]Component),
	}
}

// CreateEntity mints a new entity ID and marks it alive.
func (w *World) CreateEntity(components ...Component) EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = true
	for _, c := range components {
		w.Add(id, c)
	}
	return id
}

// Delete queues the entity for removal at the next Maintain.
func (w *World) Delete(id EntityID) {
	if w.alive[id] {
		w.doomed[id] = true
	}
}

// Doomed reports whether the entity is queued for deletion.
func (w *World) Doomed(id EntityID) bool {
	return w.doomed[id]
}

// Maintain removes every queued entity and all its components.
// It returns the number of entities removed.
func (w *World) Maintain() int {
	n := 0
	for id := range w.doomed {
		w.destroy(id)
		n++
	}
	clear(w.doomed)
	return n
}

func (w *World) destroy(id EntityID) {
	delete(w.alive, id)
	for _, store := range w.components {
		delete(store, id)
	}
}

// Alive reports whether the entity exists. Doomed entities stay alive
// until Maintain.
func (w *World) Alive(id EntityID) bool {
	return w.alive[id]
}

// Add attaches (or replaces) a component on an entity.
func (w *World) Add(id EntityID, c Component) {
	if !w.alive[id] {
		return
	}
	t := c.Type()
	if w.components[t] == nil {
		w.components[t] = make(map[EntityID]Component)
	}
	w.components[t][id] = c
}

// Get returns the component of the given type for entity id, or nil.
func (w *World) Get(id EntityID, t ComponentType) Component {
	store := w.components[t]
	if store == nil {
		return nil
	}
	return store[id]
}

// Remove detaches a component from an entity.
func (w *World) Remove(id EntityID, t ComponentType) {
	if store := w.components[t]; store != nil {
		delete(store, id)
	}
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id EntityID, t ComponentType) bool {
	return w.Get(id, t) != nil
}

// Query returns all alive entities that have every listed component type,
// in ascending ID (creation) order.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	// Use the smallest store as the candidate set.
	smallest := types[0]
	for _, t := range types[1:] {
		if len(w.components[t]) < len(w.components[smallest]) {
			smallest = t
		}
	}
	store := w.components[smallest]
	if store == nil {
		return nil
	}
	var result []EntityID
	for id := range store {
		if !w.alive[id] {
			continue
		}
		match := true
		for _, t := range types {
			if t == smallest {
				continue
			}
			if !w.Has(id, t) {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Entities lists every alive entity in ascending ID order.
func (w *World) Entities() []EntityID {
	ids := make([]EntityID, 0, len(w.alive))
	for id := range w.alive {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Lookup fetches the T component of id, if present.
func Lookup[T Component](w *World, id EntityID) (T, bool) {
	var zero T
	c, ok := w.Get(id, zero.Type()).(T)
	return c, ok
}

// Grab fetches the T component of id and panics when it is missing.
// Use it only where the entity's construction guarantees the component.
func Grab[T Component](w *World, id EntityID) T {
	c, ok := Lookup[T](w, id)
	if !ok {
		var zero T
		panic(&MissingComponentError{Entity: id, Type: zero.Type()})
	}
	return c
}
