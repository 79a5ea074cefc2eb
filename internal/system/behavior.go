package system

import (
	"skirmish/internal/component"
	"skirmish/internal/ecs"
)

// BehaviorValue reads a named counter from id's scratch store; missing
// keys read as zero.
func BehaviorValue(a *Arena, id ecs.EntityID, key string) int {
	bv, ok := ecs.Lookup[component.BehaviorValues](a.World, id)
	if !ok {
		return 0
	}
	return bv.Values[key]
}

// IncrementBehaviorValue adds n to a counter.
func IncrementBehaviorValue(a *Arena, id ecs.EntityID, key string, n int) {
	bv, ok := ecs.Lookup[component.BehaviorValues](a.World, id)
	if !ok {
		return
	}
	if bv.Values == nil {
		bv.Values = make(map[string]int)
	}
	bv.Values[key] += n
	a.World.Add(id, bv)
}

// ReduceBehaviorValue subtracts n from a counter, stopping at zero.
func ReduceBehaviorValue(a *Arena, id ecs.EntityID, key string, n int) {
	bv, ok := ecs.Lookup[component.BehaviorValues](a.World, id)
	if !ok || bv.Values == nil {
		return
	}
	bv.Values[key] = max(0, bv.Values[key]-n)
	a.World.Add(id, bv)
}

// SetBehaviorValue overwrites a counter.
func SetBehaviorValue(a *Arena, id ecs.EntityID, key string, v int) {
	bv, ok := ecs.Lookup[component.BehaviorValues](a.World, id)
	if !ok {
		return
	}
	if bv.Values == nil {
		bv.Values = make(map[string]int)
	}
	bv.Values[key] = v
	a.World.Add(id, bv)
}
