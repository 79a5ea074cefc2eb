package system

import (
	"errors"
	"fmt"

	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/status"
)

// BaseActionCost is the tick price of an ordinary action.
const BaseActionCost = 100

const (
	// ExhaustionRecovery is shed every RecoveryTicks.
	ExhaustionRecovery = 10
	RecoveryTicks      = 100
)

// ErrNotEnoughTime is returned when an entity tries to spend ticks it has
// not banked.
var ErrNotEnoughTime = errors.New("system: not enough time")

// AddTicks advances the clock by n for every scheduled entity. Frozen
// entities bank half, rounded up. Statuses, temperatures and exhaustion move
// with the clock.
func AddTicks(a *Arena, n int) {
	if n <= 0 {
		return
	}
	for _, id := range a.World.Query(component.CTime) {
		t := ecs.Grab[component.Time](a.World, id)
		gain := n
		if st, ok := ecs.Lookup[component.Statuses](a.World, id); ok && st.IsTrait(status.Frozen) {
			gain = (n + 1) / 2
		}
		t.Ticks += gain
		a.World.Add(id, t)
	}
	tickStatuses(a, n)
	tickTemperatures(a, n)
	recoverResources(a, n)
}

// NextActor returns the live entity with the most banked ticks. Ties go to
// the lowest entity id.
func NextActor(a *Arena) (ecs.EntityID, bool) {
	best := ecs.NilEntity
	bestTicks := 0
	for _, id := range a.World.Query(component.CTime) {
		if a.World.Doomed(id) {
			continue
		}
		t := ecs.Grab[component.Time](a.World, id)
		if best == ecs.NilEntity || t.Ticks > bestTicks {
			best, bestTicks = id, t.Ticks
		}
	}
	return best, best != ecs.NilEntity
}

// Ticks returns the banked ticks of id.
func Ticks(a *Arena, id ecs.EntityID) int {
	return ecs.Grab[component.Time](a.World, id).Ticks
}

// SpendTime subtracts cost from id's balance. It refuses to go negative.
func SpendTime(a *Arena, id ecs.EntityID, cost int) error {
	t, ok := ecs.Lookup[component.Time](a.World, id)
	if !ok {
		return fmt.Errorf("%w: entity %d is not scheduled", ErrNotEnoughTime, id)
	}
	if t.Ticks < cost {
		return fmt.Errorf("%w: entity %d has %d ticks, needs %d", ErrNotEnoughTime, id, t.Ticks, cost)
	}
	t.Ticks -= cost
	a.World.Add(id, t)
	return nil
}

// WaitForNext advances the clock until the next actor can afford
// BaseActionCost and returns it.
func WaitForNext(a *Arena) (ecs.EntityID, bool) {
	for {
		id, ok := NextActor(a)
		if !ok {
			return ecs.NilEntity, false
		}
		ticks := Ticks(a, id)
		if ticks >= BaseActionCost {
			return id, true
		}
		AddTicks(a, BaseActionCost-ticks)
	}
}

func recoverResources(a *Arena, n int) {
	for _, id := range a.World.Query(component.CResources) {
		res := ecs.Grab[component.Resources](a.World, id)
		res.Elapsed += n
		for res.Elapsed >= RecoveryTicks {
			res.Elapsed -= RecoveryTicks
			res.Exhaustion = max(0, res.Exhaustion-ExhaustionRecovery)
		}
		a.World.Add(id, res)
	}
}
