package system

import (
	"fmt"

	"skirmish/internal/combat"
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/event"
	"skirmish/internal/geom"
	"skirmish/internal/status"
)

const (
	// ArmoredBonus is the armor the armored status grants.
	ArmoredBonus = 2
	// RegenInterval is the tick period of regeneration.
	RegenInterval = 100
	// RegenAmount is the health each regeneration pulse restores.
	RegenAmount = 2
	// ChargeDuration is how long a static charge lingers.
	ChargeDuration = 300
	// AimedDuration is how long an aimed shot's steadiness lasts.
	AimedDuration = 300
	// AimedBonusDice is added to the next bolt of an aimed character.
	AimedBonusDice = 2
	// AgitatedBonusDice is added to melee hits of an agitated character.
	AgitatedBonusDice = 2
	// DodgeRegen is the dodge regained at the start of each turn.
	DodgeRegen = 1
)

// AddStatus applies a timed status to id. StatusAdded is raised only when
// the status is new; re-applying just extends it.
func AddStatus(a *Arena, id ecs.EntityID, k status.Kind, duration int) error {
	st, ok := ecs.Lookup[component.Statuses](a.World, id)
	if !ok {
		return nil
	}
	added, err := st.Add(k, duration)
	if err != nil {
		return fmt.Errorf("entity %d: %w", id, err)
	}
	a.World.Add(id, st)
	if added {
		a.Events.Raise(event.Event{Kind: event.StatusAdded, Target: id, Status: k})
	}
	return nil
}

// AddTrait sets a permanent trait on id.
func AddTrait(a *Arena, id ecs.EntityID, k status.Kind) error {
	st, ok := ecs.Lookup[component.Statuses](a.World, id)
	if !ok {
		return nil
	}
	added, err := st.AddTrait(k)
	if err != nil {
		return fmt.Errorf("entity %d: %w", id, err)
	}
	a.World.Add(id, st)
	if added {
		a.Events.Raise(event.Event{Kind: event.StatusAdded, Target: id, Status: k})
	}
	return nil
}

// RemoveStatus drops a status or trait early.
func RemoveStatus(a *Arena, id ecs.EntityID, k status.Kind) {
	st, ok := ecs.Lookup[component.Statuses](a.World, id)
	if !ok || !st.Remove(k) {
		return
	}
	a.World.Add(id, st)
	a.Events.Raise(event.Event{Kind: event.StatusRemoved, Target: id, Status: k})
}

// HasStatus reports whether id carries k.
func HasStatus(a *Arena, id ecs.EntityID, k status.Kind) bool {
	st, ok := ecs.Lookup[component.Statuses](a.World, id)
	return ok && st.Has(k)
}

func tickStatuses(a *Arena, n int) {
	for _, id := range a.World.Query(component.CStatuses) {
		st := ecs.Grab[component.Statuses](a.World, id)
		expired := st.Tick(n)
		a.World.Add(id, st)
		for _, k := range expired {
			a.Events.Raise(event.Event{Kind: event.StatusExpired, Target: id, Status: k})
		}
	}
}

// StatusHandler applies the side effects of statuses starting and ending.
func StatusHandler(a *Arena) event.Handler {
	return func(e event.Event) {
		if !a.World.Alive(e.Target) {
			return
		}
		switch e.Kind {
		case event.StatusAdded:
			startStatus(a, e.Target, e.Status)
		case event.StatusExpired:
			endStatus(a, e.Target, e.Status, true)
		case event.StatusRemoved:
			endStatus(a, e.Target, e.Status, false)
		case event.TurnStarted:
			if HasStatus(a, e.Target, status.Burning) {
				pos, ok := Position(a, e.Target)
				if ok {
					ApplyDamage(a, e.Target, Hit{Source: pos.Origin, Strength: combat.BurnDamage})
				}
			}
		}
	}
}

func startStatus(a *Arena, id ecs.EntityID, k status.Kind) {
	switch k {
	case status.Flying:
		TakeOff(a, id)
	case status.Armored:
		if def, ok := ecs.Lookup[component.Defenses](a.World, id); ok {
			def.Armor += ArmoredBonus
			a.World.Add(id, def)
		}
	case status.Regen:
		if !HasStatus(a, id, status.RegenTick) {
			AddStatus(a, id, status.RegenTick, RegenInterval) //nolint:errcheck // regen-tick is never a trait
		}
	}
}

func endStatus(a *Arena, id ecs.EntityID, k status.Kind, expired bool) {
	switch k {
	case status.Flying:
		Land(a, id)
	case status.Armored:
		if def, ok := ecs.Lookup[component.Defenses](a.World, id); ok {
			def.Armor = max(0, def.Armor-ArmoredBonus)
			a.World.Add(id, def)
		}
	case status.RegenTick:
		if !expired {
			return
		}
		if def, ok := ecs.Lookup[component.Defenses](a.World, id); ok {
			def.Heal(RegenAmount)
			a.World.Add(id, def)
		}
		if HasStatus(a, id, status.Regen) {
			AddStatus(a, id, status.RegenTick, RegenInterval) //nolint:errcheck
		}
	}
}

// StartTurn runs the start-of-turn upkeep for id: dodge recovers and
// TurnStarted is raised so burning and similar effects can bite.
func StartTurn(a *Arena, id ecs.EntityID) {
	if def, ok := ecs.Lookup[component.Defenses](a.World, id); ok {
		def.RegainDodge(DodgeRegen)
		a.World.Add(id, def)
	}
	a.Events.RaiseKind(event.TurnStarted, id)
}

// ChangeTemperature heats (positive delta) or cools id and keeps the
// burning and frozen traits in step.
func ChangeTemperature(a *Arena, id ecs.EntityID, delta int) {
	temp, ok := ecs.Lookup[component.Temperature](a.World, id)
	if !ok || delta == 0 {
		return
	}
	temp.Change(delta)
	a.World.Add(id, temp)
	syncTemperature(a, id, temp.Temperature)
}

func tickTemperatures(a *Arena, n int) {
	for _, id := range a.World.Query(component.CTemperature) {
		temp := ecs.Grab[component.Temperature](a.World, id)
		temp.Tick(n)
		a.World.Add(id, temp)
		syncTemperature(a, id, temp.Temperature)
	}
}

func syncTemperature(a *Arena, id ecs.EntityID, t combat.Temperature) {
	syncTrait(a, id, status.Burning, t.Burning())
	syncTrait(a, id, status.Frozen, t.Frozen())
}

func syncTrait(a *Arena, id ecs.EntityID, k status.Kind, on bool) {
	has := HasStatus(a, id, k)
	switch {
	case on && !has:
		AddTrait(a, id, k) //nolint:errcheck // temperature traits are never timed
	case !on && has:
		RemoveStatus(a, id, k)
	}
}

// TakeOff lifts id off the map, remembering where it stood.
func TakeOff(a *Arena, id ecs.EntityID) {
	pos, ok := Position(a, id)
	if !ok {
		return
	}
	a.World.Add(id, component.Flight{Takeoff: pos})
	a.World.Remove(id, component.CPosition)
}

// Land puts a flying entity back down on the first clear footprint found in
// rings of growing radius around its takeoff point. Small maps make total
// exhaustion practically impossible, so it panics when nothing is found.
func Land(a *Arena, id ecs.EntityID) {
	flight, ok := ecs.Lookup[component.Flight](a.World, id)
	if !ok {
		return
	}
	for r := 0; r <= geom.MaxMapTiles; r++ {
		for _, p := range geom.Ring(flight.Takeoff.Origin, r) {
			fp := flight.Takeoff.MoveTo(p)
			if !IsClear(a, fp, id) {
				continue
			}
			a.World.Remove(id, component.CFlight)
			a.World.Add(id, component.Position{SizedPoint: fp})
			a.Events.Raise(event.Event{Kind: event.Landed, Target: id, Point: p})
			a.Events.Raise(event.Event{Kind: event.Moved, Target: id, Point: p})
			return
		}
	}
	panic(fmt.Sprintf("system: no landing spot for entity %d near %v", id, flight.Takeoff.Origin))
}
