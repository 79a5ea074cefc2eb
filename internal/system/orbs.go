package system

import (
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/event"
	"skirmish/internal/factory"
	"skirmish/internal/geom"
	"skirmish/internal/skill"
)

// SpawnOrb launches an orb from the caster's footprint toward target and
// lays a marker on every tile of its path.
func SpawnOrb(a *Arena, from geom.SizedPoint, target geom.Point, eff skill.Effect) ecs.EntityID {
	path, _ := geom.LineTo(from, target)
	id := factory.NewOrb(a.World, component.Orb{
		Path:     path,
		Speed:    max(eff.Speed, 1),
		Strength: eff.Strength,
		Options:  eff.Options,
		Radius:   eff.Radius,
	})
	for _, p := range path {
		factory.NewMarker(a.World, id, p)
	}
	return id
}

// OrbTurn advances an orb up to Speed tiles. It bursts on the first tile
// holding a character, or at the end of its path, and then removes itself
// and its whole trail. Otherwise the trail behind it is trimmed.
func OrbTurn(a *Arena, id ecs.EntityID) error {
	orb := ecs.Grab[component.Orb](a.World, id)
	last := len(orb.Path) - 1
	next := min(orb.Index+orb.Speed, last)

	burstAt := -1
	for i := orb.Index + 1; i <= next; i++ {
		if _, ok := CharacterAt(a, orb.Path[i]); ok {
			burstAt = i
			break
		}
	}
	if burstAt < 0 && next == last {
		burstAt = last
	}

	if burstAt >= 0 {
		p := orb.Path[burstAt]
		DamageArea(a, geom.Burst(p, orb.Radius), Hit{Source: p, Strength: orb.Strength, Options: orb.Options}, ecs.NilEntity)
		removeMarkers(a, id, nil)
		a.World.Delete(id)
		return SpendTime(a, id, BaseActionCost)
	}

	orb.Index = next
	a.World.Add(id, orb)
	a.World.Add(id, component.At(orb.Path[next]))
	removeMarkers(a, id, orb.Remaining())
	a.Events.Raise(event.Event{Kind: event.OrbMoved, Target: id, Point: orb.Path[next]})
	return SpendTime(a, id, BaseActionCost)
}

// removeMarkers deletes the markers of orb whose tile is not in keep.
func removeMarkers(a *Arena, orb ecs.EntityID, keep []geom.Point) {
	for _, id := range Fields(a, component.FieldMarker) {
		f := ecs.Grab[component.Field](a.World, id)
		if f.Source != orb {
			continue
		}
		if len(f.Area) == 1 && contains(keep, f.Area[0]) {
			continue
		}
		a.World.Delete(id)
	}
}

func contains(ps []geom.Point, p geom.Point) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}

// Markers lists the live markers tracing orb's path.
func Markers(a *Arena, orb ecs.EntityID) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range Fields(a, component.FieldMarker) {
		if ecs.Grab[component.Field](a.World, id).Source == orb {
			out = append(out, id)
		}
	}
	return out
}
