// Package system holds every rule of the battle simulation. Systems are free
// functions over an Arena; none of them keeps state of its own.
package system

import (
	"math/rand"

	"skirmish/assets"
	"skirmish/internal/combatlog"
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/event"
	"skirmish/internal/gamemap"
	"skirmish/internal/geom"
	"skirmish/internal/skill"
)

// Arena bundles the resources one battle's systems share. The battle is the
// single owner; nothing else holds these across a Maintain.
type Arena struct {
	World    *ecs.World
	Map      *gamemap.Map
	Skills   *skill.Registry
	Events   *event.Bus
	Log      *combatlog.Log
	Rand     *rand.Rand
	Bestiary map[string]assets.MonsterDef
}

// NewArena returns an arena with an empty world, an empty handler chain and
// the bundled bestiary.
func NewArena(m *gamemap.Map, skills *skill.Registry, rng *rand.Rand) *Arena {
	return &Arena{
		World:    ecs.NewWorld(),
		Map:      m,
		Skills:   skills,
		Events:   event.NewBus(),
		Log:      combatlog.New(combatlog.DefaultCapacity),
		Rand:     rng,
		Bestiary: assets.Bestiary,
	}
}

// RegisterHandlers subscribes the simulation's own handlers in dispatch
// order. Battles interleave their own handlers by calling the individual
// constructors instead.
func RegisterHandlers(a *Arena) {
	a.Events.Subscribe("movement", MovementHandler(a))
	a.Events.Subscribe("combat", CombatHandler(a))
	a.Events.Subscribe("status", StatusHandler(a))
	a.Events.Subscribe("animation", AnimationHandler(a))
	a.Events.Subscribe("log", LogHandler(a))
}

// Name is the display name of id for log lines.
func Name(a *Arena, id ecs.EntityID) string {
	if c, ok := ecs.Lookup[component.Character](a.World, id); ok {
		return c.Name
	}
	return "Something"
}

// live reports whether id exists and is not queued for deletion.
func live(a *Arena, id ecs.EntityID) bool {
	return a.World.Alive(id) && !a.World.Doomed(id)
}

// IsPlayer reports whether id is the player.
func IsPlayer(a *Arena, id ecs.EntityID) bool {
	return a.World.Has(id, component.CTagPlayer)
}

// Player returns the live player entity.
func Player(a *Arena) (ecs.EntityID, bool) {
	for _, id := range a.World.Query(component.CTagPlayer) {
		if live(a, id) {
			return id, true
		}
	}
	return ecs.NilEntity, false
}

// Enemies lists every live non-player character, flying ones included.
func Enemies(a *Arena) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range a.World.Query(component.CCharacter) {
		if live(a, id) && !IsPlayer(a, id) {
			out = append(out, id)
		}
	}
	return out
}

// Hostile reports whether a and b fight on opposite sides.
func Hostile(a *Arena, x, y ecs.EntityID) bool {
	return IsPlayer(a, x) != IsPlayer(a, y)
}

// CharacterAt returns the live character whose footprint covers p.
func CharacterAt(a *Arena, p geom.Point) (ecs.EntityID, bool) {
	for _, id := range a.World.Query(component.CCharacter, component.CPosition) {
		if !live(a, id) {
			continue
		}
		if ecs.Grab[component.Position](a.World, id).Contains(p) {
			return id, true
		}
	}
	return ecs.NilEntity, false
}

// CharactersIn lists, in id order, every live character covering any tile
// of area. Each character appears once.
func CharactersIn(a *Arena, area []geom.Point) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range a.World.Query(component.CCharacter, component.CPosition) {
		if !live(a, id) {
			continue
		}
		pos := ecs.Grab[component.Position](a.World, id)
		for _, p := range area {
			if pos.Contains(p) {
				out = append(out, id)
				break
			}
		}
	}
	return out
}

// IsClear reports whether fp is on the map, walkable and not covered by any
// character other than ignore.
func IsClear(a *Arena, fp geom.SizedPoint, ignore ecs.EntityID) bool {
	if !a.Map.FootprintWalkable(fp) {
		return false
	}
	for _, p := range fp.AllPositions() {
		if id, ok := CharacterAt(a, p); ok && id != ignore {
			return false
		}
	}
	return true
}

// Position returns the footprint of id, if it is on the map.
func Position(a *Arena, id ecs.EntityID) (geom.SizedPoint, bool) {
	pos, ok := ecs.Lookup[component.Position](a.World, id)
	return pos.SizedPoint, ok
}
