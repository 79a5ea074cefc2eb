package system

import (
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/factory"
	"skirmish/internal/geom"
)

// CreateField turns a completed field cast into a lingering zone. Damaging
// fields burn whoever already stands in them.
func CreateField(a *Arena, atk component.Attack) ecs.EntityID {
	if atk.Summon != "" {
		return factory.NewField(a.World, component.Field{
			Kind:   component.FieldSummon,
			Area:   []geom.Point{atk.Target},
			Turns:  max(atk.Duration, 1),
			Summon: atk.Summon,
		})
	}
	f := component.Field{
		Kind:     component.FieldDamage,
		Area:     geom.Burst(atk.Target, atk.Radius),
		Strength: atk.Strength,
		Options:  atk.Options,
		Turns:    max(atk.Duration, 1),
	}
	id := factory.NewField(a.World, f)
	DamageArea(a, f.Area, fieldHit(f, atk.Target), ecs.NilEntity)
	return id
}

func fieldHit(f component.Field, center geom.Point) Hit {
	return Hit{Source: center, Strength: f.Strength, Options: f.Options}
}

// FieldTurn is a field's scheduled turn: a damaging field hits everyone in
// it, and every field counts down, expiring when its turns run out. A
// summoning field calls its monster as it expires.
func FieldTurn(a *Arena, id ecs.EntityID) error {
	f := ecs.Grab[component.Field](a.World, id)
	if f.Kind == component.FieldDamage {
		DamageArea(a, f.Area, fieldHit(f, f.Area[len(f.Area)/2]), ecs.NilEntity)
	}
	f.Turns--
	if f.Turns > 0 {
		a.World.Add(id, f)
		return SpendTime(a, id, BaseActionCost)
	}
	if f.Kind == component.FieldSummon {
		summonNear(a, f.Summon, f.Area[0])
	}
	a.World.Delete(id)
	return SpendTime(a, id, BaseActionCost)
}

// summonNear places kind on the first clear spot at or around p.
func summonNear(a *Arena, kind string, p geom.Point) {
	def, ok := a.Bestiary[kind]
	if !ok {
		return
	}
	for r := 0; r <= 2; r++ {
		for _, q := range geom.Ring(p, r) {
			if IsClear(a, def.Footprint(q), ecs.NilEntity) {
				SpawnMonster(a, kind, q) //nolint:errcheck // checked clear above
				return
			}
		}
	}
	a.Log.Add("The summoning fizzles.")
}

// Fields lists live fields of the given kind in id order.
func Fields(a *Arena, kind component.FieldKind) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range a.World.Query(component.CField) {
		if live(a, id) && ecs.Grab[component.Field](a.World, id).Kind == kind {
			out = append(out, id)
		}
	}
	return out
}
