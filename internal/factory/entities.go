// Package factory assembles entities from content definitions.
package factory

import (
	"github.com/gdamore/tcell/v2"

	"skirmish/assets"
	"skirmish/internal/combat"
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/geom"
	"skirmish/internal/status"
)

// PlayerSpec is the fully built player loadout: class stats after equipment.
type PlayerSpec struct {
	Name      string
	Glyph     string
	Defenses  combat.Defenses
	Resources component.Resources
	Skills    []string
}

// NewPlayer creates the player entity at p.
func NewPlayer(w *ecs.World, p geom.Point, spec PlayerSpec) ecs.EntityID {
	return w.CreateEntity(
		component.At(p),
		component.Time{},
		component.Character{Name: spec.Name, Kind: "player"},
		component.Appearance{Glyph: spec.Glyph, FGColor: tcell.ColorYellow, RenderOrder: 10},
		component.Defenses{Defenses: spec.Defenses},
		spec.Resources,
		component.Skills{Names: append([]string(nil), spec.Skills...)},
		component.Statuses{Store: status.NewStore()},
		component.Temperature{},
		component.TagPlayer{},
		component.TagSerializable{},
	)
}

// NewMonster creates a monster from its bestiary entry with its footprint
// anchored at origin.
func NewMonster(w *ecs.World, def assets.MonsterDef, origin geom.Point) ecs.EntityID {
	statuses := status.NewStore()
	for _, t := range def.Traits {
		statuses.AddTrait(t) //nolint:errcheck // a fresh store cannot conflict
	}
	return w.CreateEntity(
		component.Position{SizedPoint: def.Footprint(origin)},
		component.Time{},
		component.Character{Name: def.Name, Kind: def.Kind},
		component.Appearance{Glyph: def.Glyph, FGColor: def.Color, RenderOrder: 5},
		component.Defenses{Defenses: def.Defenses()},
		component.Resources{Ammo: def.Ammo, MaxAmmo: def.Ammo},
		component.Skills{Names: append([]string(nil), def.Skills...)},
		component.Statuses{Store: statuses},
		component.Temperature{},
		component.Behavior{Kind: def.Behavior},
		component.BehaviorValues{Values: map[string]int{}},
		component.TagSerializable{},
	)
}

// NewBolt creates an in-flight projectile carrying attack.
func NewBolt(w *ecs.World, attack component.Attack, sprite string, path []geom.Point) ecs.EntityID {
	return w.CreateEntity(
		attack,
		component.Bolt{Kind: sprite, Path: path},
		component.Appearance{Glyph: sprite, FGColor: tcell.ColorWhite, RenderOrder: 20},
	)
}

// NewField creates a damaging or summoning zone. It acts on the scheduler
// like any other actor.
func NewField(w *ecs.World, f component.Field) ecs.EntityID {
	glyph := assets.GlyphFireField
	if f.Kind == component.FieldSummon {
		glyph = assets.GlyphSummoning
	}
	return w.CreateEntity(
		f,
		component.Time{},
		component.Behavior{Kind: component.BehaviorField},
		component.Appearance{Glyph: glyph, FGColor: tcell.ColorOrangeRed, RenderOrder: 2},
		component.TagSerializable{},
	)
}

// NewOrb creates an orb at the start of its path.
func NewOrb(w *ecs.World, orb component.Orb) ecs.EntityID {
	return w.CreateEntity(
		orb,
		component.At(orb.Path[orb.Index]),
		component.Time{},
		component.Behavior{Kind: component.BehaviorOrb},
		component.Appearance{Glyph: assets.GlyphOrb, FGColor: tcell.ColorAqua, RenderOrder: 15},
		component.TagSerializable{},
	)
}

// NewMarker creates one tile of an orb's trail.
func NewMarker(w *ecs.World, orb ecs.EntityID, p geom.Point) ecs.EntityID {
	return w.CreateEntity(
		component.Field{Kind: component.FieldMarker, Area: []geom.Point{p}, Source: orb},
		component.Appearance{Glyph: assets.GlyphTrail, FGColor: tcell.ColorAqua, RenderOrder: 1},
		component.TagSerializable{},
	)
}
