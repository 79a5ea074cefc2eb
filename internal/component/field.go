package component

import (
	"skirmish/internal/combat"
	"skirmish/internal/ecs"
	"skirmish/internal/geom"
)

const (
	CField ecs.ComponentType = 15
	COrb   ecs.ComponentType = 16
)

// FieldKind separates damaging zones, summoning circles and orb trails.
type FieldKind uint8

const (
	FieldDamage FieldKind = iota
	FieldSummon
	FieldMarker
)

// Field is a lingering area. Damage and summon fields are scheduled actors;
// markers are purely visual and carry the id of the orb whose path they
// trace in Source.
type Field struct {
	Kind     FieldKind
	Area     []geom.Point
	Strength combat.Strength
	Options  combat.Options
	Turns    int
	Summon   string
	Source   ecs.EntityID
}

func (Field) Type() ecs.ComponentType { return CField }

// Covers reports whether p lies in the field.
func (f Field) Covers(p geom.Point) bool {
	for _, a := range f.Area {
		if a == p {
			return true
		}
	}
	return false
}

// Orb is a self-propelled blast walking a precomputed path.
type Orb struct {
	Path     []geom.Point
	Index    int
	Speed    int
	Strength combat.Strength
	Options  combat.Options
	Radius   int
}

func (Orb) Type() ecs.ComponentType { return COrb }

// Remaining is the part of the path not yet travelled, current tile first.
func (o Orb) Remaining() []geom.Point {
	if o.Index >= len(o.Path) {
		return nil
	}
	return o.Path[o.Index:]
}
