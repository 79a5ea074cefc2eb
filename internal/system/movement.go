package system

import (
	"fmt"

	"skirmish/internal/combat"
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/event"
	"skirmish/internal/geom"
)

// MoveEntity re-anchors id's footprint at origin and raises Moved. Callers
// have already checked the destination is clear.
func MoveEntity(a *Arena, id ecs.EntityID, origin geom.Point) {
	pos, ok := ecs.Lookup[component.Position](a.World, id)
	if !ok {
		return
	}
	from := pos.Origin
	pos.SizedPoint = pos.MoveTo(origin)
	a.World.Add(id, pos)
	if !a.World.Has(id, component.CAnimation) {
		setAnimation(a, id, component.Animation{
			State:  component.AnimMove,
			Frames: MoveFrames,
			Path:   []geom.Point{from, origin},
		})
	}
	a.Events.Raise(event.Event{Kind: event.Moved, Target: id, Point: origin})
}

// MoveDirection steps id one tile in dir and pays for the action.
func MoveDirection(a *Arena, id ecs.EntityID, dir geom.Direction) error {
	pos, ok := Position(a, id)
	if !ok {
		return fmt.Errorf("%w: entity %d", ErrOffMap, id)
	}
	dx, dy := dir.Delta()
	moved, ok := pos.Shift(dx, dy)
	if dir == geom.DirNone || !ok || !IsClear(a, moved, id) {
		return fmt.Errorf("%w: %v from %v", ErrNotClear, dir, pos.Origin)
	}
	if err := SpendTime(a, id, BaseActionCost); err != nil {
		return err
	}
	MoveEntity(a, id, moved.Origin)
	return nil
}

// Knockback pushes target one tile directly away from source. Nothing
// happens when that tile is blocked, occupied or off the map.
func Knockback(a *Arena, source geom.Point, target ecs.EntityID) bool {
	pos, ok := Position(a, target)
	if !ok {
		return false
	}
	dir := geom.DirectionTo(source, pos.Nearest(source))
	if dir == geom.DirNone {
		return false
	}
	dx, dy := dir.Delta()
	moved, ok := pos.Shift(dx, dy)
	if !ok || !IsClear(a, moved, target) {
		return false
	}

	p := ecs.Grab[component.Position](a.World, target)
	p.SizedPoint = moved
	a.World.Add(target, p)
	setAnimation(a, target, component.Animation{
		State:  component.AnimHit,
		Frames: MoveFrames,
		Path:   []geom.Point{pos.Origin, moved.Origin},
	})
	a.Log.Addf("%s is knocked back.", Name(a, target))
	a.Events.Raise(event.Event{Kind: event.KnockedBack, Target: target, Point: moved.Origin})
	a.Events.Raise(event.Event{Kind: event.Moved, Target: target, Point: moved.Origin})
	return true
}

// MovementHandler burns characters that step into a damaging field.
func MovementHandler(a *Arena) event.Handler {
	return func(e event.Event) {
		if e.Kind != event.Moved || !live(a, e.Target) {
			return
		}
		if !a.World.Has(e.Target, component.CDefenses) {
			return
		}
		pos, ok := Position(a, e.Target)
		if !ok {
			return
		}
		for _, fid := range a.World.Query(component.CField) {
			if !live(a, fid) {
				continue
			}
			f := ecs.Grab[component.Field](a.World, fid)
			if f.Kind != component.FieldDamage || !touches(pos, f.Area) {
				continue
			}
			ApplyDamage(a, e.Target, Hit{
				Source:   e.Point,
				Strength: f.Strength,
				Options:  f.Options &^ (combat.Knockback | combat.ConsumesChargeKnockback),
			})
			if !live(a, e.Target) {
				return
			}
		}
	}
}

func touches(fp geom.SizedPoint, area []geom.Point) bool {
	for _, p := range area {
		if fp.Contains(p) {
			return true
		}
	}
	return false
}
