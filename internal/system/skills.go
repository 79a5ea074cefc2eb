package system

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/geom"
	"skirmish/internal/logger"
	"skirmish/internal/skill"
)

// Skill contract errors. Callers are expected to check CanInvokeSkill and
// IsGoodTarget first; InvokeSkill re-validates and returns these instead of
// committing a malformed action.
var (
	ErrTargetShape           = errors.New("system: target does not match skill")
	ErrOutOfRange            = errors.New("system: target out of range")
	ErrNotClear              = errors.New("system: path or tile not clear")
	ErrBadTarget             = errors.New("system: invalid target")
	ErrInsufficientResources = errors.New("system: insufficient resources")
	ErrNotKnown              = errors.New("system: skill not known")
	ErrOffMap                = errors.New("system: entity is not on the map")
)

// CanInvokeSkill checks everything about a skill that does not depend on
// the target: the invoker knows it, stands on the map and can pay for it.
func CanInvokeSkill(a *Arena, invoker ecs.EntityID, name string) error {
	info, err := a.Skills.Get(name)
	if err != nil {
		return err
	}
	if skills, ok := ecs.Lookup[component.Skills](a.World, invoker); !ok || !skills.Knows(name) {
		return fmt.Errorf("%w: %q", ErrNotKnown, name)
	}
	if _, ok := Position(a, invoker); !ok {
		return fmt.Errorf("%w: entity %d", ErrOffMap, invoker)
	}
	return canPay(a, invoker, info)
}

func canPay(a *Arena, invoker ecs.EntityID, info skill.Info) error {
	if info.AmmoCost == 0 && info.ExhaustionCost == 0 && info.FocusCost == 0 {
		return nil
	}
	res, ok := ecs.Lookup[component.Resources](a.World, invoker)
	switch {
	case !ok:
		return fmt.Errorf("%w: %s needs resources", ErrInsufficientResources, info.Name)
	case res.Ammo < info.AmmoCost:
		return fmt.Errorf("%w: %s needs %d ammo, have %d", ErrInsufficientResources, info.Name, info.AmmoCost, res.Ammo)
	case res.Exhaustion+info.ExhaustionCost > res.MaxExhaustion:
		return fmt.Errorf("%w: %s would exhaust", ErrInsufficientResources, info.Name)
	case res.Focus < info.FocusCost:
		return fmt.Errorf("%w: %s needs %d focus, have %d", ErrInsufficientResources, info.Name, info.FocusCost, res.Focus)
	}
	return nil
}

// IsGoodTarget checks the target-dependent rules: the point's occupant
// matches the target type, it is within range and, when required, the line
// to it is clear.
func IsGoodTarget(a *Arena, invoker ecs.EntityID, name string, target geom.Point) error {
	info, err := a.Skills.Get(name)
	if err != nil {
		return err
	}
	if !info.Target.NeedsPoint() {
		return fmt.Errorf("%w: %q takes no target", ErrTargetShape, name)
	}
	pos, ok := Position(a, invoker)
	if !ok {
		return fmt.Errorf("%w: entity %d", ErrOffMap, invoker)
	}
	if err := checkOccupant(a, invoker, pos, info, target); err != nil {
		return err
	}
	if info.HasRange() {
		if d, ok := geom.DistanceTo(pos, target); !ok || d > info.Range {
			return fmt.Errorf("%w: %q reaches %d, target is %d away", ErrOutOfRange, name, info.Range, d)
		}
	}
	if info.MustBeClear && !lineClear(a, invoker, pos, target) {
		return fmt.Errorf("%w: no clear line to %v", ErrNotClear, target)
	}
	return nil
}

func checkOccupant(a *Arena, invoker ecs.EntityID, pos geom.SizedPoint, info skill.Info, target geom.Point) error {
	occupant, occupied := CharacterAt(a, target)
	switch info.Target {
	case skill.TargetTile:
		switch info.Effect.Kind {
		case skill.EffectMove:
			if !IsClear(a, pos.MoveTo(target), invoker) {
				return fmt.Errorf("%w: cannot stand on %v", ErrNotClear, target)
			}
		case skill.EffectSpawn:
			def, ok := a.Bestiary[info.Effect.Summon]
			if !ok || !IsClear(a, def.Footprint(target), ecs.NilEntity) {
				return fmt.Errorf("%w: cannot summon on %v", ErrNotClear, target)
			}
		case skill.EffectField:
			if info.Effect.Summon != "" && !IsClear(a, geom.Single(target), ecs.NilEntity) {
				return fmt.Errorf("%w: summoning circle needs an empty tile", ErrNotClear)
			}
		}
		return nil
	case skill.TargetPlayer:
		if !occupied || !IsPlayer(a, occupant) {
			return fmt.Errorf("%w: no player at %v", ErrBadTarget, target)
		}
	case skill.TargetEnemy:
		if !occupied || !Hostile(a, invoker, occupant) {
			return fmt.Errorf("%w: no enemy at %v", ErrBadTarget, target)
		}
	case skill.TargetAny:
		if !occupied {
			return fmt.Errorf("%w: nobody at %v", ErrBadTarget, target)
		}
	case skill.TargetAnyoneButSelf:
		if !occupied || occupant == invoker {
			return fmt.Errorf("%w: nobody else at %v", ErrBadTarget, target)
		}
	}
	return nil
}

// lineClear reports whether every tile strictly between the invoker and
// target is walkable and unoccupied.
func lineClear(a *Arena, invoker ecs.EntityID, pos geom.SizedPoint, target geom.Point) bool {
	line, ok := geom.LineTo(pos, target)
	if !ok {
		return false
	}
	if len(line) <= 2 {
		return true
	}
	for _, p := range line[1 : len(line)-1] {
		if !a.Map.IsWalkable(p) {
			return false
		}
		if id, ok := CharacterAt(a, p); ok && id != invoker {
			return false
		}
	}
	return true
}

// InvokeSkill validates and commits one skill use: resources and time are
// paid, then the effect starts. target must be nil exactly when the skill
// takes no target.
func InvokeSkill(a *Arena, invoker ecs.EntityID, name string, target *geom.Point) error {
	info, err := a.Skills.Get(name)
	if err != nil {
		return err
	}
	if info.Target.NeedsPoint() != (target != nil) {
		return fmt.Errorf("%w: %q with target %v", ErrTargetShape, name, target)
	}
	if err := CanInvokeSkill(a, invoker, name); err != nil {
		return err
	}
	if target != nil {
		if err := IsGoodTarget(a, invoker, name, *target); err != nil {
			return err
		}
	}
	if !info.NoTime && Ticks(a, invoker) < BaseActionCost {
		return fmt.Errorf("%w: entity %d cannot afford %q", ErrNotEnoughTime, invoker, name)
	}

	pay(a, invoker, info)
	if !info.NoTime {
		if err := SpendTime(a, invoker, BaseActionCost); err != nil {
			return err
		}
	}

	fields := logrus.Fields{"entity": invoker, "skill": name, "effect": info.Effect.Kind.String()}
	if target != nil {
		fields["target"] = target.String()
	}
	logger.Log.WithFields(fields).Debug("skill committed")

	var at geom.Point
	if target != nil {
		at = *target
	}
	return resolveEffect(a, invoker, info, at)
}

func pay(a *Arena, invoker ecs.EntityID, info skill.Info) {
	res, ok := ecs.Lookup[component.Resources](a.World, invoker)
	if !ok {
		return
	}
	res.Ammo -= info.AmmoCost
	res.Exhaustion += info.ExhaustionCost
	res.Focus -= info.FocusCost
	a.World.Add(invoker, res)
}

// UsableSkills lists the invoker's skills that pass CanInvokeSkill, in
// skill-bar order.
func UsableSkills(a *Arena, invoker ecs.EntityID) []string {
	skills, ok := ecs.Lookup[component.Skills](a.World, invoker)
	if !ok {
		return nil
	}
	var out []string
	for _, n := range skills.Names {
		if CanInvokeSkill(a, invoker, n) == nil {
			out = append(out, n)
		}
	}
	return out
}
