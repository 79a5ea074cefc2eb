package system

import (
	"fmt"

	"skirmish/assets"
	"skirmish/internal/combat"
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/event"
	"skirmish/internal/factory"
	"skirmish/internal/geom"
	"skirmish/internal/skill"
	"skirmish/internal/status"
)

// resolveEffect starts the committed effect. Attacks only stage an Attack
// and an animation here; the damage lands when the animation completes.
func resolveEffect(a *Arena, invoker ecs.EntityID, info skill.Info, target geom.Point) error {
	eff := info.Effect
	pos, _ := Position(a, invoker)

	switch eff.Kind {
	case skill.EffectMove:
		MoveEntity(a, invoker, target)

	case skill.EffectRangedAttack:
		startBolt(a, invoker, pos, info, target)

	case skill.EffectMeleeAttack:
		strength := eff.Strength
		if HasStatus(a, invoker, status.Agitated) {
			strength = strength.Plus(AgitatedBonusDice)
		}
		a.World.Add(invoker, component.Attack{
			Kind: component.AttackMelee, Attacker: invoker,
			Source: pos.Nearest(target), Target: target,
			Strength: strength, Options: eff.Options,
		})
		setAnimation(a, invoker, component.Animation{
			State: component.AnimMelee, Frames: MeleeFrames,
			OnComplete: event.Event{Kind: event.MeleeComplete, Target: invoker, Point: target, Skill: info.Name},
		})

	case skill.EffectConeAttack:
		from := pos.Nearest(target)
		area := geom.Cone(from, geom.DirectionTo(from, target), eff.Width)
		a.World.Add(invoker, component.Attack{
			Kind: component.AttackCone, Attacker: invoker,
			Source: from, Target: target, Area: area,
			Strength: eff.Strength, Options: eff.Options,
		})
		setAnimation(a, invoker, component.Animation{
			State: component.AnimCone, Frames: ConeFrames, Path: area,
			OnComplete: event.Event{Kind: event.ConeComplete, Target: invoker, Point: target, Skill: info.Name},
		})

	case skill.EffectChargeAttack:
		startCharge(a, invoker, pos, info, target)

	case skill.EffectExplode:
		area := geom.Burst(target, eff.Radius)
		a.World.Add(invoker, component.Attack{
			Kind: component.AttackExplode, Attacker: invoker,
			Source: target, Target: target, Area: area,
			Strength: eff.Strength, Options: eff.Options,
		})
		setAnimation(a, invoker, component.Animation{
			State: component.AnimExplode, Frames: ExplodeFrames, Path: area,
			OnComplete: event.Event{Kind: event.ExplodeComplete, Target: invoker, Point: target, Skill: info.Name},
		})

	case skill.EffectField:
		a.World.Add(invoker, component.Attack{
			Kind: component.AttackField, Attacker: invoker,
			Source: target, Target: target,
			Strength: eff.Strength, Options: eff.Options,
			Radius: eff.Radius, Duration: eff.Duration, Summon: eff.Summon,
		})
		setAnimation(a, invoker, component.Animation{
			State: component.AnimCast, Frames: CastFrames,
			OnComplete: event.Event{Kind: event.FieldCastComplete, Target: invoker, Point: target, Skill: info.Name},
		})

	case skill.EffectOrb:
		SpawnOrb(a, pos, target, eff)

	case skill.EffectBuff:
		recipient := invoker
		if info.Target.NeedsPoint() {
			id, ok := CharacterAt(a, target)
			if !ok {
				return fmt.Errorf("%w: nobody at %v", ErrBadTarget, target)
			}
			recipient = id
		}
		if err := AddStatus(a, recipient, eff.Status, eff.Duration); err != nil {
			return err
		}
		if eff.Amount > 0 {
			def := ecs.Grab[component.Defenses](a.World, recipient)
			def.AddAbsorb(eff.Amount)
			a.World.Add(recipient, def)
		}

	case skill.EffectSpawn:
		if _, err := SpawnMonster(a, eff.Summon, target); err != nil {
			return err
		}

	case skill.EffectReload:
		res := ecs.Grab[component.Resources](a.World, invoker)
		if eff.Amount > 0 {
			res.Ammo = min(res.MaxAmmo, res.Ammo+eff.Amount)
		} else {
			res.Ammo = res.MaxAmmo
		}
		a.World.Add(invoker, res)
		a.Log.Addf("%s reloads.", Name(a, invoker))

	case skill.EffectSwitchAmmo:
		switchAmmo(a, invoker, eff.Status)

	default:
		return fmt.Errorf("%w: %q has no effect", ErrTargetShape, info.Name)
	}
	return nil
}

func startBolt(a *Arena, invoker ecs.EntityID, pos geom.SizedPoint, info skill.Info, target geom.Point) {
	eff := info.Effect
	strength, opts := eff.Strength, eff.Options
	sprite := eff.Bolt
	if sprite == "" {
		sprite = assets.GlyphBullet
	}
	if info.AmmoCost > 0 {
		switch {
		case HasStatus(a, invoker, status.UsingFireAmmo):
			opts |= combat.RaiseTemperature
			sprite = assets.GlyphFireBolt
		case HasStatus(a, invoker, status.UsingIceAmmo):
			opts |= combat.LowerTemperature
			sprite = assets.GlyphIceBolt
		}
	}
	if HasStatus(a, invoker, status.Aimed) {
		strength = strength.Plus(AimedBonusDice)
		RemoveStatus(a, invoker, status.Aimed)
	}

	path, _ := geom.LineTo(pos, target)
	bolt := factory.NewBolt(a.World, component.Attack{
		Kind: component.AttackRanged, Attacker: invoker,
		Source: path[0], Target: target,
		Strength: strength, Options: opts,
	}, sprite, path)
	setAnimation(a, invoker, component.Animation{
		State: component.AnimCast, Frames: CastFrames,
		OnComplete: event.Event{Kind: event.CastComplete, Target: bolt, Point: target, Skill: info.Name},
	})
}

// startCharge runs the invoker along the line toward target as far as the
// way is clear, then winds up a melee blow.
func startCharge(a *Arena, invoker ecs.EntityID, pos geom.SizedPoint, info skill.Info, target geom.Point) {
	path, _ := geom.LineTo(pos, target)
	dest := pos
	for _, p := range path[1:] {
		next, ok := pos.Shift(p.X-path[0].X, p.Y-path[0].Y)
		if !ok || !IsClear(a, next, invoker) {
			break
		}
		dest = next
	}
	if dest.Origin != pos.Origin {
		MoveEntity(a, invoker, dest.Origin)
	}
	a.World.Add(invoker, component.Attack{
		Kind: component.AttackCharge, Attacker: invoker,
		Source: dest.Nearest(target), Target: target,
		Strength: info.Effect.Strength, Options: info.Effect.Options,
	})
	setAnimation(a, invoker, component.Animation{
		State: component.AnimCharge, Frames: MeleeFrames, Path: path,
		OnComplete: event.Event{Kind: event.MeleeComplete, Target: invoker, Point: target, Skill: info.Name},
	})
}

func switchAmmo(a *Arena, invoker ecs.EntityID, want status.Kind) {
	other := status.UsingIceAmmo
	if want == status.UsingIceAmmo {
		other = status.UsingFireAmmo
	}
	if HasStatus(a, invoker, want) {
		RemoveStatus(a, invoker, want)
		a.Log.Addf("%s loads standard rounds.", Name(a, invoker))
		return
	}
	RemoveStatus(a, invoker, other)
	AddTrait(a, invoker, want) //nolint:errcheck // ammo kinds are only ever traits
}

// SpawnMonster creates a bestiary monster with its footprint at origin.
func SpawnMonster(a *Arena, kind string, origin geom.Point) (ecs.EntityID, error) {
	def, ok := a.Bestiary[kind]
	if !ok {
		return ecs.NilEntity, fmt.Errorf("%w: unknown monster %q", ErrBadTarget, kind)
	}
	if !IsClear(a, def.Footprint(origin), ecs.NilEntity) {
		return ecs.NilEntity, fmt.Errorf("%w: %s does not fit at %v", ErrNotClear, kind, origin)
	}
	id := factory.NewMonster(a.World, def, origin)
	a.Events.Raise(event.Event{Kind: event.Spawned, Target: id, Point: origin})
	return id, nil
}

// takeAttack removes and returns the pending attack on id.
func takeAttack(a *Arena, id ecs.EntityID) (component.Attack, bool) {
	atk, ok := ecs.Lookup[component.Attack](a.World, id)
	if ok {
		a.World.Remove(id, component.CAttack)
	}
	return atk, ok
}

// CombatHandler lands staged attacks when their animations complete.
func CombatHandler(a *Arena) event.Handler {
	return func(e event.Event) {
		switch e.Kind {
		case event.CastComplete:
			bolt, ok := ecs.Lookup[component.Bolt](a.World, e.Target)
			if !ok {
				return
			}
			a.World.Add(e.Target, component.Animation{
				State:      component.AnimBolt,
				Frames:     max(1, len(bolt.Path)-1) * BoltFramesPerTile,
				Path:       bolt.Path,
				OnComplete: event.Event{Kind: event.FlightComplete, Target: e.Target, Point: e.Point, Skill: e.Skill},
			})

		case event.FlightComplete:
			atk, ok := takeAttack(a, e.Target)
			a.World.Delete(e.Target)
			if ok {
				DamageAt(a, atk.Target, hitFrom(atk))
			}

		case event.MeleeComplete:
			atk, ok := takeAttack(a, e.Target)
			if !ok || !live(a, e.Target) {
				return
			}
			if atk.Kind == component.AttackCharge {
				pos, onMap := Position(a, e.Target)
				if d, _ := geom.DistanceTo(pos, atk.Target); !onMap || d > 1 {
					return
				}
			}
			DamageAt(a, atk.Target, hitFrom(atk))

		case event.ConeComplete, event.ExplodeComplete:
			atk, ok := takeAttack(a, e.Target)
			if !ok {
				return
			}
			DamageArea(a, atk.Area, hitFrom(atk), e.Target)

		case event.FieldCastComplete:
			atk, ok := takeAttack(a, e.Target)
			if !ok {
				return
			}
			CreateField(a, atk)
		}
	}
}
