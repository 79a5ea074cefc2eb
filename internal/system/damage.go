package system

import (
	"skirmish/internal/combat"
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/event"
	"skirmish/internal/geom"
	"skirmish/internal/status"
)

// Hit is everything a landing attack carries. Attacker is a weak reference
// used only for rewards such as aimed shots; Source is where the blow came
// from and drives knockback.
type Hit struct {
	Attacker ecs.EntityID
	Source   geom.Point
	Strength combat.Strength
	Options  combat.Options
}

func hitFrom(atk component.Attack) Hit {
	return Hit{Attacker: atk.Attacker, Source: atk.Source, Strength: atk.Strength, Options: atk.Options}
}

// ApplyDamage resolves hit against target and returns the health it lost.
// Flying or off-map targets are immune. Each of a triple shot's hits is
// rolled and run through the defenses separately.
func ApplyDamage(a *Arena, target ecs.EntityID, hit Hit) int {
	if !live(a, target) {
		return 0
	}
	def, ok := ecs.Lookup[component.Defenses](a.World, target)
	if !ok {
		return 0
	}
	pos, onMap := Position(a, target)
	if !onMap || HasStatus(a, target, status.Flying) {
		return 0
	}
	name := Name(a, target)
	opts := hit.Options

	bonus := 0
	forceKnockback := false
	if HasStatus(a, target, status.StaticCharge) &&
		(opts.Has(combat.ConsumesChargeDamage) || opts.Has(combat.ConsumesChargeKnockback)) {
		RemoveStatus(a, target, status.StaticCharge)
		if opts.Has(combat.ConsumesChargeDamage) {
			bonus = combat.ChargeDamageBonus
		}
		forceKnockback = opts.Has(combat.ConsumesChargeKnockback)
	}

	lost := 0
	for i := 0; i < opts.Hits(); i++ {
		b := def.Apply(hit.Strength.Roll(a.Rand)+bonus, opts.Has(combat.PierceDefenses))
		lost += b.Health
		a.Log.Addf("%s took %d damage.", name, b.Taken())
	}
	a.World.Add(target, def)
	a.Events.Raise(event.Event{Kind: event.Damaged, Target: target, Point: pos.Origin, Amount: lost})

	if opts.Has(combat.AimedShot) && live(a, hit.Attacker) {
		AddStatus(a, hit.Attacker, status.Aimed, AimedDuration) //nolint:errcheck
	}

	if def.Dead() {
		Kill(a, target)
		return lost
	}

	large := opts.Has(combat.LargeTemperatureDelta)
	if opts.Has(combat.RaiseTemperature) {
		ChangeTemperature(a, target, combat.TemperatureDelta(hit.Strength, large))
	}
	if opts.Has(combat.LowerTemperature) {
		ChangeTemperature(a, target, -combat.TemperatureDelta(hit.Strength, large))
	}
	if opts.Has(combat.AddChargeStatus) {
		AddStatus(a, target, status.StaticCharge, ChargeDuration) //nolint:errcheck
	}
	if opts.Has(combat.Knockback) || forceKnockback {
		Knockback(a, hit.Source, target)
	}
	return lost
}

// DamageAt hits whatever character stands on p.
func DamageAt(a *Arena, p geom.Point, hit Hit) bool {
	id, ok := CharacterAt(a, p)
	if !ok {
		return false
	}
	ApplyDamage(a, id, hit)
	return true
}

// DamageArea hits every character touching area once, in id order,
// skipping exclude. It returns how many were hit.
func DamageArea(a *Arena, area []geom.Point, hit Hit, exclude ecs.EntityID) int {
	n := 0
	for _, id := range CharactersIn(a, area) {
		if id == exclude {
			continue
		}
		ApplyDamage(a, id, hit)
		n++
	}
	return n
}

// Kill raises Killed for id and queues it for deletion.
func Kill(a *Arena, id ecs.EntityID) {
	if !live(a, id) {
		return
	}
	var at geom.Point
	if pos, ok := Position(a, id); ok {
		at = pos.Origin
	}
	a.Events.Raise(event.Event{Kind: event.Killed, Target: id, Point: at})
	a.World.Delete(id)
}
