package ai

import (
	"github.com/sirupsen/logrus"

	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/geom"
	"skirmish/internal/logger"
	"skirmish/internal/status"
	"skirmish/internal/system"
)

// playerTarget returns the tile of the player nearest to id.
func playerTarget(a *system.Arena, id ecs.EntityID) (geom.Point, int, bool) {
	player, ok := system.Player(a)
	if !ok {
		return geom.Point{}, 0, false
	}
	ppos, ok := system.Position(a, player)
	if !ok {
		return geom.Point{}, 0, false
	}
	pos, ok := system.Position(a, id)
	if !ok {
		return geom.Point{}, 0, false
	}
	target := ppos.Nearest(pos.Origin)
	d, _ := geom.DistanceTo(pos, target)
	return target, d, true
}

// try invokes name at target when every precondition holds.
func try(a *system.Arena, id ecs.EntityID, name string, target *geom.Point) bool {
	if system.CanInvokeSkill(a, id, name) != nil {
		return false
	}
	if target != nil && system.IsGoodTarget(a, id, name, *target) != nil {
		return false
	}
	if err := system.InvokeSkill(a, id, name, target); err != nil {
		logger.Log.WithFields(logrus.Fields{"entity": id, "skill": name}).WithError(err).Warn("validated skill was rejected")
		return false
	}
	return true
}

// UseSkillOnPlayer fires the first of names that can hit the player from
// where id stands.
func UseSkillOnPlayer(names ...string) Step {
	return func(a *system.Arena, id ecs.EntityID) bool {
		target, _, ok := playerTarget(a, id)
		if !ok {
			return false
		}
		for _, n := range names {
			if try(a, id, n, &target) {
				return true
			}
		}
		return false
	}
}

// UseSkillIfInRange uses an untargeted skill once the player is within
// distance tiles.
func UseSkillIfInRange(name string, distance int) Step {
	return func(a *system.Arena, id ecs.EntityID) bool {
		_, d, ok := playerTarget(a, id)
		if !ok || d > distance {
			return false
		}
		return try(a, id, name, nil)
	}
}

// MoveTowardPlayer steps along the shortest clear path that ends within
// `within` tiles of the player.
func MoveTowardPlayer(within int) Step {
	return func(a *system.Arena, id ecs.EntityID) bool {
		target, d, ok := playerTarget(a, id)
		if !ok || d <= within {
			return false
		}
		dir, ok := system.StepToward(a, id, target, within)
		if !ok {
			return false
		}
		return system.MoveDirection(a, id, dir) == nil
	}
}

// BuffAllyMissing casts name on the first ally, id included, that lacks
// the status k.
func BuffAllyMissing(k status.Kind, name string) Step {
	return func(a *system.Arena, id ecs.EntityID) bool {
		for _, ally := range system.Enemies(a) {
			if system.HasStatus(a, ally, k) {
				continue
			}
			pos, ok := system.Position(a, ally)
			if !ok {
				continue
			}
			if try(a, id, name, &pos.Origin) {
				return true
			}
		}
		return false
	}
}

// WhenValue runs step once the behavior value key reaches threshold and
// pays threshold out of it when the step acts.
func WhenValue(key string, threshold int, step Step) Step {
	return func(a *system.Arena, id ecs.EntityID) bool {
		if system.BehaviorValue(a, id, key) < threshold {
			return false
		}
		if !step(a, id) {
			return false
		}
		system.ReduceBehaviorValue(a, id, key, threshold)
		return true
	}
}

// SummonWhenCharged casts the tile-targeted skill name on the first good
// tile around the player once key has reached threshold.
func SummonWhenCharged(key string, threshold int, name string) Step {
	return WhenValue(key, threshold, func(a *system.Arena, id ecs.EntityID) bool {
		target, _, ok := playerTarget(a, id)
		if !ok {
			return false
		}
		for r := 1; r <= 3; r++ {
			for _, p := range geom.Ring(target, r) {
				if try(a, id, name, &p) {
					return true
				}
			}
		}
		return false
	})
}

// ChargeUp adds amount to key. It never acts, so the chain goes on.
func ChargeUp(key string, amount int) Step {
	return func(a *system.Arena, id ecs.EntityID) bool {
		system.IncrementBehaviorValue(a, id, key, amount)
		return false
	}
}

// ReloadWhenEmpty reloads with name once id is out of ammo.
func ReloadWhenEmpty(name string) Step {
	return func(a *system.Arena, id ecs.EntityID) bool {
		res, ok := ecs.Lookup[component.Resources](a.World, id)
		if !ok || res.MaxAmmo == 0 || res.Ammo > 0 {
			return false
		}
		return try(a, id, name, nil)
	}
}

// Wait passes the turn.
func Wait(a *system.Arena, id ecs.EntityID) bool {
	return system.SpendTime(a, id, system.BaseActionCost) == nil
}
