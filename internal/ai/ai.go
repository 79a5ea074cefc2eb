// Package ai decides what non-player actors do on their turn. Every monster
// kind has a routine: an ordered chain of steps tried until one acts, with
// waiting as the guaranteed fallback.
package ai

import (
	"github.com/sirupsen/logrus"

	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/event"
	"skirmish/internal/logger"
	"skirmish/internal/system"
)

// Behavior value keys.
const (
	// KeyCharge accumulates toward a summoning.
	KeyCharge = "charge"
	// KeyHurt counts the hits an actor has taken.
	KeyHurt = "hurt"
)

// Step tries one action for id and reports whether it acted. A step that
// did not act must leave the world untouched.
type Step func(a *system.Arena, id ecs.EntityID) bool

// Turn runs one complete scheduled turn.
type Turn func(a *system.Arena, id ecs.EntityID) error

// Chain evaluates steps in order until one acts. When none does, the actor
// waits, so every turn spends time.
func Chain(steps ...Step) Turn {
	return func(a *system.Arena, id ecs.EntityID) error {
		for _, step := range steps {
			if step(a, id) {
				return nil
			}
		}
		return system.SpendTime(a, id, system.BaseActionCost)
	}
}

// TakeTurn runs the turn of any scheduled non-player actor.
func TakeTurn(a *system.Arena, id ecs.EntityID) error {
	b, ok := ecs.Lookup[component.Behavior](a.World, id)
	if !ok {
		return system.SpendTime(a, id, system.BaseActionCost)
	}
	logger.Log.WithFields(logrus.Fields{"entity": id, "behavior": b.Kind}).Debug("ai turn")

	switch b.Kind {
	case component.BehaviorField:
		return system.FieldTurn(a, id)
	case component.BehaviorOrb:
		return system.OrbTurn(a, id)
	}
	system.StartTurn(a, id)
	if !a.World.Alive(id) || a.World.Doomed(id) {
		return nil
	}
	turn, ok := Routines[b.Kind]
	if !ok {
		logger.Log.WithField("behavior", b.Kind).Warn("no routine for behavior, waiting")
		return system.SpendTime(a, id, system.BaseActionCost)
	}
	return turn(a, id)
}

// Handler keeps behavior values in step with what happens to an actor.
func Handler(a *system.Arena) event.Handler {
	return func(e event.Event) {
		if e.Kind != event.Damaged || system.IsPlayer(a, e.Target) {
			return
		}
		system.IncrementBehaviorValue(a, e.Target, KeyHurt, 1)
	}
}
