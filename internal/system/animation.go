package system

import (
	"errors"

	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/event"
)

// Frame budgets of each presentational delay.
const (
	CastFrames        = 4
	BoltFramesPerTile = 2
	MeleeFrames       = 4
	ConeFrames        = 5
	ExplodeFrames     = 6
	MoveFrames        = 3
	HitFrames         = 3

	// MaxSettleFrames bounds Settle; a chain still animating after this
	// many frames is a bug.
	MaxSettleFrames = 10_000
)

// ErrUnsettled is returned when animations never drain.
var ErrUnsettled = errors.New("system: animations did not settle")

// setAnimation starts anim on id. An animation still waiting to raise its
// completion event is never replaced, so no consequence is lost.
func setAnimation(a *Arena, id ecs.EntityID, anim component.Animation) {
	if cur, ok := ecs.Lookup[component.Animation](a.World, id); ok && cur.OnComplete.Kind != event.None {
		return
	}
	a.World.Add(id, anim)
}

// HasAnimations reports whether anything is still animating.
func HasAnimations(a *Arena) bool {
	return len(a.World.Query(component.CAnimation)) > 0
}

// AdvanceAnimations moves every animation forward by frames. Finished
// animations are removed first and their completion events raised after,
// in entity id order. It returns how many finished.
func AdvanceAnimations(a *Arena, frames int) int {
	var done []event.Event
	for _, id := range a.World.Query(component.CAnimation) {
		anim := ecs.Grab[component.Animation](a.World, id)
		anim.Frame += frames
		if anim.Frame < anim.Frames {
			a.World.Add(id, anim)
			continue
		}
		a.World.Remove(id, component.CAnimation)
		done = append(done, anim.OnComplete)
	}
	for _, e := range done {
		a.Events.Raise(e)
	}
	return len(done)
}

// Settle runs animations to quiescence one frame at a time, applying
// deferred deletions after every frame.
func Settle(a *Arena) error {
	for frame := 0; HasAnimations(a); frame++ {
		if frame >= MaxSettleFrames {
			return ErrUnsettled
		}
		AdvanceAnimations(a, 1)
		a.World.Maintain()
	}
	a.World.Maintain()
	return nil
}

// Teardown force-completes every pending animation, in id order, until
// nothing is left animating. It is used when a battle ends mid-chain.
func Teardown(a *Arena) {
	for round := 0; HasAnimations(a) && round < MaxSettleFrames; round++ {
		var done []event.Event
		for _, id := range a.World.Query(component.CAnimation) {
			anim := ecs.Grab[component.Animation](a.World, id)
			a.World.Remove(id, component.CAnimation)
			done = append(done, anim.OnComplete)
		}
		for _, e := range done {
			a.Events.Raise(e)
		}
		a.World.Maintain()
	}
	a.World.Maintain()
}

// AnimationHandler flashes characters that take damage.
func AnimationHandler(a *Arena) event.Handler {
	return func(e event.Event) {
		if e.Kind != event.Damaged || !live(a, e.Target) {
			return
		}
		if a.World.Has(e.Target, component.CAnimation) {
			return
		}
		setAnimation(a, e.Target, component.Animation{State: component.AnimHit, Frames: HitFrames})
	}
}
