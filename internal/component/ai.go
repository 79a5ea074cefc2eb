package component

import "skirmish/internal/ecs"

const (
	CBehavior       ecs.ComponentType = 9
	CBehaviorValues ecs.ComponentType = 10
)

// BehaviorKind selects the turn routine of a non-player actor.
type BehaviorKind string

const (
	BehaviorField    BehaviorKind = "field"
	BehaviorOrb      BehaviorKind = "orb"
	BehaviorGunner   BehaviorKind = "gunner"
	BehaviorBrute    BehaviorKind = "brute"
	BehaviorShaman   BehaviorKind = "shaman"
	BehaviorSummoner BehaviorKind = "summoner"
	BehaviorGolem    BehaviorKind = "golem"
	BehaviorBird     BehaviorKind = "bird"
)

type Behavior struct {
	Kind BehaviorKind
}

func (Behavior) Type() ecs.ComponentType { return CBehavior }

// BehaviorValues is per-actor scratch state for multi-turn plans.
type BehaviorValues struct {
	Values map[string]int
}

func (BehaviorValues) Type() ecs.ComponentType { return CBehaviorValues }
