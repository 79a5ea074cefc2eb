package component

import (
	"skirmish/internal/combat"
	"skirmish/internal/ecs"
	"skirmish/internal/geom"
)

const (
	CAttack   ecs.ComponentType = 3
	CDefenses ecs.ComponentType = 5
)

// AttackKind tags how a pending attack resolves.
type AttackKind uint8

const (
	AttackRanged AttackKind = iota
	AttackMelee
	AttackCone
	AttackCharge
	AttackExplode
	AttackField
)

// Attack is a committed attack waiting for its animation to finish. It
// copies everything resolution needs; Attacker is only a weak reference.
type Attack struct {
	Kind     AttackKind
	Attacker ecs.EntityID
	Source   geom.Point
	Target   geom.Point
	Strength combat.Strength
	Options  combat.Options
	// Area is the precomputed tile set of cone and explode attacks.
	Area []geom.Point
	// Radius, Duration and Summon describe the field a field cast leaves.
	Radius   int
	Duration int
	Summon   string
}

func (Attack) Type() ecs.ComponentType { return CAttack }

// Defenses wraps the dodge, armor, absorb and health pools.
type Defenses struct {
	combat.Defenses
}

func (Defenses) Type() ecs.ComponentType { return CDefenses }
