package system

import (
	"math/rand"
	"testing"

	"skirmish/assets"
	"skirmish/internal/combat"
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/factory"
	"skirmish/internal/gamemap"
	"skirmish/internal/geom"
	"skirmish/internal/skill"
	"skirmish/internal/status"
)

// testSkills is a small registry covering every effect kind.
func testSkills() *skill.Registry {
	return skill.NewRegistry(
		skill.Info{Name: "Bolt", Target: skill.TargetEnemy, Range: 5, MustBeClear: true, AmmoCost: 1,
			Effect: skill.Effect{Kind: skill.EffectRangedAttack, Strength: combat.NewStrength(2), Options: combat.Knockback}},
		skill.Info{Name: "Zap", Target: skill.TargetEnemy, Range: 5, MustBeClear: true,
			Effect: skill.Effect{Kind: skill.EffectRangedAttack, Strength: combat.NewStrength(2)}},
		skill.Info{Name: "Aim", Target: skill.TargetEnemy, Range: 5,
			Effect: skill.Effect{Kind: skill.EffectRangedAttack, Strength: combat.NewStrength(2), Options: combat.AimedShot}},
		skill.Info{Name: "Charge Up", Target: skill.TargetEnemy, Range: 5,
			Effect: skill.Effect{Kind: skill.EffectRangedAttack, Strength: combat.NewStrength(1), Options: combat.AddChargeStatus}},
		skill.Info{Name: "Discharge", Target: skill.TargetEnemy, Range: 5,
			Effect: skill.Effect{Kind: skill.EffectRangedAttack, Strength: combat.NewStrength(1), Options: combat.ConsumesChargeDamage | combat.ConsumesChargeKnockback}},
		skill.Info{Name: "Slash", Target: skill.TargetEnemy, Range: 1,
			Effect: skill.Effect{Kind: skill.EffectMeleeAttack, Strength: combat.NewStrength(2)}},
		skill.Info{Name: "Sweep", Target: skill.TargetTile, Range: 1,
			Effect: skill.Effect{Kind: skill.EffectConeAttack, Strength: combat.NewStrength(2), Width: 2}},
		skill.Info{Name: "Rush", Target: skill.TargetEnemy, Range: 5, ExhaustionCost: 50,
			Effect: skill.Effect{Kind: skill.EffectChargeAttack, Strength: combat.NewStrength(2)}},
		skill.Info{Name: "Blast", Target: skill.TargetTile, Range: 6,
			Effect: skill.Effect{Kind: skill.EffectExplode, Strength: combat.NewStrength(2), Radius: 1}},
		skill.Info{Name: "Burn Ground", Target: skill.TargetTile, Range: 6,
			Effect: skill.Effect{Kind: skill.EffectField, Strength: combat.NewStrength(2), Radius: 1, Duration: 2}},
		skill.Info{Name: "Circle", Target: skill.TargetTile, Range: 6,
			Effect: skill.Effect{Kind: skill.EffectField, Summon: "imp", Duration: 1}},
		skill.Info{Name: "Orb", Target: skill.TargetTile, Range: 6, FocusCost: 1,
			Effect: skill.Effect{Kind: skill.EffectOrb, Strength: combat.NewStrength(2), Speed: 2, Radius: 1}},
		skill.Info{Name: "Step", Target: skill.TargetTile, Range: 2, MustBeClear: true,
			Effect: skill.Effect{Kind: skill.EffectMove}},
		skill.Info{Name: "Guard", Target: skill.TargetNone,
			Effect: skill.Effect{Kind: skill.EffectBuff, Status: status.Armored, Duration: 200, Amount: 1}},
		skill.Info{Name: "Bless", Target: skill.TargetAny, Range: 3,
			Effect: skill.Effect{Kind: skill.EffectBuff, Status: status.Regen, Duration: 300}},
		skill.Info{Name: "Call", Target: skill.TargetTile, Range: 3,
			Effect: skill.Effect{Kind: skill.EffectSpawn, Summon: "imp"}},
		skill.Info{Name: "Reload", Target: skill.TargetNone,
			Effect: skill.Effect{Kind: skill.EffectReload}},
		skill.Info{Name: "Fire Rounds", Target: skill.TargetNone, NoTime: true,
			Effect: skill.Effect{Kind: skill.EffectSwitchAmmo, Status: status.UsingFireAmmo}},
	)
}

func newTestArena(t *testing.T) *Arena {
	t.Helper()
	a := NewArena(gamemap.Open(), testSkills(), rand.New(rand.NewSource(1)))
	RegisterHandlers(a)
	return a
}

// addPlayer places a player knowing every test skill, ready to act.
func addPlayer(a *Arena, p geom.Point) ecs.EntityID {
	id := factory.NewPlayer(a.World, p, factory.PlayerSpec{
		Name:     "Hero",
		Defenses: combat.NewDefenses(0, 0, 0, 30),
		Resources: component.Resources{
			Ammo: 6, MaxAmmo: 6, MaxExhaustion: 100, Focus: 3, MaxFocus: 3,
		},
		Skills: a.Skills.Names(),
	})
	a.World.Add(id, component.Time{Ticks: BaseActionCost})
	return id
}

// addDummy places a defenseless monster with the given health.
func addDummy(a *Arena, p geom.Point, health int) ecs.EntityID {
	return factory.NewMonster(a.World, assets.MonsterDef{
		Kind: "dummy", Name: "Dummy", Health: health, Behavior: component.BehaviorBrute,
	}, p)
}

func health(a *Arena, id ecs.EntityID) int {
	return ecs.Grab[component.Defenses](a.World, id).Health
}

func origin(t *testing.T, a *Arena, id ecs.EntityID) geom.Point {
	t.Helper()
	pos, ok := Position(a, id)
	if !ok {
		t.Fatalf("entity %d is off the map", id)
	}
	return pos.Origin
}

func invoke(t *testing.T, a *Arena, id ecs.EntityID, name string, target *geom.Point) {
	t.Helper()
	a.World.Add(id, component.Time{Ticks: BaseActionCost})
	if err := InvokeSkill(a, id, name, target); err != nil {
		t.Fatalf("InvokeSkill(%s): %v", name, err)
	}
	if err := Settle(a); err != nil {
		t.Fatalf("Settle: %v", err)
	}
}

func ptr(p geom.Point) *geom.Point { return &p }
