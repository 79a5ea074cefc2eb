package ai

import (
	"skirmish/assets"
	"skirmish/internal/component"
	"skirmish/internal/status"
)

// Routines maps monster behaviors to their turn.
var Routines = map[component.BehaviorKind]Turn{
	component.BehaviorGunner: Chain(
		ReloadWhenEmpty(assets.SkillGunReload),
		UseSkillOnPlayer(assets.SkillGunShot),
		MoveTowardPlayer(1),
	),
	component.BehaviorBrute: Chain(
		WhenValue(KeyHurt, 2, UseSkillIfInRange(assets.SkillEnrage, 3)),
		UseSkillOnPlayer(assets.SkillSmash, assets.SkillClaw),
		MoveTowardPlayer(1),
	),
	component.BehaviorShaman: Chain(
		BuffAllyMissing(status.Regen, assets.SkillMend),
		BuffAllyMissing(status.Armored, assets.SkillStoneSkin),
		UseSkillOnPlayer(assets.SkillHexBolt),
		MoveTowardPlayer(4),
	),
	component.BehaviorSummoner: Chain(
		SummonWhenCharged(KeyHurt, 3, assets.SkillCallImp),
		SummonWhenCharged(KeyCharge, 50, assets.SkillSummonImp),
		ChargeUp(KeyCharge, 25),
		UseSkillOnPlayer(assets.SkillHexBolt),
		MoveTowardPlayer(4),
	),
	component.BehaviorGolem: Chain(
		UseSkillOnPlayer(assets.SkillSlam, assets.SkillRockThrow),
		MoveTowardPlayer(1),
	),
	component.BehaviorBird: Chain(
		WhenValue(KeyHurt, 1, UseSkillIfInRange(assets.SkillTakeFlight, 2)),
		UseSkillOnPlayer(assets.SkillPeck, assets.SkillFrostBreath),
		MoveTowardPlayer(1),
	),
}
