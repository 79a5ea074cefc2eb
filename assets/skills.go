package assets

import (
	"skirmish/internal/combat"
	"skirmish/internal/skill"
	"skirmish/internal/status"
)

// Player skill names.
const (
	SkillShoot        = "Shoot"
	SkillAimedShot    = "Aimed Shot"
	SkillTripleShot   = "Triple Shot"
	SkillReload       = "Reload"
	SkillFireAmmo     = "Fire Ammo"
	SkillIceAmmo      = "Ice Ammo"
	SkillDash         = "Dash"
	SkillSlash        = "Slash"
	SkillSweep        = "Sweep"
	SkillShieldBash   = "Shield Bash"
	SkillCharge       = "Charge"
	SkillBraceUp      = "Brace Up"
	SkillStaticBolt   = "Static Bolt"
	SkillDischarge    = "Discharge"
	SkillLightningOrb = "Lightning Orb"
	SkillFireField    = "Fire Field"
	SkillFireball     = "Fireball"
	SkillBlink        = "Blink"
)

// Monster skill names.
const (
	SkillGunShot     = "Gun Shot"
	SkillGunReload   = "Gunner Reload"
	SkillClaw        = "Claw"
	SkillSmash       = "Smash"
	SkillEnrage      = "Enrage"
	SkillHexBolt     = "Hex Bolt"
	SkillMend        = "Mend"
	SkillStoneSkin   = "Stone Skin"
	SkillSummonImp   = "Summon Imp"
	SkillCallImp     = "Call Imp"
	SkillSlam        = "Slam"
	SkillRockThrow   = "Rock Throw"
	SkillPeck        = "Peck"
	SkillTakeFlight  = "Take Flight"
	SkillFrostBreath = "Frost Breath"
)

// Skills are the base templates every battle starts from before equipment
// tunes them.
var Skills = []skill.Info{
	{
		Name: SkillShoot, Description: "Fire one round.",
		Target: skill.TargetEnemy, Range: 6, MustBeClear: true, AmmoCost: 1,
		Effect: skill.Effect{Kind: skill.EffectRangedAttack, Strength: combat.NewStrength(4), Bolt: GlyphBullet},
	},
	{
		Name: SkillAimedShot, Description: "A careful shot that steadies the next one.",
		Target: skill.TargetEnemy, Range: 7, MustBeClear: true, AmmoCost: 1, FocusCost: 1,
		Effect: skill.Effect{Kind: skill.EffectRangedAttack, Strength: combat.NewStrength(3), Options: combat.AimedShot, Bolt: GlyphBullet},
	},
	{
		Name: SkillTripleShot, Description: "Three quick rounds.",
		Target: skill.TargetEnemy, Range: 5, MustBeClear: true, AmmoCost: 3,
		Effect: skill.Effect{Kind: skill.EffectRangedAttack, Strength: combat.NewStrength(2), Options: combat.TripleShot, Bolt: GlyphBullet},
	},
	{
		Name: SkillReload, Description: "Refill the cylinder.",
		Target: skill.TargetNone,
		Effect: skill.Effect{Kind: skill.EffectReload},
	},
	{
		Name: SkillFireAmmo, Description: "Load incendiary rounds.",
		Target: skill.TargetNone, NoTime: true,
		Effect: skill.Effect{Kind: skill.EffectSwitchAmmo, Status: status.UsingFireAmmo},
	},
	{
		Name: SkillIceAmmo, Description: "Load cryo rounds.",
		Target: skill.TargetNone, NoTime: true,
		Effect: skill.Effect{Kind: skill.EffectSwitchAmmo, Status: status.UsingIceAmmo},
	},
	{
		Name: SkillDash, Description: "Sprint to a nearby tile.",
		Target: skill.TargetTile, Range: 3, MustBeClear: true, ExhaustionCost: 40,
		Effect: skill.Effect{Kind: skill.EffectMove},
	},
	{
		Name: SkillSlash, Description: "A sword cut.",
		Target: skill.TargetEnemy, Range: 1,
		Effect: skill.Effect{Kind: skill.EffectMeleeAttack, Strength: combat.NewStrength(5)},
	},
	{
		Name: SkillSweep, Description: "Cut everything in front of you.",
		Target: skill.TargetTile, Range: 1, ExhaustionCost: 30,
		Effect: skill.Effect{Kind: skill.EffectConeAttack, Strength: combat.NewStrength(3), Width: 2},
	},
	{
		Name: SkillShieldBash, Description: "Shove an enemy back.",
		Target: skill.TargetEnemy, Range: 1, ExhaustionCost: 20,
		Effect: skill.Effect{Kind: skill.EffectMeleeAttack, Strength: combat.NewStrength(2), Options: combat.Knockback},
	},
	{
		Name: SkillCharge, Description: "Rush an enemy and strike.",
		Target: skill.TargetEnemy, Range: 4, ExhaustionCost: 50,
		Effect: skill.Effect{Kind: skill.EffectChargeAttack, Strength: combat.NewStrength(4)},
	},
	{
		Name: SkillBraceUp, Description: "Raise your guard.",
		Target: skill.TargetNone, ExhaustionCost: 20,
		Effect: skill.Effect{Kind: skill.EffectBuff, Status: status.Armored, Duration: 300},
	},
	{
		Name: SkillStaticBolt, Description: "Leaves the target charged.",
		Target: skill.TargetEnemy, Range: 5, MustBeClear: true,
		Effect: skill.Effect{Kind: skill.EffectRangedAttack, Strength: combat.NewStrength(2), Options: combat.AddChargeStatus, Bolt: GlyphLightning},
	},
	{
		Name: SkillDischarge, Description: "Detonates a static charge.",
		Target: skill.TargetEnemy, Range: 5, MustBeClear: true, FocusCost: 1,
		Effect: skill.Effect{Kind: skill.EffectRangedAttack, Strength: combat.NewStrength(3), Options: combat.ConsumesChargeDamage | combat.ConsumesChargeKnockback, Bolt: GlyphLightning},
	},
	{
		Name: SkillLightningOrb, Description: "A slow orb that bursts on contact.",
		Target: skill.TargetTile, Range: 6, FocusCost: 1,
		Effect: skill.Effect{Kind: skill.EffectOrb, Strength: combat.NewStrength(4), Speed: 2, Radius: 1, Options: combat.AddChargeStatus},
	},
	{
		Name: SkillFireField, Description: "Sets the ground alight.",
		Target: skill.TargetTile, Range: 5, MustBeClear: true, FocusCost: 1,
		Effect: skill.Effect{Kind: skill.EffectField, Strength: combat.NewStrength(2), Radius: 1, Duration: 3, Options: combat.RaiseTemperature},
	},
	{
		Name: SkillFireball, Description: "An explosion of flame.",
		Target: skill.TargetTile, Range: 5, MustBeClear: true, FocusCost: 2,
		Effect: skill.Effect{Kind: skill.EffectExplode, Strength: combat.NewStrength(4), Radius: 1, Options: combat.RaiseTemperature | combat.LargeTemperatureDelta},
	},
	{
		Name: SkillBlink, Description: "Step through space.",
		Target: skill.TargetTile, Range: 4, ExhaustionCost: 30,
		Effect: skill.Effect{Kind: skill.EffectMove},
	},

	{
		Name: SkillGunShot, Target: skill.TargetPlayer, Range: 5, MustBeClear: true, AmmoCost: 1,
		Effect: skill.Effect{Kind: skill.EffectRangedAttack, Strength: combat.NewStrength(3), Bolt: GlyphBullet},
	},
	{
		Name: SkillGunReload, Target: skill.TargetNone,
		Effect: skill.Effect{Kind: skill.EffectReload},
	},
	{
		Name: SkillClaw, Target: skill.TargetPlayer, Range: 1,
		Effect: skill.Effect{Kind: skill.EffectMeleeAttack, Strength: combat.NewStrength(3)},
	},
	{
		Name: SkillSmash, Target: skill.TargetPlayer, Range: 1,
		Effect: skill.Effect{Kind: skill.EffectMeleeAttack, Strength: combat.NewStrength(5), Options: combat.Knockback},
	},
	{
		Name: SkillEnrage, Target: skill.TargetNone,
		Effect: skill.Effect{Kind: skill.EffectBuff, Status: status.Agitated, Duration: 300},
	},
	{
		Name: SkillHexBolt, Target: skill.TargetPlayer, Range: 5, MustBeClear: true,
		Effect: skill.Effect{Kind: skill.EffectRangedAttack, Strength: combat.NewStrength(2), Options: combat.LowerTemperature, Bolt: GlyphIceBolt},
	},
	{
		Name: SkillMend, Target: skill.TargetAny, Range: 4,
		Effect: skill.Effect{Kind: skill.EffectBuff, Status: status.Regen, Duration: 400},
	},
	{
		Name: SkillStoneSkin, Target: skill.TargetAny, Range: 4,
		Effect: skill.Effect{Kind: skill.EffectBuff, Status: status.Armored, Duration: 300, Amount: 2},
	},
	{
		Name: SkillSummonImp, Target: skill.TargetTile, Range: 3, MustBeClear: true,
		Effect: skill.Effect{Kind: skill.EffectField, Summon: "imp", Duration: 2},
	},
	{
		Name: SkillCallImp, Target: skill.TargetTile, Range: 2, MustBeClear: true,
		Effect: skill.Effect{Kind: skill.EffectSpawn, Summon: "imp"},
	},
	{
		Name: SkillSlam, Target: skill.TargetPlayer, Range: 1,
		Effect: skill.Effect{Kind: skill.EffectConeAttack, Strength: combat.NewStrength(4), Width: 2, Options: combat.Knockback},
	},
	{
		Name: SkillRockThrow, Target: skill.TargetPlayer, Range: 4, MustBeClear: true,
		Effect: skill.Effect{Kind: skill.EffectExplode, Strength: combat.NewStrength(3), Radius: 1},
	},
	{
		Name: SkillPeck, Target: skill.TargetPlayer, Range: 1,
		Effect: skill.Effect{Kind: skill.EffectMeleeAttack, Strength: combat.NewStrength(2), Options: combat.PierceDefenses},
	},
	{
		Name: SkillTakeFlight, Target: skill.TargetNone,
		Effect: skill.Effect{Kind: skill.EffectBuff, Status: status.Flying, Duration: 200},
	},
	{
		Name: SkillFrostBreath, Target: skill.TargetPlayer, Range: 2,
		Effect: skill.Effect{Kind: skill.EffectConeAttack, Strength: combat.NewStrength(3), Width: 2, Options: combat.LowerTemperature | combat.LargeTemperatureDelta},
	},
}

// SkillRegistry builds a fresh registry of the base templates.
func SkillRegistry() *skill.Registry {
	return skill.NewRegistry(Skills...)
}
