package progression

import (
	"fmt"

	"skirmish/internal/combat"
	"skirmish/internal/component"
	"skirmish/internal/skill"
)

// BuildSkills returns a battle's own copy of base with equipment folded
// into the player's skills, and the player's skill bar: known first, then
// any skills the equipment unlocks. Templates the player does not use are
// left as they are, so monsters sharing a skill name are unaffected.
func BuildSkills(base *skill.Registry, known []string, equipped []Equipment) (*skill.Registry, []string, error) {
	reg := base.Clone()
	bar := append([]string(nil), known...)
	for _, e := range equipped {
		for _, fx := range e.Effects {
			if fx.Kind != UnlockSkill || contains(bar, fx.Skill) {
				continue
			}
			if !reg.Has(fx.Skill) {
				return nil, nil, fmt.Errorf("%s unlocks %q: %w", e.Name, fx.Skill, skill.ErrUnknownSkill)
			}
			bar = append(bar, fx.Skill)
		}
	}

	for _, name := range bar {
		if err := reg.Update(name, func(i *skill.Info) { applySkillEffects(i, equipped) }); err != nil {
			return nil, nil, err
		}
	}
	return reg, bar, nil
}

func applySkillEffects(i *skill.Info, equipped []Equipment) {
	ranged := i.Effect.Kind == skill.EffectRangedAttack
	melee := false
	switch i.Effect.Kind {
	case skill.EffectMeleeAttack, skill.EffectConeAttack, skill.EffectChargeAttack:
		melee = true
	}
	for _, e := range equipped {
		for _, fx := range e.Effects {
			switch {
			case fx.Kind == BoltDamage && ranged:
				i.Effect.Strength = i.Effect.Strength.Plus(fx.Amount)
			case fx.Kind == MeleeDamage && melee:
				i.Effect.Strength = i.Effect.Strength.Plus(fx.Amount)
			case fx.Kind == RangedRange && ranged:
				i.Range += fx.Amount
			case fx.Kind == Knockback && melee:
				i.Effect.Options |= combat.Knockback
			case fx.Kind == AimedShot && ranged:
				i.Effect.Options |= combat.AimedShot
			case fx.Kind == ExhaustionRelief:
				i.ExhaustionCost = max(0, i.ExhaustionCost-fx.Amount)
			}
		}
	}
}

// BuildDefenses adds the equipment's pool bonuses to base and refills
// every pool.
func BuildDefenses(base combat.Defenses, equipped []Equipment) combat.Defenses {
	dodge, armor, absorb, health := base.MaxDodge, base.Armor, base.Absorb, base.MaxHealth
	for _, e := range equipped {
		for _, fx := range e.Effects {
			switch fx.Kind {
			case Dodge:
				dodge += fx.Amount
			case Armor:
				armor += fx.Amount
			case Absorb:
				absorb += fx.Amount
			case Health:
				health += fx.Amount
			}
		}
	}
	return combat.NewDefenses(max(dodge, 0), max(armor, 0), max(absorb, 0), max(health, 1))
}

// BuildResources adds the equipment's capacity bonuses to base and fills
// ammo and focus.
func BuildResources(base component.Resources, equipped []Equipment) component.Resources {
	res := base
	for _, e := range equipped {
		for _, fx := range e.Effects {
			switch fx.Kind {
			case MaxAmmo:
				res.MaxAmmo += fx.Amount
			case MaxFocus:
				res.MaxFocus += fx.Amount
			}
		}
	}
	res.MaxAmmo = max(res.MaxAmmo, 0)
	res.MaxFocus = max(res.MaxFocus, 0)
	res.Ammo = res.MaxAmmo
	res.Focus = res.MaxFocus
	res.Exhaustion = 0
	return res
}

func contains(names []string, n string) bool {
	for _, m := range names {
		if m == n {
			return true
		}
	}
	return false
}
