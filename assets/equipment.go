package assets

import "skirmish/internal/progression"

// Equipment is every item a player can buy and wear.
var Equipment = progression.Catalog{
	"Long Barrel": {
		Name: "Long Barrel", Description: "Reach further with every shot.",
		Slot: progression.SlotWeapon, Cost: 2,
		Effects: []progression.Effect{{Kind: progression.RangedRange, Amount: 2}},
	},
	"Heavy Rounds": {
		Name: "Heavy Rounds", Description: "Bolts hit harder.",
		Slot: progression.SlotWeapon, Cost: 3,
		Effects: []progression.Effect{{Kind: progression.BoltDamage, Amount: 1}},
	},
	"Warhammer": {
		Name: "Warhammer", Description: "Heavy blows that send foes flying.",
		Slot: progression.SlotWeapon, Cost: 3,
		Effects: []progression.Effect{
			{Kind: progression.MeleeDamage, Amount: 1},
			{Kind: progression.Knockback},
		},
	},
	"Chain Shirt": {
		Name: "Chain Shirt", Slot: progression.SlotArmor, Cost: 2,
		Effects: []progression.Effect{{Kind: progression.Armor, Amount: 1}},
	},
	"Padded Coat": {
		Name: "Padded Coat", Slot: progression.SlotArmor, Cost: 1,
		Effects: []progression.Effect{{Kind: progression.Health, Amount: 5}},
	},
	"Shimmer Cloak": {
		Name: "Shimmer Cloak", Slot: progression.SlotArmor, Cost: 3,
		Effects: []progression.Effect{{Kind: progression.Dodge, Amount: 2}},
	},
	"Ward Stone": {
		Name: "Ward Stone", Slot: progression.SlotAccessory, Cost: 2,
		Effects: []progression.Effect{{Kind: progression.Absorb, Amount: 3}},
	},
	"Bandolier": {
		Name: "Bandolier", Slot: progression.SlotAccessory, Cost: 1,
		Effects: []progression.Effect{{Kind: progression.MaxAmmo, Amount: 2}},
	},
	"Focus Crystal": {
		Name: "Focus Crystal", Slot: progression.SlotAccessory, Cost: 2,
		Effects: []progression.Effect{{Kind: progression.MaxFocus, Amount: 1}},
	},
	"Marching Boots": {
		Name: "Marching Boots", Slot: progression.SlotAccessory, Cost: 2,
		Effects: []progression.Effect{{Kind: progression.ExhaustionRelief, Amount: 10}},
	},
	"Marksman's Creed": {
		Name: "Marksman's Creed", Description: "Every hit steadies your aim.",
		Slot: progression.SlotMastery, Cost: 4,
		Effects: []progression.Effect{{Kind: progression.AimedShot}},
	},
	"Storm Tome": {
		Name: "Storm Tome", Description: "Learn to call down lightning orbs.",
		Slot: progression.SlotMastery, Cost: 4,
		Effects: []progression.Effect{{Kind: progression.UnlockSkill, Skill: SkillLightningOrb}},
	},
	"Blink Sigil": {
		Name: "Blink Sigil", Slot: progression.SlotMastery, Cost: 3,
		Effects: []progression.Effect{{Kind: progression.UnlockSkill, Skill: SkillBlink}},
	},
}
