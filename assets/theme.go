// Package assets holds the sample content the engine ships with: player
// classes, skill templates, the bestiary, encounters and the arena map.
package assets

import (
	"skirmish/internal/combat"
)

// Emoji constants used as entity glyphs.
const (
	GlyphGunslinger   = "🤠"
	GlyphKnight       = "🛡️"
	GlyphElementalist = "🧙"

	GlyphGunner   = "🦝"
	GlyphBrute    = "🦍"
	GlyphShaman   = "🦉"
	GlyphSummoner = "🧿"
	GlyphGolem    = "🗿"
	GlyphBird     = "🦅"
	GlyphImp      = "👺"

	GlyphBullet    = "•"
	GlyphFireBolt  = "🔥"
	GlyphIceBolt   = "❄️"
	GlyphLightning = "⚡"
	GlyphOrb       = "🔮"
	GlyphTrail     = "✨"
	GlyphFireField = "🟥"
	GlyphSummoning = "🌀"
	GlyphWall      = "🧱"
	GlyphFloor     = "⬛"
)

// ClassDef is a selectable player archetype.
type ClassDef struct {
	ID     string
	Name   string
	Emoji  string
	Lore   string // one-liner shown by the class picker
	Dodge  int
	Armor  int
	Absorb int
	Health int
	Ammo   int
	// MaxExhaustion caps how much exhaustion skills may pile up.
	MaxExhaustion int
	Focus         int
	Skills        []string
}

// Defenses returns the class's starting pools.
func (c ClassDef) Defenses() combat.Defenses {
	return combat.NewDefenses(c.Dodge, c.Armor, c.Absorb, c.Health)
}

// Classes is the ordered list of selectable player classes.
var Classes = []ClassDef{
	{
		ID:            "gunslinger",
		Name:          "Gunslinger",
		Emoji:         GlyphGunslinger,
		Lore:          "Six shots, two ammo pouches and no patience for melee",
		Dodge:         3,
		Armor:         0,
		Health:        20,
		Ammo:          6,
		MaxExhaustion: 100,
		Focus:         1,
		Skills:        []string{SkillShoot, SkillAimedShot, SkillTripleShot, SkillReload, SkillFireAmmo, SkillIceAmmo, SkillDash},
	},
	{
		ID:            "knight",
		Name:          "Knight",
		Emoji:         GlyphKnight,
		Lore:          "Heavy plate and a heavier shield",
		Dodge:         1,
		Armor:         2,
		Health:        30,
		MaxExhaustion: 100,
		Skills:        []string{SkillSlash, SkillSweep, SkillShieldBash, SkillCharge, SkillBraceUp},
	},
	{
		ID:            "elementalist",
		Name:          "Elementalist",
		Emoji:         GlyphElementalist,
		Lore:          "Lightning in one hand, fire in the other",
		Dodge:         2,
		Absorb:        4,
		Health:        18,
		MaxExhaustion: 100,
		Focus:         4,
		Skills:        []string{SkillStaticBolt, SkillDischarge, SkillLightningOrb, SkillFireField, SkillFireball, SkillBlink},
	},
}

// Class looks a class up by ID.
func Class(id string) (ClassDef, bool) {
	for _, c := range Classes {
		if c.ID == id {
			return c, true
		}
	}
	return ClassDef{}, false
}
