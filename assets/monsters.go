package assets

import (
	"github.com/gdamore/tcell/v2"

	"skirmish/internal/combat"
	"skirmish/internal/component"
	"skirmish/internal/geom"
	"skirmish/internal/status"
)

// MonsterDef is one bestiary entry.
type MonsterDef struct {
	Kind     string
	Name     string
	Glyph    string
	Color    tcell.Color
	Width    int
	Height   int
	Behavior component.BehaviorKind
	Dodge    int
	Armor    int
	Absorb   int
	Health   int
	Ammo     int
	Skills   []string
	Traits   []status.Kind
	// Threat is what the monster costs a generated encounter's budget.
	Threat   int
}

// Defenses returns the monster's starting pools.
func (m MonsterDef) Defenses() combat.Defenses {
	return combat.NewDefenses(m.Dodge, m.Armor, m.Absorb, m.Health)
}

// Footprint is the monster's size anchored at origin.
func (m MonsterDef) Footprint(origin geom.Point) geom.SizedPoint {
	return geom.Sized(origin, max(m.Width, 1), max(m.Height, 1))
}

// Bestiary maps monster kinds to their definitions.
var Bestiary = map[string]MonsterDef{
	"gunner": {
		Kind: "gunner", Threat: 2, Name: "Gunner", Glyph: GlyphGunner, Color: tcell.ColorRed,
		Behavior: component.BehaviorGunner, Dodge: 2, Health: 12, Ammo: 3,
		Skills: []string{SkillGunShot, SkillGunReload},
	},
	"brute": {
		Kind: "brute", Threat: 3, Name: "Brute", Glyph: GlyphBrute, Color: tcell.ColorRed,
		Behavior: component.BehaviorBrute, Armor: 1, Health: 20,
		Skills: []string{SkillSmash, SkillEnrage},
	},
	"shaman": {
		Kind: "shaman", Threat: 3, Name: "Shaman", Glyph: GlyphShaman, Color: tcell.ColorPurple,
		Behavior: component.BehaviorShaman, Dodge: 1, Absorb: 3, Health: 10,
		Skills: []string{SkillMend, SkillStoneSkin, SkillHexBolt},
	},
	"summoner": {
		Kind: "summoner", Threat: 4, Name: "Summoner", Glyph: GlyphSummoner, Color: tcell.ColorPurple,
		Behavior: component.BehaviorSummoner, Dodge: 1, Health: 14,
		Skills: []string{SkillSummonImp, SkillCallImp, SkillHexBolt},
	},
	"golem": {
		Kind: "golem", Threat: 5, Name: "Golem", Glyph: GlyphGolem, Color: tcell.ColorGray,
		Width: 2, Height: 2, Behavior: component.BehaviorGolem, Armor: 3, Health: 35,
		Skills: []string{SkillSlam, SkillRockThrow},
		Traits: []status.Kind{status.Large},
	},
	"bird": {
		Kind: "bird", Threat: 2, Name: "Hawk", Glyph: GlyphBird, Color: tcell.ColorYellow,
		Behavior: component.BehaviorBird, Dodge: 4, Health: 8,
		Skills: []string{SkillPeck, SkillFrostBreath, SkillTakeFlight},
	},
	"imp": {
		Kind: "imp", Threat: 1, Name: "Imp", Glyph: GlyphImp, Color: tcell.ColorOrange,
		Behavior: component.BehaviorBrute, Health: 6,
		Skills: []string{SkillClaw},
	},
}

// Spawn places one monster kind at a tile.
type Spawn struct {
	Kind string
	At   geom.Point
}

// Encounter is a named set of spawns plus the player's start tile.
type Encounter struct {
	Name   string
	Player geom.Point
	Spawns []Spawn
}

// Encounters lists the sample fights in difficulty order.
var Encounters = []Encounter{
	{
		Name:   "Ambush",
		Player: geom.Pt(2, 6),
		Spawns: []Spawn{{"gunner", geom.Pt(9, 3)}, {"brute", geom.Pt(8, 8)}},
	},
	{
		Name:   "Coven",
		Player: geom.Pt(2, 6),
		Spawns: []Spawn{{"shaman", geom.Pt(10, 6)}, {"brute", geom.Pt(7, 5)}, {"summoner", geom.Pt(10, 9)}},
	},
	{
		Name:   "Quarry",
		Player: geom.Pt(2, 2),
		Spawns: []Spawn{{"golem", geom.Pt(8, 8)}, {"bird", geom.Pt(10, 2)}, {"gunner", geom.Pt(3, 10)}},
	},
}

// EncounterByName looks an encounter up, case-sensitively.
func EncounterByName(name string) (Encounter, bool) {
	for _, e := range Encounters {
		if e.Name == name {
			return e, true
		}
	}
	return Encounter{}, false
}
