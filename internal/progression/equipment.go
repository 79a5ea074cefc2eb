// Package progression holds what outlives a battle: the equipment a player
// owns and wears, and how that equipment tunes the skills and pools a
// battle starts from.
package progression

import (
	"errors"
	"fmt"
	"sort"
)

// Slot is an equipment slot kind.
type Slot string

const (
	SlotWeapon    Slot = "weapon"
	SlotArmor     Slot = "armor"
	SlotAccessory Slot = "accessory"
	SlotMastery   Slot = "mastery"
)

// Slots lists every slot in display order.
var Slots = []Slot{SlotWeapon, SlotArmor, SlotAccessory, SlotMastery}

// Capacity is how many items each slot holds.
func (s Slot) Capacity() int {
	switch s {
	case SlotWeapon:
		return 1
	case SlotArmor, SlotMastery:
		return 2
	case SlotAccessory:
		return 3
	}
	return 0
}

// EffectKind tags one modifier an item applies.
type EffectKind uint8

const (
	// UnlockSkill adds Skill to the player's skill bar.
	UnlockSkill EffectKind = iota + 1
	// BoltDamage adds Amount dice to ranged attacks.
	BoltDamage
	// MeleeDamage adds Amount dice to melee, cone and charge attacks.
	MeleeDamage
	// RangedRange extends ranged attacks by Amount tiles.
	RangedRange
	MaxAmmo
	Armor
	Dodge
	Absorb
	Health
	// Knockback makes melee attacks knock back.
	Knockback
	// AimedShot makes ranged attacks steady the shooter.
	AimedShot
	// ExhaustionRelief lowers exhaustion costs by Amount.
	ExhaustionRelief
	MaxFocus
)

var effectNames = map[EffectKind]string{
	UnlockSkill:      "unlock skill",
	BoltDamage:       "bolt damage",
	MeleeDamage:      "melee damage",
	RangedRange:      "ranged range",
	MaxAmmo:          "max ammo",
	Armor:            "armor",
	Dodge:            "dodge",
	Absorb:           "absorb",
	Health:           "health",
	Knockback:        "knockback",
	AimedShot:        "aimed shot",
	ExhaustionRelief: "exhaustion relief",
	MaxFocus:         "max focus",
}

func (k EffectKind) String() string {
	if n, ok := effectNames[k]; ok {
		return n
	}
	return fmt.Sprintf("effect(%d)", k)
}

// Effect is one modifier carried by an item.
type Effect struct {
	Kind   EffectKind
	Amount int
	Skill  string
}

func (e Effect) String() string {
	switch {
	case e.Kind == UnlockSkill:
		return "grants " + e.Skill
	case e.Amount != 0:
		return fmt.Sprintf("%+d %s", e.Amount, e.Kind)
	}
	return e.Kind.String()
}

// Equipment is an item template.
type Equipment struct {
	Name        string
	Description string
	Slot        Slot
	Cost        int
	Effects     []Effect
}

var (
	ErrUnknownEquipment = errors.New("progression: unknown equipment")
	ErrSlotFull         = errors.New("progression: slot is full")
	ErrNotEquipped      = errors.New("progression: item is not equipped")
	ErrAlreadyEquipped  = errors.New("progression: item is already equipped")
	ErrLocked           = errors.New("progression: item is not unlocked")
	ErrNoInfluence      = errors.New("progression: not enough influence")
)

// Catalog maps item names to templates.
type Catalog map[string]Equipment

// Lookup returns the named item.
func (c Catalog) Lookup(name string) (Equipment, error) {
	e, ok := c[name]
	if !ok {
		return Equipment{}, fmt.Errorf("%w: %q", ErrUnknownEquipment, name)
	}
	return e, nil
}

// Names lists every item name in sorted order.
func (c Catalog) Names() []string {
	out := make([]string, 0, len(c))
	for n := range c {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// InSlot lists the items of one slot in sorted order.
func (c Catalog) InSlot(s Slot) []Equipment {
	var out []Equipment
	for _, n := range c.Names() {
		if c[n].Slot == s {
			out = append(out, c[n])
		}
	}
	return out
}
