// Package skill describes what a skill does. Templates are plain data; the
// simulation resolves them by name through a Registry built for each battle.
package skill

import (
	"errors"
	"fmt"
	"sort"

	"skirmish/internal/combat"
	"skirmish/internal/status"
)

// ErrUnknownSkill is returned when a name has no template in the registry.
var ErrUnknownSkill = errors.New("skill: unknown skill")

// TargetType is what a skill may be aimed at.
type TargetType uint8

const (
	TargetNone TargetType = iota
	TargetTile
	TargetPlayer
	TargetEnemy
	TargetAny
	TargetAnyoneButSelf
)

func (t TargetType) String() string {
	switch t {
	case TargetNone:
		return "none"
	case TargetTile:
		return "tile"
	case TargetPlayer:
		return "player"
	case TargetEnemy:
		return "enemy"
	case TargetAny:
		return "any"
	case TargetAnyoneButSelf:
		return "anyone-but-self"
	}
	return fmt.Sprintf("target(%d)", uint8(t))
}

// NeedsPoint reports whether invoking requires a target point.
func (t TargetType) NeedsPoint() bool { return t != TargetNone }

// EffectKind selects the handler that resolves a committed skill.
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectMove
	EffectRangedAttack
	EffectMeleeAttack
	EffectConeAttack
	EffectChargeAttack
	EffectExplode
	EffectField
	EffectOrb
	EffectBuff
	EffectSpawn
	EffectReload
	EffectSwitchAmmo
)

var effectNames = [...]string{
	EffectNone:         "none",
	EffectMove:         "move",
	EffectRangedAttack: "ranged",
	EffectMeleeAttack:  "melee",
	EffectConeAttack:   "cone",
	EffectChargeAttack: "charge",
	EffectExplode:      "explode",
	EffectField:        "field",
	EffectOrb:          "orb",
	EffectBuff:         "buff",
	EffectSpawn:        "spawn",
	EffectReload:       "reload",
	EffectSwitchAmmo:   "switch-ammo",
}

func (k EffectKind) String() string {
	if int(k) < len(effectNames) {
		return effectNames[k]
	}
	return fmt.Sprintf("effect(%d)", uint8(k))
}

// Effect holds the parameters of an effect. Which fields matter depends on
// Kind.
type Effect struct {
	Kind     EffectKind      `json:"kind"`
	Strength combat.Strength `json:"strength"`
	Options  combat.Options  `json:"options,omitempty"`
	// Bolt names the projectile sprite of a ranged attack.
	Bolt string `json:"bolt,omitempty"`
	// Width of a cone.
	Width int `json:"width,omitempty"`
	// Radius of an explosion, field or orb blast.
	Radius int `json:"radius,omitempty"`
	// Duration is field turns for fields and ticks for buffs.
	Duration int `json:"duration,omitempty"`
	// Speed is tiles per orb turn.
	Speed int `json:"speed,omitempty"`
	// Status applied by buffs, or the ammo trait selected by SwitchAmmo.
	Status status.Kind `json:"status,omitempty"`
	// Summon is a bestiary entry for spawns and summoning fields.
	Summon string `json:"summon,omitempty"`
	// Amount is ammo restored by a reload or absorb granted by a buff.
	Amount int `json:"amount,omitempty"`
}

// Info is an immutable skill template.
type Info struct {
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Target         TargetType `json:"target"`
	Effect         Effect     `json:"effect"`
	Range          int        `json:"range,omitempty"`
	MustBeClear    bool       `json:"must_be_clear,omitempty"`
	AmmoCost       int        `json:"ammo_cost,omitempty"`
	ExhaustionCost int        `json:"exhaustion_cost,omitempty"`
	FocusCost      int        `json:"focus_cost,omitempty"`
	NoTime         bool       `json:"no_time,omitempty"`
}

// HasRange reports whether the skill is limited by distance.
func (i Info) HasRange() bool { return i.Range > 0 && i.Target.NeedsPoint() }

// Registry maps names to templates for one battle.
type Registry struct {
	skills map[string]Info
}

// NewRegistry builds a registry from templates. Later duplicates replace
// earlier ones.
func NewRegistry(infos ...Info) *Registry {
	r := &Registry{skills: make(map[string]Info, len(infos))}
	for _, i := range infos {
		r.Add(i)
	}
	return r
}

// Add inserts or replaces a template.
func (r *Registry) Add(i Info) {
	r.skills[i.Name] = i
}

// Get looks a template up by name.
func (r *Registry) Get(name string) (Info, error) {
	i, ok := r.skills[name]
	if !ok {
		return Info{}, fmt.Errorf("%w: %q", ErrUnknownSkill, name)
	}
	return i, nil
}

// Must looks a template up and panics when it is missing. Use it for names
// that came out of the registry itself.
func (r *Registry) Must(name string) Info {
	i, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return i
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.skills[name]
	return ok
}

// Update applies fn to a copy of the named template and stores the result.
func (r *Registry) Update(name string, fn func(*Info)) error {
	i, err := r.Get(name)
	if err != nil {
		return err
	}
	fn(&i)
	r.skills[name] = i
	return nil
}

// Names lists registered names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.skills))
	for n := range r.skills {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len is the number of templates.
func (r *Registry) Len() int { return len(r.skills) }

// Clone returns an independent copy so a battle can tune its own templates.
func (r *Registry) Clone() *Registry {
	c := &Registry{skills: make(map[string]Info, len(r.skills))}
	for n, i := range r.skills {
		c.skills[n] = i
	}
	return c
}
