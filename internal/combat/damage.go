// Package combat holds the pure arithmetic of a hit: dice rolls, damage
// flags, defensive pools and temperature.
package combat

import (
	"fmt"
	"math/rand"
	"strings"
)

// DieSides is the face count of every damage die.
const DieSides = 2

// Strength is a dice count. Half of it (rounded down) is guaranteed damage;
// the rest is rolled.
type Strength struct {
	Dice int `json:"dice"`
}

// NewStrength returns a Strength of n dice.
func NewStrength(n int) Strength { return Strength{Dice: n} }

// Guaranteed is the fixed part of a roll.
func (s Strength) Guaranteed() int { return s.Dice / 2 }

// Rolled is the number of dice actually thrown.
func (s Strength) Rolled() int { return s.Dice - s.Dice/2 }

// Range reports the lowest and highest possible roll.
func (s Strength) Range() (lo, hi int) {
	return s.Guaranteed() + s.Rolled(), s.Guaranteed() + s.Rolled()*DieSides
}

// Roll returns the guaranteed part plus Rolled() dice of DieSides faces.
func (s Strength) Roll(rng *rand.Rand) int {
	total := s.Guaranteed()
	for i := 0; i < s.Rolled(); i++ {
		total += rng.Intn(DieSides) + 1
	}
	return total
}

// Plus returns a Strength with n extra dice.
func (s Strength) Plus(n int) Strength { return Strength{Dice: s.Dice + n} }

func (s Strength) String() string { return fmt.Sprintf("%dd", s.Dice) }

// Options layers special behavior on top of a roll.
type Options uint16

const (
	Knockback Options = 1 << iota
	AddChargeStatus
	ConsumesChargeDamage
	ConsumesChargeKnockback
	RaiseTemperature
	LowerTemperature
	LargeTemperatureDelta
	TripleShot
	AimedShot
	PierceDefenses
)

var optionNames = []struct {
	flag Options
	name string
}{
	{Knockback, "knockback"},
	{AddChargeStatus, "add-charge"},
	{ConsumesChargeDamage, "consume-charge-damage"},
	{ConsumesChargeKnockback, "consume-charge-knockback"},
	{RaiseTemperature, "raise-temperature"},
	{LowerTemperature, "lower-temperature"},
	{LargeTemperatureDelta, "large-temperature"},
	{TripleShot, "triple-shot"},
	{AimedShot, "aimed-shot"},
	{PierceDefenses, "pierce"},
}

// Has reports whether every bit of f is set.
func (o Options) Has(f Options) bool { return o&f == f && f != 0 }

func (o Options) String() string {
	var parts []string
	for _, n := range optionNames {
		if o.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Hits is how many independent applications a roll makes.
func (o Options) Hits() int {
	if o.Has(TripleShot) {
		return 3
	}
	return 1
}

// ChargeDamageBonus is the guaranteed damage added when a hit consumes a
// static charge.
const ChargeDamageBonus = 3
