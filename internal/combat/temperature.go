package combat

const (
	TemperatureMin = -150
	TemperatureMax = 150

	// BurnThreshold and FreezeThreshold are the inclusive limits at which
	// the burning and frozen traits apply.
	BurnThreshold   = 100
	FreezeThreshold = -100

	// TemperatureDecay is how far the temperature moves toward zero every
	// TemperatureDecayTicks.
	TemperatureDecay      = 10
	TemperatureDecayTicks = 100

	// TemperaturePerDie scales a hit's dice into a temperature change.
	TemperaturePerDie = 10
)

// Temperature is the derived heat of a character.
type Temperature struct {
	Current int `json:"current"`
	Elapsed int `json:"elapsed"`
}

// TemperatureDelta is the change a temperature-carrying hit of s applies.
func TemperatureDelta(s Strength, large bool) int {
	d := s.Dice * TemperaturePerDie
	if large {
		d *= 2
	}
	return d
}

// Change moves the temperature by delta and clamps it.
func (t *Temperature) Change(delta int) {
	t.Current = max(TemperatureMin, min(TemperatureMax, t.Current+delta))
}

// Tick decays the temperature toward zero for the elapsed ticks.
func (t *Temperature) Tick(ticks int) {
	t.Elapsed += ticks
	for t.Elapsed >= TemperatureDecayTicks {
		t.Elapsed -= TemperatureDecayTicks
		switch {
		case t.Current > 0:
			t.Current = max(0, t.Current-TemperatureDecay)
		case t.Current < 0:
			t.Current = min(0, t.Current+TemperatureDecay)
		}
	}
}

// Burning reports whether the burning threshold is reached.
func (t Temperature) Burning() bool { return t.Current >= BurnThreshold }

// Frozen reports whether the freezing threshold is reached.
func (t Temperature) Frozen() bool { return t.Current <= FreezeThreshold }

// BurnDamage is the fire damage a burning character takes each turn.
var BurnDamage = Strength{Dice: 2}
