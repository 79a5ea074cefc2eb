package combat

// Defenses are the pools a hit passes through, in order: dodge is consumed,
// armor blocks up to its value on every hit without being consumed, absorb
// is consumed, and whatever is left comes off health.
type Defenses struct {
	Dodge     int `json:"dodge"`
	MaxDodge  int `json:"max_dodge"`
	Armor     int `json:"armor"`
	Absorb    int `json:"absorb"`
	Health    int `json:"health"`
	MaxHealth int `json:"max_health"`
}

// NewDefenses returns full pools.
func NewDefenses(dodge, armor, absorb, health int) Defenses {
	return Defenses{
		Dodge:     dodge,
		MaxDodge:  dodge,
		Armor:     armor,
		Absorb:    absorb,
		Health:    health,
		MaxHealth: health,
	}
}

// Breakdown records how much of one hit each pool took.
type Breakdown struct {
	Rolled   int
	Dodged   int
	Armored  int
	Absorbed int
	Health   int
}

// Taken is the damage that got past dodge and armor.
func (b Breakdown) Taken() int { return b.Absorbed + b.Health }

// Apply runs one hit of amount through the pools. A piercing hit skips
// dodge and armor.
func (d *Defenses) Apply(amount int, pierce bool) Breakdown {
	b := Breakdown{Rolled: amount}
	if amount <= 0 {
		return b
	}
	left := amount
	if !pierce {
		b.Dodged = min(d.Dodge, left)
		d.Dodge -= b.Dodged
		left -= b.Dodged

		b.Armored = min(d.Armor, left)
		left -= b.Armored
	}
	b.Absorbed = min(d.Absorb, left)
	d.Absorb -= b.Absorbed
	left -= b.Absorbed

	b.Health = min(d.Health, left)
	d.Health -= b.Health
	return b
}

// Heal restores health up to MaxHealth and returns the amount restored.
func (d *Defenses) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := d.Health
	d.Health = min(d.MaxHealth, d.Health+amount)
	return d.Health - before
}

// RegainDodge refills the dodge pool up to MaxDodge.
func (d *Defenses) RegainDodge(amount int) {
	d.Dodge = min(d.MaxDodge, d.Dodge+max(amount, 0))
}

// AddAbsorb grants a temporary shield.
func (d *Defenses) AddAbsorb(amount int) {
	d.Absorb += max(amount, 0)
}

// Dead reports whether health is exhausted.
func (d Defenses) Dead() bool { return d.Health <= 0 }
