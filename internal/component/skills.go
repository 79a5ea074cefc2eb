package component

import "skirmish/internal/ecs"

const (
	CSkills    ecs.ComponentType = 7
	CResources ecs.ComponentType = 8
)

// Skills lists the skill names a character may invoke, in skill-bar order.
type Skills struct {
	Names []string
}

func (Skills) Type() ecs.ComponentType { return CSkills }

// Knows reports whether name is on the list.
func (s Skills) Knows(name string) bool {
	for _, n := range s.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Resources are the spendable budgets skills cost. Exhaustion counts up
// toward MaxExhaustion; ammo and focus count down.
type Resources struct {
	Ammo          int
	MaxAmmo       int
	Exhaustion    int
	MaxExhaustion int
	Focus         int
	MaxFocus      int
	// Elapsed accumulates ticks toward the next recovery step.
	Elapsed int
}

func (Resources) Type() ecs.ComponentType { return CResources }
