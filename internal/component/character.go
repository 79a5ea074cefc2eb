package component

import "skirmish/internal/ecs"

const CCharacter ecs.ComponentType = 11

// Character marks something that fights: it occupies tiles, takes damage
// and appears in the combat log under Name. Kind is its bestiary entry.
type Character struct {
	Name string
	Kind string
}

func (Character) Type() ecs.ComponentType { return CCharacter }
