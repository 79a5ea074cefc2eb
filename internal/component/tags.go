package component

import "skirmish/internal/ecs"

const (
	CTagPlayer       ecs.ComponentType = 13
	CTagSerializable ecs.ComponentType = 14
)

// TagPlayer marks the player-controlled entity.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }

// TagSerializable marks entities written to save files.
type TagSerializable struct{}

func (TagSerializable) Type() ecs.ComponentType { return CTagSerializable }
