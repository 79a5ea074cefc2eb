package component

import (
	"skirmish/internal/ecs"
	"skirmish/internal/geom"
)

const CPosition ecs.ComponentType = 1

// Position is the footprint a character, orb or field marker occupies.
// Flying characters have none.
type Position struct {
	geom.SizedPoint
}

func (Position) Type() ecs.ComponentType { return CPosition }

// At is the one-tile Position at p.
func At(p geom.Point) Position { return Position{geom.Single(p)} }
