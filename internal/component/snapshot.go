package component

import "skirmish/internal/ecs"

const CMapSnapshot ecs.ComponentType = 20

// MapSnapshot rides on the save file's helper entity.
type MapSnapshot struct {
	Walkable [][]bool
}

func (MapSnapshot) Type() ecs.ComponentType { return CMapSnapshot }
