package component

import (
	"skirmish/internal/ecs"
	"skirmish/internal/status"
)

const CStatuses ecs.ComponentType = 4

// Statuses holds a character's timed statuses and traits.
type Statuses struct {
	status.Store
}

func (Statuses) Type() ecs.ComponentType { return CStatuses }
