package component

import "skirmish/internal/ecs"

const CTime ecs.ComponentType = 2

// Time is the banked tick balance the scheduler auctions turns on.
type Time struct {
	Ticks int `json:"ticks"`
}

func (Time) Type() ecs.ComponentType { return CTime }
