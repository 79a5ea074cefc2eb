package component

import (
	"skirmish/internal/combat"
	"skirmish/internal/ecs"
)

const CTemperature ecs.ComponentType = 6

type Temperature struct {
	combat.Temperature
}

func (Temperature) Type() ecs.ComponentType { return CTemperature }
