package component

import (
	"github.com/gdamore/tcell/v2"

	"skirmish/internal/ecs"
)

const CAppearance ecs.ComponentType = 12

// Appearance is how the terminal renderer draws an entity.
type Appearance struct {
	Glyph       string
	FGColor     tcell.Color
	RenderOrder int // higher draws on top
}

func (Appearance) Type() ecs.ComponentType { return CAppearance }
