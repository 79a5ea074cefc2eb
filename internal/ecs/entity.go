package ecs

import (
	"errors"
	"fmt"
)

// EntityID uniquely identifies an entity in the world.
// IDs are minted in increasing order and never reused.
type EntityID uint64

// NilEntity is the zero value; no valid entity has this ID.
const NilEntity EntityID = 0

// ComponentType is a small integer key used to store/retrieve components.
type ComponentType uint8

// Component is implemented by every data struct stored in the world.
// Components are stored by value: read, modify the local copy, Add it back.
type Component interface {
	Type() ComponentType
}

// ErrMissingComponent is wrapped by every MissingComponentError.
var ErrMissingComponent = errors.New("ecs: missing component")

// MissingComponentError reports a Grab on an entity that was never given
// the requested component.
type MissingComponentError struct {
	Entity EntityID
	Type   ComponentType
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("ecs: entity %d has no component %d", e.Entity, e.Type)
}

func (e *MissingComponentError) Unwrap() error { return ErrMissingComponent }
