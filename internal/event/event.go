// Package event is the battle's synchronous side-effect dispatch.
//
// Simulation code raises an Event after it mutates the world; every handler
// subscribed at battle construction then runs, in subscription order, before
// Raise returns. A handler may raise further events; those are dispatched
// depth-first before the outer chain continues.
package event

import (
	"fmt"

	"skirmish/internal/ecs"
	"skirmish/internal/geom"
	"skirmish/internal/status"
)

// Kind tags an event.
type Kind uint8

const (
	None Kind = iota
	Moved
	CastComplete
	FlightComplete
	MeleeComplete
	ConeComplete
	ExplodeComplete
	FieldCastComplete
	Damaged
	KnockedBack
	Killed
	StatusAdded
	StatusRemoved
	StatusExpired
	Spawned
	OrbMoved
	Landed
	TurnStarted
)

var kindNames = [...]string{
	None:              "none",
	Moved:             "moved",
	CastComplete:      "cast-complete",
	FlightComplete:    "flight-complete",
	MeleeComplete:     "melee-complete",
	ConeComplete:      "cone-complete",
	ExplodeComplete:   "explode-complete",
	FieldCastComplete: "field-cast-complete",
	Damaged:           "damaged",
	KnockedBack:       "knocked-back",
	Killed:            "killed",
	StatusAdded:       "status-added",
	StatusRemoved:     "status-removed",
	StatusExpired:     "status-expired",
	Spawned:           "spawned",
	OrbMoved:          "orb-moved",
	Landed:            "landed",
	TurnStarted:       "turn-started",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Event is the payload handed to every handler. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind   Kind         `json:"kind"`
	Target ecs.EntityID `json:"target,omitempty"`
	Point  geom.Point   `json:"point"`
	Amount int          `json:"amount,omitempty"`
	Status status.Kind  `json:"status,omitempty"`
	Skill  string       `json:"skill,omitempty"`
}

// Handler reacts to one event.
type Handler func(Event)

type namedHandler struct {
	name string
	fn   Handler
}

// Bus holds the ordered handler chain of one battle.
type Bus struct {
	chain  []namedHandler
	depth  int
	raised int
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe appends h to the chain. Handlers run in subscription order.
func (b *Bus) Subscribe(name string, h Handler) {
	b.chain = append(b.chain, namedHandler{name: name, fn: h})
}

// Raise dispatches e to every handler synchronously.
func (b *Bus) Raise(e Event) {
	if e.Kind == None {
		return
	}
	b.raised++
	b.depth++
	defer func() { b.depth-- }()
	for _, h := range b.chain {
		h.fn(e)
	}
}

// RaiseKind is shorthand for raising an event that only names a target.
func (b *Bus) RaiseKind(k Kind, target ecs.EntityID) {
	b.Raise(Event{Kind: k, Target: target})
}

// Handlers lists the subscribed handler names in dispatch order.
func (b *Bus) Handlers() []string {
	out := make([]string, len(b.chain))
	for i, h := range b.chain {
		out[i] = h.name
	}
	return out
}

// Depth is the current dispatch nesting; 0 outside any handler.
func (b *Bus) Depth() int { return b.depth }

// Raised counts events dispatched since the bus was created.
func (b *Bus) Raised() int { return b.raised }
