package battle

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"skirmish/internal/ai"
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/event"
	"skirmish/internal/system"
)

// register builds the handler chain. Order matters: movement consequences
// land before combat resolution, and the log and bookkeeping see the world
// after every rule has run.
func (b *Battle) register() {
	a := b.Arena
	a.Events.Subscribe("movement", system.MovementHandler(a))
	a.Events.Subscribe("combat", system.CombatHandler(a))
	a.Events.Subscribe("status", system.StatusHandler(a))
	a.Events.Subscribe("ai", ai.Handler(a))
	a.Events.Subscribe("animation", system.AnimationHandler(a))
	a.Events.Subscribe("log", system.LogHandler(a))
	a.Events.Subscribe("bookkeeping", b.bookkeeping)
	a.Events.Subscribe("telemetry", b.annotate)
}

// bookkeeping counts kills and the experience they are worth: a monster's
// maximum health.
func (b *Battle) bookkeeping(e event.Event) {
	if e.Kind != event.Killed || system.IsPlayer(b.Arena, e.Target) {
		return
	}
	if !b.Arena.World.Has(e.Target, component.CCharacter) {
		return
	}
	b.kills++
	if def, ok := ecs.Lookup[component.Defenses](b.Arena.World, e.Target); ok {
		b.experience += def.MaxHealth
	}
}

var annotated = map[event.Kind]bool{
	event.Damaged:     true,
	event.KnockedBack: true,
	event.Killed:      true,
	event.StatusAdded: true,
	event.Spawned:     true,
	event.Landed:      true,
}

// annotate records notable events on the span of the turn in progress.
func (b *Battle) annotate(e event.Event) {
	if b.span == nil || !annotated[e.Kind] || !b.span.IsRecording() {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.Int64("target", int64(e.Target)),
		attribute.String("name", system.Name(b.Arena, e.Target)),
	}
	if e.Amount != 0 {
		attrs = append(attrs, attribute.Int("amount", e.Amount))
	}
	if e.Status != "" {
		attrs = append(attrs, attribute.String("status", string(e.Status)))
	}
	b.span.AddEvent(e.Kind.String(), trace.WithAttributes(attrs...))
}
