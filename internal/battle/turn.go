package battle

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"skirmish/internal/ai"
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/geom"
	"skirmish/internal/logger"
	"skirmish/internal/system"
)

// MaxTurnsBetweenPlayer bounds AdvanceToPlayer.
const MaxTurnsBetweenPlayer = 10_000

// CommandKind selects what a player command does.
type CommandKind uint8

const (
	CommandWait CommandKind = iota
	CommandMove
	CommandSkill
)

func (k CommandKind) String() string {
	return [...]string{"wait", "move", "skill"}[k]
}

// Command is one player action.
type Command struct {
	Kind   CommandKind
	Dir    geom.Direction
	Skill  string
	Target *geom.Point
}

// Wait passes the turn.
func Wait() Command { return Command{Kind: CommandWait} }

// Move steps one tile in dir.
func Move(dir geom.Direction) Command { return Command{Kind: CommandMove, Dir: dir} }

// UseSkill invokes name, at target when the skill takes one.
func UseSkill(name string, target *geom.Point) Command {
	return Command{Kind: CommandSkill, Skill: name, Target: target}
}

// AdvanceToPlayer runs every other actor's turn until the player is due or
// the battle is decided. The player's start-of-turn upkeep runs once as the
// turn comes up.
func (b *Battle) AdvanceToPlayer(ctx context.Context) (Outcome, error) {
	for i := 0; ; i++ {
		if o := b.Outcome(); o != Ongoing {
			return o, nil
		}
		if i >= MaxTurnsBetweenPlayer {
			return Ongoing, ErrStalled
		}
		id, ok := system.WaitForNext(b.Arena)
		if !ok {
			return b.Outcome(), nil
		}
		if id == b.Player {
			if b.playerTurnStarted {
				return Ongoing, nil
			}
			b.playerTurnStarted = true
			system.StartTurn(b.Arena, id)
			if err := b.Settle(); err != nil {
				return Ongoing, err
			}
			continue
		}
		if err := b.actorTurn(ctx, id); err != nil {
			return Ongoing, err
		}
	}
}

func (b *Battle) actorTurn(ctx context.Context, id ecs.EntityID) error {
	kind := ""
	if beh, ok := ecs.Lookup[component.Behavior](b.Arena.World, id); ok {
		kind = string(beh.Kind)
	}
	_, span := b.tracer.Start(ctx, "battle.turn", trace.WithAttributes(
		attribute.Int64("actor", int64(id)),
		attribute.String("behavior", kind),
		attribute.Int("ticks", system.Ticks(b.Arena, id)),
	))
	defer span.End()
	b.span = span
	defer func() { b.span = nil }()

	err := ai.TakeTurn(b.Arena, id)
	if err == nil {
		err = b.Settle()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Log.WithFields(logrus.Fields{"battle": b.ID.String(), "entity": id}).WithError(err).Warn("actor turn failed")
		return fmt.Errorf("battle: turn of entity %d: %w", id, err)
	}
	return nil
}

// Do executes cmd for the player. A rejected command returns the rejection
// and leaves the battle untouched. Accepted commands are settled before Do
// returns.
func (b *Battle) Do(ctx context.Context, cmd Command) error {
	if b.Outcome() != Ongoing {
		return ErrBattleOver
	}
	if next, ok := system.NextActor(b.Arena); !ok || next != b.Player || system.Ticks(b.Arena, b.Player) < system.BaseActionCost {
		return ErrNotPlayersTurn
	}

	ctx, span := b.tracer.Start(ctx, "battle.turn", trace.WithAttributes(
		attribute.Int64("actor", int64(b.Player)),
		attribute.String("command", cmd.Kind.String()),
		attribute.Int("ticks", system.Ticks(b.Arena, b.Player)),
	))
	defer span.End()
	b.span = span
	defer func() { b.span = nil }()

	before := system.Ticks(b.Arena, b.Player)
	var err error
	switch cmd.Kind {
	case CommandWait:
		err = system.SpendTime(b.Arena, b.Player, system.BaseActionCost)
	case CommandMove:
		err = system.MoveDirection(b.Arena, b.Player, cmd.Dir)
	case CommandSkill:
		err = b.invoke(ctx, cmd)
	default:
		err = fmt.Errorf("battle: unknown command %d", cmd.Kind)
	}
	if err != nil {
		span.SetAttributes(attribute.String("rejected", err.Error()))
		return err
	}
	if system.Ticks(b.Arena, b.Player) < before {
		b.Turn++
		b.playerTurnStarted = false
	}
	return b.Settle()
}

func (b *Battle) invoke(ctx context.Context, cmd Command) error {
	attrs := []attribute.KeyValue{attribute.String("skill", cmd.Skill)}
	if cmd.Target != nil {
		attrs = append(attrs, attribute.String("target", cmd.Target.String()))
	}
	_, span := b.tracer.Start(ctx, "skill.invoke", trace.WithAttributes(attrs...))
	defer span.End()
	if err := system.InvokeSkill(b.Arena, b.Player, cmd.Skill, cmd.Target); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
