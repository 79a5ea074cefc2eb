// Package battle runs one fight: it builds the arena from a class, an
// encounter and the player's progression, drives the scheduler between
// player commands and saves or restores the whole state.
package battle

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"skirmish/assets"
	"skirmish/internal/combatlog"
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/factory"
	"skirmish/internal/gamemap"
	"skirmish/internal/logger"
	"skirmish/internal/progression"
	"skirmish/internal/skill"
	"skirmish/internal/system"
	"skirmish/internal/telemetry"
)

var (
	// ErrBattleOver is returned for commands issued after the outcome is
	// decided.
	ErrBattleOver = errors.New("battle: battle is over")
	// ErrNotPlayersTurn is returned for commands issued while someone else
	// is due to act.
	ErrNotPlayersTurn = errors.New("battle: not the player's turn")
	// ErrStalled is returned when the scheduler runs too many turns without
	// reaching the player.
	ErrStalled = errors.New("battle: scheduler stalled")
)

// Outcome is how a battle stands.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Victory
	Defeat
)

func (o Outcome) String() string {
	switch o {
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	}
	return "ongoing"
}

// Setup is everything New needs.
type Setup struct {
	// Map is used as is when set. Otherwise MapPath is loaded, and without
	// a path the bundled arena is used.
	Map     *gamemap.Map
	MapPath string

	Class     assets.ClassDef
	Encounter assets.Encounter

	// Progression defaults to a fresh profile; Catalog to the bundled
	// equipment.
	Progression *progression.State
	Catalog     progression.Catalog

	// Skills defaults to the bundled templates.
	Skills *skill.Registry

	// Seed 0 picks one from the clock.
	Seed  int64
	Sinks []combatlog.Sink

	// Tracer defaults to the global "battle" tracer.
	Tracer trace.Tracer
}

// Battle is one fight in progress. It is not safe for concurrent use.
type Battle struct {
	ID        uuid.UUID
	Arena     *system.Arena
	Player    ecs.EntityID
	Encounter string
	Class     string
	// Turn counts the player's completed actions.
	Turn int
	// OnFrame, when set, is called before every animation frame Settle
	// plays so a front end can draw it.
	OnFrame func()

	tracer trace.Tracer
	// span receives handler events; it is the span of the turn in progress.
	span trace.Span

	playerTurnStarted bool
	experience        int
	kills             int
}

// New builds a battle ready for AdvanceToPlayer.
func New(ctx context.Context, s Setup) (*Battle, error) {
	tracer := s.Tracer
	if tracer == nil {
		tracer = telemetry.Tracer("battle")
	}
	_, span := tracer.Start(ctx, "battle.setup")
	defer span.End()

	b, err := build(s, tracer)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Log.WithError(err).WithField("encounter", s.Encounter.Name).Error("battle setup failed")
		return nil, err
	}
	span.SetAttributes(
		attribute.String("battle.id", b.ID.String()),
		attribute.String("encounter", b.Encounter),
		attribute.String("class", b.Class),
		attribute.Int("enemies", len(system.Enemies(b.Arena))),
	)
	logger.Log.WithFields(logrus.Fields{
		"battle":    b.ID.String(),
		"encounter": b.Encounter,
		"class":     b.Class,
	}).Info("battle started")
	return b, nil
}

func build(s Setup, tracer trace.Tracer) (*Battle, error) {
	m, err := loadMap(s)
	if err != nil {
		return nil, err
	}
	prog := s.Progression
	if prog == nil {
		prog = progression.NewState(s.Class.ID)
	}
	catalog := s.Catalog
	if catalog == nil {
		catalog = assets.Equipment
	}
	equipped, err := prog.Equipped(catalog)
	if err != nil {
		return nil, fmt.Errorf("battle: %w", err)
	}
	base := s.Skills
	if base == nil {
		base = assets.SkillRegistry()
	}
	reg, bar, err := progression.BuildSkills(base, s.Class.Skills, equipped)
	if err != nil {
		return nil, fmt.Errorf("battle: %w", err)
	}
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	b := &Battle{
		ID:        uuid.New(),
		Arena:     system.NewArena(m, reg, rand.New(rand.NewSource(seed))),
		Encounter: s.Encounter.Name,
		Class:     s.Class.ID,
		tracer:    tracer,
	}
	b.attachLog(s.Sinks)
	b.register()

	start := component.At(s.Encounter.Player)
	if !system.IsClear(b.Arena, start.SizedPoint, ecs.NilEntity) {
		return nil, fmt.Errorf("battle: player start %v: %w", s.Encounter.Player, system.ErrNotClear)
	}
	b.Player = factory.NewPlayer(b.Arena.World, s.Encounter.Player, factory.PlayerSpec{
		Name:     s.Class.Name,
		Glyph:    s.Class.Emoji,
		Defenses: progression.BuildDefenses(s.Class.Defenses(), equipped),
		Resources: progression.BuildResources(component.Resources{
			Ammo:          s.Class.Ammo,
			MaxAmmo:       s.Class.Ammo,
			MaxExhaustion: s.Class.MaxExhaustion,
			Focus:         s.Class.Focus,
			MaxFocus:      s.Class.Focus,
		}, equipped),
		Skills: bar,
	})
	for _, sp := range s.Encounter.Spawns {
		if _, err := system.SpawnMonster(b.Arena, sp.Kind, sp.At); err != nil {
			return nil, fmt.Errorf("battle: spawn %s: %w", sp.Kind, err)
		}
	}
	return b, nil
}

func loadMap(s Setup) (*gamemap.Map, error) {
	switch {
	case s.Map != nil:
		return s.Map, nil
	case s.MapPath != "":
		return gamemap.Load(s.MapPath)
	}
	return assets.ArenaMap()
}

func (b *Battle) attachLog(sinks []combatlog.Sink) {
	b.Arena.Log.WithFields(logrus.Fields{"battle": b.ID.String()})
	for _, s := range sinks {
		b.Arena.Log.AddSink(s)
	}
}

// Outcome reports victory once no enemy and no pending summoning is left,
// and defeat once the player is dead. Defeat wins a tie.
func (b *Battle) Outcome() Outcome {
	if _, ok := system.Player(b.Arena); !ok {
		return Defeat
	}
	if len(system.Enemies(b.Arena)) == 0 && len(system.Fields(b.Arena, component.FieldSummon)) == 0 {
		return Victory
	}
	return Ongoing
}

// Experience is what the battle has earned so far.
func (b *Battle) Experience() int { return b.experience }

// Kills counts enemies that died.
func (b *Battle) Kills() int { return b.kills }

// Settle runs pending animations to completion.
func (b *Battle) Settle() error {
	if b.OnFrame == nil {
		return system.Settle(b.Arena)
	}
	for frame := 0; system.HasAnimations(b.Arena); frame++ {
		if frame >= system.MaxSettleFrames {
			return system.ErrUnsettled
		}
		b.OnFrame()
		system.AdvanceAnimations(b.Arena, 1)
		b.Arena.World.Maintain()
	}
	b.Arena.World.Maintain()
	return nil
}

// Teardown force-completes every pending animation, for a battle that ends
// mid-chain.
func (b *Battle) Teardown() {
	system.Teardown(b.Arena)
}

// Finish records the result in prog and returns the run log entry. Only a
// victory awards experience.
func (b *Battle) Finish(prog *progression.State) progression.Run {
	b.Teardown()
	outcome := b.Outcome()
	run := progression.Run{
		Battle:    b.ID.String(),
		Encounter: b.Encounter,
		Class:     b.Class,
		Victory:   outcome == Victory,
		Turns:     b.Turn,
		Finished:  time.Now(),
	}
	if outcome == Victory {
		run.Experience = b.experience
		if prog != nil {
			prog.AwardVictory(b.experience)
		}
	}
	logger.Log.WithFields(logrus.Fields{
		"battle":     run.Battle,
		"outcome":    outcome.String(),
		"turns":      run.Turns,
		"experience": run.Experience,
	}).Info("battle finished")
	return run
}
