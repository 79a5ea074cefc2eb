package input

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"

	"skirmish/internal/battle"
	"skirmish/internal/geom"
	"skirmish/internal/logger"
	"skirmish/internal/skill"
)

// Controller states.
const (
	StateIdle      = "idle"
	StateTargeting = "targeting"
	StateEditing   = "editing"
)

const (
	eventSelect = "select"
	eventTarget = "target"
	eventCancel = "cancel"
	eventEdit   = "edit"
	eventDone   = "done"
)

// Result is what a key press asks the caller to do. At most one of the
// fields is set.
type Result struct {
	// Command is ready for battle.Do when Act is set.
	Command battle.Command
	Act     bool
	Quit    bool
	// ToggleTile flips the walkability of a tile in the map editor.
	ToggleTile *geom.Point
	WriteMap   bool
}

// Controller tracks the player's input mode across key presses.
type Controller struct {
	machine  *fsm.FSM
	skills   *skill.Registry
	selected string
	cursor   geom.Point
}

// NewController returns a controller in the idle state. skills resolves the
// names on the skill bar.
func NewController(skills *skill.Registry) *Controller {
	c := &Controller{skills: skills}
	c.machine = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventSelect, Src: []string{StateIdle}, Dst: StateTargeting},
			{Name: eventTarget, Src: []string{StateTargeting}, Dst: StateIdle},
			{Name: eventCancel, Src: []string{StateTargeting}, Dst: StateIdle},
			{Name: eventEdit, Src: []string{StateIdle}, Dst: StateEditing},
			{Name: eventDone, Src: []string{StateEditing}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"before_" + eventSelect: func(_ context.Context, e *fsm.Event) {
				c.selected = e.Args[0].(string)
				c.cursor = e.Args[1].(geom.Point)
			},
			"before_" + eventEdit: func(_ context.Context, e *fsm.Event) {
				c.cursor = e.Args[0].(geom.Point)
			},
			"enter_" + StateIdle: func(_ context.Context, _ *fsm.Event) {
				c.selected = ""
			},
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Log.WithFields(logrus.Fields{"from": e.Src, "to": e.Dst, "event": e.Event}).Debug("input state")
			},
		},
	)
	return c
}

// State is the current mode.
func (c *Controller) State() string { return c.machine.Current() }

// Targeting reports the skill being aimed and the cursor position.
func (c *Controller) Targeting() (string, geom.Point, bool) {
	return c.selected, c.cursor, c.machine.Is(StateTargeting)
}

// Cursor is the targeting or editing cursor.
func (c *Controller) Cursor() geom.Point { return c.cursor }

// SetSkills replaces the registry used to resolve the skill bar.
func (c *Controller) SetSkills(skills *skill.Registry) { c.skills = skills }

// HandleKey interprets ev given the player's skill bar and position. The
// cursor starts on origin whenever targeting or editing begins.
func (c *Controller) HandleKey(ev *tcell.EventKey, bar []string, origin geom.Point) Result {
	return c.Handle(Translate(ev), bar, origin)
}

// Handle is HandleKey for an already translated intent.
func (c *Controller) Handle(in Intent, bar []string, origin geom.Point) Result {
	switch c.machine.Current() {
	case StateTargeting:
		return c.handleTargeting(in, bar, origin)
	case StateEditing:
		return c.handleEditing(in)
	}
	return c.handleIdle(in, bar, origin)
}

func (c *Controller) handleIdle(in Intent, bar []string, origin geom.Point) Result {
	switch in.Kind {
	case IntentMove:
		return Result{Command: battle.Move(in.Dir), Act: true}
	case IntentWait:
		return Result{Command: battle.Wait(), Act: true}
	case IntentSlot:
		return c.selectSlot(in.Slot, bar, origin)
	case IntentQuit, IntentCancel:
		return Result{Quit: true}
	case IntentToggleMapEdit:
		c.fire(eventEdit, origin)
	}
	return Result{}
}

func (c *Controller) handleTargeting(in Intent, bar []string, origin geom.Point) Result {
	switch in.Kind {
	case IntentMove:
		c.moveCursor(in.Dir)
	case IntentSlot:
		c.fire(eventCancel)
		return c.selectSlot(in.Slot, bar, origin)
	case IntentConfirm:
		name, target := c.selected, c.cursor
		c.fire(eventTarget)
		return Result{Command: battle.UseSkill(name, &target), Act: true}
	case IntentCancel:
		c.fire(eventCancel)
	case IntentQuit:
		c.fire(eventCancel)
		return Result{Quit: true}
	}
	return Result{}
}

func (c *Controller) handleEditing(in Intent) Result {
	switch in.Kind {
	case IntentMove:
		c.moveCursor(in.Dir)
	case IntentConfirm:
		p := c.cursor
		return Result{ToggleTile: &p}
	case IntentWriteMap:
		return Result{WriteMap: true}
	case IntentToggleMapEdit, IntentCancel:
		c.fire(eventDone)
	case IntentQuit:
		c.fire(eventDone)
		return Result{Quit: true}
	}
	return Result{}
}

// selectSlot invokes an untargeted skill right away and starts targeting
// for the rest.
func (c *Controller) selectSlot(slot int, bar []string, origin geom.Point) Result {
	if slot < 0 || slot >= len(bar) {
		return Result{}
	}
	name := bar[slot]
	info, err := c.skills.Get(name)
	if err != nil {
		logger.Log.WithField("skill", name).WithError(err).Warn("skill bar names an unknown skill")
		return Result{}
	}
	if !info.Target.NeedsPoint() {
		return Result{Command: battle.UseSkill(name, nil), Act: true}
	}
	c.fire(eventSelect, name, origin)
	return Result{}
}

func (c *Controller) moveCursor(d geom.Direction) {
	if p, ok := c.cursor.Step(d); ok {
		c.cursor = p
	}
}

// fire runs a transition the caller has already checked is valid from the
// current state.
func (c *Controller) fire(event string, args ...any) {
	err := c.machine.Event(context.Background(), event, args...)
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		logger.Log.WithFields(logrus.Fields{"event": event, "state": c.machine.Current()}).WithError(err).Warn("input transition refused")
	}
}
