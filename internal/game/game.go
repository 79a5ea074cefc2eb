// Package game runs a terminal session: class selection, the loadout
// screen, battles and the summary between them.
package game

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"skirmish/assets"
	"skirmish/internal/battle"
	"skirmish/internal/combatlog"
	"skirmish/internal/component"
	"skirmish/internal/config"
	"skirmish/internal/ecs"
	"skirmish/internal/generate"
	"skirmish/internal/geom"
	"skirmish/internal/input"
	"skirmish/internal/logger"
	"skirmish/internal/progression"
	"skirmish/internal/render"
	"skirmish/internal/system"
)

// DefaultFrameDelay is how long each animation frame stays on screen.
const DefaultFrameDelay = 40 * time.Millisecond

// Watchers hands out a combat log sink per battle, e.g. a spectator hub.
type Watchers interface {
	Sink(battleID string) combatlog.Sink
}

// Options are the collaborators a session shares with its host.
type Options struct {
	Watchers Watchers
	// Tracer defaults to the global "battle" tracer.
	Tracer trace.Tracer
	// FrameDelay 0 plays animations without pausing.
	FrameDelay time.Duration
	// Name labels the session in diagnostics, e.g. the SSH user.
	Name string
}

// Game is the top-level orchestrator of one terminal session.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	cfg      config.Config
	opts     Options
	log      *logrus.Entry

	class  assets.ClassDef
	prog   *progression.State
	notice string
}

// New prepares a session on an initialised screen. The caller owns the
// screen and finalises it after Run.
func New(screen tcell.Screen, cfg config.Config, opts Options) *Game {
	return &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		cfg:      cfg,
		opts:     opts,
		log:      logger.Log.WithField("session", opts.Name),
	}
}

// Run resumes a saved battle when there is one, then loops class select,
// loadout and battle until the player quits or ctx ends.
func (g *Game) Run(ctx context.Context) error {
	b, err := g.resume(ctx)
	if err != nil {
		return err
	}
	if b != nil {
		if again, err := g.fight(ctx, b); err != nil || !again {
			return err
		}
	}
	for ctx.Err() == nil {
		if !g.runClassSelect() {
			return nil
		}
		if err := g.loadProgression(); err != nil {
			return err
		}
		if !g.runLoadout() {
			return nil
		}
		b, err := battle.New(ctx, g.setup())
		if err != nil {
			return fmt.Errorf("game: %w", err)
		}
		if again, err := g.fight(ctx, b); err != nil || !again {
			return err
		}
	}
	return nil
}

// resume loads the battle at SavePath. A missing save is not an error;
// an unreadable one is logged and skipped.
func (g *Game) resume(ctx context.Context) (*battle.Battle, error) {
	if g.cfg.SavePath == "" {
		return nil, nil
	}
	b, err := battle.LoadFile(g.cfg.SavePath, battle.LoadOptions{Tracer: g.opts.Tracer})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		g.log.WithError(err).WithField("path", g.cfg.SavePath).Warn("ignoring unreadable save")
		return nil, nil
	}
	class, ok := assets.Class(b.Class)
	if !ok {
		g.log.WithField("class", b.Class).Warn("ignoring save of unknown class")
		return nil, nil
	}
	g.class = class
	if err := g.loadProgression(); err != nil {
		return nil, err
	}
	return b, ctx.Err()
}

// fight plays b to the end and shows the summary. It reports whether the
// player wants another battle. Quitting mid-battle saves it when a save
// path is configured.
func (g *Game) fight(ctx context.Context, b *battle.Battle) (again bool, err error) {
	if g.opts.Watchers != nil {
		b.Arena.Log.AddSink(g.opts.Watchers.Sink(b.ID.String()))
	}
	g.renderer.SetTiles(render.Theme(encounterIndex(b.Encounter)))
	outcome, quit, err := g.play(ctx, b)
	if err != nil {
		return false, fmt.Errorf("game: battle %s: %w", b.ID, err)
	}
	if quit {
		if outcome == battle.Ongoing {
			g.saveBattle(b)
		}
		return false, nil
	}
	run := g.finish(b)
	return g.showEndScreen(run, b), nil
}

// play runs turns until the battle is decided or the player quits.
func (g *Game) play(ctx context.Context, b *battle.Battle) (battle.Outcome, bool, error) {
	ctrl := input.NewController(b.Arena.Skills)
	b.OnFrame = func() {
		g.draw(b, ctrl)
		if g.opts.FrameDelay > 0 {
			time.Sleep(g.opts.FrameDelay)
		}
	}
	defer func() { b.OnFrame = nil }()

	for {
		if ctx.Err() != nil {
			return battle.Ongoing, true, nil
		}
		outcome, err := b.AdvanceToPlayer(ctx)
		if err != nil {
			return outcome, false, err
		}
		if outcome != battle.Ongoing {
			return outcome, false, nil
		}
		g.draw(b, ctrl)

		switch ev := g.screen.PollEvent().(type) {
		case nil:
			// The screen was finalised underneath us.
			return battle.Ongoing, true, nil
		case *tcell.EventResize:
			g.screen.Sync()
			g.renderer.Resize()
		case *tcell.EventKey:
			if g.handleKey(ctx, b, ctrl, ev) {
				return b.Outcome(), true, nil
			}
		}
	}
}

// handleKey applies one key press and reports whether the player quit.
func (g *Game) handleKey(ctx context.Context, b *battle.Battle, ctrl *input.Controller, ev *tcell.EventKey) bool {
	g.notice = ""
	pos, _ := system.Position(b.Arena, b.Player)
	res := ctrl.HandleKey(ev, skillBar(b), pos.Origin)
	switch {
	case res.Quit:
		return true
	case res.ToggleTile != nil:
		g.toggleTile(b, *res.ToggleTile)
	case res.WriteMap:
		g.writeMap(b)
	case res.Act:
		if err := b.Do(ctx, res.Command); err != nil {
			g.notice = rejection(err)
			g.log.WithError(err).WithField("command", res.Command.Kind.String()).Debug("command rejected")
		}
	}
	return false
}

func skillBar(b *battle.Battle) []string {
	if sk, ok := ecs.Lookup[component.Skills](b.Arena.World, b.Player); ok {
		return sk.Names
	}
	return nil
}

// rejection phrases a refused command for the mode line.
func rejection(err error) string {
	switch {
	case errors.Is(err, system.ErrOutOfRange):
		return "Out of range."
	case errors.Is(err, system.ErrNotClear):
		return "The way is blocked."
	case errors.Is(err, system.ErrInsufficientResources):
		return "Not enough resources."
	case errors.Is(err, system.ErrTargetShape), errors.Is(err, system.ErrBadTarget):
		return "Invalid target."
	case errors.Is(err, system.ErrNotEnoughTime):
		return "Not enough time."
	}
	return err.Error()
}

func (g *Game) draw(b *battle.Battle, ctrl *input.Controller) {
	name, cursor, targeting := ctrl.Targeting()
	v := render.View{
		Title:     g.class.Name,
		Targeting: targeting,
		Skill:     name,
		Cursor:    cursor,
		Editing:   ctrl.State() == input.StateEditing,
		Notice:    g.notice,
	}
	if v.Editing {
		v.Cursor = ctrl.Cursor()
	}
	g.renderer.DrawFrame(b.Arena, b.Player, v)
	g.renderer.DrawHUD(b.Arena, b.Player, v)
}

// toggleTile flips a wall in the map editor. Tiles under a character
// stay open.
func (g *Game) toggleTile(b *battle.Battle, p geom.Point) {
	if _, occupied := system.CharacterAt(b.Arena, p); occupied {
		g.notice = "Someone is standing there."
		return
	}
	if b.Arena.Map.Toggle(p) {
		g.notice = fmt.Sprintf("Opened %v.", p)
	} else {
		g.notice = fmt.Sprintf("Walled %v.", p)
	}
}

// writeMap saves the edited arena over MapPath, or into the data
// directory when the bundled arena is in use.
func (g *Game) writeMap(b *battle.Battle) {
	path := g.cfg.MapPath
	if path == "" {
		path = filepath.Join(g.cfg.DataDir, "arena.map")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		g.notice = "Could not write map."
		g.log.WithError(err).Warn("map directory")
		return
	}
	if err := b.Arena.Map.WriteToFile(path); err != nil {
		g.notice = "Could not write map."
		g.log.WithError(err).WithField("path", path).Warn("map write failed")
		return
	}
	g.notice = "Map written to " + path
	g.log.WithField("path", path).Info("map written")
}

func (g *Game) saveBattle(b *battle.Battle) {
	if g.cfg.SavePath == "" {
		return
	}
	b.Teardown()
	if err := b.SaveFile(g.cfg.SavePath); err != nil {
		g.log.WithError(err).WithField("path", g.cfg.SavePath).Error("battle save failed")
		return
	}
	g.log.WithFields(logrus.Fields{"battle": b.ID.String(), "path": g.cfg.SavePath}).Info("battle saved")
}

// finish settles the result into progression, appends the run log and
// discards a save of the finished battle.
func (g *Game) finish(b *battle.Battle) progression.Run {
	run := b.Finish(g.prog)
	if err := g.saveProgression(); err != nil {
		g.log.WithError(err).Error("progression save failed")
	}
	if g.cfg.DataDir != "" {
		if err := progression.AppendRun(g.cfg.DataDir, run); err != nil {
			g.log.WithError(err).Warn("run log append failed")
		}
	}
	if g.cfg.SavePath != "" {
		if err := os.Remove(g.cfg.SavePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			g.log.WithError(err).Warn("stale save not removed")
		}
	}
	return run
}

// progressionPath keeps one profile per class next to ProgressionPath.
func (g *Game) progressionPath() string {
	if g.cfg.ProgressionPath == "" {
		return ""
	}
	ext := filepath.Ext(g.cfg.ProgressionPath)
	return strings.TrimSuffix(g.cfg.ProgressionPath, ext) + "-" + g.class.ID + ext
}

func (g *Game) loadProgression() error {
	path := g.progressionPath()
	if path == "" {
		g.prog = progression.NewState(g.class.ID)
		return nil
	}
	prog, err := progression.Load(path, g.class.ID)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	g.prog = prog
	return nil
}

func (g *Game) saveProgression() error {
	path := g.progressionPath()
	if path == "" || g.prog == nil {
		return nil
	}
	return progression.Save(path, g.prog)
}

// setup describes the next battle: a generated arena when Random is set,
// otherwise the next sample encounter on the configured map.
func (g *Game) setup() battle.Setup {
	s := battle.Setup{
		MapPath:     g.cfg.MapPath,
		Class:       g.class,
		Progression: g.prog,
		Catalog:     assets.Equipment,
		Seed:        g.cfg.Seed,
		Tracer:      g.opts.Tracer,
	}
	if !g.cfg.Random {
		s.Encounter, _ = g.nextEncounter()
		return s
	}
	seed := g.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gcfg := generate.DefaultConfig(rand.New(rand.NewSource(seed)), g.prog.Victories)
	s.Map = generate.Arena(gcfg)
	s.Encounter = generate.Encounter(s.Map, gcfg)
	g.log.WithFields(logrus.Fields{"seed": seed, "budget": gcfg.Budget, "spawns": len(s.Encounter.Spawns)}).Debug("generated arena")
	return s
}

// nextEncounter starts at the configured encounter and moves one further
// for every victory, wrapping around.
func (g *Game) nextEncounter() (assets.Encounter, int) {
	i := (encounterIndex(g.cfg.Encounter) + g.prog.Victories) % len(assets.Encounters)
	return assets.Encounters[i], i
}

func encounterIndex(name string) int {
	for i, e := range assets.Encounters {
		if e.Name == name {
			return i
		}
	}
	return 0
}

// putText writes s at (x, y) and returns the column after it.
func (g *Game) putText(x, y int, s string, style tcell.Style) int {
	return drawScreenText(g.screen, x, y, s, style)
}
