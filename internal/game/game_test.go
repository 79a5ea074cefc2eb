package game

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"skirmish/assets"
	"skirmish/internal/battle"
	"skirmish/internal/config"
	"skirmish/internal/gamemap"
	"skirmish/internal/generate"
	"skirmish/internal/geom"
	"skirmish/internal/input"
	"skirmish/internal/progression"
	"skirmish/internal/system"
	"skirmish/internal/telemetry"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	ss.SetSize(100, 40)
	t.Cleanup(ss.Fini)
	return ss
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.DataDir = dir
	cfg.ProgressionPath = filepath.Join(dir, "progression.json")
	cfg.SavePath = filepath.Join(dir, "battle.json")
	cfg.Class = "knight"
	cfg.Seed = 3
	return cfg
}

func newGame(t *testing.T, ss tcell.Screen, cfg config.Config) *Game {
	t.Helper()
	return New(ss, cfg, Options{Tracer: telemetry.NoopTracer(), Name: t.Name()})
}

func runes(ss tcell.SimulationScreen, keys string) {
	for _, r := range keys {
		ss.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
}

func TestClassSelectQuickPick(t *testing.T) {
	ss := newScreen(t)
	g := newGame(t, ss, testConfig(t))
	runes(ss, "3")
	if !g.runClassSelect() {
		t.Fatal("class select quit")
	}
	if g.class.ID != "elementalist" {
		t.Fatalf("class = %s", g.class.ID)
	}
}

func TestClassSelectStartsOnConfiguredClass(t *testing.T) {
	ss := newScreen(t)
	g := newGame(t, ss, testConfig(t))
	ss.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	if !g.runClassSelect() || g.class.ID != "knight" {
		t.Fatalf("class = %q", g.class.ID)
	}
}

func TestClassSelectQuit(t *testing.T) {
	ss := newScreen(t)
	g := newGame(t, ss, testConfig(t))
	runes(ss, "q")
	if g.runClassSelect() {
		t.Fatal("q should quit")
	}
}

func TestLoadoutBuysThenEquips(t *testing.T) {
	ss := newScreen(t)
	cfg := testConfig(t)
	g := newGame(t, ss, cfg)
	g.class, _ = assets.Class("knight")
	if err := g.loadProgression(); err != nil {
		t.Fatal(err)
	}
	item := loadoutRows()[0]
	g.prog.Influence = item.Cost

	// Buy, equip, fight.
	runes(ss, "eef")
	if !g.runLoadout() {
		t.Fatal("loadout quit")
	}
	if g.prog.Influence != 0 || !g.prog.IsUnlocked(item.Name) {
		t.Fatalf("purchase not applied: %+v", g.prog)
	}
	if !wearing(g.prog, item) {
		t.Fatalf("%s not equipped: %v", item.Name, g.prog.Equipment)
	}

	saved, err := progression.Load(filepath.Join(cfg.DataDir, "progression-knight.json"), "knight")
	if err != nil {
		t.Fatal(err)
	}
	if !saved.IsUnlocked(item.Name) {
		t.Fatal("profile not saved on leaving the loadout")
	}
}

func TestLoadoutRefusesWhatYouCannotAfford(t *testing.T) {
	g := newGame(t, newScreen(t), testConfig(t))
	g.prog = progression.NewState("knight")
	item := loadoutRows()[0]
	g.toggleItem(item)
	if g.prog.IsUnlocked(item.Name) {
		t.Fatal("bought without influence")
	}
}

func TestQuitMidBattleSavesAndResumes(t *testing.T) {
	cfg := testConfig(t)

	ss := newScreen(t)
	ss.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	runes(ss, "fq")
	if err := newGame(t, ss, cfg).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(cfg.SavePath); err != nil {
		t.Fatalf("no save written: %v", err)
	}

	ss2 := newScreen(t)
	runes(ss2, "q")
	g := newGame(t, ss2, cfg)
	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("resumed Run: %v", err)
	}
	if g.class.ID != "knight" || g.prog == nil {
		t.Fatalf("resume did not restore the class: %+v", g.class)
	}
}

func TestFinishedBattleUpdatesProfile(t *testing.T) {
	ss := newScreen(t)
	cfg := testConfig(t)
	g := newGame(t, ss, cfg)
	g.class, _ = assets.Class("knight")
	if err := g.loadProgression(); err != nil {
		t.Fatal(err)
	}
	// An encounter without enemies is won as soon as it starts.
	b, err := battle.New(context.Background(), battle.Setup{
		Map:       gamemap.Open(),
		Class:     g.class,
		Encounter: assets.Encounter{Name: "Empty", Player: geom.Pt(6, 6)},
		Seed:      1,
		Tracer:    telemetry.NoopTracer(),
	})
	if err != nil {
		t.Fatal(err)
	}

	runes(ss, "q")
	again, err := g.fight(context.Background(), b)
	if err != nil || again {
		t.Fatalf("fight = %v, %v", again, err)
	}
	if g.prog.Victories != 1 {
		t.Fatalf("victories = %d", g.prog.Victories)
	}
	if _, err := os.Stat(filepath.Join(cfg.DataDir, "runs.jsonl")); err != nil {
		t.Fatalf("run log: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.DataDir, "progression-knight.json")); err != nil {
		t.Fatalf("profile: %v", err)
	}
}

func TestMapEditorKeys(t *testing.T) {
	ss := newScreen(t)
	cfg := testConfig(t)
	g := newGame(t, ss, cfg)
	g.class, _ = assets.Class("knight")
	b, err := battle.New(context.Background(), battle.Setup{
		Map:       gamemap.Open(),
		Class:     g.class,
		Encounter: assets.Encounter{Name: "Edit", Player: geom.Pt(6, 6), Spawns: []assets.Spawn{{Kind: "imp", At: geom.Pt(10, 10)}}},
		Seed:      1,
		Tracer:    telemetry.NoopTracer(),
	})
	if err != nil {
		t.Fatal(err)
	}
	ctrl := input.NewController(b.Arena.Skills)
	press := func(k tcell.Key, r rune) {
		if g.handleKey(context.Background(), b, ctrl, tcell.NewEventKey(k, r, tcell.ModNone)) {
			t.Fatal("editor key quit")
		}
	}

	press(tcell.KeyRune, 'm')
	press(tcell.KeyEnter, 0)
	if !b.Arena.Map.IsWalkable(geom.Pt(6, 6)) {
		t.Fatal("walled the tile under the player")
	}
	press(tcell.KeyRune, 'l')
	press(tcell.KeyEnter, 0)
	if b.Arena.Map.IsWalkable(geom.Pt(7, 6)) {
		t.Fatal("tile east of the player still open")
	}
	press(tcell.KeyRune, 'w')
	m, err := gamemap.Load(filepath.Join(cfg.DataDir, "arena.map"))
	if err != nil {
		t.Fatalf("written map: %v", err)
	}
	if m.IsWalkable(geom.Pt(7, 6)) {
		t.Fatal("written map lost the edit")
	}
}

func TestNextEncounterFollowsVictories(t *testing.T) {
	g := newGame(t, newScreen(t), testConfig(t))
	g.prog = progression.NewState("knight")
	if enc, i := g.nextEncounter(); i != 0 || enc.Name != "Ambush" {
		t.Fatalf("first encounter = %s", enc.Name)
	}
	g.prog.Victories = len(assets.Encounters) + 1
	if enc, i := g.nextEncounter(); i != 1 || enc.Name != assets.Encounters[1].Name {
		t.Fatalf("encounter after wrap = %s", enc.Name)
	}
}

func TestRandomSetupGeneratesArena(t *testing.T) {
	cfg := testConfig(t)
	cfg.Random = true
	g := newGame(t, newScreen(t), cfg)
	g.class, _ = assets.Class("knight")
	g.prog = progression.NewState("knight")

	s := g.setup()
	if s.Map == nil || s.Encounter.Name != generate.RandomName || len(s.Encounter.Spawns) == 0 {
		t.Fatalf("setup = %+v", s.Encounter)
	}
	b, err := battle.New(context.Background(), s)
	if err != nil {
		t.Fatalf("new battle: %v", err)
	}
	if b.Encounter != generate.RandomName {
		t.Fatalf("battle encounter = %q", b.Encounter)
	}
	// Equal seeds give equal arenas.
	if again := g.setup(); again.Encounter.Player != s.Encounter.Player {
		t.Fatalf("player start %v then %v", s.Encounter.Player, again.Encounter.Player)
	}
}

func TestRejectionMessages(t *testing.T) {
	cases := map[error]string{
		fmt.Errorf("shoot: %w", system.ErrOutOfRange): "Out of range.",
		system.ErrNotClear:                            "The way is blocked.",
		system.ErrBadTarget:                           "Invalid target.",
		errors.New("odd"):                             "odd",
	}
	for err, want := range cases {
		if got := rejection(err); got != want {
			t.Errorf("rejection(%v) = %q, want %q", err, got, want)
		}
	}
}
