package ai

import (
	"math/rand"
	"testing"

	"skirmish/assets"
	"skirmish/internal/combat"
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/factory"
	"skirmish/internal/gamemap"
	"skirmish/internal/geom"
	"skirmish/internal/status"
	"skirmish/internal/system"
)

func newArena(t *testing.T, player geom.Point) (*system.Arena, ecs.EntityID) {
	t.Helper()
	a := system.NewArena(gamemap.Open(), assets.SkillRegistry(), rand.New(rand.NewSource(3)))
	system.RegisterHandlers(a)
	a.Events.Subscribe("ai", Handler(a))
	id := factory.NewPlayer(a.World, player, factory.PlayerSpec{
		Name:     "Hero",
		Defenses: combat.NewDefenses(0, 0, 0, 100),
	})
	return a, id
}

func spawn(t *testing.T, a *system.Arena, kind string, at geom.Point) ecs.EntityID {
	t.Helper()
	id, err := system.SpawnMonster(a, kind, at)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

// turn gives id a full turn and runs it to quiescence.
func turn(t *testing.T, a *system.Arena, id ecs.EntityID) {
	t.Helper()
	a.World.Add(id, component.Time{Ticks: system.BaseActionCost})
	if err := TakeTurn(a, id); err != nil {
		t.Fatalf("TakeTurn: %v", err)
	}
	if err := system.Settle(a); err != nil {
		t.Fatal(err)
	}
	if system.Ticks(a, id) != 0 && !a.World.Doomed(id) {
		t.Fatalf("turn left %d ticks unspent", system.Ticks(a, id))
	}
}

func health(a *system.Arena, id ecs.EntityID) int {
	return ecs.Grab[component.Defenses](a.World, id).Health
}

func TestChainFallsBackToWaiting(t *testing.T) {
	a, _ := newArena(t, geom.Pt(0, 0))
	id := spawn(t, a, "brute", geom.Pt(6, 6))
	var tried []string
	never := func(name string) Step {
		return func(*system.Arena, ecs.EntityID) bool {
			tried = append(tried, name)
			return false
		}
	}
	a.World.Add(id, component.Time{Ticks: system.BaseActionCost})
	if err := Chain(never("a"), never("b"))(a, id); err != nil {
		t.Fatal(err)
	}
	if len(tried) != 2 || tried[0] != "a" || tried[1] != "b" {
		t.Fatalf("steps tried %v", tried)
	}
	if system.Ticks(a, id) != 0 {
		t.Fatal("waiting should spend the turn")
	}
}

func TestChainStopsAtFirstAction(t *testing.T) {
	a, _ := newArena(t, geom.Pt(0, 0))
	id := spawn(t, a, "brute", geom.Pt(6, 6))
	reached := false
	a.World.Add(id, component.Time{Ticks: system.BaseActionCost})
	err := Chain(Wait, func(*system.Arena, ecs.EntityID) bool {
		reached = true
		return true
	})(a, id)
	if err != nil || reached {
		t.Fatalf("chain ran past an acting step: err=%v", err)
	}
}

func TestGunnerShootsThenReloads(t *testing.T) {
	a, player := newArena(t, geom.Pt(5, 2))
	gunner := spawn(t, a, "gunner", geom.Pt(5, 6))

	for i := 0; i < 3; i++ {
		turn(t, a, gunner)
	}
	if health(a, player) >= 100 {
		t.Fatal("gunner never hit the player")
	}
	if ammo := ecs.Grab[component.Resources](a.World, gunner).Ammo; ammo != 0 {
		t.Fatalf("ammo = %d after three shots", ammo)
	}
	turn(t, a, gunner)
	if ammo := ecs.Grab[component.Resources](a.World, gunner).Ammo; ammo != 3 {
		t.Fatalf("empty gunner should reload, ammo = %d", ammo)
	}
}

func TestMoveTowardPlayerWhenOutOfReach(t *testing.T) {
	a, _ := newArena(t, geom.Pt(0, 0))
	brute := spawn(t, a, "brute", geom.Pt(8, 8))

	turn(t, a, brute)
	pos, _ := system.Position(a, brute)
	if pos.Origin != geom.Pt(7, 7) {
		t.Fatalf("brute stepped to %v, want (7,7) on the diagonal", pos.Origin)
	}
}

func TestBruteEnragesAfterTwoHits(t *testing.T) {
	a, _ := newArena(t, geom.Pt(5, 2))
	brute := spawn(t, a, "brute", geom.Pt(5, 4))

	for i := 0; i < 2; i++ {
		system.ApplyDamage(a, brute, system.Hit{Strength: combat.NewStrength(1)})
	}
	if system.BehaviorValue(a, brute, KeyHurt) != 2 {
		t.Fatalf("hurt = %d, want 2", system.BehaviorValue(a, brute, KeyHurt))
	}
	turn(t, a, brute)
	if !system.HasStatus(a, brute, status.Agitated) {
		t.Fatal("brute should enrage")
	}
	if system.BehaviorValue(a, brute, KeyHurt) != 0 {
		t.Fatal("enraging should pay out the hurt counter")
	}
}

func TestShamanBuffsUncoveredAllies(t *testing.T) {
	a, _ := newArena(t, geom.Pt(0, 0))
	shaman := spawn(t, a, "shaman", geom.Pt(8, 8))
	brute := spawn(t, a, "brute", geom.Pt(8, 10))

	turn(t, a, shaman)
	if !system.HasStatus(a, shaman, status.Regen) {
		t.Fatal("shaman should mend the first uncovered ally, itself")
	}
	turn(t, a, shaman)
	if !system.HasStatus(a, brute, status.Regen) {
		t.Fatal("shaman should mend the brute next")
	}
	turn(t, a, shaman)
	if !system.HasStatus(a, shaman, status.Armored) {
		t.Fatal("with regen everywhere the shaman moves on to stone skin")
	}
}

func TestSummonerChargesThenSummons(t *testing.T) {
	a, _ := newArena(t, geom.Pt(5, 8))
	summoner := spawn(t, a, "summoner", geom.Pt(5, 5))

	turn(t, a, summoner)
	turn(t, a, summoner)
	if got := system.BehaviorValue(a, summoner, KeyCharge); got != 50 {
		t.Fatalf("charge = %d after two turns, want 50", got)
	}
	if len(system.Fields(a, component.FieldSummon)) != 0 {
		t.Fatal("summoned too early")
	}
	turn(t, a, summoner)
	if len(system.Fields(a, component.FieldSummon)) != 1 {
		t.Fatal("a full charge should open a summoning circle")
	}
	if got := system.BehaviorValue(a, summoner, KeyCharge); got != 0 {
		t.Fatalf("charge = %d after summoning, want 0", got)
	}
}

func TestBirdTakesFlightWhenHurt(t *testing.T) {
	a, _ := newArena(t, geom.Pt(5, 2))
	bird := spawn(t, a, "bird", geom.Pt(5, 4))

	system.ApplyDamage(a, bird, system.Hit{Strength: combat.NewStrength(1), Options: combat.PierceDefenses})
	turn(t, a, bird)
	if !system.HasStatus(a, bird, status.Flying) {
		t.Fatal("a hurt bird should take flight")
	}
	if _, onMap := system.Position(a, bird); onMap {
		t.Fatal("a flying bird is off the map")
	}

	turn(t, a, bird)
}

func TestTakeTurnDrivesOrbs(t *testing.T) {
	a, player := newArena(t, geom.Pt(0, 0))
	pos, _ := system.Position(a, player)
	orb := system.SpawnOrb(a, pos, geom.Pt(0, 8), assets.SkillRegistry().Must(assets.SkillLightningOrb).Effect)

	turn(t, a, orb)
	if got, _ := system.Position(a, orb); got.Origin != geom.Pt(0, 2) {
		t.Fatalf("orb at %v after one turn, want (0,2)", got.Origin)
	}
}

func TestMonsterDiesOfBurnBeforeActing(t *testing.T) {
	a, player := newArena(t, geom.Pt(5, 2))
	brute := spawn(t, a, "brute", geom.Pt(5, 3))
	d := ecs.Grab[component.Defenses](a.World, brute)
	d.Health, d.Armor = 1, 0
	a.World.Add(brute, d)
	system.ChangeTemperature(a, brute, combat.BurnThreshold)

	a.World.Add(brute, component.Time{Ticks: system.BaseActionCost})
	if err := TakeTurn(a, brute); err != nil {
		t.Fatal(err)
	}
	if !a.World.Doomed(brute) {
		t.Fatal("burn damage should kill the brute")
	}
	if health(a, player) != 100 {
		t.Fatal("a dead brute must not swing")
	}
}
