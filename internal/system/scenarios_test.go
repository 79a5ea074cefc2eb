package system

import (
	"math/rand"
	"testing"

	"skirmish/internal/combat"
	"skirmish/internal/component"
	"skirmish/internal/ecs"
	"skirmish/internal/geom"
)

// A knockback bolt fired point blank pushes the target one tile and logs it
// exactly once.
func TestScenarioKnockbackBolt(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(2, 2))
	enemy := addDummy(a, geom.Pt(2, 3), 50)

	invoke(t, a, player, "Bolt", ptr(geom.Pt(2, 3)))

	if got := origin(t, a, enemy); got != geom.Pt(2, 4) {
		t.Fatalf("enemy at %v, want (2,4)", got)
	}
	if n := a.Log.Count("is knocked back"); n != 1 {
		t.Fatalf("log has %d knockback lines, want 1: %v", n, a.Log.Lines())
	}
	if len(a.World.Query(component.CBolt)) != 0 {
		t.Fatal("bolt entity should be gone after settling")
	}
}

// An orb of speed 2 from (2,2) to (2,6) traces five markers, trims its
// trail by two per turn and leaves nothing behind when it bursts.
func TestScenarioOrbTrail(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(2, 2))

	invoke(t, a, player, "Orb", ptr(geom.Pt(2, 6)))

	orbs := a.World.Query(component.COrb)
	if len(orbs) != 1 {
		t.Fatalf("expected one orb, got %d", len(orbs))
	}
	orb := orbs[0]
	assertMarkers(t, a, orb, []geom.Point{
		geom.Pt(2, 2), geom.Pt(2, 3), geom.Pt(2, 4), geom.Pt(2, 5), geom.Pt(2, 6),
	})

	a.World.Add(orb, component.Time{Ticks: BaseActionCost})
	if err := OrbTurn(a, orb); err != nil {
		t.Fatal(err)
	}
	a.World.Maintain()
	assertMarkers(t, a, orb, []geom.Point{geom.Pt(2, 4), geom.Pt(2, 5), geom.Pt(2, 6)})
	if got := origin(t, a, orb); got != geom.Pt(2, 4) {
		t.Fatalf("orb at %v, want (2,4)", got)
	}

	a.World.Add(orb, component.Time{Ticks: BaseActionCost})
	if err := OrbTurn(a, orb); err != nil {
		t.Fatal(err)
	}
	a.World.Maintain()
	if a.World.Alive(orb) {
		t.Fatal("orb should delete itself at the end of its path")
	}
	if n := len(a.World.Query(component.CField)); n != 0 {
		t.Fatalf("%d fields left behind", n)
	}
}

func assertMarkers(t *testing.T, a *Arena, orb ecs.EntityID, want []geom.Point) {
	t.Helper()
	ids := Markers(a, orb)
	if len(ids) != len(want) {
		t.Fatalf("%d markers, want %d", len(ids), len(want))
	}
	for i, id := range ids {
		f := ecs.Grab[component.Field](a.World, id)
		if len(f.Area) != 1 || f.Area[0] != want[i] {
			t.Fatalf("marker %d covers %v, want %v", i, f.Area, want[i])
		}
	}
}

func TestOrbBurstsOnFirstOccupiedTile(t *testing.T) {
	a := newTestArena(t)
	player := addPlayer(a, geom.Pt(2, 2))
	enemy := addDummy(a, geom.Pt(2, 3), 50)

	invoke(t, a, player, "Orb", ptr(geom.Pt(2, 6)))
	orb := a.World.Query(component.COrb)[0]
	a.World.Add(orb, component.Time{Ticks: BaseActionCost})
	if err := OrbTurn(a, orb); err != nil {
		t.Fatal(err)
	}
	a.World.Maintain()

	if a.World.Alive(orb) || len(a.World.Query(component.CField)) != 0 {
		t.Fatal("orb and trail should be gone after bursting")
	}
	if health(a, enemy) >= 50 {
		t.Fatal("enemy in the burst should have been hurt")
	}
}

// A triple shot runs three separate hits through the defenses, so one
// point of armor saves three points of health.
func TestScenarioTripleShot(t *testing.T) {
	lost := func(armor int) (int, *Arena) {
		a := newTestArena(t)
		a.Rand = rand.New(rand.NewSource(42))
		id := addDummy(a, geom.Pt(5, 5), 100)
		def := ecs.Grab[component.Defenses](a.World, id)
		def.Armor = armor
		a.World.Add(id, def)
		ApplyDamage(a, id, Hit{Source: geom.Pt(5, 2), Strength: combat.NewStrength(2), Options: combat.TripleShot})
		return 100 - health(a, id), a
	}

	bare, bareArena := lost(0)
	armored, armoredArena := lost(1)

	for _, a := range []*Arena{bareArena, armoredArena} {
		if n := a.Log.Count("took"); n != 3 {
			t.Fatalf("expected 3 damage lines, got %d: %v", n, a.Log.Lines())
		}
	}
	if bare-armored != 3 {
		t.Fatalf("unarmored lost %d, armored lost %d; armor should save exactly 3", bare, armored)
	}
}
