package system

import (
	"testing"

	"skirmish/assets"
	"skirmish/internal/component"
	"skirmish/internal/factory"
	"skirmish/internal/geom"
)

func TestPathAroundWall(t *testing.T) {
	a := newTestArena(t)
	id := addDummy(a, geom.Pt(2, 5), 10)
	for y := 3; y <= 7; y++ {
		a.Map.SetWalkable(geom.Pt(4, y), false)
	}

	path, ok := PathTo(a, id, geom.Pt(6, 5), 0)
	if !ok {
		t.Fatal("a path around the wall exists")
	}
	if path[len(path)-1] != geom.Pt(6, 5) {
		t.Fatalf("path ends at %v", path[len(path)-1])
	}
	for _, p := range path {
		if !a.Map.IsWalkable(p) {
			t.Fatalf("path crosses wall at %v", p)
		}
	}
}

func TestPathStopsWithinReach(t *testing.T) {
	a := newTestArena(t)
	id := addDummy(a, geom.Pt(0, 0), 10)
	target := addDummy(a, geom.Pt(0, 6), 10)

	goal := origin(t, a, target)
	path, ok := PathTo(a, id, goal, 1)
	if !ok || len(path) != 5 {
		t.Fatalf("path = %v, %v", path, ok)
	}
	if d, _ := geom.DistanceTo(geom.Single(path[4]), goal); d != 1 {
		t.Fatalf("path ends %d from the target", d)
	}
	dir, ok := StepToward(a, id, goal, 1)
	if _, dy := dir.Delta(); !ok || dy != 1 {
		t.Fatalf("first step = %v, %v; want a step south", dir, ok)
	}
}

func TestNoPathWhenEnclosed(t *testing.T) {
	a := newTestArena(t)
	id := addDummy(a, geom.Pt(6, 6), 10)
	for _, p := range geom.Ring(geom.Pt(6, 6), 1) {
		a.Map.SetWalkable(p, false)
	}
	if _, ok := PathTo(a, id, geom.Pt(0, 0), 0); ok {
		t.Fatal("an enclosed character has no path")
	}
	if _, ok := StepToward(a, id, geom.Pt(0, 0), 0); ok {
		t.Fatal("StepToward should fail without a path")
	}
}

func TestLargeFootprintNeedsWideGap(t *testing.T) {
	a := newTestArena(t)
	golem := factory.NewMonster(a.World, assets.Bestiary["golem"], geom.Pt(0, 0))
	for x := 0; x < geom.MaxMapTiles; x++ {
		if x != 6 {
			a.Map.SetWalkable(geom.Pt(x, 5), false)
		}
	}
	if _, ok := PathTo(a, golem, geom.Pt(0, 10), 0); ok {
		t.Fatal("a 2x2 golem cannot squeeze through a one-tile gap")
	}
	a.Map.SetWalkable(geom.Pt(7, 5), true)
	if _, ok := PathTo(a, golem, geom.Pt(0, 10), 0); !ok {
		t.Fatal("a two-tile gap should let the golem through")
	}
	if !a.World.Has(golem, component.CCharacter) {
		t.Fatal("golem should be a character")
	}
}
