package generate

import (
	"math/rand"
	"testing"

	"skirmish/assets"
	"skirmish/internal/gamemap"
	"skirmish/internal/geom"
)

func testConfig(seed int64, victories int) Config {
	return DefaultConfig(rand.New(rand.NewSource(seed)), victories)
}

func TestArenaStaysConnected(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		m := Arena(testConfig(seed, 0))
		if !connected(m) {
			t.Fatalf("seed %d: arena has unreachable tiles", seed)
		}
	}
}

func TestArenaKeepsBorderOpen(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		m := Arena(testConfig(seed, 0))
		for i := 0; i < geom.MaxMapTiles; i++ {
			for _, p := range []geom.Point{
				geom.Pt(i, 0), geom.Pt(i, geom.MaxMapTiles-1),
				geom.Pt(0, i), geom.Pt(geom.MaxMapTiles-1, i),
			} {
				if !m.IsWalkable(p) {
					t.Fatalf("seed %d: border tile %v covered", seed, p)
				}
			}
		}
	}
}

func TestArenaHasCover(t *testing.T) {
	walls := 0
	for seed := int64(0); seed < 10; seed++ {
		m := Arena(testConfig(seed, 0))
		for y := 0; y < geom.MaxMapTiles; y++ {
			for x := 0; x < geom.MaxMapTiles; x++ {
				if !m.IsWalkable(geom.Pt(x, y)) {
					walls++
				}
			}
		}
	}
	if walls == 0 {
		t.Fatal("ten arenas without a single cover block")
	}
}

func TestArenaIsDeterministic(t *testing.T) {
	a := Arena(testConfig(42, 0)).Snapshot()
	b := Arena(testConfig(42, 0)).Snapshot()
	for y := range a {
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				t.Fatalf("tile %d,%d differs between equal seeds", x, y)
			}
		}
	}
}

func TestConnectedDetectsSplit(t *testing.T) {
	m := gamemap.Open()
	for y := 0; y < geom.MaxMapTiles; y++ {
		m.SetWalkable(geom.Pt(6, y), false)
	}
	if connected(m) {
		t.Fatal("a full wall should split the arena")
	}
}

func TestEncounterSpendsBudget(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		cfg := testConfig(seed, 2)
		m := Arena(cfg)
		enc := Encounter(m, cfg)

		if enc.Name != RandomName || len(enc.Spawns) == 0 {
			t.Fatalf("seed %d: encounter = %+v", seed, enc)
		}
		if enc.Player.X >= geom.MaxMapTiles/3 || !m.IsWalkable(enc.Player) {
			t.Fatalf("seed %d: player start %v", seed, enc.Player)
		}

		spent := 0
		taken := map[geom.Point]bool{enc.Player: true}
		for _, s := range enc.Spawns {
			def, ok := assets.Bestiary[s.Kind]
			if !ok {
				t.Fatalf("seed %d: unknown kind %q", seed, s.Kind)
			}
			spent += def.Threat
			fp := def.Footprint(s.At)
			if s.At.X < geom.MaxMapTiles/2 || !m.FootprintWalkable(fp) {
				t.Fatalf("seed %d: %s placed at %v", seed, s.Kind, s.At)
			}
			for _, p := range fp.AllPositions() {
				if taken[p] {
					t.Fatalf("seed %d: %v claimed twice", seed, p)
				}
				taken[p] = true
			}
		}
		if spent > cfg.Budget {
			t.Fatalf("seed %d: spent %d of %d", seed, spent, cfg.Budget)
		}
	}
}

func TestBudgetGrowsWithVictories(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := DefaultConfig(rng, 0).Budget; got != 4 {
		t.Fatalf("first budget = %d", got)
	}
	if got := DefaultConfig(rng, 50).Budget; got != 12 {
		t.Fatalf("capped budget = %d", got)
	}
}
