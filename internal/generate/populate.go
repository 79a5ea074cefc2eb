package generate

import (
	"math/rand"
	"sort"

	"skirmish/assets"
	"skirmish/internal/gamemap"
	"skirmish/internal/geom"
)

// RandomName names generated encounters.
const RandomName = "Random"

// threats lists the bestiary entries that can be bought, by kind.
func threats() []assets.MonsterDef {
	var out []assets.MonsterDef
	for _, def := range assets.Bestiary {
		if def.Threat > 0 {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

func affordable(table []assets.MonsterDef, budget int) []assets.MonsterDef {
	var out []assets.MonsterDef
	for _, def := range table {
		if def.Threat <= budget {
			out = append(out, def)
		}
	}
	return out
}

func cheapest(table []assets.MonsterDef) assets.MonsterDef {
	best := table[0]
	for _, def := range table[1:] {
		if def.Threat < best.Threat {
			best = def
		}
	}
	return best
}

// Encounter places the player in the western third of m and spends the
// threat budget on monsters in the eastern half. The cheapest monster is
// always bought first so an encounter is never empty; the rest of the
// budget buys random affordable monsters until nothing fits.
func Encounter(m *gamemap.Map, cfg Config) assets.Encounter {
	enc := assets.Encounter{Name: RandomName}
	occupied := make(map[geom.Point]bool)

	player, ok := pickFree(m, cfg.Rand, occupied, 1, 1, 0, geom.MaxMapTiles/3)
	if !ok {
		return enc
	}
	enc.Player = player
	// Nothing spawns within two steps of the player.
	for _, p := range geom.Burst(player, 2) {
		occupied[p] = true
	}

	table := threats()
	budget := cfg.Budget
	buy := func(def assets.MonsterDef) bool {
		origin, ok := pickFree(m, cfg.Rand, occupied, max(def.Width, 1), max(def.Height, 1), geom.MaxMapTiles/2, geom.MaxMapTiles)
		if !ok {
			return false
		}
		enc.Spawns = append(enc.Spawns, assets.Spawn{Kind: def.Kind, At: origin})
		budget -= def.Threat
		return true
	}

	if aff := affordable(table, budget); len(aff) > 0 {
		if !buy(cheapest(aff)) {
			return enc
		}
	}
	for budget > 0 {
		aff := affordable(table, budget)
		if len(aff) == 0 || !buy(aff[cfg.Rand.Intn(len(aff))]) {
			break
		}
	}
	return enc
}

// pickFree picks a random origin with x in [xmin, xmax) whose w×h
// footprint is walkable and unclaimed, then claims the footprint.
func pickFree(m *gamemap.Map, rng *rand.Rand, occupied map[geom.Point]bool, w, h, xmin, xmax int) (geom.Point, bool) {
	var candidates []geom.Point
	for y := 0; y < geom.MaxMapTiles; y++ {
		for x := xmin; x < xmax; x++ {
			fp := geom.Sized(geom.Pt(x, y), w, h)
			if !m.FootprintWalkable(fp) || claimed(occupied, fp) {
				continue
			}
			candidates = append(candidates, fp.Origin)
		}
	}
	if len(candidates) == 0 {
		return geom.Point{}, false
	}
	origin := candidates[rng.Intn(len(candidates))]
	for _, p := range geom.Sized(origin, w, h).AllPositions() {
		occupied[p] = true
	}
	return origin, true
}

func claimed(occupied map[geom.Point]bool, fp geom.SizedPoint) bool {
	for _, p := range fp.AllPositions() {
		if occupied[p] {
			return true
		}
	}
	return false
}
