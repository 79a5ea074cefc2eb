// Package generate builds random arenas and encounters for the fixed-size
// map: BSP leaves receive cover blocks, then a threat budget buys monsters.
package generate

import (
	"math/rand"

	"skirmish/internal/gamemap"
	"skirmish/internal/geom"
)

// Config drives generation of one arena.
type Config struct {
	// MinLeafSize stops splitting; each leaf gets at most one cover block.
	MinLeafSize int
	// CoverChance is the probability a leaf gets a cover block.
	CoverChance float64
	// Budget is the total threat the encounter may spend.
	Budget int
	Rand   *rand.Rand
}

// DefaultConfig returns the settings used for play, scaled by how many
// battles the player has won.
func DefaultConfig(rng *rand.Rand, victories int) Config {
	return Config{
		MinLeafSize: 4,
		CoverChance: 0.7,
		Budget:      min(4+2*victories, 12),
		Rand:        rng,
	}
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
}

// split divides the leaf into two children, returning false when leaf is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false // already split
	}
	// Decide split direction: horizontal when taller, vertical when wider.
	splitH := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	maxSize := l.H
	if !splitH {
		maxSize = l.W
	}
	lo := cfg.MinLeafSize
	hi := maxSize - cfg.MinLeafSize
	if lo > hi {
		return false // too small to split
	}
	split := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: split}
		l.right = &bspLeaf{X: l.X, Y: l.Y + split, W: l.W, H: l.H - split}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: split, H: l.H}
		l.right = &bspLeaf{X: l.X + split, Y: l.Y, W: l.W - split, H: l.H}
	}
	return true
}

// leaves splits the whole arena and returns the terminal leaves in
// left-to-right, top-to-bottom tree order.
func leaves(cfg *Config) []*bspLeaf {
	root := &bspLeaf{W: geom.MaxMapTiles, H: geom.MaxMapTiles}
	var out []*bspLeaf
	var walk func(l *bspLeaf)
	walk = func(l *bspLeaf) {
		if !l.split(cfg) {
			out = append(out, l)
			return
		}
		walk(l.left)
		walk(l.right)
	}
	walk(root)
	return out
}

// Arena returns an open map with cover blocks scattered over the BSP
// leaves. A block is only kept when every open tile stays reachable, and
// the outermost ring is never covered.
func Arena(cfg Config) *gamemap.Map {
	m := gamemap.Open()
	for _, leaf := range leaves(&cfg) {
		if cfg.Rand.Float64() >= cfg.CoverChance {
			continue
		}
		block := coverBlock(leaf, &cfg)
		for _, p := range block {
			m.SetWalkable(p, false)
		}
		if !connected(m) {
			for _, p := range block {
				m.SetWalkable(p, true)
			}
		}
	}
	return m
}

// coverBlock picks a 1x1 to 2x2 block inside leaf, off the border ring.
func coverBlock(leaf *bspLeaf, cfg *Config) []geom.Point {
	w, h := 1+cfg.Rand.Intn(2), 1+cfg.Rand.Intn(2)
	x0, y0 := max(leaf.X, 1), max(leaf.Y, 1)
	x1 := min(leaf.X+leaf.W, geom.MaxMapTiles-1) - w
	y1 := min(leaf.Y+leaf.H, geom.MaxMapTiles-1) - h
	if x1 < x0 || y1 < y0 {
		return nil
	}
	ox := x0 + cfg.Rand.Intn(x1-x0+1)
	oy := y0 + cfg.Rand.Intn(y1-y0+1)
	return geom.Sized(geom.Pt(ox, oy), w, h).AllPositions()
}

var cardinals = []geom.Direction{geom.DirNorth, geom.DirEast, geom.DirSouth, geom.DirWest}

// connected reports whether every walkable tile is reachable from the
// first one by orthogonal steps.
func connected(m *gamemap.Map) bool {
	var start geom.Point
	open := 0
	for y := 0; y < geom.MaxMapTiles; y++ {
		for x := 0; x < geom.MaxMapTiles; x++ {
			if m.IsWalkable(geom.Pt(x, y)) {
				if open == 0 {
					start = geom.Pt(x, y)
				}
				open++
			}
		}
	}
	if open == 0 {
		return true
	}
	seen := map[geom.Point]bool{start: true}
	queue := []geom.Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range cardinals {
			n, ok := p.Step(d)
			if !ok || seen[n] || !m.IsWalkable(n) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return len(seen) == open
}
