// Package gamemap holds the fixed-size walkability grid a battle is fought on.
package gamemap

import (
	"skirmish/internal/geom"
)

// Tile is one map cell.
type Tile struct {
	Walkable bool
}

// Map is a MaxMapTiles × MaxMapTiles grid of tiles, indexed [y][x].
type Map struct {
	Tiles [geom.MaxMapTiles][geom.MaxMapTiles]Tile
}

// New returns a map with every tile blocked.
func New() *Map {
	return &Map{}
}

// Open returns a map with every tile walkable.
func Open() *Map {
	m := New()
	for y := range m.Tiles {
		for x := range m.Tiles[y] {
			m.Tiles[y][x].Walkable = true
		}
	}
	return m
}

// IsWalkable reports whether p can be stood on. p must be on the map.
func (m *Map) IsWalkable(p geom.Point) bool {
	return m.Tiles[p.Y][p.X].Walkable
}

// SetWalkable changes the walkability of p. p must be on the map.
func (m *Map) SetWalkable(p geom.Point, walkable bool) {
	m.Tiles[p.Y][p.X].Walkable = walkable
}

// Toggle flips the walkability of p and returns the new value.
func (m *Map) Toggle(p geom.Point) bool {
	m.Tiles[p.Y][p.X].Walkable = !m.Tiles[p.Y][p.X].Walkable
	return m.Tiles[p.Y][p.X].Walkable
}

// FootprintWalkable reports whether every tile of s is on the map and walkable.
func (m *Map) FootprintWalkable(s geom.SizedPoint) bool {
	if !s.Fits() {
		return false
	}
	for _, p := range s.AllPositions() {
		if !m.IsWalkable(p) {
			return false
		}
	}
	return true
}

// Snapshot copies the grid into a [y][x] slice form for serialization.
func (m *Map) Snapshot() [][]bool {
	out := make([][]bool, geom.MaxMapTiles)
	for y := range out {
		out[y] = make([]bool, geom.MaxMapTiles)
		for x := range out[y] {
			out[y][x] = m.Tiles[y][x].Walkable
		}
	}
	return out
}

// FromSnapshot rebuilds a map from Snapshot output.
func FromSnapshot(rows [][]bool) (*Map, error) {
	if err := checkShape(len(rows)); err != nil {
		return nil, err
	}
	m := New()
	for y, row := range rows {
		if err := checkShape(len(row)); err != nil {
			return nil, err
		}
		for x, walkable := range row {
			m.Tiles[y][x].Walkable = walkable
		}
	}
	return m, nil
}
